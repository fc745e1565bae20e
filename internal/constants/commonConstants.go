package constants

type (
	APIStatus string
)

const (
	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"
)

const (
	ServiceName    = "Conflict Zero API"
	ServiceVersion = "1.0.0"
)

// Cache key prefixes. The pattern label on cache metrics uses the prefix only.
const (
	CacheKeyFlights = "flights"
)
