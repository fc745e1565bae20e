package constants

const (
	MsgFileNotFound      = "File %s not found"
	MsgFileMalformed     = "File %s could not be parsed"
	MsgFileUnreadable    = "File %s could not be read"
	MsgInvalidFileName   = "Invalid file name"
	MsgInvalidQueryParam = "Invalid query parameter"
	MsgTooManyRequests   = "Too many requests"
	MsgInternalError     = "Internal server error"
)
