package ingestion

import (
	"errors"
	"fmt"
)

// ErrDataUnavailable is wrapped by every error that means a flight source
// could not be turned into records.
var ErrDataUnavailable = errors.New("flight data unavailable")

type SourceReason string

const (
	ReasonNotFound   SourceReason = "not_found"
	ReasonMalformed  SourceReason = "malformed"
	ReasonUnreadable SourceReason = "unreadable"
)

// SourceError describes a flight source that failed to load.
type SourceError struct {
	Path   string
	Reason SourceReason
	Err    error
}

func (e *SourceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("flight source %s: %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("flight source %s: %s: %v", e.Path, e.Reason, e.Err)
}

func (e *SourceError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrDataUnavailable}
	}
	return []error{ErrDataUnavailable, e.Err}
}

// ReasonOf returns the SourceError reason carried by err, if any.
func ReasonOf(err error) (SourceReason, bool) {
	var se *SourceError
	if errors.As(err, &se) {
		return se.Reason, true
	}
	return "", false
}
