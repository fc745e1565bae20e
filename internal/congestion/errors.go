package congestion

import (
	"errors"
	"fmt"
)

const (
	DefaultWindowMinutes = 10
	DefaultThreshold     = 3

	MinWindowMinutes = 1
	MaxWindowMinutes = 60
	MinThreshold     = 1
)

var (
	ErrInvalidWindow    = errors.New("window_minutes out of range")
	ErrInvalidThreshold = errors.New("threshold out of range")
)

// ValidateParams checks the bounds callers must enforce before running the
// detector. The detector itself accepts any values.
func ValidateParams(windowMinutes, threshold int) error {
	if windowMinutes < MinWindowMinutes || windowMinutes > MaxWindowMinutes {
		return fmt.Errorf("%w: %d (want %d-%d)", ErrInvalidWindow, windowMinutes, MinWindowMinutes, MaxWindowMinutes)
	}
	if threshold < MinThreshold {
		return fmt.Errorf("%w: %d (want >= %d)", ErrInvalidThreshold, threshold, MinThreshold)
	}
	return nil
}
