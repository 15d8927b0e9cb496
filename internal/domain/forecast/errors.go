package forecast

import "errors"

// Sentinel kinds for projection input errors. These allow errors.Is from callers.
var (
	ErrMonthsOutOfRange = errors.New("months out of range")
	ErrRateOutOfRange   = errors.New("improvement rate out of range")
)
