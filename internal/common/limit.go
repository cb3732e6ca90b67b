package common

import "fmt"

// LimitExceededError reports a payload that does not fit the byte budget.
// It wraps ErrorPayloadTooLarge so errors.Is keeps working, and carries both
// sizes for display.
type LimitExceededError struct {
	Actual int64
	Limit  int64
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("payload too large: %d of %d bytes", e.Actual, e.Limit)
}

func (e *LimitExceededError) Unwrap() error {
	return ErrorPayloadTooLarge
}

// ComputeBytes returns the combined payload size: the UTF-8 byte length of
// text plus the declared size of every file.
func ComputeBytes(text string, fileSizes []int64) int64 {
	total := int64(len(text))
	for _, s := range fileSizes {
		total += s
	}
	return total
}

// CheckLimit validates the combined payload size against limit. The limit is
// inclusive: a payload of exactly limit bytes is accepted. On rejection it
// returns a *LimitExceededError.
func CheckLimit(text string, fileSizes []int64, limit int64) error {
	actual := ComputeBytes(text, fileSizes)
	if actual > limit {
		return &LimitExceededError{Actual: actual, Limit: limit}
	}
	return nil
}
