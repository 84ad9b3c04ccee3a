package finance

import (
	"errors"
	"fmt"
)

// ErrFetch matches every *FetchError via errors.Is.
var ErrFetch = errors.New("finance fetch failed")

// FetchError reports that no usable financial data could be obtained or stored for a ticker.
type FetchError struct {
	Ticker string
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("finance data for %q unavailable", e.Ticker)
	}
	return fmt.Sprintf("finance data for %q unavailable: %v", e.Ticker, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrFetch.
func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}
