package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrFetchFailure matches every transport, status or decode failure
	ErrFetchFailure = errors.New("failed to fetch from catalog")
	ErrNotFound     = errors.New("product not found")
	ErrInvalidInput = errors.New("invalid product id")
)

// FetchError carries the cause of a failed catalog read
type FetchError struct {
	Op         string
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("catalog %s %s: status %d", e.Op, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("catalog %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is makes every FetchError match ErrFetchFailure
func (e *FetchError) Is(target error) bool {
	return target == ErrFetchFailure
}
