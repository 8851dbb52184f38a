package catalog

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyMenu     = errors.New("menu has no items")
	ErrMissingName   = errors.New("item has no name")
	ErrNegativePrice = errors.New("item has negative price")
	ErrDuplicateItem = errors.New("duplicate item name after normalization")
	ErrBadFormat     = errors.New("unsupported menu file format")
)

// LoadError wraps any failure to produce a catalog from a source.
// Fatal at startup: no catalog means no service.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading menu from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
