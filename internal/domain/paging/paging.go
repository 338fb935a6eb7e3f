// Package paging defines 1-based page addressing for list sources.
package paging

import (
	"errors"
	"fmt"
)

// ErrInvalidPage is returned for a page with a non-positive index or size.
var ErrInvalidPage = errors.New("invalid page")

// FirstPage is the index of the first page.
const FirstPage = 1

// Page addresses one slice of an ordered collection.
type Page struct {
	Index int
	Size  int
}

// Offset returns the number of entries before the page.
func (p Page) Offset() int {
	return (p.Index - FirstPage) * p.Size
}

// Valid reports an error wrapping ErrInvalidPage when p cannot be served.
func (p Page) Valid() error {
	if p.Index < FirstPage {
		return fmt.Errorf("%w: index %d", ErrInvalidPage, p.Index)
	}
	if p.Size <= 0 {
		return fmt.Errorf("%w: size %d", ErrInvalidPage, p.Size)
	}
	return nil
}
