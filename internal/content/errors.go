package content

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a lookup by key matches no document.
	ErrNotFound = errors.New("content: document not found")

	// ErrInvalidCursor is returned when a next-page cursor does not point at
	// the configured content repository.
	ErrInvalidCursor = errors.New("content: invalid page cursor")
)

// FetchError reports a failed call to the content API: transport errors,
// unexpected status codes and undecodable bodies.
type FetchError struct {
	Op         string
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("content %s %s: unexpected status %d", e.Op, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("content %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// MalformedEntryError reports an entry that lacks a field the post page needs.
type MalformedEntryError struct {
	UID   string
	Field string
	Err   error
}

func (e *MalformedEntryError) Error() string {
	return fmt.Sprintf("malformed entry %q: field %s: %v", e.UID, e.Field, e.Err)
}

func (e *MalformedEntryError) Unwrap() error {
	return e.Err
}
