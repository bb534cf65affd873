package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrCapacityExceeded is returned when the live document limit is reached.
	ErrCapacityExceeded = errors.New("maximum number of documents reached")

	// ErrFileTooLarge is returned when an upload exceeds the size limit.
	ErrFileTooLarge = errors.New("file exceeds the maximum size")

	// ErrDuplicateName is returned when a file with the same name is already
	// registered. Callers should treat it as a warning, not a fatal error.
	ErrDuplicateName = errors.New("file already uploaded")

	// ErrNotFound is returned when neither storage backend holds the key.
	ErrNotFound = errors.New("not found")

	// ErrIndexUnavailable signals that the persistent index could not be
	// initialized and an in-memory fallback is in use.
	ErrIndexUnavailable = errors.New("persistent index unavailable")
)

// UnsupportedFormatError reports a file extension the extractor cannot handle.
type UnsupportedFormatError struct {
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file type: %q", e.Extension)
}

// ExtractionError wraps the underlying cause of a failed text extraction.
type ExtractionError struct {
	Name string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract text from %s: %v", e.Name, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
