package inspector

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedSource is wrapped by FetchError when an identifier maps
	// to no known archive source.
	ErrUnsupportedSource = errors.New("unsupported repository source")
	// ErrArchiveTooLarge is wrapped by FetchError when a download exceeds
	// the byte cap, and by ExtractionError when the unpacked entries do.
	ErrArchiveTooLarge = errors.New("archive exceeds size limit")
)

// FetchError means the archive could not be retrieved.
type FetchError struct {
	Source     string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("fetch archive %s: status %d: %v", e.Source, e.StatusCode, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("fetch archive %s: status %d", e.Source, e.StatusCode)
	default:
		return fmt.Sprintf("fetch archive %s: %v", e.Source, e.Err)
	}
}

func (e *FetchError) Unwrap() error { return e.Err }

// ExtractionError means the downloaded bytes are not a usable archive.
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string { return "extract archive: " + e.Err.Error() }
func (e *ExtractionError) Unwrap() error { return e.Err }
