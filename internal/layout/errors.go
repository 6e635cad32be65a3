package layout

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of a store failure
type ErrorType int

const (
	// ErrTypeRead indicates the document exists but could not be read
	ErrTypeRead ErrorType = iota
	// ErrTypeDecode indicates the document is not a valid layout
	ErrTypeDecode
	// ErrTypeEncode indicates the layout could not be marshaled
	ErrTypeEncode
	// ErrTypeDirectory indicates the destination directory could not be created
	ErrTypeDirectory
	// ErrTypeWrite indicates the document could not be written or renamed
	ErrTypeWrite
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeRead:
		return "Read Error"
	case ErrTypeDecode:
		return "Decode Error"
	case ErrTypeEncode:
		return "Encode Error"
	case ErrTypeDirectory:
		return "Directory Error"
	case ErrTypeWrite:
		return "Write Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// StoreError describes a failed layout load or save
type StoreError struct {
	Type ErrorType
	Path string
	Err  error
}

// Error implements the error interface
func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Type, e.Path, e.Err)
}

// Unwrap returns the underlying error for error chain inspection
func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsDecodeError reports whether err is, or wraps, a malformed-document
// failure.
func IsDecodeError(err error) bool {
	var se *StoreError
	return errors.As(err, &se) && se.Type == ErrTypeDecode
}
