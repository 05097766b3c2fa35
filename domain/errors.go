package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrConflict          = errors.New("recipe was modified by another request")
)

// PayloadError reports a malformed request field. It is returned before any
// write happens.
type PayloadError struct {
	Field  string
	Reason string
}

func NewPayloadError(field, reason string) *PayloadError {
	return &PayloadError{Field: field, Reason: reason}
}

func (e *PayloadError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ReferenceNotFoundError reports an id in the payload that does not resolve
// to an existing row.
type ReferenceNotFoundError struct {
	Field string
	ID    uint
}

func (e *ReferenceNotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Field, e.ID)
}

// StorageError wraps a failure to decode, encode, write or delete image data.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
