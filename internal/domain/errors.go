package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

// Sentinel errors - use with errors.Is()
var (
	ErrValidation    = errors.New("validation failed")
	ErrSerialization = errors.New("serialization failed")
	ErrNormalization = errors.New("normalization did not converge")
)

// ValidationError indicates invalid input
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string         { return e.Message }
func (e *ValidationError) StatusCode() int       { return http.StatusBadRequest }
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// SerializationError is returned when a node cannot be written as HTML,
// typically because its type has no plugin and no native tag. Callers on
// the save path must surface it instead of storing truncated content.
type SerializationError struct {
	NodeType string
	Path     string
	Reason   string
}

func (e *SerializationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("cannot serialize node %q at %s", e.NodeType, e.Path)
	}
	return fmt.Sprintf("cannot serialize node %q at %s: %s", e.NodeType, e.Path, e.Reason)
}

func (e *SerializationError) StatusCode() int       { return http.StatusUnprocessableEntity }
func (e *SerializationError) Is(target error) bool { return target == ErrSerialization }

// NormalizationError reports a normalizer that kept producing transforms.
// It is a programming error in a plugin, never a user error.
type NormalizationError struct {
	Passes   int
	LastPath string
	LastKind string
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("normalization exceeded %d passes (last %s at %s)", e.Passes, e.LastKind, e.LastPath)
}

func (e *NormalizationError) StatusCode() int       { return http.StatusInternalServerError }
func (e *NormalizationError) Is(target error) bool { return target == ErrNormalization }
