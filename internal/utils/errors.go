package utils

import "fmt"

// CubeError represents a structured cube-file error.
type CubeError struct {
	Context string
	Cause   error
}

// Error implements the error interface.
func (e *CubeError) Error() string {
	return fmt.Sprintf("%s: %v", e.Context, e.Cause)
}

// WrapError creates a contextual error.
func WrapError(context string, cause error) error {
	if cause == nil {
		return nil
	}
	return &CubeError{
		Context: context,
		Cause:   cause,
	}
}

// Unwrap provides compatibility with errors.Unwrap().
func (e *CubeError) Unwrap() error {
	return e.Cause
}
