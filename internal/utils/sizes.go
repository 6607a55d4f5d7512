package utils

import (
	"fmt"
	"math"
)

// CheckMultiplyOverflow checks if multiplying two uint64 values would overflow.
// Returns an error if overflow would occur.
func CheckMultiplyOverflow(a, b uint64) error {
	if a == 0 || b == 0 {
		return nil // No overflow when either is zero
	}

	if a > math.MaxUint64/b {
		return fmt.Errorf("multiplication overflow: %d * %d exceeds uint64 max", a, b)
	}

	return nil
}

// SafeMultiply multiplies two uint64 values and returns the result if no overflow occurs.
// Returns 0 and an error if overflow would occur.
func SafeMultiply(a, b uint64) (uint64, error) {
	if err := CheckMultiplyOverflow(a, b); err != nil {
		return 0, err
	}
	return a * b, nil
}

// CalculateDataSize safely calculates the total payload size of a cube by
// multiplying its dimensions and the element size.
// Returns an error if overflow would occur.
func CalculateDataSize(shape []int, elementSize uint64) (uint64, error) {
	if elementSize == 0 {
		return 0, fmt.Errorf("element size cannot be zero")
	}

	// Calculate product of all dimensions
	size := uint64(1)
	for i, dim := range shape {
		if dim < 0 {
			return 0, fmt.Errorf("negative dimension %d at index %d", dim, i)
		}
		dimU64 := uint64(dim)

		// Check for overflow before multiplication
		if dimU64 > 0 && size > math.MaxUint64/dimU64 {
			return 0, fmt.Errorf("data size overflow at dimension %d: dimensions too large", i)
		}

		size *= dimU64
	}

	// Check element size multiplication
	if size > math.MaxUint64/elementSize {
		return 0, fmt.Errorf("data size overflow: total size too large (dims product: %d, elem size: %d)", size, elementSize)
	}

	return size * elementSize, nil
}

// ValidateBufferSize validates that a buffer size is within reasonable limits.
// maxSize parameter allows different limits for different use cases.
func ValidateBufferSize(size, maxSize uint64, description string) error {
	if size == 0 {
		return fmt.Errorf("%s: size cannot be zero", description)
	}

	if size > maxSize {
		return fmt.Errorf("%s: size %d exceeds maximum %d", description, size, maxSize)
	}

	return nil
}

// Common buffer size limits.
const (
	// MaxCubeBytes limits a single cube payload to 1GB (reasonable for in-memory processing).
	MaxCubeBytes = 1024 * 1024 * 1024 // 1GB

	// MaxIndexBytes limits the JSON cube index to 64MB.
	MaxIndexBytes = 64 * 1024 * 1024 // 64MB
)
