package errors

import "errors"

// Common error types used across the goprim library

var (
	// ErrAllocation indicates that an allocation strategy could not
	// obtain storage for a new object
	ErrAllocation = errors.New("allocation failed")

	// ErrShutdown indicates that an operation was attempted on a
	// resource after its shutdown began
	ErrShutdown = errors.New("resource is shut down")

	// ErrNilTask indicates that a nil task was submitted for execution
	ErrNilTask = errors.New("task cannot be nil")

	// ErrInvalidConfiguration indicates invalid configuration parameters
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// IsShutdown returns true if the error was caused by using a resource
// whose shutdown had already begun
func IsShutdown(err error) bool {
	return errors.Is(err, ErrShutdown)
}

// IsAllocation returns true if the error originated in an allocation
// strategy rather than in the caller's arguments
func IsAllocation(err error) bool {
	return errors.Is(err, ErrAllocation)
}
