package uhash

import "errors"

var (
	// ErrKeyNotFound is returned by Get and Remove when the key is absent.
	ErrKeyNotFound = errors.New("key not found")

	// ErrAllocation is returned when a resize cannot allocate the new slot
	// array. The operation that triggered the resize is rolled back.
	ErrAllocation = errors.New("failed to allocate slot array")

	// ErrInvalidConfig is returned by the constructors for unusable options.
	ErrInvalidConfig = errors.New("invalid table configuration")
)
