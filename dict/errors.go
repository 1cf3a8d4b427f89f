package dict

import "errors"

// Sentinel errors for package dict.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// ErrNilDictionary is returned when an operation is invoked on a nil or
	// closed dictionary.
	ErrNilDictionary = errors.New("dictionary is nil or closed")

	// ErrCollision is returned when two distinct keys hash to the same
	// 16-bit code. The operation is rejected and the dictionary is left
	// unmodified.
	ErrCollision = errors.New("hash collision between distinct keys")

	// ErrNotFound is returned by Unset when the key is not present.
	ErrNotFound = errors.New("key not found")

	// ErrAllocation is returned when the backing array cannot be sized,
	// e.g. capacity arithmetic would overflow during growth.
	ErrAllocation = errors.New("cannot allocate dictionary storage")
)
