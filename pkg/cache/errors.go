package cache

import "fmt"

// Common cache errors.
var (
	// ErrBinaryInvalid is returned when a cached binary package does not
	// match the metadata it claims.
	ErrBinaryInvalid = fmt.Errorf("cached binary package is invalid")
)
