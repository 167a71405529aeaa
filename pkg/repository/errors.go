package repository

import "fmt"

// Common repository pool errors.
var (
	// ErrNoConfiguration is returned when no repositories are configured.
	ErrNoConfiguration = fmt.Errorf("no repository configuration")

	// ErrNoUsableRepository is returned when every configured repository
	// failed to yield a parsable index.
	ErrNoUsableRepository = fmt.Errorf("no usable repository")

	// ErrRepositoryNotFound is returned when a named repository is not
	// part of the configuration.
	ErrRepositoryNotFound = fmt.Errorf("repository not found")

	// ErrFetch classifies fetch-layer failures, distinct from generic
	// I/O errors.
	ErrFetch = fmt.Errorf("repository fetch failed")
)
