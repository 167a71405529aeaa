//go:generate mockgen -destination=./mocks/fetcher.go . Fetcher
package repository

import (
	"context"

	"github.com/jurgelenas/xbps/pkg/config"
)

// Fetcher obtains repository index data on behalf of the pool. Fetch methods
// return the current bytes of an index (typically from an on-disk cached
// copy); Sync methods refresh the cached copy from the remote source.
type Fetcher interface {
	// FetchIndex returns the package index bytes for a repository.
	FetchIndex(ctx context.Context, repo *config.RepositoryConfig) ([]byte, error)

	// FetchFilesIndex returns the file-manifest index bytes for a repository.
	FetchFilesIndex(ctx context.Context, repo *config.RepositoryConfig) ([]byte, error)

	// SyncIndex refreshes the cached package index for a repository.
	SyncIndex(ctx context.Context, repo *config.RepositoryConfig) error

	// SyncFilesIndex refreshes the cached file-manifest index for a repository.
	SyncFilesIndex(ctx context.Context, repo *config.RepositoryConfig) error
}
