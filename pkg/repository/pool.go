// Package repository implements the repository pool: a lazily-initialized,
// fault-tolerant collection of package indexes aggregated from every
// configured repository.
package repository

import (
	"context"
	"strings"

	"github.com/jurgelenas/xbps/internal/logger"
	"github.com/jurgelenas/xbps/pkg/config"
	"github.com/jurgelenas/xbps/pkg/errors"
	"github.com/jurgelenas/xbps/pkg/index"
	"github.com/jurgelenas/xbps/pkg/model"
)

// Entry is one repository registered in the pool: its URI, its parsed
// package index and the optional file-manifest index. Entries are frozen
// once Init completes.
type Entry struct {
	Name       string
	URI        string
	Index      *index.Index
	FilesIndex *index.FilesIndex
}

// Pool aggregates the package indexes of every configured repository into a
// queryable collection. Repositories whose index cannot be obtained are
// skipped; the pool requires at least one usable repository.
type Pool struct {
	cfg         *config.Config
	fetcher     Fetcher
	entries     []*Entry
	initialized bool
}

// NewPool creates an uninitialized pool. Init runs lazily on first query.
func NewPool(cfg *config.Config, fetcher Fetcher) *Pool {
	return &Pool{cfg: cfg, fetcher: fetcher}
}

// Init builds the pool from the configured repositories. It is idempotent:
// a second call on an initialized pool returns immediately. A repository
// whose index cannot be fetched or parsed is skipped and counted missing;
// only an all-missing configuration is fatal. On any failure the pool is
// released so a half-built pool is never observable.
func (p *Pool) Init(ctx context.Context) error {
	if p.initialized {
		return nil
	}
	repos := p.repositories()
	if len(repos) == 0 {
		return ErrNoConfiguration
	}

	var missing int
	for _, repo := range repos {
		data, err := p.fetcher.FetchIndex(ctx, repo)
		if err != nil {
			if ctx.Err() != nil {
				p.Release()
				return ctx.Err()
			}
			logger.Debugf("rpool: `%s' index unavailable: %v", repo.Name, err)
			missing++
			continue
		}
		idx, err := index.ParseIndex(data)
		if err != nil {
			logger.Debugf("rpool: `%s' cannot be parsed: %v", repo.Name, err)
			missing++
			continue
		}
		entry := &Entry{Name: repo.Name, URI: repo.URL, Index: idx}
		// The file manifest is optional; a repository without one still
		// registers.
		if fdata, ferr := p.fetcher.FetchFilesIndex(ctx, repo); ferr == nil {
			if fidx, perr := index.ParseFilesIndex(fdata); perr == nil {
				entry.FilesIndex = fidx
			}
		}
		p.entries = append(p.entries, entry)
		logger.Debugf("rpool: `%s' registered", repo.URL)
	}

	if len(repos)-missing == 0 {
		p.Release()
		return ErrNoUsableRepository
	}

	p.initialized = true
	logger.Debug("rpool: initialized ok")
	return nil
}

// Release drops every registered entry. It is a no-op on an uninitialized
// pool.
func (p *Pool) Release() {
	if p.entries == nil && !p.initialized {
		return
	}
	for _, e := range p.entries {
		logger.Debugf("rpool: unregistered repository `%s'", e.URI)
	}
	p.entries = nil
	p.initialized = false
	logger.Debug("rpool: released ok")
}

// Sync refreshes the cached package index and file-manifest index for the
// named repository, or for every configured repository when uri is empty.
// Per-repository failures do not abort the loop; the last encountered error
// is returned, or nil when every fetch succeeded. Sync does not touch the
// in-memory pool; a subsequent Init reads the refreshed copies.
func (p *Pool) Sync(ctx context.Context, uri string) error {
	repos := p.repositories()
	if len(repos) == 0 {
		return ErrNoConfiguration
	}

	var lastErr error
	for _, repo := range repos {
		// If an argument was given just process that repository.
		if uri != "" && repo.URL != uri && repo.Name != uri {
			continue
		}
		if err := p.fetcher.SyncIndex(ctx, repo); err != nil {
			lastErr = err
			logger.Debugf("rpool: `%s' failed to fetch index: %v", repo.URL, err)
			continue
		}
		if err := p.fetcher.SyncFilesIndex(ctx, repo); err != nil {
			lastErr = err
			logger.Debugf("rpool: `%s' failed to fetch files index: %v", repo.URL, err)
			continue
		}
	}
	return lastErr
}

// ForEach initializes the pool on demand and iterates its entries in
// configured order. Iteration stops as soon as the callback sets the stop
// flag or returns an error; that error (or nil) is returned to the caller.
func (p *Pool) ForEach(ctx context.Context, fn func(uri string, idx *index.Index, stop *bool) error) error {
	if err := p.Init(ctx); err != nil {
		if err == ErrNoConfiguration {
			logger.Debug("rpool: empty repository list")
		} else {
			logger.Debugf("rpool: couldn't initialize: %v", err)
		}
		return err
	}

	stop := false
	for _, e := range p.entries {
		if err := fn(e.URI, e.Index, &stop); err != nil {
			return err
		}
		if stop {
			break
		}
	}
	return nil
}

// ResolveProvider returns the best provider for the given dependency along
// with the URI of the repository that published it. Repositories are
// consulted in configured order; the first one with a satisfying provider
// wins. Returns errors.ErrPackageNotFound when no repository satisfies the
// constraint.
func (p *Pool) ResolveProvider(ctx context.Context, dep model.Dependency) (*model.PackageDescriptor, string, error) {
	var (
		found   *model.PackageDescriptor
		repoURI string
	)
	arch := p.cfg.Settings.Architecture
	err := p.ForEach(ctx, func(uri string, idx *index.Index, stop *bool) error {
		if pkg := idx.FindProvider(dep, arch); pkg != nil {
			found, repoURI = pkg, uri
			*stop = true
		}
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	if found == nil {
		return nil, "", errors.ErrPackageNotFound
	}
	return found, repoURI, nil
}

// PackageFiles returns the file list a package ships, looked up in the
// file-manifest index of the repository it originates from. Returns nil when
// the repository carries no file manifest.
func (p *Pool) PackageFiles(ctx context.Context, repoURI, id string) ([]string, error) {
	if err := p.Init(ctx); err != nil {
		return nil, err
	}
	for _, e := range p.entries {
		if e.URI == repoURI {
			return e.FilesIndex.PackageFiles(id), nil
		}
	}
	return nil, ErrRepositoryNotFound
}

func (p *Pool) repositories() []*config.RepositoryConfig {
	if p.cfg == nil {
		return nil
	}
	return p.cfg.EnabledRepositories()
}

// IsRemote reports whether a repository URI points at a remote source that
// requires downloading.
func IsRemote(uri string) bool {
	return strings.HasPrefix(uri, "http://") ||
		strings.HasPrefix(uri, "https://") ||
		strings.HasPrefix(uri, "ftp://")
}
