package repository

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/jurgelenas/xbps/pkg/config"
	"github.com/jurgelenas/xbps/pkg/errors"
	"github.com/jurgelenas/xbps/pkg/fsutil"
)

const (
	indexFilename      = "index.json"
	filesIndexFilename = "files.json"
)

// HTTPFetcher is the default Fetcher: Sync downloads index files over HTTP
// into the local index cache, Fetch reads the cached copies. Repositories
// with a plain path or file:// URL are treated as local directories.
type HTTPFetcher struct {
	cfg       *config.Config
	client    *http.Client
	userAgent string
}

// NewHTTPFetcher creates a fetcher reading and refreshing the index cache
// configured in cfg.
func NewHTTPFetcher(cfg *config.Config) *HTTPFetcher {
	return &HTTPFetcher{
		cfg:       cfg,
		client:    &http.Client{Timeout: cfg.Settings.HTTPTimeout},
		userAgent: "xbps/1.0",
	}
}

// FetchIndex returns the cached package index bytes for a repository.
func (f *HTTPFetcher) FetchIndex(_ context.Context, repo *config.RepositoryConfig) ([]byte, error) {
	return os.ReadFile(f.cfg.GetIndexPath(repo.Name))
}

// FetchFilesIndex returns the cached file-manifest index bytes for a
// repository.
func (f *HTTPFetcher) FetchFilesIndex(_ context.Context, repo *config.RepositoryConfig) ([]byte, error) {
	return os.ReadFile(f.cfg.GetFilesIndexPath(repo.Name))
}

// SyncIndex refreshes the cached package index for a repository.
func (f *HTTPFetcher) SyncIndex(ctx context.Context, repo *config.RepositoryConfig) error {
	return f.sync(ctx, repo, indexFilename, f.cfg.GetIndexPath(repo.Name))
}

// SyncFilesIndex refreshes the cached file-manifest index for a repository.
func (f *HTTPFetcher) SyncFilesIndex(ctx context.Context, repo *config.RepositoryConfig) error {
	return f.sync(ctx, repo, filesIndexFilename, f.cfg.GetFilesIndexPath(repo.Name))
}

func (f *HTTPFetcher) sync(ctx context.Context, repo *config.RepositoryConfig, filename, cachePath string) error {
	var (
		data []byte
		err  error
	)
	if IsRemote(repo.URL) {
		data, err = f.download(ctx, repo.URL, filename)
	} else {
		data, err = f.readLocal(repo.URL, filename)
	}
	if err != nil {
		return err
	}

	if err := fsutil.EnsureDir(filepath.Dir(cachePath)); err != nil {
		return err
	}
	if err := os.WriteFile(cachePath, data, fsutil.FileModeSecure); err != nil {
		return errors.Wrapf(err, "could not write cached index %s", cachePath)
	}
	return nil
}

func (f *HTTPFetcher) download(ctx context.Context, repoURL, filename string) ([]byte, error) {
	indexURL := strings.TrimSuffix(repoURL, "/") + "/" + filename

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, indexURL, http.NoBody)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(ErrFetch, "%s: %v", indexURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(ErrFetch, "%s: unexpected status code %d", indexURL, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response body")
	}
	return data, nil
}

func (f *HTTPFetcher) readLocal(repoURL, filename string) ([]byte, error) {
	dir := strings.TrimPrefix(repoURL, "file://")
	data, err := os.ReadFile(filepath.Join(dir, filename))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	return data, nil
}
