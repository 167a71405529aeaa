package repository_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jurgelenas/xbps/pkg/config"
	"github.com/jurgelenas/xbps/pkg/repository"
)

func fetcherConfig(t *testing.T, repoURL string) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Settings.CacheDir = t.TempDir()
	cfg.Repositories = append(cfg.Repositories, &config.RepositoryConfig{
		Name:    "current",
		URL:     repoURL,
		Enabled: true,
	})
	return cfg
}

func TestSyncIndex_Remote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/index.json":
			_, _ = w.Write([]byte(`{"format_version":"1","packages":[]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	cfg := fetcherConfig(t, srv.URL)
	fetcher := repository.NewHTTPFetcher(cfg)
	ctx := context.Background()

	require.NoError(t, fetcher.SyncIndex(ctx, cfg.Repositories[0]))

	// The refreshed copy lands in the index cache and Fetch reads it back.
	data, err := fetcher.FetchIndex(ctx, cfg.Repositories[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"format_version":"1","packages":[]}`, string(data))

	// The file manifest is missing on the server.
	err = fetcher.SyncFilesIndex(ctx, cfg.Repositories[0])
	assert.ErrorIs(t, err, repository.ErrFetch)
}

func TestSyncIndex_Local(t *testing.T) {
	repoDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(repoDir, "index.json"),
		[]byte(`{"format_version":"1","packages":[]}`), 0o644))

	cfg := fetcherConfig(t, repoDir)
	fetcher := repository.NewHTTPFetcher(cfg)
	ctx := context.Background()

	require.NoError(t, fetcher.SyncIndex(ctx, cfg.Repositories[0]))

	data, err := fetcher.FetchIndex(ctx, cfg.Repositories[0])
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestSyncIndex_LocalMissing(t *testing.T) {
	cfg := fetcherConfig(t, t.TempDir())
	fetcher := repository.NewHTTPFetcher(cfg)

	err := fetcher.SyncIndex(context.Background(), cfg.Repositories[0])
	assert.ErrorIs(t, err, repository.ErrFetch)
}

func TestFetchIndex_NotCached(t *testing.T) {
	cfg := fetcherConfig(t, "https://repo.example.com/current")
	fetcher := repository.NewHTTPFetcher(cfg)

	_, err := fetcher.FetchIndex(context.Background(), cfg.Repositories[0])
	assert.Error(t, err)
}
