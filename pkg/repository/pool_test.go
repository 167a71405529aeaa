package repository_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jurgelenas/xbps/pkg/config"
	"github.com/jurgelenas/xbps/pkg/errors"
	"github.com/jurgelenas/xbps/pkg/index"
	"github.com/jurgelenas/xbps/pkg/model"
	"github.com/jurgelenas/xbps/pkg/repository"
	mock_repository "github.com/jurgelenas/xbps/pkg/repository/mocks"
)

func testConfig(names ...string) *config.Config {
	cfg := config.DefaultConfig()
	for _, name := range names {
		cfg.Repositories = append(cfg.Repositories, &config.RepositoryConfig{
			Name:    name,
			URL:     "https://example.com/" + name,
			Enabled: true,
		})
	}
	cfg.Settings.Architecture = "amd64"
	return cfg
}

func indexJSON(pkgs string) []byte {
	return []byte(fmt.Sprintf(`{"format_version":"1","packages":[%s]}`, pkgs))
}

func TestPoolInit_NoConfiguration(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mock_repository.NewMockFetcher(ctrl)

	pool := repository.NewPool(testConfig(), fetcher)
	err := pool.Init(context.Background())
	assert.ErrorIs(t, err, repository.ErrNoConfiguration)
}

func TestPoolInit_SkipsMissingRepositories(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mock_repository.NewMockFetcher(ctrl)
	cfg := testConfig("good", "bad")

	fetcher.EXPECT().FetchIndex(gomock.Any(), cfg.Repositories[0]).
		Return(indexJSON(`{"name":"a","version":"1.0.0"}`), nil)
	fetcher.EXPECT().FetchFilesIndex(gomock.Any(), cfg.Repositories[0]).
		Return(nil, fmt.Errorf("no files index"))
	fetcher.EXPECT().FetchIndex(gomock.Any(), cfg.Repositories[1]).
		Return(nil, fmt.Errorf("connection refused"))

	pool := repository.NewPool(cfg, fetcher)
	require.NoError(t, pool.Init(context.Background()))

	var visited []string
	err := pool.ForEach(context.Background(), func(uri string, _ *index.Index, _ *bool) error {
		visited = append(visited, uri)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/good"}, visited)
}

func TestPoolInit_AllMissing(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mock_repository.NewMockFetcher(ctrl)
	cfg := testConfig("one", "two")

	fetcher.EXPECT().FetchIndex(gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("unreachable")).Times(2)

	pool := repository.NewPool(cfg, fetcher)
	err := pool.Init(context.Background())
	require.ErrorIs(t, err, repository.ErrNoUsableRepository)

	// The pool must not be left half-built: a later query attempts a
	// fresh initialization instead of seeing stale entries.
	fetcher.EXPECT().FetchIndex(gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("unreachable")).Times(2)
	err = pool.ForEach(context.Background(), func(string, *index.Index, *bool) error {
		t.Fatal("callback must not run on a failed pool")
		return nil
	})
	assert.ErrorIs(t, err, repository.ErrNoUsableRepository)
}

func TestPoolInit_Idempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mock_repository.NewMockFetcher(ctrl)
	cfg := testConfig("repo")

	fetcher.EXPECT().FetchIndex(gomock.Any(), cfg.Repositories[0]).
		Return(indexJSON(`{"name":"a","version":"1.0.0"}`), nil).Times(1)
	fetcher.EXPECT().FetchFilesIndex(gomock.Any(), cfg.Repositories[0]).
		Return(nil, fmt.Errorf("absent")).Times(1)

	pool := repository.NewPool(cfg, fetcher)
	require.NoError(t, pool.Init(context.Background()))
	require.NoError(t, pool.Init(context.Background()))
}

func TestPoolSync_BestEffort(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mock_repository.NewMockFetcher(ctrl)
	cfg := testConfig("one", "two", "three")

	wantErr := fmt.Errorf("timeout")
	fetcher.EXPECT().SyncIndex(gomock.Any(), cfg.Repositories[0]).Return(nil)
	fetcher.EXPECT().SyncFilesIndex(gomock.Any(), cfg.Repositories[0]).Return(nil)
	fetcher.EXPECT().SyncIndex(gomock.Any(), cfg.Repositories[1]).Return(wantErr)
	fetcher.EXPECT().SyncIndex(gomock.Any(), cfg.Repositories[2]).Return(nil)
	fetcher.EXPECT().SyncFilesIndex(gomock.Any(), cfg.Repositories[2]).Return(nil)

	pool := repository.NewPool(cfg, fetcher)
	err := pool.Sync(context.Background(), "")
	// Every repository is attempted; the last failure wins.
	assert.ErrorIs(t, err, wantErr)
}

func TestPoolSync_AllSucceed(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mock_repository.NewMockFetcher(ctrl)
	cfg := testConfig("one", "two")

	fetcher.EXPECT().SyncIndex(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	fetcher.EXPECT().SyncFilesIndex(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	pool := repository.NewPool(cfg, fetcher)
	assert.NoError(t, pool.Sync(context.Background(), ""))
}

func TestPoolSync_SingleRepository(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mock_repository.NewMockFetcher(ctrl)
	cfg := testConfig("one", "two")

	fetcher.EXPECT().SyncIndex(gomock.Any(), cfg.Repositories[1]).Return(nil)
	fetcher.EXPECT().SyncFilesIndex(gomock.Any(), cfg.Repositories[1]).Return(nil)

	pool := repository.NewPool(cfg, fetcher)
	assert.NoError(t, pool.Sync(context.Background(), "two"))
}

func TestPoolForEach_EarlyStop(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mock_repository.NewMockFetcher(ctrl)
	cfg := testConfig("one", "two", "three")

	for _, repo := range cfg.Repositories {
		fetcher.EXPECT().FetchIndex(gomock.Any(), repo).
			Return(indexJSON(`{"name":"a","version":"1.0.0"}`), nil)
		fetcher.EXPECT().FetchFilesIndex(gomock.Any(), repo).
			Return(nil, fmt.Errorf("absent"))
	}

	pool := repository.NewPool(cfg, fetcher)
	visits := 0
	err := pool.ForEach(context.Background(), func(_ string, _ *index.Index, stop *bool) error {
		visits++
		if visits == 2 {
			*stop = true
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, visits)
}

func TestPoolForEach_CallbackError(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mock_repository.NewMockFetcher(ctrl)
	cfg := testConfig("one", "two")

	for _, repo := range cfg.Repositories {
		fetcher.EXPECT().FetchIndex(gomock.Any(), repo).
			Return(indexJSON(`{"name":"a","version":"1.0.0"}`), nil)
		fetcher.EXPECT().FetchFilesIndex(gomock.Any(), repo).
			Return(nil, fmt.Errorf("absent"))
	}

	pool := repository.NewPool(cfg, fetcher)
	wantErr := fmt.Errorf("boom")
	visits := 0
	err := pool.ForEach(context.Background(), func(string, *index.Index, *bool) error {
		visits++
		return wantErr
	})
	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, 1, visits)
}

func TestResolveProvider_RepositoryOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mock_repository.NewMockFetcher(ctrl)
	cfg := testConfig("first", "second")

	// Both repositories publish the package; the first configured one wins
	// even though the second carries a newer version.
	fetcher.EXPECT().FetchIndex(gomock.Any(), cfg.Repositories[0]).
		Return(indexJSON(`{"name":"foo","version":"1.0.0"},{"name":"foo","version":"1.2.0"}`), nil)
	fetcher.EXPECT().FetchFilesIndex(gomock.Any(), cfg.Repositories[0]).
		Return(nil, fmt.Errorf("absent"))
	fetcher.EXPECT().FetchIndex(gomock.Any(), cfg.Repositories[1]).
		Return(indexJSON(`{"name":"foo","version":"2.0.0"}`), nil)
	fetcher.EXPECT().FetchFilesIndex(gomock.Any(), cfg.Repositories[1]).
		Return(nil, fmt.Errorf("absent"))

	pool := repository.NewPool(cfg, fetcher)
	desc, uri, err := pool.ResolveProvider(context.Background(), model.Dependency{Name: "foo"})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/first", uri)
	// Best version within the winning repository.
	assert.Equal(t, "1.2.0", desc.Version)

	_, _, err = pool.ResolveProvider(context.Background(), model.Dependency{Name: "missing"})
	assert.ErrorIs(t, err, errors.ErrPackageNotFound)
}

func TestIsRemote(t *testing.T) {
	assert.True(t, repository.IsRemote("https://repo.example.com/current"))
	assert.True(t, repository.IsRemote("http://repo.example.com/current"))
	assert.True(t, repository.IsRemote("ftp://repo.example.com/current"))
	assert.False(t, repository.IsRemote("/var/db/xbps/local"))
	assert.False(t, repository.IsRemote("file:///var/db/xbps/local"))
}
