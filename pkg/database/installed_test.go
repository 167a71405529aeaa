package database_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jurgelenas/xbps/pkg/database"
	"github.com/jurgelenas/xbps/pkg/errors"
	"github.com/jurgelenas/xbps/pkg/model"
)

func installed(name, version string, deps ...model.Dependency) *model.InstalledPackage {
	return &model.InstalledPackage{
		Name:         name,
		Version:      version,
		InstalledAt:  time.Now(),
		Dependencies: deps,
	}
}

func TestAddAndGetMetadata(t *testing.T) {
	db := database.NewInstalledDatabase()
	db.AddPackage(installed("zlib", "1.3.1"))

	pkg := db.GetMetadata("zlib")
	require.NotNil(t, pkg)
	assert.Equal(t, "1.3.1", pkg.Version)
	assert.True(t, db.IsInstalled("zlib"))
	assert.False(t, db.IsInstalled("libpng"))
	assert.Nil(t, db.GetMetadata("libpng"))
}

func TestAddPackage_ReplacesExisting(t *testing.T) {
	db := database.NewInstalledDatabase()
	db.AddPackage(installed("zlib", "1.2.0"))
	db.AddPackage(installed("zlib", "1.3.1"))

	assert.Len(t, db.GetInstalledPackages(), 1)
	assert.Equal(t, "1.3.1", db.GetMetadata("zlib").Version)
}

func TestRemovePackage(t *testing.T) {
	db := database.NewInstalledDatabase()
	db.AddPackage(installed("zlib", "1.3.1"))

	assert.True(t, db.RemovePackage("zlib"))
	assert.False(t, db.RemovePackage("zlib"))
	assert.False(t, db.IsInstalled("zlib"))
}

func TestRequiredBy(t *testing.T) {
	db := database.NewInstalledDatabase()
	db.AddPackage(installed("zlib", "1.3.1"))
	db.AddPackage(installed("libpng", "1.6.40", model.Dependency{Name: "zlib", VersionConstraint: ">= 1.2.0"}))
	db.AddPackage(installed("imagemagick", "7.1.0", model.Dependency{Name: "libpng"}))

	dependents := db.RequiredBy("zlib")
	require.Len(t, dependents, 1)
	assert.Equal(t, "libpng", dependents[0].Name)

	assert.Empty(t, db.RequiredBy("imagemagick"))
}

func TestWhatProvidesShlib(t *testing.T) {
	db := database.NewInstalledDatabase()
	zlib := installed("zlib", "1.3.1")
	zlib.ShlibProvides = []string{"libz.so.1"}
	db.AddPackage(zlib)
	db.AddPackage(installed("libpng", "1.6.40"))

	providers := db.WhatProvidesShlib("libz.so.1")
	require.Len(t, providers, 1)
	assert.Equal(t, "zlib", providers[0].Name)

	assert.Empty(t, db.WhatProvidesShlib("libfoo.so.1"))
}

func TestSaveAndLoadDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "installed.json")

	db := database.NewInstalledDatabase()
	pkg := installed("zlib", "1.3.1")
	pkg.Files = []model.InstalledFile{{Path: "/usr/lib/libz.so.1", Hash: "abc"}}
	db.AddPackage(pkg)
	require.NoError(t, db.SaveDatabase(path))

	loaded := database.NewInstalledDatabase()
	require.NoError(t, loaded.LoadDatabase(path))
	got := loaded.GetMetadata("zlib")
	require.NotNil(t, got)
	assert.Equal(t, "1.3.1", got.Version)
	require.Len(t, got.Files, 1)
	assert.Equal(t, "/usr/lib/libz.so.1", got.Files[0].Path)
}

func TestLoadDatabase_MissingFile(t *testing.T) {
	db := database.NewInstalledDatabase()
	require.NoError(t, db.LoadDatabase(filepath.Join(t.TempDir(), "nope.json")))
	assert.Empty(t, db.GetInstalledPackages())
}

func TestDatabase_RelativePathRejected(t *testing.T) {
	db := database.NewInstalledDatabase()
	assert.ErrorIs(t, db.LoadDatabase("installed.json"), errors.ErrInvalidPath)
	assert.ErrorIs(t, db.SaveDatabase("installed.json"), errors.ErrInvalidPath)
}
