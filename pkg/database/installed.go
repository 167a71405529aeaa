// Package database provides a simple JSON-backed store for the installed
// package metadata of the target system.
package database

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jurgelenas/xbps/pkg/errors"
	"github.com/jurgelenas/xbps/pkg/model"
)

// InstalledManager defines the interface for querying and maintaining the
// installed package database.
type InstalledManager interface {
	LoadDatabase(dbPath string) error
	SaveDatabase(dbPath string) error
	GetMetadata(name string) *model.InstalledPackage
	IsInstalled(name string) bool
	AddPackage(pkg *model.InstalledPackage)
	RemovePackage(name string) bool
	GetInstalledPackages() []*model.InstalledPackage
	WhatProvidesShlib(shlib string) []*model.InstalledPackage
	RequiredBy(name string) []*model.InstalledPackage
}

// InstalledManagerImpl represents the database of installed packages.
type InstalledManagerImpl struct {
	FormatVersion string                    `json:"format_version"`
	LastUpdate    time.Time                 `json:"last_update"`
	Packages      []*model.InstalledPackage `json:"packages"`
	rwMutex       sync.RWMutex
}

const (
	// InitialPackageCapacity defines the initial slice capacity for installed packages.
	InitialPackageCapacity = 100
)

// NewInstalledDatabase creates a new installed packages database.
func NewInstalledDatabase() *InstalledManagerImpl {
	return &InstalledManagerImpl{
		FormatVersion: "1",
		LastUpdate:    time.Now(),
		Packages:      make([]*model.InstalledPackage, 0, InitialPackageCapacity),
	}
}

// LoadDatabase loads the installed packages database from file. A missing
// file leaves the database empty.
func (db *InstalledManagerImpl) LoadDatabase(dbPath string) error {
	cleanPath := filepath.Clean(dbPath)
	if !filepath.IsAbs(cleanPath) {
		return fmt.Errorf("database path must be absolute: %s: %w", dbPath, errors.ErrInvalidPath)
	}

	if _, err := os.Stat(cleanPath); os.IsNotExist(err) {
		return nil
	}

	file, err := os.Open(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to open database file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return db.parseFromReader(file)
}

// SaveDatabase saves the installed packages database to file atomically.
func (db *InstalledManagerImpl) SaveDatabase(dbPath string) (err error) {
	cleanPath := filepath.Clean(dbPath)
	if !filepath.IsAbs(cleanPath) {
		return fmt.Errorf("database path must be absolute: %s: %w", dbPath, errors.ErrInvalidPath)
	}

	dbDir := filepath.Dir(cleanPath)
	tmpFile, err := os.CreateTemp(dbDir, "xbps-db-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file in %s: %w", dbDir, err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	db.rwMutex.RLock()
	data, err := json.MarshalIndent(db, "", "  ")
	db.rwMutex.RUnlock()
	if err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("failed to marshal database to JSON: %w", err)
	}

	if _, err = tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("failed to write to temporary file: %w", err)
	}
	if err = tmpFile.Sync(); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("failed to sync temporary file to disk: %w", err)
	}
	if err = tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err = os.Rename(tmpPath, cleanPath); err != nil {
		return fmt.Errorf("failed to replace database file: %w", err)
	}
	return nil
}

func (db *InstalledManagerImpl) parseFromReader(reader io.Reader) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("failed to read database data: %w", err)
	}

	db.rwMutex.Lock()
	defer db.rwMutex.Unlock()
	if err := json.Unmarshal(data, db); err != nil {
		return fmt.Errorf("failed to parse database: %w", err)
	}
	return nil
}

// GetMetadata returns the metadata record for the named package, or nil when
// the package is not installed.
func (db *InstalledManagerImpl) GetMetadata(name string) *model.InstalledPackage {
	db.rwMutex.RLock()
	defer db.rwMutex.RUnlock()

	for _, pkg := range db.Packages {
		if pkg.Name == name {
			return pkg
		}
	}
	return nil
}

// IsInstalled reports whether the named package is installed.
func (db *InstalledManagerImpl) IsInstalled(name string) bool {
	return db.GetMetadata(name) != nil
}

// AddPackage records a package as installed, replacing an existing record of
// the same name.
func (db *InstalledManagerImpl) AddPackage(pkg *model.InstalledPackage) {
	db.rwMutex.Lock()
	defer db.rwMutex.Unlock()

	for i, existing := range db.Packages {
		if existing.Name == pkg.Name {
			db.Packages[i] = pkg
			db.LastUpdate = time.Now()
			return
		}
	}
	db.Packages = append(db.Packages, pkg)
	db.LastUpdate = time.Now()
}

// RemovePackage drops the named package from the database.
func (db *InstalledManagerImpl) RemovePackage(name string) bool {
	db.rwMutex.Lock()
	defer db.rwMutex.Unlock()

	for i, pkg := range db.Packages {
		if pkg.Name == name {
			db.Packages = append(db.Packages[:i], db.Packages[i+1:]...)
			db.LastUpdate = time.Now()
			return true
		}
	}
	return false
}

// GetInstalledPackages returns every installed package record.
func (db *InstalledManagerImpl) GetInstalledPackages() []*model.InstalledPackage {
	db.rwMutex.RLock()
	defer db.rwMutex.RUnlock()

	out := make([]*model.InstalledPackage, len(db.Packages))
	copy(out, db.Packages)
	return out
}

// WhatProvidesShlib returns the installed packages providing the given
// shared library.
func (db *InstalledManagerImpl) WhatProvidesShlib(shlib string) []*model.InstalledPackage {
	db.rwMutex.RLock()
	defer db.rwMutex.RUnlock()

	var providers []*model.InstalledPackage
	for _, pkg := range db.Packages {
		for _, provided := range pkg.ShlibProvides {
			if provided == shlib {
				providers = append(providers, pkg)
				break
			}
		}
	}
	return providers
}

// RequiredBy returns the installed packages declaring a dependency on the
// named package.
func (db *InstalledManagerImpl) RequiredBy(name string) []*model.InstalledPackage {
	db.rwMutex.RLock()
	defer db.rwMutex.RUnlock()

	var dependents []*model.InstalledPackage
	for _, pkg := range db.Packages {
		for _, dep := range pkg.Dependencies {
			if dep.Name == name {
				dependents = append(dependents, pkg)
				break
			}
		}
	}
	return dependents
}
