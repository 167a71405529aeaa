// Package cache manages the local binary package cache: deciding whether a
// transaction entry still needs downloading and validating cached archives.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mholt/archives"

	"github.com/jurgelenas/xbps/pkg/errors"
	"github.com/jurgelenas/xbps/pkg/model"
)

const (
	// binaryExtension is the file extension of cached binary packages.
	binaryExtension = ".xbps.tar.gz"

	// metadataFile is the metadata document embedded in every binary package.
	metadataFile = "props.json"
)

// Metadata is the package metadata document embedded in a binary package.
type Metadata struct {
	Name          string `json:"name"`
	Version       string `json:"version"`
	Architecture  string `json:"architecture,omitempty"`
	InstalledSize uint64 `json:"installed_size"`
}

// Manager implements local binary cache lookups.
type Manager struct {
	directory string
}

// NewManager creates a cache manager rooted at the given directory.
func NewManager(directory string) *Manager {
	return &Manager{directory: directory}
}

// GetDirectory returns the cache root directory.
func (cm *Manager) GetDirectory() string {
	return cm.directory
}

// BinaryPath returns the path a cached binary package would occupy.
func (cm *Manager) BinaryPath(entry *model.TransactionEntry) string {
	return filepath.Join(cm.directory, fmt.Sprintf("%s-%s%s", entry.Name, entry.Version, binaryExtension))
}

// HasBinary reports whether the binary package for the entry is already
// present in the local cache.
func (cm *Manager) HasBinary(entry *model.TransactionEntry) bool {
	info, err := os.Stat(cm.BinaryPath(entry))
	return err == nil && !info.IsDir()
}

// ReadMetadata opens a cached binary package and decodes its embedded
// metadata document without extracting the archive.
func (cm *Manager) ReadMetadata(ctx context.Context, entry *model.TransactionEntry) (*Metadata, error) {
	filePath := cm.BinaryPath(entry)
	if _, err := os.Stat(filePath); err != nil {
		return nil, errors.Wrapf(errors.ErrPackageNotFound, "no cached binary for %s", entry.ID())
	}

	fsys, err := archives.FileSystem(ctx, filePath, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open cached binary %s", filePath)
	}

	file, err := fsys.Open(metadataFile)
	if err != nil {
		return nil, errors.Wrapf(err, "cached binary %s has no metadata", filePath)
	}
	defer func() { _ = file.Close() }()

	metadata := &Metadata{}
	if err := json.NewDecoder(file).Decode(metadata); err != nil {
		return nil, errors.Wrapf(err, "cannot decode metadata of %s", filePath)
	}

	if metadata.Name != entry.Name || metadata.Version != entry.Version {
		return nil, errors.Wrapf(ErrBinaryInvalid,
			"metadata mismatch - expected %s@%s but got %s@%s",
			entry.Name, entry.Version, metadata.Name, metadata.Version)
	}
	return metadata, nil
}

// Clean removes every cached binary package and returns the freed bytes.
func (cm *Manager) Clean() (int64, error) {
	entries, err := os.ReadDir(cm.directory)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, errors.Wrap(err, "failed to read cache directory")
	}

	var freed int64
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if err := os.Remove(filepath.Join(cm.directory, e.Name())); err != nil {
			return freed, errors.Wrapf(err, "failed to remove %s", e.Name())
		}
		freed += info.Size()
	}
	return freed, nil
}
