// Package fsutil provides small filesystem helpers shared by the planning
// core: directory creation with sane modes and free-space queries for the
// target root filesystem.
package fsutil

import (
	"os"
	"path/filepath"

	"github.com/jurgelenas/xbps/pkg/errors"
)

const (
	// DirModeSecure is the default mode for directories created by xbps.
	DirModeSecure = os.FileMode(0o750)
	// FileModeSecure is the default mode for files created by xbps.
	FileModeSecure = os.FileMode(0o640)
)

// EnsureDir creates the directory (and any parents) if it does not exist.
func EnsureDir(dir string) error {
	if dir == "" {
		return errors.ErrInvalidPath
	}
	if err := os.MkdirAll(dir, DirModeSecure); err != nil {
		return errors.Wrapf(err, "failed to create directory %s", dir)
	}
	return nil
}

// CleanAbs cleans the path and verifies it is absolute.
func CleanAbs(path string) (string, error) {
	clean := filepath.Clean(path)
	if !filepath.IsAbs(clean) {
		return "", errors.Wrapf(errors.ErrInvalidPath, "path must be absolute: %s", path)
	}
	return clean, nil
}
