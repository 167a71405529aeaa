package fsutil

import (
	"golang.org/x/sys/unix"

	"github.com/jurgelenas/xbps/pkg/errors"
)

// FreeSpace reports the number of free bytes available to unprivileged users
// on the filesystem containing path, along with the filesystem block size.
func FreeSpace(path string) (freeBytes, blockSize uint64, err error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return 0, 0, errors.Wrapf(err, "statfs %s", path)
	}
	bsize := uint64(st.Bsize)
	return st.Bavail * bsize, bsize, nil
}

// StatFS answers free-space queries against the real filesystem.
type StatFS struct{}

// FreeSpace implements the filesystem stats provider contract.
func (StatFS) FreeSpace(path string) (freeBytes, blockSize uint64, err error) {
	return FreeSpace(path)
}
