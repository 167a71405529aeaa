package index

import (
	"encoding/json"
	"io"
	"os"

	"github.com/jurgelenas/xbps/pkg/errors"
)

// FilesIndex is one repository's optional file-manifest index: the list of
// files shipped by every published package, keyed by pkgver identifier. It
// backs file-level conflict detection.
type FilesIndex struct {
	FormatVersion string              `json:"format_version"`
	Files         map[string][]string `json:"files"`
}

// ParseFilesIndex parses a file-manifest index from JSON data.
func ParseFilesIndex(data []byte) (*FilesIndex, error) {
	var index FilesIndex
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, errors.Wrap(err, "failed to parse files index")
	}
	return &index, nil
}

// ParseFilesIndexFromReader parses a file-manifest index from an io.Reader.
func ParseFilesIndexFromReader(reader io.Reader) (*FilesIndex, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read files index data")
	}
	return ParseFilesIndex(data)
}

// ParseFilesIndexFromFile parses a file-manifest index from a file on disk.
func ParseFilesIndexFromFile(filePath string) (*FilesIndex, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open files index %s for parsing", filePath)
	}
	defer func() { _ = file.Close() }()
	return ParseFilesIndexFromReader(file)
}

// PackageFiles returns the file list for a pkgver identifier, or nil when
// the package is not present in the manifest.
func (fi *FilesIndex) PackageFiles(id string) []string {
	if fi == nil || fi.Files == nil {
		return nil
	}
	return fi.Files[id]
}
