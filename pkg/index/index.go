// Package index provides parsing and querying of repository package indexes
// and their optional file-manifest indexes.
package index

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jurgelenas/xbps/pkg/errors"
	"github.com/jurgelenas/xbps/pkg/model"
)

const (
	// InitialPackageCapacity is the initial capacity for the packages slice.
	InitialPackageCapacity = 100
)

// Index is one repository's package index.
type Index struct {
	FormatVersion string                     `json:"format_version"`
	LastUpdate    time.Time                  `json:"last_update"`
	Packages      []*model.PackageDescriptor `json:"packages"`
}

// NewIndex creates a new index with the current timestamp.
func NewIndex(formatVersion string) *Index {
	return &Index{
		FormatVersion: formatVersion,
		LastUpdate:    time.Now(),
		Packages:      make([]*model.PackageDescriptor, 0, InitialPackageCapacity),
	}
}

// ParseIndex parses an index from JSON data.
func ParseIndex(data []byte) (*Index, error) {
	var index Index
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, errors.Wrap(err, "failed to parse index")
	}

	if index.FormatVersion == "" {
		return nil, fmt.Errorf("missing format version in index")
	}

	return &index, nil
}

// ParseIndexFromReader parses an index from an io.Reader.
func ParseIndexFromReader(reader io.Reader) (*Index, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read index data")
	}

	return ParseIndex(data)
}

// ParseIndexFromFile parses an index from a file on disk.
func ParseIndexFromFile(filePath string) (*Index, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open index file %s for parsing", filePath)
	}
	defer func() { _ = file.Close() }()
	return ParseIndexFromReader(file)
}

// ToJSON converts the index to JSON bytes.
func (idx *Index) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal index to JSON")
	}
	return data, nil
}

// FindPackages returns every published version of the named package.
func (idx *Index) FindPackages(name string) []*model.PackageDescriptor {
	packages := make([]*model.PackageDescriptor, 0, 5)
	for _, pkg := range idx.Packages {
		if pkg.Name == name {
			packages = append(packages, pkg)
		}
	}

	return packages
}

// FindProvider returns the best provider for the given dependency: the
// highest version satisfying the constraint and the target architecture.
// Returns nil when the index has no satisfying provider.
func (idx *Index) FindProvider(dep model.Dependency, arch string) *model.PackageDescriptor {
	var best *model.PackageDescriptor
	for _, pkg := range idx.FindPackages(dep.Name) {
		if arch != "" && !pkg.MatchArch(arch) {
			continue
		}
		if !pkg.MatchVersion(dep.VersionConstraint) {
			continue
		}
		if best == nil {
			best = pkg
			continue
		}
		v, bv := pkg.GetVersion(), best.GetVersion()
		if v != nil && bv != nil && v.GreaterThan(bv) {
			best = pkg
		}
	}
	return best
}

// AddPackage adds a package version to the index, replacing an existing
// entry with the same name and version.
func (idx *Index) AddPackage(pkg *model.PackageDescriptor) {
	for i := range idx.Packages {
		if idx.Packages[i].Name == pkg.Name && idx.Packages[i].Version == pkg.Version {
			idx.Packages[i] = pkg
			idx.LastUpdate = time.Now()
			return
		}
	}

	idx.Packages = append(idx.Packages, pkg)
	idx.LastUpdate = time.Now()
}
