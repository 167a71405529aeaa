// Package model provides the shared data structures for repository indexes,
// installed package metadata and transaction planning.
package model

import (
	"strings"

	"github.com/hashicorp/go-version"
)

// AnyArch matches every target architecture.
const AnyArch = "noarch"

// DefaultVersionConstraint is used when a dependency carries no constraint.
const DefaultVersionConstraint = ">= 0.0.0"

// Dependency represents a dependency with a name and an optional version constraint.
type Dependency struct {
	Name              string `json:"name"`
	VersionConstraint string `json:"version_constraint,omitempty"`
}

// String returns the dependency in "name constraint" form.
func (d Dependency) String() string {
	if d.VersionConstraint == "" {
		return d.Name
	}
	return d.Name + " " + d.VersionConstraint
}

// PackageDescriptor represents one package version published by a repository
// index: identity, dependency constraints, shared library interface and the
// declared sizes used for transaction accounting.
type PackageDescriptor struct {
	Name          string       `json:"name"`
	Version       string       `json:"version"`
	Architecture  string       `json:"architecture,omitempty"`
	URL           string       `json:"url,omitempty"`
	Checksum      string       `json:"checksum,omitempty"`
	Dependencies  []Dependency `json:"dependencies,omitempty"`
	Conflicts     []Dependency `json:"conflicts,omitempty"`
	Replaces      []Dependency `json:"replaces,omitempty"`
	ShlibRequires []string     `json:"shlib_requires,omitempty"`
	ShlibProvides []string     `json:"shlib_provides,omitempty"`
	InstalledSize uint64       `json:"installed_size"`
	FileSize      uint64       `json:"filename_size"`
}

// ID returns the pkgver identifier of this package.
func (p *PackageDescriptor) ID() string {
	return p.Name + "@" + p.Version
}

// GetVersion returns the parsed version of this package, or nil when the
// version string is malformed.
func (p *PackageDescriptor) GetVersion() *version.Version {
	v, err := version.NewVersion(p.Version)
	if err != nil {
		return nil
	}
	return v
}

// MatchArch checks if this package matches the given architecture.
func (p *PackageDescriptor) MatchArch(arch string) bool {
	return p.Architecture == "" || p.Architecture == arch || p.Architecture == AnyArch
}

// MatchVersion checks if this package's version satisfies the given
// constraint string. An empty constraint matches everything.
func (p *PackageDescriptor) MatchVersion(versionConstraint string) bool {
	if versionConstraint == "" {
		versionConstraint = DefaultVersionConstraint
	}
	constraint, err := version.NewConstraint(versionConstraint)
	if err != nil {
		return false
	}
	v := p.GetVersion()
	if v == nil {
		return false
	}
	return constraint.Check(v)
}

// Satisfies checks whether this package satisfies the given dependency.
func (p *PackageDescriptor) Satisfies(dep Dependency) bool {
	return p.Name == dep.Name && p.MatchVersion(dep.VersionConstraint)
}

// SplitID splits a pkgver identifier of the form "name@version" into its
// parts. The version part is empty when no version is present.
func SplitID(id string) (name, ver string) {
	if i := strings.LastIndex(id, "@"); i >= 0 {
		return id[:i], id[i+1:]
	}
	return id, ""
}
