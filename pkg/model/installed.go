package model

import "time"

// InstalledFile represents a file owned by an installed package.
type InstalledFile struct {
	Path string `json:"path"` // Relative path from the root directory
	Hash string `json:"hash"` // SHA256 hash of the file contents
}

// InstalledPackage represents the recorded metadata of a package that is
// already present on the target system.
type InstalledPackage struct {
	Name          string          `json:"name"`
	Version       string          `json:"version"`
	Architecture  string          `json:"architecture,omitempty"`
	InstalledSize uint64          `json:"installed_size"`
	InstalledAt   time.Time       `json:"installed_at"`
	InstalledFrom string          `json:"installed_from,omitempty"` // Repository URI it was installed from
	Automatic     bool            `json:"automatic,omitempty"`      // Installed as a dependency, not requested
	Dependencies  []Dependency    `json:"dependencies,omitempty"`
	Conflicts     []Dependency    `json:"conflicts,omitempty"`
	ShlibRequires []string        `json:"shlib_requires,omitempty"`
	ShlibProvides []string        `json:"shlib_provides,omitempty"`
	Files         []InstalledFile `json:"files,omitempty"`
}

// ID returns the pkgver identifier of this installed package.
func (p *InstalledPackage) ID() string {
	return p.Name + "@" + p.Version
}

// Satisfies checks whether this installed package satisfies the given
// dependency.
func (p *InstalledPackage) Satisfies(dep Dependency) bool {
	d := PackageDescriptor{Name: p.Name, Version: p.Version}
	return d.Satisfies(dep)
}
