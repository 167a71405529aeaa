package model

// Action represents the planned operation for one transaction entry.
type Action string

const (
	// ActionInstall installs a package that is not currently present.
	ActionInstall Action = "install"
	// ActionUpdate replaces an installed package with a newer version.
	ActionUpdate Action = "update"
	// ActionRemove removes an installed package.
	ActionRemove Action = "remove"
	// ActionConfigure re-runs configuration of an installed package.
	ActionConfigure Action = "configure"
)

// TransactionEntry is one package's planned action inside a transaction.
// Entries are created from an index descriptor (install/update) or from
// installed metadata (remove/configure) and may be mutated by later planning
// phases (sizes, the download flag) until the plan is frozen.
type TransactionEntry struct {
	Name          string       `json:"name"`
	Version       string       `json:"version"`
	Action        Action       `json:"action"`
	Repository    string       `json:"repository,omitempty"`
	InstalledSize uint64       `json:"installed_size"`
	FileSize      uint64       `json:"filename_size"`
	Preserve      bool         `json:"preserve,omitempty"`
	Download      bool         `json:"download,omitempty"`
	Reason        string       `json:"reason,omitempty"`
	Dependencies  []Dependency `json:"dependencies,omitempty"`
	Conflicts     []Dependency `json:"conflicts,omitempty"`
	Replaces      []Dependency `json:"replaces,omitempty"`
	ShlibRequires []string     `json:"shlib_requires,omitempty"`
	ShlibProvides []string     `json:"shlib_provides,omitempty"`
}

// ID returns the pkgver identifier of this entry.
func (e *TransactionEntry) ID() string {
	return e.Name + "@" + e.Version
}

// Satisfies checks whether this entry satisfies the given dependency.
func (e *TransactionEntry) Satisfies(dep Dependency) bool {
	d := PackageDescriptor{Name: e.Name, Version: e.Version}
	return d.Satisfies(dep)
}

// NewEntryFromDescriptor builds a transaction entry from an index descriptor.
func NewEntryFromDescriptor(desc *PackageDescriptor, action Action, repository, reason string) *TransactionEntry {
	return &TransactionEntry{
		Name:          desc.Name,
		Version:       desc.Version,
		Action:        action,
		Repository:    repository,
		InstalledSize: desc.InstalledSize,
		FileSize:      desc.FileSize,
		Reason:        reason,
		Dependencies:  desc.Dependencies,
		Conflicts:     desc.Conflicts,
		Replaces:      desc.Replaces,
		ShlibRequires: desc.ShlibRequires,
		ShlibProvides: desc.ShlibProvides,
	}
}

// NewEntryFromInstalled builds a transaction entry from installed metadata.
func NewEntryFromInstalled(pkg *InstalledPackage, action Action, reason string) *TransactionEntry {
	return &TransactionEntry{
		Name:          pkg.Name,
		Version:       pkg.Version,
		Action:        action,
		InstalledSize: pkg.InstalledSize,
		Reason:        reason,
		Dependencies:  pkg.Dependencies,
		ShlibRequires: pkg.ShlibRequires,
		ShlibProvides: pkg.ShlibProvides,
	}
}

// MissingDependency describes one dependency constraint that no repository in
// the pool could satisfy.
type MissingDependency struct {
	Requirement Dependency `json:"requirement"`
	RequiredBy  string     `json:"required_by"`
}

// Conflict describes one detected package or file conflict.
type Conflict struct {
	Pkgver        string `json:"pkgver"`
	ConflictsWith string `json:"conflicts_with"`
	Reason        string `json:"reason,omitempty"`
}
