//go:generate mockgen -destination=./mocks/transaction.go . ProviderResolver,MetadataStore,BinaryCache,SpaceStater

package transaction

import (
	"context"

	"github.com/jurgelenas/xbps/pkg/model"
)

// ProviderResolver is the subset of the repository pool used by the
// transaction builder.
type ProviderResolver interface {
	// ResolveProvider returns the best provider for a dependency and the
	// URI of the repository publishing it. Absence is reported with
	// errors.ErrPackageNotFound; any other error is a pool failure.
	ResolveProvider(ctx context.Context, dep model.Dependency) (*model.PackageDescriptor, string, error)

	// PackageFiles returns the files a package ships according to the
	// file manifest of its repository, or nil when no manifest exists.
	PackageFiles(ctx context.Context, repoURI, id string) ([]string, error)
}

// MetadataStore is the subset of the installed package database used by the
// transaction builder.
type MetadataStore interface {
	GetMetadata(name string) *model.InstalledPackage
	GetInstalledPackages() []*model.InstalledPackage
	RequiredBy(name string) []*model.InstalledPackage
}

// BinaryCache decides whether a transaction entry still needs downloading.
type BinaryCache interface {
	HasBinary(entry *model.TransactionEntry) bool
}

// SpaceStater answers free-space queries for the target root filesystem.
type SpaceStater interface {
	FreeSpace(path string) (freeBytes, blockSize uint64, err error)
}
