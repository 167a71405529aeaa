// Package transaction implements the transaction builder: the multi-phase
// pipeline turning a caller-populated working set of package operations into
// a fully resolved, ordered and size-accounted plan.
package transaction

import (
	"github.com/jurgelenas/xbps/pkg/model"
)

// Transaction owns the mutable state of one plan build. The caller creates
// it, calls Init, populates the working set with the requested operations
// and runs Prepare once. A fatal failure during Prepare releases the whole
// transaction; the caller must Init again to build a new plan.
type Transaction struct {
	pool    ProviderResolver
	db      MetadataStore
	cache   BinaryCache
	space   SpaceStater
	rootDir string

	state *buildState
	plan  *Plan
}

// buildState holds the three working sequences that exist only while the
// plan is being built.
type buildState struct {
	unsorted  []*model.TransactionEntry
	missing   []model.MissingDependency
	conflicts []model.Conflict
}

// New creates a transaction builder over the given collaborators. rootDir is
// the target root directory used for disk space accounting.
func New(pool ProviderResolver, db MetadataStore, cache BinaryCache, space SpaceStater, rootDir string) *Transaction {
	return &Transaction{
		pool:    pool,
		db:      db,
		cache:   cache,
		space:   space,
		rootDir: rootDir,
	}
}

// Init creates the empty working sequences. It is idempotent: a second call
// without an intervening failure or release leaves existing state untouched.
func (t *Transaction) Init() error {
	if t.state != nil {
		return nil
	}
	t.state = &buildState{
		unsorted:  make([]*model.TransactionEntry, 0, 8),
		missing:   make([]model.MissingDependency, 0),
		conflicts: make([]model.Conflict, 0),
	}
	return nil
}

// AddEntry appends one requested operation to the working set. Entries with
// a pkgver already queued are ignored.
func (t *Transaction) AddEntry(entry *model.TransactionEntry) error {
	if t.state == nil {
		return ErrNoTransaction
	}
	for _, e := range t.state.unsorted {
		if e.ID() == entry.ID() && e.Action == entry.Action {
			return nil
		}
	}
	t.state.unsorted = append(t.state.unsorted, entry)
	return nil
}

// Entries returns the current working set. Only valid between Init and
// Prepare; diagnostics after a fatal Prepare travel inside the returned
// error instead.
func (t *Transaction) Entries() []*model.TransactionEntry {
	if t.state == nil {
		return nil
	}
	return t.state.unsorted
}

// Plan returns the frozen plan built by a successful Prepare, or nil.
func (t *Transaction) Plan() *Plan {
	return t.plan
}

// release discards all transaction state so no half-built plan can leak.
func (t *Transaction) release() {
	t.state = nil
}
