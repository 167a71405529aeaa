package transaction

import (
	"context"
	"slices"

	"github.com/jurgelenas/xbps/internal/logger"
)

// Prepare runs the planning pipeline over the populated working set:
// dependency resolution, reverse dependency checks, conflict detection,
// package replacement resolution, shared library validation, topological
// sorting and size accounting. Phases run strictly in order; the first
// fatal failure releases the whole transaction and is returned. On success
// the working sequences are dropped and the frozen plan becomes available
// through Plan.
func (t *Transaction) Prepare(ctx context.Context) error {
	if t.state == nil {
		return ErrNoTransaction
	}

	// Collect dependencies for pkgs in the transaction.
	if err := t.resolveDependencies(ctx); err != nil {
		t.release()
		return err
	}

	// If there are missing deps or revdeps bail out.
	t.checkReverseDependencies()
	if len(t.state.missing) > 0 {
		err := &MissingDependenciesError{Missing: slices.Clone(t.state.missing)}
		t.release()
		return err
	}

	if err := t.detectConflicts(ctx); err != nil {
		t.release()
		return err
	}
	if len(t.state.conflicts) > 0 {
		err := &ConflictsError{Conflicts: slices.Clone(t.state.conflicts)}
		t.release()
		return err
	}

	// Check for packages to be replaced.
	if err := t.resolveReplacements(); err != nil {
		t.release()
		return err
	}

	if err := t.checkSharedLibraries(); err != nil {
		t.release()
		return err
	}

	sorted, err := t.sortEntries()
	if err != nil {
		t.release()
		return err
	}

	stats, err := t.computeStats(sorted)
	if err != nil {
		t.release()
		return err
	}

	// The working sequences are not necessary anymore; freeze the plan.
	t.plan = &Plan{packages: sorted, stats: *stats}
	t.release()
	logger.Debugf("transaction: prepared %d packages", len(sorted))
	return nil
}
