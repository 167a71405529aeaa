package transaction

import (
	"context"
	stderrors "errors"

	"github.com/jurgelenas/xbps/internal/logger"
	"github.com/jurgelenas/xbps/pkg/errors"
	"github.com/jurgelenas/xbps/pkg/model"
)

// resolveDependencies grows the working set with every transitive dependency
// of the queued operations. The set is iterated by index while it is being
// appended to: newly discovered dependencies are pushed to the back and the
// scan continues until the position reaches the current length.
func (t *Transaction) resolveDependencies(ctx context.Context) error {
	st := t.state
	for i := 0; i < len(st.unsorted); i++ {
		entry := st.unsorted[i]
		if entry.Action == model.ActionRemove || entry.Action == model.ActionConfigure {
			continue
		}
		for _, dep := range entry.Dependencies {
			if t.dependencySatisfied(dep) {
				continue
			}
			desc, repoURI, err := t.pool.ResolveProvider(ctx, dep)
			if err != nil {
				if stderrors.Is(err, errors.ErrPackageNotFound) {
					st.missing = append(st.missing, model.MissingDependency{
						Requirement: dep,
						RequiredBy:  entry.ID(),
					})
					continue
				}
				// Resolver-level failure aborts the whole phase.
				return err
			}
			depEntry := model.NewEntryFromDescriptor(desc, model.ActionInstall, repoURI, "dependency of "+entry.ID())
			st.unsorted = append(st.unsorted, depEntry)
			logger.Debugf("transaction: queued %s (dependency of %s)", depEntry.ID(), entry.ID())
		}
	}
	return nil
}

// dependencySatisfied reports whether a dependency constraint is already met
// by the working set or by the installed system.
func (t *Transaction) dependencySatisfied(dep model.Dependency) bool {
	for _, e := range t.state.unsorted {
		if e.Action == model.ActionRemove {
			continue
		}
		if e.Satisfies(dep) {
			return true
		}
	}
	if meta := t.db.GetMetadata(dep.Name); meta != nil && meta.Satisfies(dep) {
		// An installed provider queued for removal or update no longer
		// counts; the working set check above covers the new version.
		if !t.queuedAs(dep.Name, model.ActionRemove) && !t.queuedAs(dep.Name, model.ActionUpdate) {
			return true
		}
	}
	return false
}

// queuedAs reports whether the working set holds an entry for the named
// package with the given action.
func (t *Transaction) queuedAs(name string, action model.Action) bool {
	for _, e := range t.state.unsorted {
		if e.Name == name && e.Action == action {
			return true
		}
	}
	return false
}
