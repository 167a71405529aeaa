package transaction

import (
	"context"
	stderrors "errors"

	"github.com/jurgelenas/xbps/pkg/model"
	"github.com/jurgelenas/xbps/pkg/repository"
)

// detectConflicts finds package-identity and file-level conflicts between
// the working set, itself, and the installed system. All conflicts are
// collected before the next phase judges them; only pool failures abort the
// phase early.
func (t *Transaction) detectConflicts(ctx context.Context) error {
	st := t.state
	for i := 0; i < len(st.unsorted); i++ {
		entry := st.unsorted[i]
		if entry.Action == model.ActionRemove || entry.Action == model.ActionConfigure {
			continue
		}
		t.declaredConflicts(i, entry)
		if err := t.fileConflicts(ctx, i, entry); err != nil {
			return err
		}
	}
	return nil
}

// declaredConflicts matches the entry's declared conflicts against the other
// queued packages and the installed system, in both directions.
func (t *Transaction) declaredConflicts(i int, entry *model.TransactionEntry) {
	st := t.state
	for _, c := range entry.Conflicts {
		for j, other := range st.unsorted {
			if i == j || other.Action == model.ActionRemove {
				continue
			}
			if other.Satisfies(c) {
				st.conflicts = append(st.conflicts, model.Conflict{
					Pkgver:        entry.ID(),
					ConflictsWith: other.ID(),
					Reason:        "conflicts with queued package",
				})
			}
		}
		for _, inst := range t.db.GetInstalledPackages() {
			// Installed versions leaving the system or superseded by a
			// queued update no longer count; the working-set loop above
			// covers the new version.
			if inst.Name == entry.Name || t.queuedAs(inst.Name, model.ActionRemove) || t.queuedAs(inst.Name, model.ActionUpdate) {
				continue
			}
			if inst.Satisfies(c) {
				st.conflicts = append(st.conflicts, model.Conflict{
					Pkgver:        entry.ID(),
					ConflictsWith: inst.ID(),
					Reason:        "conflicts with installed package",
				})
			}
		}
	}
	// Installed packages may declare the conflict from their side.
	for _, inst := range t.db.GetInstalledPackages() {
		if inst.Name == entry.Name || t.queuedAs(inst.Name, model.ActionRemove) || t.queuedAs(inst.Name, model.ActionUpdate) {
			continue
		}
		for _, c := range inst.Conflicts {
			if entry.Satisfies(c) {
				st.conflicts = append(st.conflicts, model.Conflict{
					Pkgver:        entry.ID(),
					ConflictsWith: inst.ID(),
					Reason:        "installed package declares conflict",
				})
			}
		}
	}
}

// fileConflicts matches the entry's file manifest against the files of
// other queued packages and of installed packages not handled by this
// transaction.
func (t *Transaction) fileConflicts(ctx context.Context, i int, entry *model.TransactionEntry) error {
	st := t.state
	files, err := t.pool.PackageFiles(ctx, entry.Repository, entry.ID())
	if err != nil {
		if stderrors.Is(err, repository.ErrRepositoryNotFound) {
			// Caller-populated entry without a pool repository; no
			// manifest to check.
			return nil
		}
		return err
	}
	for _, file := range files {
		for j := 0; j < i; j++ {
			other := st.unsorted[j]
			if other.Action == model.ActionRemove || other.Action == model.ActionConfigure {
				continue
			}
			otherFiles, err := t.pool.PackageFiles(ctx, other.Repository, other.ID())
			if err != nil {
				if stderrors.Is(err, repository.ErrRepositoryNotFound) {
					continue
				}
				return err
			}
			for _, of := range otherFiles {
				if of == file {
					st.conflicts = append(st.conflicts, model.Conflict{
						Pkgver:        entry.ID(),
						ConflictsWith: other.ID(),
						Reason:        "file conflict: " + file,
					})
				}
			}
		}
		for _, inst := range t.db.GetInstalledPackages() {
			if inst.Name == entry.Name {
				continue
			}
			if t.queuedAs(inst.Name, model.ActionRemove) || t.queuedAs(inst.Name, model.ActionUpdate) {
				continue
			}
			for _, of := range inst.Files {
				if of.Path == file {
					st.conflicts = append(st.conflicts, model.Conflict{
						Pkgver:        entry.ID(),
						ConflictsWith: inst.ID(),
						Reason:        "file conflict: " + file,
					})
				}
			}
		}
	}
	return nil
}
