package transaction

import (
	"slices"

	"github.com/jurgelenas/xbps/internal/logger"
	"github.com/jurgelenas/xbps/pkg/model"
)

// resolveReplacements handles packages that declare themselves replacements
// for other packages: superseded queued entries are removed from the working
// set, and replaced installed packages of a different name are queued for
// removal.
func (t *Transaction) resolveReplacements() error {
	st := t.state
	for i := 0; i < len(st.unsorted); i++ {
		entry := st.unsorted[i]
		if entry.Action == model.ActionRemove || entry.Action == model.ActionConfigure {
			continue
		}
		for _, pattern := range entry.Replaces {
			for j := 0; j < len(st.unsorted); j++ {
				other := st.unsorted[j]
				if j == i || other.Name == entry.Name || other.Action == model.ActionRemove {
					continue
				}
				if !other.Satisfies(pattern) {
					continue
				}
				logger.Debugf("transaction: %s supersedes queued %s", entry.ID(), other.ID())
				st.unsorted = slices.Delete(st.unsorted, j, j+1)
				if j < i {
					i--
				}
				j--
			}
			for _, inst := range t.db.GetInstalledPackages() {
				if inst.Name == entry.Name || !inst.Satisfies(pattern) {
					continue
				}
				if t.queuedAs(inst.Name, model.ActionRemove) || t.queuedAs(inst.Name, model.ActionUpdate) {
					continue
				}
				logger.Debugf("transaction: %s replaces installed %s", entry.ID(), inst.ID())
				st.unsorted = append(st.unsorted,
					model.NewEntryFromInstalled(inst, model.ActionRemove, "replaced by "+entry.ID()))
			}
		}
	}
	return nil
}
