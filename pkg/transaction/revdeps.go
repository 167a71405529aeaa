package transaction

import (
	"github.com/jurgelenas/xbps/pkg/model"
)

// checkReverseDependencies ensures removal and update requests do not leave
// installed dependents with broken dependencies. Every break found is
// recorded as a missing dependency; the caller judges the accumulated set.
func (t *Transaction) checkReverseDependencies() {
	st := t.state
	for i := 0; i < len(st.unsorted); i++ {
		entry := st.unsorted[i]
		if entry.Action != model.ActionRemove && entry.Action != model.ActionUpdate {
			continue
		}
		for _, dependent := range t.db.RequiredBy(entry.Name) {
			var req model.Dependency
			for _, d := range dependent.Dependencies {
				if d.Name == entry.Name {
					req = d
					break
				}
			}
			if entry.Action == model.ActionUpdate && entry.Satisfies(req) {
				// The new version still satisfies the dependent.
				continue
			}
			if t.queuedAs(dependent.Name, model.ActionRemove) || t.queuedAs(dependent.Name, model.ActionUpdate) {
				// The dependent is handled by this transaction itself.
				continue
			}
			st.missing = append(st.missing, model.MissingDependency{
				Requirement: req,
				RequiredBy:  dependent.ID(),
			})
		}
	}
}
