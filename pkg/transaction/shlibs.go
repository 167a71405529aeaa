package transaction

import (
	"strings"

	"github.com/jurgelenas/xbps/pkg/errors"
	"github.com/jurgelenas/xbps/pkg/model"
)

// checkSharedLibraries validates that every shared library required by the
// working set is provided either by another queued package or by an
// installed package that survives the transaction. Any unresolved
// requirement is fatal.
func (t *Transaction) checkSharedLibraries() error {
	st := t.state

	providers := make(map[string]struct{})
	for _, e := range st.unsorted {
		if e.Action == model.ActionRemove {
			continue
		}
		for _, shlib := range e.ShlibProvides {
			providers[shlib] = struct{}{}
		}
	}
	for _, inst := range t.db.GetInstalledPackages() {
		// Removed packages drop their provides; updated ones are
		// covered by the queued new version above.
		if t.queuedAs(inst.Name, model.ActionRemove) || t.queuedAs(inst.Name, model.ActionUpdate) {
			continue
		}
		for _, shlib := range inst.ShlibProvides {
			providers[shlib] = struct{}{}
		}
	}

	var unresolved []string
	for _, e := range st.unsorted {
		if e.Action != model.ActionInstall && e.Action != model.ActionUpdate {
			continue
		}
		for _, shlib := range e.ShlibRequires {
			if _, ok := providers[shlib]; !ok {
				unresolved = append(unresolved, shlib+" (needed by "+e.ID()+")")
			}
		}
	}
	if len(unresolved) > 0 {
		return errors.Wrapf(ErrDependencyUnsatisfied,
			"unresolved shared libraries: %s", strings.Join(unresolved, ", "))
	}
	return nil
}
