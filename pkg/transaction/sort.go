package transaction

import (
	"github.com/jurgelenas/xbps/pkg/model"
)

// sortEntries computes a total order over the working set consistent with
// its dependency edges: installs and updates follow their in-set providers,
// removals follow their in-set dependents. Ties are broken by discovery
// order so the result is deterministic. A cycle is fatal.
func (t *Transaction) sortEntries() ([]*model.TransactionEntry, error) {
	entries := t.state.unsorted
	n := len(entries)

	byName := make(map[string]int, n)
	for i, e := range entries {
		if _, ok := byName[e.Name]; !ok {
			byName[e.Name] = i
		}
	}

	adj := make([][]int, n)
	indeg := make([]int, n)
	addEdge := func(from, to int) {
		if from == to {
			return
		}
		adj[from] = append(adj[from], to)
		indeg[to]++
	}

	for i, e := range entries {
		if e.Action == model.ActionRemove {
			// A removed package goes after every removed package
			// that depends on it.
			for _, dep := range e.Dependencies {
				if j, ok := byName[dep.Name]; ok && entries[j].Action == model.ActionRemove {
					addEdge(i, j)
				}
			}
			continue
		}
		for _, dep := range e.Dependencies {
			if j, ok := byName[dep.Name]; ok && entries[j].Action != model.ActionRemove {
				addEdge(j, i)
			}
		}
	}

	// Kahn's algorithm; always pick the lowest discovery index among the
	// ready nodes.
	sorted := make([]*model.TransactionEntry, 0, n)
	done := make([]bool, n)
	for len(sorted) < n {
		pick := -1
		for i := 0; i < n; i++ {
			if !done[i] && indeg[i] == 0 {
				pick = i
				break
			}
		}
		if pick < 0 {
			return nil, ErrCyclicDependencies
		}
		done[pick] = true
		sorted = append(sorted, entries[pick])
		for _, to := range adj[pick] {
			indeg[to]--
		}
	}
	return sorted, nil
}
