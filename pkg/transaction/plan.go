package transaction

import "github.com/jurgelenas/xbps/pkg/model"

// Stats carries the per-action counts and the aggregate size accounting of a
// frozen plan. Installed and removed totals are netted against each other:
// at most one of them is non-zero.
type Stats struct {
	InstallCount   uint32
	UpdateCount    uint32
	ConfigureCount uint32
	RemoveCount    uint32
	DownloadCount  uint32

	TotalDownloadSize  uint64
	TotalInstalledSize uint64
	TotalRemovedSize   uint64

	// FreeDiskSpace is the projected free space on the target root
	// filesystem after the transaction. It is only meaningful when
	// FreeDiskSpaceKnown is set; the space query is best-effort.
	FreeDiskSpace      uint64
	FreeDiskSpaceKnown bool
}

// Plan is the finalized, immutable output of a prepared transaction,
// consumed by the external executor. The working sequences used during the
// build are gone by the time a Plan exists.
type Plan struct {
	packages []*model.TransactionEntry
	stats    Stats
}

// Packages returns the topologically sorted package list.
func (p *Plan) Packages() []*model.TransactionEntry {
	out := make([]*model.TransactionEntry, len(p.packages))
	copy(out, p.packages)
	return out
}

// Stats returns the aggregate statistics of the plan.
func (p *Plan) Stats() Stats {
	return p.stats
}
