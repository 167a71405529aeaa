package transaction

import (
	"github.com/jurgelenas/xbps/internal/logger"
	"github.com/jurgelenas/xbps/pkg/model"
	"github.com/jurgelenas/xbps/pkg/repository"
)

// signatureSize is the fixed size of the detached signature file fetched
// alongside every downloaded binary package.
const signatureSize = 512

// computeStats walks the final package list once and derives the per-action
// counts, the download and install/remove size totals with net-change
// accounting, and the projected free space on the target root filesystem.
// The free-space check is best-effort: a failing filesystem query leaves the
// space fields unset and the phase succeeds.
func (t *Transaction) computeStats(packages []*model.TransactionEntry) (*Stats, error) {
	var (
		stats    Stats
		instsize uint64
		rmsize   uint64
		dlsize   uint64
	)

	for _, e := range packages {
		switch e.Action {
		case model.ActionConfigure:
			stats.ConfigureCount++
			continue
		case model.ActionInstall:
			stats.InstallCount++
		case model.ActionUpdate:
			stats.UpdateCount++
		case model.ActionRemove:
			stats.RemoveCount++
		}

		if e.Action == model.ActionInstall || e.Action == model.ActionUpdate {
			instsize += e.InstalledSize
			if repository.IsRemote(e.Repository) && !t.cache.HasBinary(e) {
				// signature file: 512 bytes
				tsize := e.FileSize + signatureSize
				dlsize += tsize
				instsize += tsize
				stats.DownloadCount++
				e.Download = true
			}
		}

		// Removing, or updating without preserving configuration,
		// frees the currently installed size.
		if e.Action == model.ActionRemove || (e.Action == model.ActionUpdate && !e.Preserve) {
			meta := t.db.GetMetadata(e.Name)
			if meta == nil {
				// Already removed or unmanaged.
				continue
			}
			rmsize += meta.InstalledSize
		}
	}

	// Simultaneous installs and removals offset disk usage rather than
	// summing independently.
	switch {
	case instsize > rmsize:
		instsize -= rmsize
		rmsize = 0
	case rmsize > instsize:
		rmsize -= instsize
		instsize = 0
	default:
		instsize, rmsize = 0, 0
	}

	stats.TotalInstalledSize = instsize
	stats.TotalRemovedSize = rmsize
	stats.TotalDownloadSize = dlsize

	free, _, err := t.space.FreeSpace(t.rootDir)
	if err != nil {
		logger.Debugf("transaction: statfs %s failed: %v", t.rootDir, err)
		return &stats, nil
	}
	if instsize > free {
		return nil, ErrNoSpace
	}
	stats.FreeDiskSpace = free - instsize
	stats.FreeDiskSpaceKnown = true

	return &stats, nil
}
