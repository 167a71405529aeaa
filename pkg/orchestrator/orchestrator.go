// Package orchestrator ties the repository pool, the installed package
// database and the local binary cache together into the process context used
// by callers to build transaction plans.
package orchestrator

import (
	"context"
	"fmt"

	"github.com/jurgelenas/xbps/pkg/cache"
	"github.com/jurgelenas/xbps/pkg/config"
	"github.com/jurgelenas/xbps/pkg/database"
	"github.com/jurgelenas/xbps/pkg/errors"
	"github.com/jurgelenas/xbps/pkg/fsutil"
	"github.com/jurgelenas/xbps/pkg/model"
	"github.com/jurgelenas/xbps/pkg/repository"
	"github.com/jurgelenas/xbps/pkg/transaction"
)

// Orchestrator is the caller-owned process context: configuration, the
// repository pool and the current transaction. One plan is built at a time;
// concurrent use requires external serialization.
type Orchestrator struct {
	Config *config.Config
	Pool   *repository.Pool
	DB     database.InstalledManager
	Cache  *cache.Manager
	Space  transaction.SpaceStater
	Hooks  Hooks

	tx *transaction.Transaction
}

// New wires the default collaborators from the configuration: an HTTP/local
// fetcher behind the pool, the JSON installed database and the binary cache.
func New(cfg *config.Config) (*Orchestrator, error) {
	db := database.NewInstalledDatabase()
	if err := db.LoadDatabase(cfg.GetDatabasePath()); err != nil {
		return nil, errors.Wrap(err, "failed to load installed database")
	}
	return &Orchestrator{
		Config: cfg,
		Pool:   repository.NewPool(cfg, repository.NewHTTPFetcher(cfg)),
		DB:     db,
		Cache:  cache.NewManager(cfg.GetBinaryCacheDir()),
		Space:  fsutil.StatFS{},
	}, nil
}

// Sync refreshes the cached indexes for one repository, or all of them when
// uri is empty. Best-effort: the last per-repository error wins.
func (o *Orchestrator) Sync(ctx context.Context, uri string) error {
	return o.Pool.Sync(ctx, uri)
}

// Transaction returns the current transaction, or nil.
func (o *Orchestrator) Transaction() *transaction.Transaction {
	return o.tx
}

// Plan resolves the requested operations into initial transaction entries,
// runs the planning pipeline and returns the frozen plan. A fatal planning
// failure leaves the orchestrator without a transaction; the next Plan call
// starts from scratch.
func (o *Orchestrator) Plan(ctx context.Context, requests []Request) (*transaction.Plan, error) {
	o.tx = transaction.New(o.Pool, o.DB, o.Cache, o.Space, o.Config.Settings.RootDir)
	if err := o.tx.Init(); err != nil {
		return nil, err
	}

	for _, req := range requests {
		entry, err := o.buildEntry(ctx, req)
		if err != nil {
			emit(o.Hooks, Event{Phase: "error", ID: req.Name, Msg: err.Error()})
			return nil, err
		}
		if entry == nil {
			continue
		}
		emit(o.Hooks, Event{Phase: "resolving", ID: entry.ID(), Msg: string(entry.Action)})
		if err := o.tx.AddEntry(entry); err != nil {
			return nil, err
		}
	}

	emit(o.Hooks, Event{Phase: "planning", Msg: fmt.Sprintf("%d requested operations", len(requests))})
	if err := o.tx.Prepare(ctx); err != nil {
		o.tx = nil
		emit(o.Hooks, Event{Phase: "error", Msg: err.Error()})
		return nil, err
	}

	plan := o.tx.Plan()
	stats := plan.Stats()
	emit(o.Hooks, Event{Phase: "stats", Msg: fmt.Sprintf("download %d bytes, install %d bytes, remove %d bytes",
		stats.TotalDownloadSize, stats.TotalInstalledSize, stats.TotalRemovedSize)})
	emit(o.Hooks, Event{Phase: "done", Msg: fmt.Sprintf("%d packages", len(plan.Packages()))})
	return plan, nil
}

// buildEntry turns one request into an initial transaction entry. Install
// requests against an installed package become updates; requests already
// satisfied at the requested version are skipped.
func (o *Orchestrator) buildEntry(ctx context.Context, req Request) (*model.TransactionEntry, error) {
	switch req.Action {
	case model.ActionInstall, model.ActionUpdate:
		dep := model.Dependency{Name: req.Name, VersionConstraint: req.VersionConstraint}
		desc, repoURI, err := o.Pool.ResolveProvider(ctx, dep)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot resolve %s", dep.String())
		}
		installed := o.DB.GetMetadata(req.Name)
		if installed == nil {
			return model.NewEntryFromDescriptor(desc, model.ActionInstall, repoURI, "requested installation"), nil
		}
		if installed.Version == desc.Version {
			emit(o.Hooks, Event{Phase: "resolving", ID: installed.ID(), Msg: "already at the required version"})
			return nil, nil
		}
		entry := model.NewEntryFromDescriptor(desc, model.ActionUpdate, repoURI,
			fmt.Sprintf("updating from %s to %s", installed.Version, desc.Version))
		entry.Preserve = req.Preserve
		return entry, nil

	case model.ActionRemove, model.ActionConfigure:
		installed := o.DB.GetMetadata(req.Name)
		if installed == nil {
			return nil, errors.Wrapf(errors.ErrPackageNotFound, "%s is not installed", req.Name)
		}
		return model.NewEntryFromInstalled(installed, req.Action, "requested by caller"), nil

	default:
		return nil, fmt.Errorf("unknown action %q for %s", req.Action, req.Name)
	}
}
