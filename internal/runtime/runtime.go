package runtime

import (
	"context"
	"errors"
	"time"

	"github.com/calderhq/syncline/internal/archive"
	cfgpkg "github.com/calderhq/syncline/internal/config"
	"github.com/calderhq/syncline/internal/eventlog"
	"github.com/calderhq/syncline/internal/metrics"
	pebblestore "github.com/calderhq/syncline/internal/storage/pebble"
	logpkg "github.com/calderhq/syncline/pkg/log"
)

// Options for building the Runtime.
type Options struct {
	// DataDir is where the evicted-event archive lives. Only used when the
	// archive is enabled in Config.
	DataDir       string
	Fsync         pebblestore.FsyncMode
	FsyncInterval time.Duration
	Config        cfgpkg.Config
	Metrics       *metrics.Metrics
	Logger        logpkg.Logger
}

// Runtime wires the in-memory event log, optional archive, and config for a
// single-node instance. The log itself is never persisted; only evicted
// events spill to disk, and only when the archive is enabled.
type Runtime struct {
	db      *pebblestore.DB
	store   *eventlog.Store
	archive *archive.Archive
	config  cfgpkg.Config
}

// Open initializes the runtime. When Config.ArchiveEvicted is set, a Pebble
// store is opened under DataDir and wired as the log's eviction hook.
func Open(opts Options) (*Runtime, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logpkg.NewLogger().With(logpkg.Component("runtime"))
	}

	rt := &Runtime{config: opts.Config}

	var hook eventlog.ArchiverHook
	if opts.Config.ArchiveEvicted {
		po := pebblestore.Options{DataDir: opts.DataDir, Fsync: opts.Fsync, FsyncInterval: opts.FsyncInterval}
		if opts.Metrics != nil {
			po.Metrics = opts.Metrics.Storage()
		}
		db, err := pebblestore.Open(po)
		if err != nil {
			return nil, err
		}
		rt.db = db
		rt.archive = archive.New(db, logger.With(logpkg.Component("archive")))
		hook = rt.archive
	}
	if opts.Metrics != nil {
		hook = countingArchiver{next: hook, evicted: opts.Metrics.EventsEvicted}
	}

	rt.store = eventlog.NewStore(eventlog.StoreOptions{
		RetentionCap: opts.Config.RetentionCap,
		Archiver:     hook,
	})
	return rt, nil
}

// Close closes underlying resources.
func (r *Runtime) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// CheckHealth verifies the runtime is usable.
func (r *Runtime) CheckHealth(ctx context.Context) error {
	if r.store == nil {
		return errors.New("event log not open")
	}
	if r.db != nil {
		it, err := r.db.NewIter(nil)
		if err != nil {
			return err
		}
		it.Close()
	}
	return nil
}

// Store returns the event log.
func (r *Runtime) Store() *eventlog.Store { return r.store }

// Archive returns the evicted-event archive, or nil when disabled.
func (r *Runtime) Archive() *archive.Archive { return r.archive }

// DB exposes the underlying archive DB for advanced operations (internal use only).
func (r *Runtime) DB() *pebblestore.DB { return r.db }

// Config returns the runtime configuration.
func (r *Runtime) Config() cfgpkg.Config { return r.config }
