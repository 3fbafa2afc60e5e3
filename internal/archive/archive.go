// Package archive persists events that retention evicted from the in-memory
// log, for operator inspection. It is a write-only spill from the log's point
// of view: reads never feed back into sync deltas, so the log's non-durable
// contract is unchanged.
package archive

import (
	"encoding/json"
	"time"

	"github.com/cockroachdb/pebble"

	"github.com/calderhq/syncline/internal/eventlog"
	pebblestore "github.com/calderhq/syncline/internal/storage/pebble"
	logpkg "github.com/calderhq/syncline/pkg/log"
)

// Record is the persisted form of an evicted event.
type Record struct {
	ID           uint64         `json:"id"`
	ResourceGid  string         `json:"resource_gid"`
	ResourceType string         `json:"resource_type"`
	Action       string         `json:"action"`
	UserGid      string         `json:"user_gid,omitempty"`
	Parent       *eventlog.Ref  `json:"parent,omitempty"`
	Change       map[string]any `json:"change,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

// Archive stores evicted events in Pebble. It implements
// eventlog.ArchiverHook.
type Archive struct {
	db     *pebblestore.DB
	logger logpkg.Logger
}

// New returns an Archive over the given store.
func New(db *pebblestore.DB, logger logpkg.Logger) *Archive {
	if logger == nil {
		logger = logpkg.NewLogger().With(logpkg.Component("archive"))
	}
	return &Archive{db: db, logger: logger}
}

// EmitEvicted persists the evicted events. Failures are logged and dropped;
// eviction must never block or fail an append.
func (a *Archive) EmitEvicted(resourceGid string, events []eventlog.Event) {
	for _, ev := range events {
		rec := Record{
			ID:           ev.ID,
			ResourceGid:  ev.ResourceGid,
			ResourceType: ev.ResourceType,
			Action:       string(ev.Action),
			UserGid:      ev.UserGid,
			Parent:       ev.Parent,
			Change:       ev.Change,
			CreatedAt:    ev.CreatedAt,
		}
		b, err := json.Marshal(rec)
		if err != nil {
			a.logger.Warn("archive encode failed", logpkg.Uint64("id", ev.ID), logpkg.Err(err))
			continue
		}
		if err := a.db.Set(keyEvent(resourceGid, ev.ID), b); err != nil {
			a.logger.Warn("archive write failed", logpkg.Uint64("id", ev.ID), logpkg.Err(err))
		}
	}
	a.logger.Debug("archived evicted events",
		logpkg.Str("resource", resourceGid),
		logpkg.Int("n", len(events)),
	)
}

// List returns every archived event for a resource in id order. The result
// is materialized so callers can hand it to the pagination layer.
func (a *Archive) List(resourceGid string) ([]Record, error) {
	low, hi := keyBounds(resourceGid)
	iter, err := a.db.NewIter(&pebble.IterOptions{LowerBound: low, UpperBound: hi})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var out []Record
	for ok := iter.First(); ok; ok = iter.Next() {
		var rec Record
		if err := json.Unmarshal(iter.Value(), &rec); err != nil {
			// Skip undecodable entries; the id from the key aids debugging.
			a.logger.Warn("archive decode failed", logpkg.Uint64("id", idFromKey(iter.Key())), logpkg.Err(err))
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}
