package archive

import (
	"testing"

	"github.com/calderhq/syncline/internal/eventlog"
	pebblestore "github.com/calderhq/syncline/internal/storage/pebble"
)

func newTestArchive(t *testing.T) *Archive {
	t.Helper()
	dir := t.TempDir()
	db, err := pebblestore.Open(pebblestore.Options{DataDir: dir, Fsync: pebblestore.FsyncModeAlways})
	if err != nil {
		t.Fatalf("open pebble: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return New(db, nil)
}

func TestEvictedEventsLandInArchive(t *testing.T) {
	ar := newTestArchive(t)
	s := eventlog.NewStore(eventlog.StoreOptions{RetentionCap: 3, Archiver: ar})

	for i := 0; i < 7; i++ {
		s.Append(eventlog.AppendOptions{ResourceGid: "R1", ResourceType: "task", Action: eventlog.ActionChanged})
	}

	recs, err := ar.List("R1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recs) != 4 {
		t.Fatalf("archived %d records, want 4", len(recs))
	}
	for i := 1; i < len(recs); i++ {
		if recs[i].ID <= recs[i-1].ID {
			t.Fatalf("archive out of id order at %d", i)
		}
	}
	if recs[0].ResourceType != "task" || recs[0].Action != "changed" {
		t.Fatalf("record fields lost: %+v", recs[0])
	}
}

func TestListUnknownResourceIsEmpty(t *testing.T) {
	ar := newTestArchive(t)
	recs, err := ar.List("never-seen")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("expected no records, got %d", len(recs))
	}
}
