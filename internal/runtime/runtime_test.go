package runtime

import (
	"context"
	"testing"

	cfgpkg "github.com/calderhq/syncline/internal/config"
	"github.com/calderhq/syncline/internal/eventlog"
	pebblestore "github.com/calderhq/syncline/internal/storage/pebble"
)

func TestOpenWithoutArchive(t *testing.T) {
	rt, err := Open(Options{Config: cfgpkg.Default()})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = rt.Close() })

	if rt.Store() == nil {
		t.Fatalf("expected event log")
	}
	if rt.Archive() != nil || rt.DB() != nil {
		t.Fatalf("archive should be disabled by default")
	}
	if err := rt.CheckHealth(context.Background()); err != nil {
		t.Fatalf("health: %v", err)
	}
}

func TestOpenWiresArchive(t *testing.T) {
	cfg := cfgpkg.Default()
	cfg.ArchiveEvicted = true
	cfg.RetentionCap = 2

	rt, err := Open(Options{DataDir: t.TempDir(), Fsync: pebblestore.FsyncModeAlways, Config: cfg})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = rt.Close() })

	for i := 0; i < 5; i++ {
		rt.Store().Append(eventlog.AppendOptions{ResourceGid: "R1", ResourceType: "project", Action: eventlog.ActionChanged})
	}
	recs, err := rt.Archive().List("R1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("archived %d, want 3", len(recs))
	}
	if err := rt.CheckHealth(context.Background()); err != nil {
		t.Fatalf("health: %v", err)
	}
}
