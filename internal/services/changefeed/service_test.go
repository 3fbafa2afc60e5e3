package changefeedsvc

import (
	"strings"
	"testing"

	cfgpkg "github.com/calderhq/syncline/internal/config"
	"github.com/calderhq/syncline/internal/eventlog"
	"github.com/calderhq/syncline/internal/runtime"
	pebblestore "github.com/calderhq/syncline/internal/storage/pebble"
)

func newTestService(t *testing.T, cfg cfgpkg.Config) *Service {
	t.Helper()
	opts := runtime.Options{Config: cfg}
	if cfg.ArchiveEvicted {
		opts.DataDir = t.TempDir()
		opts.Fsync = pebblestore.FsyncModeAlways
	}
	rt, err := runtime.Open(opts)
	if err != nil {
		t.Fatalf("open runtime: %v", err)
	}
	t.Cleanup(func() { _ = rt.Close() })
	return New(rt)
}

func TestRecordValidatesInput(t *testing.T) {
	svc := newTestService(t, cfgpkg.Default())

	if _, err := svc.Record(RecordOptions{ResourceType: "task", Action: eventlog.ActionAdded}); err == nil {
		t.Fatalf("expected error for missing resource gid")
	}
	if _, err := svc.Record(RecordOptions{ResourceGid: "T1", Action: "exploded"}); err == nil {
		t.Fatalf("expected error for unknown action")
	}
	ev, err := svc.Record(RecordOptions{ResourceGid: "T1", ResourceType: "task", Action: eventlog.ActionAdded})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if ev.ID == 0 {
		t.Fatalf("expected assigned id")
	}
}

func TestPollBaselineThenDelta(t *testing.T) {
	svc := newTestService(t, cfgpkg.Default())

	base := svc.Poll("P1", "", "")
	if len(base.Data) != 0 || base.HasMore {
		t.Fatalf("baseline should carry no events: %+v", base)
	}
	if base.Sync != "sync:0" {
		t.Fatalf("empty resource should yield the sentinel, got %q", base.Sync)
	}

	for i := 0; i < 3; i++ {
		if _, err := svc.Record(RecordOptions{ResourceGid: "P1", ResourceType: "project", Action: eventlog.ActionChanged, UserGid: "U7"}); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	resp := svc.Poll("P1", base.Sync, "")
	if len(resp.Data) != 3 || resp.HasMore {
		t.Fatalf("expected full backlog of 3, got %d hasMore=%v", len(resp.Data), resp.HasMore)
	}
	first := resp.Data[0]
	res, ok := first["resource"].(map[string]any)
	if !ok || res["gid"] != "P1" || res["resource_type"] != "project" {
		t.Fatalf("bad resource stub: %+v", first)
	}
	if first["action"] != "changed" {
		t.Fatalf("bad action: %v", first["action"])
	}
	user, ok := first["user"].(map[string]any)
	if !ok || user["gid"] != "U7" {
		t.Fatalf("bad user stub: %+v", first)
	}
	if _, ok := first["created_at"].(string); !ok {
		t.Fatalf("created_at missing: %+v", first)
	}

	again := svc.Poll("P1", resp.Sync, "")
	if len(again.Data) != 0 {
		t.Fatalf("caught-up poll should be empty, got %d", len(again.Data))
	}
}

func TestPollProjectsOptFields(t *testing.T) {
	svc := newTestService(t, cfgpkg.Default())
	base := svc.Poll("P2", "", "")
	if _, err := svc.Record(RecordOptions{
		ResourceGid:  "P2",
		ResourceType: "task",
		Action:       eventlog.ActionChanged,
		UserGid:      "U1",
		Change:       map[string]any{"field": "name", "new_value": "Ship it"},
	}); err != nil {
		t.Fatalf("record: %v", err)
	}

	resp := svc.Poll("P2", base.Sync, "action,change.field")
	if len(resp.Data) != 1 {
		t.Fatalf("expected 1 event, got %d", len(resp.Data))
	}
	ev := resp.Data[0]
	if ev["action"] != "changed" {
		t.Fatalf("action dropped: %+v", ev)
	}
	if _, ok := ev["user"]; ok {
		t.Fatalf("user should be trimmed: %+v", ev)
	}
	change, ok := ev["change"].(map[string]any)
	if !ok || change["field"] != "name" {
		t.Fatalf("change.field lost: %+v", ev)
	}
	if _, ok := change["new_value"]; ok {
		t.Fatalf("change.new_value should be trimmed: %+v", ev)
	}
}

func TestSyncTokenSeedsPolling(t *testing.T) {
	svc := newTestService(t, cfgpkg.Default())
	if tok := svc.SyncToken("nowhere"); tok != "sync:0" {
		t.Fatalf("expected sentinel for unknown resource, got %q", tok)
	}
	ev, err := svc.Record(RecordOptions{ResourceGid: "P3", ResourceType: "project", Action: eventlog.ActionAdded})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	tok := svc.SyncToken("P3")
	if !strings.HasSuffix(tok, ":1") && tok != "sync:1" {
		t.Fatalf("unexpected token %q for event %d", tok, ev.ID)
	}
}

func TestArchivedEventsPaging(t *testing.T) {
	cfg := cfgpkg.Default()
	cfg.ArchiveEvicted = true
	cfg.RetentionCap = 5
	svc := newTestService(t, cfg)

	for i := 0; i < 30; i++ {
		if _, err := svc.Record(RecordOptions{ResourceGid: "P4", ResourceType: "task", Action: eventlog.ActionChanged}); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	// 30 appends with a cap of 5 leaves 25 archived.
	res, err := svc.ArchivedEvents("P4", "", 10, "", "/v1/archive/events")
	if err != nil {
		t.Fatalf("archived events: %v", err)
	}
	if len(res.Data) != 10 {
		t.Fatalf("page 1 has %d, want 10", len(res.Data))
	}
	if res.Next == nil {
		t.Fatalf("expected next page")
	}

	res2, err := svc.ArchivedEvents("P4", res.Next.Offset, 10, "", "/v1/archive/events")
	if err != nil {
		t.Fatalf("archived events page 2: %v", err)
	}
	if len(res2.Data) != 10 || res2.Next == nil {
		t.Fatalf("page 2 has %d next=%v", len(res2.Data), res2.Next)
	}
	res3, err := svc.ArchivedEvents("P4", res2.Next.Offset, 10, "", "/v1/archive/events")
	if err != nil {
		t.Fatalf("archived events page 3: %v", err)
	}
	if len(res3.Data) != 5 || res3.Next != nil {
		t.Fatalf("page 3 has %d next=%v", len(res3.Data), res3.Next)
	}
}

func TestArchivedEventsWithoutArchive(t *testing.T) {
	svc := newTestService(t, cfgpkg.Default())
	if _, err := svc.ArchivedEvents("P5", "", 10, "", "/v1/archive/events"); err != ErrNoArchive {
		t.Fatalf("expected ErrNoArchive, got %v", err)
	}
}
