// Package eventlog implements syncline's in-memory change-event log.
//
// # Overview
//
// The log keeps one append-only sequence of change events per resource gid,
// plus a single global counter that assigns event ids. Ids are strictly
// increasing within a resource's sequence; eviction may leave gaps, but never
// reorders. A resource's position in its sequence is communicated to clients
// as an opaque sync token ("sync:<id>").
//
// API surface (internal)
//
//	s := NewStore(StoreOptions{RetentionCap: 10000})
//	ev := s.Append(AppendOptions{
//		ResourceType: "task", ResourceGid: "1200", Action: ActionChanged,
//	})
//
//	// Baseline: nil token returns no events and the current sync position.
//	events, next, hasMore := s.ReadSince("1200", nil)
//
//	// Delta: events strictly after the token, capped at DeltaLimit.
//	tok := TokenFromID(ev.ID)
//	events, next, hasMore = s.ReadSince("1200", &tok)
//
// Retention is a per-resource cap: once a sequence exceeds the cap the oldest
// entries are discarded and handed to the configured ArchiverHook. A token
// that points below the oldest retained event is answered with the full
// retained backlog rather than an error; stale clients re-observe events they
// may have processed (at-least-once with possible duplication).
//
// All three operations take the store's single mutex; no partially appended
// event is ever visible to a read.
package eventlog
