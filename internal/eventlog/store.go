package eventlog

import (
	"sync"
	"time"
)

// DeltaLimit caps the number of events returned by a single ReadSince call.
const DeltaLimit = 100

// DefaultRetentionCap is the per-resource event cap used when StoreOptions
// leaves it unset.
const DefaultRetentionCap = 10000

// StoreOptions configures a Store.
type StoreOptions struct {
	// RetentionCap is the maximum number of events kept per resource.
	// Oldest entries are evicted once a sequence exceeds it.
	RetentionCap int
	// Archiver receives evicted events. Nil means discard.
	Archiver ArchiverHook
	// Now overrides the clock, for tests.
	Now func() time.Time
}

// AppendOptions describes one change event to record.
type AppendOptions struct {
	ResourceType string
	ResourceGid  string
	Action       Action
	UserGid      string
	Parent       *Ref
	Change       map[string]any
}

// Store is the in-memory event log. It owns all per-resource sequences and
// the global id counter exclusively; access goes through Append, ReadSince,
// and SyncToken only, each of which holds the store mutex for its duration.
//
// The store is constructed once at process start and injected into its
// consumers. It holds no per-consumer state: a consumer's position is carried
// entirely by the token it presents.
type Store struct {
	mu       sync.Mutex
	lastID   uint64
	events   map[string][]Event // resource gid -> ordered sequence
	latest   map[string]uint64  // resource gid -> id of newest event
	cap      int
	archiver ArchiverHook
	now      func() time.Time
}

// NewStore creates a Store.
func NewStore(opts StoreOptions) *Store {
	if opts.RetentionCap <= 0 {
		opts.RetentionCap = DefaultRetentionCap
	}
	if opts.Archiver == nil {
		opts.Archiver = noopArchiver{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Store{
		events:   map[string][]Event{},
		latest:   map[string]uint64{},
		cap:      opts.RetentionCap,
		archiver: opts.Archiver,
		now:      opts.Now,
	}
}

// Append records a change event, assigns it the next global id, and advances
// the resource's sync position. It cannot fail.
func (s *Store) Append(opts AppendOptions) Event {
	s.mu.Lock()
	s.lastID++
	ev := Event{
		ID:           s.lastID,
		ResourceGid:  opts.ResourceGid,
		ResourceType: opts.ResourceType,
		Action:       opts.Action,
		UserGid:      opts.UserGid,
		Parent:       opts.Parent,
		Change:       opts.Change,
		CreatedAt:    s.now().UTC(),
	}
	seq := append(s.events[opts.ResourceGid], ev)
	var evicted []Event
	if n := len(seq) - s.cap; n > 0 {
		evicted = append([]Event(nil), seq[:n]...)
		seq = seq[n:]
	}
	s.events[opts.ResourceGid] = seq
	s.latest[opts.ResourceGid] = ev.ID
	s.mu.Unlock()

	// The hook may do I/O (e.g. the Pebble archive); keep it outside the lock.
	if len(evicted) > 0 {
		s.archiver.EmitEvicted(opts.ResourceGid, evicted)
	}
	return ev
}

// ReadSince returns the events a caller has missed for one resource.
//
// A nil token is the baseline call: no events, just the resource's current
// sync position (the sentinel when nothing was ever appended). With a token,
// the delta is every retained event strictly after the token's id, capped at
// DeltaLimit; hasMore reports whether the cap truncated it. A token whose id
// is no longer retained — evicted, or never valid — yields the full retained
// backlog as a best-effort catch-up, never an error.
//
// The returned token is always the resource's current latest position, not
// the id of the last event returned.
func (s *Store) ReadSince(resourceGid string, since *Token) ([]Event, Token, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := TokenFromID(s.latest[resourceGid])
	if since == nil {
		return nil, next, false
	}

	seq := s.events[resourceGid]
	delta := seq
	for i := range seq {
		if seq[i].ID == since.ID() {
			delta = seq[i+1:]
			break
		}
	}
	hasMore := len(delta) > DeltaLimit
	if hasMore {
		delta = delta[:DeltaLimit]
	}
	out := append([]Event(nil), delta...)
	return out, next, hasMore
}

// HasEvent reports whether the event with the given id is still retained for
// the resource. A false result for a previously issued token means the caller
// aged out and will receive the full backlog.
func (s *Store) HasEvent(resourceGid string, id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ev := range s.events[resourceGid] {
		if ev.ID == id {
			return true
		}
	}
	return false
}

// SyncToken returns the resource's current sync position, or the sentinel if
// nothing has ever been appended for it. Used to seed polling without waiting
// for a first delta.
func (s *Store) SyncToken(resourceGid string) Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	return TokenFromID(s.latest[resourceGid])
}

// Stats reports the number of tracked resources, total retained events, and
// the highest id assigned so far.
func (s *Store) Stats() (resources int, retained int, lastID uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, seq := range s.events {
		retained += len(seq)
	}
	return len(s.events), retained, s.lastID
}
