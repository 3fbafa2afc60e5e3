package changefeedsvc

import (
	"errors"
	"fmt"

	"github.com/calderhq/syncline/internal/eventlog"
	"github.com/calderhq/syncline/internal/fields"
	"github.com/calderhq/syncline/internal/metrics"
	"github.com/calderhq/syncline/internal/page"
	"github.com/calderhq/syncline/internal/runtime"
	logpkg "github.com/calderhq/syncline/pkg/log"
)

// ErrNoArchive is returned when archive reads are requested but the archive
// is disabled.
var ErrNoArchive = errors.New("changefeed: archive is not enabled")

// Service provides the sync operations built on the internal event log:
// recording change events, polling deltas by sync token, and paging the
// evicted-event archive.
type Service struct {
	rt      *runtime.Runtime
	logger  logpkg.Logger
	metrics *metrics.Metrics
}

// New returns a Service using a default logger and no metrics.
func New(rt *runtime.Runtime) *Service {
	return NewWithLogger(rt, nil, nil)
}

// NewWithLogger constructs the service with an injected logger and metrics.
// Both may be nil.
func NewWithLogger(rt *runtime.Runtime, logger logpkg.Logger, m *metrics.Metrics) *Service {
	if logger == nil {
		logger = logpkg.NewLogger().With(logpkg.Component("changefeed"))
	}
	return &Service{rt: rt, logger: logger, metrics: m}
}

// Record appends one change event and returns it.
func (s *Service) Record(opts RecordOptions) (eventlog.Event, error) {
	if opts.ResourceGid == "" {
		return eventlog.Event{}, errors.New("changefeed: resource gid is required")
	}
	if !opts.Action.Valid() {
		return eventlog.Event{}, fmt.Errorf("changefeed: unknown action %q", opts.Action)
	}
	ev := s.rt.Store().Append(eventlog.AppendOptions{
		ResourceGid:  opts.ResourceGid,
		ResourceType: opts.ResourceType,
		Action:       opts.Action,
		UserGid:      opts.UserGid,
		Parent:       opts.Parent,
		Change:       opts.Change,
	})
	if s.metrics != nil {
		s.metrics.EventsAppended.WithLabelValues(string(opts.Action)).Inc()
	}
	s.logger.Debug("event recorded",
		logpkg.Str("resource", opts.ResourceGid),
		logpkg.Str("action", string(opts.Action)),
		logpkg.Uint64("id", ev.ID),
	)
	return ev, nil
}

// Poll serves one sync request for a resource.
//
// An empty syncToken is the baseline call: no events, just the token to poll
// from. Otherwise the delta since the token is returned, or the full retained
// backlog when the token has aged out. optFields, when non-empty, trims each
// event object to the requested sparse fieldset.
func (s *Service) Poll(resourceGid, syncToken, optFields string) PollResponse {
	store := s.rt.Store()

	var since *Token
	if syncToken != "" {
		t := eventlog.ParseToken(syncToken)
		since = &t
	}

	events, next, hasMore := store.ReadSince(resourceGid, since)

	if s.metrics != nil {
		outcome := "delta"
		switch {
		case since == nil:
			outcome = "baseline"
		case !store.HasEvent(resourceGid, since.ID()):
			outcome = "backlog"
		}
		s.metrics.Polls.WithLabelValues(outcome).Inc()
		s.metrics.DeltaSize.Observe(float64(len(events)))
	}

	sel := fields.Parse(optFields)
	data := make([]map[string]any, 0, len(events))
	for _, ev := range events {
		view := EventView(ev)
		if projected, ok := fields.Project(view, sel).(map[string]any); ok {
			view = projected
		}
		data = append(data, view)
	}
	return PollResponse{Data: data, Sync: next.String(), HasMore: hasMore}
}

// Token is re-exported for callers that hold a parsed token.
type Token = eventlog.Token

// SyncToken returns the resource's current sync position as its wire form.
func (s *Service) SyncToken(resourceGid string) string {
	return s.rt.Store().SyncToken(resourceGid).String()
}

// ArchivedEvents pages the evicted-event archive for a resource using cursor
// pagination. basePath is used to build the next-page link.
func (s *Service) ArchivedEvents(resourceGid, cursor string, limit int, optFields, basePath string) (page.Result[map[string]any], error) {
	ar := s.rt.Archive()
	if ar == nil {
		return page.Result[map[string]any]{}, ErrNoArchive
	}
	recs, err := ar.List(resourceGid)
	if err != nil {
		return page.Result[map[string]any]{}, err
	}

	sel := fields.Parse(optFields)
	views := make([]map[string]any, 0, len(recs))
	for _, rec := range recs {
		view := EventView(eventlog.Event{
			ID:           rec.ID,
			ResourceGid:  rec.ResourceGid,
			ResourceType: rec.ResourceType,
			Action:       eventlog.Action(rec.Action),
			UserGid:      rec.UserGid,
			Parent:       rec.Parent,
			Change:       rec.Change,
			CreatedAt:    rec.CreatedAt,
		})
		if projected, ok := fields.Project(view, sel).(map[string]any); ok {
			view = projected
		}
		views = append(views, view)
	}
	return page.Paginate(views, cursor, limit, basePath), nil
}

// Stats reports log-wide counters for the operator surface.
func (s *Service) Stats() (resources int, retained int, lastID uint64) {
	return s.rt.Store().Stats()
}
