package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/calderhq/syncline/internal/eventlog"
	changefeedsvc "github.com/calderhq/syncline/internal/services/changefeed"
)

// EventsController handles the sync polling surface.
//
// Clients drive it with three calls: record a change, fetch a seed token, and
// poll for deltas with the token they last received.
type EventsController struct {
	svc *changefeedsvc.Service
}

// NewEventsController creates a new events controller.
func NewEventsController(svc *changefeedsvc.Service) *EventsController {
	return &EventsController{svc: svc}
}

// RegisterRoutes registers event routes with the given mux.
//
// This method sets up HTTP endpoints for:
// - Polling deltas (/v1/events, /v1/events/poll)
// - Recording change events (POST /v1/events)
// - Fetching a resource's current sync token (/v1/events/token)
func (c *EventsController) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/v1/events", c.handleEvents)
	mux.HandleFunc("/v1/events/poll", c.handlePoll)
	mux.HandleFunc("/v1/events/token", c.handleToken)
}

// handleEvents serves GET (poll, sync optional) and POST (record) on
// /v1/events.
func (c *EventsController) handleEvents(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		resource := q.Get("resource")
		if resource == "" {
			writeError(w, http.StatusBadRequest, "resource is required")
			return
		}
		writeJSON(w, c.svc.Poll(resource, q.Get("sync"), q.Get("opt_fields")))
	case http.MethodPost:
		c.handleRecord(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// handlePoll is the strict polling variant: the sync token is required, so a
// client that lost its token must reseed via /v1/events/token or a baseline
// GET /v1/events call.
func (c *EventsController) handlePoll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	q := r.URL.Query()
	resource := q.Get("resource")
	sync := q.Get("sync")
	if resource == "" || sync == "" {
		writeError(w, http.StatusBadRequest, "resource and sync are required")
		return
	}
	writeJSON(w, c.svc.Poll(resource, sync, q.Get("opt_fields")))
}

// handleRecord appends one change event.
func (c *EventsController) handleRecord(w http.ResponseWriter, r *http.Request) {
	var req recordReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	ev, err := c.svc.Record(changefeedsvc.RecordOptions{
		ResourceGid:  req.Resource,
		ResourceType: req.ResourceType,
		Action:       eventlog.Action(req.Action),
		UserGid:      req.User,
		Parent:       req.Parent,
		Change:       req.Change,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeCreated(w, map[string]any{
		"data": changefeedsvc.EventView(ev),
		"sync": c.svc.SyncToken(req.Resource),
	})
}

// handleToken returns the resource's current sync token.
func (c *EventsController) handleToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	resource := r.URL.Query().Get("resource")
	if resource == "" {
		writeError(w, http.StatusBadRequest, "resource is required")
		return
	}
	writeJSON(w, tokenResp{Sync: c.svc.SyncToken(resource)})
}
