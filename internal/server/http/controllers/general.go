package controllers

import (
	"net/http"

	"github.com/calderhq/syncline/internal/runtime"
	changefeedsvc "github.com/calderhq/syncline/internal/services/changefeed"
)

// GeneralController handles general HTTP endpoints like health and stats.
type GeneralController struct {
	rt  *runtime.Runtime
	svc *changefeedsvc.Service
}

// NewGeneralController creates a new general controller.
func NewGeneralController(rt *runtime.Runtime, svc *changefeedsvc.Service) *GeneralController {
	return &GeneralController{rt: rt, svc: svc}
}

// RegisterRoutes registers general routes with the given mux.
//
// This method sets up HTTP endpoints for:
// - Health checks (/v1/healthz)
// - Log-wide counters (/v1/stats)
func (c *GeneralController) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/v1/healthz", c.handleHealth)
	mux.HandleFunc("/v1/stats", c.handleStats)
}

// handleHealth returns the health status of the service.
//
// Returns 200 OK with {"status": "ok"} if healthy, 503 Service Unavailable otherwise.
func (c *GeneralController) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := c.rt.CheckHealth(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "not_serving")
		return
	}
	writeJSON(w, map[string]string{"status": "ok"})
}

// handleStats reports the number of tracked resources, retained events, and
// the highest event id assigned so far.
func (c *GeneralController) handleStats(w http.ResponseWriter, r *http.Request) {
	resources, retained, lastID := c.svc.Stats()
	writeJSON(w, map[string]any{
		"resources":       resources,
		"retained_events": retained,
		"last_event_id":   lastID,
	})
}
