package controllers

import (
	"net/http"

	changefeedsvc "github.com/calderhq/syncline/internal/services/changefeed"
)

// ArchiveController serves paginated reads of the evicted-event archive.
type ArchiveController struct {
	svc *changefeedsvc.Service
}

// NewArchiveController creates a new archive controller.
func NewArchiveController(svc *changefeedsvc.Service) *ArchiveController {
	return &ArchiveController{svc: svc}
}

// RegisterRoutes registers archive routes with the given mux.
func (c *ArchiveController) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/v1/archive/events", c.handleList)
}

// handleList pages archived events for a resource. Returns 404 when the
// archive is disabled.
func (c *ArchiveController) handleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	q := r.URL.Query()
	resource := q.Get("resource")
	if resource == "" {
		writeError(w, http.StatusBadRequest, "resource is required")
		return
	}
	res, err := c.svc.ArchivedEvents(resource, q.Get("offset"), parseLimit(q.Get("limit")), q.Get("opt_fields"), r.URL.Path)
	if err == changefeedsvc.ErrNoArchive {
		writeError(w, http.StatusNotFound, "archive is not enabled")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to read archive")
		return
	}
	writeJSON(w, res)
}
