package controllers

import (
	"net/http"

	"github.com/calderhq/syncline/internal/runtime"
	changefeedsvc "github.com/calderhq/syncline/internal/services/changefeed"
)

// ControllerRegistry manages all HTTP controllers.
//
// It provides a centralized way to register all controller routes.
type ControllerRegistry struct {
	general *GeneralController
	events  *EventsController
	archive *ArchiveController
}

// NewControllerRegistry creates a new controller registry.
func NewControllerRegistry(rt *runtime.Runtime, svc *changefeedsvc.Service) *ControllerRegistry {
	return &ControllerRegistry{
		general: NewGeneralController(rt, svc),
		events:  NewEventsController(svc),
		archive: NewArchiveController(svc),
	}
}

// RegisterAllRoutes registers all controller routes with the given mux.
//
// This sets up the health and stats endpoints, the sync polling surface, and
// the evicted-event archive reads.
func (r *ControllerRegistry) RegisterAllRoutes(mux *http.ServeMux) {
	r.general.RegisterRoutes(mux)
	r.events.RegisterRoutes(mux)
	r.archive.RegisterRoutes(mux)
}
