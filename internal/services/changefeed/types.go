package changefeedsvc

import (
	"time"

	"github.com/calderhq/syncline/internal/eventlog"
)

// RecordOptions describes one event to append.
type RecordOptions struct {
	ResourceGid  string
	ResourceType string
	Action       eventlog.Action
	UserGid      string
	Parent       *eventlog.Ref
	Change       map[string]any
}

// PollResponse is the wire shape of a sync poll.
type PollResponse struct {
	Data    []map[string]any `json:"data"`
	Sync    string           `json:"sync"`
	HasMore bool             `json:"has_more"`
}

// EventView renders an event as the client-facing JSON object. The resource
// and any user/parent refs are compact {gid, resource_type} stubs.
func EventView(ev eventlog.Event) map[string]any {
	out := map[string]any{
		"resource": map[string]any{
			"gid":           ev.ResourceGid,
			"resource_type": ev.ResourceType,
		},
		"action":     string(ev.Action),
		"created_at": ev.CreatedAt.UTC().Format(time.RFC3339),
	}
	if ev.UserGid != "" {
		out["user"] = map[string]any{
			"gid":           ev.UserGid,
			"resource_type": "user",
		}
	}
	if ev.Parent != nil {
		out["parent"] = map[string]any{
			"gid":           ev.Parent.Gid,
			"resource_type": ev.Parent.ResourceType,
		}
	}
	if len(ev.Change) > 0 {
		out["change"] = ev.Change
	}
	return out
}
