package eventlog

import "time"

// Action identifies what happened to a resource.
type Action string

// The closed set of change actions.
const (
	ActionAdded     Action = "added"
	ActionChanged   Action = "changed"
	ActionDeleted   Action = "deleted"
	ActionRemoved   Action = "removed"
	ActionUndeleted Action = "undeleted"
)

// Valid reports whether a is one of the known actions.
func (a Action) Valid() bool {
	switch a {
	case ActionAdded, ActionChanged, ActionDeleted, ActionRemoved, ActionUndeleted:
		return true
	}
	return false
}

// Ref points at a resource by gid and kind.
type Ref struct {
	Gid          string `json:"gid"`
	ResourceType string `json:"resource_type"`
}

// Event is an immutable record of one change to one resource. Events are
// created by Store.Append and never mutated afterwards; ordering is defined
// by ID, CreatedAt is informational only.
type Event struct {
	ID           uint64
	ResourceGid  string
	ResourceType string
	Action       Action
	UserGid      string
	Parent       *Ref
	Change       map[string]any
	CreatedAt    time.Time
}
