package runtime

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/calderhq/syncline/internal/eventlog"
)

// countingArchiver counts evicted events before forwarding to the real hook.
type countingArchiver struct {
	next    eventlog.ArchiverHook
	evicted prometheus.Counter
}

func (c countingArchiver) EmitEvicted(resourceGid string, events []eventlog.Event) {
	c.evicted.Add(float64(len(events)))
	if c.next != nil {
		c.next.EmitEvicted(resourceGid, events)
	}
}
