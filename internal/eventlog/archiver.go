package eventlog

// ArchiverHook is an optional callback invoked when retention evicts events
// from a resource's sequence. Implementations may persist the evicted range
// or emit metrics. The events passed are a private copy in append order.
type ArchiverHook interface {
	EmitEvicted(resourceGid string, events []Event)
}

type noopArchiver struct{}

func (noopArchiver) EmitEvicted(string, []Event) {}
