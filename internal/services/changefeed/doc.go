// Package changefeedsvc exposes the incremental-sync surface over the event
// log: recording events, polling deltas with sync tokens, and paging the
// evicted-event archive. Responses are built as generic JSON objects so the
// sparse-fieldset projection can trim them before encoding.
package changefeedsvc
