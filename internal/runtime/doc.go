// Package runtime wires the event log, optional archive storage, and
// configuration into a single-node instance.
package runtime
