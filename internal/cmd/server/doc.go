// Package serverrun hosts the long-running server entrypoint shared by the
// CLI: it wires config, metrics, the runtime, and the HTTP server, and blocks
// until shutdown.
package serverrun
