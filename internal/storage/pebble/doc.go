// Package pebblestore wraps a Pebble database with syncline's fsync policy
// and a small key/value helper surface. It backs only the evicted-event
// archive; the live event log never touches disk.
package pebblestore
