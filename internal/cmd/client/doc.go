// Package client contains Cobra CLI commands that talk to a running syncline
// server over its HTTP API.
package client
