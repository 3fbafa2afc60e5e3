// Package httpserver hosts the REST surface: sync polling, event recording,
// archive reads, health, and the Prometheus scrape endpoint.
package httpserver
