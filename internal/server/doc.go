// Package server wires the span streaming pipeline into an HTTP service:
// the SSE stream endpoint, a browser page hosting the stream container,
// demo workload triggers, health, metrics and stats.
package server
