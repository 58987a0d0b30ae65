// Package fragment builds abstract markup fragments for the telemetry display.
//
// A Fragment wraps an x/net/html node tree. Serialization goes through
// html.Render, which escapes text content and emits attributes in insertion
// order, so the same fragment always serializes to the same bytes.
package fragment
