// Command server runs the live telemetry streaming service: an
// OpenTelemetry span processor rendering spans as HTML patches delivered
// to the browser over Server-Sent Events.
package main
