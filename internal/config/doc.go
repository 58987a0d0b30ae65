// Package config provides 12-factor configuration for the telemetry
// streaming service.
//
// Configuration is loaded from environment variables with sensible
// defaults.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host)
//   - Telemetry: stream container id, SSE endpoint, auto-expand patterns,
//     delivery queue discipline and heartbeat interval
//   - Logging: log level and output format
//   - RateLimit: per-IP rate limiting
//
// Environment Variables:
//   - PORT, HOST
//   - CONTAINER_ID, STREAM_ENDPOINT, AUTO_EXPAND
//   - QUEUE_DISCIPLINE, QUEUE_CAPACITY, HEARTBEAT_INTERVAL
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
package config
