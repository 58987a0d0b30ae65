package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// spanID returns the span's identity as used in container ids.
func spanID(span sdktrace.ReadOnlySpan) string {
	return span.SpanContext().SpanID().String()
}

func statusName(span sdktrace.ReadOnlySpan) string {
	switch span.Status().Code {
	case codes.Ok:
		return "OK"
	case codes.Error:
		return "ERROR"
	default:
		return "UNSET"
	}
}

func statusColor(span sdktrace.ReadOnlySpan) string {
	switch span.Status().Code {
	case codes.Ok:
		return "text-success"
	case codes.Error:
		return "text-error"
	default:
		return "text-warning"
	}
}

// durationText formats the span duration in milliseconds, or a placeholder
// while the span is still in progress.
func durationText(span sdktrace.ReadOnlySpan) string {
	if span.EndTime().IsZero() {
		return "..."
	}
	ms := float64(span.EndTime().Sub(span.StartTime()).Microseconds()) / 1000.0
	return fmt.Sprintf("%.1f ms", ms)
}

// attrText stringifies an attribute value. Slice kinds serialize as JSON
// lists, everything else through the value's own emitter.
func attrText(v attribute.Value) string {
	switch v.Type() {
	case attribute.BOOLSLICE:
		data, _ := json.Marshal(v.AsBoolSlice())
		return string(data)
	case attribute.INT64SLICE:
		data, _ := json.Marshal(v.AsInt64Slice())
		return string(data)
	case attribute.FLOAT64SLICE:
		data, _ := json.Marshal(v.AsFloat64Slice())
		return string(data)
	case attribute.STRINGSLICE:
		data, _ := json.Marshal(v.AsStringSlice())
		return string(data)
	default:
		return v.Emit()
	}
}

// attrMap copies span attributes into a lookup map.
func attrMap(span sdktrace.ReadOnlySpan) map[string]attribute.Value {
	attrs := span.Attributes()
	m := make(map[string]attribute.Value, len(attrs))
	for _, kv := range attrs {
		m[string(kv.Key)] = kv.Value
	}
	return m
}

// matchesAny reports whether name case-insensitively contains any pattern.
func matchesAny(name string, patterns []string) bool {
	lower := strings.ToLower(name)
	for _, p := range patterns {
		if p != "" && strings.Contains(lower, strings.ToLower(p)) {
			return true
		}
	}
	return false
}
