// Package tracker maintains the live span tree: which span hangs under
// which parent, and the last seen snapshot of each span.
package tracker

import (
	"context"
	"sync"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// Record is the tracked state of one span. ParentID is resolved once at
// start time and never changes afterwards; an empty ParentID marks a root.
type Record struct {
	SpanID   string
	ParentID string
	Span     sdktrace.ReadOnlySpan
}

// IsRoot reports whether the span has no resolvable parent.
func (r Record) IsRoot() bool { return r.ParentID == "" }

// Tracker maps span identity to tree placement and last snapshot. Records
// are kept for the tracker's lifetime; span volume is operator-driven, so
// there is no eviction. Different spans may be recorded concurrently.
type Tracker struct {
	records sync.Map
}

// New creates an empty tracker.
func New() *Tracker { return &Tracker{} }

// Start records a newly started span and resolves its placement. The span
// context carried by the live parent context wins; the span's own static
// parent reference is the fallback; with neither, the span is a root.
func (t *Tracker) Start(parent context.Context, span sdktrace.ReadOnlySpan) Record {
	rec := Record{
		SpanID: span.SpanContext().SpanID().String(),
		Span:   span,
	}

	if sc := trace.SpanContextFromContext(parent); sc.IsValid() {
		rec.ParentID = sc.SpanID().String()
	} else if p := span.Parent(); p.IsValid() {
		rec.ParentID = p.SpanID().String()
	}

	t.records.Store(rec.SpanID, rec)
	return rec
}

// End updates the stored snapshot in place, keeping the parent resolved at
// start time. A span ended without a recorded start falls back to its
// static parent reference.
func (t *Tracker) End(span sdktrace.ReadOnlySpan) Record {
	id := span.SpanContext().SpanID().String()

	if v, ok := t.records.Load(id); ok {
		rec := v.(Record)
		rec.Span = span
		t.records.Store(id, rec)
		return rec
	}

	rec := Record{SpanID: id, Span: span}
	if p := span.Parent(); p.IsValid() {
		rec.ParentID = p.SpanID().String()
	}
	t.records.Store(id, rec)
	return rec
}

// Lookup returns the record for a span id.
func (t *Tracker) Lookup(id string) (Record, bool) {
	v, ok := t.records.Load(id)
	if !ok {
		return Record{}, false
	}
	return v.(Record), true
}

// Len counts tracked spans.
func (t *Tracker) Len() int {
	n := 0
	t.records.Range(func(any, any) bool {
		n++
		return true
	})
	return n
}
