package render

import (
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/Novia-RDI-Seafaring/ft-otel/internal/fragment"
)

// Strategy renders spans into display fragments. Render calls must be pure
// functions of the span: the same unchanged span renders to identical
// output on every call, and the span is never mutated.
type Strategy interface {
	// CanRender reports whether this strategy handles the span. It must
	// be fast and side-effect free; it runs against every span at both
	// start and end time.
	CanRender(span sdktrace.ReadOnlySpan) bool

	// RenderHeader renders the name/status/duration summary.
	RenderHeader(span sdktrace.ReadOnlySpan) fragment.Fragment

	// RenderAttributes renders the attribute display, empty when the
	// span has no attributes.
	RenderAttributes(span sdktrace.ReadOnlySpan) fragment.Fragment

	// RenderEvents renders the chronological event display, empty when
	// the span has no events.
	RenderEvents(span sdktrace.ReadOnlySpan) fragment.Fragment

	// RenderCompleteSpan renders the full unit shown when the span
	// starts. The fragment must contain an element addressable by
	// childrenContainerID so later-arriving children can attach to it.
	RenderCompleteSpan(span sdktrace.ReadOnlySpan, childrenContainerID string, isRoot bool) fragment.Fragment
}

// attributeStrategy wraps a base strategy, replacing only its capability
// predicate with an attribute-key match.
type attributeStrategy struct {
	key  string
	base Strategy
}

// ForAttribute returns a strategy that renders like base but only accepts
// spans carrying the given attribute key.
func ForAttribute(key string, base Strategy) Strategy {
	return &attributeStrategy{key: key, base: base}
}

func (a *attributeStrategy) CanRender(span sdktrace.ReadOnlySpan) bool {
	for _, kv := range span.Attributes() {
		if string(kv.Key) == a.key {
			return true
		}
	}
	return false
}

func (a *attributeStrategy) RenderHeader(span sdktrace.ReadOnlySpan) fragment.Fragment {
	return a.base.RenderHeader(span)
}

func (a *attributeStrategy) RenderAttributes(span sdktrace.ReadOnlySpan) fragment.Fragment {
	return a.base.RenderAttributes(span)
}

func (a *attributeStrategy) RenderEvents(span sdktrace.ReadOnlySpan) fragment.Fragment {
	return a.base.RenderEvents(span)
}

func (a *attributeStrategy) RenderCompleteSpan(span sdktrace.ReadOnlySpan, childrenContainerID string, isRoot bool) fragment.Fragment {
	return a.base.RenderCompleteSpan(span, childrenContainerID, isRoot)
}
