package render

import (
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/Novia-RDI-Seafaring/ft-otel/internal/fragment"
	"github.com/Novia-RDI-Seafaring/ft-otel/internal/patch"
)

// Compact renders a minimal one-line view per span: a status dot and the
// span name, no attributes or events.
type Compact struct{}

// NewCompact creates the compact strategy.
func NewCompact() *Compact { return &Compact{} }

func (c *Compact) CanRender(sdktrace.ReadOnlySpan) bool { return true }

func (c *Compact) RenderHeader(span sdktrace.ReadOnlySpan) fragment.Fragment {
	return fragment.El("div",
		fragment.Class("flex items-center"),
		fragment.ID(patch.HeaderID(spanID(span))),
	).With(
		fragment.El("span", fragment.Class(statusColor(span)+" mr-2")).
			With(fragment.Text("●")),
		fragment.El("span", fragment.Class("font-medium text-sm")).
			With(fragment.Text(span.Name())),
	)
}

func (c *Compact) RenderAttributes(sdktrace.ReadOnlySpan) fragment.Fragment {
	return fragment.Empty()
}

func (c *Compact) RenderEvents(sdktrace.ReadOnlySpan) fragment.Fragment {
	return fragment.Empty()
}

func (c *Compact) RenderCompleteSpan(span sdktrace.ReadOnlySpan, childrenContainerID string, _ bool) fragment.Fragment {
	return fragment.El("div",
		fragment.ID(patch.WrapperID(spanID(span))),
		fragment.Class("py-1"),
	).With(
		c.RenderHeader(span),
		fragment.El("div", fragment.ID(childrenContainerID), fragment.Class("pl-6")),
	)
}
