package render

import (
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/Novia-RDI-Seafaring/ft-otel/internal/fragment"
	"github.com/Novia-RDI-Seafaring/ft-otel/internal/patch"
)

// Fallback renders every span as a collapsible unit: status-colored header,
// flat key/value attribute lines and timestamped event lines. It is the
// designated last resort of a Registry.
type Fallback struct {
	autoExpand []string
}

// NewFallback creates the fallback strategy. Spans whose name contains one
// of the autoExpand patterns (case-insensitive) render initially expanded.
func NewFallback(autoExpand []string) *Fallback {
	return &Fallback{autoExpand: autoExpand}
}

// CanRender always accepts; the fallback handles any span.
func (f *Fallback) CanRender(sdktrace.ReadOnlySpan) bool { return true }

func (f *Fallback) RenderHeader(span sdktrace.ReadOnlySpan) fragment.Fragment {
	return fragment.El("div",
		fragment.ID(patch.HeaderID(spanID(span))),
		fragment.Class("flex justify-between items-center"),
	).With(
		fragment.El("span", fragment.Class("font-semibold "+statusColor(span))).
			With(fragment.Text(span.Name())),
		fragment.El("span", fragment.Class("text-xs opacity-70 ml-1")).
			With(fragment.Text(" • "+statusName(span))),
		fragment.El("span", fragment.Class("ml-auto text-xs text-neutral-content/60")).
			With(fragment.Text(durationText(span))),
	)
}

func (f *Fallback) RenderAttributes(span sdktrace.ReadOnlySpan) fragment.Fragment {
	attrs := span.Attributes()
	if len(attrs) == 0 {
		return fragment.Empty()
	}

	list := fragment.El("ul",
		fragment.Class("pl-1 space-y-[1px]"),
		fragment.ID(patch.AttributesID(spanID(span))),
	)
	for _, kv := range attrs {
		list.With(fragment.El("li", fragment.Class("flex text-xs py-[1px]")).With(
			fragment.El("span", fragment.Class("text-neutral-content/70 mr-1")).
				With(fragment.Text(string(kv.Key))),
			fragment.El("span", fragment.Class("font-mono text-xs text-base-content/80 break-all")).
				With(fragment.Text(attrText(kv.Value))),
		))
	}
	return list
}

func (f *Fallback) RenderEvents(span sdktrace.ReadOnlySpan) fragment.Fragment {
	events := span.Events()
	if len(events) == 0 {
		return fragment.Empty()
	}

	out := fragment.El("div",
		fragment.Class("space-y-1"),
		fragment.ID(patch.EventsID(spanID(span))),
	)
	for _, ev := range events {
		out.With(fragment.El("div", fragment.Class("border-l-2 border-info pl-2 py-1")).With(
			fragment.El("span", fragment.Class("font-medium text-xs")).
				With(fragment.Text(ev.Name)),
			fragment.El("span", fragment.Class("text-xs opacity-60")).
				With(fragment.Text(" @ "+ev.Time.Format("15:04:05.000"))),
		))
	}
	return out
}

func (f *Fallback) RenderCompleteSpan(span sdktrace.ReadOnlySpan, childrenContainerID string, isRoot bool) fragment.Fragment {
	id := spanID(span)

	childrenContainer := fragment.El("div",
		fragment.Class("pl-4 space-y-1 border-l border-base-300"),
		fragment.ID(childrenContainerID),
	)

	details := fragment.El("div",
		fragment.ID(patch.DetailsID(id)),
		fragment.Class("collapse-content pl-4 space-y-2"),
	).With(
		f.RenderAttributes(span),
		f.RenderEvents(span),
	)

	expanded := isRoot || matchesAny(span.Name(), f.autoExpand)

	checkboxAttrs := []fragment.Attr{
		{Key: "type", Val: "checkbox"},
		fragment.Class("collapse-checkbox"),
	}
	if expanded {
		checkboxAttrs = append(checkboxAttrs, fragment.Attr{Key: "checked", Val: ""})
	}
	checkboxAttrs = append(checkboxAttrs, fragment.ID(patch.CheckboxID(id)))

	collapse := fragment.El("div",
		fragment.Class("collapse collapse-arrow bg-base-100 border border-base-300 rounded-lg my-1"),
	).With(
		fragment.El("input", checkboxAttrs...),
		fragment.El("label",
			fragment.Attr{Key: "for", Val: patch.CheckboxID(id)},
			fragment.Class("collapse-title text-sm font-medium p-2 hover:bg-base-200 transition-colors cursor-pointer"),
		).With(f.RenderHeader(span)),
		details,
	)

	return fragment.El("div",
		fragment.ID(patch.WrapperID(id)),
		fragment.Class("my-1"),
	).With(collapse, childrenContainer)
}
