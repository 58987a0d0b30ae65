package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/Novia-RDI-Seafaring/ft-otel/internal/fragment"
	"github.com/Novia-RDI-Seafaring/ft-otel/internal/patch"
)

// GenAI renders model-interaction spans (anything carrying
// gen_ai.operation.name) with operation/model headers and grouped AI
// metrics. Attribute values may contain model output, so string values are
// stripped of markup before display.
type GenAI struct {
	autoExpand []string
	sanitizer  *bluemonday.Policy
}

// NewGenAI creates the GenAI strategy.
func NewGenAI(autoExpand []string) *GenAI {
	return &GenAI{
		autoExpand: autoExpand,
		sanitizer:  bluemonday.StrictPolicy(),
	}
}

func (g *GenAI) CanRender(span sdktrace.ReadOnlySpan) bool {
	_, ok := attrMap(span)["gen_ai.operation.name"]
	return ok
}

func (g *GenAI) RenderHeader(span sdktrace.ReadOnlySpan) fragment.Fragment {
	attrs := attrMap(span)

	display := span.Name()
	if op, ok := attrs["gen_ai.operation.name"]; ok {
		display = op.Emit()
	}
	if model, ok := attrs["gen_ai.request.model"]; ok {
		display += " (" + model.Emit() + ")"
	}

	system := ""
	if sys, ok := attrs["gen_ai.system"]; ok {
		system = " • " + sys.Emit()
	}

	return fragment.El("div",
		fragment.ID(patch.HeaderID(spanID(span))),
		fragment.Class("flex justify-between items-center"),
	).With(
		fragment.El("span", fragment.Class("font-semibold "+statusColor(span))).
			With(fragment.Text(display)),
		fragment.El("span", fragment.Class("text-xs opacity-70 ml-1")).
			With(fragment.Text(system)),
		fragment.El("span", fragment.Class("ml-auto text-xs text-neutral-content/60")).
			With(fragment.Text(durationText(span))),
	)
}

func (g *GenAI) RenderAttributes(span sdktrace.ReadOnlySpan) fragment.Fragment {
	attrs := span.Attributes()
	if len(attrs) == 0 {
		return fragment.Empty()
	}

	var ai, other []attribute.KeyValue
	for _, kv := range attrs {
		if strings.HasPrefix(string(kv.Key), "gen_ai.") {
			ai = append(ai, kv)
		} else {
			other = append(other, kv)
		}
	}

	list := fragment.El("ul",
		fragment.Class("pl-1 space-y-[1px]"),
		fragment.ID(patch.AttributesID(spanID(span))),
	)

	if len(ai) > 0 {
		list.With(fragment.El("div", fragment.Class("mb-2")).With(
			fragment.El("span", fragment.Class("font-medium text-sm text-primary")).
				With(fragment.Text("AI Metrics")),
		))
		for _, kv := range ai {
			list.With(fragment.El("li", fragment.Class("flex text-xs py-[1px]")).With(
				fragment.El("span", fragment.Class("text-primary/70 mr-2 text-xs")).
					With(fragment.Text(g.displayKey(string(kv.Key)))),
				fragment.El("span", fragment.Class("font-mono text-xs text-base-content/80")).
					With(fragment.Text(g.displayValue(kv))),
			))
		}
	}

	if len(other) > 0 {
		if len(ai) > 0 {
			list.With(fragment.El("div", fragment.Class("mt-3")))
		}
		for _, kv := range other {
			list.With(fragment.El("li", fragment.Class("flex text-xs py-[1px]")).With(
				fragment.El("span", fragment.Class("text-neutral-content/70 mr-1")).
					With(fragment.Text(string(kv.Key))),
				fragment.El("span", fragment.Class("font-mono text-xs text-base-content/80 break-all")).
					With(fragment.Text(g.displayValue(kv))),
			))
		}
	}

	return list
}

func (g *GenAI) RenderEvents(span sdktrace.ReadOnlySpan) fragment.Fragment {
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

func (g *GenAI) RenderCompleteSpan(span sdktrace.ReadOnlySpan, childrenContainerID string, isRoot bool) fragment.Fragment {
	id := spanID(span)

	childrenContainer := fragment.El("div",
		fragment.Class("pl-4 space-y-1 border-l border-primary/30"),
		fragment.ID(childrenContainerID),
	)

	details := fragment.El("div",
		fragment.ID(patch.DetailsID(id)),
		fragment.Class("collapse-content pl-4 space-y-2"),
	).With(
		g.RenderAttributes(span),
		g.RenderEvents(span),
	)

	expanded := isRoot || matchesAny(span.Name(), g.autoExpand)

	checkboxAttrs := []fragment.Attr{
		{Key: "type", Val: "checkbox"},
		fragment.Class("collapse-checkbox"),
	}
	if expanded {
		checkboxAttrs = append(checkboxAttrs, fragment.Attr{Key: "checked", Val: ""})
	}
	checkboxAttrs = append(checkboxAttrs, fragment.ID(patch.CheckboxID(id)))

	collapse := fragment.El("div",
		fragment.Class("collapse collapse-arrow bg-primary/5 border border-primary/20 rounded-lg my-1"),
	).With(
		fragment.El("input", checkboxAttrs...),
		fragment.El("label",
			fragment.Attr{Key: "for", Val: patch.CheckboxID(id)},
			fragment.Class("collapse-title text-sm font-medium p-2 hover:bg-primary/10 transition-colors cursor-pointer"),
		).With(g.RenderHeader(span)),
		details,
	)

	return fragment.El("div",
		fragment.ID(patch.WrapperID(id)),
		fragment.Class("my-1"),
	).With(collapse, childrenContainer)
}

func (g *GenAI) displayKey(key string) string {
	trimmed := strings.TrimPrefix(key, "gen_ai.")
	trimmed = strings.ReplaceAll(trimmed, "_", " ")
	words := strings.Fields(strings.ReplaceAll(trimmed, ".", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func (g *GenAI) displayValue(kv attribute.KeyValue) string {
	key := string(kv.Key)
	switch key {
	case "gen_ai.usage.input_tokens", "gen_ai.usage.output_tokens":
		return kv.Value.Emit() + " tokens"
	case "gen_ai.usage.cost":
		if cost, err := strconv.ParseFloat(kv.Value.Emit(), 64); err == nil {
			return fmt.Sprintf("$%.6f", cost)
		}
	}
	text := attrText(kv.Value)
	if kv.Value.Type() == attribute.STRING {
		text = g.sanitizer.Sanitize(text)
	}
	return text
}
