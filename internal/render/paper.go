package render

import (
	"strings"

	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/Novia-RDI-Seafaring/ft-otel/internal/fragment"
	"github.com/Novia-RDI-Seafaring/ft-otel/internal/patch"
)

const sessionSpanName = "Math Problem Solving Session"

// Paper renders math-reasoning spans as a continuous document instead of a
// collapsible tree. It is selective: spans without displayable reasoning
// content produce no visible markup, but every span still emits its
// children container so descendants stay attachable.
type Paper struct{}

// NewPaper creates the paper strategy.
func NewPaper() *Paper { return &Paper{} }

func (p *Paper) CanRender(span sdktrace.ReadOnlySpan) bool {
	attrs := attrMap(span)
	if _, ok := attrs["math.step_type"]; ok {
		return true
	}
	if _, ok := attrs["math.problem"]; ok {
		return true
	}
	if _, ok := attrs["math.operation"]; ok {
		return true
	}
	name := span.Name()
	return strings.HasPrefix(name, "Math:") ||
		strings.HasPrefix(name, "Step:") ||
		name == sessionSpanName
}

// RenderHeader renders nothing; all content lives in the complete span.
func (p *Paper) RenderHeader(sdktrace.ReadOnlySpan) fragment.Fragment {
	return fragment.Empty()
}

func (p *Paper) RenderAttributes(sdktrace.ReadOnlySpan) fragment.Fragment {
	return fragment.Empty()
}

func (p *Paper) RenderEvents(sdktrace.ReadOnlySpan) fragment.Fragment {
	return fragment.Empty()
}

func (p *Paper) RenderCompleteSpan(span sdktrace.ReadOnlySpan, childrenContainerID string, _ bool) fragment.Fragment {
	id := spanID(span)
	childrenContainer := fragment.El("div", fragment.ID(childrenContainerID))

	content := p.renderContent(span)
	if content.IsZero() {
		// Transparent passthrough: no visible markup, but the span shell
		// and children container keep the tree connected.
		return fragment.El("div",
			fragment.ID(patch.WrapperID(id)),
			fragment.Style("display: contents;"),
		).With(childrenContainer)
	}

	return fragment.El("div",
		fragment.ID(patch.WrapperID(id)),
		fragment.Class("math-paper-section"),
	).With(content, childrenContainer)
}

// renderContent returns a zero fragment for spans that should stay invisible.
func (p *Paper) renderContent(span sdktrace.ReadOnlySpan) fragment.Fragment {
	attrs := attrMap(span)

	if span.Name() == sessionSpanName {
		problem := "Mathematical Problem"
		if v, ok := attrs["math.problem"]; ok {
			problem = v.Emit()
		}
		return fragment.El("div").With(
			fragment.El("hr", fragment.Class("border-2 border-gray-400 my-6")),
			fragment.El("div", fragment.Class("mb-6")).With(
				fragment.El("p", fragment.Class("font-bold text-lg mb-2")).
					With(fragment.Text("Problem:")),
				fragment.El("p", fragment.Class("text-base mb-4 p-3 bg-blue-50 border border-blue-200 rounded")).
					With(fragment.Text(problem)),
			),
		)
	}

	if step, ok := attrs["math.step_type"]; ok {
		switch step.Emit() {
		case "reasoning":
			if v, ok := attrs["math.reasoning"]; ok && v.Emit() != "" {
				return fragment.El("div", fragment.Class("mb-4")).With(
					fragment.El("p", fragment.Class("text-base leading-relaxed mb-4 font-serif")).
						With(fragment.Text(v.Emit())),
				)
			}
		case "problem_analysis":
			if v, ok := attrs["math.explanation"]; ok && v.Emit() != "" {
				return fragment.El("div", fragment.Class("mb-4")).With(
					fragment.El("p", fragment.Class("font-medium text-purple-600 mb-1")).
						With(fragment.Text("Analysis:")),
					fragment.El("p", fragment.Class("text-base mb-3 italic")).
						With(fragment.Text(v.Emit())),
				)
			}
		case "conclusion":
			if v, ok := attrs["math.result"]; ok && v.Emit() != "" {
				return fragment.El("div", fragment.Class("mb-6")).With(
					fragment.El("p", fragment.Class("font-bold text-green-600 text-lg mb-2")).
						With(fragment.Text("Final Answer:")),
					fragment.El("p", fragment.Class("text-lg font-semibold bg-green-50 p-3 border border-green-300 rounded")).
						With(fragment.Text(v.Emit())),
				)
			}
		}
		return fragment.Fragment{}
	}

	if _, ok := attrs["math.operation"]; ok {
		return p.renderOperation(attrs)
	}

	return fragment.Fragment{}
}

func (p *Paper) renderOperation(attrs map[string]attribute.Value) fragment.Fragment {
	get := func(key string) string {
		if v, ok := attrs[key]; ok {
			return v.Emit()
		}
		return ""
	}

	formula := get("math.formula")
	calculation := get("math.calculation")
	result := get("math.result")
	variable := get("math.variable_name")

	class := "mb-4 p-3 border-l-4 border-blue-300 bg-blue-50/30"
	if variable != "" {
		class = "mb-3 p-2 bg-blue-50 border border-blue-200 rounded"
	}
	step := fragment.El("div", fragment.Class(class))
	hasContent := false

	if variable == "" {
		if label := operationLabel(get("math.operation")); label != "" {
			step.With(fragment.El("p", fragment.Class("font-medium text-blue-600 mb-1")).
				With(fragment.Text(label)))
			hasContent = true
		}
	}

	if formula != "" && calculation == "" {
		step.With(fragment.El("pre", fragment.Class("text-center font-mono text-lg bg-gray-50 p-2 border rounded mb-2")).
			With(fragment.Text(formula)))
		hasContent = true
	}

	switch {
	case calculation != "" && variable != "":
		step.With(fragment.El("p", fragment.Class("font-mono text-xl font-bold text-center text-blue-800 py-3")).
			With(fragment.Text(calculation)))
		hasContent = true
	case calculation != "":
		step.With(fragment.El("pre", fragment.Class("font-mono text-lg bg-gray-50 p-3 border rounded mb-2 whitespace-pre-wrap text-center")).
			With(fragment.Text(calculation)))
		hasContent = true
	case result != "" && variable == "":
		step.With(fragment.El("p", fragment.Class("font-bold text-lg text-green-700 text-center py-2")).
			With(fragment.Text("= " + result)))
		hasContent = true
	}

	if !hasContent {
		return fragment.Fragment{}
	}
	return step
}

func operationLabel(op string) string {
	switch op {
	case "addition":
		return "Addition:"
	case "subtraction":
		return "Subtraction:"
	case "multiplication":
		return "Multiplication:"
	case "division":
		return "Division:"
	case "exponentiation":
		return "Exponentiation:"
	case "square_root":
		return "Square Root:"
	case "discriminant":
		return "Discriminant Calculation:"
	case "quadratic_roots":
		return "Quadratic Root Calculation:"
	default:
		return ""
	}
}
