package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func TestPaper_CanRender(t *testing.T) {
	p := NewPaper()

	accepted := []testSpan{
		{name: "Math Problem Solving Session"},
		{name: "Step: subtract", attrs: []attribute.KeyValue{attribute.String("math.step_type", "reasoning")}},
		{name: "Math: division"},
		{name: "compute", attrs: []attribute.KeyValue{attribute.String("math.operation", "division")}},
	}
	for _, s := range accepted {
		assert.True(t, p.CanRender(s.snapshot()), s.name)
	}

	assert.False(t, p.CanRender(testSpan{name: "http request"}.snapshot()))
}

func TestPaper_UpdateStagesRenderNothing(t *testing.T) {
	p := NewPaper()
	span := testSpan{name: "Math: division"}.snapshot()

	assert.Equal(t, "<div></div>", p.RenderHeader(span).String())
	assert.Equal(t, "<div></div>", p.RenderAttributes(span).String())
	assert.Equal(t, "<div></div>", p.RenderEvents(span).String())
}

func TestPaperCompleteSpan_SessionShowsProblem(t *testing.T) {
	p := NewPaper()
	span := testSpan{
		name:  "Math Problem Solving Session",
		attrs: []attribute.KeyValue{attribute.String("math.problem", "Solve 3x + 5 = 20")},
	}.snapshot()

	out := p.RenderCompleteSpan(span, "span-children-s", true).String()

	assert.Contains(t, out, "Problem:")
	assert.Contains(t, out, "Solve 3x + 5 = 20")
	assert.Contains(t, out, `id="span-children-s"`)
}

func TestPaperCompleteSpan_TransparentWithoutContent(t *testing.T) {
	p := NewPaper()
	// A reasoning step with no reasoning text stays invisible but must
	// still carry the children container.
	span := testSpan{
		name:  "Step: internal",
		attrs: []attribute.KeyValue{attribute.String("math.step_type", "reasoning")},
	}.snapshot()

	out := p.RenderCompleteSpan(span, "span-children-t", false).String()

	assert.Contains(t, out, "display: contents;")
	assert.Contains(t, out, `id="span-children-t"`)
	assert.NotContains(t, out, "collapse")
}

func TestPaperCompleteSpan_StepContent(t *testing.T) {
	p := NewPaper()

	t.Run("reasoning", func(t *testing.T) {
		span := testSpan{name: "Step: subtract", attrs: []attribute.KeyValue{
			attribute.String("math.step_type", "reasoning"),
			attribute.String("math.reasoning", "Subtract 5 from both sides."),
		}}.snapshot()

		out := p.RenderCompleteSpan(span, "span-children-a", false).String()
		assert.Contains(t, out, "Subtract 5 from both sides.")
	})

	t.Run("analysis", func(t *testing.T) {
		span := testSpan{name: "Step: analyze", attrs: []attribute.KeyValue{
			attribute.String("math.step_type", "problem_analysis"),
			attribute.String("math.explanation", "Linear equation in one variable."),
		}}.snapshot()

		out := p.RenderCompleteSpan(span, "span-children-b", false).String()
		assert.Contains(t, out, "Analysis:")
		assert.Contains(t, out, "Linear equation in one variable.")
	})

	t.Run("conclusion", func(t *testing.T) {
		span := testSpan{name: "Step: conclude", attrs: []attribute.KeyValue{
			attribute.String("math.step_type", "conclusion"),
			attribute.String("math.result", "x = 5"),
		}}.snapshot()

		out := p.RenderCompleteSpan(span, "span-children-c", false).String()
		assert.Contains(t, out, "Final Answer:")
		assert.Contains(t, out, "x = 5")
	})

	t.Run("operation", func(t *testing.T) {
		span := testSpan{name: "Math: division", attrs: []attribute.KeyValue{
			attribute.String("math.operation", "division"),
			attribute.String("math.calculation", "3x / 3 = 15 / 3"),
		}}.snapshot()

		out := p.RenderCompleteSpan(span, "span-children-d", false).String()
		assert.Contains(t, out, "Division:")
		assert.Contains(t, out, "3x / 3 = 15 / 3")
	})
}
