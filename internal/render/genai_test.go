package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func chatSpan(extra ...attribute.KeyValue) testSpan {
	attrs := []attribute.KeyValue{
		attribute.String("gen_ai.operation.name", "chat"),
		attribute.String("gen_ai.request.model", "gpt-4o-mini"),
		attribute.String("gen_ai.system", "openai"),
	}
	return testSpan{name: "chat gpt-4o-mini", attrs: append(attrs, extra...)}
}

func TestGenAI_CanRenderKeysOnOperationName(t *testing.T) {
	g := NewGenAI(nil)

	assert.True(t, g.CanRender(chatSpan().snapshot()))
	assert.False(t, g.CanRender(testSpan{name: "plain work"}.snapshot()))
}

func TestGenAIHeader_ShowsOperationModelAndSystem(t *testing.T) {
	g := NewGenAI(nil)

	out := g.RenderHeader(chatSpan().snapshot()).String()

	assert.Contains(t, out, "chat (gpt-4o-mini)")
	assert.Contains(t, out, "openai")
}

func TestGenAIAttributes_GroupsAIMetrics(t *testing.T) {
	g := NewGenAI(nil)
	span := chatSpan(
		attribute.Int("gen_ai.usage.input_tokens", 120),
		attribute.Float64("gen_ai.usage.cost", 0.000210),
		attribute.String("request.id", "req-1"),
	).snapshot()

	out := g.RenderAttributes(span).String()

	assert.Contains(t, out, "AI Metrics")
	assert.Contains(t, out, "Usage Input Tokens")
	assert.Contains(t, out, "120 tokens")
	assert.Contains(t, out, "$0.000210")
	assert.Contains(t, out, "request.id")
}

func TestGenAIAttributes_SanitizesStringValues(t *testing.T) {
	g := NewGenAI(nil)
	span := chatSpan(
		attribute.String("gen_ai.response.text", `<img src=x onerror=alert(1)>hello`),
	).snapshot()

	out := g.RenderAttributes(span).String()

	assert.Contains(t, out, "hello")
	assert.NotContains(t, out, "onerror")
}

func TestGenAICompleteSpan_ContainsChildrenContainer(t *testing.T) {
	g := NewGenAI(nil)

	out := g.RenderCompleteSpan(chatSpan().snapshot(), "span-children-z", true).String()

	assert.Contains(t, out, `id="span-children-z"`)
	assert.Contains(t, out, `checked=""`)
}
