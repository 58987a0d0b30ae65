package render

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestFallback_AcceptsEverySpan(t *testing.T) {
	f := NewFallback(nil)

	assert.True(t, f.CanRender(testSpan{name: "anything"}.snapshot()))
	assert.True(t, f.CanRender(testSpan{}.snapshot()))
}

func TestFallbackHeader_ShowsNameStatusDuration(t *testing.T) {
	f := NewFallback(nil)

	t.Run("in progress", func(t *testing.T) {
		out := f.RenderHeader(testSpan{name: "fetch users"}.snapshot()).String()

		assert.Contains(t, out, "fetch users")
		assert.Contains(t, out, "UNSET")
		assert.Contains(t, out, "text-warning")
		assert.Contains(t, out, "...")
	})

	t.Run("ended ok", func(t *testing.T) {
		out := f.RenderHeader(testSpan{name: "fetch users", status: codes.Ok, ended: true}.snapshot()).String()

		assert.Contains(t, out, "OK")
		assert.Contains(t, out, "text-success")
		assert.Contains(t, out, "42.0 ms")
	})

	t.Run("ended error", func(t *testing.T) {
		out := f.RenderHeader(testSpan{name: "fetch users", status: codes.Error, ended: true}.snapshot()).String()

		assert.Contains(t, out, "ERROR")
		assert.Contains(t, out, "text-error")
	})
}

func TestFallbackHeader_IsIdempotent(t *testing.T) {
	f := NewFallback(nil)
	span := testSpan{name: "work", status: codes.Ok, ended: true}.snapshot()

	assert.Equal(t, f.RenderHeader(span).String(), f.RenderHeader(span).String())
}

func TestFallbackAttributes(t *testing.T) {
	f := NewFallback(nil)

	t.Run("empty without attributes", func(t *testing.T) {
		out := f.RenderAttributes(testSpan{name: "bare"}.snapshot()).String()
		assert.Equal(t, "<div></div>", out)
	})

	t.Run("lists key value pairs", func(t *testing.T) {
		span := testSpan{name: "roll", attrs: []attribute.KeyValue{
			attribute.Int("sides", 6),
			attribute.String("result", "4"),
			attribute.StringSlice("tags", []string{"a", "b"}),
		}}.snapshot()

		out := f.RenderAttributes(span).String()

		assert.Contains(t, out, "sides")
		assert.Contains(t, out, "6")
		assert.Contains(t, out, "result")
		assert.Contains(t, out, `[&#34;a&#34;,&#34;b&#34;]`)
		assert.Contains(t, out, "span-attributes-")
	})
}

func TestFallbackEvents(t *testing.T) {
	f := NewFallback(nil)

	t.Run("empty without events", func(t *testing.T) {
		out := f.RenderEvents(testSpan{name: "quiet"}.snapshot()).String()
		assert.Equal(t, "<div></div>", out)
	})

	t.Run("lists events with timestamps", func(t *testing.T) {
		span := testSpan{name: "roll", events: []sdktrace.Event{
			{Name: "die rolled", Time: time.Date(2025, 6, 1, 12, 0, 1, 500e6, time.UTC)},
		}}.snapshot()

		out := f.RenderEvents(span).String()

		assert.Contains(t, out, "die rolled")
		assert.Contains(t, out, "12:00:01.500")
		assert.Contains(t, out, "span-events-")
	})
}

func TestFallbackCompleteSpan_ContainsChildrenContainer(t *testing.T) {
	f := NewFallback(nil)
	span := testSpan{name: "parent"}.snapshot()

	out := f.RenderCompleteSpan(span, "span-children-abcd", false).String()

	assert.Contains(t, out, `id="span-children-abcd"`)
	assert.Contains(t, out, "span-header-")
	assert.Contains(t, out, "span-details-")
	assert.Contains(t, out, "span-checkbox-")
}

func TestFallbackCompleteSpan_ExpansionRules(t *testing.T) {
	f := NewFallback([]string{"Tool:", "Chat Message:"})

	expanded := func(name string, isRoot bool) bool {
		span := testSpan{name: name}.snapshot()
		out := f.RenderCompleteSpan(span, "span-children-x", isRoot).String()
		return strings.Contains(out, `checked=""`)
	}

	assert.True(t, expanded("anything", true), "roots always expand")
	assert.True(t, expanded("Tool: Roll a die", false))
	assert.True(t, expanded("tool: roll a die", false), "matching is case-insensitive")
	assert.False(t, expanded("ai_processing", false))
}
