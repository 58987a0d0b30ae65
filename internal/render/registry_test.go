package render

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/Novia-RDI-Seafaring/ft-otel/internal/fragment"
)

// testSpan builds a ReadOnlySpan snapshot for renderer tests.
type testSpan struct {
	name   string
	attrs  []attribute.KeyValue
	events []sdktrace.Event
	status codes.Code
	ended  bool
}

func (s testSpan) snapshot() sdktrace.ReadOnlySpan {
	stub := tracetest.SpanStub{
		Name: s.name,
		SpanContext: trace.NewSpanContext(trace.SpanContextConfig{
			TraceID: trace.TraceID{1},
			SpanID:  trace.SpanID{0xab, 0xcd},
		}),
		StartTime:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Attributes: s.attrs,
		Events:     s.events,
		Status:     sdktrace.Status{Code: s.status},
	}
	if s.ended {
		stub.EndTime = stub.StartTime.Add(42 * time.Millisecond)
	}
	return stub.Snapshot()
}

// namedStrategy accepts spans with a name prefix and stamps its label.
type namedStrategy struct {
	label  string
	prefix string
}

func (n *namedStrategy) CanRender(span sdktrace.ReadOnlySpan) bool {
	return strings.HasPrefix(span.Name(), n.prefix)
}

func (n *namedStrategy) RenderHeader(sdktrace.ReadOnlySpan) fragment.Fragment {
	return fragment.El("div").With(fragment.Text(n.label))
}

func (n *namedStrategy) RenderAttributes(sdktrace.ReadOnlySpan) fragment.Fragment {
	return fragment.Empty()
}

func (n *namedStrategy) RenderEvents(sdktrace.ReadOnlySpan) fragment.Fragment {
	return fragment.Empty()
}

func (n *namedStrategy) RenderCompleteSpan(_ sdktrace.ReadOnlySpan, childrenContainerID string, _ bool) fragment.Fragment {
	return fragment.El("div").With(
		fragment.Text(n.label),
		fragment.El("div", fragment.ID(childrenContainerID)),
	)
}

// panicStrategy panics in its capability check.
type panicStrategy struct{ namedStrategy }

func (p *panicStrategy) CanRender(sdktrace.ReadOnlySpan) bool {
	panic("broken predicate")
}

func TestSelect_EmptyRegistryUsesFallback(t *testing.T) {
	fallback := &namedStrategy{label: "fallback"}
	r := NewRegistry(fallback, nil)

	got := r.Select(testSpan{name: "anything"}.snapshot())

	assert.Same(t, Strategy(fallback), got)
	assert.Equal(t, 0, r.Len())
}

func TestSelect_FirstAcceptingStrategyWins(t *testing.T) {
	r := NewRegistry(&namedStrategy{label: "fallback"}, nil)
	first := &namedStrategy{label: "first", prefix: "Tool:"}
	second := &namedStrategy{label: "second", prefix: "Tool:"}
	r.Add(first)
	r.Add(second)

	got := r.Select(testSpan{name: "Tool: Roll a die"}.snapshot())

	assert.Same(t, Strategy(first), got)
	assert.Equal(t, 2, r.Len())
}

func TestSelect_NonMatchingFallsThrough(t *testing.T) {
	fallback := &namedStrategy{label: "fallback"}
	r := NewRegistry(fallback, nil)
	r.Add(&namedStrategy{label: "tools", prefix: "Tool:"})

	got := r.Select(testSpan{name: "database query"}.snapshot())

	assert.Same(t, Strategy(fallback), got)
}

func TestSelect_PanickingPredicateCountsAsNonMatch(t *testing.T) {
	fallback := &namedStrategy{label: "fallback"}
	r := NewRegistry(fallback, nil)
	r.Add(&panicStrategy{})
	matching := &namedStrategy{label: "ok", prefix: ""}
	r.Add(matching)

	var got Strategy
	assert.NotPanics(t, func() {
		got = r.Select(testSpan{name: "anything"}.snapshot())
	})
	assert.Same(t, Strategy(matching), got)
}

func TestForAttribute_MatchesOnAttributeKey(t *testing.T) {
	base := &namedStrategy{label: "db"}
	s := ForAttribute("db.system", base)

	with := testSpan{name: "query", attrs: []attribute.KeyValue{
		attribute.String("db.system", "postgres"),
	}}.snapshot()
	without := testSpan{name: "query"}.snapshot()

	assert.True(t, s.CanRender(with))
	assert.False(t, s.CanRender(without))
	assert.Contains(t, s.RenderHeader(with).String(), "db")
}

func TestAdd_ConcurrentWithSelect(t *testing.T) {
	r := NewRegistry(&namedStrategy{label: "fallback"}, nil)
	span := testSpan{name: "x"}.snapshot()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			r.Add(&namedStrategy{label: "s", prefix: "never-matches"})
		}
	}()
	for i := 0; i < 100; i++ {
		r.Select(span)
	}
	<-done

	assert.Equal(t, 100, r.Len())
}
