package tracker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func spanContext(spanID byte) trace.SpanContext {
	return trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: trace.TraceID{1},
		SpanID:  trace.SpanID{spanID},
	})
}

func stubSpan(name string, sc, parent trace.SpanContext) tracetest.SpanStub {
	return tracetest.SpanStub{
		Name:        name,
		SpanContext: sc,
		Parent:      parent,
	}
}

func TestStart_RootWithoutParent(t *testing.T) {
	tr := New()
	stub := stubSpan("root", spanContext(1), trace.SpanContext{})

	rec := tr.Start(context.Background(), stub.Snapshot())

	assert.True(t, rec.IsRoot())
	assert.Equal(t, spanContext(1).SpanID().String(), rec.SpanID)
}

func TestStart_ContextParentWins(t *testing.T) {
	tr := New()
	ctx := trace.ContextWithSpanContext(context.Background(), spanContext(9))
	// Static parent disagrees with the live context; the context wins.
	stub := stubSpan("child", spanContext(2), spanContext(5))

	rec := tr.Start(ctx, stub.Snapshot())

	assert.Equal(t, spanContext(9).SpanID().String(), rec.ParentID)
}

func TestStart_StaticParentFallback(t *testing.T) {
	tr := New()
	stub := stubSpan("child", spanContext(2), spanContext(5))

	rec := tr.Start(context.Background(), stub.Snapshot())

	assert.Equal(t, spanContext(5).SpanID().String(), rec.ParentID)
}

func TestEnd_KeepsParentResolvedAtStart(t *testing.T) {
	tr := New()
	ctx := trace.ContextWithSpanContext(context.Background(), spanContext(9))
	started := stubSpan("child", spanContext(2), trace.SpanContext{})
	tr.Start(ctx, started.Snapshot())

	// The ended snapshot carries no static parent at all.
	ended := stubSpan("child", spanContext(2), trace.SpanContext{})
	rec := tr.End(ended.Snapshot())

	assert.Equal(t, spanContext(9).SpanID().String(), rec.ParentID)
}

func TestEnd_UpdatesStoredSnapshot(t *testing.T) {
	tr := New()
	stub := stubSpan("work", spanContext(3), trace.SpanContext{})
	tr.Start(context.Background(), stub.Snapshot())

	ended := stub
	ended.Name = "work-done"
	tr.End(ended.Snapshot())

	rec, ok := tr.Lookup(spanContext(3).SpanID().String())
	require.True(t, ok)
	assert.Equal(t, "work-done", rec.Span.Name())
}

func TestEnd_WithoutStartFallsBackToStaticParent(t *testing.T) {
	tr := New()
	stub := stubSpan("orphan", spanContext(4), spanContext(7))

	rec := tr.End(stub.Snapshot())

	assert.Equal(t, spanContext(7).SpanID().String(), rec.ParentID)
	assert.Equal(t, 1, tr.Len())
}

func TestLookup_MissReturnsFalse(t *testing.T) {
	tr := New()

	_, ok := tr.Lookup("deadbeef")

	assert.False(t, ok)
	assert.Equal(t, 0, tr.Len())
}
