// Package processor bridges the OpenTelemetry SDK to the streaming
// pipeline. It implements sdktrace.SpanProcessor: on span start it renders
// the complete span unit and enqueues an append patch; on span end it
// re-renders header, attributes and events and enqueues three replace
// patches. Errors never propagate into the tracing runtime.
package processor

import (
	"context"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"

	"github.com/Novia-RDI-Seafaring/ft-otel/internal/fragment"
	"github.com/Novia-RDI-Seafaring/ft-otel/internal/monitoring"
	"github.com/Novia-RDI-Seafaring/ft-otel/internal/patch"
	"github.com/Novia-RDI-Seafaring/ft-otel/internal/queue"
	"github.com/Novia-RDI-Seafaring/ft-otel/internal/render"
	"github.com/Novia-RDI-Seafaring/ft-otel/internal/tracker"
)

// Processor streams span lifecycle callbacks as display patches.
type Processor struct {
	tracker  *tracker.Tracker
	registry *render.Registry
	encoder  *patch.Encoder
	queue    queue.Queue
	logger   *zap.Logger
	metrics  *monitoring.Metrics
}

var _ sdktrace.SpanProcessor = (*Processor)(nil)

// New creates a processor. metrics may be nil.
func New(tr *tracker.Tracker, reg *render.Registry, enc *patch.Encoder, q queue.Queue, logger *zap.Logger, metrics *monitoring.Metrics) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{
		tracker:  tr,
		registry: reg,
		encoder:  enc,
		queue:    q,
		logger:   logger,
		metrics:  metrics,
	}
}

// OnStart resolves the span's placement, renders the complete span unit
// through the selected strategy and enqueues one append patch targeting
// the parent's children container (or the root container).
func (p *Processor) OnStart(parent context.Context, s sdktrace.ReadWriteSpan) {
	if IsSuppressed(parent) {
		return
	}
	defer p.recovered("start", s)

	// The handling body runs under the suppression marker so nothing it
	// does can re-enter the processor.
	p.handleStart(WithSuppression(parent), s)
}

// OnEnd updates the tracked snapshot and enqueues three replace patches
// (header, attributes, events) rendered by a freshly selected strategy.
func (p *Processor) OnEnd(s sdktrace.ReadOnlySpan) {
	defer p.recovered("end", s)

	p.handleEnd(s)
}

// Shutdown implements sdktrace.SpanProcessor.
func (p *Processor) Shutdown(context.Context) error {
	p.logger.Info("span processor shutting down",
		zap.Int("tracked_spans", p.tracker.Len()),
		zap.Int("undelivered_patches", p.queue.Len()),
	)
	return nil
}

// ForceFlush implements sdktrace.SpanProcessor. Patches are enqueued
// synchronously in the callbacks, so there is nothing buffered to flush.
func (p *Processor) ForceFlush(context.Context) error { return nil }

func (p *Processor) handleStart(parent context.Context, s sdktrace.ReadOnlySpan) {
	if p.metrics != nil {
		p.metrics.RecordSpanStart()
	}

	rec := p.tracker.Start(parent, s)
	strategy := p.registry.Select(s)
	childrenID := patch.ChildrenID(rec.SpanID)

	frag, ok := p.renderSafe("complete_span", s, func() fragment.Fragment {
		return strategy.RenderCompleteSpan(s, childrenID, rec.IsRoot())
	})
	if !ok {
		// The children container must exist even when rendering failed,
		// or descendants would have nowhere to attach.
		frag = fragment.El("div",
			fragment.ID(patch.WrapperID(rec.SpanID)),
			fragment.Style("display: contents;"),
		).With(fragment.El("div", fragment.ID(childrenID)))
	}

	p.enqueue(p.encoder.Start(rec.ParentID, frag))
}

func (p *Processor) handleEnd(s sdktrace.ReadOnlySpan) {
	if p.metrics != nil {
		p.metrics.RecordSpanEnd()
	}

	rec := p.tracker.End(s)
	strategy := p.registry.Select(s)

	// Each render call is guarded independently, so one failing stage
	// does not suppress the others.
	header, _ := p.renderSafe("header", s, func() fragment.Fragment {
		return strategy.RenderHeader(s)
	})
	attributes, _ := p.renderSafe("attributes", s, func() fragment.Fragment {
		return strategy.RenderAttributes(s)
	})
	events, _ := p.renderSafe("events", s, func() fragment.Fragment {
		return strategy.RenderEvents(s)
	})

	for _, pt := range p.encoder.End(rec.SpanID, header, attributes, events) {
		p.enqueue(pt)
	}
}

func (p *Processor) enqueue(pt patch.Patch) {
	if !p.queue.Enqueue(pt.Payload) {
		p.logger.Warn("patch dropped, delivery channel full",
			zap.String("target", pt.Target),
		)
		if p.metrics != nil {
			p.metrics.RecordDrop()
		}
		return
	}
	if p.metrics != nil {
		p.metrics.RecordPatch(string(pt.Op))
	}
}

// renderSafe invokes one render stage, converting panics into an empty
// fragment. The second return value is false when the stage failed.
func (p *Processor) renderSafe(stage string, s sdktrace.ReadOnlySpan, fn func() fragment.Fragment) (frag fragment.Fragment, ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			p.logger.Error("renderer failed",
				zap.String("stage", stage),
				zap.String("span", s.Name()),
				zap.Any("panic", rec),
			)
			if p.metrics != nil {
				p.metrics.RecordRenderError(stage)
			}
			frag = fragment.Empty()
			ok = false
		}
	}()
	return fn(), true
}

// recovered is the last line of defense: a callback must never panic into
// the tracing runtime.
func (p *Processor) recovered(callback string, s sdktrace.ReadOnlySpan) {
	if rec := recover(); rec != nil {
		p.logger.Error("span callback panicked",
			zap.String("callback", callback),
			zap.String("span", s.Name()),
			zap.Any("panic", rec),
		)
	}
}
