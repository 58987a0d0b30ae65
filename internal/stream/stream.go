// Package stream assembles the span streaming pipeline and serves it over
// Server-Sent Events. A Streamer owns the tracker, renderer registry,
// patch encoder and delivery channel; its SpanProcessor is registered on a
// tracer provider and its Handler is mounted on the HTTP router.
package stream

import (
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Novia-RDI-Seafaring/ft-otel/internal/fragment"
	"github.com/Novia-RDI-Seafaring/ft-otel/internal/monitoring"
	"github.com/Novia-RDI-Seafaring/ft-otel/internal/patch"
	"github.com/Novia-RDI-Seafaring/ft-otel/internal/processor"
	"github.com/Novia-RDI-Seafaring/ft-otel/internal/queue"
	"github.com/Novia-RDI-Seafaring/ft-otel/internal/render"
	"github.com/Novia-RDI-Seafaring/ft-otel/internal/tracker"
)

// Discipline selects the delivery channel backing.
type Discipline string

const (
	// Unbounded never drops patches; memory is the only limit.
	Unbounded Discipline = "unbounded"
	// Bounded drops the newest patch when the channel is full.
	Bounded Discipline = "bounded"
)

// Options configures a Streamer. The zero value is usable.
type Options struct {
	// ContainerID is the page element root spans append into.
	ContainerID string
	// Endpoint is the SSE path the container connects to.
	Endpoint string
	// AutoExpand lists span name substrings that render expanded.
	AutoExpand []string
	// Discipline selects the delivery channel backing.
	Discipline Discipline
	// QueueCapacity applies to the bounded discipline.
	QueueCapacity int
	// Heartbeat is the maximum idle period between events.
	Heartbeat time.Duration
	// Fallback overrides the default renderer.
	Fallback render.Strategy
	// Strategies are registered in priority order at construction.
	Strategies []render.Strategy

	Logger  *zap.Logger
	Metrics *monitoring.Metrics
}

// Streamer is the assembled pipeline.
type Streamer struct {
	opts      Options
	registry  *render.Registry
	queue     queue.Queue
	processor *processor.Processor
	logger    *zap.Logger
}

// New assembles a streamer from options, filling in defaults.
func New(opts Options) *Streamer {
	if opts.ContainerID == "" {
		opts.ContainerID = "telemetry-container"
	}
	if opts.Endpoint == "" {
		opts.Endpoint = "/telemetry"
	}
	if opts.Heartbeat <= 0 {
		opts.Heartbeat = time.Second
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Fallback == nil {
		opts.Fallback = render.NewFallback(opts.AutoExpand)
	}

	var q queue.Queue
	switch opts.Discipline {
	case Bounded:
		q = queue.NewBounded(opts.QueueCapacity)
	default:
		q = queue.NewUnbounded()
	}

	registry := render.NewRegistry(opts.Fallback, opts.Logger)
	for _, s := range opts.Strategies {
		registry.Add(s)
	}

	proc := processor.New(
		tracker.New(),
		registry,
		patch.NewEncoder(opts.ContainerID),
		q,
		opts.Logger,
		opts.Metrics,
	)

	return &Streamer{
		opts:      opts,
		registry:  registry,
		queue:     q,
		processor: proc,
		logger:    opts.Logger,
	}
}

// SpanProcessor returns the processor to register on a tracer provider.
func (s *Streamer) SpanProcessor() *processor.Processor { return s.processor }

// AddStrategy registers a renderer. New strategies take priority over
// previously registered ones and apply to spans started afterwards.
func (s *Streamer) AddStrategy(strategy render.Strategy) {
	s.registry.Add(strategy)
}

// QueueLen reports the number of undelivered patches.
func (s *Streamer) QueueLen() int { return s.queue.Len() }

// Endpoint returns the SSE path the stream is served on.
func (s *Streamer) Endpoint() string { return s.opts.Endpoint }

// Handler serves the SSE consumer loop. Each iteration waits up to the
// heartbeat interval for a patch; on timeout a keep-alive event is sent
// instead. The loop exits when the client disconnects.
func (s *Streamer) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/event-stream")
		c.Header("Cache-Control", "no-cache")
		c.Header("Connection", "keep-alive")
		c.Header("X-Accel-Buffering", "no")

		connID := uuid.New().String()
		log := s.logger.With(
			zap.String("conn_id", connID),
			zap.String("client", c.ClientIP()),
		)
		log.Info("stream opened")
		if s.opts.Metrics != nil {
			s.opts.Metrics.StreamOpened()
		}
		defer func() {
			if s.opts.Metrics != nil {
				s.opts.Metrics.StreamClosed()
			}
			log.Info("stream closed")
		}()

		ctx := c.Request.Context()
		c.Stream(func(w io.Writer) (keepOpen bool) {
			// A failing iteration must not terminate the stream; only
			// cancellation does.
			defer func() {
				if rec := recover(); rec != nil {
					log.Error("stream iteration panicked", zap.Any("panic", rec))
					keepOpen = true
				}
			}()

			select {
			case <-ctx.Done():
				return false
			default:
			}

			msg, ok := s.queue.DequeueTimeout(s.opts.Heartbeat)
			if ok {
				c.SSEvent("telemetry", msg)
				return true
			}

			select {
			case <-ctx.Done():
				return false
			default:
			}
			if s.opts.Metrics != nil {
				s.opts.Metrics.RecordHeartbeat()
			}
			c.SSEvent("heartbeat", "")
			return true
		})
	}
}

// Container builds the page element the stream feeds. New patches append
// as its last children.
func (s *Streamer) Container(title string) fragment.Fragment {
	body := fragment.El("div",
		fragment.ID(s.opts.ContainerID),
		fragment.Class("space-y-1"),
		fragment.Attr{Key: "sse-swap", Val: "telemetry"},
		fragment.Attr{Key: "hx-swap", Val: "beforeend"},
	)

	wrapper := fragment.El("div",
		fragment.Attr{Key: "hx-ext", Val: "sse"},
		fragment.Attr{Key: "sse-connect", Val: s.opts.Endpoint},
	)
	if title != "" {
		return wrapper.With(
			fragment.El("h2", fragment.Class("text-lg font-semibold mb-2")).With(fragment.Text(title)),
			body,
		)
	}
	return wrapper.With(body)
}
