// Package monitoring exposes Prometheus metrics for the span streaming
// pipeline plus a JSON snapshot for the stats endpoint.
package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus collectors.
type Metrics struct {
	// Span pipeline
	SpansStarted prometheus.Counter
	SpansEnded   prometheus.Counter
	RenderErrors *prometheus.CounterVec

	// Delivery channel
	PatchesEnqueued *prometheus.CounterVec
	PatchesDropped  prometheus.Counter

	// Stream consumers
	StreamsActive prometheus.Gauge
	Heartbeats    prometheus.Counter

	// HTTP
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	startTime time.Time

	mu       sync.RWMutex
	snapshot Snapshot
}

// Snapshot holds current counter values for the JSON stats endpoint.
type Snapshot struct {
	SpansStarted    int64   `json:"spans_started"`
	SpansEnded      int64   `json:"spans_ended"`
	PatchesEnqueued int64   `json:"patches_enqueued"`
	PatchesDropped  int64   `json:"patches_dropped"`
	RenderErrors    int64   `json:"render_errors"`
	ActiveStreams   int64   `json:"active_streams"`
	Heartbeats      int64   `json:"heartbeats"`
	UptimeSeconds   float64 `json:"uptime_seconds"`
}

// New creates a metrics collector registered on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		startTime: time.Now(),

		SpansStarted: factory.NewCounter(prometheus.CounterOpts{
			Name: "ftotel_spans_started_total",
			Help: "Total spans received by the start callback",
		}),
		SpansEnded: factory.NewCounter(prometheus.CounterOpts{
			Name: "ftotel_spans_ended_total",
			Help: "Total spans received by the end callback",
		}),
		RenderErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ftotel_render_errors_total",
			Help: "Renderer failures caught at the dispatch boundary",
		}, []string{"stage"}),

		PatchesEnqueued: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ftotel_patches_enqueued_total",
			Help: "Patches placed on the delivery channel",
		}, []string{"op"}),
		PatchesDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "ftotel_patches_dropped_total",
			Help: "Patches shed because the bounded queue was full",
		}),

		StreamsActive: factory.NewGauge(prometheus.GaugeOpts{
			Name: "ftotel_streams_active",
			Help: "Open stream connections",
		}),
		Heartbeats: factory.NewCounter(prometheus.CounterOpts{
			Name: "ftotel_heartbeats_total",
			Help: "Keep-alive events emitted during idle periods",
		}),

		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ftotel_http_requests_total",
			Help: "Total HTTP requests",
		}, []string{"method", "path", "status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ftotel_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}
}

// ObserveQueueDepth registers a gauge reading the delivery channel depth.
func (m *Metrics) ObserveQueueDepth(reg prometheus.Registerer, depth func() int) {
	promauto.With(reg).NewGaugeFunc(prometheus.GaugeOpts{
		Name: "ftotel_queue_depth",
		Help: "Undelivered patches on the delivery channel",
	}, func() float64 { return float64(depth()) })
}

// RecordSpanStart counts a start callback.
func (m *Metrics) RecordSpanStart() {
	m.SpansStarted.Inc()
	m.mu.Lock()
	m.snapshot.SpansStarted++
	m.mu.Unlock()
}

// RecordSpanEnd counts an end callback.
func (m *Metrics) RecordSpanEnd() {
	m.SpansEnded.Inc()
	m.mu.Lock()
	m.snapshot.SpansEnded++
	m.mu.Unlock()
}

// RecordRenderError counts a caught renderer failure.
func (m *Metrics) RecordRenderError(stage string) {
	m.RenderErrors.WithLabelValues(stage).Inc()
	m.mu.Lock()
	m.snapshot.RenderErrors++
	m.mu.Unlock()
}

// RecordPatch counts an enqueued patch by operation.
func (m *Metrics) RecordPatch(op string) {
	m.PatchesEnqueued.WithLabelValues(op).Inc()
	m.mu.Lock()
	m.snapshot.PatchesEnqueued++
	m.mu.Unlock()
}

// RecordDrop counts a shed patch.
func (m *Metrics) RecordDrop() {
	m.PatchesDropped.Inc()
	m.mu.Lock()
	m.snapshot.PatchesDropped++
	m.mu.Unlock()
}

// StreamOpened marks a new stream connection.
func (m *Metrics) StreamOpened() {
	m.StreamsActive.Inc()
	m.mu.Lock()
	m.snapshot.ActiveStreams++
	m.mu.Unlock()
}

// StreamClosed marks a finished stream connection.
func (m *Metrics) StreamClosed() {
	m.StreamsActive.Dec()
	m.mu.Lock()
	m.snapshot.ActiveStreams--
	m.mu.Unlock()
}

// RecordHeartbeat counts a keep-alive event.
func (m *Metrics) RecordHeartbeat() {
	m.Heartbeats.Inc()
	m.mu.Lock()
	m.snapshot.Heartbeats++
	m.mu.Unlock()
}

// RecordHTTPRequest records one served HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// GetSnapshot returns current values for the stats endpoint.
func (m *Metrics) GetSnapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snap := m.snapshot
	snap.UptimeSeconds = time.Since(m.startTime).Seconds()
	return snap
}
