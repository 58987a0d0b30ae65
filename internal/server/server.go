package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"

	"github.com/Novia-RDI-Seafaring/ft-otel/internal/config"
	"github.com/Novia-RDI-Seafaring/ft-otel/internal/demo"
	"github.com/Novia-RDI-Seafaring/ft-otel/internal/fragment"
	"github.com/Novia-RDI-Seafaring/ft-otel/internal/middleware"
	"github.com/Novia-RDI-Seafaring/ft-otel/internal/monitoring"
	"github.com/Novia-RDI-Seafaring/ft-otel/internal/render"
	"github.com/Novia-RDI-Seafaring/ft-otel/internal/stream"
)

// Server wraps the HTTP server and the streaming pipeline.
type Server struct {
	router   *gin.Engine
	cfg      *config.Config
	logger   *zap.Logger
	streamer *stream.Streamer
	provider *sdktrace.TracerProvider
	metrics  *monitoring.Metrics
	runner   *demo.Runner
}

// New creates a server instance: metrics registry, streaming pipeline,
// tracer provider and routes.
func New(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	reg := prometheus.NewRegistry()
	metrics := monitoring.New(reg)

	streamer := stream.New(stream.Options{
		ContainerID:   cfg.Telemetry.ContainerID,
		Endpoint:      cfg.Telemetry.Endpoint,
		AutoExpand:    cfg.Telemetry.AutoExpand,
		Discipline:    stream.Discipline(cfg.Telemetry.QueueDiscipline),
		QueueCapacity: cfg.Telemetry.QueueCapacity,
		Heartbeat:     cfg.Telemetry.HeartbeatInterval,
		Logger:        logger.Named("stream"),
		Metrics:       metrics,
		Strategies: []render.Strategy{
			render.NewGenAI(cfg.Telemetry.AutoExpand),
			render.NewPaper(),
		},
	})
	metrics.ObserveQueueDepth(reg, streamer.QueueLen)

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(streamer.SpanProcessor()),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", "ft-otel"),
		)),
	)
	otel.SetTracerProvider(provider)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())
	router.Use(monitoring.Middleware(metrics))

	s := &Server{
		router:   router,
		cfg:      cfg,
		logger:   logger,
		streamer: streamer,
		provider: provider,
		metrics:  metrics,
		runner:   demo.NewRunner(provider.Tracer("ft-otel/demo")),
	}

	router.GET("/", s.index)
	router.GET(cfg.Telemetry.Endpoint, streamer.Handler())
	router.GET("/health", s.health)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	router.GET("/stats", s.stats)

	demoGroup := router.Group("/demo", middleware.RateLimit(cfg.RateLimit))
	demoGroup.POST("/chat", s.demoChat)
	demoGroup.POST("/math", s.demoMath)

	return s, nil
}

// Streamer exposes the pipeline, mainly for tests.
func (s *Server) Streamer() *stream.Streamer { return s.streamer }

// Router exposes the gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine { return s.router }

// Run starts the HTTP server.
func (s *Server) Run() error {
	addr := s.cfg.Server.Host + ":" + s.cfg.Server.Port
	s.logger.Info("server starting",
		zap.String("addr", addr),
		zap.String("stream_endpoint", s.cfg.Telemetry.Endpoint),
	)
	return s.router.Run(addr)
}

// Close shuts down the tracer provider.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.provider.Shutdown(ctx)
}

func (s *Server) index(c *gin.Context) {
	page := fragment.El("html", fragment.Attr{Key: "lang", Val: "en"}, fragment.Attr{Key: "data-theme", Val: "light"}).With(
		fragment.El("head").With(
			fragment.El("meta", fragment.Attr{Key: "charset", Val: "utf-8"}),
			fragment.El("title").With(fragment.Text("Live Telemetry")),
			fragment.El("script", fragment.Attr{Key: "src", Val: "https://unpkg.com/htmx.org@1.9.12"}),
			fragment.El("script", fragment.Attr{Key: "src", Val: "https://unpkg.com/htmx.org@1.9.12/dist/ext/sse.js"}),
			fragment.El("link",
				fragment.Attr{Key: "rel", Val: "stylesheet"},
				fragment.Attr{Key: "href", Val: "https://cdn.jsdelivr.net/npm/daisyui@4.12.10/dist/full.min.css"},
			),
			fragment.El("script", fragment.Attr{Key: "src", Val: "https://cdn.tailwindcss.com"}),
		),
		fragment.El("body", fragment.Class("p-6 bg-base-200 min-h-screen")).With(
			s.streamer.Container("Live Telemetry"),
		),
	)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte("<!DOCTYPE html>\n"+page.String()))
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"queue_depth":  s.streamer.QueueLen(),
		"stream_path":  s.cfg.Telemetry.Endpoint,
		"container_id": s.cfg.Telemetry.ContainerID,
	})
}

func (s *Server) stats(c *gin.Context) {
	snap := s.metrics.GetSnapshot()
	c.JSON(http.StatusOK, gin.H{
		"pipeline":    snap,
		"queue_depth": s.streamer.QueueLen(),
	})
}

func (s *Server) demoChat(c *gin.Context) {
	var req struct {
		Message string `json:"message"`
	}
	_ = c.ShouldBindJSON(&req)
	if req.Message == "" {
		req.Message = "Roll a die and tell me the time"
	}

	go s.runner.Chat(context.WithoutCancel(c.Request.Context()), req.Message)
	c.JSON(http.StatusAccepted, gin.H{"status": "started"})
}

func (s *Server) demoMath(c *gin.Context) {
	var req struct {
		Problem string `json:"problem"`
	}
	_ = c.ShouldBindJSON(&req)

	go s.runner.Math(context.WithoutCancel(c.Request.Context()), req.Problem)
	c.JSON(http.StatusAccepted, gin.H{"status": "started"})
}
