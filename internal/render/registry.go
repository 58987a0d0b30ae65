package render

import (
	"sync"
	"sync/atomic"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

// Registry holds strategies in priority order plus one fallback that
// accepts every span. Registration may race with dispatch: the strategy
// list is published with an atomic swap, so a reader sees either the old
// or the new list, never a partial append.
type Registry struct {
	mu         sync.Mutex
	strategies atomic.Pointer[[]Strategy]
	fallback   Strategy
	logger     *zap.Logger
}

// NewRegistry creates a registry with the given fallback strategy.
func NewRegistry(fallback Strategy, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{fallback: fallback, logger: logger}
}

// Add appends a strategy after all previously registered ones.
func (r *Registry) Add(s Strategy) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var next []Strategy
	if cur := r.strategies.Load(); cur != nil {
		next = append(next, *cur...)
	}
	next = append(next, s)
	r.strategies.Store(&next)
}

// Select returns the first registered strategy accepting the span, or the
// fallback when none match. A predicate that panics counts as a non-match.
func (r *Registry) Select(span sdktrace.ReadOnlySpan) Strategy {
	if cur := r.strategies.Load(); cur != nil {
		for _, s := range *cur {
			if r.accepts(s, span) {
				return s
			}
		}
	}
	return r.fallback
}

// Fallback returns the designated fallback strategy.
func (r *Registry) Fallback() Strategy { return r.fallback }

// Len reports the number of registered strategies, excluding the fallback.
func (r *Registry) Len() int {
	if cur := r.strategies.Load(); cur != nil {
		return len(*cur)
	}
	return 0
}

func (r *Registry) accepts(s Strategy, span sdktrace.ReadOnlySpan) (ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Warn("renderer capability check panicked",
				zap.Any("panic", rec),
				zap.String("span", span.Name()),
			)
			ok = false
		}
	}()
	return s.CanRender(span)
}
