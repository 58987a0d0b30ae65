// Package demo produces instrumented workloads that exercise the span
// streaming pipeline: a simulated chat agent turn with tool calls and a
// multi-step math derivation.
package demo

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Runner drives demo workloads against a tracer.
type Runner struct {
	tracer trace.Tracer
}

// NewRunner creates a runner.
func NewRunner(tracer trace.Tracer) *Runner {
	return &Runner{tracer: tracer}
}

// Chat simulates one agent turn: a user message, two tool calls and a
// final assistant message, annotated with gen_ai semantic conventions.
func (r *Runner) Chat(ctx context.Context, message string) {
	requestID := uuid.New().String()

	ctx, turn := r.tracer.Start(ctx, "chat gpt-4o-mini",
		trace.WithAttributes(
			attribute.String("gen_ai.operation.name", "chat"),
			attribute.String("gen_ai.request.model", "gpt-4o-mini"),
			attribute.String("gen_ai.system", "openai"),
			attribute.String("request.id", requestID),
		),
	)
	defer turn.End()

	r.span(ctx, "Chat Message: user", func(ctx context.Context, s trace.Span) {
		s.SetAttributes(attribute.String("message.content", message))
		pause(30)
	})

	r.span(ctx, "Tool: Roll a die", func(ctx context.Context, s trace.Span) {
		sides := 6
		result := rand.Intn(sides) + 1
		s.SetAttributes(
			attribute.Int("sides", sides),
			attribute.Int("result", result),
		)
		s.AddEvent("die rolled", trace.WithAttributes(
			attribute.Int("result", result),
		))
		pause(50)
	})

	r.span(ctx, "Tool: Check the time", func(ctx context.Context, s trace.Span) {
		now := time.Now().UTC().Format(time.RFC3339)
		s.SetAttributes(attribute.String("current_time", now))
		pause(20)
	})

	r.span(ctx, "Chat Message: assistant", func(ctx context.Context, s trace.Span) {
		s.SetAttributes(attribute.String("message.role", "assistant"))
		pause(40)
	})

	turn.SetAttributes(
		attribute.Int("gen_ai.usage.input_tokens", 120+rand.Intn(80)),
		attribute.Int("gen_ai.usage.output_tokens", 60+rand.Intn(40)),
		attribute.Float64("gen_ai.usage.cost", 0.000210),
	)
	turn.SetStatus(codes.Ok, "")
}

// Math simulates a multi-step derivation session. Span names and
// attributes follow the math.* convention the transparent renderer keys
// on, so the stream shows prose-like output instead of a span tree.
func (r *Runner) Math(ctx context.Context, problem string) {
	if problem == "" {
		problem = "Solve 3x + 5 = 20"
	}

	ctx, session := r.tracer.Start(ctx, "Math Problem Solving Session",
		trace.WithAttributes(attribute.String("math.problem", problem)),
	)
	defer session.End()

	r.span(ctx, "Step: analyze", func(ctx context.Context, s trace.Span) {
		s.SetAttributes(
			attribute.String("math.step_type", "problem_analysis"),
			attribute.String("math.explanation", "Linear equation in one variable; isolate x."),
		)
		pause(60)
	})

	r.span(ctx, "Step: subtract", func(ctx context.Context, s trace.Span) {
		s.SetAttributes(
			attribute.String("math.step_type", "reasoning"),
			attribute.String("math.reasoning", "Subtract 5 from both sides to isolate the variable term."),
		)
		r.operation(ctx, "subtraction", "3x + 5 - 5 = 20 - 5", "3x = 15")
		pause(40)
	})

	r.span(ctx, "Step: divide", func(ctx context.Context, s trace.Span) {
		s.SetAttributes(
			attribute.String("math.step_type", "reasoning"),
			attribute.String("math.reasoning", "Divide both sides by 3."),
		)
		r.operation(ctx, "division", "3x / 3 = 15 / 3", "x = 5")
		pause(40)
	})

	r.span(ctx, "Step: conclude", func(ctx context.Context, s trace.Span) {
		s.SetAttributes(
			attribute.String("math.step_type", "conclusion"),
			attribute.String("math.result", "x = 5"),
		)
		pause(30)
	})

	session.SetStatus(codes.Ok, "")
}

func (r *Runner) operation(ctx context.Context, op, calculation, result string) {
	r.span(ctx, fmt.Sprintf("Math: %s", op), func(ctx context.Context, s trace.Span) {
		s.SetAttributes(
			attribute.String("math.operation", op),
			attribute.String("math.calculation", calculation),
			attribute.String("math.result", result),
		)
		pause(20)
	})
}

func (r *Runner) span(ctx context.Context, name string, fn func(context.Context, trace.Span)) {
	ctx, s := r.tracer.Start(ctx, name)
	defer s.End()
	fn(ctx, s)
}

// pause sleeps a few milliseconds so the stream is visibly live.
func pause(ms int) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}
