// Package hooks adapts cria.RenderHooks into OpenTelemetry spans, so a fit
// loop's progress shows up in the same tracing pipeline as the rest of a
// service. Grounded on the teacher's use of structured zap fields
// (internal/logging) for per-event context: here each fit-loop event
// becomes a span event carrying the equivalent attributes instead of a log
// line.
package hooks

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/adimarco/cria"
)

// TracingHooks wraps a cria.RenderHooks so every fit-loop event also
// appears in an OpenTelemetry span. Use it standalone, or pass Hooks to
// cria.Render and call End once the render call returns.
type TracingHooks struct {
	// Hooks is the cria.RenderHooks to pass to cria.Render. It wraps any
	// caller-supplied hooks so both fire.
	Hooks cria.RenderHooks

	span trace.Span
}

// NewTracingHooks starts a span named "cria.render" under tracer and
// returns hooks that annotate it with fit-loop progress. inner, if
// non-zero, is invoked alongside each event so callers can still observe
// fit-loop progress directly.
func NewTracingHooks(ctx context.Context, tracer trace.Tracer, inner cria.RenderHooks) (context.Context, *TracingHooks) {
	spanCtx, span := tracer.Start(ctx, "cria.render")
	th := &TracingHooks{span: span}

	th.Hooks = cria.RenderHooks{
		OnFitStart: func(totalTokens, budget int) error {
			span.SetAttributes(
				attribute.Int("cria.total_tokens", totalTokens),
				attribute.Int("cria.budget", budget),
			)
			span.AddEvent("fit.start", trace.WithAttributes(
				attribute.Int("cria.total_tokens", totalTokens),
				attribute.Int("cria.budget", budget),
			))
			if inner.OnFitStart != nil {
				return inner.OnFitStart(totalTokens, budget)
			}
			return nil
		},
		OnFitIteration: func(priority, totalTokens, iteration int) error {
			span.AddEvent("fit.iteration", trace.WithAttributes(
				attribute.Int("cria.priority", priority),
				attribute.Int("cria.total_tokens", totalTokens),
				attribute.Int("cria.iteration", iteration),
			))
			if inner.OnFitIteration != nil {
				return inner.OnFitIteration(priority, totalTokens, iteration)
			}
			return nil
		},
		OnStrategyApplied: func(event cria.StrategyAppliedEvent) error {
			attrs := []attribute.KeyValue{
				attribute.String("cria.scope.id", event.ScopeID),
				attribute.Int("cria.priority", event.Priority),
				attribute.Int("cria.iteration", event.Iteration),
				attribute.Bool("cria.scope.removed", event.Result == nil),
			}
			attrs = append(attrs, messageAttrs(event.Result)...)
			span.AddEvent("fit.strategy_applied", trace.WithAttributes(attrs...))
			if inner.OnStrategyApplied != nil {
				return inner.OnStrategyApplied(event)
			}
			return nil
		},
		OnFitComplete: func(totalTokens, iteration int) error {
			span.SetAttributes(attribute.Int("cria.total_tokens", totalTokens))
			span.AddEvent("fit.complete", trace.WithAttributes(
				attribute.Int("cria.total_tokens", totalTokens),
				attribute.Int("cria.iteration", iteration),
			))
			span.SetStatus(codes.Ok, "")
			if inner.OnFitComplete != nil {
				return inner.OnFitComplete(totalTokens, iteration)
			}
			return nil
		},
		OnFitError: func(err *cria.FitError) error {
			span.RecordError(err)
			span.SetStatus(codes.Error, fmt.Sprintf("fit loop did not converge: %v", err))
			if inner.OnFitError != nil {
				return inner.OnFitError(err)
			}
			return nil
		},
	}

	return spanCtx, th
}

// End finishes the underlying span. Call it once the cria.Render call this
// TracingHooks was passed to has returned.
func (th *TracingHooks) End() {
	th.span.End()
}

// messageAttrs returns cria.message.* attributes when a strategy's
// replacement collapses to a single message, directly or behind one
// wrapper scope (the shape Summary and VectorSearch produce).
func messageAttrs(n cria.Node) []attribute.KeyValue {
	switch v := n.(type) {
	case *cria.Message:
		return []attribute.KeyValue{
			attribute.String("cria.message.id", v.ID),
			attribute.String("cria.message.role", string(v.Role)),
		}
	case *cria.Scope:
		if len(v.Children) == 1 {
			return messageAttrs(v.Children[0])
		}
	}
	return nil
}
