package telemetry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/petal-labs/perle/answer"
	"github.com/petal-labs/perle/core"
)

// TracerName is the instrumentation scope of spans created by Tracer.
const TracerName = "github.com/petal-labs/perle"

// Tracer turns completion calls and answers into OpenTelemetry spans.
// Start and end events are paired by provider, model and start time.
type Tracer struct {
	tracer trace.Tracer

	mu    sync.Mutex
	spans map[string]trace.Span
}

// NewTracer creates a Tracer. A nil tp uses the global provider.
func NewTracer(tp trace.TracerProvider) *Tracer {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &Tracer{
		tracer: tp.Tracer(TracerName),
		spans:  make(map[string]trace.Span),
	}
}

func spanKey(provider string, model core.ModelID, start time.Time) string {
	return fmt.Sprintf("%s|%s|%d", provider, model, start.UnixNano())
}

// OnRequestStart opens a client span.
func (t *Tracer) OnRequestStart(e core.RequestStartEvent) {
	_, span := t.tracer.Start(context.Background(), "perle.completion",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithTimestamp(e.Start),
		trace.WithAttributes(
			attribute.String("perle.provider", e.Provider),
			attribute.String("perle.model", string(e.Model)),
		),
	)

	t.mu.Lock()
	t.spans[spanKey(e.Provider, e.Model, e.Start)] = span
	t.mu.Unlock()
}

// OnRequestEnd closes the span opened for the same call.
func (t *Tracer) OnRequestEnd(e core.RequestEndEvent) {
	key := spanKey(e.Provider, e.Model, e.Start)
	t.mu.Lock()
	span, ok := t.spans[key]
	delete(t.spans, key)
	t.mu.Unlock()
	if !ok {
		return
	}

	span.SetAttributes(
		attribute.Int("perle.usage.prompt_tokens", e.Usage.PromptTokens),
		attribute.Int("perle.usage.completion_tokens", e.Usage.CompletionTokens),
		attribute.String("perle.finish_reason", string(e.FinishReason)),
	)
	if e.Err != nil {
		span.RecordError(e.Err)
		span.SetStatus(codes.Error, core.ErrorCode(e.Err))
	}
	span.End(trace.WithTimestamp(e.End))
}

// OnAnswer records the whole Generate call as one span.
func (t *Tracer) OnAnswer(e answer.AnswerEvent) {
	_, span := t.tracer.Start(context.Background(), "perle.answer",
		trace.WithTimestamp(e.Start),
		trace.WithAttributes(
			attribute.String("perle.provider", e.Provider),
			attribute.String("perle.model", string(e.Model)),
			attribute.String("perle.mode", string(e.Mode)),
			attribute.String("perle.chat_mode", string(e.ChatMode)),
			attribute.Bool("perle.shortcut", e.Shortcut),
			attribute.Bool("perle.searched", e.Searched),
			attribute.Bool("perle.search_failed", e.SearchFailed),
			attribute.Bool("perle.truncated", e.Truncated),
			attribute.Int("perle.sources", e.Sources),
			attribute.Int("perle.images", e.Images),
		),
	)
	if e.Err != nil {
		span.RecordError(e.Err)
		span.SetStatus(codes.Error, core.ErrorCode(e.Err))
	}
	span.End(trace.WithTimestamp(e.End))
}

var (
	_ core.TelemetryHook = (*Tracer)(nil)
	_ answer.Observer    = (*Tracer)(nil)
)
