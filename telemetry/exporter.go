package telemetry

import (
	"context"

	"github.com/rs/zerolog"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// LogExporter writes finished spans as log lines. It lets a deployment
// without a collector still see span timings.
type LogExporter struct {
	logger zerolog.Logger
}

// NewLogExporter returns an exporter writing to logger at debug level.
func NewLogExporter(logger zerolog.Logger) *LogExporter {
	return &LogExporter{logger: logger}
}

// ExportSpans logs each span with its attributes.
func (e *LogExporter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	for _, s := range spans {
		ev := e.logger.Debug().
			Str("span", s.Name()).
			Str("trace_id", s.SpanContext().TraceID().String()).
			Dur("duration", s.EndTime().Sub(s.StartTime()))
		for _, kv := range s.Attributes() {
			ev = ev.Str(string(kv.Key), kv.Value.Emit())
		}
		if desc := s.Status().Description; desc != "" {
			ev = ev.Str("status", desc)
		}
		ev.Msg("span")
	}
	return ctx.Err()
}

// Shutdown is a no-op.
func (e *LogExporter) Shutdown(context.Context) error {
	return nil
}

var _ sdktrace.SpanExporter = (*LogExporter)(nil)
