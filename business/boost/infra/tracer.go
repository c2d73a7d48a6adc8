// Package infra contains infrastructure adapters for the boost context.
package infra

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/fd1az/reg-voting-power/business/boost/app"
	"github.com/fd1az/reg-voting-power/internal/apm"
	"github.com/fd1az/reg-voting-power/internal/logger"
)

// LogTracer writes boost trace events as debug log lines.
type LogTracer struct {
	log logger.LoggerInterface
}

var _ app.Tracer = (*LogTracer)(nil)

// NewLogTracer creates a LogTracer.
func NewLogTracer(log logger.LoggerInterface) *LogTracer {
	return &LogTracer{log: log}
}

// Trace implements app.Tracer.
func (t *LogTracer) Trace(ctx context.Context, event string, keyvals ...any) {
	t.log.Debug(ctx, event, keyvals...)
}

// SpanTracer records boost trace events on the span carried by ctx.
type SpanTracer struct {
	tracer apm.Tracer
	next   app.Tracer
}

var _ app.Tracer = (*SpanTracer)(nil)

// NewSpanTracer creates a SpanTracer. Events are also forwarded to next when it is not nil.
func NewSpanTracer(tracer apm.Tracer, next app.Tracer) *SpanTracer {
	return &SpanTracer{tracer: tracer, next: next}
}

// Trace implements app.Tracer.
func (t *SpanTracer) Trace(ctx context.Context, event string, keyvals ...any) {
	if span := t.tracer.SpanFromContext(ctx); span.IsRecording() {
		span.AddEvent(event, trace.WithAttributes(toAttributes(keyvals)...))
	}
	if t.next != nil {
		t.next.Trace(ctx, event, keyvals...)
	}
}

func toAttributes(keyvals []any) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(keyvals)/2)
	for i := 0; i+1 < len(keyvals); i += 2 {
		key := fmt.Sprint(keyvals[i])
		switch v := keyvals[i+1].(type) {
		case string:
			attrs = append(attrs, attribute.String(key, v))
		case bool:
			attrs = append(attrs, attribute.Bool(key, v))
		case int:
			attrs = append(attrs, attribute.Int(key, v))
		case int64:
			attrs = append(attrs, attribute.Int64(key, v))
		case error:
			attrs = append(attrs, attribute.String(key, v.Error()))
		default:
			attrs = append(attrs, attribute.String(key, fmt.Sprint(v)))
		}
	}
	return attrs
}
