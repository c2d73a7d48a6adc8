package apm_test

import (
	"context"
	"io"
	"testing"

	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/fd1az/reg-voting-power/internal/apm"
	"github.com/fd1az/reg-voting-power/internal/logger"
)

func TestParseProvider(t *testing.T) {
	tests := map[string]apm.Provider{
		"console":   apm.ConsoleProvider,
		" Zipkin ":  apm.ZipkinProvider,
		"otlp-grpc": apm.OTLPGRPCProvider,
		"otlp-http": apm.OTLPHTTPProvider,
		"newrelic":  apm.EmptyProvider,
		"":          apm.EmptyProvider,
	}
	for in, want := range tests {
		if got := apm.ParseProvider(in); got != want {
			t.Errorf("ParseProvider(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestNewTraceProvider_Empty(t *testing.T) {
	log := logger.New(io.Discard, logger.LevelDebug, "test", nil)

	tp, err := apm.NewTraceProvider(log)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := tp.Stop(); err != nil {
		t.Errorf("unexpected stop error: %v", err)
	}
}

// retainingExporter keeps recorded spans across Shutdown.
type retainingExporter struct {
	*tracetest.InMemoryExporter
}

func (retainingExporter) Shutdown(context.Context) error { return nil }

func TestNewTraceProvider_WithExporter(t *testing.T) {
	log := logger.New(io.Discard, logger.LevelDebug, "test", nil)
	exp := retainingExporter{tracetest.NewInMemoryExporter()}

	tp, err := apm.NewTraceProvider(log, apm.WithExporter(exp), apm.WithServiceName("vp-test"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, span := apm.NewTracer("test").StartSpanFromContext(context.Background(), "evaluate")
	span.AddEvent("boost.computed")
	span.End()

	if err := tp.Stop(); err != nil {
		t.Fatalf("unexpected stop error: %v", err)
	}

	spans := exp.GetSpans()
	if len(spans) != 1 || spans[0].Name != "evaluate" {
		t.Fatalf("expected one evaluate span, got %d", len(spans))
	}
	if len(spans[0].Events) != 1 || spans[0].Events[0].Name != "boost.computed" {
		t.Errorf("expected boost.computed event, got %+v", spans[0].Events)
	}
}
