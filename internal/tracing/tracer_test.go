package tracing

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.False(t, cfg.Enabled)
	require.Equal(t, "file", cfg.Exporter)
	require.Equal(t, "localhost:4317", cfg.OTLPEndpoint)
	require.Equal(t, 1.0, cfg.SampleRate)
	require.Equal(t, "modal", cfg.ServiceName)
}

func TestNewProvider_Disabled(t *testing.T) {
	provider, err := NewProvider(Config{Enabled: false})
	require.NoError(t, err)
	require.False(t, provider.Enabled())

	_, span := provider.Tracer().Start(context.Background(), "test-span")
	require.False(t, span.SpanContext().IsValid(), "no-op spans carry no context")
	span.End()

	require.NoError(t, provider.Shutdown(context.Background()))
}

func TestNewProvider_FileExporter(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "traces.jsonl")

	provider, err := NewProvider(Config{
		Enabled:   true,
		Exporter:  "file",
		FilePath:  tracePath,
		SessionID: "session-1",
	})
	require.NoError(t, err)
	require.True(t, provider.Enabled())

	ctx, parent := provider.Tracer().Start(context.Background(), SpanHandleEvent)
	_, child := provider.Tracer().Start(ctx, SpanFileWrite)
	require.Equal(t, parent.SpanContext().TraceID(), child.SpanContext().TraceID())
	child.End()
	parent.End()

	require.NoError(t, provider.Shutdown(context.Background()))

	records := readRecords(t, tracePath)
	require.Len(t, records, 2)
	require.Equal(t, SpanFileWrite, records[0].Name)
	require.Equal(t, records[1].SpanID, records[0].ParentSpanID)
}

func TestNewProvider_SampleRate(t *testing.T) {
	for _, rate := range []float64{-0.5, 1.5} {
		tracePath := filepath.Join(t.TempDir(), "traces.jsonl")
		_, err := NewProvider(Config{Enabled: true, Exporter: "file", FilePath: tracePath, SampleRate: rate})
		require.Error(t, err, "rate %v", rate)
		require.NoFileExists(t, tracePath)
	}

	for _, rate := range []float64{0, 0.25, 1} {
		provider, err := NewProvider(Config{Enabled: true, Exporter: "none", SampleRate: rate})
		require.NoError(t, err, "rate %v", rate)
		require.NoError(t, provider.Shutdown(context.Background()))
	}
}

func TestNewProvider_StdoutExporterUsesWriter(t *testing.T) {
	var buf bytes.Buffer

	provider, err := NewProvider(Config{Enabled: true, Exporter: "stdout", Writer: &buf})
	require.NoError(t, err)

	_, span := provider.Tracer().Start(context.Background(), SpanPresent)
	span.End()
	require.NoError(t, provider.Shutdown(context.Background()))

	require.Contains(t, buf.String(), SpanPresent)
}

func TestNewProvider_NoExporter(t *testing.T) {
	provider, err := NewProvider(Config{Enabled: true, Exporter: "none"})
	require.NoError(t, err)

	_, span := provider.Tracer().Start(context.Background(), "test-span")
	require.True(t, span.SpanContext().IsValid())
	span.End()

	require.NoError(t, provider.Shutdown(context.Background()))
}

func TestNewProvider_Errors(t *testing.T) {
	_, err := NewProvider(Config{Enabled: true, Exporter: "file"})
	require.ErrorContains(t, err, "file_path required")

	_, err = NewProvider(Config{Enabled: true, Exporter: "zipkin"})
	require.ErrorContains(t, err, "unsupported exporter")
}

func TestRun(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tracer := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)).Tracer("test")

	err := Run(context.Background(), tracer, SpanFileWrite, func(ctx context.Context) error {
		return nil
	}, attribute.String(AttrFilePath, "/a.txt"))
	require.NoError(t, err)

	boom := errors.New("boom")
	err = Run(context.Background(), tracer, SpanFileRead, func(ctx context.Context) error {
		return boom
	})
	require.ErrorIs(t, err, boom)

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	require.Equal(t, SpanFileWrite, spans[0].Name())
	require.Equal(t, codes.Ok, spans[0].Status().Code)
	require.Contains(t, spans[0].Attributes(), attribute.String(AttrFilePath, "/a.txt"))
	require.Equal(t, codes.Error, spans[1].Status().Code)
	require.Equal(t, "boom", spans[1].Status().Description)
}

func TestRun_NilTracer(t *testing.T) {
	called := false
	err := Run(context.Background(), nil, "x", func(context.Context) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	require.True(t, called)
}
