package observability

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// TracingConfig contains tracing configuration
type TracingConfig struct {
	ServiceName    string
	ServiceVersion string
	// SamplingRate is the fraction of root spans exported; <= 0 exports none
	SamplingRate   float64
	// Writer receives one JSON document per finished span; nil discards them
	Writer         io.Writer
	// PrettyPrint indents the exported JSON
	PrettyPrint    bool
}

// Tracing owns a tracer provider that exports spans to a writer.
type Tracing struct {
	provider *sdktrace.TracerProvider
	tracer   trace.Tracer
}

// NewTracing builds a tracer provider from config.
func NewTracing(config TracingConfig) (*Tracing, error) {
	if config.ServiceName == "" {
		return nil, fmt.Errorf("service name is required")
	}

	w := config.Writer
	if w == nil {
		w = io.Discard
	}
	opts := []stdouttrace.Option{stdouttrace.WithWriter(w)}
	if config.PrettyPrint {
		opts = append(opts, stdouttrace.WithPrettyPrint())
	}
	exporter, err := stdouttrace.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create stdout exporter: %w", err)
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", config.ServiceName),
		attribute.String("service.version", config.ServiceVersion),
	)

	var sampler sdktrace.Sampler
	if config.SamplingRate <= 0 {
		sampler = sdktrace.NeverSample()
	} else if config.SamplingRate >= 1.0 {
		sampler = sdktrace.AlwaysSample()
	} else {
		sampler = sdktrace.TraceIDRatioBased(config.SamplingRate)
	}

	// spans are exported as they end so short-lived commands lose nothing
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler),
		sdktrace.WithSyncer(exporter),
	)

	return &Tracing{
		provider: tp,
		tracer:   tp.Tracer(config.ServiceName),
	}, nil
}

// Tracer returns the underlying tracer
func (t *Tracing) Tracer() trace.Tracer { return t.tracer }

// Shutdown flushes and stops the provider
func (t *Tracing) Shutdown(ctx context.Context) error {
	if err := t.provider.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown tracer: %w", err)
	}
	return nil
}

// Span wraps a trace span with its start time.
type Span struct {
	span      trace.Span
	startTime time.Time
}

// Start opens a span named name as a child of any span in ctx.
func (t *Tracing) Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, *Span) {
	ctx, span := t.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
	return ctx, &Span{span: span, startTime: time.Now()}
}

// SetAttributes adds attributes to the span
func (s *Span) SetAttributes(attrs ...attribute.KeyValue) {
	s.span.SetAttributes(attrs...)
}

// End records err, if any, as the span status, ends the span and returns
// its duration.
func (s *Span) End(err error) time.Duration {
	duration := time.Since(s.startTime)
	if err != nil {
		s.span.RecordError(err)
		s.span.SetStatus(codes.Error, err.Error())
	} else {
		s.span.SetStatus(codes.Ok, "")
	}
	s.span.SetAttributes(attribute.Float64("duration_ms", float64(duration.Microseconds())/1000))
	s.span.End()
	return duration
}
