// Package telemetry provides optional OpenTelemetry export for the
// difficulty controller's one-way observability sink.
package telemetry

import (
	"context"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/wrenfall/rpg-core/internal/entities"
)

const (
	serviceName    = "rpg-core"
	serviceVersion = "0.1.0"
)

// Setup initializes OpenTelemetry with the OTLP HTTP exporter. The
// exporter reads the standard OTEL_EXPORTER_OTLP_* environment
// variables. Returns a shutdown function for application exit.
func Setup(ctx context.Context) (shutdown func(context.Context) error, err error) {
	exporter, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", serviceVersion),
			attribute.String("host.name", hostname()),
		),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

// Tracer returns a named tracer for the given component
func Tracer(name string) trace.Tracer {
	return otel.GetTracerProvider().Tracer("rpg-core/" + name)
}

// SpanObserver records difficulty adjustments as spans. It implements
// the difficulty controller's Observer interface.
type SpanObserver struct {
	tracer trace.Tracer
}

// NewSpanObserver creates an observer backed by the global tracer
// provider
func NewSpanObserver() *SpanObserver {
	return &SpanObserver{tracer: Tracer("difficulty")}
}

// ObserveAdjustment emits one span per adjustment with the score,
// multiplier, and flow classification as attributes.
func (o *SpanObserver) ObserveAdjustment(score, multiplier float64, flow entities.FlowState) {
	_, span := o.tracer.Start(context.Background(), "difficulty.adjustment")
	span.SetAttributes(
		attribute.Float64("difficulty.score", score),
		attribute.Float64("difficulty.multiplier", multiplier),
		attribute.String("difficulty.flow", string(flow)),
	)
	span.End()
}

func hostname() string {
	name, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return name
}
