package server

import (
	"context"
	"fmt"

	"github.com/slidelens/slidelens/internal/static"
	"github.com/slidelens/slidelens/internal/utils/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const (
	TRACING_EXPORTER_NONE   = ""
	TRACING_EXPORTER_OTLP   = "otlp"
	TRACING_EXPORTER_STDOUT = "stdout"
)

// initTracing installs the global tracer provider, with no exporter
// configured spans stay no-ops.
func initTracing(ctx context.Context) (func(context.Context) error, error) {
	config := static.GetSlideLensGlobalConfigurations()

	var exporter sdktrace.SpanExporter
	var err error
	switch config.Tracing.Exporter {
	case TRACING_EXPORTER_NONE:
		return nil, nil
	case TRACING_EXPORTER_OTLP:
		options := []otlptracehttp.Option{}
		if config.Tracing.Endpoint != "" {
			options = append(options, otlptracehttp.WithEndpoint(config.Tracing.Endpoint))
		}
		if config.Tracing.Insecure {
			options = append(options, otlptracehttp.WithInsecure())
		}
		exporter, err = otlptracehttp.New(ctx, options...)
	case TRACING_EXPORTER_STDOUT:
		exporter, err = stdouttrace.New(stdouttrace.WithPrettyPrint())
	default:
		return nil, fmt.Errorf("unknown tracing exporter %q", config.Tracing.Exporter)
	}
	if err != nil {
		return nil, err
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", "slidelens"),
		)),
	)
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{},
	))
	log.Info("tracing enabled, exporter %s", config.Tracing.Exporter)

	return provider.Shutdown, nil
}
