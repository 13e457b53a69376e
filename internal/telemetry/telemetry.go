// Package telemetry wires an optional OpenTelemetry tracer provider for the
// generator. Tracing is off unless DASHGEN_OTEL_ENABLED is set; spans go to
// the OTLP/HTTP endpoint from OTEL_EXPORTER_OTLP_ENDPOINT, or to stdout when
// none is configured.
package telemetry

import (
	"context"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.27.0"
	"go.uber.org/zap"
)

const serviceName = "dashgen"

// Init installs the global tracer provider and returns its shutdown hook.
// When tracing is disabled the returned hook is a no-op.
func Init(ctx context.Context, log *zap.Logger, version string) func(context.Context) error {
	if !enabled() {
		return func(context.Context) error { return nil }
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
			semconv.ServiceVersionKey.String(version),
		),
	)
	if err != nil {
		log.Warn("Failed to build OTel resource, continuing without it", zap.Error(err))
	}

	exporter, err := buildExporter(ctx)
	if err != nil {
		log.Warn("Failed to build trace exporter, tracing disabled", zap.Error(err))
		return func(context.Context) error { return nil }
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(5*time.Second)),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	log.Info("OTel tracing initialized", zap.String("endpoint", endpoint()))
	return tp.Shutdown
}

func enabled() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("DASHGEN_OTEL_ENABLED"))) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func endpoint() string {
	return strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"))
}

func buildExporter(ctx context.Context) (sdktrace.SpanExporter, error) {
	if ep := endpoint(); ep != "" {
		return otlptracehttp.New(ctx, otlptracehttp.WithEndpoint(ep))
	}
	return stdouttrace.New(stdouttrace.WithPrettyPrint())
}
