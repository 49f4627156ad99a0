package telemetry

import (
	"context"
	"log"
	"log/slog"
	"os"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Setup wires OTLP trace and log export plus the slog bridge. Without an
// OTLP endpoint configured it leaves plain text slog in place and returns a
// no-op shutdown.
func Setup(serviceName string) func(context.Context) error {
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))
		return func(context.Context) error { return nil }
	}

	ctx := context.Background()

	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(serviceName)))
	if err != nil {
		log.Printf("otel resource error: %v", err)
	}

	traceExporter, err := otlptracehttp.New(ctx)
	if err != nil {
		log.Printf("otel trace exporter error: %v", err)
		return func(context.Context) error { return nil }
	}
	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tracerProvider)

	logExporter, err := otlploghttp.New(ctx)
	if err != nil {
		log.Printf("otel log exporter error: %v", err)
		return tracerProvider.Shutdown
	}
	loggerProvider := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewBatchProcessor(logExporter)),
		sdklog.WithResource(res),
	)

	slog.SetDefault(otelslog.NewLogger(serviceName, otelslog.WithLoggerProvider(loggerProvider)))

	return func(ctx context.Context) error {
		logErr := loggerProvider.Shutdown(ctx)
		if err := tracerProvider.Shutdown(ctx); err != nil {
			return err
		}
		return logErr
	}
}
