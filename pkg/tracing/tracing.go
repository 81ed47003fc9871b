// Package tracing initialises the OpenTelemetry tracer used by the HTTP
// client, the controller and the command line.
//
// Real tracing requires OTEL_EXPORTER_OTLP_ENDPOINT to be set.
// Without it a no-op tracer is used.
package tracing

import (
	"context"
	"os"
	"strings"
	"sync"

	// Packages
	otel "go.opentelemetry.io/otel"
	otlptracehttp "go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	resource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	trace "go.opentelemetry.io/otel/trace"
	noop "go.opentelemetry.io/otel/trace/noop"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	// EnvEndpoint enables the OTLP exporter when set
	EnvEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
)

var (
	mu             sync.Mutex
	tracerProvider trace.TracerProvider = noop.NewTracerProvider()
	sdkProvider    *sdktrace.TracerProvider
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Init installs the tracer provider for the named service. When the
// exporter endpoint is not set, or the exporter cannot be created, the
// no-op provider is kept and Enabled returns false.
func Init(ctx context.Context, service, version string) error {
	mu.Lock()
	defer mu.Unlock()

	endpoint := os.Getenv(EnvEndpoint)
	if endpoint == "" || sdkProvider != nil {
		return nil
	}

	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(endpointHost(endpoint))}
	if !strings.HasPrefix(endpoint, "https://") {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(service), semconv.ServiceVersion(version)),
	)
	if err != nil {
		res = resource.Default()
	}

	sdkProvider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	tracerProvider = sdkProvider
	otel.SetTracerProvider(tracerProvider)
	return nil
}

// Enabled returns true when spans are exported.
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return sdkProvider != nil
}

// Tracer returns a named tracer. No-op when tracing is disabled.
func Tracer(name string) trace.Tracer {
	mu.Lock()
	defer mu.Unlock()
	return tracerProvider.Tracer(name)
}

// Shutdown flushes pending spans and shuts down the provider.
func Shutdown(ctx context.Context) error {
	mu.Lock()
	defer mu.Unlock()
	if sdkProvider == nil {
		return nil
	}
	err := sdkProvider.Shutdown(ctx)
	sdkProvider = nil
	tracerProvider = noop.NewTracerProvider()
	return err
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// endpointHost strips the scheme and any path from the endpoint URL.
func endpointHost(endpoint string) string {
	for _, prefix := range []string{"https://", "http://"} {
		if strings.HasPrefix(endpoint, prefix) {
			endpoint = endpoint[len(prefix):]
			break
		}
	}
	host, _, _ := strings.Cut(endpoint, "/")
	return host
}
