package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/scopedi/logger"
	"github.com/kbukum/scopedi/validation"
)

const instrumentationName = "github.com/kbukum/scopedi/observability"

// Export identifies the process and the OTLP/HTTP collector it reports to.
// TracerConfig and MeterConfig embed it.
type Export struct {
	ServiceName    string `yaml:"service_name" mapstructure:"service_name" validate:"required"`
	ServiceVersion string `yaml:"service_version" mapstructure:"service_version"`
	Environment    string `yaml:"environment" mapstructure:"environment"`
	// Endpoint is host:port, e.g. "localhost:4318".
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint" validate:"required"`
	Insecure bool   `yaml:"insecure" mapstructure:"insecure"`
}

func defaultExport(serviceName string) Export {
	return Export{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
	}
}

func (e Export) resource() (*resource.Resource, error) {
	return resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(e.ServiceName),
			semconv.ServiceVersion(e.ServiceVersion),
			attribute.String("environment", e.Environment),
		),
	)
}

// TracerConfig configures span export for construction events.
type TracerConfig struct {
	Export `yaml:",inline" mapstructure:",squash"`
	// SampleRate is the fraction of traces kept, 0.0 to 1.0.
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate" validate:"gte=0,lte=1"`
}

// DefaultTracerConfig samples everything and exports to a local collector.
func DefaultTracerConfig(serviceName string) TracerConfig {
	return TracerConfig{Export: defaultExport(serviceName), SampleRate: 1.0}
}

// InitTracer installs a global tracer provider exporting over OTLP/HTTP.
// The caller shuts the provider down on exit.
func InitTracer(ctx context.Context, cfg *TracerConfig) (*sdktrace.TracerProvider, error) {
	if err := validation.Validate(cfg); err != nil {
		return nil, fmt.Errorf("tracer config: %w", err)
	}

	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating trace exporter: %w", err)
	}

	res, err := cfg.resource()
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(samplerFor(cfg.SampleRate)),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logger.Get("observability").Info("tracer initialized", logger.Fields(
		"service", cfg.ServiceName,
		"endpoint", cfg.Endpoint,
		"sample_rate", cfg.SampleRate,
	))
	return tp, nil
}

func samplerFor(rate float64) sdktrace.Sampler {
	switch {
	case rate >= 1.0:
		return sdktrace.AlwaysSample()
	case rate <= 0:
		return sdktrace.NeverSample()
	default:
		return sdktrace.TraceIDRatioBased(rate)
	}
}

// Tracer returns the resolver tracer from the global provider.
func Tracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}

// Span and attribute names used for construction events.
const (
	SpanConstruct = "di.construct"

	AttrInjectorID = "di.injector.id"
	AttrKey        = "di.key"
	AttrKind       = "di.kind"
	AttrDepth      = "di.depth"
	AttrErrorCode  = "di.error.code"
)
