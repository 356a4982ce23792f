package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/scopedi/logger"
	"github.com/kbukum/scopedi/validation"
)

// MeterConfig configures metric export for construction events.
type MeterConfig struct {
	Export   `yaml:",inline" mapstructure:",squash"`
	Interval time.Duration `yaml:"interval" mapstructure:"interval" validate:"gte=0"`
}

// DefaultMeterConfig exports every 15s to a local collector.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{Export: defaultExport(serviceName), Interval: 15 * time.Second}
}

// InitMeter installs a global meter provider exporting over OTLP/HTTP.
// The caller shuts the provider down on exit.
func InitMeter(ctx context.Context, cfg *MeterConfig) (*sdkmetric.MeterProvider, error) {
	if err := validation.Validate(cfg); err != nil {
		return nil, fmt.Errorf("meter config: %w", err)
	}

	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := cfg.resource()
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if cfg.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(cfg.Interval))
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	logger.Get("observability").Info("meter initialized", logger.Fields(
		"service", cfg.ServiceName,
		"endpoint", cfg.Endpoint,
		"interval", cfg.Interval.String(),
	))
	return mp, nil
}

// Meter returns the resolver meter from the global provider.
func Meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// Instrument names.
const (
	MetricConstructions        = "di.constructions"
	MetricConstructionDuration = "di.construction.duration"
	MetricConstructionFailures = "di.construction.failures"
)

// Metrics holds the construction instruments.
type Metrics struct {
	constructions metric.Int64Counter
	duration      metric.Float64Histogram
	failures      metric.Int64Counter
}

// NewMetrics creates the construction instruments on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	constructions, err := meter.Int64Counter(MetricConstructions,
		metric.WithDescription("Number of class constructions and factory calls"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricConstructions, err)
	}

	duration, err := meter.Float64Histogram(MetricConstructionDuration,
		metric.WithDescription("Duration of constructions in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricConstructionDuration, err)
	}

	failures, err := meter.Int64Counter(MetricConstructionFailures,
		metric.WithDescription("Failed constructions by error code"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricConstructionFailures, err)
	}

	return &Metrics{constructions: constructions, duration: duration, failures: failures}, nil
}

// RecordConstruction records one construction of kind that took d.
func (m *Metrics) RecordConstruction(ctx context.Context, kind string, d time.Duration) {
	attrs := metric.WithAttributes(kindAttr(kind))
	m.constructions.Add(ctx, 1, attrs)
	m.duration.Record(ctx, d.Seconds(), attrs)
}

// RecordFailure records a failed construction of kind with the error code.
func (m *Metrics) RecordFailure(ctx context.Context, kind, code string) {
	m.failures.Add(ctx, 1, metric.WithAttributes(kindAttr(kind), codeAttr(code)))
}
