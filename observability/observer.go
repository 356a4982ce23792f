package observability

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/scopedi/di"
	"github.com/kbukum/scopedi/errors"
)

// ResolutionObserver turns construction events into spans and metrics.
// Pass it to an injector with di.WithObserver.
type ResolutionObserver struct {
	tracer  trace.Tracer
	metrics *Metrics
}

var _ di.Observer = (*ResolutionObserver)(nil)

// NewResolutionObserver creates an observer recording on tracer and meter.
// Nil arguments fall back to the global providers.
func NewResolutionObserver(tracer trace.Tracer, meter metric.Meter) (*ResolutionObserver, error) {
	if tracer == nil {
		tracer = Tracer()
	}
	if meter == nil {
		meter = Meter()
	}
	metrics, err := NewMetrics(meter)
	if err != nil {
		return nil, err
	}
	return &ResolutionObserver{tracer: tracer, metrics: metrics}, nil
}

// ObserveConstruct records a span covering the construction and updates
// the instruments.
func (o *ResolutionObserver) ObserveConstruct(ev di.ConstructEvent) {
	ctx := context.Background()
	kind := ev.Kind.String()

	_, span := o.tracer.Start(ctx, SpanConstruct,
		trace.WithTimestamp(ev.Start),
		trace.WithAttributes(
			attribute.String(AttrInjectorID, ev.InjectorID),
			attribute.String(AttrKey, ev.Key.KeyName()),
			kindAttr(kind),
			attribute.Int(AttrDepth, ev.Depth),
		),
	)
	if ev.Err != nil {
		code := string(errors.CodeOf(ev.Err))
		span.RecordError(ev.Err)
		span.SetStatus(codes.Error, ev.Err.Error())
		span.SetAttributes(codeAttr(code))
		o.metrics.RecordFailure(ctx, kind, code)
	}
	span.End(trace.WithTimestamp(ev.Start.Add(ev.Duration)))

	o.metrics.RecordConstruction(ctx, kind, ev.Duration)
}

func kindAttr(kind string) attribute.KeyValue { return attribute.String(AttrKind, kind) }

func codeAttr(code string) attribute.KeyValue { return attribute.String(AttrErrorCode, code) }
