// Package observability provides OpenTelemetry tracing and metrics for
// dependency resolution.
//
// Tracing and metrics providers:
//
//	cfg := observability.DefaultTracerConfig("my-service")
//	tp, err := observability.InitTracer(ctx, &cfg)
//	defer tp.Shutdown(ctx)
//
// Construction events:
//
//	obs, err := observability.NewResolutionObserver(observability.Tracer(), observability.Meter())
//	inj := di.New(collection, di.WithObserver(obs))
//
// Every class construction and factory call becomes a "di.construct" span and
// updates the di.constructions, di.construction.duration and
// di.construction.failures instruments.
//
// Health:
//
//	health := observability.CollectHealth(ctx, registry, "my-service", "1.0.0")
package observability
