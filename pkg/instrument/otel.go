package instrument

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/wayfind-dev/wayfind/pkg/router"
)

// Default tracer name for Wayfind routers.
const defaultTracerName = "wayfind"

// OTelConfig configures tracing on an instrumented router.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "wayfind").
	TracerName string

	// IncludeBindings includes captured parameter values in spans.
	// May contain sensitive path material - disabled by default.
	IncludeBindings bool

	// Filter determines which lookups to trace. Return true to trace
	// the call, false to skip. If nil, all calls are traced.
	Filter func(path string) bool

	// AttributeExtractor extracts custom attributes for each traced
	// lookup.
	AttributeExtractor func(path string) []attribute.KeyValue

	// tracer is the resolved tracer instance.
	tracer trace.Tracer
}

// OTelOption configures tracing.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithIncludeBindings enables recording captured parameter values.
func WithIncludeBindings(include bool) OTelOption {
	return func(c *OTelConfig) {
		c.IncludeBindings = include
	}
}

// WithPathFilter sets a filter function for traced paths.
func WithPathFilter(filter func(path string) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(path string) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

// defaultOTelConfig returns the default tracing configuration.
func defaultOTelConfig() OTelConfig {
	return OTelConfig{
		TracerName: defaultTracerName,
	}
}

// traceMatch wraps a match call in a span. The tracer comes from the
// global OpenTelemetry tracer provider; configure it in main() before
// wiring the router.
func (ir *Router) traceMatch(ctx context.Context, op, path string, fn func() *router.RouteMatch) *router.RouteMatch {
	cfg := &ir.otel
	if cfg.Filter != nil && !cfg.Filter(path) {
		return fn()
	}

	attrs := []attribute.KeyValue{
		attribute.String("wayfind.path", path),
	}
	if cfg.AttributeExtractor != nil {
		attrs = append(attrs, cfg.AttributeExtractor(path)...)
	}

	_, span := cfg.tracer.Start(
		ctx,
		op,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
	defer span.End()

	m := fn()
	if m == nil {
		span.SetAttributes(attribute.Bool("wayfind.matched", false))
		span.SetStatus(codes.Ok, "")
		return nil
	}

	span.SetAttributes(
		attribute.Bool("wayfind.matched", true),
		attribute.String("wayfind.pattern", m.Route.Pattern),
		attribute.String("wayfind.kind", m.Route.Kind.String()),
	)
	if cfg.IncludeBindings {
		for name, value := range m.Params {
			span.SetAttributes(attribute.String("wayfind.param."+name, value))
		}
	}
	span.SetStatus(codes.Ok, "")
	return m
}

// traceURLFor wraps reverse URL generation in a span.
func (ir *Router) traceURLFor(ctx context.Context, name string, fn func() (string, error)) (string, error) {
	cfg := &ir.otel

	_, span := cfg.tracer.Start(
		ctx,
		"wayfind.url_for",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("wayfind.route_name", name)),
	)
	defer span.End()

	url, err := fn()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	span.SetStatus(codes.Ok, "")
	return url, nil
}

// resolveTracer binds the tracer from the global provider.
func (c *OTelConfig) resolveTracer() {
	if c.TracerName == "" {
		c.TracerName = defaultTracerName
	}
	c.tracer = otel.Tracer(c.TracerName)
}
