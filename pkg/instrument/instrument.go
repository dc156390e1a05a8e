package instrument

import (
	"context"
	"time"

	"github.com/wayfind-dev/wayfind/pkg/router"
)

// Router wraps a router.Router with OpenTelemetry tracing and Prometheus
// metrics. The core router stays passive and dependency-free; callers
// that want observability route their lookups through this wrapper
// instead.
type Router struct {
	inner      *router.Router
	otel       OTelConfig
	metricsCfg MetricsConfig
	m          *metrics
}

// Option configures the wrapper; build one with Tracing or Metrics.
type Option interface{ apply(*Router) }

// Tracing applies tracing options to the wrapper.
func Tracing(opts ...OTelOption) Option {
	return optionFunc(func(ir *Router) {
		for _, opt := range opts {
			opt(&ir.otel)
		}
	})
}

// Metrics applies metrics options to the wrapper.
func Metrics(opts ...MetricsOption) Option {
	return optionFunc(func(ir *Router) {
		for _, opt := range opts {
			opt(&ir.metricsCfg)
		}
	})
}

type optionFunc func(*Router)

func (f optionFunc) apply(ir *Router) { f(ir) }

// Wrap instruments an existing router. The tracer resolves from the
// global OpenTelemetry provider; metrics register against the configured
// Prometheus registry (the default registry shares one metric set across
// wraps).
func Wrap(r *router.Router, opts ...Option) *Router {
	ir := &Router{
		inner:      r,
		otel:       defaultOTelConfig(),
		metricsCfg: defaultMetricsConfig(),
	}
	for _, opt := range opts {
		opt.apply(ir)
	}
	ir.otel.resolveTracer()
	ir.m = resolveMetrics(ir.metricsCfg)
	ir.m.routesGauge.Set(float64(len(r.Routes())))
	return ir
}

// Inner returns the wrapped router for direct, uninstrumented access.
func (ir *Router) Inner() *router.Router { return ir.inner }

// MatchRoute matches path, recording a span and match metrics.
func (ir *Router) MatchRoute(ctx context.Context, path string) *router.RouteMatch {
	start := time.Now()
	m := ir.traceMatch(ctx, "wayfind.match_route", path, func() *router.RouteMatch {
		return ir.inner.MatchRoute(path)
	})
	ir.observeMatch(start, m != nil)
	return m
}

// MatchRouteFrom matches path for a navigation originating at source,
// recording a span and match metrics.
func (ir *Router) MatchRouteFrom(ctx context.Context, path, source string) *router.RouteMatch {
	start := time.Now()
	m := ir.traceMatch(ctx, "wayfind.match_route_from", path, func() *router.RouteMatch {
		return ir.inner.MatchRouteFrom(path, source)
	})
	ir.observeMatch(start, m != nil)
	return m
}

// URLFor generates a URL from a named route, recording a span and a
// generation counter.
func (ir *Router) URLFor(ctx context.Context, name string, params map[string]string) (string, error) {
	url, err := ir.traceURLFor(ctx, name, func() (string, error) {
		return ir.inner.URLFor(name, params)
	})
	if err != nil {
		ir.m.urlForTotal.WithLabelValues("error").Inc()
		return "", err
	}
	ir.m.urlForTotal.WithLabelValues("ok").Inc()
	return url, nil
}

// AddRoute registers a route on the wrapped router and updates the
// route-count gauge.
func (ir *Router) AddRoute(route *router.Route) error {
	if err := ir.inner.AddRoute(route); err != nil {
		ir.m.registrationErr.Inc()
		return err
	}
	ir.m.routesGauge.Set(float64(len(ir.inner.Routes())))
	return nil
}

// RemoveRoute removes a pattern from the wrapped router and updates the
// route-count gauge.
func (ir *Router) RemoveRoute(pattern string) {
	ir.inner.RemoveRoute(pattern)
	ir.m.routesGauge.Set(float64(len(ir.inner.Routes())))
}

func (ir *Router) observeMatch(start time.Time, hit bool) {
	status := "miss"
	if hit {
		status = "hit"
	}
	ir.m.matchesTotal.WithLabelValues(status).Inc()
	ir.m.matchDuration.WithLabelValues(status).Observe(time.Since(start).Seconds())
}
