// Package instrument provides production observability for a Wayfind
// router: OpenTelemetry tracing and Prometheus metrics around match and
// reverse-URL lookups.
//
// The core router in pkg/router is deliberately passive and silent; this
// package wraps it for callers that want visibility:
//
//	r := router.New()
//	_ = router.NewScanner("pages").ScanInto(r)
//
//	ir := instrument.Wrap(r,
//	    instrument.Tracing(instrument.WithTracerName("my-site")),
//	    instrument.Metrics(instrument.WithNamespace("mysite")),
//	)
//
//	m := ir.MatchRoute(ctx, "/users/42")
//
// # Metrics
//
//   - wayfind_router_matches_total{status="hit|miss"}
//   - wayfind_router_match_duration_seconds{status}
//   - wayfind_router_url_for_total{status="ok|error"}
//   - wayfind_router_routes_registered
//   - wayfind_router_registration_errors_total
//
// Expose them with promhttp in your own server:
//
//	http.Handle("/metrics", promhttp.Handler())
//
// # Tracing
//
// Spans are created from the global OpenTelemetry tracer provider;
// configure it in main() before wiring the router. Each lookup records
// the probed path, the matched pattern and kind, and optionally the
// captured bindings.
package instrument
