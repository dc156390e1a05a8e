package instrument

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/wayfind-dev/wayfind/pkg/router"
)

func testRouter(t *testing.T) *router.Router {
	t.Helper()
	r := router.New()
	for _, f := range []string{
		"pages/index.html",
		"pages/users/[id:uint].html",
	} {
		route, err := router.FromPath(f, "pages")
		if err != nil {
			t.Fatal(err)
		}
		if err := r.AddRoute(route); err != nil {
			t.Fatal(err)
		}
	}
	return r
}

func TestWrapMatchRoute(t *testing.T) {
	reg := prometheus.NewRegistry()
	ir := Wrap(testRouter(t), Metrics(WithRegistry(reg)))

	m := ir.MatchRoute(context.Background(), "/users/42")
	if m == nil || m.Params["id"] != "42" {
		t.Fatalf("match = %v", m)
	}
	if miss := ir.MatchRoute(context.Background(), "/nope"); miss != nil {
		t.Errorf("match = %v, want nil", miss)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}
	found := map[string]bool{}
	for _, mf := range families {
		found[mf.GetName()] = true
	}
	for _, want := range []string{
		"wayfind_router_matches_total",
		"wayfind_router_match_duration_seconds",
		"wayfind_router_routes_registered",
	} {
		if !found[want] {
			t.Errorf("metric %s not registered, have %v", want, found)
		}
	}
}

func TestWrapURLFor(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := testRouter(t)
	named, err := router.FromPattern("/profile/:id")
	if err != nil {
		t.Fatal(err)
	}
	if err := r.AddRoute(named.WithName("profile")); err != nil {
		t.Fatal(err)
	}

	ir := Wrap(r, Metrics(WithRegistry(reg)))

	url, err := ir.URLFor(context.Background(), "profile", map[string]string{"id": "7"})
	if err != nil || url != "/profile/7" {
		t.Errorf("URLFor = %q, %v", url, err)
	}
	if _, err := ir.URLFor(context.Background(), "missing", nil); err == nil {
		t.Error("unknown name should error")
	}
}

func TestWrapAddRemoveUpdatesGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	ir := Wrap(testRouter(t), Metrics(WithRegistry(reg)))

	routesGauge := func() float64 {
		t.Helper()
		families, err := reg.Gather()
		if err != nil {
			t.Fatal(err)
		}
		for _, mf := range families {
			if mf.GetName() == "wayfind_router_routes_registered" {
				return mf.GetMetric()[0].GetGauge().GetValue()
			}
		}
		t.Fatal("routes gauge not registered")
		return 0
	}

	route, err := router.FromPattern("/extra")
	if err != nil {
		t.Fatal(err)
	}
	if err := ir.AddRoute(route); err != nil {
		t.Fatal(err)
	}
	if got := len(ir.Inner().Routes()); got != 3 {
		t.Errorf("routes = %d, want 3", got)
	}
	if got := routesGauge(); got != 3 {
		t.Errorf("routes gauge = %v, want 3", got)
	}
	ir.RemoveRoute("/extra")
	if got := len(ir.Inner().Routes()); got != 2 {
		t.Errorf("routes = %d, want 2", got)
	}
	if got := routesGauge(); got != 2 {
		t.Errorf("routes gauge = %v, want 2", got)
	}
}

func TestWrapPathFilterSkipsTracing(t *testing.T) {
	reg := prometheus.NewRegistry()
	ir := Wrap(testRouter(t),
		Metrics(WithRegistry(reg)),
		Tracing(WithPathFilter(func(path string) bool { return path != "/healthz" })),
	)

	// Filtered paths still match; only the span is skipped.
	if m := ir.MatchRoute(context.Background(), "/users/1"); m == nil {
		t.Error("unfiltered path should match")
	}
	if m := ir.MatchRoute(context.Background(), "/healthz"); m != nil {
		t.Error("filtered miss should stay a miss")
	}
}
