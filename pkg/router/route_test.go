package router

import (
	"errors"
	"testing"

	"github.com/wayfind-dev/wayfind/pkg/routeerr"
)

func mustFromPath(t *testing.T, filePath string) *Route {
	t.Helper()
	route, err := FromPath(filePath, "pages")
	if err != nil {
		t.Fatalf("FromPath(%s): %v", filePath, err)
	}
	return route
}

func TestRouteMatchesStatic(t *testing.T) {
	route := mustFromPath(t, "pages/about.html")

	if _, ok := route.Matches("/about"); !ok {
		t.Error("expected /about to match")
	}
	if _, ok := route.Matches("/about/"); !ok {
		t.Error("expected trailing slash to normalize and match")
	}
	if _, ok := route.Matches("/other"); ok {
		t.Error("did not expect /other to match")
	}
}

func TestRouteMatchesDynamic(t *testing.T) {
	route := mustFromPath(t, "pages/users/[id].html")

	params, ok := route.Matches("/users/123")
	if !ok {
		t.Fatal("expected match")
	}
	if params["id"] != "123" {
		t.Errorf("id = %q, want 123", params["id"])
	}
	if _, ok := route.Matches("/users"); ok {
		t.Error("missing segment should not match")
	}
	if _, ok := route.Matches("/users/123/extra"); ok {
		t.Error("extra segment should not match")
	}
}

func TestRouteMatchesConstraint(t *testing.T) {
	route := mustFromPath(t, "pages/users/[id:uint].html")

	if _, ok := route.Matches("/users/42"); !ok {
		t.Error("expected digits to match uint")
	}
	if _, ok := route.Matches("/users/abc"); ok {
		t.Error("constraint violation should fail the match")
	}
	if _, ok := route.Matches("/users/-1"); ok {
		t.Error("sign should fail uint")
	}
}

func TestRouteMatchesCatchAll(t *testing.T) {
	route := mustFromPath(t, "pages/docs/[...slug].html")

	params, ok := route.Matches("/docs/a/b/c")
	if !ok {
		t.Fatal("expected match")
	}
	if params["slug"] != "a/b/c" {
		t.Errorf("slug = %q, want a/b/c", params["slug"])
	}

	if _, ok := route.Matches("/docs"); ok {
		t.Error("required catch-all needs at least one segment")
	}
}

func TestRouteMatchesOptionalCatchAll(t *testing.T) {
	route := mustFromPath(t, "pages/docs/[[...slug]].html")

	params, ok := route.Matches("/docs")
	if !ok {
		t.Fatal("expected zero-segment match")
	}
	if v, present := params["slug"]; !present || v != "" {
		t.Errorf("slug binding = %q (present=%v), want empty string", v, present)
	}

	params, ok = route.Matches("/docs/x/y")
	if !ok || params["slug"] != "x/y" {
		t.Errorf("slug = %q, want x/y", params["slug"])
	}
}

func TestRouteMatchesOptionalParam(t *testing.T) {
	route := mustFromPath(t, "pages/posts/[id?].html")

	params, ok := route.Matches("/posts/7")
	if !ok || params["id"] != "7" {
		t.Errorf("present form: params = %v", params)
	}

	params, ok = route.Matches("/posts")
	if !ok {
		t.Fatal("absent form should match")
	}
	if _, present := params["id"]; present {
		t.Errorf("absent optional should not bind, got %v", params)
	}
}

func TestRouteGenerateURL(t *testing.T) {
	route := mustFromPath(t, "pages/users/[id:uint].html")

	url, err := route.GenerateURL(map[string]string{"id": "42"})
	if err != nil {
		t.Fatalf("GenerateURL: %v", err)
	}
	if url != "/users/42" {
		t.Errorf("url = %q, want /users/42", url)
	}

	_, err = route.GenerateURL(nil)
	var rerr *routeerr.Error
	if !errors.As(err, &rerr) || rerr.Kind != routeerr.MissingParameter {
		t.Errorf("missing binding: got %v, want missing_parameter", err)
	}

	_, err = route.GenerateURL(map[string]string{"id": "abc"})
	if !errors.As(err, &rerr) || rerr.Kind != routeerr.ConstraintViolation {
		t.Errorf("bad binding: got %v, want constraint_violation", err)
	}
}

func TestRouteGenerateURLOptional(t *testing.T) {
	route := mustFromPath(t, "pages/posts/[id?].html")

	url, err := route.GenerateURL(map[string]string{"id": "7"})
	if err != nil || url != "/posts/7" {
		t.Errorf("url = %q err = %v, want /posts/7", url, err)
	}

	url, err = route.GenerateURL(nil)
	if err != nil || url != "/posts" {
		t.Errorf("url = %q err = %v, want /posts", url, err)
	}
}

func TestRouteGenerateURLCatchAll(t *testing.T) {
	route := mustFromPath(t, "pages/docs/[...slug].html")

	url, err := route.GenerateURL(map[string]string{"slug": "a/b/c"})
	if err != nil || url != "/docs/a/b/c" {
		t.Errorf("url = %q err = %v, want /docs/a/b/c", url, err)
	}

	_, err = route.GenerateURL(map[string]string{"slug": ""})
	var rerr *routeerr.Error
	if !errors.As(err, &rerr) || rerr.Kind != routeerr.MissingParameter {
		t.Errorf("empty required catch-all: got %v, want missing_parameter", err)
	}

	optional := mustFromPath(t, "pages/docs/[[...slug]].html")
	url, err = optional.GenerateURL(nil)
	if err != nil || url != "/docs" {
		t.Errorf("optional zero case: url = %q err = %v, want /docs", url, err)
	}
}

func TestRouteGenerateMatchRoundTrip(t *testing.T) {
	cases := []struct {
		file   string
		params map[string]string
	}{
		{"pages/users/[id:uint].html", map[string]string{"id": "42"}},
		{"pages/posts/[slug:slug].html", map[string]string{"slug": "hello-world"}},
		{"pages/docs/[...rest].html", map[string]string{"rest": "a/b/c"}},
		{"pages/static/page.html", nil},
	}
	for _, tc := range cases {
		route := mustFromPath(t, tc.file)
		url, err := route.GenerateURL(tc.params)
		if err != nil {
			t.Fatalf("GenerateURL(%s): %v", tc.file, err)
		}
		got, ok := route.Matches(url)
		if !ok {
			t.Fatalf("round trip %s: %q did not match", tc.file, url)
		}
		if len(got) != len(tc.params) {
			t.Errorf("round trip %s: bindings %v, want %v", tc.file, got, tc.params)
		}
		for k, v := range tc.params {
			if got[k] != v {
				t.Errorf("round trip %s: %s = %q, want %q", tc.file, k, got[k], v)
			}
		}
	}
}

func TestRouteBuilders(t *testing.T) {
	route := mustFromPath(t, "pages/users/[id].html").
		WithName("user-detail").
		WithMeta("section", "users").
		WithMeta("section", "people"). // later write replaces
		WithNamedLayout("admin")

	if route.Name != "user-detail" {
		t.Errorf("name = %q", route.Name)
	}
	if route.Meta["section"] != "people" {
		t.Errorf("meta = %v, want later write to win", route.Meta)
	}
	if route.Layout.Kind != LayoutNamed || route.Layout.Value != "admin" {
		t.Errorf("layout option = %+v", route.Layout)
	}
}

func TestRouteAliasSharesConstraints(t *testing.T) {
	route := mustFromPath(t, "pages/users/[id:uint].html").WithAlias("/members/:id")

	if len(route.Aliases) != 1 || route.Aliases[0] != "/members/:id" {
		t.Fatalf("aliases = %v", route.Aliases)
	}
	params, ok := route.Matches("/members/42")
	if !ok || params["id"] != "42" {
		t.Errorf("alias match params = %v", params)
	}
	// The alias inherits the primary parameter's constraint.
	if _, ok := route.Matches("/members/abc"); ok {
		t.Error("alias should enforce the uint constraint")
	}
}

func TestRouteInvalidAliasSurfacesAtAdd(t *testing.T) {
	route := mustFromPath(t, "pages/users/[id].html").WithAlias("/a/*rest/b")

	r := New()
	if err := r.AddRoute(route); err == nil {
		t.Fatal("expected deferred alias error at AddRoute")
	}
	if len(r.Routes()) != 0 {
		t.Error("router should be unchanged after a failed add")
	}
}

func TestRedirectRoute(t *testing.T) {
	route, err := Redirect("/old/:id", "/new/:id", 301)
	if err != nil {
		t.Fatalf("Redirect: %v", err)
	}

	r := New()
	if err := r.AddRoute(route); err != nil {
		t.Fatalf("AddRoute: %v", err)
	}

	m := r.MatchRoute("/old/42")
	if m == nil {
		t.Fatal("expected match")
	}
	target, ok := m.RedirectTarget()
	if !ok || target != "/new/42" {
		t.Errorf("redirect target = %q (%v), want /new/42", target, ok)
	}
	status, ok := m.RedirectStatus()
	if !ok || status != 301 {
		t.Errorf("redirect status = %d (%v), want 301", status, ok)
	}
}

func TestRedirectStatusAbsentOnNormalRoute(t *testing.T) {
	route := mustFromPath(t, "pages/about.html")
	m := &RouteMatch{Route: route}
	if _, ok := m.RedirectTarget(); ok {
		t.Error("normal route should not report a redirect target")
	}
	if _, ok := m.RedirectStatus(); ok {
		t.Error("normal route should not report a redirect status")
	}
}
