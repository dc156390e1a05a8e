package inspect

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/wayfind-dev/wayfind/pkg/router"
)

func testServer(t *testing.T) (*Server, *router.Router) {
	t.Helper()
	r := router.New()
	for _, f := range []string{
		"pages/index.html",
		"pages/_layout.html",
		"pages/users/[id:uint].html",
		"pages/users/_error.html",
	} {
		route, err := router.FromPath(f, "pages")
		if err != nil {
			t.Fatal(err)
		}
		if err := r.AddRoute(route); err != nil {
			t.Fatal(err)
		}
	}
	return NewServer(r, nil), r
}

func TestHandleRoutes(t *testing.T) {
	s, _ := testServer(t)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/routes")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var manifest router.Manifest
	if err := json.NewDecoder(resp.Body).Decode(&manifest); err != nil {
		t.Fatal(err)
	}
	if len(manifest.Routes) != 2 {
		t.Errorf("routes = %d, want index and users", len(manifest.Routes))
	}
	if manifest.Layouts["/"] == "" {
		t.Error("manifest missing root layout")
	}
}

func TestHandleMatch(t *testing.T) {
	s, _ := testServer(t)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/match?path=/users/42")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var m matchResponse
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		t.Fatal(err)
	}
	if !m.Matched || m.Pattern != "/users/:id" || m.Params["id"] != "42" {
		t.Errorf("match = %+v", m)
	}

	resp, err = http.Get(ts.URL + "/match?path=/users/abc")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		t.Fatal(err)
	}
	if m.Matched {
		t.Errorf("constraint violation should not match: %+v", m)
	}

	resp, err = http.Get(ts.URL + "/match")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("missing path: status = %d", resp.StatusCode)
	}
}

func TestHandleResolve(t *testing.T) {
	s, _ := testServer(t)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/resolve?pattern=/users/7")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var res resolveResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	if res.Layout != "/" {
		t.Errorf("layout = %q, want /", res.Layout)
	}
	if res.ErrorPage != "/users" {
		t.Errorf("error page = %q, want /users", res.ErrorPage)
	}
}

func TestWebsocketSnapshotAndNotify(t *testing.T) {
	s, r := testServer(t)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	var first router.Manifest
	if err := conn.ReadJSON(&first); err != nil {
		t.Fatalf("initial snapshot: %v", err)
	}
	if len(first.Routes) != 2 {
		t.Errorf("initial snapshot routes = %d", len(first.Routes))
	}

	route, err := router.FromPattern("/pricing")
	if err != nil {
		t.Fatal(err)
	}
	if err := r.AddRoute(route); err != nil {
		t.Fatal(err)
	}
	s.Notify()

	var second router.Manifest
	if err := conn.ReadJSON(&second); err != nil {
		t.Fatalf("notified snapshot: %v", err)
	}
	if len(second.Routes) != 3 {
		t.Errorf("notified snapshot routes = %d, want 3", len(second.Routes))
	}
}
