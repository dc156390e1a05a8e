package router

import (
	"encoding/json"
	"testing"
)

func TestBuildManifest(t *testing.T) {
	r := New()
	addAll(t, r,
		"pages/index.html",
		"pages/_layout.html",
		"pages/users/[id].html",
		"pages/users/_error.html",
		"pages/print/_nolayout.html",
		"pages/@analytics/index.html",
	)

	m := BuildManifest(r)
	if len(m.Routes) != 3 {
		t.Fatalf("got %d sorted routes, want 3 (index, slot, users)", len(m.Routes))
	}
	if m.Layouts["/"] == "" {
		t.Error("root layout missing from manifest")
	}
	if m.ErrorPages["/users"] == "" {
		t.Error("error page missing from manifest")
	}
	if len(m.Barriers) != 1 || m.Barriers[0] != "/print" {
		t.Errorf("barriers = %v", m.Barriers)
	}
	if m.Parallel["/"]["analytics"] == "" {
		t.Errorf("parallel table = %v", m.Parallel)
	}

	data, err := m.JSON()
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var decoded Manifest
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("round trip: %v", err)
	}
	if len(decoded.Routes) != len(m.Routes) {
		t.Errorf("decoded %d routes, want %d", len(decoded.Routes), len(m.Routes))
	}
}
