package router

import (
	"os"
	"path/filepath"
	"testing"
)

func writePages(t *testing.T, files ...string) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "pages")
	for _, f := range files {
		full := filepath.Join(root, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte("<page/>\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestScannerScan(t *testing.T) {
	root := writePages(t,
		"index.html",
		"_layout.html",
		"users/[id:uint].html",
		"users/new.html",
		"docs/[...slug].html",
	)

	routes, err := NewScanner(root).Scan()
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(routes) != 5 {
		t.Fatalf("got %d routes, want 5", len(routes))
	}

	patterns := make(map[string]ResourceKind)
	for _, rt := range routes {
		patterns[rt.Pattern+"|"+rt.Kind.String()] = rt.Kind
	}
	for _, want := range []string{
		"/|page", "/|layout", "/users/:id|page", "/users/new|page", "/docs/*slug|page",
	} {
		if _, ok := patterns[want]; !ok {
			t.Errorf("missing %s in %v", want, patterns)
		}
	}
}

func TestScannerScanInto(t *testing.T) {
	root := writePages(t,
		"index.html",
		"users/[id].html",
		"users/_layout.html",
	)

	r := New()
	if err := NewScanner(root).ScanInto(r); err != nil {
		t.Fatalf("ScanInto: %v", err)
	}

	if m := r.MatchRoute("/users/3"); m == nil || m.Params["id"] != "3" {
		t.Errorf("match = %v", m)
	}
	if layout := r.GetLayout("/users/3"); layout == nil || layout.Pattern != "/users" {
		t.Errorf("layout = %v", layout)
	}
}

func TestScannerCollectsCompileErrors(t *testing.T) {
	root := writePages(t,
		"ok.html",
		"bad/[...a]/[...b].html",
	)

	routes, err := NewScanner(root).Scan()
	if err == nil {
		t.Fatal("expected a joined compile error")
	}
	if len(routes) != 1 || routes[0].Pattern != "/ok" {
		t.Errorf("good routes should survive, got %v", routes)
	}
}

func TestScannerSkipsHiddenFiles(t *testing.T) {
	root := writePages(t,
		"index.html",
		".hidden.html",
		".git/config.html",
	)

	routes, err := NewScanner(root).Scan()
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(routes) != 1 {
		t.Errorf("got %d routes, want only the index", len(routes))
	}
}
