package config

import (
	goerrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wayfind-dev/wayfind/internal/errors"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewDefaults(t *testing.T) {
	cfg := New()
	if cfg.Pages.Dir != DefaultPagesDir {
		t.Errorf("pages dir = %q", cfg.Pages.Dir)
	}
	if cfg.Inspect.Host != DefaultInspectHost || cfg.Inspect.Port != DefaultInspectPort {
		t.Errorf("inspect = %+v", cfg.Inspect)
	}
	if cfg.Publish.Key != DefaultManifestKey {
		t.Errorf("publish key = %q", cfg.Publish.Key)
	}
	if cfg.Router.CaseInsensitive {
		t.Error("case-insensitive should default off")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{
  "name": "demo",
  "pages": {"dir": "app/pages"},
  "router": {"caseInsensitive": true},
  "inspect": {"port": 9000},
  "publish": {"bucket": "routes-bucket", "region": "eu-west-1"}
}`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Name != "demo" {
		t.Errorf("name = %q", cfg.Name)
	}
	if cfg.Pages.Dir != "app/pages" {
		t.Errorf("pages dir = %q", cfg.Pages.Dir)
	}
	if !cfg.Router.CaseInsensitive {
		t.Error("caseInsensitive not loaded")
	}
	if cfg.Inspect.Port != 9000 || cfg.Inspect.Host != DefaultInspectHost {
		t.Errorf("inspect = %+v, want explicit port with default host", cfg.Inspect)
	}
	if !cfg.HasPublish() || cfg.Publish.Key != DefaultManifestKey {
		t.Errorf("publish = %+v", cfg.Publish)
	}
	if got := cfg.PagesPath(); got != filepath.Join(dir, "app/pages") {
		t.Errorf("PagesPath = %q", got)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(t.TempDir())
	var we *errors.WayfindError
	if !goerrors.As(err, &we) || we.Code != "CF001" {
		t.Fatalf("got %v, want CF001", err)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{not json`)

	_, err := Load(dir)
	var we *errors.WayfindError
	if !goerrors.As(err, &we) || we.Code != "CF002" {
		t.Fatalf("got %v, want CF002", err)
	}
}

func TestLoadValidation(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{"inspect": {"port": 99999}}`)

	_, err := Load(dir)
	var we *errors.WayfindError
	if !goerrors.As(err, &we) || we.Code != "CF003" {
		t.Fatalf("got %v, want CF003", err)
	}

	writeConfig(t, dir, `{"pages": {"dir": "/etc/pages"}}`)
	_, err = Load(dir)
	if !goerrors.As(err, &we) || we.Code != "CF003" {
		t.Fatalf("absolute pages dir: got %v, want CF003", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{"name": "demo"}`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	cfg.Publish.Bucket = "edge-routes"
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	again, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if again.Publish.Bucket != "edge-routes" {
		t.Errorf("bucket = %q after round trip", again.Publish.Bucket)
	}

	data, _ := os.ReadFile(cfg.Path())
	if !strings.HasSuffix(string(data), "\n") {
		t.Error("saved file should end with a newline")
	}
}

func TestSaveWithoutPath(t *testing.T) {
	if err := New().Save(); err == nil {
		t.Error("Save without a load path should fail")
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `{}`)
	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	found, err := FindProjectRoot(nested)
	if err != nil {
		t.Fatalf("FindProjectRoot: %v", err)
	}
	// Resolve symlinks so macOS /var vs /private/var does not flake.
	wantResolved, _ := filepath.EvalSymlinks(root)
	gotResolved, _ := filepath.EvalSymlinks(found)
	if gotResolved != wantResolved {
		t.Errorf("root = %q, want %q", found, root)
	}
}

func TestFindProjectRootMissing(t *testing.T) {
	_, err := FindProjectRoot(t.TempDir())
	var we *errors.WayfindError
	if !goerrors.As(err, &we) || we.Code != "CF001" {
		t.Fatalf("got %v, want CF001", err)
	}
}

func TestInspectAddress(t *testing.T) {
	cfg := New()
	if got := cfg.InspectAddress(); got != "localhost:7410" {
		t.Errorf("InspectAddress = %q", got)
	}
}
