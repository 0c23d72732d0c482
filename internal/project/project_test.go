package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestName), `
[generate]
package = "calc"
runtime = "example.com/rt/mage"

[cache]
enabled = false
dir = "cache"
`)
	nested := filepath.Join(root, "api", "v1")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg, err := Discover(nested)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Generate.Package != "calc" || cfg.Generate.Runtime != "example.com/rt/mage" {
		t.Errorf("generate: %+v", cfg.Generate)
	}
	if cfg.Generate.Suffix != ".go" {
		t.Errorf("suffix default lost: %q", cfg.Generate.Suffix)
	}
	if cfg.Cache.Enabled {
		t.Error("cache.enabled = false ignored")
	}
	if cfg.Cache.Dir != filepath.Join(root, "cache") {
		t.Errorf("cache dir = %q", cfg.Cache.Dir)
	}
	if cfg.Path != filepath.Join(root, ManifestName) {
		t.Errorf("path = %q", cfg.Path)
	}
}

func TestDiscoverDefaults(t *testing.T) {
	cfg, err := Discover(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	// выше TempDir может лежать чужой magen.toml, но не в CI
	if cfg.Path == "" && cfg != Default() {
		t.Errorf("defaults: %+v", cfg)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"unknown key", "[generate]\npackge = \"x\"\n", ErrUnknownKey},
		{"bad package", "[generate]\npackage = \"my-pkg\"\n", ErrInvalidPackage},
		{"bad suffix", "[generate]\nsuffix = \".txt\"\n", ErrInvalidSuffix},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ManifestName)
			writeFile(t, path, tt.content)
			if _, err := LoadConfig(path); !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}

	path := filepath.Join(t.TempDir(), ManifestName)
	writeFile(t, path, "[generate\n")
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("broken TOML accepted")
	}
}

func TestPackageFor(t *testing.T) {
	cfg := Default()
	tests := map[string]string{
		"/src/calculator/calc.magen": "calculator",
		"/src/My-Service/x.magen":    "myservice",
		"/src/2fa/x.magen":           "fa",
		"/src/123/x.magen":           "mage",
	}
	for path, want := range tests {
		if got := cfg.PackageFor(path); got != want {
			t.Errorf("%s: got %q, want %q", path, got, want)
		}
	}
	cfg.Generate.Package = "fixed"
	if got := cfg.PackageFor("/src/calculator/calc.magen"); got != "fixed" {
		t.Errorf("configured package ignored: %q", got)
	}
}

func TestDestinationFor(t *testing.T) {
	cfg := Default()
	if got := cfg.DestinationFor("api/calc.magen"); got != "api/calc.magen.go" {
		t.Fatalf("got %q", got)
	}
}

func TestCombineSeparatesParts(t *testing.T) {
	if Combine([]byte("ab"), []byte("c")) == Combine([]byte("a"), []byte("bc")) {
		t.Fatal("part boundaries must change the digest")
	}
	if Combine([]byte("x")) != Combine([]byte("x")) {
		t.Fatal("not deterministic")
	}
}
