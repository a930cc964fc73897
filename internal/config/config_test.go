package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadManifestMissingIsZeroValue(t *testing.T) {
	dir := t.TempDir()
	m, err := LoadManifest(dir)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if m.LeafPath != "" || len(m.Roots) != 0 {
		t.Fatalf("got %+v, want zero value", m)
	}
}

func TestLoadManifestParsesYAML(t *testing.T) {
	dir := t.TempDir()
	content := "leafpath: /opt/leaf\nroots:\n  - vendor/leaf\n  - lib\n"
	if err := os.WriteFile(filepath.Join(dir, ManifestName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := LoadManifest(dir)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if m.LeafPath != "/opt/leaf" {
		t.Fatalf("LeafPath = %q, want /opt/leaf", m.LeafPath)
	}
	if len(m.Roots) != 2 || m.Roots[0] != "vendor/leaf" || m.Roots[1] != "lib" {
		t.Fatalf("Roots = %v, want [vendor/leaf lib]", m.Roots)
	}
}

func TestResolveUsesManifestOverEnv(t *testing.T) {
	dir := t.TempDir()
	content := "leafpath: /from/manifest\n"
	if err := os.WriteFile(filepath.Join(dir, ManifestName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("LEAFPATH", "/from/env")

	entry := filepath.Join(dir, "main.lf")
	cfg, err := Resolve(entry)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.LeafPath != "/from/manifest" {
		t.Fatalf("LeafPath = %q, want manifest value", cfg.LeafPath)
	}
	if cfg.ProjectRoot != dir {
		t.Fatalf("ProjectRoot = %q, want %q", cfg.ProjectRoot, dir)
	}
}

func TestResolveFallsBackToEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("LEAFPATH", "/from/env")

	cfg, err := Resolve(filepath.Join(dir, "main.lf"))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.LeafPath != "/from/env" {
		t.Fatalf("LeafPath = %q, want /from/env", cfg.LeafPath)
	}
}
