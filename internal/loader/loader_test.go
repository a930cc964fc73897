package loader

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveProjectRootFirst(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "a", "b")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, "c.lf"), []byte("fn x () (int -> int)\n  1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	l := New(dir)
	got, err := l.Resolve("a:b:c")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := filepath.Join(sub, "c.lf")
	if got != want {
		t.Fatalf("Resolve = %s, want %s", got, want)
	}
}

func TestResolveFallsBackToLeafPath(t *testing.T) {
	projectDir := t.TempDir()
	leafDir := t.TempDir()
	modDir := filepath.Join(leafDir, "modules", "list")
	if err := os.MkdirAll(modDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(modDir, "map.lf"), []byte("fn x () (int -> int)\n  1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	l := New(projectDir)
	l.leafPath = leafDir

	got, err := l.Resolve("list:map")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := filepath.Join(modDir, "map.lf")
	if got != want {
		t.Fatalf("Resolve = %s, want %s", got, want)
	}
}

func TestResolveNotFound(t *testing.T) {
	l := New(t.TempDir())
	if _, err := l.Resolve("nope"); err == nil || err.Code != "LDR001" {
		t.Fatalf("expected LDR001, got %v", err)
	}
}

func TestEnterDetectsCycle(t *testing.T) {
	l := New(t.TempDir())
	if err := l.Enter("a"); err != nil {
		t.Fatalf("Enter a: %v", err)
	}
	if err := l.Enter("b"); err != nil {
		t.Fatalf("Enter b: %v", err)
	}
	if err := l.Enter("a"); err == nil || err.Code != "LDR002" {
		t.Fatalf("expected LDR002 cycle error, got %v", err)
	}
	l.Exit()
	l.Exit()
}
