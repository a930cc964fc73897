package program

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sunholo/leaf/internal/config"
	"github.com/sunholo/leaf/internal/runtime"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAndRunFactorial(t *testing.T) {
	dir := t.TempDir()
	entry := writeFile(t, dir, "fact.lf", "fn fact n (int -> int)\n  if builtin:eq n 0 then 1 else builtin:mul n (fact (builtin:sub n 1))\nfn main (int)\n  fact 5\n")

	cfg, err := config.Resolve(entry)
	if err != nil {
		t.Fatalf("config.Resolve: %v", err)
	}
	prog, perr := Load(cfg, entry)
	if perr != nil {
		t.Fatalf("Load: %v", perr)
	}

	val, rerr := prog.Run()
	if rerr != nil {
		t.Fatalf("Run: %v", rerr)
	}
	i, ok := val.(runtime.Int)
	if !ok || i.V != 120 {
		t.Fatalf("fact(5) = %v, want Int 120", val)
	}
}

func TestLoadResolvesUseImport(t *testing.T) {
	leafPath := t.TempDir()
	if err := os.MkdirAll(filepath.Join(leafPath, "modules", "mathx"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(leafPath, "modules"), filepath.Join("mathx", "double.lf"), "fn double n (int -> int)\n  builtin:mul n 2\n")

	dir := t.TempDir()
	entry := writeFile(t, dir, "main.lf", "use mathx:double\nfn main (int)\n  double:double 21\n")

	t.Setenv("LEAFPATH", leafPath)
	cfg, err := config.Resolve(entry)
	if err != nil {
		t.Fatalf("config.Resolve: %v", err)
	}
	prog, perr := Load(cfg, entry)
	if perr != nil {
		t.Fatalf("Load: %v", perr)
	}

	val, rerr := prog.Run()
	if rerr != nil {
		t.Fatalf("Run: %v", rerr)
	}
	i, ok := val.(runtime.Int)
	if !ok || i.V != 42 {
		t.Fatalf("main() = %v, want Int 42", val)
	}
}
