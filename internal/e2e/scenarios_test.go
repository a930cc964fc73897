// Package e2e runs leaf programs end to end through internal/program's
// load/check/link/eval pipeline and snapshots their result, the way
// go-dws's internal/interp/fixture_test.go drives whole fixture scripts
// through its own lexer/parser/semantic/interp pipeline and compares
// output against a stored expectation — here the fixtures are inline
// source strings and the comparison is a go-snaps snapshot rather than a
// checked-in .txt file, since there is no external fixture corpus to
// reuse.
package e2e

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/sunholo/leaf/internal/config"
	"github.com/sunholo/leaf/internal/program"
)

func writeEntry(t *testing.T, source string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "main.lf")
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, source string) string {
	t.Helper()
	entry := writeEntry(t, source)
	cfg, err := config.Resolve(entry)
	if err != nil {
		t.Fatalf("config.Resolve: %v", err)
	}
	prog, perr := program.Load(cfg, entry)
	if perr != nil {
		t.Fatalf("Load: %v", perr)
	}
	val, rerr := prog.Run()
	if rerr != nil {
		t.Fatalf("Run: %v", rerr)
	}
	return val.String()
}

// TestScenarioArithmeticParametersRecursion is S1: self-recursive
// factorial. The recursive call is an argument of builtin:mul, so each
// level runs in its own sub-frame of internal/runtime's evaluator.
func TestScenarioArithmeticParametersRecursion(t *testing.T) {
	out := run(t, `fn fact n (int -> int)
  if builtin:eq n 0 then 1 else builtin:mul n (fact (builtin:sub n 1))
fn main (int)
  fact 5
`)
	snaps.MatchSnapshot(t, out)
}

// TestScenarioListConstructionAndBuiltin is S2: a list literal consumed
// by the "len" bridged primitive.
func TestScenarioListConstructionAndBuiltin(t *testing.T) {
	out := run(t, `fn main (int)
  builtin:len [1, 2, 3, 4]
`)
	snaps.MatchSnapshot(t, out)
}

// TestScenarioClosuresWithCapture is S3: a lambda literal over its own
// parameter is closure-converted with '#' and passed to a higher-order
// function by value.
func TestScenarioClosuresWithCapture(t *testing.T) {
	out := run(t, `fn apply f x ((int -> int) int -> int)  f x
fn main (int)  apply #(\n -> builtin:add n 10) 7
`)
	snaps.MatchSnapshot(t, out)
}

// TestScenarioIfElifElseChain is S4: a three-branch if/elif/else chain.
func TestScenarioIfElifElseChain(t *testing.T) {
	out := run(t, `fn classify n (int -> int)
  if builtin:lt n 0 then 0
  elif builtin:eq n 0 then 1
  else 2
fn main (int)  classify 5
`)
	snaps.MatchSnapshot(t, out)
}

// TestScenarioFirstAndThenSequence is S5: "first a and b then c" evaluates
// a and b for effect, left to right, and returns eval(c).
func TestScenarioFirstAndThenSequence(t *testing.T) {
	out := run(t, `fn main (int)
  first 99 and 100 then 7
`)
	snaps.MatchSnapshot(t, out)
}

// TestScenarioGenericDispatch is S6: "push_back" resolves against the
// ListedMatching bridge rule, with its element type variable bound to Int
// at the call site.
func TestScenarioGenericDispatch(t *testing.T) {
	out := run(t, `fn main ([int])
  builtin:push_back [1, 2] 3
`)
	snaps.MatchSnapshot(t, out)
}
