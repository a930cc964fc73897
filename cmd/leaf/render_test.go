package main

import (
	"strings"
	"testing"

	"github.com/sunholo/leaf/internal/diag"
)

func TestRenderErrorIncludesSourceLineAndCaret(t *testing.T) {
	err := diag.New(diag.CHK003, diag.Pos{File: "main.lf", Line: 2, Column: 4}, "condition is not Bool")
	src := []byte("fn f ()\n  if 1 then 2 else 3\n")

	out := renderError(err, src)

	if !strings.Contains(out, "CHK003") {
		t.Fatalf("renderError output missing error code:\n%s", out)
	}
	if !strings.Contains(out, "if 1 then 2 else 3") {
		t.Fatalf("renderError output missing offending source line:\n%s", out)
	}
	if !strings.Contains(out, "^") {
		t.Fatalf("renderError output missing caret:\n%s", out)
	}
}

func TestRenderErrorWithoutPositionSkipsSourceLine(t *testing.T) {
	err := diag.New(diag.RUN001, diag.Pos{}, "unimplemented node reached")
	out := renderError(err, []byte("fn f ()\n  ??\n"))
	if strings.Contains(out, "|") {
		t.Fatalf("renderError rendered a source line for a zero position:\n%s", out)
	}
}

func TestRenderErrorWithNilSourceSkipsSourceLine(t *testing.T) {
	err := diag.New(diag.CHK003, diag.Pos{File: "main.lf", Line: 2, Column: 4}, "condition is not Bool")
	out := renderError(err, nil)
	if strings.Contains(out, "|") {
		t.Fatalf("renderError rendered a source line with nil source:\n%s", out)
	}
}

func TestRenderErrorLineBeyondSourceSkipsSourceLine(t *testing.T) {
	err := diag.New(diag.CHK003, diag.Pos{File: "main.lf", Line: 50, Column: 4}, "condition is not Bool")
	out := renderError(err, []byte("fn f ()\n  1\n"))
	if strings.Contains(out, "|") {
		t.Fatalf("renderError rendered a source line for an out-of-range line:\n%s", out)
	}
}
