package diag

import "testing"

func TestPosStringOmitsFileWhenEmpty(t *testing.T) {
	p := Pos{Line: 3, Column: 7}
	if got, want := p.String(), "3:7"; got != want {
		t.Fatalf("Pos.String() = %q, want %q", got, want)
	}
}

func TestPosStringIncludesFileWhenSet(t *testing.T) {
	p := Pos{File: "main.lf", Line: 3, Column: 7}
	if got, want := p.String(), "main.lf:3:7"; got != want {
		t.Fatalf("Pos.String() = %q, want %q", got, want)
	}
}

func TestErrorStringOmitsPositionWhenZero(t *testing.T) {
	e := New(CHK003, Pos{}, "condition is not Bool")
	if got, want := e.Error(), "[CHK003] condition is not Bool"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}

func TestErrorStringIncludesPositionWhenSet(t *testing.T) {
	e := New(CHK003, Pos{File: "main.lf", Line: 2, Column: 5}, "condition is not Bool")
	if got, want := e.Error(), "[CHK003] main.lf:2:5: condition is not Bool"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}

func TestWithFallbackPosFillsZeroPosition(t *testing.T) {
	e := New(PAR015, Pos{}, "missing right-hand operand")
	decorated := e.WithFallbackPos(Pos{File: "main.lf", Line: 9, Column: 1})
	if decorated.Pos.Line != 9 || decorated.Pos.File != "main.lf" {
		t.Fatalf("WithFallbackPos did not fill position: %#v", decorated.Pos)
	}
	if e.Pos != (Pos{}) {
		t.Fatalf("WithFallbackPos mutated the original error's position: %#v", e.Pos)
	}
}

func TestWithFallbackPosLeavesExistingPosition(t *testing.T) {
	original := Pos{File: "inner.lf", Line: 1, Column: 1}
	e := New(PAR015, original, "missing right-hand operand")
	decorated := e.WithFallbackPos(Pos{File: "outer.lf", Line: 9, Column: 1})
	if decorated.Pos != original {
		t.Fatalf("WithFallbackPos overwrote an existing position: got %#v, want %#v", decorated.Pos, original)
	}
}
