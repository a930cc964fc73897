package ast

import (
	"testing"

	"github.com/sunholo/leaf/internal/ident"
	"github.com/sunholo/leaf/internal/token"
)

func lit(i int64) Tracked {
	return NewTracked(Inlined{Lit: token.Inlined{Kind: token.LitInt, Int: i}}, token.Pos{})
}

// TestPrintIgnoresPosition is spec.md §8 property 1's round-trip check
// as it applies to Print itself: two Entity trees that differ only in
// position must print identically, since Print discards Tracked.At.
func TestPrintIgnoresPosition(t *testing.T) {
	a := NewTracked(Inlined{Lit: token.Inlined{Kind: token.LitInt, Int: 5}}, token.Pos{Line: 1, Column: 1})
	b := NewTracked(Inlined{Lit: token.Inlined{Kind: token.LitInt, Int: 5}}, token.Pos{Line: 99, Column: 7})
	if Print(a.Inner) != Print(b.Inner) {
		t.Fatalf("Print differs by position:\n%s\nvs\n%s", Print(a.Inner), Print(b.Inner))
	}
}

func TestPrintIsStableAcrossRepeatedCalls(t *testing.T) {
	e := Call{
		Callee: CallBuiltin{Name: ident.Identifier{Name: "add"}},
		Args:   []Tracked{lit(1), lit(2)},
	}
	if Print(e) != Print(e) {
		t.Fatalf("Print not stable across repeated calls on the same tree")
	}
}

func TestPrintDistinguishesCalleeKinds(t *testing.T) {
	builtin := Print(Call{Callee: CallBuiltin{Name: ident.Identifier{Name: "add"}}, Args: []Tracked{lit(1)}})
	userFn := Print(Call{Callee: CallFunc{Name: ident.Identifier{Name: "add"}}, Args: []Tracked{lit(1)}})
	if builtin == userFn {
		t.Fatalf("CallBuiltin and CallFunc printed identically, want distinguishable output:\n%s", builtin)
	}
}

func TestPrintRecordPreservesFieldOrder(t *testing.T) {
	rec := Record{
		TypeName: ident.Identifier{Name: "Point"},
		Fields: []RecordField{
			{Name: "x", Value: lit(1)},
			{Name: "y", Value: lit(2)},
		},
	}
	out := Print(rec)
	xIdx := indexOf(out, `"name": "x"`)
	yIdx := indexOf(out, `"name": "y"`)
	if xIdx < 0 || yIdx < 0 || xIdx > yIdx {
		t.Fatalf("expected field x before y in printed output:\n%s", out)
	}
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
