package parser

import (
	"testing"

	"github.com/sunholo/leaf/internal/ast"
	"github.com/sunholo/leaf/internal/token"
)

func parseChunk(t *testing.T, src string) ast.Tracked {
	t.Helper()
	stream := token.NewStream([]byte(src), "<test>")
	v, err := New(stream).ParseChunk()
	if err != nil {
		t.Fatalf("ParseChunk(%q): %v", src, err)
	}
	return v
}

// TestParseIsDeterministic is spec.md §8 property 1 ("parse -> print ->
// re-parse -> same Entity") exercised the way ast.Print itself is usable
// here: Print strips position information, so two independent parses of
// the same source must print identically.
func TestParseIsDeterministic(t *testing.T) {
	srcs := []string{
		"1 + 2",
		"if builtin:eq n 0 then 1 else builtin:mul n 2",
		"first 99 and 100 then 7",
		"[1, 2, 3]",
		"\\n -> builtin:add n 10",
	}
	for _, src := range srcs {
		a := ast.Print(parseChunk(t, src).Inner)
		b := ast.Print(parseChunk(t, src).Inner)
		if a != b {
			t.Errorf("parse(%q) not deterministic:\n%s\nvs\n%s", src, a, b)
		}
	}
}

// TestParenthesizedExpressionMatchesBare is spec.md §8 property 2:
// "(e) and e parse to the same Entity".
func TestParenthesizedExpressionMatchesBare(t *testing.T) {
	bare := ast.Print(parseChunk(t, "builtin:add 1 2").Inner)
	paren := ast.Print(parseChunk(t, "(builtin:add 1 2)").Inner)
	if bare != paren {
		t.Errorf("(e) != e:\nbare:\n%s\nparen:\n%s", bare, paren)
	}
}

// TestIfElifElseHasTwoBranchesAndElse is spec.md §8 property 3:
// "if c1 then e1 elif c2 then e2 else e3 parses to exactly two branches
// and an else".
func TestIfElifElseHasTwoBranchesAndElse(t *testing.T) {
	v := parseChunk(t, "if builtin:lt n 0 then 0 elif builtin:eq n 0 then 1 else 2")
	ifNode, ok := v.Inner.(ast.If)
	if !ok {
		t.Fatalf("parsed %T, want ast.If", v.Inner)
	}
	if len(ifNode.Branches) != 2 {
		t.Fatalf("got %d branches, want 2", len(ifNode.Branches))
	}
	elseLit, ok := ifNode.Else.Inner.(ast.Inlined)
	if !ok || elseLit.Lit.Int != 2 {
		t.Fatalf("else = %#v, want literal 2", ifNode.Else.Inner)
	}
}

// TestFirstAndThenHasTwoStmtsAndEval is spec.md §8 property 4:
// "first x and y then z parses to two 'to_void' entries and z as eval".
func TestFirstAndThenHasTwoStmtsAndEval(t *testing.T) {
	v := parseChunk(t, "first 99 and 100 then 7")
	first, ok := v.Inner.(ast.First)
	if !ok {
		t.Fatalf("parsed %T, want ast.First", v.Inner)
	}
	if len(first.Stmts) != 2 {
		t.Fatalf("got %d stmts, want 2", len(first.Stmts))
	}
	evalLit, ok := first.Eval.Inner.(ast.Inlined)
	if !ok || evalLit.Lit.Int != 7 {
		t.Fatalf("eval = %#v, want literal 7", first.Eval.Inner)
	}
}

func TestQualifiedIdentifierBecomesCallBuiltin(t *testing.T) {
	v := parseChunk(t, "builtin:add 1 2")
	call, ok := v.Inner.(ast.Call)
	if !ok {
		t.Fatalf("parsed %T, want ast.Call", v.Inner)
	}
	if _, ok := call.Callee.(ast.CallBuiltin); !ok {
		t.Fatalf("callee = %T, want ast.CallBuiltin", call.Callee)
	}
	if len(call.Args) != 2 {
		t.Fatalf("got %d args, want 2", len(call.Args))
	}
}

func TestClosureConversionWrapsLambdaInPass(t *testing.T) {
	v := parseChunk(t, "apply #(\\n -> builtin:add n 10)")
	call, ok := v.Inner.(ast.Call)
	if !ok || len(call.Args) != 1 {
		t.Fatalf("parsed %#v, want ast.Call with one argument", v.Inner)
	}
	pass, ok := call.Args[0].Inner.(ast.Pass)
	if !ok {
		t.Fatalf("argument = %T, want ast.Pass", call.Args[0].Inner)
	}
	if _, ok := pass.Value.(ast.PassLambda); !ok {
		t.Fatalf("pass value = %T, want ast.PassLambda", pass.Value)
	}
}
