package repl

import "testing"

func TestSessionEvalsArithmeticExpression(t *testing.T) {
	s, err := NewSession()
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	res, eerr := s.Eval("builtin:add 20 22")
	if eerr != nil {
		t.Fatalf("Eval: %v", eerr)
	}
	if res.Kind != ResultValue || res.Value.String() != "42" {
		t.Fatalf("got %+v, want value 42", res)
	}
}

func TestSessionDeclarationThenUse(t *testing.T) {
	s, err := NewSession()
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	res, eerr := s.Eval("fn square n (int -> int)\n  builtin:mul n n\n")
	if eerr != nil {
		t.Fatalf("Eval(declaration): %v", eerr)
	}
	if res.Kind != ResultDeclaration || len(res.Declared) != 1 || res.Declared[0] != "square" {
		t.Fatalf("got %+v, want declaration of square", res)
	}

	val, eerr := s.Eval("square 6")
	if eerr != nil {
		t.Fatalf("Eval(use): %v", eerr)
	}
	if val.Kind != ResultValue || val.Value.String() != "36" {
		t.Fatalf("got %+v, want value 36", val)
	}
}

func TestSessionUsesPreludeHelper(t *testing.T) {
	s, err := NewSession()
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	res, eerr := s.Eval("max 3 9")
	if eerr != nil {
		t.Fatalf("Eval: %v", eerr)
	}
	if res.Value.String() != "9" {
		t.Fatalf("got %v, want 9", res.Value)
	}
}

func TestSessionRollsBackFailedDeclaration(t *testing.T) {
	s, err := NewSession()
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	if _, eerr := s.Eval("fn broken n (int -> int)\n  no_such_function n\n"); eerr == nil {
		t.Fatalf("expected a function-not-found error")
	}

	// A later, unrelated declaration must still succeed: the failed one
	// must not have left the session wedged.
	res, eerr := s.Eval("fn ok n (int -> int)\n  builtin:mul n 2\n")
	if eerr != nil {
		t.Fatalf("Eval after rollback: %v", eerr)
	}
	if res.Kind != ResultDeclaration || res.Declared[0] != "ok" {
		t.Fatalf("got %+v, want declaration of ok", res)
	}
}
