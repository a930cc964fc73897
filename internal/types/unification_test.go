package types

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestUnifyGenericBindsOnFirstUse(t *testing.T) {
	declared := List(Generic(0))
	actual := List(Int())

	sub, ok := Unify(declared, actual, Substitution{})
	if !ok {
		t.Fatalf("expected unification to succeed")
	}
	if got := sub[0]; !got.Equal(Int()) {
		t.Fatalf("expected generic 0 bound to int, got %s", got)
	}
}

func TestUnifyGenericRejectsInconsistentBinding(t *testing.T) {
	// push_back : [a] a -> [a]; calling with a list of Int and a Bool value
	// must fail because "a" can't be both.
	declaredParams := []Type{List(Generic(0)), Generic(0)}
	actualParams := []Type{List(Int()), Bool()}

	if _, ok := UnifyAll(declaredParams, actualParams); ok {
		t.Fatalf("expected inconsistent generic binding to fail unification")
	}
}

func TestUnifyAllPushBack(t *testing.T) {
	// push_back : [a] a -> [a], called as push_back [1,2] 3
	declaredParams := []Type{List(Generic(0)), Generic(0)}
	actualParams := []Type{List(Int()), Int()}

	sub, ok := UnifyAll(declaredParams, actualParams)
	if !ok {
		t.Fatalf("expected push_back's generic to unify with int")
	}
	returnType := Apply(sub, List(Generic(0)))
	if !returnType.Equal(List(Int())) {
		t.Fatalf("expected return type [int], got %s", returnType)
	}
}

func TestCellDeferredUntilFilled(t *testing.T) {
	cell := NewCell()
	mt := Deferred(cell)
	if !mt.IsDeferred() {
		t.Fatalf("expected cell to start deferred")
	}
	if !mt.Resolve().Equal(Nothing()) {
		t.Fatalf("expected unfilled cell to resolve to Nothing")
	}
	cell.Fill(Int())
	if mt.IsDeferred() {
		t.Fatalf("expected cell to no longer be deferred once filled")
	}
	if !mt.Resolve().Equal(Int()) {
		t.Fatalf("expected filled cell to resolve to int")
	}
}

func TestTypeEqualityIsStructural(t *testing.T) {
	a := List(Function([]Type{Int(), Bool()}, Int()))
	b := List(Function([]Type{Int(), Bool()}, Int()))
	if diff := cmp.Diff(a.String(), b.String()); diff != "" {
		t.Fatalf("unexpected diff (-a +b):\n%s", diff)
	}
	if !a.Equal(b) {
		t.Fatalf("expected structurally identical types to be Equal")
	}
}
