package bridge

import (
	"testing"

	"github.com/sunholo/leaf/internal/types"
)

func TestLookupKnownNames(t *testing.T) {
	for _, name := range []string{"add", "sub", "mul", "div", "push_back", "push_front", "get", "len", "eq", "lt"} {
		if _, err := Lookup(name); err != nil {
			t.Fatalf("Lookup(%q): %v", name, err)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, err := Lookup("nope"); err == nil || err.Code != "MOD004" {
		t.Fatalf("expected MOD004, got %v", err)
	}
}

func TestReturnTypePushBack(t *testing.T) {
	e, err := Lookup("push_back")
	if err != nil {
		t.Fatal(err)
	}
	rt, rerr := ReturnType(e.Ret, []types.Type{types.List(types.Int()), types.Int()})
	if rerr != nil {
		t.Fatal(rerr)
	}
	want := types.List(types.Int())
	if !rt.Equal(want) {
		t.Fatalf("ReturnType = %s, want %s", rt, want)
	}
}

func TestReturnTypeGetUnlistsElementType(t *testing.T) {
	e, err := Lookup("get")
	if err != nil {
		t.Fatal(err)
	}
	rt, rerr := ReturnType(e.Ret, []types.Type{types.Int(), types.List(types.Bool())})
	if rerr != nil {
		t.Fatal(rerr)
	}
	if !rt.Equal(types.Bool()) {
		t.Fatalf("ReturnType = %s, want bool", rt)
	}
}

func TestReturnTypeLenIsKnownInt(t *testing.T) {
	e, err := Lookup("len")
	if err != nil {
		t.Fatal(err)
	}
	rt, rerr := ReturnType(e.Ret, []types.Type{types.List(types.Int())})
	if rerr != nil {
		t.Fatal(rerr)
	}
	if !rt.Equal(types.Int()) {
		t.Fatalf("ReturnType = %s, want int", rt)
	}
}

func TestReturnTypeAddMatchesParamZero(t *testing.T) {
	e, err := Lookup("add")
	if err != nil {
		t.Fatal(err)
	}
	rt, rerr := ReturnType(e.Ret, []types.Type{types.Float(), types.Float()})
	if rerr != nil {
		t.Fatal(rerr)
	}
	if !rt.Equal(types.Float()) {
		t.Fatalf("ReturnType = %s, want float", rt)
	}
}

func TestReturnTypeEqIsKnownBool(t *testing.T) {
	e, err := Lookup("eq")
	if err != nil {
		t.Fatal(err)
	}
	rt, rerr := ReturnType(e.Ret, []types.Type{types.Int(), types.Int()})
	if rerr != nil {
		t.Fatal(rerr)
	}
	if !rt.Equal(types.Bool()) {
		t.Fatalf("ReturnType = %s, want bool", rt)
	}
}
