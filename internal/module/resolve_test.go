package module

import (
	"testing"

	"github.com/sunholo/leaf/internal/ident"
	"github.com/sunholo/leaf/internal/types"
)

func pushBackModule() *Table {
	prelude := New(FileSource{Kind: SourcePrelude})
	pushBack := &FunctionBuilder{
		Name: ident.New("push_back"),
		Params: []Param{
			{Name: ident.New("xs"), Type: types.List(types.Generic(0))},
			{Name: ident.New("x"), Type: types.Generic(0)},
		},
		ReturnType: types.Known(types.List(types.Generic(0))),
	}
	prelude.AddFunction("push_back", pushBack)

	return &Table{Modules: []*ParseModule{prelude}, PreludeID: 0}
}

func TestResolveGenericPushBack(t *testing.T) {
	tbl := pushBackModule()
	params := []types.Type{types.List(types.Int()), types.Int()}

	res, err := tbl.Resolve(ident.New("push_back"), params, 0)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.Sub[0].Kind != types.KInt {
		t.Fatalf("expected generic 0 bound to Int, got %s", res.Sub[0])
	}
	want := types.List(types.Int())
	if got := res.ReturnType(); !got.Equal(want) {
		t.Fatalf("ReturnType = %s, want %s", got, want)
	}
}

func TestResolveExactMatchSkipsUnification(t *testing.T) {
	mod := New(FileSource{Kind: SourceProjectRelative, Path: "main.lf"})
	add := &FunctionBuilder{
		Name:       ident.New("add"),
		Params:     []Param{{Name: ident.New("a"), Type: types.Int()}, {Name: ident.New("b"), Type: types.Int()}},
		ReturnType: types.Known(types.Int()),
	}
	mod.AddFunction("add", add)
	tbl := &Table{Modules: []*ParseModule{mod}, PreludeID: 0}

	res, err := tbl.Resolve(ident.New("add"), []types.Type{types.Int(), types.Int()}, 0)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.Sub != nil {
		t.Fatalf("exact match should carry no substitution, got %v", res.Sub)
	}
}

func TestResolveFallsBackToPrelude(t *testing.T) {
	tbl := pushBackModule()
	userMod := New(FileSource{Kind: SourceProjectRelative, Path: "main.lf"})
	tbl.Modules = append(tbl.Modules, userMod)
	userFid := len(tbl.Modules) - 1

	params := []types.Type{types.List(types.Int()), types.Int()}
	res, err := tbl.Resolve(ident.New("push_back"), params, userFid)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.ModuleID != tbl.PreludeID {
		t.Fatalf("expected resolution in prelude module %d, got %d", tbl.PreludeID, res.ModuleID)
	}
}

func TestResolveUnknownFunctionRewritesToCallerModule(t *testing.T) {
	tbl := pushBackModule()
	userMod := New(FileSource{Kind: SourceProjectRelative, Path: "main.lf"})
	tbl.Modules = append(tbl.Modules, userMod)
	userFid := len(tbl.Modules) - 1

	_, err := tbl.Resolve(ident.New("no_such_fn"), nil, userFid)
	if err == nil {
		t.Fatalf("expected an error")
	}
	if err.Code != "MOD002" {
		t.Fatalf("expected MOD002, got %s", err.Code)
	}
}

func TestResolveVariantNotFound(t *testing.T) {
	tbl := pushBackModule()
	_, err := tbl.Resolve(ident.New("push_back"), []types.Type{types.Bool(), types.Bool(), types.Bool()}, 0)
	if err == nil || err.Code != "MOD003" {
		t.Fatalf("expected MOD003, got %v", err)
	}
}
