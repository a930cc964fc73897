package link

import (
	"testing"

	"github.com/sunholo/leaf/internal/check"
	"github.com/sunholo/leaf/internal/ident"
	"github.com/sunholo/leaf/internal/ir"
	"github.com/sunholo/leaf/internal/module"
	"github.com/sunholo/leaf/internal/types"
)

// buildTwoFunctionModule constructs a module with two already-checked
// functions: double(n) = add(n, n) and quad(n) = double(double(n)), so
// linking has to resolve one function calling another by global index.
func buildTwoFunctionModule() (*module.ParseModule, map[int]check.Checked) {
	mod := module.New(module.FileSource{Kind: module.SourceProjectRelative, Path: "m.lf"})

	double := &module.FunctionBuilder{
		Name:       ident.New("double"),
		Params:     []module.Param{{Name: ident.New("n"), Type: types.Int()}},
		ReturnType: types.Known(types.Int()),
	}
	doubleFid := mod.AddFunction("double", double)

	quad := &module.FunctionBuilder{
		Name:       ident.New("quad"),
		Params:     []module.Param{{Name: ident.New("n"), Type: types.Int()}},
		ReturnType: types.Known(types.Int()),
	}
	quadFid := mod.AddFunction("quad", quad)

	checkedDouble := check.Call{
		Target: check.Target{Kind: check.ToBuiltin, BuiltinIndex: 0},
		Args: []check.Checked{
			check.Param{Index: 0, Typ: types.Int()},
			check.Param{Index: 0, Typ: types.Int()},
		},
		Typ: types.Int(),
	}

	checkedQuad := check.Call{
		Target: check.Target{Kind: check.ToFunction, ModuleID: 0, FunctionID: doubleFid},
		Args: []check.Checked{
			check.Call{
				Target: check.Target{Kind: check.ToFunction, ModuleID: 0, FunctionID: doubleFid},
				Args:   []check.Checked{check.Param{Index: 0, Typ: types.Int()}},
				Typ:    types.Int(),
			},
		},
		Typ: types.Int(),
	}

	return mod, map[int]check.Checked{doubleFid: checkedDouble, quadFid: checkedQuad}
}

func TestLinkModulesResolvesCrossFunctionCalls(t *testing.T) {
	mod, checked := buildTwoFunctionModule()
	l := New()
	rt, err := l.LinkModules([]*module.ParseModule{mod}, []map[int]check.Checked{checked})
	if err != nil {
		t.Fatalf("LinkModules: %v", err)
	}
	if len(rt.Instructions) != 2 {
		t.Fatalf("expected 2 instructions, got %d", len(rt.Instructions))
	}

	quadEntity := rt.Instructions[1]
	call, ok := quadEntity.(ir.FunctionCall)
	if !ok {
		t.Fatalf("expected quad to lower to a FunctionCall, got %T", quadEntity)
	}
	if call.FunctionIndex != 0 {
		t.Fatalf("quad should call double at index 0, got %d", call.FunctionIndex)
	}
	inner, ok := call.Args[0].(ir.FunctionCall)
	if !ok || inner.FunctionIndex != 0 {
		t.Fatalf("expected quad's argument to itself be a call to double, got %#v", call.Args[0])
	}
}

func TestLinkModulesRejectsOutOfRangeParameter(t *testing.T) {
	mod := module.New(module.FileSource{Kind: module.SourceProjectRelative, Path: "m.lf"})
	fn := &module.FunctionBuilder{Name: ident.New("f"), ReturnType: types.Known(types.Int())}
	fid := mod.AddFunction("f", fn)

	badChecked := check.Call{
		Target: check.Target{Kind: check.ToBuiltin, BuiltinIndex: 0},
		Args:   []check.Checked{check.Param{Index: 5, Typ: types.Int()}},
		Typ:    types.Int(),
	}

	l := New()
	_, err := l.LinkModules([]*module.ParseModule{mod}, []map[int]check.Checked{{fid: badChecked}})
	if err == nil || err.Code != "LNK002" {
		t.Fatalf("expected LNK002, got %v", err)
	}
}
