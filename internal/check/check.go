package check

import (
	"github.com/sunholo/leaf/internal/ast"
	"github.com/sunholo/leaf/internal/bridge"
	"github.com/sunholo/leaf/internal/diag"
	"github.com/sunholo/leaf/internal/ident"
	"github.com/sunholo/leaf/internal/module"
	"github.com/sunholo/leaf/internal/token"
	"github.com/sunholo/leaf/internal/types"
)

// Checker computes the type of an AST node against its enclosing function,
// resolving identifiers via the module table (spec.md §4.2) and bridged
// calls via the bridge table (spec.md §4.6).
type Checker struct {
	Table *module.Table
	Self  int
}

// CheckFunction type-checks fn's body in a scope seeded with fn's own
// declared parameters (spec.md §4.3's "recursively computes the type of an
// AST node against its enclosing function").
func (c *Checker) CheckFunction(fn *module.FunctionBuilder) (Checked, *diag.Error) {
	names := make([]ident.Identifier, len(fn.Params))
	ptypes := make([]types.Type, len(fn.Params))
	for i, p := range fn.Params {
		names[i] = p.Name
		ptypes[i] = p.Type
	}
	sc := newFunctionScope(names, ptypes)
	return c.check(fn.Body, sc, fn)
}

func (c *Checker) check(t ast.Tracked, sc *scope, fn *module.FunctionBuilder) (Checked, *diag.Error) {
	switch n := t.Inner.(type) {
	case ast.Inlined:
		return c.checkInlined(n), nil

	case ast.SingleIdent:
		return c.checkSingleIdent(n, sc, t.At)

	case ast.Call:
		return c.checkCall(n, sc, fn, t.At)

	case ast.Lambda:
		return c.checkInlineLambda(n, sc, fn)

	case ast.Pass:
		return c.checkPass(n, sc, fn, t.At)

	case ast.If:
		return c.checkIf(n, sc, fn, t.At)

	case ast.First:
		return c.checkFirst(n, sc, fn)

	case ast.List:
		return c.checkList(n, sc, fn, t.At)

	case ast.Record:
		return c.checkRecord(n, sc, fn, t.At)

	case ast.Unimplemented:
		return Unimplemented{Typ: fn.ReturnType.Resolve()}, nil

	default:
		return nil, diag.New(diag.CHK004, t.At, "unrecognized entity form %T", t.Inner)
	}
}

func (c *Checker) checkInlined(n ast.Inlined) Checked {
	var typ types.Type
	switch n.Lit.Kind {
	case token.LitInt:
		typ = types.Int()
	case token.LitFloat:
		typ = types.Float()
	case token.LitBool:
		typ = types.Bool()
	default:
		typ = types.Nothing()
	}
	return Literal{Lit: n.Lit, Typ: typ}
}

// checkSingleIdent resolves a bare identifier: a parameter, a capture, or
// a zero-arity function reference (spec.md §4.4's SingleIdent arm).
func (c *Checker) checkSingleIdent(n ast.SingleIdent, sc *scope, pos token.Pos) (Checked, *diag.Error) {
	if kind, idx, typ, ok := sc.resolve(n.Ident); ok {
		if kind == refParam {
			return Param{Index: idx, Typ: typ}, nil
		}
		return Captured{Index: idx, Typ: typ}, nil
	}

	res, err := c.Table.Resolve(n.Ident, nil, c.Self)
	if err != nil {
		return nil, err.WithFallbackPos(pos)
	}
	return Call{
		Target: Target{Kind: ToFunction, ModuleID: res.ModuleID, FunctionID: res.FunctionID, Sub: res.Sub},
		Typ:    res.ReturnType(),
	}, nil
}

func (c *Checker) checkArgs(args []ast.Tracked, sc *scope, fn *module.FunctionBuilder) ([]Checked, []types.Type, *diag.Error) {
	checked := make([]Checked, len(args))
	ptypes := make([]types.Type, len(args))
	for i, a := range args {
		ck, err := c.check(a, sc, fn)
		if err != nil {
			return nil, nil, err
		}
		checked[i] = ck
		ptypes[i] = ck.Type()
	}
	return checked, ptypes, nil
}

func (c *Checker) checkCall(n ast.Call, sc *scope, fn *module.FunctionBuilder, pos token.Pos) (Checked, *diag.Error) {
	args, ptypes, err := c.checkArgs(n.Args, sc, fn)
	if err != nil {
		return nil, err
	}

	switch callee := n.Callee.(type) {
	case ast.CallBuiltin:
		entry, berr := bridge.Lookup(callee.Name.Name)
		if berr != nil {
			return nil, berr.WithFallbackPos(pos)
		}
		rt, rerr := bridge.ReturnType(entry.Ret, ptypes)
		if rerr != nil {
			return nil, rerr.WithFallbackPos(pos)
		}
		return Call{Target: Target{Kind: ToBuiltin, BuiltinIndex: entry.Index}, Args: args, Typ: rt}, nil

	case ast.CallFunc:
		// A call through a parameter/captured slot of Function type takes
		// priority over a module-level lookup (spec.md §4.4).
		if kind, idx, typ, ok := sc.resolve(callee.Name); ok && typ.Kind == types.KFunction {
			if kind == refParam {
				return Call{Target: Target{Kind: ToParam, Index: idx}, Args: args, Typ: *typ.Returns}, nil
			}
			return Call{Target: Target{Kind: ToCaptured, Index: idx}, Args: args, Typ: *typ.Returns}, nil
		}
		res, rerr := c.Table.Resolve(callee.Name, ptypes, c.Self)
		if rerr != nil {
			return nil, rerr.WithFallbackPos(pos)
		}
		return Call{
			Target: Target{Kind: ToFunction, ModuleID: res.ModuleID, FunctionID: res.FunctionID, Sub: res.Sub},
			Args:   args,
			Typ:    res.ReturnType(),
		}, nil

	case ast.CallLambda:
		names := make([]ident.Identifier, len(callee.Params))
		ptyps := make([]types.Type, len(callee.Params))
		for i, p := range callee.Params {
			names[i] = p
			ptyps[i] = types.Generic(0) // parameter types of an inline lambda are not declared; see DESIGN.md
		}
		bodySc := sc.child(names, ptyps)
		body, berr := c.check(callee.Body, bodySc, fn)
		if berr != nil {
			return nil, berr
		}
		return Call{
			Target: Target{Kind: ToInlineLambda, LambdaParams: callee.Params, LambdaBody: body, LambdaCaptures: bodySc.captureRefs},
			Args:   args,
			Typ:    body.Type(),
		}, nil

	default:
		return nil, diag.New(diag.CHK004, pos, "unrecognized callee form %T", n.Callee)
	}
}

func (c *Checker) checkInlineLambda(n ast.Lambda, sc *scope, fn *module.FunctionBuilder) (Checked, *diag.Error) {
	ptyps := make([]types.Type, len(n.Params))
	for i := range n.Params {
		ptyps[i] = types.Generic(0)
	}
	bodySc := sc.child(n.Params, ptyps)
	body, err := c.check(n.Body, bodySc, fn)
	if err != nil {
		return nil, err
	}
	return InlineLambda{
		Body:     body,
		Captures: bodySc.captureRefs,
		Typ:      types.Function(ptyps, body.Type()),
	}, nil
}

// checkPass resolves the closure-conversion marker (spec.md §4.3's
// ByPointer/pass-as-closure rule): the referenced entity's type must be
// Function.
func (c *Checker) checkPass(n ast.Pass, sc *scope, fn *module.FunctionBuilder, pos token.Pos) (Checked, *diag.Error) {
	switch v := n.Value.(type) {
	case ast.PassInlined:
		return nil, diag.New(diag.CHK005, pos, "a literal value is never function-typed")

	case ast.PassFunc:
		if kind, idx, typ, ok := sc.resolve(v.Name); ok {
			if typ.Kind != types.KFunction {
				return nil, diag.New(diag.CHK005, pos, "passed entity %s is not function-typed", v.Name)
			}
			var body Checked
			if kind == refParam {
				body = Param{Index: idx, Typ: typ}
			} else {
				body = Captured{Index: idx, Typ: typ}
			}
			return LambdaPointer{Body: body, Typ: typ}, nil
		}
		res, err := c.Table.ResolveByNameOnly(v.Name, c.Self)
		if err != nil {
			return nil, err.WithFallbackPos(pos)
		}
		paramTypes := res.Func.ParamTypes()
		funcType := types.Function(paramTypes, res.ReturnType())
		return LambdaPointer{
			Body: Call{Target: Target{Kind: ToFunction, ModuleID: res.ModuleID, FunctionID: res.FunctionID}, Typ: res.ReturnType()},
			Typ:  funcType,
		}, nil

	case ast.PassPartial:
		return c.checkPassPartial(v, sc, fn, pos)

	case ast.PassLambda:
		ptyps := make([]types.Type, len(v.Params))
		for i := range v.Params {
			ptyps[i] = types.Generic(0)
		}
		bodySc := sc.child(v.Params, ptyps)
		body, err := c.check(v.Body, bodySc, fn)
		if err != nil {
			return nil, err
		}
		return LambdaPointer{
			Body:     body,
			Captures: bodySc.captureRefs,
			Typ:      types.Function(ptyps, body.Type()),
		}, nil

	default:
		return nil, diag.New(diag.CHK005, pos, "unrecognized passable form %T", n.Value)
	}
}

func (c *Checker) checkPassPartial(v ast.PassPartial, sc *scope, fn *module.FunctionBuilder, pos token.Pos) (Checked, *diag.Error) {
	args, ptypes, err := c.checkArgs(v.Args, sc, fn)
	if err != nil {
		return nil, err
	}
	callFunc, ok := v.Callee.(ast.CallFunc)
	if !ok {
		return nil, diag.New(diag.CHK005, pos, "partial application callee must be a named function")
	}
	res, remaining, rerr := c.Table.ResolvePartial(callFunc.Name, ptypes, c.Self)
	if rerr != nil {
		return nil, rerr.WithFallbackPos(pos)
	}
	funcType := types.Function(remaining, res.ReturnType())
	return LambdaPointer{
		Body: Call{
			Target: Target{Kind: ToFunction, ModuleID: res.ModuleID, FunctionID: res.FunctionID},
			Args:   args,
			Typ:    res.ReturnType(),
		},
		Typ: funcType,
	}, nil
}

func (c *Checker) checkIf(n ast.If, sc *scope, fn *module.FunctionBuilder, pos token.Pos) (Checked, *diag.Error) {
	branches := make([]Branch, len(n.Branches))
	var resultType types.Type
	for i, b := range n.Branches {
		cond, err := c.check(b.Cond, sc, fn)
		if err != nil {
			return nil, err
		}
		if cond.Type().Kind != types.KBool {
			return nil, diag.New(diag.CHK003, b.Cond.At, "if-condition is not Bool")
		}
		eval, err := c.check(b.Eval, sc, fn)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			resultType = eval.Type()
		} else if !eval.Type().Equal(resultType) {
			return nil, diag.New(diag.CHK002, b.Eval.At, "branch type %s does not match %s", eval.Type(), resultType)
		}
		branches[i] = Branch{Cond: cond, Eval: eval}
	}
	elseC, err := c.check(n.Else, sc, fn)
	if err != nil {
		return nil, err
	}
	if !elseC.Type().Equal(resultType) {
		return nil, diag.New(diag.CHK002, n.Else.At, "else type %s does not match %s", elseC.Type(), resultType)
	}
	return If{Branches: branches, Else: elseC, Typ: resultType}, nil
}

func (c *Checker) checkFirst(n ast.First, sc *scope, fn *module.FunctionBuilder) (Checked, *diag.Error) {
	stmts := make([]Checked, len(n.Stmts))
	for i, s := range n.Stmts {
		ck, err := c.check(s, sc, fn)
		if err != nil {
			return nil, err
		}
		stmts[i] = ck
	}
	eval, err := c.check(n.Eval, sc, fn)
	if err != nil {
		return nil, err
	}
	return First{Stmts: stmts, Eval: eval, Typ: eval.Type()}, nil
}

func (c *Checker) checkList(n ast.List, sc *scope, fn *module.FunctionBuilder, pos token.Pos) (Checked, *diag.Error) {
	if len(n.Items) == 0 {
		return List{Typ: types.List(types.Generic(0))}, nil
	}
	items := make([]Checked, len(n.Items))
	var elem types.Type
	for i, it := range n.Items {
		ck, err := c.check(it, sc, fn)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			elem = ck.Type()
		} else if !ck.Type().Equal(elem) {
			return nil, diag.New(diag.CHK001, it.At, "list entry %d has type %s, want %s", i, ck.Type(), elem)
		}
		items[i] = ck
	}
	return List{Items: items, Typ: types.List(elem)}, nil
}

func (c *Checker) checkRecord(n ast.Record, sc *scope, fn *module.FunctionBuilder, pos token.Pos) (Checked, *diag.Error) {
	mod := c.Table.Modules[c.Self]
	tid, ok := mod.TypeIDs[n.TypeName.Name]
	if !ok {
		return nil, diag.New(diag.CHK004, pos, "unknown record type %s", n.TypeName)
	}
	ct := mod.Types[tid]
	if len(ct.Variants) != 1 {
		return nil, diag.New(diag.CHK004, pos, "%s is not a record type", n.TypeName)
	}
	variant := ct.Variants[0]
	if len(variant.Fields) != len(n.Fields) {
		return nil, diag.New(diag.CHK004, pos, "record %s expects %d fields, got %d", n.TypeName, len(variant.Fields), len(n.Fields))
	}
	fields := make([]Checked, len(n.Fields))
	for i, f := range n.Fields {
		ck, err := c.check(f.Value, sc, fn)
		if err != nil {
			return nil, err
		}
		if !ck.Type().Equal(variant.Fields[i]) {
			return nil, diag.New(diag.CHK004, f.Value.At, "field %s has type %s, want %s", f.Name, ck.Type(), variant.Fields[i])
		}
		fields[i] = ck
	}
	return Record{Fields: fields, Typ: types.KnownCustom(c.Self, tid)}, nil
}
