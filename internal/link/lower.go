package link

import (
	"github.com/sunholo/leaf/internal/check"
	"github.com/sunholo/leaf/internal/diag"
	"github.com/sunholo/leaf/internal/ir"
)

// lower converts a check.Checked tree into its ir.Entity counterpart
// (spec.md §4.4). Inline-lambda call sites (SPEC_FULL.md supplemented edge
// case #1) are lowered to an ir.InlineCall that carries the lowered lambda
// body and its captures at the call site; no global function entry is made.
func (l *Linker) lower(c check.Checked) (ir.Entity, *diag.Error) {
	switch n := c.(type) {
	case check.Literal:
		return ir.Inlined{Lit: n.Lit}, nil

	case check.Param:
		return ir.Parameter{Index: n.Index}, nil

	case check.Captured:
		return ir.Captured{Index: n.Index}, nil

	case check.Call:
		return l.lowerCall(n)

	case check.If:
		branches := make([]ir.Branch, len(n.Branches))
		for i, b := range n.Branches {
			cond, err := l.lower(b.Cond)
			if err != nil {
				return nil, err
			}
			eval, err := l.lower(b.Eval)
			if err != nil {
				return nil, err
			}
			branches[i] = ir.Branch{Cond: cond, Eval: eval}
		}
		elseEntity, err := l.lower(n.Else)
		if err != nil {
			return nil, err
		}
		return ir.IfExpression{Branches: branches, Else: elseEntity}, nil

	case check.First:
		stmts := make([]ir.Entity, len(n.Stmts))
		for i, s := range n.Stmts {
			e, err := l.lower(s)
			if err != nil {
				return nil, err
			}
			stmts[i] = e
		}
		eval, err := l.lower(n.Eval)
		if err != nil {
			return nil, err
		}
		return ir.FirstStatement{Stmts: stmts, Eval: eval}, nil

	case check.List:
		items := make([]ir.Entity, len(n.Items))
		for i, it := range n.Items {
			e, err := l.lower(it)
			if err != nil {
				return nil, err
			}
			items[i] = e
		}
		return ir.List{Items: items}, nil

	case check.Record:
		fields := make([]ir.Entity, len(n.Fields))
		for i, f := range n.Fields {
			e, err := l.lower(f)
			if err != nil {
				return nil, err
			}
			fields[i] = e
		}
		return ir.ConstructRecord{Fields: fields}, nil

	case check.InlineLambda:
		body, err := l.lower(n.Body)
		if err != nil {
			return nil, err
		}
		return ir.Lambda{Body: body, Captures: n.Captures}, nil

	case check.LambdaPointer:
		return l.lowerLambdaPointer(n)

	case check.Unimplemented:
		return ir.Unimplemented{}, nil

	default:
		return nil, diag.New(diag.LNK001, diag.Pos{}, "unrecognized checked node %T", c)
	}
}

func (l *Linker) lowerCall(n check.Call) (ir.Entity, *diag.Error) {
	args := make([]ir.Entity, len(n.Args))
	for i, a := range n.Args {
		e, err := l.lower(a)
		if err != nil {
			return nil, err
		}
		args[i] = e
	}

	switch n.Target.Kind {
	case check.ToFunction:
		idx, ok := l.globalIndex[moduleFuncKey{n.Target.ModuleID, n.Target.FunctionID}]
		if !ok {
			return nil, diag.New(diag.LNK001, diag.Pos{}, "call target module %d function %d was never registered", n.Target.ModuleID, n.Target.FunctionID)
		}
		return ir.FunctionCall{FunctionIndex: idx, Args: args}, nil

	case check.ToParam:
		return ir.ParameterCall{ParamIndex: n.Target.Index, Args: args}, nil

	case check.ToCaptured:
		return ir.CapturedCall{CapturedIndex: n.Target.Index, Args: args}, nil

	case check.ToBuiltin:
		return ir.RustCall{BuiltinIndex: n.Target.BuiltinIndex, Args: args}, nil

	case check.ToInlineLambda:
		body, err := l.lower(n.Target.LambdaBody)
		if err != nil {
			return nil, err
		}
		return ir.InlineCall{Body: body, Captures: n.Target.LambdaCaptures, Args: args}, nil

	default:
		return nil, diag.New(diag.LNK001, diag.Pos{}, "unrecognized call target kind")
	}
}

// lowerLambdaPointer produces the Value::Function-producing IR node for
// closure conversion (spec.md §4.1's Pass node). A bare function reference
// ("#name") becomes a closure whose body is a FunctionCall to that
// function's global index, forwarding the closure's own parameters, so
// application re-enters it exactly as a direct call would (spec.md §4.5:
// "re-enter into body with the new params"). A partial application
// ("#(f a)") needs a synthetic wrapper that supplies the withheld prefix
// arguments from captured slots and the new trailing arguments from its
// own parameter slots.
func (l *Linker) lowerLambdaPointer(n check.LambdaPointer) (ir.Entity, *diag.Error) {
	// Passing along an already-function-typed parameter or capture (spec.md
	// §4.1's PassFunc resolving to a local binding rather than a module-level
	// function) is an identity: the slot already holds a Value::Function, so
	// no new closure needs constructing.
	switch n.Body.(type) {
	case check.Param, check.Captured:
		return l.lower(n.Body)
	}

	if call, ok := n.Body.(check.Call); ok && call.Target.Kind == check.ToFunction && len(call.Args) == 0 {
		idx, ok := l.globalIndex[moduleFuncKey{call.Target.ModuleID, call.Target.FunctionID}]
		if !ok {
			return nil, diag.New(diag.LNK001, diag.Pos{}, "lambda-pointer target module %d function %d was never registered", call.Target.ModuleID, call.Target.FunctionID)
		}
		// A thin forwarding FunctionCall, not the target's own already-lowered
		// entity: functions are lowered in an unspecified order (reservation
		// happens up front, bodies fill in afterward), so the target's slot
		// in the instruction table may still be empty at this point. Indexing
		// it indirectly through FunctionIndex defers the lookup to call time,
		// when every slot is guaranteed to be populated.
		return ir.LambdaPointer{Body: ir.FunctionCall{FunctionIndex: idx, Args: forwardParams(l.rt.FunctionArity[idx])}, Captures: nil}, nil
	}

	if call, ok := n.Body.(check.Call); ok && call.Target.Kind == check.ToFunction {
		// Partial application: the prefix arguments were type-checked in the
		// enclosing scope, so their lowered form references that scope's
		// Parameter/Captured slots; re-express those as Capturable snapshots
		// relative to this new closure, and splice in fresh Parameter(n)
		// references for the withheld trailing arguments.
		idx, ok := l.globalIndex[moduleFuncKey{call.Target.ModuleID, call.Target.FunctionID}]
		if !ok {
			return nil, diag.New(diag.LNK001, diag.Pos{}, "partial-application target module %d function %d was never registered", call.Target.ModuleID, call.Target.FunctionID)
		}
		prefixArgs := make([]ir.Entity, len(call.Args))
		for i, a := range call.Args {
			e, err := l.lower(a)
			if err != nil {
				return nil, err
			}
			prefixArgs[i] = e
		}
		captures := &captureBuilder{}
		rewritten := make([]ir.Entity, len(prefixArgs))
		for i, e := range prefixArgs {
			rewritten[i] = captures.rewrite(e)
		}
		trailing := forwardParams(l.rt.FunctionArity[idx] - len(prefixArgs))
		body := ir.FunctionCall{FunctionIndex: idx, Args: append(append([]ir.Entity(nil), rewritten...), trailing...)}
		return ir.LambdaPointer{Body: body, Captures: captures.refs}, nil
	}

	// A lambda literal closure-converted directly.
	body, err := l.lower(n.Body)
	if err != nil {
		return nil, err
	}
	return ir.LambdaPointer{Body: body, Captures: n.Captures}, nil
}

// forwardParams builds [Parameter(0), ..., Parameter(n-1)], used to forward
// a wrapper's own parameters straight through to a call it tail-delegates
// to.
func forwardParams(n int) []ir.Entity {
	out := make([]ir.Entity, n)
	for i := range out {
		out[i] = ir.Parameter{Index: i}
	}
	return out
}

// captureBuilder rewrites an already-lowered ir.Entity's Parameter/Captured
// references into Captured references against a freshly accumulated
// capture list, recording the Capturable each new slot snapshots from the
// enclosing frame.
type captureBuilder struct {
	refs []ir.Capturable
}

func (cb *captureBuilder) slotFor(cap ir.Capturable) int {
	for i, existing := range cb.refs {
		if existing == cap {
			return i
		}
	}
	cb.refs = append(cb.refs, cap)
	return len(cb.refs) - 1
}

func (cb *captureBuilder) rewrite(e ir.Entity) ir.Entity {
	switch n := e.(type) {
	case ir.Inlined:
		return n
	case ir.Parameter:
		return ir.Captured{Index: cb.slotFor(ir.Capturable{Kind: ir.ParentParam, Index: n.Index})}
	case ir.Captured:
		return ir.Captured{Index: cb.slotFor(ir.Capturable{Kind: ir.ParentLambda, Index: n.Index})}
	case ir.FunctionCall:
		return ir.FunctionCall{FunctionIndex: n.FunctionIndex, Args: cb.rewriteAll(n.Args)}
	case ir.ParameterCall:
		return ir.ParameterCall{ParamIndex: n.ParamIndex, Args: cb.rewriteAll(n.Args)}
	case ir.CapturedCall:
		return ir.CapturedCall{CapturedIndex: n.CapturedIndex, Args: cb.rewriteAll(n.Args)}
	case ir.RustCall:
		return ir.RustCall{BuiltinIndex: n.BuiltinIndex, Args: cb.rewriteAll(n.Args)}
	case ir.IfExpression:
		branches := make([]ir.Branch, len(n.Branches))
		for i, b := range n.Branches {
			branches[i] = ir.Branch{Cond: cb.rewrite(b.Cond), Eval: cb.rewrite(b.Eval)}
		}
		return ir.IfExpression{Branches: branches, Else: cb.rewrite(n.Else)}
	case ir.FirstStatement:
		return ir.FirstStatement{Stmts: cb.rewriteAll(n.Stmts), Eval: cb.rewrite(n.Eval)}
	case ir.List:
		return ir.List{Items: cb.rewriteAll(n.Items)}
	case ir.ConstructRecord:
		return ir.ConstructRecord{Fields: cb.rewriteAll(n.Fields)}
	default:
		return e
	}
}

func (cb *captureBuilder) rewriteAll(es []ir.Entity) []ir.Entity {
	out := make([]ir.Entity, len(es))
	for i, e := range es {
		out[i] = cb.rewrite(e)
	}
	return out
}
