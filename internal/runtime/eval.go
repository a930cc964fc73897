package runtime

import (
	"fmt"
	"io"

	"github.com/sunholo/leaf/internal/diag"
	"github.com/sunholo/leaf/internal/ir"
	"github.com/sunholo/leaf/internal/link"
	"github.com/sunholo/leaf/internal/token"
)

// frame is one call's evaluation state (spec.md §4.5): a reference to the
// whole instruction table, the entity currently being evaluated, and the
// parameter/capture buffers it runs against.
//
// trace, when non-nil, receives one line per FunctionCall tail rewrite
// (cmd/leaf's "--trace" flag, mirroring ailang's cmd/ailang "-trace" flag
// idiom); depth counts the FunctionCall rewrites made so far along f's
// chain of frames (a sub-frame starts at its parent's depth).
type frame struct {
	rt       *link.Runtime
	entity   ir.Entity
	params   []Value
	captured []Value
	trace    io.Writer
	depth    int
}

// Eval is the evaluator entry point (spec.md §6): given a linked Runtime,
// an entrypoint entity, and its initial parameters, produces a single
// Value.
func Eval(rt *link.Runtime, entry ir.Entity, params []Value) (Value, *diag.Error) {
	return run(&frame{rt: rt, entity: entry, params: params})
}

// EvalTraced is Eval with tail-rewrite tracing turned on: every time the
// loop in run rewrites a frame for a FunctionCall, it writes one line to
// trace naming the function index entered and the current frame depth.
// ParameterCall, CapturedCall and InlineCall rewrites write no line.
func EvalTraced(rt *link.Runtime, entry ir.Entity, params []Value, trace io.Writer) (Value, *diag.Error) {
	return run(&frame{rt: rt, entity: entry, params: params, trace: trace})
}

func (f *frame) traceEnter(fid int) {
	if f.trace == nil {
		return
	}
	fmt.Fprintf(f.trace, "trace: depth=%d fid=%d\n", f.depth, fid)
}

// run is the single loop spec.md §4.5 describes: it rewrites f's own
// fields in place for every tail position, so self- and mutual-recursive
// tail calls run at constant native stack depth.
func run(f *frame) (Value, *diag.Error) {
	for {
		switch n := f.entity.(type) {
		case ir.Inlined:
			return inlinedValue(n.Lit), nil

		case ir.Parameter:
			return clone(f.params[n.Index]), nil

		case ir.Captured:
			return clone(f.captured[n.Index]), nil

		case ir.FunctionCall:
			args, err := evalArgs(f, n.Args)
			if err != nil {
				return nil, err
			}
			if n.FunctionIndex < 0 || n.FunctionIndex >= len(f.rt.Instructions) {
				return nil, diag.New(diag.RUN002, diag.Pos{}, "function index %d out of range", n.FunctionIndex)
			}
			f.traceEnter(n.FunctionIndex)
			f.entity = f.rt.Instructions[n.FunctionIndex]
			f.params = args
			f.captured = nil
			f.depth++
			continue

		case ir.ParameterCall:
			args, err := evalArgs(f, n.Args)
			if err != nil {
				return nil, err
			}
			fn, ok := f.params[n.ParamIndex].(Function)
			if !ok {
				return nil, diag.New(diag.RUN002, diag.Pos{}, "parameter %d does not hold a function value", n.ParamIndex)
			}
			f.entity = fn.Body
			f.params = args
			f.captured = fn.Captured
			continue

		case ir.CapturedCall:
			args, err := evalArgs(f, n.Args)
			if err != nil {
				return nil, err
			}
			fn, ok := f.captured[n.CapturedIndex].(Function)
			if !ok {
				return nil, diag.New(diag.RUN002, diag.Pos{}, "captured slot %d does not hold a function value", n.CapturedIndex)
			}
			f.entity = fn.Body
			f.params = args
			f.captured = fn.Captured
			continue

		case ir.RustCall:
			args, err := evalArgs(f, n.Args)
			if err != nil {
				return nil, err
			}
			return dispatchBuiltin(n.BuiltinIndex, args)

		case ir.InlineCall:
			// Args and captures are both evaluated against the frame as it
			// stands before the call, then the frame is rewritten in place
			// (spec.md §3: Callable includes "lambda-literal" as a direct
			// call target, tail-eliminated the same way a FunctionCall is).
			args, err := evalArgs(f, n.Args)
			if err != nil {
				return nil, err
			}
			captured, err := snapshotCaptures(f, n.Captures)
			if err != nil {
				return nil, err
			}
			f.entity = n.Body
			f.params = args
			f.captured = captured
			continue

		case ir.IfExpression:
			next, err := chooseBranch(f, n)
			if err != nil {
				return nil, err
			}
			f.entity = next
			continue

		case ir.FirstStatement:
			for _, s := range n.Stmts {
				if _, err := evalSub(f, s); err != nil {
					return nil, err
				}
			}
			f.entity = n.Eval
			continue

		case ir.List:
			items := make([]Value, len(n.Items))
			for i, it := range n.Items {
				v, err := evalSub(f, it)
				if err != nil {
					return nil, err
				}
				items[i] = clone(v)
			}
			return List{Items: items}, nil

		case ir.ConstructRecord:
			fields := make([]Value, len(n.Fields))
			for i, fld := range n.Fields {
				v, err := evalSub(f, fld)
				if err != nil {
					return nil, err
				}
				fields[i] = clone(v)
			}
			return Struct{Fields: fields}, nil

		case ir.Lambda:
			captured, err := snapshotCaptures(f, n.Captures)
			if err != nil {
				return nil, err
			}
			f.entity = n.Body
			f.captured = captured
			continue

		case ir.LambdaPointer:
			captured, err := snapshotCaptures(f, n.Captures)
			if err != nil {
				return nil, err
			}
			return Function{Body: n.Body, Captured: captured}, nil

		case ir.Unimplemented:
			return nil, diag.New(diag.RUN001, diag.Pos{}, "reached an unimplemented node")

		default:
			return nil, diag.New(diag.RUN001, diag.Pos{}, "unrecognized instruction node %T", f.entity)
		}
	}
}

// evalSub evaluates entity in a fresh sub-frame sharing the current
// frame's params/captured (spec.md §4.5: "evaluate ... in sub-frames using
// the current params/captured").
func evalSub(f *frame, entity ir.Entity) (Value, *diag.Error) {
	return run(&frame{rt: f.rt, entity: entity, params: f.params, captured: f.captured, trace: f.trace, depth: f.depth})
}

func evalArgs(f *frame, args []ir.Entity) ([]Value, *diag.Error) {
	out := make([]Value, len(args))
	for i, a := range args {
		v, err := evalSub(f, a)
		if err != nil {
			return nil, err
		}
		out[i] = clone(v)
	}
	return out, nil
}

// chooseBranch evaluates each branch condition in turn, returning the
// first matching branch's body, or the else body if none match.
func chooseBranch(f *frame, n ir.IfExpression) (ir.Entity, *diag.Error) {
	for _, b := range n.Branches {
		cond, err := evalSub(f, b.Cond)
		if err != nil {
			return nil, err
		}
		boolCond, ok := cond.(Bool)
		if !ok {
			return nil, diag.New(diag.RUN002, diag.Pos{}, "if condition evaluated to a non-bool value")
		}
		if boolCond.V {
			return b.Eval, nil
		}
	}
	return n.Else, nil
}

// snapshotCaptures builds a Lambda/LambdaPointer's capture vector from the
// enclosing frame, per the Capturable tags its checker phase assigned
// (spec.md §4.1's Capturable, spec.md §3 "ParentParam/ParentLambda").
func snapshotCaptures(f *frame, capturables []ir.Capturable) ([]Value, *diag.Error) {
	out := make([]Value, len(capturables))
	for i, c := range capturables {
		switch c.Kind {
		case ir.ParentParam:
			out[i] = clone(f.params[c.Index])
		case ir.ParentLambda:
			out[i] = clone(f.captured[c.Index])
		case ir.ParentWhere:
			return nil, diag.New(diag.RUN002, diag.Pos{}, "capturing a where-bound name is not supported")
		default:
			return nil, diag.New(diag.RUN002, diag.Pos{}, "unrecognized capturable kind")
		}
	}
	return out, nil
}

func inlinedValue(lit token.Inlined) Value {
	switch lit.Kind {
	case token.LitInt:
		return Int{V: lit.Int}
	case token.LitFloat:
		return Float{V: lit.Flt}
	case token.LitBool:
		return Bool{V: lit.Bool}
	default:
		return Nothing{}
	}
}
