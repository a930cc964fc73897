package link

import (
	"github.com/sunholo/leaf/internal/diag"
	"github.com/sunholo/leaf/internal/ir"
)

// validateEntity walks entity and its whole subtree, checking the link
// invariants spec.md §3 lists against the given enclosing function's own
// arity and the program's total instruction count.
func validateEntity(entity ir.Entity, numInstructions int, arity int) *diag.Error {
	return walk(entity, numInstructions, arity, true, 0)
}

// walk checks one entity against its enclosing scope's parameter arity (if
// arityKnown; a Lambda/LambdaPointer's body is invoked later through a
// ParameterCall/CapturedCall whose argument count isn't visible here, so its
// own Parameter references go unchecked at link time the same way a
// function pointer's eventual call arity does) and its capture-list length
// numCaptures.
func walk(entity ir.Entity, numInstructions int, arity int, arityKnown bool, numCaptures int) *diag.Error {
	switch n := entity.(type) {
	case ir.Inlined:
		return nil

	case ir.Parameter:
		if !arityKnown {
			return nil
		}
		if n.Index < 0 || n.Index >= arity {
			return diag.New(diag.LNK002, diag.Pos{}, "parameter index %d out of range for arity %d", n.Index, arity)
		}
		return nil

	case ir.Captured:
		if n.Index < 0 || n.Index >= numCaptures {
			return diag.New(diag.LNK003, diag.Pos{}, "captured index %d out of range for capture list of length %d", n.Index, numCaptures)
		}
		return nil

	case ir.FunctionCall:
		if n.FunctionIndex < 0 || n.FunctionIndex >= numInstructions {
			return diag.New(diag.LNK001, diag.Pos{}, "function call index %d out of range (have %d instructions)", n.FunctionIndex, numInstructions)
		}
		return walkAll(n.Args, numInstructions, arity, arityKnown, numCaptures)

	case ir.ParameterCall:
		if arityKnown && (n.ParamIndex < 0 || n.ParamIndex >= arity) {
			return diag.New(diag.LNK002, diag.Pos{}, "parameter-call index %d out of range for arity %d", n.ParamIndex, arity)
		}
		return walkAll(n.Args, numInstructions, arity, arityKnown, numCaptures)

	case ir.CapturedCall:
		if n.CapturedIndex < 0 || n.CapturedIndex >= numCaptures {
			return diag.New(diag.LNK003, diag.Pos{}, "captured-call index %d out of range for capture list of length %d", n.CapturedIndex, numCaptures)
		}
		return walkAll(n.Args, numInstructions, arity, arityKnown, numCaptures)

	case ir.RustCall:
		return walkAll(n.Args, numInstructions, arity, arityKnown, numCaptures)

	case ir.IfExpression:
		if len(n.Branches) == 0 {
			return diag.New(diag.LNK001, diag.Pos{}, "if expression has no branches")
		}
		if n.Else == nil {
			return diag.New(diag.LNK001, diag.Pos{}, "if expression has no else")
		}
		for _, b := range n.Branches {
			if err := walk(b.Cond, numInstructions, arity, arityKnown, numCaptures); err != nil {
				return err
			}
			if err := walk(b.Eval, numInstructions, arity, arityKnown, numCaptures); err != nil {
				return err
			}
		}
		return walk(n.Else, numInstructions, arity, arityKnown, numCaptures)

	case ir.FirstStatement:
		for _, s := range n.Stmts {
			if err := walk(s, numInstructions, arity, arityKnown, numCaptures); err != nil {
				return err
			}
		}
		return walk(n.Eval, numInstructions, arity, arityKnown, numCaptures)

	case ir.List:
		return walkAll(n.Items, numInstructions, arity, arityKnown, numCaptures)

	case ir.ConstructRecord:
		return walkAll(n.Fields, numInstructions, arity, arityKnown, numCaptures)

	case ir.Lambda:
		return walk(n.Body, numInstructions, 0, false, len(n.Captures))

	case ir.LambdaPointer:
		return walk(n.Body, numInstructions, 0, false, len(n.Captures))

	case ir.InlineCall:
		// The lambda-literal's own body is invoked with exactly len(Args)
		// parameters, known right here, unlike a closure value invoked
		// indirectly through a slot.
		if err := walkAll(n.Args, numInstructions, arity, arityKnown, numCaptures); err != nil {
			return err
		}
		return walk(n.Body, numInstructions, len(n.Args), true, len(n.Captures))

	case ir.Unimplemented:
		return nil

	default:
		return diag.New(diag.LNK001, diag.Pos{}, "unrecognized instruction node %T", entity)
	}
}

func walkAll(entities []ir.Entity, numInstructions int, arity int, arityKnown bool, numCaptures int) *diag.Error {
	for _, e := range entities {
		if err := walk(e, numInstructions, arity, arityKnown, numCaptures); err != nil {
			return err
		}
	}
	return nil
}
