// Package link flattens every module's checked functions into one global,
// flat instruction table (spec.md §3, "Runtime") indexed by global
// function id, validating the link invariants spec.md §3 lists: every
// FunctionCall index in range, every Parameter index within its enclosing
// arity, every Captured index within its capture list, every If carrying
// at least one branch and an else.
//
// Grounded on the teacher's internal/link package: the same
// module-table-to-flat-instruction-array flattening shape, reduced from
// its dictionary-passing ANF output down to the tree-shaped IR spec.md §3
// names.
package link

import (
	"github.com/sunholo/leaf/internal/check"
	"github.com/sunholo/leaf/internal/diag"
	"github.com/sunholo/leaf/internal/ir"
	"github.com/sunholo/leaf/internal/module"
)

// Runtime is the linked program spec.md §3 describes: a flat instruction
// table indexed by global function id.
type Runtime struct {
	Instructions []ir.Entity

	// FunctionArity records each global function index's parameter count,
	// used to validate Parameter(n) against its enclosing arity (spec.md §3).
	FunctionArity []int
}

type moduleFuncKey struct {
	ModuleID   int
	FunctionID int
}

// Linker assigns global function indices and lowers every checked body
// into the flat instruction table.
type Linker struct {
	rt          Runtime
	globalIndex map[moduleFuncKey]int
}

// New creates an empty Linker.
func New() *Linker {
	return &Linker{globalIndex: make(map[moduleFuncKey]int)}
}

// LinkModules reserves a global index for every declared function across
// modules (in module-id, then function-id order), then lowers each
// checked body into the flat instruction table.
func (l *Linker) LinkModules(modules []*module.ParseModule, checkedByModule []map[int]check.Checked) (*Runtime, *diag.Error) {
	for mid, mod := range modules {
		for fid, fn := range mod.Functions {
			idx := len(l.rt.Instructions)
			l.rt.Instructions = append(l.rt.Instructions, nil)
			l.rt.FunctionArity = append(l.rt.FunctionArity, len(fn.Params))
			l.globalIndex[moduleFuncKey{mid, fid}] = idx
		}
	}

	for mid := range modules {
		for fid, checked := range checkedByModule[mid] {
			idx := l.globalIndex[moduleFuncKey{mid, fid}]
			entity, err := l.lower(checked)
			if err != nil {
				return nil, err
			}
			l.rt.Instructions[idx] = entity
		}
	}

	if err := l.validate(); err != nil {
		return nil, err
	}
	return &l.rt, nil
}

// validate checks the link invariants spec.md §3 lists against the fully
// built instruction table.
func (l *Linker) validate() *diag.Error {
	for idx, entity := range l.rt.Instructions {
		if entity == nil {
			continue
		}
		if err := validateEntity(entity, len(l.rt.Instructions), l.rt.FunctionArity[idx]); err != nil {
			return err
		}
	}
	return nil
}
