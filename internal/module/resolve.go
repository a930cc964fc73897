package module

import (
	"github.com/sunholo/leaf/internal/diag"
	"github.com/sunholo/leaf/internal/ident"
	"github.com/sunholo/leaf/internal/types"
)

// Table is the set of modules a resolution runs over: every loaded module
// indexed by its module id, plus the id of the built-in prelude module
// (spec.md §4.2 step 2's "prelude module id").
type Table struct {
	Modules  []*ParseModule
	PreludeID int
}

// Resolved is the outcome of a successful lookup: the chosen function's
// global location and the generic substitution (if any) step 4 produced.
type Resolved struct {
	ModuleID   int
	FunctionID int
	Func       *FunctionBuilder
	Sub        types.Substitution
}

// Resolve implements spec.md §4.2: resolve name called with argument types
// params, from inside module selfFid.
func (t *Table) Resolve(name ident.Identifier, params []types.Type, selfFid int) (*Resolved, *diag.Error) {
	fid := selfFid
	lookupName := name.Name

	// Step 1: qualified identifier ("a:b") resolves its first path segment
	// through the calling module's imports.
	if name.IsQualified() {
		alias := name.Path[0]
		self := t.Modules[selfFid]
		imported, ok := self.Imports[alias]
		if !ok {
			return nil, diag.New(diag.MOD001, diag.Pos{}, "module alias %q is not imported", alias)
		}
		fid = imported
	}

	res, err := t.resolveIn(fid, lookupName, params)
	if err == nil {
		return res, nil
	}

	// Step 2: on a missing name (not a missing variant), retry in the
	// prelude unless we're already there; rewrite FunctionNotFound back to
	// the caller's own module for user-facing fidelity.
	if err.Code == diag.MOD002 && fid != t.PreludeID {
		res, preludeErr := t.resolveIn(t.PreludeID, lookupName, params)
		if preludeErr == nil {
			return res, nil
		}
		if preludeErr.Code == diag.MOD002 {
			return nil, diag.New(diag.MOD002, diag.Pos{}, "function %q not found", lookupName)
		}
		// FunctionVariantNotFound from the prelude is preserved as-is.
		return nil, preludeErr
	}

	return nil, err
}

// resolveIn performs steps 2-5 of spec.md §4.2 against one already-selected
// module id, without the prelude fallback (the caller handles that).
func (t *Table) resolveIn(fid int, name string, params []types.Type) (*Resolved, *diag.Error) {
	mod := t.Modules[fid]
	set, ok := mod.FunctionIDs[name]
	if !ok {
		return nil, diag.New(diag.MOD002, diag.Pos{}, "function %q not found in module", name)
	}

	// Step 3: exact signature match.
	if exactFid, ok := set.byKey[paramKey(params)]; ok {
		return &Resolved{ModuleID: fid, FunctionID: exactFid, Func: mod.Functions[exactFid], Sub: nil}, nil
	}

	// Step 4: generic unification against every declared variant, in
	// declaration order; first consistent match wins.
	for _, candidateFid := range set.order {
		fn := mod.Functions[candidateFid]
		sub, ok := types.UnifyAll(fn.ParamTypes(), params)
		if ok {
			return &Resolved{ModuleID: fid, FunctionID: candidateFid, Func: fn, Sub: sub}, nil
		}
	}

	// Step 5: no variant matches.
	return nil, diag.New(diag.MOD003, diag.Pos{}, "no variant of %q matches argument types %s", name, paramKey(params))
}

// ResolvePartial finds a variant of name whose first len(prefix) declared
// parameter types exactly match prefix, for closure-converting a partial
// application (spec.md §4.1's PassPartial). Unlike Resolve, it does not
// attempt generic unification on the withheld arguments: a partial
// application must name a fully concrete prefix.
func (t *Table) ResolvePartial(name ident.Identifier, prefix []types.Type, selfFid int) (*Resolved, []types.Type, *diag.Error) {
	fid := selfFid
	lookupName := name.Name
	if name.IsQualified() {
		alias := name.Path[0]
		self := t.Modules[selfFid]
		imported, ok := self.Imports[alias]
		if !ok {
			return nil, nil, diag.New(diag.MOD001, diag.Pos{}, "module alias %q is not imported", alias)
		}
		fid = imported
	}

	mod := t.Modules[fid]
	set, ok := mod.FunctionIDs[lookupName]
	if !ok && fid != t.PreludeID {
		mod = t.Modules[t.PreludeID]
		set, ok = mod.FunctionIDs[lookupName]
		fid = t.PreludeID
	}
	if !ok {
		return nil, nil, diag.New(diag.MOD002, diag.Pos{}, "function %q not found", lookupName)
	}

	for _, candidateFid := range set.order {
		fn := mod.Functions[candidateFid]
		declared := fn.ParamTypes()
		if len(declared) <= len(prefix) {
			continue
		}
		matches := true
		for i, p := range prefix {
			if !declared[i].Equal(p) {
				matches = false
				break
			}
		}
		if matches {
			return &Resolved{ModuleID: fid, FunctionID: candidateFid, Func: fn}, declared[len(prefix):], nil
		}
	}
	return nil, nil, diag.New(diag.MOD003, diag.Pos{}, "no variant of %q accepts the given partial arguments", lookupName)
}

// ResolveByNameOnly finds the sole variant declared under name, for
// referencing a function by identity rather than calling it (spec.md
// §4.1's PassFunc: "free-standing function identifier passed as a
// value"). Ambiguous when more than one overload shares the name.
func (t *Table) ResolveByNameOnly(name ident.Identifier, selfFid int) (*Resolved, *diag.Error) {
	fid := selfFid
	lookupName := name.Name
	if name.IsQualified() {
		alias := name.Path[0]
		self := t.Modules[selfFid]
		imported, ok := self.Imports[alias]
		if !ok {
			return nil, diag.New(diag.MOD001, diag.Pos{}, "module alias %q is not imported", alias)
		}
		fid = imported
	}

	mod := t.Modules[fid]
	set, ok := mod.FunctionIDs[lookupName]
	if !ok && fid != t.PreludeID {
		mod = t.Modules[t.PreludeID]
		set, ok = mod.FunctionIDs[lookupName]
		fid = t.PreludeID
	}
	if !ok {
		return nil, diag.New(diag.MOD002, diag.Pos{}, "function %q not found", lookupName)
	}
	if len(set.order) != 1 {
		return nil, diag.New(diag.MOD003, diag.Pos{}, "%q names %d overloads; a bare function reference requires exactly one", lookupName, len(set.order))
	}
	onlyFid := set.order[0]
	return &Resolved{ModuleID: fid, FunctionID: onlyFid, Func: mod.Functions[onlyFid]}, nil
}

// ReturnType resolves r's declared return type with r's generic
// substitution applied (spec.md §4.2 step 4's "returns the resolved
// function's return type (with generic substitution applied)").
func (r *Resolved) ReturnType() types.Type {
	rt := r.Func.ReturnType.Resolve()
	if r.Sub == nil {
		return rt
	}
	return types.Apply(r.Sub, rt)
}
