// Package bridge implements the fixed bridged-primitive dispatch table
// (spec.md §4.6): the host-provided operations reachable from source as
// "builtin:name" (§4.6's eight, plus eq and lt), and the NaiveType rule the type checker uses to
// compute a RustCall's return type from its actual argument types.
//
// Grounded on the teacher's internal/eval's builtin registration pattern
// (a name-indexed table of host functions with arity and return-type
// metadata), reduced to the small fixed table spec.md §4.6 names rather
// than the teacher's open-ended, user-extensible builtin registry.
package bridge

import (
	"github.com/sunholo/leaf/internal/diag"
	"github.com/sunholo/leaf/internal/types"
)

// NaiveKind tags how a bridged primitive's return type is computed from its
// actual argument types (spec.md §4.6).
type NaiveKind int

const (
	// Known is a fixed return type, independent of arguments.
	Known NaiveKind = iota
	// Matching returns the type of argument Index.
	Matching
	// ListedMatching returns List(type-of-arg-Index).
	ListedMatching
	// UnlistedMatching returns the element type of the list-typed
	// argument at Index.
	UnlistedMatching
)

// NaiveType is one bridged primitive's return-type computation rule.
type NaiveType struct {
	Kind  NaiveKind
	Index int          // argument index consulted, for Matching/ListedMatching/UnlistedMatching
	Fixed types.Type   // the fixed type, for Known
}

// Entry is one row of the bridge table: its global dispatch index, its
// source-level name, and how to compute its return type.
type Entry struct {
	Index int
	Name  string
	Ret   NaiveType
}

// Table is the fixed bridge table, in dispatch-index order (spec.md §4.6).
// Indexes 8-9 (eq, lt) extend the literal 8-row table: spec.md's own S1 and
// S4 end-to-end scenarios call `builtin:eq`/`builtin:lt`, so a faithful
// table has to carry them even though §4.6's table prose only lists the
// first eight.
var Table = []Entry{
	{Index: 0, Name: "add", Ret: NaiveType{Kind: Matching, Index: 0}},
	{Index: 1, Name: "sub", Ret: NaiveType{Kind: Matching, Index: 0}},
	{Index: 2, Name: "mul", Ret: NaiveType{Kind: Matching, Index: 0}},
	{Index: 3, Name: "div", Ret: NaiveType{Kind: Matching, Index: 0}},
	{Index: 4, Name: "push_back", Ret: NaiveType{Kind: ListedMatching, Index: 1}},
	{Index: 5, Name: "push_front", Ret: NaiveType{Kind: ListedMatching, Index: 1}},
	{Index: 6, Name: "get", Ret: NaiveType{Kind: UnlistedMatching, Index: 1}},
	{Index: 7, Name: "len", Ret: NaiveType{Kind: Known, Fixed: types.Int()}},
	{Index: 8, Name: "eq", Ret: NaiveType{Kind: Known, Fixed: types.Bool()}},
	{Index: 9, Name: "lt", Ret: NaiveType{Kind: Known, Fixed: types.Bool()}},
}

var byName map[string]Entry

func init() {
	byName = make(map[string]Entry, len(Table))
	for _, e := range Table {
		byName[e.Name] = e
	}
}

// Lookup returns the bridge entry for name, or BridgedFunctionNotFound.
func Lookup(name string) (Entry, *diag.Error) {
	e, ok := byName[name]
	if !ok {
		return Entry{}, diag.New(diag.MOD004, diag.Pos{}, "bridged function %q not found", name)
	}
	return e, nil
}

// ReturnType computes a bridged call's return type from its actual
// argument types, per the NaiveType rule (spec.md §4.6).
func ReturnType(nt NaiveType, args []types.Type) (types.Type, *diag.Error) {
	switch nt.Kind {
	case Known:
		return nt.Fixed, nil
	case Matching:
		if nt.Index >= len(args) {
			return types.Type{}, diag.New(diag.CHK004, diag.Pos{}, "bridged call missing argument %d", nt.Index)
		}
		return args[nt.Index], nil
	case ListedMatching:
		if nt.Index >= len(args) {
			return types.Type{}, diag.New(diag.CHK004, diag.Pos{}, "bridged call missing argument %d", nt.Index)
		}
		return types.List(args[nt.Index]), nil
	case UnlistedMatching:
		if nt.Index >= len(args) {
			return types.Type{}, diag.New(diag.CHK004, diag.Pos{}, "bridged call missing argument %d", nt.Index)
		}
		listArg := args[nt.Index]
		if listArg.Kind != types.KList {
			return types.Type{}, diag.New(diag.CHK004, diag.Pos{}, "bridged call argument %d is not a list", nt.Index)
		}
		return *listArg.Elem, nil
	default:
		return types.Type{}, diag.New(diag.CHK004, diag.Pos{}, "unknown bridged return-type rule")
	}
}
