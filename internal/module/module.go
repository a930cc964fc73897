// Package module defines ParseModule — the per-file table the parser fills
// in and the type checker/linker consume (spec.md §3, "ParseModule") — and
// implements the identifier resolution algorithm of spec.md §4.2.
//
// Grounded on the teacher's internal/module package: ModuleEnv's two-level
// function table and FileSource-tagged module path, reduced from its
// instance/typeclass dictionary machinery down to the plain overload table
// spec.md §4.2 names.
package module

import (
	"fmt"

	"github.com/sunholo/leaf/internal/ast"
	"github.com/sunholo/leaf/internal/ident"
	"github.com/sunholo/leaf/internal/types"
)

// FileSource records how a module was located, for error messages and for
// re-resolving relative imports (spec.md §3, "module_path").
type FileSourceKind int

const (
	SourceProjectRelative FileSourceKind = iota
	SourceLeafPath
	SourcePrelude
)

type FileSource struct {
	Kind FileSourceKind
	Path string
}

func (f FileSource) String() string {
	switch f.Kind {
	case SourcePrelude:
		return "<prelude>"
	case SourceLeafPath:
		return "leafpath:" + f.Path
	default:
		return f.Path
	}
}

// CustomType is a user-declared record/enum type (spec.md §3 names
// `types: [CustomType]` without prescribing its internal shape beyond
// carrying a name and fields; enum variants are represented as zero-or-more
// positional field lists, one per variant).
type CustomType struct {
	Name     ident.Identifier
	Variants []Variant
}

// Variant is one constructor of a CustomType: a name and its positional
// field types (a record type has exactly one variant).
type Variant struct {
	Name   string
	Fields []types.Type
}

// FunctionBuilder is a function signature plus its parsed body, mutated in
// place as compilation proceeds (spec.md §3, "Lifecycles": created while
// parsing, body lowered to IR while type checking, then frozen).
type FunctionBuilder struct {
	Name       ident.Identifier
	Params     []Param
	ReturnType types.MaybeType
	Body       ast.Tracked

	// Checked is not set by any package here: internal/program.CheckAndLink
	// keeps each function's check.Checked result in a per-module map, so
	// this field stays nil.
	Checked interface{}
}

// Param is one declared parameter: a name and its declared type.
type Param struct {
	Name ident.Identifier
	Type types.Type
}

// ParamTypes returns the parameter-type vector used to key overload
// resolution (spec.md §3, "parameter-type-vector").
func (f *FunctionBuilder) ParamTypes() []types.Type {
	out := make([]types.Type, len(f.Params))
	for i, p := range f.Params {
		out[i] = p.Type
	}
	return out
}

// overloadSet stores every variant declared under one name, keyed by its
// parameter-type vector rendered as a string (spec.md §3's two-level map:
// name-level, then parameter-type-vector-level).
type overloadSet struct {
	order []int // function_id, in declaration order (used when no vector matches exactly and generics must be tried)
	byKey map[string]int
}

// ParseModule is one ".lf" file (spec.md §3, "ParseModule").
type ParseModule struct {
	Functions   []*FunctionBuilder
	FunctionIDs map[string]*overloadSet

	Types   []*CustomType
	TypeIDs map[string]int

	// Imports maps a local alias to a resolved module id, filled in by
	// internal/program's loadUses before type checking and linking.
	Imports map[string]int

	// Uses is the parse-time list of "use a:b:c" import identifiers this
	// module named, in declaration order; internal/program's loadUses
	// resolves each to a file through internal/loader, assigns the parsed
	// module an id and records it in Imports.
	Uses []ident.Identifier

	Path FileSource

	// FunctionID is neither assigned nor read by any package here; it
	// stays zero. A module's id is its index in module.Table.Modules.
	FunctionID int
}

// New creates an empty ParseModule located at path.
func New(path FileSource) *ParseModule {
	return &ParseModule{
		FunctionIDs: make(map[string]*overloadSet),
		TypeIDs:     make(map[string]int),
		Imports:     make(map[string]int),
		Path:        path,
	}
}

// AddFunction registers fn under name, returning its freshly assigned
// function_id within this module.
func (m *ParseModule) AddFunction(name string, fn *FunctionBuilder) int {
	fid := len(m.Functions)
	m.Functions = append(m.Functions, fn)

	set, ok := m.FunctionIDs[name]
	if !ok {
		set = &overloadSet{byKey: make(map[string]int)}
		m.FunctionIDs[name] = set
	}
	set.order = append(set.order, fid)
	set.byKey[paramKey(fn.ParamTypes())] = fid
	return fid
}

// AddType registers t, returning its freshly assigned type_id.
func (m *ParseModule) AddType(t *CustomType) int {
	tid := len(m.Types)
	m.Types = append(m.Types, t)
	m.TypeIDs[t.Name.Name] = tid
	return tid
}

// Mark is a saved length of a ParseModule's Functions and Types tables,
// taken before a tentative batch of AddFunction/AddType calls so the
// module can be rolled back if the batch turns out not to check
// (internal/repl's session does this for a declaration that fails to
// check against everything declared so far).
type Mark struct {
	functions int
	types     int
}

// Snapshot records m's current Functions/Types length.
func (m *ParseModule) Snapshot() Mark {
	return Mark{functions: len(m.Functions), types: len(m.Types)}
}

// Restore truncates m's Functions and Types back to mark, and removes the
// corresponding entries from FunctionIDs/TypeIDs so a rolled-back name can
// be redeclared cleanly.
func (m *ParseModule) Restore(mark Mark) {
	for _, fn := range m.Functions[mark.functions:] {
		name := fn.Name.Name
		set, ok := m.FunctionIDs[name]
		if !ok {
			continue
		}
		for len(set.order) > 0 && set.order[len(set.order)-1] >= mark.functions {
			last := set.order[len(set.order)-1]
			set.order = set.order[:len(set.order)-1]
			delete(set.byKey, paramKey(m.Functions[last].ParamTypes()))
		}
		if len(set.order) == 0 {
			delete(m.FunctionIDs, name)
		}
	}
	for _, t := range m.Types[mark.types:] {
		delete(m.TypeIDs, t.Name.Name)
	}
	m.Functions = m.Functions[:mark.functions]
	m.Types = m.Types[:mark.types]
}

func paramKey(params []types.Type) string {
	s := ""
	for i, p := range params {
		if i > 0 {
			s += ","
		}
		s += p.String()
	}
	return s
}

func fmtSig(name string, params []types.Type) string {
	return fmt.Sprintf("%s(%s)", name, paramKey(params))
}
