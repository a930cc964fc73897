// Package check implements the type checker described in spec.md §4.3: it
// walks an ast.Entity against its enclosing function's parameter scope,
// resolving every identifier to a parameter, a capture, or a call target,
// and produces a Checked tree that already carries every fact
// internal/ir's lowering pass needs (spec.md §4.4 consumes this directly).
//
// Grounded on the teacher's internal/elaborate package (AST → typed,
// dictionary-resolved tree, itself consumed by internal/core lowering),
// narrowed from its typeclass-dictionary resolution down to the plain
// parameter/capture/overload resolution spec.md §4.2/§4.3 name.
package check

import (
	"github.com/sunholo/leaf/internal/ident"
	"github.com/sunholo/leaf/internal/ir"
	"github.com/sunholo/leaf/internal/token"
	"github.com/sunholo/leaf/internal/types"
)

// Checked is the typed tree produced by type checking, one-to-one with
// ir.Entity's shape plus a Type on every node.
type Checked interface {
	checkedNode()
	Type() types.Type
}

type Literal struct {
	Lit token.Inlined
	Typ types.Type
}

func (Literal) checkedNode()        {}
func (n Literal) Type() types.Type { return n.Typ }

type Param struct {
	Index int
	Typ   types.Type
}

func (Param) checkedNode()        {}
func (n Param) Type() types.Type { return n.Typ }

type Captured struct {
	Index int
	Typ   types.Type
}

func (Captured) checkedNode()        {}
func (n Captured) Type() types.Type { return n.Typ }

// TargetKind tags what a Call invokes.
type TargetKind int

const (
	ToFunction TargetKind = iota
	ToParam
	ToCaptured
	ToBuiltin
	ToInlineLambda
)

// Target describes a Call's callee, fully resolved.
type Target struct {
	Kind TargetKind

	// ToFunction
	ModuleID   int
	FunctionID int
	Sub        types.Substitution

	// ToParam / ToCaptured
	Index int

	// ToBuiltin
	BuiltinIndex int

	// ToInlineLambda
	LambdaParams   []ident.Identifier
	LambdaBody     Checked
	LambdaCaptures []ir.Capturable
}

type Call struct {
	Target Target
	Args   []Checked
	Typ    types.Type
}

func (Call) checkedNode()        {}
func (n Call) Type() types.Type { return n.Typ }

type Branch struct {
	Cond Checked
	Eval Checked
}

type If struct {
	Branches []Branch
	Else     Checked
	Typ      types.Type
}

func (If) checkedNode()        {}
func (n If) Type() types.Type { return n.Typ }

type First struct {
	Stmts []Checked
	Eval  Checked
	Typ   types.Type
}

func (First) checkedNode()        {}
func (n First) Type() types.Type { return n.Typ }

type List struct {
	Items []Checked
	Typ   types.Type
}

func (List) checkedNode()        {}
func (n List) Type() types.Type { return n.Typ }

type Record struct {
	Fields []Checked
	Typ    types.Type
}

func (Record) checkedNode()        {}
func (n Record) Type() types.Type { return n.Typ }

// InlineLambda is a lambda used directly (not passed as a value).
type InlineLambda struct {
	Body     Checked
	Captures []ir.Capturable
	Typ      types.Type
}

func (InlineLambda) checkedNode()        {}
func (n InlineLambda) Type() types.Type { return n.Typ }

// LambdaPointer is a closure-converted lambda or function reference
// (spec.md §4.1's Pass node, once resolved to Function type).
type LambdaPointer struct {
	Body     Checked
	Captures []ir.Capturable
	Typ      types.Type
}

func (LambdaPointer) checkedNode()        {}
func (n LambdaPointer) Type() types.Type { return n.Typ }

type Unimplemented struct {
	Typ types.Type
}

func (Unimplemented) checkedNode()        {}
func (n Unimplemented) Type() types.Type { return n.Typ }
