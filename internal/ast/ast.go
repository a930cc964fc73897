// Package ast defines the pre-resolution expression tree the parser
// builds (spec.md §3, "Entity (AST form)") and the Tracked[Entity]
// position wrapper described in spec.md §4.1.
//
// Grounded on the teacher's internal/ast package: the Node/Pos shape of
// internal/ast/ast.go, generalized to leaf's Entity sum, and the
// deterministic JSON printer of internal/ast/print.go (kept for round-trip
// testing, spec.md §8 property 1).
package ast

import (
	"github.com/sunholo/leaf/internal/ident"
	"github.com/sunholo/leaf/internal/token"
)

// Tracked pairs an Entity with the source position it started at.
type Tracked = token.Tracked[Entity]

// NewTracked wraps an Entity with a position.
func NewTracked(e Entity, pos token.Pos) Tracked {
	return token.NewTracked[Entity](e, pos)
}

// Entity is the pre-resolution expression tree node (spec.md §3).
type Entity interface {
	entityNode()
}

// Inlined is a literal value: Inlined(Inlinable).
type Inlined struct {
	Lit token.Inlined
}

func (Inlined) entityNode() {}

// SingleIdent is a bare name reference.
type SingleIdent struct {
	Ident ident.Identifier
}

func (SingleIdent) entityNode() {}

// Call is a function application with 0+ arguments: Call(Callable, [Entity]).
type Call struct {
	Callee Callable
	Args   []Tracked
}

func (Call) entityNode() {}

// Lambda is Lambda(params, body).
type Lambda struct {
	Params []ident.Identifier
	Body   Tracked
}

func (Lambda) entityNode() {}

// Pass is the closure-conversion marker Pass(Passable): "convert this to a
// first-class function value" (spec.md §4.1, the '#' marker).
type Pass struct {
	Value Passable
}

func (Pass) entityNode() {}

// Branch is one (cond, eval) pair of an If.
type Branch struct {
	Cond Tracked
	Eval Tracked
}

// If is If(branches, else_branch). Invariant: len(Branches) >= 1.
type If struct {
	Branches []Branch
	Else     Tracked
}

func (If) entityNode() {}

// First is First(stmts, eval): evaluate each stmt for side effect, the
// value is eval (the expression after "then").
type First struct {
	Stmts []Tracked
	Eval  Tracked
}

func (First) entityNode() {}

// List is List([Entity]).
type List struct {
	Items []Tracked
}

func (List) entityNode() {}

// RecordField is one "name = expr" binding inside a record literal,
// fields preserve declaration order (spec.md §4.1).
type RecordField struct {
	Name  string
	Value Tracked
}

// Record is Record(type_name, fields).
type Record struct {
	TypeName ident.Identifier
	Fields   []RecordField
}

func (Record) entityNode() {}

// Unimplemented is the "???" placeholder entity.
type Unimplemented struct{}

func (Unimplemented) entityNode() {}

// Callable is one of {named function, builtin, lambda-literal} —
// the callee position of a Call.
type Callable interface {
	callableNode()
}

// CallFunc names a user-defined function (or zero-arity reference).
type CallFunc struct {
	Name ident.Identifier
}

func (CallFunc) callableNode() {}

// CallBuiltin names a bridged primitive, after the "builtin:" path
// segment has been stripped (spec.md §4.1's identifier dispatch arm).
type CallBuiltin struct {
	Name ident.Identifier
}

func (CallBuiltin) callableNode() {}

// CallLambda is an inline lambda used directly as a callee, e.g.
// "(\x -> x + 1) 5".
type CallLambda struct {
	Params []ident.Identifier
	Body   Tracked
}

func (CallLambda) callableNode() {}

// Passable is the subset of forms valid as a first-class value inside a
// Pass node: inline literal, bare function, partial application, lambda.
type Passable interface {
	passableNode()
}

// PassInlined is a bare literal passed as a value.
type PassInlined struct {
	Lit token.Inlined
}

func (PassInlined) passableNode() {}

// PassFunc is a free-standing function identifier passed as a value.
type PassFunc struct {
	Name ident.Identifier
}

func (PassFunc) passableNode() {}

// PassPartial is a partial application Call(callee, args) passed as a
// value — fewer arguments than the callee's declared arity.
type PassPartial struct {
	Callee Callable
	Args   []Tracked
}

func (PassPartial) passableNode() {}

// PassLambda is a lambda literal passed as a value.
type PassLambda struct {
	Params []ident.Identifier
	Body   Tracked
}

func (PassLambda) passableNode() {}
