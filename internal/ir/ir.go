// Package ir defines the post-resolution tree the evaluator executes
// (spec.md §3, "Entity (IR form)"): every name has been resolved to a
// numeric slot or a global function index, so the evaluator never performs
// a lookup by name at runtime.
//
// Grounded on the teacher's internal/core package (a resolved, lowered IR
// distinct from the parsed AST, with its own node sum), narrowed to the
// node set spec.md §3 names.
package ir

import "github.com/sunholo/leaf/internal/token"

// Entity is the IR sum the evaluator walks (spec.md §3).
type Entity interface {
	irNode()
}

// Inlined is a compile-time literal value.
type Inlined struct {
	Lit token.Inlined
}

func (Inlined) irNode() {}

// Parameter references slot n of the current frame's parameter buffer.
type Parameter struct {
	Index int
}

func (Parameter) irNode() {}

// Captured references slot n of the current frame's capture vector.
type Captured struct {
	Index int
}

func (Captured) irNode() {}

// FunctionCall invokes a statically resolved global function.
type FunctionCall struct {
	FunctionIndex int
	Args          []Entity
}

func (FunctionCall) irNode() {}

// ParameterCall invokes a runtime first-class function value held in
// parameter slot ParamIndex.
type ParameterCall struct {
	ParamIndex int
	Args       []Entity
}

func (ParameterCall) irNode() {}

// CapturedCall invokes a runtime first-class function value held in
// capture slot CapturedIndex.
type CapturedCall struct {
	CapturedIndex int
	Args          []Entity
}

func (CapturedCall) irNode() {}

// RustCall dispatches to the bridge table (spec.md §4.6).
type RustCall struct {
	BuiltinIndex int
	Args         []Entity
}

func (RustCall) irNode() {}

// Branch is one (cond, eval) pair of an IfExpression.
type Branch struct {
	Cond Entity
	Eval Entity
}

// IfExpression is the lowered conditional. Invariant: len(Branches) >= 1.
type IfExpression struct {
	Branches []Branch
	Else     Entity
}

func (IfExpression) irNode() {}

// FirstStatement evaluates Stmts for effect, in order, then yields Eval.
type FirstStatement struct {
	Stmts []Entity
	Eval  Entity
}

func (FirstStatement) irNode() {}

// List is a lowered list literal.
type List struct {
	Items []Entity
}

func (List) irNode() {}

// ConstructRecord builds a Value::Struct from lowered positional fields.
type ConstructRecord struct {
	Fields []Entity
}

func (ConstructRecord) irNode() {}

// Capturable tags which enclosing lexical slot a Lambda/LambdaPointer
// snapshots into its capture vector (spec.md §3).
type CapturableKind int

const (
	ParentParam CapturableKind = iota
	ParentLambda
	ParentWhere
)

type Capturable struct {
	Kind  CapturableKind
	Index int
}

// Lambda is a lambda used directly (not passed as a value): inlined at its
// use site with its own capture list, not assigned a global function id.
type Lambda struct {
	Body     Entity
	Captures []Capturable
}

func (Lambda) irNode() {}

// LambdaPointer produces a first-class function value capturing from the
// current frame, for use in Pass/closure-conversion positions.
type LambdaPointer struct {
	Body     Entity
	Captures []Capturable
}

func (LambdaPointer) irNode() {}

// InlineCall invokes a lambda-literal call target directly (spec.md §3's
// Callable includes "lambda-literal" alongside named function and
// builtin). Args are evaluated against the calling frame, Captures are
// snapshotted from the calling frame, and then Body becomes the new
// current entity with Args as its params and the snapshot as its
// captured vector — the same frame-rewrite FunctionCall performs, just
// without a global function index since the lambda is never registered
// as one.
type InlineCall struct {
	Body     Entity
	Captures []Capturable
	Args     []Entity
}

func (InlineCall) irNode() {}

// Unimplemented is the "???" placeholder; reaching it at runtime traps.
type Unimplemented struct{}

func (Unimplemented) irNode() {}
