// Package repl implements an interactive read-eval-print loop over leaf's
// front end: one line is either a top-level declaration ("fn"/"type"/
// "enum") folded into the session's running module, or a bare expression
// evaluated against everything declared so far.
//
// Grounded on the teacher's internal/repl/repl.go (liner-backed loop,
// color-coded prompt/output, history file) with the evaluator/type-env/
// dictionary-registry fields it drives replaced by leaf's own
// module/check/link/runtime pipeline, reused here through
// internal/program.CheckAndLink rather than re-implemented.
package repl

import (
	"fmt"

	"github.com/sunholo/leaf/internal/diag"
	"github.com/sunholo/leaf/internal/ident"
	"github.com/sunholo/leaf/internal/module"
	"github.com/sunholo/leaf/internal/parser"
	"github.com/sunholo/leaf/internal/program"
	"github.com/sunholo/leaf/internal/runtime"
	"github.com/sunholo/leaf/internal/token"
	"github.com/sunholo/leaf/internal/types"
)

// ResultKind distinguishes a Session.Eval outcome: a new declaration was
// folded in, or an expression produced a value.
type ResultKind int

const (
	ResultValue ResultKind = iota
	ResultDeclaration
)

// Result is the outcome of one Session.Eval call.
type Result struct {
	Kind     ResultKind
	Value    runtime.Value
	Declared []string // function/type names added, when Kind == ResultDeclaration
}

// Session holds one REPL's accumulated state: the prelude plus a single
// growing user module that every "fn"/"type" line and every expression's
// synthetic wrapper function is added to.
type Session struct {
	prelude *module.ParseModule
	user    *module.ParseModule
	counter int
}

// NewSession builds a Session seeded with the built-in prelude and an
// empty user module.
func NewSession() (*Session, *diag.Error) {
	prelude, err := program.Prelude()
	if err != nil {
		return nil, err
	}
	user := module.New(module.FileSource{Kind: module.SourceProjectRelative, Path: "<repl>"})
	return &Session{prelude: prelude, user: user}, nil
}

// Eval folds input into the session: if it parses as one or more top-level
// declarations, they're added to the user module and every declared name
// so far is re-checked (so a later redefinition error surfaces
// immediately); otherwise input is parsed as a bare expression, wrapped in
// a fresh zero-argument function, and evaluated.
func (s *Session) Eval(input string) (*Result, *diag.Error) {
	if declared, ok, err := s.tryDeclaration(input); err != nil {
		return nil, err
	} else if ok {
		return &Result{Kind: ResultDeclaration, Declared: declared}, nil
	}
	return s.evalExpression(input)
}

// tryDeclaration attempts to parse input as top-level declarations. A
// successful parse means input began with "fn"/"type"/"enum"/"use"; a
// MOD005 parse failure on input whose first token is not a header keyword
// means it didn't, and the caller should fall back to expression parsing.
// Any other error (e.g. a malformed "fn" header, or a
// declaration that fails to check against the session so far) is a genuine
// declaration error: the user module is rolled back to how it was before
// this call so a bad declaration doesn't wedge later ones.
func (s *Session) tryDeclaration(input string) ([]string, bool, *diag.Error) {
	decl, err := module.Parse([]byte(input), module.FileSource{Kind: module.SourceProjectRelative, Path: "<repl>"})
	if err != nil {
		first := token.NewStream([]byte(input), "<repl>").Peek()
		if err.Code == diag.MOD005 && first.Inner.Kind != token.RawHeader {
			return nil, false, nil
		}
		return nil, false, err
	}

	mark := s.user.Snapshot()
	var names []string
	for _, fn := range decl.Functions {
		s.user.AddFunction(fn.Name.Name, fn)
		names = append(names, fn.Name.Name)
	}
	for _, t := range decl.Types {
		s.user.AddType(t)
		names = append(names, t.Name.Name)
	}

	if _, _, cerr := program.CheckAndLink([]*module.ParseModule{s.prelude, s.user}); cerr != nil {
		s.user.Restore(mark)
		return nil, false, cerr
	}
	return names, true, nil
}

// evalExpression parses input as a single expression (the same grammar
// internal/parser uses for a function body), wraps it in a synthetic
// zero-argument function appended to the user module, and runs the whole
// session through check+link+eval.
func (s *Session) evalExpression(input string) (*Result, *diag.Error) {
	stream := token.NewStream([]byte(input), "<repl>")
	body, perr := parser.New(stream).ParseChunk()
	if perr != nil {
		if de, ok := perr.(*diag.Error); ok {
			return nil, de
		}
		return nil, diag.New(diag.PAR001, diag.Pos{}, "%v", perr)
	}

	mark := s.user.Snapshot()
	name := fmt.Sprintf("_repl%d", s.counter)
	fid := s.user.AddFunction(name, &module.FunctionBuilder{
		Name:       ident.New(name),
		ReturnType: types.Known(types.Nothing()),
		Body:       body,
	})

	modules := []*module.ParseModule{s.prelude, s.user}
	rt, _, cerr := program.CheckAndLink(modules)
	if cerr != nil {
		s.user.Restore(mark)
		return nil, cerr
	}
	s.counter++

	idx := program.GlobalBases(modules)[1] + fid
	val, eerr := runtime.Eval(rt, rt.Instructions[idx], nil)
	if eerr != nil {
		return nil, eerr
	}
	return &Result{Kind: ResultValue, Value: val}, nil
}
