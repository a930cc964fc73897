// Package parser implements the AST builder described in spec.md §4.1:
// a recursive-descent expression parser over a token.Source, producing
// ast.Tracked[Entity] trees with positional tracking.
//
// Grounded primarily on original_source/src/parser/ast/builder.rs (the
// literal algorithm spec.md §4.1 distills), restructured into idiomatic Go
// the way the teacher's own internal/parser structures its recursive
// descent — same error-wrapping-with-fallback-position idiom, same
// one-token lookahead style.
package parser

import (
	"github.com/sunholo/leaf/internal/ast"
	"github.com/sunholo/leaf/internal/diag"
	"github.com/sunholo/leaf/internal/ident"
	"github.com/sunholo/leaf/internal/token"
)

// Parser builds an Entity tree from a token.Source.
type Parser struct {
	src token.Source
}

// New creates a Parser over src.
func New(src token.Source) *Parser {
	return &Parser{src: src}
}

func (p *Parser) peek() token.Tracked[token.RawToken] { return p.src.Peek() }
func (p *Parser) next() token.Tracked[token.RawToken] { return p.src.Next() }

func unexpected(t token.Tracked[token.RawToken]) *diag.Error {
	return diag.New(diag.PAR001, t.At, "unexpected token %s", t.Inner)
}

func gotButExpected(t token.Tracked[token.RawToken], expected ...string) *diag.Error {
	return diag.New(diag.PAR002, t.At, "got %s, expected one of %v", t.Inner, expected)
}

func endedWhileExpecting(expected ...string) *diag.Error {
	return diag.New(diag.PAR003, diag.Pos{}, "input ended, expected one of %v", expected)
}

// decorate attaches pos to err's position if err is a *diag.Error with no
// position of its own yet (the "fallback_index" idiom, spec.md §4.1).
func decorate(err error, pos token.Pos) error {
	if de, ok := err.(*diag.Error); ok {
		return de.WithFallbackPos(pos)
	}
	return err
}

// ParseChunk reads one expression (spec.md §4.1, "Top-level operation
// parse_chunk"). It is the entry point used both at top level and
// recursively for every sub-expression (inside parens, list items, lambda
// bodies, if/first branches, …).
func (p *Parser) ParseChunk() (ast.Tracked, error) {
	t := p.peek()

	switch {
	case t.Inner.Kind == token.RawEOF:
		return ast.Tracked{}, diag.New(diag.PAR005, t.At, "empty expression")

	case t.Inner.Kind == token.RawHeader, t.Inner.Kind == token.RawKey && t.Inner.Key == token.KeyWhere:
		return ast.Tracked{}, diag.New(diag.PAR005, t.At, "empty parenthesized expression")

	case t.Inner.Kind == token.RawKey && t.Inner.Key == token.KeyParenOpen:
		return p.parseParen()

	case t.Inner.Kind == token.RawUnimplemented:
		p.next()
		return ast.NewTracked(ast.Unimplemented{}, t.At), nil

	case t.Inner.Kind == token.RawInlined:
		p.next()
		v := ast.NewTracked(ast.Inlined{Lit: t.Inner.Lit}, t.At)
		return p.maybeOperator(v)

	case t.Inner.Kind == token.RawKey && t.Inner.Key == token.KeyListOpen:
		p.next()
		v, err := p.parseList()
		if err != nil {
			return ast.Tracked{}, err.WithFallbackPos(t.At)
		}
		return p.maybeOperator(ast.NewTracked(v, t.At))

	case t.Inner.Kind == token.RawKey && t.Inner.Key == token.KeyRecordOpen:
		p.next()
		return p.parseRecord()

	case t.Inner.Kind == token.RawKey && t.Inner.Key == token.KeyIf:
		p.next()
		v, err := p.parseIfExpression()
		if err != nil {
			return ast.Tracked{}, err.WithFallbackPos(t.At)
		}
		return p.maybeOperator(ast.NewTracked(v, t.At))

	case t.Inner.Kind == token.RawKey && t.Inner.Key == token.KeyFirst:
		p.next()
		v, err := p.parseFirstStatement()
		if err != nil {
			return ast.Tracked{}, err.WithFallbackPos(t.At)
		}
		return p.maybeOperator(ast.NewTracked(v, t.At))

	case t.Inner.Kind == token.RawIdentifier:
		p.next()
		id := toIdentifier(t.Inner.Ident)
		var callable ast.Callable
		if stripped, ok := stripBuiltin(id); ok {
			callable = ast.CallBuiltin{Name: stripped}
		} else {
			callable = ast.CallFunc{Name: id}
		}
		v, err := p.maybeParameterized(ast.NewTracked(callable, t.At))
		if err != nil {
			return ast.Tracked{}, decorate(err, t.At)
		}
		return v, nil

	case t.Inner.Kind == token.RawKey && t.Inner.Key == token.KeyBackslash:
		p.next()
		lamEntity, err := p.parseLambda()
		if err != nil {
			return ast.Tracked{}, err.WithFallbackPos(t.At)
		}
		v := ast.NewTracked(lamEntity, t.At)
		if p.lambdaShouldConsumePipe() {
			p.next() // consume '|'
			arg, err := p.ParseChunk()
			if err != nil {
				return ast.Tracked{}, err
			}
			lam := lamEntity.(ast.Lambda)
			return ast.NewTracked(ast.Entity(ast.Call{
				Callee: ast.CallLambda{Params: lam.Params, Body: lam.Body},
				Args:   []ast.Tracked{arg},
			}), v.At), nil
		}
		return v, nil

	case t.Inner.Kind == token.RawNewLine:
		p.next()
		return p.ParseChunk()

	default:
		tok := p.next()
		return ast.Tracked{}, unexpected(tok)
	}
}

func (p *Parser) parseParen() (ast.Tracked, error) {
	open := p.next()
	v, err := p.ParseChunk()
	if err != nil {
		if de, ok := err.(*diag.Error); ok {
			return ast.Tracked{}, de.WithFallbackPos(open.At)
		}
		return ast.Tracked{}, err
	}
	after := p.next()
	if !(after.Inner.Kind == token.RawKey && after.Inner.Key == token.KeyParenClose) {
		return ast.Tracked{}, diag.New(diag.PAR004, open.At, "unmatched (")
	}

	// Supplemented edge case: a parenthesized bare lambda's following
	// tokens are parsed as its arguments (SPEC_FULL.md, item 1).
	if lam, ok := v.Inner.(ast.Lambda); ok {
		callable := token.NewTracked[ast.Callable](ast.CallLambda{Params: lam.Params, Body: lam.Body}, v.At)
		return p.maybeParameterized(callable)
	}
	return p.maybeOperator(v)
}

// parseParameterized greedily accepts argument chunks (spec.md §4.1,
// "parse_parameterized"): inline literals, parenthesized chunks, lists,
// records, non-operator identifiers, '|' (rest-of-expression-as-one-arg),
// and '#' (closure conversion). Stops at block terminators.
func (p *Parser) parseParameterized() ([]ast.Tracked, error) {
	t := p.peek()
	switch {
	case t.Inner.Kind == token.RawInlined:
		p.next()
		v := ast.NewTracked(ast.Entity(ast.Inlined{Lit: t.Inner.Lit}), t.At)
		rest, err := p.parseParameterized()
		if err != nil {
			return nil, err
		}
		return append([]ast.Tracked{v}, rest...), nil

	case t.Inner.Kind == token.RawIdentifier:
		id := toIdentifier(t.Inner.Ident)
		if id.Class == ident.Operator {
			return nil, nil
		}
		p.next()
		v := ast.NewTracked(ast.Entity(ast.SingleIdent{Ident: id}), t.At)
		rest, err := p.parseParameterized()
		if err != nil {
			return nil, err
		}
		return append([]ast.Tracked{v}, rest...), nil

	case t.Inner.Kind == token.RawKey && t.Inner.Key == token.KeyParenOpen:
		p.next()
		v, err := p.ParseChunk()
		if err != nil {
			return nil, err
		}
		after := p.next()
		if !(after.Inner.Kind == token.RawKey && after.Inner.Key == token.KeyParenClose) {
			return nil, gotButExpected(after, ")")
		}
		rest, err := p.parseParameterized()
		if err != nil {
			return nil, err
		}
		return append([]ast.Tracked{v}, rest...), nil

	case t.Inner.Kind == token.RawKey && t.Inner.Key == token.KeyRecordOpen:
		p.next()
		v, err := p.parseRecord()
		if err != nil {
			return nil, err
		}
		return []ast.Tracked{v}, nil

	case t.Inner.Kind == token.RawKey && t.Inner.Key == token.KeyPipe:
		p.next()
		v, err := p.ParseChunk()
		if err != nil {
			return nil, err
		}
		return []ast.Tracked{v}, nil

	case t.Inner.Kind == token.RawKey && t.Inner.Key == token.KeyListOpen:
		p.next()
		v, err := p.parseList()
		if err != nil {
			return nil, err
		}
		rest, err := p.parseParameterized()
		if err != nil {
			return nil, err
		}
		return append([]ast.Tracked{ast.NewTracked(v, t.At)}, rest...), nil

	case t.Inner.Kind == token.RawKey && t.Inner.Key == token.KeyHash:
		p.next()
		v, perr := p.parseClosureConversion()
		if perr != nil {
			return nil, perr
		}
		rest, err := p.parseParameterized()
		if err != nil {
			return nil, err
		}
		return append([]ast.Tracked{ast.NewTracked(ast.Entity(ast.Pass{Value: v.Inner}), v.At)}, rest...), nil

	case t.Inner.Kind == token.RawHeader,
		t.Inner.Kind == token.RawKey && t.Inner.Key == token.KeyWhere,
		t.Inner.Kind == token.RawKey && t.Inner.Key == token.KeyParenClose,
		t.Inner.Kind == token.RawKey && t.Inner.Key == token.KeyThen,
		t.Inner.Kind == token.RawKey && t.Inner.Key == token.KeyElse,
		t.Inner.Kind == token.RawKey && t.Inner.Key == token.KeyListClose,
		t.Inner.Kind == token.RawKey && t.Inner.Key == token.KeyAnd,
		t.Inner.Kind == token.RawKey && t.Inner.Key == token.KeyElif,
		t.Inner.Kind == token.RawEOF,
		t.Inner.Kind == token.RawKey && t.Inner.Key == token.KeyRecordClose,
		t.Inner.Kind == token.RawKey && t.Inner.Key == token.KeyComma:
		return nil, nil

	case t.Inner.Kind == token.RawNewLine:
		p.next()
		return p.parseParameterized()

	default:
		return nil, diag.New(diag.PAR007, t.At, "unexpected token %s while expecting a parameter", t.Inner)
	}
}

// nextCanBeParameter reports whether the upcoming token could begin an
// argument, without consuming it (peeks through NewLine tokens).
func (p *Parser) nextCanBeParameter() bool {
	t := p.peek()
	switch {
	case t.Inner.Kind == token.RawInlined,
		t.Inner.Kind == token.RawKey && t.Inner.Key == token.KeyPipe,
		t.Inner.Kind == token.RawKey && t.Inner.Key == token.KeyParenOpen,
		t.Inner.Kind == token.RawKey && t.Inner.Key == token.KeyHash,
		t.Inner.Kind == token.RawKey && t.Inner.Key == token.KeyListOpen,
		t.Inner.Kind == token.RawKey && t.Inner.Key == token.KeyRecordOpen:
		return true
	case t.Inner.Kind == token.RawIdentifier:
		return toIdentifier(t.Inner.Ident).Class != ident.Operator
	case t.Inner.Kind == token.RawNewLine:
		p.next()
		return p.nextCanBeParameter()
	default:
		return false
	}
}

// maybeParameterized is run when there *might* be parameters coming to the
// previous callable (spec.md §4.1, "run_maybe_parameterized").
func (p *Parser) maybeParameterized(takes token.Tracked[ast.Callable]) (ast.Tracked, error) {
	if p.nextCanBeParameter() {
		args, err := p.parseParameterized()
		if err != nil {
			return ast.Tracked{}, err
		}
		v := ast.NewTracked(ast.Entity(ast.Call{Callee: takes.Inner, Args: args}), takes.At)
		return p.maybeOperator(v)
	}
	return ast.NewTracked(entityFromCallable(takes.Inner), takes.At), nil
}

// entityFromCallable turns a bare Callable with no arguments into the
// matching zero-argument Entity form.
func entityFromCallable(c ast.Callable) ast.Entity {
	switch n := c.(type) {
	case ast.CallFunc:
		return ast.SingleIdent{Ident: n.Name}
	case ast.CallBuiltin:
		return ast.Call{Callee: n, Args: nil}
	case ast.CallLambda:
		return ast.Lambda{Params: n.Params, Body: n.Body}
	default:
		return ast.Unimplemented{}
	}
}

// maybeOperator is run when there *might* be an operator following a
// parsed value; if not, left is returned unchanged.
func (p *Parser) maybeOperator(left ast.Tracked) (ast.Tracked, error) {
	t := p.peek()
	if t.Inner.Kind != token.RawIdentifier {
		return left, nil
	}
	id := toIdentifier(t.Inner.Ident)
	if id.Class != ident.Operator {
		return left, nil
	}
	p.next()
	return p.parseOperator(left, id, t.At)
}

// parseOperator is run once we already know an operator token follows.
// Every binary operator is right-associative at one precedence level
// (spec.md §9 Open Question (a) — NOT modeled, by design, not "fixed").
func (p *Parser) parseOperator(left ast.Tracked, op ident.Identifier, opPos token.Pos) (ast.Tracked, error) {
	if t := p.peek(); t.Inner.Kind == token.RawEOF {
		return ast.Tracked{}, diag.New(diag.PAR016, opPos, "input ended, expected right-hand operand of %s", op)
	}
	right, err := p.ParseChunk()
	if err != nil {
		if de, ok := err.(*diag.Error); ok {
			return ast.Tracked{}, de.WithFallbackPos(opPos)
		}
		return ast.Tracked{}, err
	}
	v := ast.NewTracked(ast.Entity(ast.Call{
		Callee: ast.CallFunc{Name: op},
		Args:   []ast.Tracked{left, right},
	}), left.At)
	return p.maybeOperator(v)
}
