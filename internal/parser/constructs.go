package parser

import (
	"github.com/sunholo/leaf/internal/ast"
	"github.com/sunholo/leaf/internal/diag"
	"github.com/sunholo/leaf/internal/ident"
	"github.com/sunholo/leaf/internal/token"
)

// parseList parses comma-separated chunks terminated by ']'; empty list
// permitted (spec.md §4.1, "run_list").
func (p *Parser) parseList() (ast.Entity, *diag.Error) {
	if t := p.peek(); t.Inner.Kind == token.RawKey && t.Inner.Key == token.KeyListClose {
		p.next()
		return ast.List{}, nil
	}

	var items []ast.Tracked
	for {
		v, err := p.ParseChunk()
		if err != nil {
			return nil, asDiag(err)
		}
		items = append(items, v)

		after := p.next()
		switch {
		case after.Inner.Kind == token.RawKey && after.Inner.Key == token.KeyListClose:
			return ast.List{Items: items}, nil
		case after.Inner.Kind == token.RawKey && after.Inner.Key == token.KeyComma:
			continue
		default:
			return nil, gotButExpected(after, ",", "]")
		}
	}
}

// parseRecord parses "TypeName . field = expr, … }" (spec.md §4.1,
// "Record literal"). Fields preserve declaration order.
func (p *Parser) parseRecord() (ast.Tracked, error) {
	nameTok := p.next()
	if nameTok.Inner.Kind != token.RawIdentifier {
		return ast.Tracked{}, gotButExpected(nameTok, "type name")
	}
	typeName := toIdentifier(nameTok.Inner.Ident)

	dot := p.next()
	if !(dot.Inner.Kind == token.RawKey && dot.Inner.Key == token.KeyDot) {
		return ast.Tracked{}, gotButExpected(dot, ".")
	}

	var fields []ast.RecordField
	for {
		fieldTok := p.next()
		if fieldTok.Inner.Kind != token.RawIdentifier {
			return ast.Tracked{}, gotButExpected(fieldTok, "field name")
		}
		assign := p.next()
		if !(assign.Inner.Kind == token.RawKey && assign.Inner.Key == token.KeyAssign) {
			return ast.Tracked{}, gotButExpected(assign, "=")
		}
		val, err := p.ParseChunk()
		if err != nil {
			return ast.Tracked{}, err
		}
		fields = append(fields, ast.RecordField{Name: fieldTok.Inner.Ident.Name, Value: val})

		after := p.next()
		switch {
		case after.Inner.Kind == token.RawKey && after.Inner.Key == token.KeyRecordClose:
			return ast.NewTracked(ast.Record{TypeName: typeName, Fields: fields}, nameTok.At), nil
		case after.Inner.Kind == token.RawKey && after.Inner.Key == token.KeyComma:
			continue
		default:
			return ast.Tracked{}, gotButExpected(after, ",", "}")
		}
	}
}

// parseIfExpression parses "cond then eval" pairs separated by "elif",
// terminated by "else chunk" (spec.md §4.1).
func (p *Parser) parseIfExpression() (ast.Entity, *diag.Error) {
	var branches []ast.Branch
	for {
		cond, err := p.ParseChunk()
		if err != nil {
			return nil, asDiag(err)
		}
		if derr := p.expectThen(); derr != nil {
			return nil, derr
		}
		eval, err := p.ParseChunk()
		if err != nil {
			return nil, asDiag(err)
		}
		branches = append(branches, ast.Branch{Cond: cond, Eval: eval})

		cont, elseBranch, derr := p.ifContinuation()
		if derr != nil {
			return nil, derr
		}
		if cont {
			continue
		}
		return ast.If{Branches: branches, Else: elseBranch}, nil
	}
}

func (p *Parser) expectThen() *diag.Error {
	for {
		after := p.next()
		switch {
		case after.Inner.Kind == token.RawKey && after.Inner.Key == token.KeyThen:
			return nil
		case after.Inner.Kind == token.RawNewLine:
			continue
		case after.Inner.Kind == token.RawEOF:
			return diag.New(diag.PAR008, after.At, "if-expression missing \"then\"")
		default:
			return diag.New(diag.PAR009, after.At, "if-expression wanted \"then\", got %s", after.Inner)
		}
	}
}

// ifContinuation reads the token after a branch's eval: "elif" (continue),
// "else chunk" (terminate), or a newline (retry).
func (p *Parser) ifContinuation() (cont bool, elseBranch ast.Tracked, err *diag.Error) {
	for {
		after := p.next()
		switch {
		case after.Inner.Kind == token.RawKey && after.Inner.Key == token.KeyElif:
			return true, ast.Tracked{}, nil
		case after.Inner.Kind == token.RawNewLine:
			continue
		case after.Inner.Kind == token.RawKey && after.Inner.Key == token.KeyElse:
			last, e := p.ParseChunk()
			if e != nil {
				return false, ast.Tracked{}, asDiag(e)
			}
			return false, last, nil
		case after.Inner.Kind == token.RawEOF:
			return false, ast.Tracked{}, diag.New(diag.PAR003, after.At, "input ended, expected one of [elif else]")
		default:
			return false, ast.Tracked{}, gotButExpected(after, "elif", "else")
		}
	}
}

// parseFirstStatement parses expression chunks separated by "and",
// terminated by "then chunk" (spec.md §4.1).
func (p *Parser) parseFirstStatement() (ast.Entity, *diag.Error) {
	var stmts []ast.Tracked
outer:
	for {
		v, err := p.ParseChunk()
		if err != nil {
			return nil, asDiag(err)
		}
		stmts = append(stmts, v)

		for {
			after := p.next()
			switch {
			case after.Inner.Kind == token.RawKey && after.Inner.Key == token.KeyAnd:
				continue outer
			case after.Inner.Kind == token.RawNewLine:
				continue
			case after.Inner.Kind == token.RawKey && after.Inner.Key == token.KeyThen:
				eval, e := p.ParseChunk()
				if e != nil {
					return nil, asDiag(e)
				}
				return ast.First{Stmts: stmts, Eval: eval}, nil
			case after.Inner.Kind == token.RawEOF:
				return nil, diag.New(diag.PAR010, after.At, "first-statement missing \"then\"")
			default:
				return nil, diag.New(diag.PAR011, after.At, "first-statement wanted \"then\", got %s", after.Inner)
			}
		}
	}
}

// parseLambda parses parameter identifiers until "->", then one chunk for
// the body (spec.md §4.1, "run_lambda").
func (p *Parser) parseLambda() (ast.Entity, *diag.Error) {
	var params []ident.Identifier
	for {
		t := p.next()
		switch {
		case t.Inner.Kind == token.RawIdentifier:
			params = append(params, toIdentifier(t.Inner.Ident))
		case t.Inner.Kind == token.RawKey && t.Inner.Key == token.KeyArrow:
			body, err := p.ParseChunk()
			if err != nil {
				return nil, asDiag(err)
			}
			return ast.Lambda{Params: params, Body: body}, nil
		default:
			return nil, gotButExpected(t, "lambda parameter", "->")
		}
	}
}

// lambdaShouldConsumePipe peeks (through newlines) for a '|' following a
// lambda body, enabling the unparenthesized pipe form of lambda
// application (spec.md §4.1).
func (p *Parser) lambdaShouldConsumePipe() bool {
	t := p.peek()
	switch {
	case t.Inner.Kind == token.RawKey && t.Inner.Key == token.KeyPipe:
		return true
	case t.Inner.Kind == token.RawNewLine:
		p.next()
		return p.lambdaShouldConsumePipe()
	default:
		return false
	}
}

// parseClosureConversion parses the value following a '#' marker into a
// Passable (spec.md §4.1, "Closure conversion"). Only inline literals,
// bare function identifiers, partial applications, and lambda literals are
// valid; anything else raises InvalidClosure.
func (p *Parser) parseClosureConversion() (token.Tracked[ast.Passable], *diag.Error) {
	t := p.next()
	switch {
	case t.Inner.Kind == token.RawKey && t.Inner.Key == token.KeyParenOpen:
		entity, err := p.ParseChunk()
		if err != nil {
			return token.Tracked[ast.Passable]{}, asDiag(err)
		}
		after := p.next()
		if !(after.Inner.Kind == token.RawKey && after.Inner.Key == token.KeyParenClose) {
			return token.Tracked[ast.Passable]{}, gotButExpected(after, ")")
		}
		passable, perr := toPassable(entity.Inner)
		if perr != nil {
			return token.Tracked[ast.Passable]{}, diag.New(diag.PAR013, entity.At, "%v", perr)
		}
		return token.NewTracked(passable, entity.At), nil

	case t.Inner.Kind == token.RawIdentifier:
		id := toIdentifier(t.Inner.Ident)
		return token.NewTracked[ast.Passable](ast.PassFunc{Name: id}, t.At), nil

	case t.Inner.Kind == token.RawInlined:
		return token.NewTracked[ast.Passable](ast.PassInlined{Lit: t.Inner.Lit}, t.At), nil

	default:
		return token.Tracked[ast.Passable]{}, diag.New(diag.PAR014, t.At, "invalid closure target %s", t.Inner)
	}
}

// toPassable narrows an Entity down to the subset valid as a first-class
// value, matching the variants of Passable (spec.md §4.1).
func toPassable(e ast.Entity) (ast.Passable, error) {
	switch n := e.(type) {
	case ast.Inlined:
		return ast.PassInlined{Lit: n.Lit}, nil
	case ast.SingleIdent:
		return ast.PassFunc{Name: n.Ident}, nil
	case ast.Call:
		return ast.PassPartial{Callee: n.Callee, Args: n.Args}, nil
	case ast.Lambda:
		return ast.PassLambda{Params: n.Params, Body: n.Body}, nil
	default:
		return nil, diag.New(diag.PAR013, token.Pos{}, "invalid closure target: %T is not a valid Passable form", e)
	}
}

func asDiag(err error) *diag.Error {
	if de, ok := err.(*diag.Error); ok {
		return de
	}
	return diag.New(diag.PAR001, token.Pos{}, "%v", err)
}
