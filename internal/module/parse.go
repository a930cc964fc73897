package module

import (
	"github.com/sunholo/leaf/internal/diag"
	"github.com/sunholo/leaf/internal/ident"
	"github.com/sunholo/leaf/internal/parser"
	"github.com/sunholo/leaf/internal/token"
	"github.com/sunholo/leaf/internal/types"
)

// Parse builds a ParseModule from one ".lf" file's source text (spec.md §6,
// "Source files"): a sequence of "fn"/"type"/"enum"/"use" headers, each
// followed (for "fn") by an expression body parsed by internal/parser.
//
// Grounded on original_source's top-level declaration loop (the Rust
// leaf's module-file reader) restructured into the teacher's own
// recursive-descent idiom: header-specific token reading lives here, and
// every function body is delegated straight to internal/parser.Parser,
// which already treats a RawHeader token as a body terminator.
func Parse(src []byte, path FileSource) (*ParseModule, *diag.Error) {
	stream := token.NewStream(src, path.String())
	fp := &fileParser{src: stream, expr: parser.New(stream), mod: New(path)}
	if err := fp.run(); err != nil {
		return nil, err
	}
	return fp.mod, nil
}

type fileParser struct {
	src  token.Source
	expr *parser.Parser
	mod  *ParseModule
}

func (fp *fileParser) run() *diag.Error {
	for {
		t := fp.src.Peek()
		switch {
		case t.Inner.Kind == token.RawEOF:
			return nil
		case t.Inner.Kind == token.RawNewLine:
			fp.src.Next()
		case t.Inner.Kind == token.RawHeader && t.Inner.Header == token.HeaderFn:
			if err := fp.parseFn(); err != nil {
				return err
			}
		case t.Inner.Kind == token.RawHeader && t.Inner.Header == token.HeaderType:
			if err := fp.parseTypeDecl(); err != nil {
				return err
			}
		case t.Inner.Kind == token.RawHeader && t.Inner.Header == token.HeaderEnum:
			if err := fp.parseEnumDecl(); err != nil {
				return err
			}
		case t.Inner.Kind == token.RawHeader && t.Inner.Header == token.HeaderUse:
			if err := fp.parseUse(); err != nil {
				return err
			}
		default:
			return diag.New(diag.MOD005, t.At, "expected a top-level fn/type/enum/use declaration, got %s", t.Inner)
		}
	}
}

// fromRaw converts a lexer-shape identifier into a classified
// ident.Identifier. Header-position names (function/parameter/type/
// constructor names) are never operator lexemes, so unlike
// internal/parser's toIdentifier this skips the operator-name check.
func fromRaw(raw token.IdentRaw) ident.Identifier {
	return ident.Identifier{
		Path:  append([]string(nil), raw.Path...),
		Name:  raw.Name,
		Class: ident.Normal,
		Annot: append([]string(nil), raw.Annot...),
	}
}

func asDiag(err error, fallback token.Pos) *diag.Error {
	if err == nil {
		return nil
	}
	if de, ok := err.(*diag.Error); ok {
		return de.WithFallbackPos(fallback)
	}
	return diag.New(diag.MOD005, fallback, "%v", err)
}

func (fp *fileParser) expectIdentifier(what string) (ident.Identifier, *diag.Error) {
	t := fp.src.Next()
	if t.Inner.Kind != token.RawIdentifier {
		return ident.Identifier{}, diag.New(diag.MOD005, t.At, "expected %s, got %s", what, t.Inner)
	}
	return fromRaw(t.Inner.Ident), nil
}

func (fp *fileParser) expectKey(k token.Key, what string) *diag.Error {
	t := fp.src.Next()
	if !(t.Inner.Kind == token.RawKey && t.Inner.Key == k) {
		return diag.New(diag.MOD005, t.At, "expected %s, got %s", what, t.Inner)
	}
	return nil
}

// parseFn reads "fn name param* (t1 t2 … -> r)" (or the zero-parameter
// form "fn name (r)") followed by the body expression.
func (fp *fileParser) parseFn() *diag.Error {
	start := fp.src.Next() // 'fn'
	name, err := fp.expectIdentifier("function name")
	if err != nil {
		return err
	}

	var paramNames []ident.Identifier
	for {
		t := fp.src.Peek()
		if t.Inner.Kind == token.RawKey && t.Inner.Key == token.KeyParenOpen {
			break
		}
		if t.Inner.Kind != token.RawIdentifier {
			return diag.New(diag.MOD005, t.At, "expected a parameter name or ( in fn %s's header, got %s", name, t.Inner)
		}
		fp.src.Next()
		paramNames = append(paramNames, fromRaw(t.Inner.Ident))
	}

	fp.src.Next() // '('
	paramTypes, retType, terr := fp.parseSignatureParen()
	if terr != nil {
		return terr
	}
	if len(paramTypes) != len(paramNames) {
		return diag.New(diag.MOD005, start.At, "fn %s declares %d parameter name(s) but %d type(s)", name, len(paramNames), len(paramTypes))
	}

	params := make([]Param, len(paramNames))
	for i := range paramNames {
		params[i] = Param{Name: paramNames[i], Type: paramTypes[i]}
	}

	body, perr := fp.expr.ParseChunk()
	if perr != nil {
		return asDiag(perr, start.At)
	}

	fp.mod.AddFunction(name.Name, &FunctionBuilder{
		Name:       name,
		Params:     params,
		ReturnType: types.Known(retType),
		Body:       body,
	})
	return nil
}

// parseSignatureParen reads a signature's parenthesized clause, the '('
// already consumed: zero-or-more parameter types, then either "-> ret )"
// or, for a zero-parameter function, a single bare return type and ")"
// (spec.md §8's "fn main (int)" examples have no arrow).
func (fp *fileParser) parseSignatureParen() ([]types.Type, types.Type, *diag.Error) {
	var terms []types.Type
	for {
		t := fp.src.Peek()
		if t.Inner.Kind == token.RawKey && (t.Inner.Key == token.KeyArrow || t.Inner.Key == token.KeyParenClose) {
			break
		}
		term, err := fp.parseTypeTerm()
		if err != nil {
			return nil, types.Type{}, err
		}
		terms = append(terms, term)
	}

	t := fp.src.Next()
	if t.Inner.Kind == token.RawKey && t.Inner.Key == token.KeyArrow {
		ret, err := fp.parseTypeTerm()
		if err != nil {
			return nil, types.Type{}, err
		}
		if cerr := fp.expectKey(token.KeyParenClose, ") closing a signature"); cerr != nil {
			return nil, types.Type{}, cerr
		}
		return terms, ret, nil
	}

	// t is the close-paren itself: the zero-parameter form, where the one
	// type found is the bare return type.
	if len(terms) != 1 {
		return nil, types.Type{}, diag.New(diag.MOD005, t.At, "a signature with no -> must name exactly one return type, got %d", len(terms))
	}
	return nil, terms[0], nil
}

// parseTypeTerm reads one type: a builtin name (int/float/bool), the
// "nothing" literal keyword, a custom type name, a "[elem]" list type, or
// a parenthesized function type "(p1 p2 … -> r)".
func (fp *fileParser) parseTypeTerm() (types.Type, *diag.Error) {
	t := fp.src.Peek()
	switch {
	case t.Inner.Kind == token.RawInlined && t.Inner.Lit.Kind == token.LitNothing:
		fp.src.Next()
		return types.Nothing(), nil

	case t.Inner.Kind == token.RawIdentifier:
		fp.src.Next()
		switch {
		case len(t.Inner.Ident.Path) > 0:
			return types.Custom(fromRaw(t.Inner.Ident)), nil
		case t.Inner.Ident.Name == "int":
			return types.Int(), nil
		case t.Inner.Ident.Name == "float":
			return types.Float(), nil
		case t.Inner.Ident.Name == "bool":
			return types.Bool(), nil
		default:
			return types.Custom(fromRaw(t.Inner.Ident)), nil
		}

	case t.Inner.Kind == token.RawKey && t.Inner.Key == token.KeyListOpen:
		fp.src.Next()
		elem, err := fp.parseTypeTerm()
		if err != nil {
			return types.Type{}, err
		}
		if cerr := fp.expectKey(token.KeyListClose, "] closing a list type"); cerr != nil {
			return types.Type{}, cerr
		}
		return types.List(elem), nil

	case t.Inner.Kind == token.RawKey && t.Inner.Key == token.KeyParenOpen:
		fp.src.Next()
		params, ret, err := fp.parseSignatureParen()
		if err != nil {
			return types.Type{}, err
		}
		return types.Function(params, ret), nil

	default:
		fp.src.Next()
		return types.Type{}, diag.New(diag.MOD005, t.At, "expected a type, got %s", t.Inner)
	}
}

// parseUse reads "use a:b:c", recording the import identifier for the
// loader to resolve later (spec.md §3: "resolved at link time").
func (fp *fileParser) parseUse() *diag.Error {
	fp.src.Next() // 'use'
	id, err := fp.expectIdentifier("a module path after use")
	if err != nil {
		return err
	}
	fp.mod.Uses = append(fp.mod.Uses, id)
	return nil
}

// parseTypeDecl reads "type Name { field t, field t, … }" as a single-
// variant CustomType (spec §9 Open Question (b): field names are
// structural only, discarded after arity/order is recorded).
func (fp *fileParser) parseTypeDecl() *diag.Error {
	fp.src.Next() // 'type'
	name, err := fp.expectIdentifier("a type name after type")
	if err != nil {
		return err
	}
	if cerr := fp.expectKey(token.KeyRecordOpen, "{ opening type "+name.String()+"'s fields"); cerr != nil {
		return cerr
	}

	var fields []types.Type
	for {
		t := fp.src.Peek()
		switch {
		case t.Inner.Kind == token.RawKey && t.Inner.Key == token.KeyRecordClose:
			fp.src.Next()
			fp.mod.AddType(&CustomType{Name: name, Variants: []Variant{{Name: name.Name, Fields: fields}}})
			return nil
		case t.Inner.Kind == token.RawKey && t.Inner.Key == token.KeyComma, t.Inner.Kind == token.RawNewLine:
			fp.src.Next()
		case t.Inner.Kind == token.RawIdentifier:
			fp.src.Next() // field name, positional only
			ft, ferr := fp.parseTypeTerm()
			if ferr != nil {
				return ferr
			}
			fields = append(fields, ft)
		default:
			return diag.New(diag.MOD005, t.At, "expected a field name or } inside type %s, got %s", name, t.Inner)
		}
	}
}

// parseEnumDecl reads "enum Name { Ctor t t, Ctor2 t, … }": each variant
// is a constructor name followed by zero-or-more positional field types.
func (fp *fileParser) parseEnumDecl() *diag.Error {
	fp.src.Next() // 'enum'
	name, err := fp.expectIdentifier("an enum name after enum")
	if err != nil {
		return err
	}
	if cerr := fp.expectKey(token.KeyRecordOpen, "{ opening enum "+name.String()+"'s variants"); cerr != nil {
		return cerr
	}

	var variants []Variant
	for {
		t := fp.src.Peek()
		switch {
		case t.Inner.Kind == token.RawKey && t.Inner.Key == token.KeyRecordClose:
			fp.src.Next()
			fp.mod.AddType(&CustomType{Name: name, Variants: variants})
			return nil
		case t.Inner.Kind == token.RawKey && t.Inner.Key == token.KeyComma, t.Inner.Kind == token.RawNewLine:
			fp.src.Next()
		case t.Inner.Kind == token.RawIdentifier:
			fp.src.Next()
			ctor := t.Inner.Ident.Name
			var fields []types.Type
			for {
				nt := fp.src.Peek()
				if nt.Inner.Kind == token.RawKey && (nt.Inner.Key == token.KeyComma || nt.Inner.Key == token.KeyRecordClose) {
					break
				}
				if nt.Inner.Kind == token.RawNewLine {
					fp.src.Next()
					continue
				}
				ft, ferr := fp.parseTypeTerm()
				if ferr != nil {
					return ferr
				}
				fields = append(fields, ft)
			}
			variants = append(variants, Variant{Name: ctor, Fields: fields})
		default:
			return diag.New(diag.MOD005, t.At, "expected a constructor name or } inside enum %s, got %s", name, t.Inner)
		}
	}
}
