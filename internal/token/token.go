// Package token defines the tokenizer interface the parser consumes:
// a typed stream of RawToken values with peek/next/undo and a byte-offset
// position. The lexical scanner is deliberately simple plumbing (see
// spec.md §1, "out of scope as external collaborators") — the interesting
// design lives in internal/parser, internal/check and internal/runtime.
package token

import "github.com/sunholo/leaf/internal/diag"

// Pos is an alias of diag.Pos so every package shares one position type.
type Pos = diag.Pos

// Tracked pairs a value with the source position it started at.
type Tracked[T any] struct {
	Inner T
	At    Pos
}

// NewTracked wraps v with pos.
func NewTracked[T any](v T, pos Pos) Tracked[T] {
	return Tracked[T]{Inner: v, At: pos}
}

// Key enumerates keywords and punctuation tokens.
type Key int

const (
	KeyParenOpen Key = iota
	KeyParenClose
	KeyListOpen
	KeyListClose
	KeyRecordOpen
	KeyRecordClose
	KeyComma
	KeyDot
	KeyBackslash // '\' lambda introducer
	KeyArrow     // '->'
	KeyPipe      // '|'
	KeyHash      // '#' closure-pass marker
	KeyAssign    // '=' in record field bindings
	KeyIf
	KeyElif
	KeyElse
	KeyThen
	KeyFirst
	KeyAnd
	KeyThenFirst // not emitted by Lexer; a first-statement's 'then' is KeyThen
	KeyWhere
	KeyPrimitiveUnimplemented
)

var keyNames = map[Key]string{
	KeyParenOpen: "(", KeyParenClose: ")",
	KeyListOpen: "[", KeyListClose: "]",
	KeyRecordOpen: "{", KeyRecordClose: "}",
	KeyComma: ",", KeyDot: ".", KeyBackslash: "\\",
	KeyArrow: "->", KeyPipe: "|", KeyHash: "#", KeyAssign: "=",
	KeyIf: "if", KeyElif: "elif", KeyElse: "else", KeyThen: "then",
	KeyFirst: "first", KeyAnd: "and", KeyWhere: "where",
	KeyPrimitiveUnimplemented: "unimplemented",
}

func (k Key) String() string {
	if s, ok := keyNames[k]; ok {
		return s
	}
	return "<unknown-key>"
}

// HeaderKind enumerates the top-level declaration headers.
type HeaderKind int

const (
	HeaderFn HeaderKind = iota
	HeaderType
	HeaderEnum
	HeaderUse
	HeaderWhere
)

func (h HeaderKind) String() string {
	switch h {
	case HeaderFn:
		return "fn"
	case HeaderType:
		return "type"
	case HeaderEnum:
		return "enum"
	case HeaderUse:
		return "use"
	case HeaderWhere:
		return "where"
	default:
		return "<unknown-header>"
	}
}

// LitKind enumerates inline literal kinds.
type LitKind int

const (
	LitInt LitKind = iota
	LitFloat
	LitBool
	LitNothing
)

// Inlined is a compile-time literal value carried by a token.
type Inlined struct {
	Kind LitKind
	Int  int64
	Flt  float64
	Bool bool
}

// IdentRaw is the raw shape of an identifier token before it's classified
// into internal/ident.Identifier: an ordered path, a final name, and an
// optional ordered list of raw type-annotation strings (the "<T,U>" syntax,
// parsed lazily so the tokenizer stays type-agnostic).
type IdentRaw struct {
	Path  []string
	Name  string
	Annot []string
}

// RawKind tags which variant a RawToken holds.
type RawKind int

const (
	RawIdentifier RawKind = iota
	RawHeader
	RawKey
	RawInlined
	RawNewLine
	RawUnimplemented
	RawEOF
)

// RawToken is the token shape the tokenizer emits, matching spec.md §6.
type RawToken struct {
	Kind   RawKind
	Ident  IdentRaw
	Header HeaderKind
	Key    Key
	Lit    Inlined
}

func (r RawToken) String() string {
	switch r.Kind {
	case RawIdentifier:
		return r.Ident.Name
	case RawHeader:
		return r.Header.String()
	case RawKey:
		return r.Key.String()
	case RawInlined:
		return "<literal>"
	case RawNewLine:
		return "<newline>"
	case RawUnimplemented:
		return "???"
	case RawEOF:
		return "<eof>"
	default:
		return "<unknown-token>"
	}
}

// Source is the interface internal/parser consumes: peek/next/undo over a
// stream of Tracked[RawToken], plus the current byte offset.
type Source interface {
	Peek() Tracked[RawToken]
	Next() Tracked[RawToken]
	Undo()
	Position() int
}
