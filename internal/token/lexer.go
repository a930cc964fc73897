package token

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

var bomUTF8 = []byte{0xEF, 0xBB, 0xBF}

// Normalize strips a UTF-8 BOM and applies Unicode NFC normalization so
// that lexically equivalent source produces identical token streams
// regardless of encoding variations.
func Normalize(src []byte) []byte {
	src = trimBOM(src)
	if !norm.NFC.IsNormal(src) {
		src = norm.NFC.Bytes(src)
	}
	return src
}

func trimBOM(src []byte) []byte {
	if len(src) >= 3 && src[0] == bomUTF8[0] && src[1] == bomUTF8[1] && src[2] == bomUTF8[2] {
		return src[3:]
	}
	return src
}

var headerWords = map[string]HeaderKind{
	"fn": HeaderFn, "type": HeaderType, "enum": HeaderEnum,
	"use": HeaderUse, "where": HeaderWhere,
}

var keyWords = map[string]Key{
	"if": KeyIf, "elif": KeyElif, "else": KeyElse, "then": KeyThen,
	"first": KeyFirst, "and": KeyAnd,
}

// Lexer scans leaf source into a flat rune-by-rune reader. It has no
// peek/undo of its own — that buffering lives in Stream, which wraps a
// Lexer to implement token.Source.
type Lexer struct {
	input        string
	position     int
	readPosition int
	ch           rune
	line         int
	column       int
	file         string
}

// New creates a Lexer over already-normalized source.
func New(input, filename string) *Lexer {
	l := &Lexer{input: input, file: filename, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		return
	}
	ch, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.position = l.readPosition
	l.readPosition += size
	l.column++
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	l.ch = ch
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	ch, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return ch
}

func (l *Lexer) skipSpaces() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
		l.readChar()
	}
}

func (l *Lexer) skipComment() {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
}

func isIdentStart(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_'
}

func isIdentPart(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_' || ch == ':'
}

func isDigit(ch rune) bool { return ch >= '0' && ch <= '9' }

func (l *Lexer) pos() Pos {
	return Pos{File: l.file, Line: l.line, Column: l.column, Offset: l.position}
}

// NextToken scans and returns the next RawToken, tracked with its position.
func (l *Lexer) NextToken() Tracked[RawToken] {
	l.skipSpaces()

	if l.ch == '-' && l.peekChar() == '-' {
		l.skipComment()
		return l.NextToken()
	}

	start := l.pos()

	switch {
	case l.ch == 0:
		return NewTracked(RawToken{Kind: RawEOF}, start)
	case l.ch == '\n':
		l.readChar()
		return NewTracked(RawToken{Kind: RawNewLine}, start)
	case l.ch == '(':
		l.readChar()
		return NewTracked(RawToken{Kind: RawKey, Key: KeyParenOpen}, start)
	case l.ch == ')':
		l.readChar()
		return NewTracked(RawToken{Kind: RawKey, Key: KeyParenClose}, start)
	case l.ch == '[':
		l.readChar()
		return NewTracked(RawToken{Kind: RawKey, Key: KeyListOpen}, start)
	case l.ch == ']':
		l.readChar()
		return NewTracked(RawToken{Kind: RawKey, Key: KeyListClose}, start)
	case l.ch == '{':
		l.readChar()
		return NewTracked(RawToken{Kind: RawKey, Key: KeyRecordOpen}, start)
	case l.ch == '}':
		l.readChar()
		return NewTracked(RawToken{Kind: RawKey, Key: KeyRecordClose}, start)
	case l.ch == ',':
		l.readChar()
		return NewTracked(RawToken{Kind: RawKey, Key: KeyComma}, start)
	case l.ch == '.':
		l.readChar()
		return NewTracked(RawToken{Kind: RawKey, Key: KeyDot}, start)
	case l.ch == '\\':
		l.readChar()
		return NewTracked(RawToken{Kind: RawKey, Key: KeyBackslash}, start)
	case l.ch == '|':
		l.readChar()
		return NewTracked(RawToken{Kind: RawKey, Key: KeyPipe}, start)
	case l.ch == '#':
		l.readChar()
		return NewTracked(RawToken{Kind: RawKey, Key: KeyHash}, start)
	case l.ch == '=':
		l.readChar()
		return NewTracked(RawToken{Kind: RawKey, Key: KeyAssign}, start)
	case l.ch == '?' && l.peekChar() == '?':
		l.readChar()
		l.readChar()
		if l.ch == '?' {
			l.readChar()
		}
		return NewTracked(RawToken{Kind: RawUnimplemented}, start)
	case l.ch == '-' && l.peekChar() == '>':
		l.readChar()
		l.readChar()
		return NewTracked(RawToken{Kind: RawKey, Key: KeyArrow}, start)
	case isDigit(l.ch):
		return l.readNumber(start)
	case isIdentStart(l.ch):
		return l.readIdentOrKeyword(start)
	default:
		// Unknown rune: treat as an operator identifier of one rune, e.g. '+'.
		name := string(l.ch)
		l.readChar()
		return NewTracked(RawToken{Kind: RawIdentifier, Ident: IdentRaw{Name: name}}, start)
	}
}

func (l *Lexer) readNumber(start Pos) Tracked[RawToken] {
	var sb strings.Builder
	isFloat := false
	for isDigit(l.ch) {
		sb.WriteRune(l.ch)
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		isFloat = true
		sb.WriteRune(l.ch)
		l.readChar()
		for isDigit(l.ch) {
			sb.WriteRune(l.ch)
			l.readChar()
		}
	}
	if isFloat {
		f, _ := strconv.ParseFloat(sb.String(), 64)
		return NewTracked(RawToken{Kind: RawInlined, Lit: Inlined{Kind: LitFloat, Flt: f}}, start)
	}
	n, _ := strconv.ParseInt(sb.String(), 10, 64)
	return NewTracked(RawToken{Kind: RawInlined, Lit: Inlined{Kind: LitInt, Int: n}}, start)
}

func (l *Lexer) readIdentOrKeyword(start Pos) Tracked[RawToken] {
	var segs []string
	var sb strings.Builder
	for isIdentPart(l.ch) {
		if l.ch == ':' {
			segs = append(segs, sb.String())
			sb.Reset()
			l.readChar()
			continue
		}
		sb.WriteRune(l.ch)
		l.readChar()
	}
	last := sb.String()

	if len(segs) == 0 {
		switch last {
		case "true":
			return NewTracked(RawToken{Kind: RawInlined, Lit: Inlined{Kind: LitBool, Bool: true}}, start)
		case "false":
			return NewTracked(RawToken{Kind: RawInlined, Lit: Inlined{Kind: LitBool, Bool: false}}, start)
		case "nothing":
			return NewTracked(RawToken{Kind: RawInlined, Lit: Inlined{Kind: LitNothing}}, start)
		}
		if hk, ok := headerWords[last]; ok {
			return NewTracked(RawToken{Kind: RawHeader, Header: hk}, start)
		}
		if k, ok := keyWords[last]; ok {
			return NewTracked(RawToken{Kind: RawKey, Key: k}, start)
		}
	}

	segs = append(segs, last)
	path := segs[:len(segs)-1]
	name := segs[len(segs)-1]
	return NewTracked(RawToken{Kind: RawIdentifier, Ident: IdentRaw{Path: path, Name: name}}, start)
}
