package parser

import (
	"strings"
	"unicode"

	"github.com/sunholo/leaf/internal/ident"
	"github.com/sunholo/leaf/internal/token"
)

// isOperatorName reports whether name is made only of symbol characters
// (no letters, digits or '_'), such as the single-rune identifiers the
// lexer emits in token.Lexer's default case; such a name classifies an
// identifier as an Operator (spec.md §3, "classification").
func isOperatorName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return false
		}
	}
	return true
}

// toIdentifier converts the raw lexer shape into a classified ident.Identifier.
func toIdentifier(raw token.IdentRaw) ident.Identifier {
	class := ident.Normal
	if isOperatorName(raw.Name) {
		class = ident.Operator
	}
	return ident.Identifier{
		Path:  append([]string(nil), raw.Path...),
		Name:  raw.Name,
		Class: class,
		Annot: append([]string(nil), raw.Annot...),
	}
}

// stripBuiltin reports whether id's first path segment is the literal
// string "builtin", returning the identifier with that segment removed.
// This is spec.md SPEC_FULL.md's supplemented edge case #2, grounded on
// original_source/src/parser/ast/builder.rs's run_chunk Identifier arm.
func stripBuiltin(id ident.Identifier) (ident.Identifier, bool) {
	if len(id.Path) == 0 || id.Path[0] != "builtin" {
		return id, false
	}
	cp := id
	cp.Path = append([]string(nil), id.Path[1:]...)
	return cp, true
}

// joinPath renders path+name as "a:b:c" for error messages.
func joinPath(path []string, name string) string {
	if len(path) == 0 {
		return name
	}
	return strings.Join(path, ":") + ":" + name
}
