// Package ident defines the qualified-name identifier shared by the AST,
// type checker and module table (spec.md §3, "Identifier").
package ident

import "strings"

// Class classifies what an Identifier names.
type Class int

const (
	Normal Class = iota
	Operator
	TypeName
)

func (c Class) String() string {
	switch c {
	case Operator:
		return "operator"
	case TypeName:
		return "type"
	default:
		return "normal"
	}
}

// Identifier is a qualified name: an ordered path of module segments, a
// final name, a classification, and an optional ordered list of type
// annotations (the "<T,U>" syntax). Two identifiers are equal when all
// four components match.
type Identifier struct {
	Path  []string
	Name  string
	Class Class
	// Annot is the ordered list of type-annotation strings written as
	// "<T,U>" after the name. Interpreted lazily by internal/types so this
	// package stays independent of the type representation.
	Annot []string
}

// New builds a Normal identifier with no path and no annotations.
func New(name string) Identifier {
	return Identifier{Name: name, Class: Normal}
}

// WithPath returns a copy of id whose path is replaced by a copy of path.
func (id Identifier) WithPath(path []string) Identifier {
	cp := id
	cp.Path = append([]string(nil), path...)
	return cp
}

// Equal reports whether id and other name the same thing: same path, same
// name, same class, same annotation list in the same order.
func (id Identifier) Equal(other Identifier) bool {
	if id.Name != other.Name || id.Class != other.Class {
		return false
	}
	if len(id.Path) != len(other.Path) || len(id.Annot) != len(other.Annot) {
		return false
	}
	for i := range id.Path {
		if id.Path[i] != other.Path[i] {
			return false
		}
	}
	for i := range id.Annot {
		if id.Annot[i] != other.Annot[i] {
			return false
		}
	}
	return true
}

// String renders the identifier the way source would: "a:b:name<T,U>".
func (id Identifier) String() string {
	var sb strings.Builder
	for _, seg := range id.Path {
		sb.WriteString(seg)
		sb.WriteString(":")
	}
	sb.WriteString(id.Name)
	if len(id.Annot) > 0 {
		sb.WriteString("<")
		sb.WriteString(strings.Join(id.Annot, ","))
		sb.WriteString(">")
	}
	return sb.String()
}

// IsQualified reports whether id has an explicit module path segment
// (e.g. "list:map" vs bare "map").
func (id Identifier) IsQualified() bool { return len(id.Path) > 0 }
