// Package types implements the leaf type system described in spec.md §3:
// the Type sum, inference cells for deferred element-type inference, and
// generic unification used by overload resolution (spec.md §4.2 step 4).
//
// Grounded on the teacher's internal/types package (types.go, types_v2.go,
// unification.go) but reduced from its row-polymorphic, kind-checked type
// class system down to the smaller sum spec.md §3 names.
package types

import (
	"fmt"

	"github.com/sunholo/leaf/internal/ident"
)

// Kind tags which Type variant a value holds.
type Kind int

const (
	KNothing Kind = iota
	KInt
	KFloat
	KBool
	KGeneric
	KList
	KFunction
	KCustom
	KKnownCustom
)

// Generic slots run 0..26, matching spec.md §3 ("g ∈ 0..26").
const MaxGeneric = 26

// Type is the sum described in spec.md §3. Zero value is Nothing.
type Type struct {
	Kind Kind

	// KGeneric
	Generic int

	// KList
	Elem *Type

	// KFunction
	Params  []Type
	Returns *Type

	// KCustom (pre type-check)
	Name ident.Identifier

	// KKnownCustom (post type-check)
	ModuleID int
	TypeID   int
}

func Nothing() Type { return Type{Kind: KNothing} }
func Int() Type      { return Type{Kind: KInt} }
func Float() Type    { return Type{Kind: KFloat} }
func Bool() Type     { return Type{Kind: KBool} }

func Generic(g int) Type { return Type{Kind: KGeneric, Generic: g} }

func List(elem Type) Type {
	e := elem
	return Type{Kind: KList, Elem: &e}
}

func Function(params []Type, returns Type) Type {
	r := returns
	return Type{Kind: KFunction, Params: append([]Type(nil), params...), Returns: &r}
}

func Custom(name ident.Identifier) Type {
	return Type{Kind: KCustom, Name: name}
}

func KnownCustom(moduleID, typeID int) Type {
	return Type{Kind: KKnownCustom, ModuleID: moduleID, TypeID: typeID}
}

// IsCustom reports whether t still carries an unresolved Custom reference;
// spec.md §3's invariant is that no Custom remains after type checking.
func (t Type) IsCustom() bool { return t.Kind == KCustom }

// Equal does structural equality, recursing into List/Function members.
func (t Type) Equal(o Type) bool {
	if t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case KGeneric:
		return t.Generic == o.Generic
	case KList:
		return t.Elem.Equal(*o.Elem)
	case KFunction:
		if len(t.Params) != len(o.Params) {
			return false
		}
		for i := range t.Params {
			if !t.Params[i].Equal(o.Params[i]) {
				return false
			}
		}
		return t.Returns.Equal(*o.Returns)
	case KCustom:
		return t.Name.Equal(o.Name)
	case KKnownCustom:
		return t.ModuleID == o.ModuleID && t.TypeID == o.TypeID
	default:
		return true
	}
}

func (t Type) String() string {
	switch t.Kind {
	case KNothing:
		return "nothing"
	case KInt:
		return "int"
	case KFloat:
		return "float"
	case KBool:
		return "bool"
	case KGeneric:
		return fmt.Sprintf("#%d", t.Generic)
	case KList:
		return "[" + t.Elem.String() + "]"
	case KFunction:
		parts := ""
		for i, p := range t.Params {
			if i > 0 {
				parts += " "
			}
			parts += p.String()
		}
		return "(" + parts + " -> " + t.Returns.String() + ")"
	case KCustom:
		return t.Name.String()
	case KKnownCustom:
		return fmt.Sprintf("custom(%d.%d)", t.ModuleID, t.TypeID)
	default:
		return "<?>"
	}
}
