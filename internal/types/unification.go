package types

// Substitution maps a generic slot (0..MaxGeneric) to the concrete Type it
// was unified with. Grounded on the teacher's Substitution map in
// internal/types/unification.go, narrowed from name-keyed type variables
// to spec.md's small integer generic slots.
type Substitution map[int]Type

// Apply recursively substitutes every Generic(g) in t that sub binds.
func Apply(sub Substitution, t Type) Type {
	switch t.Kind {
	case KGeneric:
		if bound, ok := sub[t.Generic]; ok {
			return bound
		}
		return t
	case KList:
		e := Apply(sub, *t.Elem)
		return List(e)
	case KFunction:
		params := make([]Type, len(t.Params))
		for i, p := range t.Params {
			params[i] = Apply(sub, p)
		}
		return Function(params, Apply(sub, *t.Returns))
	default:
		return t
	}
}

// Unify attempts to unify declared (which may contain Generic slots)
// against actual (the call-site argument type, always concrete), extending
// sub. It mirrors the teacher's Unifier.Unify swap-and-retry structure but
// is one-directional: only declared may carry generics, per spec.md §4.2
// step 4 ("pair its declared parameter types with params").
func Unify(declared, actual Type, sub Substitution) (Substitution, bool) {
	if declared.Kind == KGeneric {
		if bound, ok := sub[declared.Generic]; ok {
			return sub, bound.Equal(actual)
		}
		sub[declared.Generic] = actual
		return sub, true
	}
	if declared.Kind != actual.Kind {
		return sub, false
	}
	switch declared.Kind {
	case KList:
		return Unify(*declared.Elem, *actual.Elem, sub)
	case KFunction:
		if len(declared.Params) != len(actual.Params) {
			return sub, false
		}
		for i := range declared.Params {
			var ok bool
			sub, ok = Unify(declared.Params[i], actual.Params[i], sub)
			if !ok {
				return sub, false
			}
		}
		return Unify(*declared.Returns, *actual.Returns, sub)
	case KKnownCustom:
		return sub, declared.ModuleID == actual.ModuleID && declared.TypeID == actual.TypeID
	default:
		return sub, declared.Equal(actual)
	}
}

// UnifyAll unifies each pair of declared/actual parameter types in order,
// threading one substitution through all of them. A variant matches only
// if every pair unifies consistently (spec.md §4.2 step 4).
func UnifyAll(declaredParams, actualParams []Type) (Substitution, bool) {
	if len(declaredParams) != len(actualParams) {
		return nil, false
	}
	sub := Substitution{}
	for i := range declaredParams {
		var ok bool
		sub, ok = Unify(declaredParams[i], actualParams[i], sub)
		if !ok {
			return nil, false
		}
	}
	return sub, true
}
