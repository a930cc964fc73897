package check

import (
	"github.com/sunholo/leaf/internal/ident"
	"github.com/sunholo/leaf/internal/ir"
	"github.com/sunholo/leaf/internal/types"
)

// refKind tags what a name resolved to within a scope chain.
type refKind int

const (
	refNone refKind = iota
	refParam
	refCaptured
)

// scope is one lexical frame: a function's parameter list, or a lambda's
// parameter list plus the captures it has accumulated so far from its
// enclosing scope. The capture list grows lazily as names are resolved
// (spec.md §3's Capturable tagging is built on demand, not up front).
type scope struct {
	paramNames []ident.Identifier
	paramTypes []types.Type

	parent *scope

	captureRefs  []ir.Capturable
	captureTypes []types.Type
}

func newFunctionScope(names []ident.Identifier, types_ []types.Type) *scope {
	return &scope{paramNames: names, paramTypes: types_}
}

func (s *scope) child(names []ident.Identifier, types_ []types.Type) *scope {
	return &scope{paramNames: names, paramTypes: types_, parent: s}
}

// resolve looks up id in s, recursing into the parent chain and building
// this scope's capture list as needed. It never looks up where-bound
// names (spec.md §9's Open Question (c)): no checker path produces a
// ParentWhere capture, and nothing raises CHK006.
func (s *scope) resolve(id ident.Identifier) (refKind, int, types.Type, bool) {
	for i, n := range s.paramNames {
		if n.Equal(id) {
			return refParam, i, s.paramTypes[i], true
		}
	}
	if s.parent == nil {
		return refNone, 0, types.Type{}, false
	}

	pk, pidx, ptyp, ok := s.parent.resolve(id)
	if !ok {
		return refNone, 0, types.Type{}, false
	}

	var cap ir.Capturable
	switch pk {
	case refParam:
		cap = ir.Capturable{Kind: ir.ParentParam, Index: pidx}
	case refCaptured:
		cap = ir.Capturable{Kind: ir.ParentLambda, Index: pidx}
	}

	for i, existing := range s.captureRefs {
		if existing == cap {
			return refCaptured, i, s.captureTypes[i], true
		}
	}
	s.captureRefs = append(s.captureRefs, cap)
	s.captureTypes = append(s.captureTypes, ptyp)
	return refCaptured, len(s.captureRefs) - 1, ptyp, true
}
