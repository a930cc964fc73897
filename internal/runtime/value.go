// Package runtime implements the tree-walking evaluator (spec.md §4.5): a
// frame-per-call walker with explicit parameter and capture buffers, and a
// single run loop that rewrites the current frame in place wherever a
// node's value is itself another node's value, giving O(1) native stack
// depth for self- and mutual tail recursion.
//
// Grounded on the teacher's internal/eval package (value.go's Value sum,
// eval_core.go's node-dispatch evaluator), diverging deliberately from its
// native-recursion call shape: every position spec.md §4.5 names as
// tail-eliminated rewrites frame.entity/params/captured and loops instead
// of recursing.
package runtime

import (
	"fmt"
	"strings"

	"github.com/sunholo/leaf/internal/ir"
)

// Value is a runtime value (spec.md §3, "Value").
type Value interface {
	valueNode()
	String() string
}

type Int struct{ V int64 }

func (Int) valueNode()        {}
func (v Int) String() string { return fmt.Sprintf("%d", v.V) }

type Float struct{ V float64 }

func (Float) valueNode()        {}
func (v Float) String() string { return fmt.Sprintf("%g", v.V) }

type Bool struct{ V bool }

func (Bool) valueNode() {}
func (v Bool) String() string {
	if v.V {
		return "true"
	}
	return "false"
}

type Nothing struct{}

func (Nothing) valueNode()     {}
func (Nothing) String() string { return "nothing" }

// List is a positional sequence of values.
type List struct{ Items []Value }

func (List) valueNode() {}
func (v List) String() string {
	parts := make([]string, len(v.Items))
	for i, it := range v.Items {
		parts[i] = it.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Struct is a record value: its fields are positional, matching the
// declaration order of the record type they were constructed from
// (spec.md §4.1, "Record literal ... Fields preserve declaration order").
type Struct struct{ Fields []Value }

func (Struct) valueNode() {}
func (v Struct) String() string {
	parts := make([]string, len(v.Fields))
	for i, f := range v.Fields {
		parts[i] = f.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Function is a first-class function value produced by closure conversion
// (spec.md §4.5, "Value::Function"): a body entity plus the capture vector
// snapshotted when the LambdaPointer was evaluated.
type Function struct {
	Body     ir.Entity
	Captured []Value
}

func (Function) valueNode()     {}
func (Function) String() string { return "<function>" }

// clone deep-copies v so that sharing a frame's params/captured slice
// across sub-frames never lets one call's mutation (there are none today,
// but the clone is what spec.md §5 calls out as deliberate: "no aliasing
// hazards") leak into another's.
func clone(v Value) Value {
	switch n := v.(type) {
	case List:
		items := make([]Value, len(n.Items))
		for i, it := range n.Items {
			items[i] = clone(it)
		}
		return List{Items: items}
	case Struct:
		fields := make([]Value, len(n.Fields))
		for i, f := range n.Fields {
			fields[i] = clone(f)
		}
		return Struct{Fields: fields}
	case Function:
		captured := make([]Value, len(n.Captured))
		for i, c := range n.Captured {
			captured[i] = clone(c)
		}
		return Function{Body: n.Body, Captured: captured}
	default:
		return v
	}
}
