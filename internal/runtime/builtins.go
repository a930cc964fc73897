package runtime

import "github.com/sunholo/leaf/internal/diag"

// dispatchBuiltin executes a RustCall against the fixed bridge table
// (spec.md §4.6), using the same dispatch-index ordering internal/bridge's
// Table assigns at type-checking time: 0 add, 1 sub, 2 mul, 3 div,
// 4 push_back, 5 push_front, 6 get, 7 len, 8 eq, 9 lt.
func dispatchBuiltin(index int, args []Value) (Value, *diag.Error) {
	switch index {
	case 0:
		return arith(args, func(a, b int64) int64 { return a + b }, func(a, b float64) float64 { return a + b })
	case 1:
		return arith(args, func(a, b int64) int64 { return a - b }, func(a, b float64) float64 { return a - b })
	case 2:
		return arith(args, func(a, b int64) int64 { return a * b }, func(a, b float64) float64 { return a * b })
	case 3:
		return divide(args)
	case 4:
		return pushBack(args)
	case 5:
		return pushFront(args)
	case 6:
		return get(args)
	case 7:
		return length(args)
	case 8:
		return compare(args, func(a, b int64) bool { return a == b }, func(a, b float64) bool { return a == b })
	case 9:
		return compare(args, func(a, b int64) bool { return a < b }, func(a, b float64) bool { return a < b })
	default:
		return nil, diag.New(diag.RUN002, diag.Pos{}, "unrecognized bridged call index %d", index)
	}
}

func arith(args []Value, onInt func(a, b int64) int64, onFloat func(a, b float64) float64) (Value, *diag.Error) {
	if len(args) != 2 {
		return nil, diag.New(diag.RUN002, diag.Pos{}, "arithmetic builtin expects 2 arguments, got %d", len(args))
	}
	switch a := args[0].(type) {
	case Int:
		b, ok := args[1].(Int)
		if !ok {
			return nil, diag.New(diag.RUN002, diag.Pos{}, "arithmetic builtin argument type mismatch")
		}
		return Int{V: onInt(a.V, b.V)}, nil
	case Float:
		b, ok := args[1].(Float)
		if !ok {
			return nil, diag.New(diag.RUN002, diag.Pos{}, "arithmetic builtin argument type mismatch")
		}
		return Float{V: onFloat(a.V, b.V)}, nil
	default:
		return nil, diag.New(diag.RUN002, diag.Pos{}, "arithmetic builtin requires numeric arguments")
	}
}

func compare(args []Value, onInt func(a, b int64) bool, onFloat func(a, b float64) bool) (Value, *diag.Error) {
	if len(args) != 2 {
		return nil, diag.New(diag.RUN002, diag.Pos{}, "comparison builtin expects 2 arguments, got %d", len(args))
	}
	switch a := args[0].(type) {
	case Int:
		b, ok := args[1].(Int)
		if !ok {
			return nil, diag.New(diag.RUN002, diag.Pos{}, "comparison builtin argument type mismatch")
		}
		return Bool{V: onInt(a.V, b.V)}, nil
	case Float:
		b, ok := args[1].(Float)
		if !ok {
			return nil, diag.New(diag.RUN002, diag.Pos{}, "comparison builtin argument type mismatch")
		}
		return Bool{V: onFloat(a.V, b.V)}, nil
	default:
		return nil, diag.New(diag.RUN002, diag.Pos{}, "comparison builtin requires numeric arguments")
	}
}

func divide(args []Value) (Value, *diag.Error) {
	if len(args) != 2 {
		return nil, diag.New(diag.RUN002, diag.Pos{}, "div expects 2 arguments, got %d", len(args))
	}
	switch a := args[0].(type) {
	case Int:
		b, ok := args[1].(Int)
		if !ok {
			return nil, diag.New(diag.RUN002, diag.Pos{}, "div argument type mismatch")
		}
		if b.V == 0 {
			return nil, diag.New(diag.RUN002, diag.Pos{}, "integer division by zero")
		}
		return Int{V: a.V / b.V}, nil
	case Float:
		b, ok := args[1].(Float)
		if !ok {
			return nil, diag.New(diag.RUN002, diag.Pos{}, "div argument type mismatch")
		}
		return Float{V: a.V / b.V}, nil
	default:
		return nil, diag.New(diag.RUN002, diag.Pos{}, "div requires numeric arguments")
	}
}

// pushBack appends args[1] to the back of the list args[0] (bridge.Table's
// push_back: return type List(type-of-arg[1]), so the list is arg 0 and
// the pushed element is arg 1).
func pushBack(args []Value) (Value, *diag.Error) {
	if len(args) != 2 {
		return nil, diag.New(diag.RUN002, diag.Pos{}, "push_back expects 2 arguments, got %d", len(args))
	}
	list, ok := args[0].(List)
	if !ok {
		return nil, diag.New(diag.RUN002, diag.Pos{}, "push_back's first argument is not a list")
	}
	items := make([]Value, len(list.Items)+1)
	copy(items, list.Items)
	items[len(list.Items)] = args[1]
	return List{Items: items}, nil
}

// pushFront prepends args[1] to the front of the list args[0].
func pushFront(args []Value) (Value, *diag.Error) {
	if len(args) != 2 {
		return nil, diag.New(diag.RUN002, diag.Pos{}, "push_front expects 2 arguments, got %d", len(args))
	}
	list, ok := args[0].(List)
	if !ok {
		return nil, diag.New(diag.RUN002, diag.Pos{}, "push_front's first argument is not a list")
	}
	items := make([]Value, len(list.Items)+1)
	items[0] = args[1]
	copy(items[1:], list.Items)
	return List{Items: items}, nil
}

// get indexes the list-typed argument at position 1 (bridge.Table's get:
// UnlistedMatching at Index 1, so the index comes first and the list
// second) by the integer at position 0.
func get(args []Value) (Value, *diag.Error) {
	if len(args) != 2 {
		return nil, diag.New(diag.RUN002, diag.Pos{}, "get expects 2 arguments, got %d", len(args))
	}
	idx, ok := args[0].(Int)
	if !ok {
		return nil, diag.New(diag.RUN002, diag.Pos{}, "get's first argument is not an int")
	}
	list, ok := args[1].(List)
	if !ok {
		return nil, diag.New(diag.RUN002, diag.Pos{}, "get's second argument is not a list")
	}
	if idx.V < 0 || idx.V >= int64(len(list.Items)) {
		return nil, diag.New(diag.RUN002, diag.Pos{}, "get index %d out of range for list of length %d", idx.V, len(list.Items))
	}
	return list.Items[idx.V], nil
}

func length(args []Value) (Value, *diag.Error) {
	if len(args) != 1 {
		return nil, diag.New(diag.RUN002, diag.Pos{}, "len expects 1 argument, got %d", len(args))
	}
	list, ok := args[0].(List)
	if !ok {
		return nil, diag.New(diag.RUN002, diag.Pos{}, "len's argument is not a list")
	}
	return Int{V: int64(len(list.Items))}, nil
}
