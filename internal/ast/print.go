package ast

import (
	"encoding/json"
	"fmt"

	"github.com/sunholo/leaf/internal/ident"
)

// Print produces a deterministic JSON representation of an Entity tree.
// Used for golden snapshot tests and the round-trip property spec.md §8
// property 1 checks ("parse → print → re-parse → same Entity"). Grounded
// directly on the teacher's internal/ast/print.go, which uses the same
// reflect-free approach of converting to a generic map before marshaling
// so that positions (irrelevant to the property) can be omitted.
func Print(e Entity) string {
	data, err := json.MarshalIndent(simplify(e), "", "  ")
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return string(data)
}

func simplifyTracked(t Tracked) interface{} {
	return simplify(t.Inner)
}

func simplify(e Entity) interface{} {
	switch n := e.(type) {
	case Inlined:
		return map[string]interface{}{"type": "Inlined", "lit": n.Lit}
	case SingleIdent:
		return map[string]interface{}{"type": "SingleIdent", "ident": n.Ident.String()}
	case Call:
		args := make([]interface{}, len(n.Args))
		for i, a := range n.Args {
			args[i] = simplifyTracked(a)
		}
		return map[string]interface{}{"type": "Call", "callee": simplifyCallable(n.Callee), "args": args}
	case Lambda:
		return map[string]interface{}{"type": "Lambda", "params": paramNames(n.Params), "body": simplifyTracked(n.Body)}
	case Pass:
		return map[string]interface{}{"type": "Pass", "value": simplifyPassable(n.Value)}
	case If:
		branches := make([]interface{}, len(n.Branches))
		for i, b := range n.Branches {
			branches[i] = map[string]interface{}{"cond": simplifyTracked(b.Cond), "eval": simplifyTracked(b.Eval)}
		}
		return map[string]interface{}{"type": "If", "branches": branches, "else": simplifyTracked(n.Else)}
	case First:
		stmts := make([]interface{}, len(n.Stmts))
		for i, s := range n.Stmts {
			stmts[i] = simplifyTracked(s)
		}
		return map[string]interface{}{"type": "First", "stmts": stmts, "eval": simplifyTracked(n.Eval)}
	case List:
		items := make([]interface{}, len(n.Items))
		for i, it := range n.Items {
			items[i] = simplifyTracked(it)
		}
		return map[string]interface{}{"type": "List", "items": items}
	case Record:
		fields := make([]interface{}, len(n.Fields))
		for i, f := range n.Fields {
			fields[i] = map[string]interface{}{"name": f.Name, "value": simplifyTracked(f.Value)}
		}
		return map[string]interface{}{"type": "Record", "typeName": n.TypeName.String(), "fields": fields}
	case Unimplemented:
		return map[string]interface{}{"type": "Unimplemented"}
	default:
		return map[string]interface{}{"type": fmt.Sprintf("%T", e)}
	}
}

func simplifyCallable(c Callable) interface{} {
	switch n := c.(type) {
	case CallFunc:
		return map[string]interface{}{"kind": "func", "name": n.Name.String()}
	case CallBuiltin:
		return map[string]interface{}{"kind": "builtin", "name": n.Name.String()}
	case CallLambda:
		return map[string]interface{}{"kind": "lambda", "params": paramNames(n.Params), "body": simplifyTracked(n.Body)}
	default:
		return nil
	}
}

func simplifyPassable(p Passable) interface{} {
	switch n := p.(type) {
	case PassInlined:
		return map[string]interface{}{"kind": "inlined", "lit": n.Lit}
	case PassFunc:
		return map[string]interface{}{"kind": "func", "name": n.Name.String()}
	case PassPartial:
		args := make([]interface{}, len(n.Args))
		for i, a := range n.Args {
			args[i] = simplifyTracked(a)
		}
		return map[string]interface{}{"kind": "partial", "callee": simplifyCallable(n.Callee), "args": args}
	case PassLambda:
		return map[string]interface{}{"kind": "lambda", "params": paramNames(n.Params), "body": simplifyTracked(n.Body)}
	default:
		return nil
	}
}

func paramNames(params []ident.Identifier) []string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.String()
	}
	return names
}
