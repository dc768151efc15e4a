package estree

import (
	"encoding/json"
	"strconv"

	"github.com/wippyai/durable-transform/errors"
	"github.com/wippyai/durable-transform/js"
)

// EncodeModule converts a tree back into an ESTree Program document.
// Synthesized nodes carry no location info, so the output omits loc fields
// entirely; hosts that need positions should run their own parse over the
// printed source instead.
func EncodeModule(m *js.Module) ([]byte, error) {
	body := make([]any, 0, len(m.Body))
	for _, s := range m.Body {
		body = append(body, encodeStmt(s))
	}
	doc := map[string]any{
		"type":       "Program",
		"sourceType": "module",
		"body":       body,
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.InvalidInput(errors.PhaseEmit, "encode program: "+err.Error())
	}
	return data, nil
}

func encodeStmts(stmts []js.Stmt) []any {
	out := make([]any, 0, len(stmts))
	for _, s := range stmts {
		out = append(out, encodeStmt(s))
	}
	return out
}

func encodeStmt(s js.Stmt) any {
	switch s := s.(type) {
	case nil:
		return nil
	case *js.ImportDecl:
		specs := make([]any, 0, len(s.Specs))
		for _, spec := range s.Specs {
			specs = append(specs, encodeImportSpec(spec))
		}
		return map[string]any{
			"type":       "ImportDeclaration",
			"specifiers": specs,
			"source":     literal(s.Source, strconv.Quote(s.Source)),
		}
	case *js.ExportDecl:
		t := "ExportNamedDeclaration"
		if s.Default {
			t = "ExportDefaultDeclaration"
		}
		return map[string]any{"type": t, "declaration": encodeStmt(s.Decl)}
	case *js.ExprStmt:
		return map[string]any{"type": "ExpressionStatement", "expression": encodeExpr(s.X)}
	case *js.VarDecl:
		decls := make([]any, 0, len(s.Decls))
		for _, d := range s.Decls {
			decls = append(decls, map[string]any{
				"type": "VariableDeclarator",
				"id":   identNode(d.Name.Name),
				"init": encodeExpr(d.Init),
			})
		}
		return map[string]any{"type": "VariableDeclaration", "kind": s.Kind, "declarations": decls}
	case *js.FuncDecl:
		return map[string]any{
			"type":   "FunctionDeclaration",
			"id":     identNode(s.Name),
			"params": encodeParams(s.Params),
			"body":   encodeBlock(s.Body),
			"async":  s.Async,
		}
	case *js.Block:
		return encodeBlock(s)
	case *js.Return:
		return map[string]any{"type": "ReturnStatement", "argument": encodeExpr(s.Arg)}
	case *js.If:
		return map[string]any{
			"type":       "IfStatement",
			"test":       encodeExpr(s.Test),
			"consequent": encodeStmt(s.Cons),
			"alternate":  encodeStmt(s.Alt),
		}
	case *js.For:
		return map[string]any{
			"type":   "ForStatement",
			"init":   encodeForInit(s.Init),
			"test":   encodeExpr(s.Test),
			"update": encodeExpr(s.Update),
			"body":   encodeStmt(s.Body),
		}
	case *js.ForOf:
		var left any
		if s.Kind == "" {
			left = identNode(s.Name.Name)
		} else {
			left = map[string]any{
				"type": "VariableDeclaration",
				"kind": s.Kind,
				"declarations": []any{map[string]any{
					"type": "VariableDeclarator",
					"id":   identNode(s.Name.Name),
					"init": nil,
				}},
			}
		}
		return map[string]any{
			"type":  "ForOfStatement",
			"await": s.Await,
			"left":  left,
			"right": encodeExpr(s.Right),
			"body":  encodeStmt(s.Body),
		}
	case *js.While:
		return map[string]any{"type": "WhileStatement", "test": encodeExpr(s.Test), "body": encodeStmt(s.Body)}
	case *js.Try:
		out := map[string]any{"type": "TryStatement", "block": encodeBlock(s.Block), "handler": nil, "finalizer": nil}
		if s.Catch != nil {
			var param any
			if s.Param != nil {
				param = identNode(s.Param.Name)
			}
			out["handler"] = map[string]any{
				"type":  "CatchClause",
				"param": param,
				"body":  encodeBlock(s.Catch),
			}
		}
		if s.Finally != nil {
			out["finalizer"] = encodeBlock(s.Finally)
		}
		return out
	case *js.Throw:
		return map[string]any{"type": "ThrowStatement", "argument": encodeExpr(s.Arg)}
	case *js.Break:
		return map[string]any{"type": "BreakStatement", "label": labelNode(s.Label)}
	case *js.Continue:
		return map[string]any{"type": "ContinueStatement", "label": labelNode(s.Label)}
	default:
		return nil
	}
}

func encodeImportSpec(spec js.ImportSpec) any {
	switch spec.Kind {
	case js.ImportDefault:
		return map[string]any{"type": "ImportDefaultSpecifier", "local": identNode(spec.Local)}
	case js.ImportNamespace:
		return map[string]any{"type": "ImportNamespaceSpecifier", "local": identNode(spec.Local)}
	default:
		imported := spec.Imported
		if imported == "" {
			imported = spec.Local
		}
		return map[string]any{
			"type":     "ImportSpecifier",
			"local":    identNode(spec.Local),
			"imported": identNode(imported),
		}
	}
}

func encodeForInit(s js.Stmt) any {
	switch s := s.(type) {
	case nil:
		return nil
	case *js.ExprStmt:
		// A plain expression initializer round-trips as the expression.
		return encodeExpr(s.X)
	default:
		return encodeStmt(s)
	}
}

func encodeBlock(b *js.Block) any {
	if b == nil {
		return nil
	}
	return map[string]any{"type": "BlockStatement", "body": encodeStmts(b.Stmts)}
}

func encodeParams(params []*js.Param) []any {
	out := make([]any, 0, len(params))
	for _, p := range params {
		out = append(out, identNode(p.Name))
	}
	return out
}

func encodeExprs(exprs []js.Expr) []any {
	out := make([]any, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, encodeExpr(e))
	}
	return out
}

func encodeExpr(e js.Expr) any {
	switch e := e.(type) {
	case nil:
		return nil
	case *js.Ident:
		return identNode(e.Name)
	case *js.StringLit:
		return literal(e.Value, strconv.Quote(e.Value))
	case *js.NumberLit:
		node := map[string]any{"type": "Literal", "raw": e.Raw}
		if f, err := strconv.ParseFloat(e.Raw, 64); err == nil {
			node["value"] = f
		}
		return node
	case *js.BoolLit:
		return literal(e.Value, strconv.FormatBool(e.Value))
	case *js.NullLit:
		return literal(nil, "null")
	case *js.TemplateLit:
		quasis := make([]any, 0, len(e.Quasis))
		for i, q := range e.Quasis {
			quasis = append(quasis, map[string]any{
				"type":  "TemplateElement",
				"value": map[string]any{"cooked": q, "raw": q},
				"tail":  i == len(e.Quasis)-1,
			})
		}
		return map[string]any{
			"type":        "TemplateLiteral",
			"quasis":      quasis,
			"expressions": encodeExprs(e.Exprs),
		}
	case *js.ArrayLit:
		return map[string]any{"type": "ArrayExpression", "elements": encodeExprs(e.Elems)}
	case *js.ObjectLit:
		props := make([]any, 0, len(e.Props))
		for _, p := range e.Props {
			if p.Spread {
				props = append(props, map[string]any{"type": "SpreadElement", "argument": encodeExpr(p.Value)})
				continue
			}
			props = append(props, map[string]any{
				"type":      "Property",
				"kind":      "init",
				"computed":  false,
				"shorthand": p.Shorthand,
				"key":       encodeExpr(p.Key),
				"value":     encodeExpr(p.Value),
			})
		}
		return map[string]any{"type": "ObjectExpression", "properties": props}
	case *js.Member:
		node := map[string]any{"type": "MemberExpression", "object": encodeExpr(e.Obj)}
		if e.Index != nil {
			node["computed"] = true
			node["property"] = encodeExpr(e.Index)
		} else {
			node["computed"] = false
			node["property"] = identNode(e.Prop)
		}
		return node
	case *js.Call:
		return map[string]any{"type": "CallExpression", "callee": encodeExpr(e.Callee), "arguments": encodeExprs(e.Args)}
	case *js.New:
		return map[string]any{"type": "NewExpression", "callee": encodeExpr(e.Callee), "arguments": encodeExprs(e.Args)}
	case *js.Await:
		return map[string]any{"type": "AwaitExpression", "argument": encodeExpr(e.Arg)}
	case *js.Spread:
		return map[string]any{"type": "SpreadElement", "argument": encodeExpr(e.Arg)}
	case *js.Unary:
		return map[string]any{"type": "UnaryExpression", "operator": e.Op, "prefix": true, "argument": encodeExpr(e.Arg)}
	case *js.Update:
		return map[string]any{"type": "UpdateExpression", "operator": e.Op, "prefix": e.Prefix, "argument": encodeExpr(e.Arg)}
	case *js.Binary:
		t := "BinaryExpression"
		if e.Op == "&&" || e.Op == "||" || e.Op == "??" {
			t = "LogicalExpression"
		}
		return map[string]any{"type": t, "operator": e.Op, "left": encodeExpr(e.Left), "right": encodeExpr(e.Right)}
	case *js.Assign:
		return map[string]any{"type": "AssignmentExpression", "operator": e.Op, "left": encodeExpr(e.Target), "right": encodeExpr(e.Value)}
	case *js.Cond:
		return map[string]any{
			"type":       "ConditionalExpression",
			"test":       encodeExpr(e.Test),
			"consequent": encodeExpr(e.Cons),
			"alternate":  encodeExpr(e.Alt),
		}
	case *js.Arrow:
		var body any
		if e.Body != nil {
			body = encodeBlock(e.Body)
		} else {
			body = encodeExpr(e.Expr)
		}
		return map[string]any{
			"type":   "ArrowFunctionExpression",
			"params": encodeParams(e.Params),
			"body":   body,
			"async":  e.Async,
		}
	case *js.FuncExpr:
		var id any
		if e.Name != "" {
			id = identNode(e.Name)
		}
		return map[string]any{
			"type":   "FunctionExpression",
			"id":     id,
			"params": encodeParams(e.Params),
			"body":   encodeBlock(e.Body),
			"async":  e.Async,
		}
	default:
		return nil
	}
}

func identNode(name string) map[string]any {
	return map[string]any{"type": "Identifier", "name": name}
}

func labelNode(label string) any {
	if label == "" {
		return nil
	}
	return identNode(label)
}

func literal(value any, raw string) map[string]any {
	return map[string]any{"type": "Literal", "value": value, "raw": raw}
}
