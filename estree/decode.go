package estree

import (
	"github.com/tidwall/gjson"

	"github.com/wippyai/durable-transform/errors"
	"github.com/wippyai/durable-transform/js"
)

// DecodeModule converts an ESTree Program document into the transform's
// owned tree. Type annotations and other typed-dialect decorations are
// dropped; only the runtime shape survives. Constructs outside the
// supported statement and expression set fail with an unsupported error
// rather than decoding loosely.
func DecodeModule(data []byte) (*js.Module, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.InvalidInput(errors.PhaseParse, "input is not valid JSON")
	}
	doc := gjson.ParseBytes(data)
	if t := doc.Get("type").String(); t != "Program" {
		return nil, errors.InvalidInput(errors.PhaseParse, "root node must be a Program, got "+t)
	}

	body := doc.Get("body").Array()
	m := &js.Module{Body: make([]js.Stmt, 0, len(body))}
	for _, item := range body {
		s, err := decodeStmt(item)
		if err != nil {
			return nil, err
		}
		if s != nil {
			m.Body = append(m.Body, s)
		}
	}
	return m, nil
}

func loc(n gjson.Result) js.Loc {
	start := n.Get("loc.start")
	if !start.Exists() {
		return js.Loc{}
	}
	return js.Loc{
		Line: int(start.Get("line").Int()),
		Col:  int(start.Get("column").Int()) + 1,
	}
}

func unsupported(n gjson.Result, what string) error {
	at := loc(n)
	return errors.Unsupported(errors.PhaseParse, what, at.Line, at.Col)
}

func decodeStmt(n gjson.Result) (js.Stmt, error) {
	switch n.Get("type").String() {
	case "ImportDeclaration":
		return decodeImport(n)

	case "ExportNamedDeclaration":
		decl := n.Get("declaration")
		if !decl.Exists() || decl.Type == gjson.Null {
			return nil, unsupported(n, "export clause without declaration")
		}
		inner, err := decodeStmt(decl)
		if err != nil {
			return nil, err
		}
		return &js.ExportDecl{Decl: inner, Loc: loc(n)}, nil

	case "ExportDefaultDeclaration":
		inner, err := decodeStmt(n.Get("declaration"))
		if err != nil {
			return nil, err
		}
		return &js.ExportDecl{Decl: inner, Default: true, Loc: loc(n)}, nil

	case "ExpressionStatement":
		x, err := decodeExpr(n.Get("expression"))
		if err != nil {
			return nil, err
		}
		return &js.ExprStmt{X: x, Loc: loc(n)}, nil

	case "VariableDeclaration":
		return decodeVarDecl(n)

	case "FunctionDeclaration":
		params, err := decodeParams(n.Get("params"))
		if err != nil {
			return nil, err
		}
		body, err := decodeBlock(n.Get("body"))
		if err != nil {
			return nil, err
		}
		return &js.FuncDecl{
			Name:   n.Get("id.name").String(),
			Params: params,
			Body:   body,
			Async:  n.Get("async").Bool(),
			Loc:    loc(n),
		}, nil

	case "BlockStatement":
		return decodeBlock(n)

	case "ReturnStatement":
		arg, err := decodeOptExpr(n.Get("argument"))
		if err != nil {
			return nil, err
		}
		return &js.Return{Arg: arg, Loc: loc(n)}, nil

	case "IfStatement":
		test, err := decodeExpr(n.Get("test"))
		if err != nil {
			return nil, err
		}
		cons, err := decodeStmt(n.Get("consequent"))
		if err != nil {
			return nil, err
		}
		alt, err := decodeOptStmt(n.Get("alternate"))
		if err != nil {
			return nil, err
		}
		return &js.If{Test: test, Cons: cons, Alt: alt}, nil

	case "ForStatement":
		init, err := decodeForInit(n.Get("init"))
		if err != nil {
			return nil, err
		}
		test, err := decodeOptExpr(n.Get("test"))
		if err != nil {
			return nil, err
		}
		update, err := decodeOptExpr(n.Get("update"))
		if err != nil {
			return nil, err
		}
		body, err := decodeStmt(n.Get("body"))
		if err != nil {
			return nil, err
		}
		return &js.For{Init: init, Test: test, Update: update, Body: body}, nil

	case "ForOfStatement":
		return decodeForOf(n)

	case "WhileStatement":
		test, err := decodeExpr(n.Get("test"))
		if err != nil {
			return nil, err
		}
		body, err := decodeStmt(n.Get("body"))
		if err != nil {
			return nil, err
		}
		return &js.While{Test: test, Body: body}, nil

	case "TryStatement":
		return decodeTry(n)

	case "ThrowStatement":
		arg, err := decodeExpr(n.Get("argument"))
		if err != nil {
			return nil, err
		}
		return &js.Throw{Arg: arg, Loc: loc(n)}, nil

	case "BreakStatement":
		return &js.Break{Label: n.Get("label.name").String()}, nil

	case "ContinueStatement":
		return &js.Continue{Label: n.Get("label.name").String()}, nil

	case "EmptyStatement":
		return nil, nil

	default:
		return nil, unsupported(n, "statement "+n.Get("type").String())
	}
}

func decodeImport(n gjson.Result) (js.Stmt, error) {
	specs := n.Get("specifiers").Array()
	imp := &js.ImportDecl{
		Source: n.Get("source.value").String(),
		Specs:  make([]js.ImportSpec, 0, len(specs)),
		Loc:    loc(n),
	}
	for _, s := range specs {
		spec := js.ImportSpec{Local: s.Get("local.name").String()}
		switch s.Get("type").String() {
		case "ImportSpecifier":
			spec.Kind = js.ImportNamed
			spec.Imported = s.Get("imported.name").String()
		case "ImportDefaultSpecifier":
			spec.Kind = js.ImportDefault
		case "ImportNamespaceSpecifier":
			spec.Kind = js.ImportNamespace
		default:
			return nil, unsupported(s, "import specifier "+s.Get("type").String())
		}
		imp.Specs = append(imp.Specs, spec)
	}
	return imp, nil
}

func decodeVarDecl(n gjson.Result) (*js.VarDecl, error) {
	decls := n.Get("declarations").Array()
	out := &js.VarDecl{
		Kind:  n.Get("kind").String(),
		Decls: make([]*js.Declarator, 0, len(decls)),
		Loc:   loc(n),
	}
	for _, d := range decls {
		id := d.Get("id")
		if id.Get("type").String() != "Identifier" {
			return nil, unsupported(id, "destructuring declaration")
		}
		init, err := decodeOptExpr(d.Get("init"))
		if err != nil {
			return nil, err
		}
		out.Decls = append(out.Decls, &js.Declarator{
			Name: &js.Ident{Name: id.Get("name").String(), Loc: loc(id)},
			Init: init,
		})
	}
	return out, nil
}

func decodeForInit(n gjson.Result) (js.Stmt, error) {
	if !n.Exists() || n.Type == gjson.Null {
		return nil, nil
	}
	if n.Get("type").String() == "VariableDeclaration" {
		return decodeVarDecl(n)
	}
	x, err := decodeExpr(n)
	if err != nil {
		return nil, err
	}
	return &js.ExprStmt{X: x, Loc: loc(n)}, nil
}

func decodeForOf(n gjson.Result) (js.Stmt, error) {
	out := &js.ForOf{Await: n.Get("await").Bool()}
	left := n.Get("left")
	switch left.Get("type").String() {
	case "VariableDeclaration":
		decls := left.Get("declarations").Array()
		if len(decls) != 1 || decls[0].Get("id.type").String() != "Identifier" {
			return nil, unsupported(left, "for-of binding pattern")
		}
		out.Kind = left.Get("kind").String()
		id := decls[0].Get("id")
		out.Name = &js.Ident{Name: id.Get("name").String(), Loc: loc(id)}
	case "Identifier":
		out.Name = &js.Ident{Name: left.Get("name").String(), Loc: loc(left)}
	default:
		return nil, unsupported(left, "for-of target "+left.Get("type").String())
	}
	right, err := decodeExpr(n.Get("right"))
	if err != nil {
		return nil, err
	}
	body, err := decodeStmt(n.Get("body"))
	if err != nil {
		return nil, err
	}
	out.Right, out.Body = right, body
	return out, nil
}

func decodeTry(n gjson.Result) (js.Stmt, error) {
	block, err := decodeBlock(n.Get("block"))
	if err != nil {
		return nil, err
	}
	out := &js.Try{Block: block}
	if h := n.Get("handler"); h.Exists() && h.Type != gjson.Null {
		if p := h.Get("param"); p.Exists() && p.Type != gjson.Null {
			if p.Get("type").String() != "Identifier" {
				return nil, unsupported(p, "catch binding pattern")
			}
			out.Param = &js.Ident{Name: p.Get("name").String(), Loc: loc(p)}
		}
		if out.Catch, err = decodeBlock(h.Get("body")); err != nil {
			return nil, err
		}
	}
	if f := n.Get("finalizer"); f.Exists() && f.Type != gjson.Null {
		if out.Finally, err = decodeBlock(f); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func decodeBlock(n gjson.Result) (*js.Block, error) {
	if t := n.Get("type").String(); t != "BlockStatement" {
		return nil, unsupported(n, "expected block, got "+t)
	}
	stmts := n.Get("body").Array()
	b := &js.Block{Stmts: make([]js.Stmt, 0, len(stmts))}
	for _, s := range stmts {
		decoded, err := decodeStmt(s)
		if err != nil {
			return nil, err
		}
		if decoded != nil {
			b.Stmts = append(b.Stmts, decoded)
		}
	}
	return b, nil
}

func decodeOptStmt(n gjson.Result) (js.Stmt, error) {
	if !n.Exists() || n.Type == gjson.Null {
		return nil, nil
	}
	return decodeStmt(n)
}

func decodeOptExpr(n gjson.Result) (js.Expr, error) {
	if !n.Exists() || n.Type == gjson.Null {
		return nil, nil
	}
	return decodeExpr(n)
}

func decodeExprs(n gjson.Result) ([]js.Expr, error) {
	items := n.Array()
	out := make([]js.Expr, 0, len(items))
	for _, item := range items {
		if item.Type == gjson.Null {
			out = append(out, nil) // array elision hole
			continue
		}
		e, err := decodeExpr(item)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func decodeExpr(n gjson.Result) (js.Expr, error) {
	switch n.Get("type").String() {
	case "Identifier":
		return &js.Ident{Name: n.Get("name").String(), Loc: loc(n)}, nil

	case "Literal":
		return decodeLiteral(n)

	case "TemplateLiteral":
		quasis := n.Get("quasis").Array()
		out := &js.TemplateLit{Quasis: make([]string, 0, len(quasis))}
		for _, q := range quasis {
			out.Quasis = append(out.Quasis, q.Get("value.cooked").String())
		}
		exprs, err := decodeExprs(n.Get("expressions"))
		if err != nil {
			return nil, err
		}
		out.Exprs = exprs
		return out, nil

	case "ArrayExpression":
		elems, err := decodeExprs(n.Get("elements"))
		if err != nil {
			return nil, err
		}
		return &js.ArrayLit{Elems: elems}, nil

	case "ObjectExpression":
		return decodeObject(n)

	case "MemberExpression":
		return decodeMember(n)

	case "CallExpression":
		callee, err := decodeExpr(n.Get("callee"))
		if err != nil {
			return nil, err
		}
		args, err := decodeExprs(n.Get("arguments"))
		if err != nil {
			return nil, err
		}
		return &js.Call{Callee: callee, Args: args, Loc: loc(n)}, nil

	case "NewExpression":
		callee, err := decodeExpr(n.Get("callee"))
		if err != nil {
			return nil, err
		}
		args, err := decodeExprs(n.Get("arguments"))
		if err != nil {
			return nil, err
		}
		return &js.New{Callee: callee, Args: args}, nil

	case "AwaitExpression":
		arg, err := decodeExpr(n.Get("argument"))
		if err != nil {
			return nil, err
		}
		return &js.Await{Arg: arg}, nil

	case "SpreadElement":
		arg, err := decodeExpr(n.Get("argument"))
		if err != nil {
			return nil, err
		}
		return &js.Spread{Arg: arg}, nil

	case "UnaryExpression":
		arg, err := decodeExpr(n.Get("argument"))
		if err != nil {
			return nil, err
		}
		return &js.Unary{Op: n.Get("operator").String(), Arg: arg}, nil

	case "UpdateExpression":
		arg, err := decodeExpr(n.Get("argument"))
		if err != nil {
			return nil, err
		}
		return &js.Update{Op: n.Get("operator").String(), Arg: arg, Prefix: n.Get("prefix").Bool()}, nil

	case "BinaryExpression", "LogicalExpression":
		left, err := decodeExpr(n.Get("left"))
		if err != nil {
			return nil, err
		}
		right, err := decodeExpr(n.Get("right"))
		if err != nil {
			return nil, err
		}
		return &js.Binary{Op: n.Get("operator").String(), Left: left, Right: right}, nil

	case "AssignmentExpression":
		target, err := decodeExpr(n.Get("left"))
		if err != nil {
			return nil, err
		}
		value, err := decodeExpr(n.Get("right"))
		if err != nil {
			return nil, err
		}
		return &js.Assign{Op: n.Get("operator").String(), Target: target, Value: value}, nil

	case "ConditionalExpression":
		test, err := decodeExpr(n.Get("test"))
		if err != nil {
			return nil, err
		}
		cons, err := decodeExpr(n.Get("consequent"))
		if err != nil {
			return nil, err
		}
		alt, err := decodeExpr(n.Get("alternate"))
		if err != nil {
			return nil, err
		}
		return &js.Cond{Test: test, Cons: cons, Alt: alt}, nil

	case "ArrowFunctionExpression":
		params, err := decodeParams(n.Get("params"))
		if err != nil {
			return nil, err
		}
		out := &js.Arrow{Params: params, Async: n.Get("async").Bool()}
		body := n.Get("body")
		if body.Get("type").String() == "BlockStatement" {
			if out.Body, err = decodeBlock(body); err != nil {
				return nil, err
			}
		} else if out.Expr, err = decodeExpr(body); err != nil {
			return nil, err
		}
		return out, nil

	case "FunctionExpression":
		params, err := decodeParams(n.Get("params"))
		if err != nil {
			return nil, err
		}
		body, err := decodeBlock(n.Get("body"))
		if err != nil {
			return nil, err
		}
		return &js.FuncExpr{
			Name:   n.Get("id.name").String(),
			Params: params,
			Body:   body,
			Async:  n.Get("async").Bool(),
		}, nil

	case "ParenthesizedExpression", "TSAsExpression", "TSNonNullExpression":
		// Grouping and type-level wrappers carry no runtime shape.
		return decodeExpr(n.Get("expression"))

	default:
		return nil, unsupported(n, "expression "+n.Get("type").String())
	}
}

func decodeLiteral(n gjson.Result) (js.Expr, error) {
	v := n.Get("value")
	switch v.Type {
	case gjson.String:
		return &js.StringLit{Value: v.String(), Loc: loc(n)}, nil
	case gjson.Number:
		raw := n.Get("raw").String()
		if raw == "" {
			raw = v.Raw
		}
		return &js.NumberLit{Raw: raw}, nil
	case gjson.True, gjson.False:
		return &js.BoolLit{Value: v.Bool()}, nil
	case gjson.Null:
		// Regex and bigint literals also land here with value null; the raw
		// spelling disambiguates, and neither is supported.
		if raw := n.Get("raw").String(); raw != "" && raw != "null" {
			return nil, unsupported(n, "literal "+raw)
		}
		return &js.NullLit{}, nil
	default:
		return nil, unsupported(n, "literal")
	}
}

func decodeObject(n gjson.Result) (js.Expr, error) {
	props := n.Get("properties").Array()
	out := &js.ObjectLit{Props: make([]*js.Property, 0, len(props))}
	for _, p := range props {
		if p.Get("type").String() == "SpreadElement" {
			arg, err := decodeExpr(p.Get("argument"))
			if err != nil {
				return nil, err
			}
			out.Props = append(out.Props, &js.Property{Value: arg, Spread: true})
			continue
		}
		if p.Get("computed").Bool() || p.Get("kind").String() != "init" {
			return nil, unsupported(p, "object property form")
		}
		key, err := decodeExpr(p.Get("key"))
		if err != nil {
			return nil, err
		}
		value, err := decodeExpr(p.Get("value"))
		if err != nil {
			return nil, err
		}
		out.Props = append(out.Props, &js.Property{
			Key:       key,
			Value:     value,
			Shorthand: p.Get("shorthand").Bool(),
		})
	}
	return out, nil
}

func decodeMember(n gjson.Result) (js.Expr, error) {
	obj, err := decodeExpr(n.Get("object"))
	if err != nil {
		return nil, err
	}
	out := &js.Member{Obj: obj, Loc: loc(n)}
	prop := n.Get("property")
	if n.Get("computed").Bool() {
		if out.Index, err = decodeExpr(prop); err != nil {
			return nil, err
		}
		return out, nil
	}
	if prop.Get("type").String() != "Identifier" {
		return nil, unsupported(prop, "member property "+prop.Get("type").String())
	}
	out.Prop = prop.Get("name").String()
	return out, nil
}

func decodeParams(n gjson.Result) ([]*js.Param, error) {
	items := n.Array()
	out := make([]*js.Param, 0, len(items))
	for _, p := range items {
		switch p.Get("type").String() {
		case "Identifier":
			out = append(out, &js.Param{Name: p.Get("name").String(), Loc: loc(p)})
		default:
			return nil, unsupported(p, "parameter pattern "+p.Get("type").String())
		}
	}
	return out, nil
}
