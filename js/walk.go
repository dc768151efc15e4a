package js

// Walk traverses the tree rooted at n in source order, calling fn for each
// non-nil node. If fn returns false the node's children are skipped.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || isNilNode(n) {
		return
	}
	if !fn(n) {
		return
	}
	switch n := n.(type) {
	case *Module:
		walkStmts(n.Body, fn)
	case *ImportDecl:
	case *ExportDecl:
		Walk(n.Decl, fn)
	case *ExprStmt:
		Walk(n.X, fn)
	case *VarDecl:
		for _, d := range n.Decls {
			Walk(d.Name, fn)
			Walk(d.Init, fn)
		}
	case *FuncDecl:
		Walk(n.Body, fn)
	case *Block:
		walkStmts(n.Stmts, fn)
	case *Return:
		Walk(n.Arg, fn)
	case *If:
		Walk(n.Test, fn)
		Walk(n.Cons, fn)
		Walk(n.Alt, fn)
	case *For:
		Walk(n.Init, fn)
		Walk(n.Test, fn)
		Walk(n.Update, fn)
		Walk(n.Body, fn)
	case *ForOf:
		Walk(n.Name, fn)
		Walk(n.Right, fn)
		Walk(n.Body, fn)
	case *While:
		Walk(n.Test, fn)
		Walk(n.Body, fn)
	case *Try:
		Walk(n.Block, fn)
		Walk(n.Param, fn)
		Walk(n.Catch, fn)
		Walk(n.Finally, fn)
	case *Throw:
		Walk(n.Arg, fn)
	case *TemplateLit:
		walkExprs(n.Exprs, fn)
	case *ArrayLit:
		walkExprs(n.Elems, fn)
	case *ObjectLit:
		for _, p := range n.Props {
			Walk(p.Key, fn)
			Walk(p.Value, fn)
		}
	case *Member:
		Walk(n.Obj, fn)
		Walk(n.Index, fn)
	case *Call:
		Walk(n.Callee, fn)
		walkExprs(n.Args, fn)
	case *New:
		Walk(n.Callee, fn)
		walkExprs(n.Args, fn)
	case *Await:
		Walk(n.Arg, fn)
	case *Spread:
		Walk(n.Arg, fn)
	case *Unary:
		Walk(n.Arg, fn)
	case *Update:
		Walk(n.Arg, fn)
	case *Binary:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *Assign:
		Walk(n.Target, fn)
		Walk(n.Value, fn)
	case *Cond:
		Walk(n.Test, fn)
		Walk(n.Cons, fn)
		Walk(n.Alt, fn)
	case *Arrow:
		Walk(n.Body, fn)
		Walk(n.Expr, fn)
	case *FuncExpr:
		Walk(n.Body, fn)
	}
}

func walkStmts(stmts []Stmt, fn func(Node) bool) {
	for _, s := range stmts {
		Walk(s, fn)
	}
}

func walkExprs(exprs []Expr, fn func(Node) bool) {
	for _, e := range exprs {
		Walk(e, fn)
	}
}

// isNilNode guards against typed nils hiding inside the Node interface.
func isNilNode(n Node) bool {
	switch v := n.(type) {
	case *Module:
		return v == nil
	case *Block:
		return v == nil
	case *Ident:
		return v == nil
	}
	return false
}
