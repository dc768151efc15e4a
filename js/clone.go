package js

// Deep copies. The inliner substitutes into clones so one step body can be
// expanded at several call sites without aliasing; nothing in this file
// shares subtrees between input and output.

// CloneStmts deep-copies a statement sequence.
func CloneStmts(stmts []Stmt) []Stmt {
	if stmts == nil {
		return nil
	}
	out := make([]Stmt, len(stmts))
	for i, s := range stmts {
		out[i] = CloneStmt(s)
	}
	return out
}

// CloneStmt deep-copies a single statement.
func CloneStmt(s Stmt) Stmt {
	switch s := s.(type) {
	case nil:
		return nil
	case *ImportDecl:
		specs := make([]ImportSpec, len(s.Specs))
		copy(specs, s.Specs)
		return &ImportDecl{Specs: specs, Source: s.Source, Loc: s.Loc}
	case *ExportDecl:
		return &ExportDecl{Decl: CloneStmt(s.Decl), Default: s.Default, Loc: s.Loc}
	case *ExprStmt:
		return &ExprStmt{X: CloneExpr(s.X), Loc: s.Loc}
	case *VarDecl:
		decls := make([]*Declarator, len(s.Decls))
		for i, d := range s.Decls {
			decls[i] = &Declarator{Name: cloneIdent(d.Name), Init: CloneExpr(d.Init)}
		}
		return &VarDecl{Kind: s.Kind, Decls: decls, Loc: s.Loc}
	case *FuncDecl:
		return &FuncDecl{Name: s.Name, Params: cloneParams(s.Params), Body: cloneBlock(s.Body), Async: s.Async, Loc: s.Loc}
	case *Block:
		return cloneBlock(s)
	case *Return:
		return &Return{Arg: CloneExpr(s.Arg), Loc: s.Loc}
	case *If:
		return &If{Test: CloneExpr(s.Test), Cons: CloneStmt(s.Cons), Alt: CloneStmt(s.Alt)}
	case *For:
		return &For{Init: CloneStmt(s.Init), Test: CloneExpr(s.Test), Update: CloneExpr(s.Update), Body: CloneStmt(s.Body)}
	case *ForOf:
		return &ForOf{Kind: s.Kind, Name: cloneIdent(s.Name), Right: CloneExpr(s.Right), Body: CloneStmt(s.Body), Await: s.Await}
	case *While:
		return &While{Test: CloneExpr(s.Test), Body: CloneStmt(s.Body)}
	case *Try:
		return &Try{Block: cloneBlock(s.Block), Param: cloneIdent(s.Param), Catch: cloneBlock(s.Catch), Finally: cloneBlock(s.Finally)}
	case *Throw:
		return &Throw{Arg: CloneExpr(s.Arg), Loc: s.Loc}
	case *Break:
		return &Break{Label: s.Label}
	case *Continue:
		return &Continue{Label: s.Label}
	default:
		return s
	}
}

// CloneExpr deep-copies a single expression.
func CloneExpr(e Expr) Expr {
	switch e := e.(type) {
	case nil:
		return nil
	case *Ident:
		return &Ident{Name: e.Name, Loc: e.Loc}
	case *StringLit:
		return &StringLit{Value: e.Value, Loc: e.Loc}
	case *NumberLit:
		return &NumberLit{Raw: e.Raw}
	case *BoolLit:
		return &BoolLit{Value: e.Value}
	case *NullLit:
		return &NullLit{}
	case *TemplateLit:
		quasis := make([]string, len(e.Quasis))
		copy(quasis, e.Quasis)
		return &TemplateLit{Quasis: quasis, Exprs: cloneExprs(e.Exprs)}
	case *ArrayLit:
		return &ArrayLit{Elems: cloneExprs(e.Elems)}
	case *ObjectLit:
		props := make([]*Property, len(e.Props))
		for i, p := range e.Props {
			props[i] = &Property{Key: CloneExpr(p.Key), Value: CloneExpr(p.Value), Shorthand: p.Shorthand, Spread: p.Spread}
		}
		return &ObjectLit{Props: props}
	case *Member:
		return &Member{Obj: CloneExpr(e.Obj), Prop: e.Prop, Index: CloneExpr(e.Index), Loc: e.Loc}
	case *Call:
		return &Call{Callee: CloneExpr(e.Callee), Args: cloneExprs(e.Args), Loc: e.Loc}
	case *New:
		return &New{Callee: CloneExpr(e.Callee), Args: cloneExprs(e.Args)}
	case *Await:
		return &Await{Arg: CloneExpr(e.Arg)}
	case *Spread:
		return &Spread{Arg: CloneExpr(e.Arg)}
	case *Unary:
		return &Unary{Op: e.Op, Arg: CloneExpr(e.Arg)}
	case *Update:
		return &Update{Op: e.Op, Arg: CloneExpr(e.Arg), Prefix: e.Prefix}
	case *Binary:
		return &Binary{Op: e.Op, Left: CloneExpr(e.Left), Right: CloneExpr(e.Right)}
	case *Assign:
		return &Assign{Op: e.Op, Target: CloneExpr(e.Target), Value: CloneExpr(e.Value)}
	case *Cond:
		return &Cond{Test: CloneExpr(e.Test), Cons: CloneExpr(e.Cons), Alt: CloneExpr(e.Alt)}
	case *Arrow:
		return &Arrow{Params: cloneParams(e.Params), Body: cloneBlock(e.Body), Expr: CloneExpr(e.Expr), Async: e.Async}
	case *FuncExpr:
		return &FuncExpr{Name: e.Name, Params: cloneParams(e.Params), Body: cloneBlock(e.Body), Async: e.Async}
	default:
		return e
	}
}

func cloneExprs(exprs []Expr) []Expr {
	if exprs == nil {
		return nil
	}
	out := make([]Expr, len(exprs))
	for i, e := range exprs {
		out[i] = CloneExpr(e)
	}
	return out
}

func cloneParams(params []*Param) []*Param {
	if params == nil {
		return nil
	}
	out := make([]*Param, len(params))
	for i, p := range params {
		cp := *p
		out[i] = &cp
	}
	return out
}

func cloneBlock(b *Block) *Block {
	if b == nil {
		return nil
	}
	return &Block{Stmts: CloneStmts(b.Stmts)}
}

func cloneIdent(id *Ident) *Ident {
	if id == nil {
		return nil
	}
	return &Ident{Name: id.Name, Loc: id.Loc}
}
