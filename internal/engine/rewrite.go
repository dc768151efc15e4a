package engine

import (
	"github.com/wippyai/durable-transform/js"
)

// rewriter rebuilds a statement sequence bottom-up, giving mapExpr first
// refusal on every expression. When mapExpr returns ok the replacement is
// used as-is; otherwise the expression is rebuilt around its rewritten
// children. Input trees are never mutated: every pass produces fresh nodes,
// which is what lets one step body be inlined at many call sites.
type rewriter struct {
	mapExpr func(e js.Expr) (js.Expr, bool)
}

func (r *rewriter) stmts(stmts []js.Stmt) []js.Stmt {
	if stmts == nil {
		return nil
	}
	out := make([]js.Stmt, len(stmts))
	for i, s := range stmts {
		out[i] = r.stmt(s)
	}
	return out
}

func (r *rewriter) stmt(s js.Stmt) js.Stmt {
	switch s := s.(type) {
	case nil:
		return nil
	case *js.ImportDecl:
		return js.CloneStmt(s)
	case *js.ExportDecl:
		return &js.ExportDecl{Decl: r.stmt(s.Decl), Default: s.Default, Loc: s.Loc}
	case *js.ExprStmt:
		return &js.ExprStmt{X: r.expr(s.X), Loc: s.Loc}
	case *js.VarDecl:
		decls := make([]*js.Declarator, len(s.Decls))
		for i, d := range s.Decls {
			// Declarator names are bindings, not references.
			decls[i] = &js.Declarator{
				Name: &js.Ident{Name: d.Name.Name, Loc: d.Name.Loc},
				Init: r.expr(d.Init),
			}
		}
		return &js.VarDecl{Kind: s.Kind, Decls: decls, Loc: s.Loc}
	case *js.FuncDecl:
		return &js.FuncDecl{Name: s.Name, Params: clonedParams(s.Params), Body: r.block(s.Body), Async: s.Async, Loc: s.Loc}
	case *js.Block:
		return r.block(s)
	case *js.Return:
		return &js.Return{Arg: r.expr(s.Arg), Loc: s.Loc}
	case *js.If:
		return &js.If{Test: r.expr(s.Test), Cons: r.stmt(s.Cons), Alt: r.stmt(s.Alt)}
	case *js.For:
		return &js.For{Init: r.stmt(s.Init), Test: r.expr(s.Test), Update: r.expr(s.Update), Body: r.stmt(s.Body)}
	case *js.ForOf:
		return &js.ForOf{
			Kind:  s.Kind,
			Name:  &js.Ident{Name: s.Name.Name, Loc: s.Name.Loc},
			Right: r.expr(s.Right),
			Body:  r.stmt(s.Body),
			Await: s.Await,
		}
	case *js.While:
		return &js.While{Test: r.expr(s.Test), Body: r.stmt(s.Body)}
	case *js.Try:
		t := &js.Try{Block: r.block(s.Block)}
		if s.Param != nil {
			t.Param = &js.Ident{Name: s.Param.Name, Loc: s.Param.Loc}
		}
		t.Catch = r.block(s.Catch)
		t.Finally = r.block(s.Finally)
		return t
	case *js.Throw:
		return &js.Throw{Arg: r.expr(s.Arg), Loc: s.Loc}
	case *js.Break:
		return &js.Break{Label: s.Label}
	case *js.Continue:
		return &js.Continue{Label: s.Label}
	default:
		return js.CloneStmt(s)
	}
}

func (r *rewriter) block(b *js.Block) *js.Block {
	if b == nil {
		return nil
	}
	return &js.Block{Stmts: r.stmts(b.Stmts)}
}

func (r *rewriter) exprs(exprs []js.Expr) []js.Expr {
	if exprs == nil {
		return nil
	}
	out := make([]js.Expr, len(exprs))
	for i, e := range exprs {
		out[i] = r.expr(e)
	}
	return out
}

func (r *rewriter) expr(e js.Expr) js.Expr {
	if e == nil {
		return nil
	}
	if r.mapExpr != nil {
		if mapped, ok := r.mapExpr(e); ok {
			return mapped
		}
	}
	switch e := e.(type) {
	case *js.Ident, *js.StringLit, *js.NumberLit, *js.BoolLit, *js.NullLit:
		return js.CloneExpr(e)
	case *js.TemplateLit:
		quasis := make([]string, len(e.Quasis))
		copy(quasis, e.Quasis)
		return &js.TemplateLit{Quasis: quasis, Exprs: r.exprs(e.Exprs)}
	case *js.ArrayLit:
		return &js.ArrayLit{Elems: r.exprs(e.Elems)}
	case *js.ObjectLit:
		props := make([]*js.Property, len(e.Props))
		for i, p := range e.Props {
			props[i] = r.property(p)
		}
		return &js.ObjectLit{Props: props}
	case *js.Member:
		// Static Prop is a name, never a reference; only the object side
		// (and a computed index) can be rewritten.
		return &js.Member{Obj: r.expr(e.Obj), Prop: e.Prop, Index: r.expr(e.Index), Loc: e.Loc}
	case *js.Call:
		return &js.Call{Callee: r.expr(e.Callee), Args: r.exprs(e.Args), Loc: e.Loc}
	case *js.New:
		return &js.New{Callee: r.expr(e.Callee), Args: r.exprs(e.Args)}
	case *js.Await:
		return &js.Await{Arg: r.expr(e.Arg)}
	case *js.Spread:
		return &js.Spread{Arg: r.expr(e.Arg)}
	case *js.Unary:
		return &js.Unary{Op: e.Op, Arg: r.expr(e.Arg)}
	case *js.Update:
		return &js.Update{Op: e.Op, Arg: r.expr(e.Arg), Prefix: e.Prefix}
	case *js.Binary:
		return &js.Binary{Op: e.Op, Left: r.expr(e.Left), Right: r.expr(e.Right)}
	case *js.Assign:
		return &js.Assign{Op: e.Op, Target: r.expr(e.Target), Value: r.expr(e.Value)}
	case *js.Cond:
		return &js.Cond{Test: r.expr(e.Test), Cons: r.expr(e.Cons), Alt: r.expr(e.Alt)}
	case *js.Arrow:
		return &js.Arrow{Params: clonedParams(e.Params), Body: r.block(e.Body), Expr: r.expr(e.Expr), Async: e.Async}
	case *js.FuncExpr:
		return &js.FuncExpr{Name: e.Name, Params: clonedParams(e.Params), Body: r.block(e.Body), Async: e.Async}
	default:
		return js.CloneExpr(e)
	}
}

func (r *rewriter) property(p *js.Property) *js.Property {
	if p.Spread {
		return &js.Property{Value: r.expr(p.Value), Spread: true}
	}
	value := r.expr(p.Value)
	// Keys are names, not references. A shorthand survives only while the
	// value is still the matching identifier.
	shorthand := p.Shorthand
	if shorthand {
		key, kok := p.Key.(*js.Ident)
		val, vok := value.(*js.Ident)
		shorthand = kok && vok && key.Name == val.Name
	}
	return &js.Property{Key: js.CloneExpr(p.Key), Value: value, Shorthand: shorthand}
}

func clonedParams(params []*js.Param) []*js.Param {
	if params == nil {
		return nil
	}
	out := make([]*js.Param, len(params))
	for i, p := range params {
		cp := *p
		out[i] = &cp
	}
	return out
}

// substitute replaces identifier references by name. Used for
// parameter-to-argument binding during inlining and for the canonical event
// rename during wrapping. Each replacement site receives its own clone.
// Substitution is deliberately non-hygienic beyond parameters: the inlined
// body runs inside its own closure, so locals cannot collide with the
// surrounding scope.
func substitute(stmts []js.Stmt, bindings map[string]js.Expr) []js.Stmt {
	r := &rewriter{}
	r.mapExpr = func(e js.Expr) (js.Expr, bool) {
		id, ok := e.(*js.Ident)
		if !ok {
			return nil, false
		}
		repl, bound := bindings[id.Name]
		if !bound {
			return nil, false
		}
		return js.CloneExpr(repl), true
	}
	return r.stmts(stmts)
}
