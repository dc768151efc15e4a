package engine

import (
	"github.com/wippyai/durable-transform/js"
)

// Fixture builders shared by the engine tests.

func ident(name string) *js.Ident { return &js.Ident{Name: name} }

func str(value string) *js.StringLit { return &js.StringLit{Value: value} }

func directive(value string) js.Stmt {
	return &js.ExprStmt{X: &js.StringLit{Value: value}}
}

func call(callee js.Expr, args ...js.Expr) *js.Call {
	return &js.Call{Callee: callee, Args: args}
}

func awaitCall(name string, args ...js.Expr) js.Stmt {
	return &js.ExprStmt{X: &js.Await{Arg: call(ident(name), args...)}}
}

func ret(arg js.Expr) js.Stmt { return &js.Return{Arg: arg} }

func block(stmts ...js.Stmt) *js.Block { return &js.Block{Stmts: stmts} }

func params(names ...string) []*js.Param {
	out := make([]*js.Param, len(names))
	for i, n := range names {
		out[i] = &js.Param{Name: n}
	}
	return out
}

func fn(name string, paramNames []string, stmts ...js.Stmt) *js.FuncDecl {
	return &js.FuncDecl{Name: name, Params: params(paramNames...), Body: block(stmts...), Async: true}
}

func workflowFn(name string, paramNames []string, stmts ...js.Stmt) *js.FuncDecl {
	body := append([]js.Stmt{directive(useWorkflow)}, stmts...)
	return fn(name, paramNames, body...)
}

func stepFn(name string, paramNames []string, stmts ...js.Stmt) *js.FuncDecl {
	body := append([]js.Stmt{directive(useStep)}, stmts...)
	return fn(name, paramNames, body...)
}

func module(items ...js.Stmt) *js.Module { return &js.Module{Body: items} }

// findCalls returns every call in the tree whose callee is the named
// identifier or a ctx.<name> member.
func findCalls(n js.Node, name string) []*js.Call {
	var out []*js.Call
	js.Walk(n, func(node js.Node) bool {
		c, ok := node.(*js.Call)
		if !ok {
			return true
		}
		switch callee := c.Callee.(type) {
		case *js.Ident:
			if callee.Name == name {
				out = append(out, c)
			}
		case *js.Member:
			if callee.Prop == name {
				out = append(out, c)
			}
		}
		return true
	})
	return out
}

func countIdents(n js.Node, name string) int {
	count := 0
	js.Walk(n, func(node js.Node) bool {
		if id, ok := node.(*js.Ident); ok && id.Name == name {
			count++
		}
		return true
	})
	return count
}

func member(obj js.Expr, prop string) *js.Member {
	return &js.Member{Obj: obj, Prop: prop}
}

func constDecl(name string, init js.Expr) *js.VarDecl {
	return &js.VarDecl{
		Kind:  "const",
		Decls: []*js.Declarator{{Name: ident(name), Init: init}},
	}
}

// findConst locates a top-level const declarator by name, looking through
// export clauses.
func findConst(m *js.Module, name string) *js.Declarator {
	for _, item := range m.Body {
		stmt := item
		if exp, ok := item.(*js.ExportDecl); ok {
			stmt = exp.Decl
		}
		decl, ok := stmt.(*js.VarDecl)
		if !ok {
			continue
		}
		for _, d := range decl.Decls {
			if d.Name != nil && d.Name.Name == name {
				return d
			}
		}
	}
	return nil
}

func mustEngine(cfg Config) *Engine {
	eng, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return eng
}
