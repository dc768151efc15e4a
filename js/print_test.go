package js

import (
	"strings"
	"testing"
)

func TestPrintStatements(t *testing.T) {
	cases := []struct {
		name string
		stmt Stmt
		want string
	}{
		{
			"const decl",
			&VarDecl{Kind: "const", Decls: []*Declarator{{
				Name: &Ident{Name: "x"},
				Init: &NumberLit{Raw: "42"},
			}}},
			"const x = 42;\n",
		},
		{
			"async function",
			&FuncDecl{Name: "f", Params: []*Param{{Name: "a"}}, Async: true,
				Body: &Block{Stmts: []Stmt{&Return{Arg: &Ident{Name: "a"}}}}},
			"async function f(a) {\n  return a;\n}\n",
		},
		{
			"export default expression",
			&ExportDecl{Default: true, Decl: &ExprStmt{X: &Ident{Name: "v"}}},
			"export default v;\n",
		},
		{
			"if else",
			&If{
				Test: &Binary{Op: ">", Left: &Ident{Name: "n"}, Right: &NumberLit{Raw: "0"}},
				Cons: &Return{Arg: &BoolLit{Value: true}},
				Alt:  &Return{Arg: &BoolLit{Value: false}},
			},
			"if (n > 0) return true; else return false;\n",
		},
		{
			"for of await",
			&ForOf{
				Kind:  "const",
				Name:  &Ident{Name: "item"},
				Right: &Ident{Name: "items"},
				Await: true,
				Body:  &Block{Stmts: []Stmt{&ExprStmt{X: &Call{Callee: &Ident{Name: "use"}, Args: []Expr{&Ident{Name: "item"}}}}}},
			},
			"for await (const item of items) {\n  use(item);\n}\n",
		},
		{
			"try catch finally",
			&Try{
				Block:   &Block{Stmts: []Stmt{&ExprStmt{X: &Call{Callee: &Ident{Name: "risky"}}}}},
				Param:   &Ident{Name: "err"},
				Catch:   &Block{Stmts: []Stmt{&Throw{Arg: &Ident{Name: "err"}}}},
				Finally: &Block{},
			},
			"try {\n  risky();\n} catch (err) {\n  throw err;\n} finally {}\n",
		},
		{
			"import named and default",
			&ImportDecl{
				Specs: []ImportSpec{
					{Local: "dflt", Kind: ImportDefault},
					{Local: "alias", Imported: "orig", Kind: ImportNamed},
				},
				Source: "pkg",
			},
			"import dflt, { orig as alias } from \"pkg\";\n",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Print(tc.stmt)
			if got != tc.want {
				t.Errorf("Print =\n%q\nwant\n%q", got, tc.want)
			}
		})
	}
}

func TestPrintExpressions(t *testing.T) {
	cases := []struct {
		name string
		expr Expr
		want string
	}{
		{"string escaping", &StringLit{Value: `a "b"` + "\n"}, `"a \"b\"\n"`},
		{
			"precedence parens",
			&Binary{Op: "*",
				Left:  &Binary{Op: "+", Left: &Ident{Name: "a"}, Right: &Ident{Name: "b"}},
				Right: &Ident{Name: "c"},
			},
			"(a + b) * c",
		},
		{
			"no redundant parens",
			&Binary{Op: "+",
				Left:  &Binary{Op: "*", Left: &Ident{Name: "a"}, Right: &Ident{Name: "b"}},
				Right: &Ident{Name: "c"},
			},
			"a * b + c",
		},
		{
			"computed member",
			&Member{Obj: &Ident{Name: "env"}, Index: &StringLit{Value: "KEY"}},
			`env["KEY"]`,
		},
		{
			"template literal",
			&TemplateLit{Quasis: []string{"hi ", "!"}, Exprs: []Expr{&Ident{Name: "name"}}},
			"`hi ${name}!`",
		},
		{
			"object with shorthand and spread",
			&ObjectLit{Props: []*Property{
				{Key: &Ident{Name: "a"}, Value: &Ident{Name: "a"}, Shorthand: true},
				{Value: &Ident{Name: "rest"}, Spread: true},
			}},
			"{ a, ...rest }",
		},
		{
			"arrow expression body object",
			&Arrow{Expr: &ObjectLit{Props: []*Property{{Key: &Ident{Name: "k"}, Value: &NumberLit{Raw: "1"}}}}},
			"() => ({ k: 1 })",
		},
		{
			"new with member callee",
			&New{Callee: &Ident{Name: "TextDecoder"}},
			"new TextDecoder()",
		},
		{
			"conditional",
			&Cond{Test: &Ident{Name: "ok"}, Cons: &NumberLit{Raw: "1"}, Alt: &NumberLit{Raw: "2"}},
			"ok ? 1 : 2",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Print(tc.expr)
			if got != tc.want {
				t.Errorf("Print = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestPrintModuleLayout(t *testing.T) {
	m := &Module{Body: []Stmt{
		&ImportDecl{
			Specs:  []ImportSpec{{Local: "withDurableExecution", Kind: ImportNamed}},
			Source: "@cgalceran/aws-durable",
		},
		&ExprStmt{X: &Call{Callee: &Ident{Name: "main"}}},
	}}
	got := PrintModule(m)
	want := "import { withDurableExecution } from \"@cgalceran/aws-durable\";\nmain();\n"
	if got != want {
		t.Errorf("PrintModule =\n%q\nwant\n%q", got, want)
	}
}

func TestPrintStatementLevelObjectParenthesized(t *testing.T) {
	got := Print(&ExprStmt{X: &ObjectLit{Props: []*Property{{Key: &Ident{Name: "a"}, Value: &NumberLit{Raw: "1"}}}}})
	if !strings.HasPrefix(got, "({") {
		t.Errorf("statement-level object must parenthesize, got %q", got)
	}
}
