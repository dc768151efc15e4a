package js

import "testing"

func sampleBlock() *Block {
	return &Block{Stmts: []Stmt{
		&VarDecl{Kind: "const", Decls: []*Declarator{{
			Name: &Ident{Name: "user"},
			Init: &Await{Arg: &Call{
				Callee: &Member{Obj: &Ident{Name: "db"}, Prop: "insert"},
				Args: []Expr{&ObjectLit{Props: []*Property{
					{Key: &Ident{Name: "email"}, Value: &Ident{Name: "email"}, Shorthand: true},
				}}},
			}},
		}}},
		&If{
			Test: &Binary{Op: "===", Left: &Ident{Name: "user"}, Right: &NullLit{}},
			Cons: &Throw{Arg: &New{Callee: &Ident{Name: "Error"}, Args: []Expr{&StringLit{Value: "missing"}}}},
		},
		&Return{Arg: &Ident{Name: "user"}},
	}}
}

func TestCloneStmtsProducesFreshNodes(t *testing.T) {
	orig := sampleBlock()
	cloned := CloneStmts(orig.Stmts)

	if len(cloned) != len(orig.Stmts) {
		t.Fatalf("len = %d, want %d", len(cloned), len(orig.Stmts))
	}
	for i := range cloned {
		if cloned[i] == orig.Stmts[i] {
			t.Errorf("stmt %d shares a node with the original", i)
		}
	}

	// Mutating the clone must not reach the original.
	decl := cloned[0].(*VarDecl)
	decl.Decls[0].Name.Name = "mutated"
	if orig.Stmts[0].(*VarDecl).Decls[0].Name.Name != "user" {
		t.Error("clone mutation leaked into the original")
	}
}

func TestCloneExprDeep(t *testing.T) {
	orig := &Call{
		Callee: &Member{Obj: &Ident{Name: "ctx"}, Prop: "step"},
		Args: []Expr{
			&StringLit{Value: "save"},
			&Arrow{Async: true, Body: &Block{Stmts: []Stmt{&Return{Arg: &Ident{Name: "x"}}}}},
		},
	}
	cloned := CloneExpr(orig).(*Call)
	if cloned == orig || cloned.Args[1] == orig.Args[1] {
		t.Fatal("clone shares nodes")
	}
	arrow := cloned.Args[1].(*Arrow)
	arrow.Body.Stmts[0].(*Return).Arg.(*Ident).Name = "y"
	if orig.Args[1].(*Arrow).Body.Stmts[0].(*Return).Arg.(*Ident).Name != "x" {
		t.Error("nested clone mutation leaked into the original")
	}
}

func TestCloneNilSafe(t *testing.T) {
	if CloneExpr(nil) != nil {
		t.Error("CloneExpr(nil) must be nil")
	}
	if CloneStmt(nil) != nil {
		t.Error("CloneStmt(nil) must be nil")
	}
}
