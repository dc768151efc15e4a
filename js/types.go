package js

// Loc is a source position, 1-based. The zero value means "unknown",
// which is what synthesized nodes carry.
type Loc struct {
	Line int
	Col  int
}

// Known reports whether the location was supplied by the host parser.
func (l Loc) Known() bool { return l.Line > 0 }

// Node is implemented by every tree node.
type Node interface {
	node()
}

// Stmt is a statement or module item.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression.
type Expr interface {
	Node
	exprNode()
}

// Module is one compilation unit: the top-level item sequence of a parsed
// ECMAScript module. The transform owns the tree for the duration of one
// invocation and never shares subtrees across units.
type Module struct {
	Body []Stmt
}

func (*Module) node() {}

// Param is a formal parameter. Type annotations from the input language are
// dropped at the decode boundary; only the binding name survives.
type Param struct {
	Name string
	Loc  Loc
}

// ── Module items ────────────────────────────────────────────────────

// ImportSpecKind distinguishes the three ESTree import specifier forms.
type ImportSpecKind int

const (
	ImportNamed ImportSpecKind = iota
	ImportDefault
	ImportNamespace
)

// ImportSpec is one binding introduced by an import declaration.
type ImportSpec struct {
	Local    string
	Imported string // "" for default/namespace specifiers
	Kind     ImportSpecKind
}

// ImportDecl is `import { a, b as c } from "src"`.
type ImportDecl struct {
	Specs  []ImportSpec
	Source string
	Loc    Loc
}

// ExportDecl is `export <decl>` or `export default <decl>`.
type ExportDecl struct {
	Decl    Stmt
	Default bool
	Loc     Loc
}

// ── Statements ──────────────────────────────────────────────────────

// ExprStmt is an expression in statement position. A bare string literal
// here is how directives travel.
type ExprStmt struct {
	X   Expr
	Loc Loc
}

// Declarator is one `name = init` inside a variable declaration.
type Declarator struct {
	Name *Ident
	Init Expr // may be nil
}

// VarDecl is `const`/`let`/`var` with one or more declarators.
type VarDecl struct {
	Kind  string
	Decls []*Declarator
	Loc   Loc
}

// FuncDecl is a named function declaration.
type FuncDecl struct {
	Name   string
	Params []*Param
	Body   *Block
	Async  bool
	Loc    Loc
}

// Block is `{ ... }`.
type Block struct {
	Stmts []Stmt
}

// Return is `return [arg]`.
type Return struct {
	Arg Expr // may be nil
	Loc Loc
}

// If is `if (test) cons [else alt]`.
type If struct {
	Test Expr
	Cons Stmt
	Alt  Stmt // may be nil
}

// For is a classic three-clause for loop. Any clause may be nil.
type For struct {
	Init   Stmt
	Test   Expr
	Update Expr
	Body   Stmt
}

// ForOf is `for [await] (<kind> name of right) body`.
type ForOf struct {
	Kind  string // "const", "let", or "" when iterating an existing binding
	Name  *Ident
	Right Expr
	Body  Stmt
	Await bool
}

// While is `while (test) body`.
type While struct {
	Test Expr
	Body Stmt
}

// Try is `try { } [catch (param) { }] [finally { }]`.
type Try struct {
	Block   *Block
	Param   *Ident // may be nil (optional catch binding)
	Catch   *Block // may be nil
	Finally *Block // may be nil
}

// Throw is `throw arg`.
type Throw struct {
	Arg Expr
	Loc Loc
}

// Break is `break [label]`.
type Break struct {
	Label string
}

// Continue is `continue [label]`.
type Continue struct {
	Label string
}

// ── Expressions ─────────────────────────────────────────────────────

// Ident is an identifier reference or binding occurrence.
type Ident struct {
	Name string
	Loc  Loc
}

// StringLit is a string literal.
type StringLit struct {
	Value string
	Loc   Loc
}

// NumberLit keeps the source spelling so the printer round-trips
// hex/exponent forms untouched.
type NumberLit struct {
	Raw string
}

// BoolLit is `true` or `false`.
type BoolLit struct {
	Value bool
}

// NullLit is `null`.
type NullLit struct{}

// TemplateLit is a template literal. len(Quasis) == len(Exprs)+1.
type TemplateLit struct {
	Quasis []string
	Exprs  []Expr
}

// ArrayLit is `[a, b, ...]`. A nil element is an elision hole.
type ArrayLit struct {
	Elems []Expr
}

// Property is one member of an object literal. A spread property has
// Key == nil and Value holding the spread argument.
type Property struct {
	Key       Expr // *Ident or *StringLit; nil for spread
	Value     Expr
	Shorthand bool
	Spread    bool
}

// ObjectLit is `{ k: v, ... }`.
type ObjectLit struct {
	Props []*Property
}

// Member is property access. Index non-nil means computed access
// `obj[index]`; otherwise `obj.Prop`. A static Prop is a name, not an
// identifier reference, so substitution passes never touch it.
type Member struct {
	Obj   Expr
	Prop  string
	Index Expr
	Loc   Loc
}

// Call is `callee(args...)`.
type Call struct {
	Callee Expr
	Args   []Expr
	Loc    Loc
}

// New is `new callee(args...)`.
type New struct {
	Callee Expr
	Args   []Expr
}

// Await is `await arg`.
type Await struct {
	Arg Expr
}

// Spread is `...arg` in call arguments or array literals.
type Spread struct {
	Arg Expr
}

// Unary is a prefix unary expression (`!x`, `-x`, `typeof x`, `void x`).
type Unary struct {
	Op  string
	Arg Expr
}

// Update is `x++`/`--x`.
type Update struct {
	Op     string
	Arg    Expr
	Prefix bool
}

// Binary covers binary and logical operators.
type Binary struct {
	Op    string
	Left  Expr
	Right Expr
}

// Assign is `target op value` where op is "=", "+=", etc.
type Assign struct {
	Op     string
	Target Expr
	Value  Expr
}

// Cond is `test ? cons : alt`.
type Cond struct {
	Test Expr
	Cons Expr
	Alt  Expr
}

// Arrow is an arrow function. Exactly one of Body or Expr is set.
type Arrow struct {
	Params []*Param
	Body   *Block
	Expr   Expr
	Async  bool
}

// FuncExpr is a (possibly named) function expression.
type FuncExpr struct {
	Name   string
	Params []*Param
	Body   *Block
	Async  bool
}

// ── Marker methods ──────────────────────────────────────────────────

func (*ImportDecl) node() {}
func (*ExportDecl) node() {}
func (*ExprStmt) node()   {}
func (*VarDecl) node()    {}
func (*FuncDecl) node()   {}
func (*Block) node()      {}
func (*Return) node()     {}
func (*If) node()         {}
func (*For) node()        {}
func (*ForOf) node()      {}
func (*While) node()      {}
func (*Try) node()        {}
func (*Throw) node()      {}
func (*Break) node()      {}
func (*Continue) node()   {}

func (*ImportDecl) stmtNode() {}
func (*ExportDecl) stmtNode() {}
func (*ExprStmt) stmtNode()   {}
func (*VarDecl) stmtNode()    {}
func (*FuncDecl) stmtNode()   {}
func (*Block) stmtNode()      {}
func (*Return) stmtNode()     {}
func (*If) stmtNode()         {}
func (*For) stmtNode()        {}
func (*ForOf) stmtNode()      {}
func (*While) stmtNode()      {}
func (*Try) stmtNode()        {}
func (*Throw) stmtNode()      {}
func (*Break) stmtNode()      {}
func (*Continue) stmtNode()   {}

func (*Ident) node()       {}
func (*StringLit) node()   {}
func (*NumberLit) node()   {}
func (*BoolLit) node()     {}
func (*NullLit) node()     {}
func (*TemplateLit) node() {}
func (*ArrayLit) node()    {}
func (*ObjectLit) node()   {}
func (*Member) node()      {}
func (*Call) node()        {}
func (*New) node()         {}
func (*Await) node()       {}
func (*Spread) node()      {}
func (*Unary) node()       {}
func (*Update) node()      {}
func (*Binary) node()      {}
func (*Assign) node()      {}
func (*Cond) node()        {}
func (*Arrow) node()       {}
func (*FuncExpr) node()    {}

func (*Ident) exprNode()       {}
func (*StringLit) exprNode()   {}
func (*NumberLit) exprNode()   {}
func (*BoolLit) exprNode()     {}
func (*NullLit) exprNode()     {}
func (*TemplateLit) exprNode() {}
func (*ArrayLit) exprNode()    {}
func (*ObjectLit) exprNode()   {}
func (*Member) exprNode()      {}
func (*Call) exprNode()        {}
func (*New) exprNode()         {}
func (*Await) exprNode()       {}
func (*Spread) exprNode()      {}
func (*Unary) exprNode()       {}
func (*Update) exprNode()      {}
func (*Binary) exprNode()      {}
func (*Assign) exprNode()      {}
func (*Cond) exprNode()        {}
func (*Arrow) exprNode()       {}
func (*FuncExpr) exprNode()    {}
