package js

import (
	"strconv"
	"strings"
)

// PrintModule renders a module as JavaScript source text. Output layout is
// deterministic: two-space indentation, one statement per line, semicolons
// everywhere. It exists for the CLI, goldens, and diagnostics; the host's
// own serializer remains the production output path.
func PrintModule(m *Module) string {
	p := &printer{}
	for _, s := range m.Body {
		p.stmt(s)
	}
	return p.b.String()
}

// Print renders a single node.
func Print(n Node) string {
	p := &printer{}
	switch n := n.(type) {
	case *Module:
		return PrintModule(n)
	case Expr:
		p.expr(n, precLowest)
	case Stmt:
		p.stmt(n)
	}
	return p.b.String()
}

type printer struct {
	b      strings.Builder
	indent int
}

// Operator precedence, loosely after the ECMAScript operator table. Only the
// ordering matters; a child printed in a slot requiring precedence n is
// parenthesized when its own precedence is lower.
const (
	precLowest   = 0
	precAssign   = 2
	precCond     = 3
	precNullish  = 4
	precOr       = 5
	precAnd      = 6
	precEquality = 10
	precCompare  = 11
	precAdd      = 12
	precMul      = 13
	precExp      = 14
	precUnary    = 15
	precPostfix  = 16
	precCall     = 18
	precPrimary  = 20
)

func binaryPrec(op string) int {
	switch op {
	case "??":
		return precNullish
	case "||":
		return precOr
	case "&&":
		return precAnd
	case "==", "!=", "===", "!==":
		return precEquality
	case "<", ">", "<=", ">=", "in", "instanceof":
		return precCompare
	case "+", "-":
		return precAdd
	case "*", "/", "%":
		return precMul
	case "**":
		return precExp
	default:
		return precCompare
	}
}

func exprPrec(e Expr) int {
	switch e := e.(type) {
	case *Assign, *Arrow:
		return precAssign
	case *Cond:
		return precCond
	case *Binary:
		return binaryPrec(e.Op)
	case *Unary, *Await:
		return precUnary
	case *Update:
		return precPostfix
	case *Call, *New, *Member:
		return precCall
	default:
		return precPrimary
	}
}

func (p *printer) line(s string) {
	p.b.WriteString(strings.Repeat("  ", p.indent))
	p.b.WriteString(s)
	p.b.WriteByte('\n')
}

func (p *printer) openLine() {
	p.b.WriteString(strings.Repeat("  ", p.indent))
}

func (p *printer) stmt(s Stmt) {
	switch s := s.(type) {
	case nil:
	case *ImportDecl:
		p.importDecl(s)
	case *ExportDecl:
		p.openLine()
		if s.Default {
			p.b.WriteString("export default ")
		} else {
			p.b.WriteString("export ")
		}
		p.stmtInline(s.Decl)
		p.b.WriteByte('\n')
	case *ExprStmt:
		p.openLine()
		// An object or function expression at statement start parses as a
		// block or declaration; parenthesize.
		switch s.X.(type) {
		case *ObjectLit, *FuncExpr:
			p.b.WriteByte('(')
			p.expr(s.X, precLowest)
			p.b.WriteByte(')')
		default:
			p.expr(s.X, precLowest)
		}
		p.b.WriteString(";\n")
	case *VarDecl:
		p.openLine()
		p.varDecl(s)
		p.b.WriteString(";\n")
	case *FuncDecl:
		p.openLine()
		if s.Async {
			p.b.WriteString("async ")
		}
		p.b.WriteString("function ")
		p.b.WriteString(s.Name)
		p.params(s.Params)
		p.b.WriteByte(' ')
		p.block(s.Body)
		p.b.WriteByte('\n')
	case *Block:
		p.openLine()
		p.block(s)
		p.b.WriteByte('\n')
	case *Return:
		p.openLine()
		p.b.WriteString("return")
		if s.Arg != nil {
			p.b.WriteByte(' ')
			p.expr(s.Arg, precLowest)
		}
		p.b.WriteString(";\n")
	case *If:
		p.openLine()
		p.b.WriteString("if (")
		p.expr(s.Test, precLowest)
		p.b.WriteString(") ")
		p.nestedStmt(s.Cons)
		if s.Alt != nil {
			p.b.WriteString(" else ")
			p.nestedStmt(s.Alt)
		}
		p.b.WriteByte('\n')
	case *For:
		p.openLine()
		p.b.WriteString("for (")
		if s.Init != nil {
			p.stmtClause(s.Init)
		}
		p.b.WriteString("; ")
		if s.Test != nil {
			p.expr(s.Test, precLowest)
		}
		p.b.WriteString("; ")
		if s.Update != nil {
			p.expr(s.Update, precLowest)
		}
		p.b.WriteString(") ")
		p.nestedStmt(s.Body)
		p.b.WriteByte('\n')
	case *ForOf:
		p.openLine()
		p.b.WriteString("for ")
		if s.Await {
			p.b.WriteString("await ")
		}
		p.b.WriteByte('(')
		if s.Kind != "" {
			p.b.WriteString(s.Kind)
			p.b.WriteByte(' ')
		}
		p.b.WriteString(s.Name.Name)
		p.b.WriteString(" of ")
		p.expr(s.Right, precLowest)
		p.b.WriteString(") ")
		p.nestedStmt(s.Body)
		p.b.WriteByte('\n')
	case *While:
		p.openLine()
		p.b.WriteString("while (")
		p.expr(s.Test, precLowest)
		p.b.WriteString(") ")
		p.nestedStmt(s.Body)
		p.b.WriteByte('\n')
	case *Try:
		p.openLine()
		p.b.WriteString("try ")
		p.block(s.Block)
		if s.Catch != nil {
			p.b.WriteString(" catch ")
			if s.Param != nil {
				p.b.WriteByte('(')
				p.b.WriteString(s.Param.Name)
				p.b.WriteString(") ")
			}
			p.block(s.Catch)
		}
		if s.Finally != nil {
			p.b.WriteString(" finally ")
			p.block(s.Finally)
		}
		p.b.WriteByte('\n')
	case *Throw:
		p.openLine()
		p.b.WriteString("throw ")
		p.expr(s.Arg, precLowest)
		p.b.WriteString(";\n")
	case *Break:
		if s.Label != "" {
			p.line("break " + s.Label + ";")
		} else {
			p.line("break;")
		}
	case *Continue:
		if s.Label != "" {
			p.line("continue " + s.Label + ";")
		} else {
			p.line("continue;")
		}
	}
}

// stmtInline renders a declaration without leading indentation, for use
// after an `export` keyword already written on the open line.
func (p *printer) stmtInline(s Stmt) {
	switch s := s.(type) {
	case *VarDecl:
		p.varDecl(s)
		p.b.WriteByte(';')
	case *FuncDecl:
		if s.Async {
			p.b.WriteString("async ")
		}
		p.b.WriteString("function ")
		p.b.WriteString(s.Name)
		p.params(s.Params)
		p.b.WriteByte(' ')
		p.block(s.Body)
	case *ExprStmt:
		p.expr(s.X, precLowest)
		p.b.WriteByte(';')
	default:
		p.nestedStmt(s)
	}
}

// stmtClause renders a statement without trailing terminator (for-init).
func (p *printer) stmtClause(s Stmt) {
	switch s := s.(type) {
	case *VarDecl:
		p.varDecl(s)
	case *ExprStmt:
		p.expr(s.X, precLowest)
	}
}

// nestedStmt renders a statement appearing as a sub-statement (if/loop
// body). Blocks are inlined; everything else goes on the same line.
func (p *printer) nestedStmt(s Stmt) {
	switch s := s.(type) {
	case *Block:
		p.block(s)
	case *ExprStmt:
		p.expr(s.X, precLowest)
		p.b.WriteByte(';')
	case *Return:
		p.b.WriteString("return")
		if s.Arg != nil {
			p.b.WriteByte(' ')
			p.expr(s.Arg, precLowest)
		}
		p.b.WriteByte(';')
	case *Throw:
		p.b.WriteString("throw ")
		p.expr(s.Arg, precLowest)
		p.b.WriteByte(';')
	case *Break:
		p.b.WriteString("break;")
	case *Continue:
		p.b.WriteString("continue;")
	default:
		// Wrap anything else in a block for clarity.
		p.block(&Block{Stmts: []Stmt{s}})
	}
}

func (p *printer) block(b *Block) {
	if b == nil || len(b.Stmts) == 0 {
		p.b.WriteString("{}")
		return
	}
	p.b.WriteString("{\n")
	p.indent++
	for _, s := range b.Stmts {
		p.stmt(s)
	}
	p.indent--
	p.b.WriteString(strings.Repeat("  ", p.indent))
	p.b.WriteByte('}')
}

func (p *printer) varDecl(s *VarDecl) {
	p.b.WriteString(s.Kind)
	p.b.WriteByte(' ')
	for i, d := range s.Decls {
		if i > 0 {
			p.b.WriteString(", ")
		}
		p.b.WriteString(d.Name.Name)
		if d.Init != nil {
			p.b.WriteString(" = ")
			p.expr(d.Init, precAssign)
		}
	}
}

func (p *printer) importDecl(s *ImportDecl) {
	p.openLine()
	p.b.WriteString("import ")
	var named []string
	wrote := false
	for _, spec := range s.Specs {
		switch spec.Kind {
		case ImportDefault:
			if wrote {
				p.b.WriteString(", ")
			}
			p.b.WriteString(spec.Local)
			wrote = true
		case ImportNamespace:
			if wrote {
				p.b.WriteString(", ")
			}
			p.b.WriteString("* as " + spec.Local)
			wrote = true
		case ImportNamed:
			if spec.Imported != "" && spec.Imported != spec.Local {
				named = append(named, spec.Imported+" as "+spec.Local)
			} else {
				named = append(named, spec.Local)
			}
		}
	}
	if len(named) > 0 {
		if wrote {
			p.b.WriteString(", ")
		}
		p.b.WriteString("{ " + strings.Join(named, ", ") + " }")
		wrote = true
	}
	if wrote {
		p.b.WriteString(" from ")
	}
	p.b.WriteString(quote(s.Source))
	p.b.WriteString(";\n")
}

func (p *printer) params(params []*Param) {
	p.b.WriteByte('(')
	for i, param := range params {
		if i > 0 {
			p.b.WriteString(", ")
		}
		p.b.WriteString(param.Name)
	}
	p.b.WriteByte(')')
}

func (p *printer) expr(e Expr, min int) {
	if e == nil {
		return
	}
	if exprPrec(e) < min {
		p.b.WriteByte('(')
		p.exprBare(e)
		p.b.WriteByte(')')
		return
	}
	p.exprBare(e)
}

func (p *printer) exprBare(e Expr) {
	switch e := e.(type) {
	case *Ident:
		p.b.WriteString(e.Name)
	case *StringLit:
		p.b.WriteString(quote(e.Value))
	case *NumberLit:
		p.b.WriteString(e.Raw)
	case *BoolLit:
		if e.Value {
			p.b.WriteString("true")
		} else {
			p.b.WriteString("false")
		}
	case *NullLit:
		p.b.WriteString("null")
	case *TemplateLit:
		p.b.WriteByte('`')
		for i, q := range e.Quasis {
			p.b.WriteString(escapeTemplate(q))
			if i < len(e.Exprs) {
				p.b.WriteString("${")
				p.expr(e.Exprs[i], precLowest)
				p.b.WriteByte('}')
			}
		}
		p.b.WriteByte('`')
	case *ArrayLit:
		p.b.WriteByte('[')
		for i, el := range e.Elems {
			if i > 0 {
				p.b.WriteString(", ")
			}
			if el != nil {
				p.expr(el, precAssign)
			}
		}
		p.b.WriteByte(']')
	case *ObjectLit:
		if len(e.Props) == 0 {
			p.b.WriteString("{}")
			return
		}
		p.b.WriteString("{ ")
		for i, prop := range e.Props {
			if i > 0 {
				p.b.WriteString(", ")
			}
			p.property(prop)
		}
		p.b.WriteString(" }")
	case *Member:
		p.expr(e.Obj, precCall)
		if e.Index != nil {
			p.b.WriteByte('[')
			p.expr(e.Index, precLowest)
			p.b.WriteByte(']')
		} else {
			p.b.WriteByte('.')
			p.b.WriteString(e.Prop)
		}
	case *Call:
		p.expr(e.Callee, precCall)
		p.args(e.Args)
	case *New:
		p.b.WriteString("new ")
		p.expr(e.Callee, precCall)
		p.args(e.Args)
	case *Await:
		p.b.WriteString("await ")
		p.expr(e.Arg, precUnary)
	case *Spread:
		p.b.WriteString("...")
		p.expr(e.Arg, precAssign)
	case *Unary:
		p.b.WriteString(e.Op)
		if len(e.Op) > 1 {
			p.b.WriteByte(' ')
		}
		p.expr(e.Arg, precUnary)
	case *Update:
		if e.Prefix {
			p.b.WriteString(e.Op)
			p.expr(e.Arg, precUnary)
		} else {
			p.expr(e.Arg, precPostfix)
			p.b.WriteString(e.Op)
		}
	case *Binary:
		prec := binaryPrec(e.Op)
		p.expr(e.Left, prec)
		p.b.WriteByte(' ')
		p.b.WriteString(e.Op)
		p.b.WriteByte(' ')
		p.expr(e.Right, prec+1)
	case *Assign:
		p.expr(e.Target, precCall)
		p.b.WriteByte(' ')
		p.b.WriteString(e.Op)
		p.b.WriteByte(' ')
		p.expr(e.Value, precAssign)
	case *Cond:
		p.expr(e.Test, precCond+1)
		p.b.WriteString(" ? ")
		p.expr(e.Cons, precAssign)
		p.b.WriteString(" : ")
		p.expr(e.Alt, precAssign)
	case *Arrow:
		if e.Async {
			p.b.WriteString("async ")
		}
		p.params(e.Params)
		p.b.WriteString(" => ")
		if e.Body != nil {
			p.block(e.Body)
		} else {
			// An object body needs parens to not parse as a block.
			if _, ok := e.Expr.(*ObjectLit); ok {
				p.b.WriteByte('(')
				p.expr(e.Expr, precAssign)
				p.b.WriteByte(')')
			} else {
				p.expr(e.Expr, precAssign)
			}
		}
	case *FuncExpr:
		if e.Async {
			p.b.WriteString("async ")
		}
		p.b.WriteString("function")
		if e.Name != "" {
			p.b.WriteByte(' ')
			p.b.WriteString(e.Name)
		}
		p.params(e.Params)
		p.b.WriteByte(' ')
		p.block(e.Body)
	}
}

func (p *printer) property(prop *Property) {
	if prop.Spread {
		p.b.WriteString("...")
		p.expr(prop.Value, precAssign)
		return
	}
	if prop.Shorthand {
		if id, ok := prop.Key.(*Ident); ok {
			p.b.WriteString(id.Name)
			return
		}
	}
	switch k := prop.Key.(type) {
	case *Ident:
		p.b.WriteString(k.Name)
	case *StringLit:
		p.b.WriteString(quote(k.Value))
	default:
		p.b.WriteByte('[')
		p.expr(prop.Key, precLowest)
		p.b.WriteByte(']')
	}
	p.b.WriteString(": ")
	p.expr(prop.Value, precAssign)
}

func (p *printer) args(args []Expr) {
	p.b.WriteByte('(')
	for i, a := range args {
		if i > 0 {
			p.b.WriteString(", ")
		}
		p.expr(a, precAssign)
	}
	p.b.WriteByte(')')
}

func quote(s string) string {
	return strconv.Quote(s)
}

func escapeTemplate(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "`", "\\`")
	s = strings.ReplaceAll(s, "${", "\\${")
	return s
}
