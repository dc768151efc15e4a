package engine

import (
	"github.com/wippyai/durable-transform/js"
)

// Directive classifies a function by the marker string in its prologue.
type Directive int

const (
	DirectiveNone Directive = iota
	DirectiveWorkflow
	DirectiveStep
)

func (d Directive) String() string {
	switch d {
	case DirectiveWorkflow:
		return "workflow"
	case DirectiveStep:
		return "step"
	default:
		return "none"
	}
}

const (
	useWorkflow = "use workflow"
	useStep     = "use step"
)

// classify inspects the first body statement only; a directive anywhere
// else is ordinary code.
func classify(body *js.Block) Directive {
	if body == nil || len(body.Stmts) == 0 {
		return DirectiveNone
	}
	switch directiveValue(body.Stmts[0]) {
	case useWorkflow:
		return DirectiveWorkflow
	case useStep:
		return DirectiveStep
	default:
		return DirectiveNone
	}
}

// directiveValue returns the string value if the statement is a bare string
// literal expression, or "".
func directiveValue(s js.Stmt) string {
	expr, ok := s.(*js.ExprStmt)
	if !ok {
		return ""
	}
	lit, ok := expr.X.(*js.StringLit)
	if !ok {
		return ""
	}
	return lit.Value
}

// isDirectiveStmt reports whether the statement is one of the two marker
// directives.
func isDirectiveStmt(s js.Stmt) bool {
	v := directiveValue(s)
	return v == useWorkflow || v == useStep
}

// stripDirective drops the leading marker directive, if any. Marker strings
// deeper in the body are ordinary (dead) expressions and stay put.
func stripDirective(stmts []js.Stmt) []js.Stmt {
	if len(stmts) > 0 && isDirectiveStmt(stmts[0]) {
		return stmts[1:]
	}
	return stmts
}
