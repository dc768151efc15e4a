package engine

import (
	"github.com/wippyai/durable-transform/internal/codegen"
	"github.com/wippyai/durable-transform/js"
)

// specialRule maps one built-in call name to its runtime-API expansion.
// The table is immutable process-wide state; build receives the call's
// already-rewritten arguments and never evaluates them.
type specialRule struct {
	kind  SpecialCallKind
	build func(args []js.Expr) js.Expr
}

var specialRules = map[string]specialRule{
	"invoke": {
		kind: SpecialInvoke,
		build: func(args []js.Expr) js.Expr {
			return codegen.InvokeStep(argAt(args, 0), argAt(args, 1))
		},
	},
	"sleep": {
		kind: SpecialSleep,
		build: func(args []js.Expr) js.Expr {
			return codegen.WaitCall(argAt(args, 0))
		},
	},
	"waitForCallback": {
		kind: SpecialWaitForCallback,
		build: func(args []js.Expr) js.Expr {
			return codegen.WaitForCallbackCall(args)
		},
	},
}

func argAt(args []js.Expr, i int) js.Expr {
	if i < len(args) {
		return args[i]
	}
	return codegen.Undefined()
}

// rewriteSpecials replaces built-in special calls throughout a fully
// assembled workflow body, including inside closures produced by step
// inlining. It reports whether any invoke call was expanded, which decides
// the Lambda SDK import.
func rewriteSpecials(body *js.Block) (*js.Block, bool) {
	invokeUsed := false
	r := &rewriter{}
	r.mapExpr = func(e js.Expr) (js.Expr, bool) {
		call, ok := e.(*js.Call)
		if !ok {
			return nil, false
		}
		id, ok := call.Callee.(*js.Ident)
		if !ok {
			return nil, false
		}
		rule, ok := specialRules[id.Name]
		if !ok {
			return nil, false
		}
		if rule.kind == SpecialInvoke {
			invokeUsed = true
		}
		return rule.build(r.exprs(call.Args)), true
	}
	return r.block(body), invokeUsed
}
