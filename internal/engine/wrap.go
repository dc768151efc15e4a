package engine

import (
	"fmt"

	"github.com/wippyai/durable-transform/internal/codegen"
	"github.com/wippyai/durable-transform/js"
)

// wrapWorkflow turns a fully inlined and rewritten workflow body into its
// output statements: the adapter binding followed by the metadata export.
//
// The first formal parameter is renamed to the canonical event name so the
// body reads it from the adapter closure's signature. Further parameters
// have no call-site counterpart under the durable entry contract and are
// left untouched, which makes them undefined at run time; that earns a
// warning rather than an error.
func wrapWorkflow(info *CollectedInfo, wf *WorkflowRecord, body *js.Block) []js.Stmt {
	stmts := stripDirective(body.Stmts)

	if len(wf.Params) > 0 && wf.Params[0] != codegen.EventName {
		stmts = substitute(stmts, map[string]js.Expr{
			wf.Params[0]: &js.Ident{Name: codegen.EventName},
		})
	}
	if len(wf.Params) > 1 {
		info.warn(WarnExtraParams,
			fmt.Sprintf("workflow %q declares %d parameters; only the first receives the event",
				wf.Name, len(wf.Params)),
			wf.Loc)
	}

	out := codegen.DurableWrapper(wf.Name, stmts, wf.Exported, wf.Default)
	return append(out, codegen.WorkflowMeta(wf.Name, wf.InvokedSteps))
}
