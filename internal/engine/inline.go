package engine

import (
	"github.com/wippyai/durable-transform/errors"
	"github.com/wippyai/durable-transform/internal/codegen"
	"github.com/wippyai/durable-transform/js"
)

// inliner expands step invocations inside workflow bodies into checkpointed
// closures and erases the step declarations afterwards.
type inliner struct {
	info *CollectedInfo
	file string
}

// inlineWorkflow returns a fresh body for the workflow with every direct
// step call replaced by ctx.step("name", async () => { ... }). Arguments are
// rewritten before the step body is expanded, so a step call nested in an
// argument list inlines too, while the invoked-step order stays textual:
// the callee name precedes its arguments in the source.
//
// Step calls inside an already-inlined body are left alone; a step that
// calls another step keeps the plain call, matching the one-level inlining
// the runtime checkpoint model expects.
func (in *inliner) inlineWorkflow(wf *WorkflowRecord) *js.Block {
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
		step, ok := in.info.Steps[id.Name]
		if !ok {
			return nil, false
		}
		wf.recordStep(step.Name)
		return in.expand(step, r.exprs(call.Args)), true
	}
	return r.block(wf.Body)
}

// expand builds the checkpointed closure for one call site. The step body is
// rebuilt from the record with formal parameters substituted positionally;
// unmatched parameters bind to undefined, surplus arguments are dropped.
func (in *inliner) expand(step *FunctionRecord, args []js.Expr) js.Expr {
	bindings := make(map[string]js.Expr, len(step.Params))
	for i, name := range step.Params {
		if i < len(args) {
			bindings[name] = args[i]
		} else {
			bindings[name] = codegen.Undefined()
		}
	}
	body := substitute(stripDirective(step.Body.Stmts), bindings)
	return codegen.StepCall(step.Name, body)
}

// eraseSteps drops top-level step declarations from the item list. A var
// statement mixing step and non-step declarators keeps its non-step part.
func (in *inliner) eraseSteps(items []js.Stmt) []js.Stmt {
	out := make([]js.Stmt, 0, len(items))
	for _, item := range items {
		stmt := item
		exp, exported := item.(*js.ExportDecl)
		if exported {
			stmt = exp.Decl
		}
		switch s := stmt.(type) {
		case *js.FuncDecl:
			if in.isStep(s.Name, s.Body) {
				continue
			}
		case *js.VarDecl:
			kept := s.Decls[:0:0]
			for _, d := range s.Decls {
				if d.Name != nil && in.isStepInit(d.Name.Name, d.Init) {
					continue
				}
				kept = append(kept, d)
			}
			if len(kept) == 0 {
				continue
			}
			if len(kept) != len(s.Decls) {
				trimmed := &js.VarDecl{Kind: s.Kind, Decls: kept, Loc: s.Loc}
				if exported {
					item = &js.ExportDecl{Decl: trimmed, Default: exp.Default, Loc: exp.Loc}
				} else {
					item = trimmed
				}
			}
		}
		out = append(out, item)
	}
	return out
}

func (in *inliner) isStep(name string, body *js.Block) bool {
	rec, ok := in.info.Steps[name]
	return ok && rec.Body == body
}

func (in *inliner) isStepInit(name string, init js.Expr) bool {
	rec, ok := in.info.Steps[name]
	if !ok {
		return false
	}
	switch fn := init.(type) {
	case *js.Arrow:
		return rec.Body == fn.Body
	case *js.FuncExpr:
		return rec.Body == fn.Body
	}
	return false
}

// verify walks the assembled output and rejects any live reference to an
// erased step. A step name in call position means an invocation outside a
// workflow body; any other reference position means the step was captured as
// a value. Closures passed to ctx.step are skipped: they are inlined bodies
// whose references were already resolved during expansion.
func (in *inliner) verify(items []js.Stmt) error {
	var err error
	r := &rewriter{}
	r.mapExpr = func(e js.Expr) (js.Expr, bool) {
		if err != nil {
			return e, true
		}
		switch e := e.(type) {
		case *js.Call:
			if isCtxStepCall(e) {
				return e, true
			}
			if id, ok := e.Callee.(*js.Ident); ok {
				if _, isStep := in.info.Steps[id.Name]; isStep {
					err = errors.UnreachableStepRef(in.file, id.Name, id.Loc.Line, id.Loc.Col)
					return e, true
				}
			}
		case *js.Ident:
			if _, isStep := in.info.Steps[e.Name]; isStep {
				err = errors.DanglingStepRef(in.file, e.Name, e.Loc.Line, e.Loc.Col)
				return e, true
			}
		}
		return nil, false
	}
	for _, item := range items {
		r.stmt(item)
	}
	return err
}

func isCtxStepCall(call *js.Call) bool {
	m, ok := call.Callee.(*js.Member)
	if !ok || m.Prop != codegen.StepMethod || m.Index != nil {
		return false
	}
	obj, ok := m.Obj.(*js.Ident)
	return ok && obj.Name == codegen.ContextName
}
