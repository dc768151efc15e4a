package engine

import (
	"go.uber.org/zap"

	"github.com/wippyai/durable-transform/errors"
	"github.com/wippyai/durable-transform/js"
)

// FunctionRecord captures one top-level function found during Collect.
// Records are immutable after Collect; the inliner clones from Body and
// never writes through it.
type FunctionRecord struct {
	Name      string
	Params    []string
	Body      *js.Block
	Directive Directive
	Loc       js.Loc
	Exported  bool
	Default   bool
	Async     bool
}

// WorkflowRecord is a FunctionRecord plus the ordered set of step names the
// workflow invokes. InvokedSteps is filled by the inliner: insertion order
// is first textual occurrence, duplicates are not re-appended.
type WorkflowRecord struct {
	*FunctionRecord
	InvokedSteps []string
	seen         map[string]bool
}

func (w *WorkflowRecord) recordStep(name string) {
	if w.seen == nil {
		w.seen = make(map[string]bool)
	}
	if w.seen[name] {
		return
	}
	w.seen[name] = true
	w.InvokedSteps = append(w.InvokedSteps, name)
}

// SpecialCallKind identifies one of the fixed built-in call names.
type SpecialCallKind int

const (
	SpecialInvoke SpecialCallKind = iota
	SpecialSleep
	SpecialWaitForCallback
)

func (k SpecialCallKind) String() string {
	switch k {
	case SpecialInvoke:
		return "invoke"
	case SpecialSleep:
		return "sleep"
	default:
		return "waitForCallback"
	}
}

// SpecialCallSite is a built-in call observed inside a workflow or step body
// during Collect. The traversal that finds these never mutates the tree; the
// rewrite itself happens later over the assembled body.
type SpecialCallSite struct {
	Kind     SpecialCallKind
	Args     []js.Expr // non-owning view into the input tree
	Workflow string    // enclosing workflow, "" when found in a step body
	Loc      js.Loc
}

// Warning is a non-fatal finding attached to a successful result.
type Warning struct {
	Kind   string
	Detail string
	Loc    js.Loc
}

// Warning kinds.
const (
	WarnNestedDirective = "nested_directive"
	WarnSpecialCallArgs = "special_call_args"
	WarnExtraParams     = "extra_workflow_params"
)

// CollectedInfo is the output of the read-only first pass.
type CollectedInfo struct {
	Workflows          []*WorkflowRecord
	Steps              map[string]*FunctionRecord
	SpecialCalls       []SpecialCallSite
	Warnings           []Warning
	HasModuleDirective bool
}

func (c *CollectedInfo) isStep(name string) bool {
	_, ok := c.Steps[name]
	return ok
}

func (c *CollectedInfo) warn(kind, detail string, loc js.Loc) {
	c.Warnings = append(c.Warnings, Warning{Kind: kind, Detail: detail, Loc: loc})
	Logger().Warn("transform warning",
		zap.String("kind", kind),
		zap.String("detail", detail),
		zap.Int("line", loc.Line),
		zap.Int("col", loc.Col))
}

// Collect runs the read-only first pass over one compilation unit: it
// classifies every top-level function by directive, builds the step table
// and workflow records, and catalogs special built-in call sites.
func Collect(m *js.Module, file string) (*CollectedInfo, error) {
	info := &CollectedInfo{Steps: make(map[string]*FunctionRecord)}

	for _, item := range m.Body {
		stmt := item
		exported, isDefault := false, false
		if exp, ok := item.(*js.ExportDecl); ok {
			stmt = exp.Decl
			exported = true
			isDefault = exp.Default
		}

		switch s := stmt.(type) {
		case *js.ExprStmt:
			if directiveValue(s) == useWorkflow {
				info.HasModuleDirective = true
			}
		case *js.FuncDecl:
			rec := &FunctionRecord{
				Name:      s.Name,
				Params:    paramNames(s.Params),
				Body:      s.Body,
				Directive: classify(s.Body),
				Loc:       s.Loc,
				Exported:  exported,
				Default:   isDefault,
				Async:     s.Async,
			}
			if err := info.add(rec, file); err != nil {
				return nil, err
			}
		case *js.VarDecl:
			for _, d := range s.Decls {
				rec := functionFromInit(d, s.Loc, exported, isDefault)
				if rec == nil {
					continue
				}
				if err := info.add(rec, file); err != nil {
					return nil, err
				}
			}
		}
	}

	// Catalog special calls and demote nested directives. Done after the
	// top-level sweep so the record set is complete.
	for _, wf := range info.Workflows {
		info.scanSpecialCalls(wf.Body, wf.Name)
	}
	for _, step := range info.Steps {
		info.scanSpecialCalls(step.Body, "")
	}
	info.warnNestedDirectives(m)

	return info, nil
}

// add registers a classified function record. A second step reusing a name
// is a fatal collision.
func (c *CollectedInfo) add(rec *FunctionRecord, file string) error {
	switch rec.Directive {
	case DirectiveWorkflow:
		c.Workflows = append(c.Workflows, &WorkflowRecord{FunctionRecord: rec})
	case DirectiveStep:
		if _, exists := c.Steps[rec.Name]; exists {
			return errors.DuplicateStep(file, rec.Name, rec.Loc.Line, rec.Loc.Col)
		}
		c.Steps[rec.Name] = rec
	}
	return nil
}

// functionFromInit recognizes `const name = async (...) => {...}` and
// `const name = async function (...) {...}` bindings.
func functionFromInit(d *js.Declarator, loc js.Loc, exported, isDefault bool) *FunctionRecord {
	if d.Name == nil || d.Init == nil {
		return nil
	}
	var (
		params []*js.Param
		body   *js.Block
		async  bool
	)
	switch fn := d.Init.(type) {
	case *js.Arrow:
		if fn.Body == nil {
			return nil // expression-bodied arrows cannot carry a directive
		}
		params, body, async = fn.Params, fn.Body, fn.Async
	case *js.FuncExpr:
		params, body, async = fn.Params, fn.Body, fn.Async
	default:
		return nil
	}
	if d.Name.Loc.Known() {
		loc = d.Name.Loc
	}
	return &FunctionRecord{
		Name:      d.Name.Name,
		Params:    paramNames(params),
		Body:      body,
		Directive: classify(body),
		Loc:       loc,
		Exported:  exported,
		Default:   isDefault,
		Async:     async,
	}
}

// scanSpecialCalls catalogs invoke/sleep/waitForCallback call sites inside
// a collected body. Read-only.
func (c *CollectedInfo) scanSpecialCalls(body *js.Block, workflow string) {
	js.Walk(body, func(n js.Node) bool {
		call, ok := n.(*js.Call)
		if !ok {
			return true
		}
		id, ok := call.Callee.(*js.Ident)
		if !ok {
			return true
		}
		kind, ok := specialKind(id.Name)
		if !ok {
			return true
		}
		c.SpecialCalls = append(c.SpecialCalls, SpecialCallSite{
			Kind:     kind,
			Args:     call.Args,
			Workflow: workflow,
			Loc:      call.Loc,
		})
		c.checkSpecialArgs(kind, call)
		return true
	})
}

// checkSpecialArgs flags unexpected argument shapes. Non-fatal: the rewrite
// is still emitted structurally and the runtime validates at execution time.
func (c *CollectedInfo) checkSpecialArgs(kind SpecialCallKind, call *js.Call) {
	n := len(call.Args)
	switch kind {
	case SpecialInvoke:
		if n != 2 {
			c.warn(WarnSpecialCallArgs, "invoke expects (fnName, payload)", call.Loc)
		}
	case SpecialSleep:
		if n != 1 {
			c.warn(WarnSpecialCallArgs, "sleep expects (duration)", call.Loc)
		}
	case SpecialWaitForCallback:
		if n == 0 {
			c.warn(WarnSpecialCallArgs, "waitForCallback expects (name, setup, opts)", call.Loc)
		}
	}
}

// warnNestedDirectives demotes directives found on non-top-level functions.
// Top-level function bodies (already classified) are exempt; everything
// deeper is ordinary code regardless of its prologue.
func (c *CollectedInfo) warnNestedDirectives(m *js.Module) {
	top := make(map[*js.Block]bool)
	for _, wf := range c.Workflows {
		top[wf.Body] = true
	}
	for _, step := range c.Steps {
		top[step.Body] = true
	}
	// Directive-less top-level functions classify as None and never warn,
	// so only workflow/step bodies need exempting.
	js.Walk(m, func(n js.Node) bool {
		var nested *js.Block
		var loc js.Loc
		switch fn := n.(type) {
		case *js.FuncDecl:
			nested, loc = fn.Body, fn.Loc
		case *js.FuncExpr:
			nested = fn.Body
		case *js.Arrow:
			nested = fn.Body
		default:
			return true
		}
		if top[nested] {
			return true
		}
		if d := classify(nested); d != DirectiveNone {
			c.warn(WarnNestedDirective,
				"\"use "+d.String()+"\" on a nested function is ignored", loc)
		}
		return true
	})
}

func paramNames(params []*js.Param) []string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	return names
}

func specialKind(name string) (SpecialCallKind, bool) {
	rule, ok := specialRules[name]
	return rule.kind, ok
}
