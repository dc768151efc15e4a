package engine

import (
	"go.uber.org/zap"

	"github.com/wippyai/durable-transform/errors"
	"github.com/wippyai/durable-transform/internal/codegen"
	"github.com/wippyai/durable-transform/js"
)

// Mode selects which pipeline a compilation unit goes through.
type Mode int

const (
	// ModeWorkflow rewrites directive-marked functions for durable execution.
	ModeWorkflow Mode = iota
	// ModeClient replaces workflow imports with invocation descriptors.
	ModeClient
)

func (m Mode) String() string {
	if m == ModeClient {
		return "client"
	}
	return "workflow"
}

// ParseMode converts a configuration string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "workflow":
		return ModeWorkflow, nil
	case "client":
		return ModeClient, nil
	default:
		return 0, errors.InvalidConfig("mode must be \"workflow\" or \"client\", got " + s)
	}
}

// ModuleMatcher decides whether an import source names a workflow module.
// Only consulted in client mode.
type ModuleMatcher interface {
	MatchModule(source string) bool
}

// Defaults applied by New for zero-value configuration fields.
const (
	DefaultPackageName = "@cgalceran/aws-durable"
	DefaultEnvPrefix   = "WORKFLOW_"
)

// Config carries the per-engine settings.
type Config struct {
	// Mode selects the workflow or client pipeline.
	Mode Mode
	// PackageName is the import source for the durable-execution adapter.
	PackageName string
	// EnvPrefix prefixes the environment-variable names referenced by
	// client-mode descriptors.
	EnvPrefix string
	// WorkflowModules classifies import sources in client mode. Nil matches
	// nothing, which makes client mode a no-op.
	WorkflowModules ModuleMatcher
}

// Engine applies one configured transform to compilation units. It holds no
// per-unit state; a single Engine may serve concurrent Transform calls.
type Engine struct {
	cfg Config
}

// New validates the configuration and fills in defaults.
func New(cfg Config) (*Engine, error) {
	if cfg.PackageName == "" {
		cfg.PackageName = DefaultPackageName
	}
	if cfg.EnvPrefix == "" {
		cfg.EnvPrefix = DefaultEnvPrefix
	}
	if cfg.Mode != ModeWorkflow && cfg.Mode != ModeClient {
		return nil, errors.InvalidConfig("unknown mode")
	}
	return &Engine{cfg: cfg}, nil
}

// WorkflowSummary mirrors the emitted __workflowMeta export for callers that
// want the metadata without re-parsing the output.
type WorkflowSummary struct {
	Name  string
	Steps []string
}

// Result is the outcome of one successful Transform. When Changed is false
// the module is returned as given and printing it reproduces the input.
type Result struct {
	Module    *js.Module
	Changed   bool
	Warnings  []Warning
	Workflows []WorkflowSummary
}

// Transform runs the configured pipeline over one compilation unit. The
// engine takes ownership of the input tree; on error no partial output is
// produced. file is used for diagnostics only.
func (e *Engine) Transform(m *js.Module, file string) (*Result, error) {
	if m == nil {
		return nil, errors.InvalidInput(errors.PhaseParse, "nil module")
	}
	if e.cfg.Mode == ModeClient {
		items, changed := rewriteClient(m, e.cfg.WorkflowModules, e.cfg.EnvPrefix)
		Logger().Debug("client transform complete",
			zap.String("file", file),
			zap.Bool("changed", changed))
		return &Result{Module: &js.Module{Body: items}, Changed: changed}, nil
	}
	return e.transformWorkflows(m, file)
}

func (e *Engine) transformWorkflows(m *js.Module, file string) (*Result, error) {
	info, err := Collect(m, file)
	if err != nil {
		return nil, err
	}
	if len(info.Workflows) == 0 && !info.HasModuleDirective {
		return &Result{Module: m, Warnings: info.Warnings}, nil
	}

	in := &inliner{info: info, file: file}

	// Inline, rewrite and wrap each workflow before touching the item list,
	// keyed by the original body so assembly can find its replacement.
	byBody := make(map[*js.Block]wrappedWorkflow, len(info.Workflows))
	invokeUsed := false
	summaries := make([]WorkflowSummary, 0, len(info.Workflows))
	for _, wf := range info.Workflows {
		body := in.inlineWorkflow(wf)
		body, invoked := rewriteSpecials(body)
		invokeUsed = invokeUsed || invoked
		byBody[wf.Body] = wrappedWorkflow{stmts: wrapWorkflow(info, wf, body)}
		summaries = append(summaries, WorkflowSummary{Name: wf.Name, Steps: wf.InvokedSteps})
	}

	items := make([]js.Stmt, 0, len(m.Body)+2*len(info.Workflows))
	for _, item := range m.Body {
		stmt := item
		if exp, ok := item.(*js.ExportDecl); ok {
			stmt = exp.Decl
		}
		switch s := stmt.(type) {
		case *js.ExprStmt:
			// The module directive is consumed, which keeps a second run
			// over the output a no-op.
			if directiveValue(s) == useWorkflow {
				continue
			}
		case *js.FuncDecl:
			if w, ok := byBody[s.Body]; ok {
				items = append(items, w.stmts...)
				continue
			}
		case *js.VarDecl:
			if replaced, ok := replaceWorkflowDecls(s, stmt != item, byBody); ok {
				items = append(items, replaced...)
				continue
			}
		}
		items = append(items, item)
	}

	items = in.eraseSteps(items)
	if err := in.verify(items); err != nil {
		return nil, err
	}

	header := []js.Stmt{codegen.SDKImport(e.cfg.PackageName)}
	if invokeUsed {
		header = append(header, codegen.LambdaSDKImport())
	}
	items = append(header, items...)

	Logger().Debug("workflow transform complete",
		zap.String("file", file),
		zap.Int("workflows", len(info.Workflows)),
		zap.Int("steps", len(info.Steps)),
		zap.Int("warnings", len(info.Warnings)))

	return &Result{
		Module:    &js.Module{Body: items},
		Changed:   true,
		Warnings:  info.Warnings,
		Workflows: summaries,
	}, nil
}

type wrappedWorkflow struct {
	stmts []js.Stmt
}

// replaceWorkflowDecls handles `const name = async (...) => {...}` workflow
// bindings, including a var statement mixing workflow and plain declarators.
// The wrapper and metadata land in the statement's position; plain
// declarators keep theirs, ahead of the wrappers. The wrapper statements
// already carry their own export clause, taken from the collected record.
func replaceWorkflowDecls(decl *js.VarDecl, exported bool, byBody map[*js.Block]wrappedWorkflow) ([]js.Stmt, bool) {
	var kept []*js.Declarator
	var wrappers []js.Stmt
	for _, d := range decl.Decls {
		if w, ok := wrappedFor(d.Init, byBody); ok {
			wrappers = append(wrappers, w.stmts...)
			continue
		}
		kept = append(kept, d)
	}
	if len(wrappers) == 0 {
		return nil, false
	}
	out := make([]js.Stmt, 0, len(wrappers)+1)
	if len(kept) > 0 {
		var trimmed js.Stmt = &js.VarDecl{Kind: decl.Kind, Decls: kept, Loc: decl.Loc}
		if exported {
			trimmed = &js.ExportDecl{Decl: trimmed}
		}
		out = append(out, trimmed)
	}
	return append(out, wrappers...), true
}

func wrappedFor(init js.Expr, byBody map[*js.Block]wrappedWorkflow) (wrappedWorkflow, bool) {
	switch fn := init.(type) {
	case *js.Arrow:
		w, ok := byBody[fn.Body]
		return w, ok
	case *js.FuncExpr:
		w, ok := byBody[fn.Body]
		return w, ok
	}
	return wrappedWorkflow{}, false
}
