package engine

import (
	gerrors "errors"
	"testing"

	"github.com/wippyai/durable-transform/errors"
	"github.com/wippyai/durable-transform/internal/codegen"
	"github.com/wippyai/durable-transform/js"
)

func transform(t *testing.T, m *js.Module) *Result {
	t.Helper()
	result, err := mustEngine(Config{}).Transform(m, "app.mjs")
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	return result
}

func TestTransformPassthrough(t *testing.T) {
	m := module(fn("plain", nil, ret(nil)))
	result := transform(t, m)
	if result.Changed {
		t.Error("unit without directives must not change")
	}
	if result.Module != m {
		t.Error("passthrough must return the input module")
	}
}

func TestTransformBasicWorkflow(t *testing.T) {
	m := module(
		&js.ExportDecl{Decl: workflowFn("signup", []string{"input"},
			constDecl("user", &js.Await{Arg: call(ident("createUser"), member(ident("input"), "email"))}),
			awaitCall("sleep", str("1d")),
			ret(ident("user")),
		)},
		stepFn("createUser", []string{"email"},
			ret(ident("email")),
		),
	)

	result := transform(t, m)
	if !result.Changed {
		t.Fatal("expected a change")
	}

	// The adapter import leads the unit.
	imp, ok := result.Module.Body[0].(*js.ImportDecl)
	if !ok || imp.Source != DefaultPackageName {
		t.Fatalf("Body[0] = %#v, want import from %s", result.Module.Body[0], DefaultPackageName)
	}
	if len(imp.Specs) != 1 || imp.Specs[0].Local != codegen.AdapterName {
		t.Errorf("import specs = %+v", imp.Specs)
	}

	// Workflow became an exported const bound to the adapter.
	wf := findConst(result.Module, "signup")
	if wf == nil {
		t.Fatal("signup binding missing")
	}
	wrapped, ok := wf.Init.(*js.Call)
	if !ok {
		t.Fatalf("signup init = %#v, want adapter call", wf.Init)
	}
	if id, ok := wrapped.Callee.(*js.Ident); !ok || id.Name != codegen.AdapterName {
		t.Errorf("callee = %#v, want %s", wrapped.Callee, codegen.AdapterName)
	}

	// Step call inlined into a named checkpoint closure.
	steps := findCalls(result.Module, "step")
	if len(steps) != 1 {
		t.Fatalf("got %d ctx.step calls, want 1", len(steps))
	}
	if name, ok := steps[0].Args[0].(*js.StringLit); !ok || name.Value != "createUser" {
		t.Errorf("checkpoint name = %#v, want createUser", steps[0].Args[0])
	}

	// Parameter substitution plus event rename: input.email became
	// event.email inside the closure.
	if countIdents(result.Module, "input") != 0 {
		t.Error("workflow parameter name leaked into output")
	}
	if countIdents(result.Module, codegen.EventName) == 0 {
		t.Error("event identifier missing from output")
	}

	// sleep became ctx.wait.
	if waits := findCalls(result.Module, "wait"); len(waits) != 1 {
		t.Errorf("got %d ctx.wait calls, want 1", len(waits))
	}
	if leftover := findCalls(result.Module, "sleep"); len(leftover) != 0 {
		t.Error("sleep call survived the rewrite")
	}

	// Step declaration erased; metadata export present.
	js.Walk(result.Module, func(n js.Node) bool {
		if fd, ok := n.(*js.FuncDecl); ok && fd.Name == "createUser" {
			t.Error("step declaration survived erasure")
		}
		return true
	})
	if findConst(result.Module, codegen.MetaName) == nil {
		t.Error("__workflowMeta export missing")
	}
	if len(result.Workflows) != 1 || result.Workflows[0].Name != "signup" {
		t.Fatalf("summaries = %+v", result.Workflows)
	}
	if got := result.Workflows[0].Steps; len(got) != 1 || got[0] != "createUser" {
		t.Errorf("steps = %v, want [createUser]", got)
	}
}

func TestTransformStepOrderDeduplicated(t *testing.T) {
	m := module(
		workflowFn("wf", nil,
			awaitCall("second"),
			awaitCall("first"),
			awaitCall("second"),
		),
		stepFn("first", nil, ret(nil)),
		stepFn("second", nil, ret(nil)),
	)
	result := transform(t, m)
	got := result.Workflows[0].Steps
	if len(got) != 2 || got[0] != "second" || got[1] != "first" {
		t.Errorf("steps = %v, want [second first]", got)
	}
	if calls := findCalls(result.Module, "step"); len(calls) != 3 {
		t.Errorf("got %d checkpoint closures, want 3", len(calls))
	}
}

func TestTransformMissingArgBindsUndefined(t *testing.T) {
	m := module(
		workflowFn("wf", nil, awaitCall("save", str("only"))),
		stepFn("save", []string{"a", "b"}, ret(ident("b"))),
	)
	result := transform(t, m)
	if countIdents(result.Module, codegen.UndefinedName) != 1 {
		t.Error("unmatched parameter must bind to undefined")
	}
}

func TestTransformCallSitesInlineIndependently(t *testing.T) {
	m := module(
		workflowFn("wf", nil,
			awaitCall("echo", ident("one")),
			awaitCall("echo", ident("two")),
		),
		stepFn("echo", []string{"x"}, ret(ident("x"))),
	)
	result := transform(t, m)
	steps := findCalls(result.Module, "step")
	if len(steps) != 2 {
		t.Fatalf("got %d checkpoint closures, want 2", len(steps))
	}
	if countIdents(steps[0], "one") != 1 || countIdents(steps[1], "two") != 1 {
		t.Error("each call site must receive its own argument substitution")
	}
	if steps[0].Args[1] == steps[1].Args[1] {
		t.Error("closures must not share nodes")
	}
}

func TestTransformStepCallInArgumentInlines(t *testing.T) {
	m := module(
		workflowFn("wf", nil,
			awaitCall("outer", call(ident("inner"))),
		),
		stepFn("outer", []string{"v"}, ret(ident("v"))),
		stepFn("inner", nil, ret(str("x"))),
	)
	result := transform(t, m)
	got := result.Workflows[0].Steps
	if len(got) != 2 || got[0] != "outer" || got[1] != "inner" {
		t.Errorf("steps = %v, want [outer inner]", got)
	}
	if calls := findCalls(result.Module, "step"); len(calls) != 2 {
		t.Errorf("got %d checkpoint closures, want 2", len(calls))
	}
}

func TestTransformUncalledStepDropped(t *testing.T) {
	m := module(
		workflowFn("wf", nil, ret(nil)),
		stepFn("orphan", nil, ret(nil)),
	)
	result := transform(t, m)

	js.Walk(result.Module, func(n js.Node) bool {
		if fd, ok := n.(*js.FuncDecl); ok && fd.Name == "orphan" {
			t.Error("uncalled step declaration survived erasure")
		}
		return true
	})
	if calls := findCalls(result.Module, "step"); len(calls) != 0 {
		t.Errorf("got %d checkpoint closures, want 0", len(calls))
	}
	if got := result.Workflows[0].Steps; len(got) != 0 {
		t.Errorf("steps = %v, want none", got)
	}
}

func TestTransformInvokeAddsLambdaImport(t *testing.T) {
	m := module(workflowFn("wf", nil,
		ret(&js.Await{Arg: call(ident("invoke"), str("other-fn"), ident("event"))}),
	))
	result := transform(t, m)

	imp, ok := result.Module.Body[1].(*js.ImportDecl)
	if !ok || imp.Source != codegen.LambdaPackage {
		t.Fatalf("Body[1] = %#v, want lambda SDK import", result.Module.Body[1])
	}

	steps := findCalls(result.Module, "step")
	if len(steps) != 1 {
		t.Fatalf("got %d checkpoint closures, want 1", len(steps))
	}
	if name := steps[0].Args[0].(*js.StringLit); name.Value != codegen.InvokeStepName {
		t.Errorf("checkpoint name = %q, want %s", name.Value, codegen.InvokeStepName)
	}
	if countIdents(result.Module, "LambdaClient") == 0 || countIdents(result.Module, "InvokeCommand") == 0 {
		t.Error("invoke expansion must reference the Lambda SDK client")
	}
}

func TestTransformNoInvokeNoLambdaImport(t *testing.T) {
	m := module(workflowFn("wf", nil, awaitCall("sleep", str("5m"))))
	result := transform(t, m)
	for _, item := range result.Module.Body {
		if imp, ok := item.(*js.ImportDecl); ok && imp.Source == codegen.LambdaPackage {
			t.Fatal("lambda import emitted without invoke")
		}
	}
}

func TestTransformWaitForCallbackKeepsArgs(t *testing.T) {
	m := module(workflowFn("wf", nil,
		awaitCall("waitForCallback", str("approval"), ident("setup")),
	))
	result := transform(t, m)
	calls := findCalls(result.Module, codegen.CallbackMethod)
	if len(calls) != 1 {
		t.Fatalf("got %d waitForCallback rewrites, want 1", len(calls))
	}
	if len(calls[0].Args) != 2 {
		t.Errorf("args = %d, want 2 passed through", len(calls[0].Args))
	}
}

func TestTransformDanglingStepRef(t *testing.T) {
	m := module(
		workflowFn("wf", nil,
			constDecl("handle", ident("save")),
		),
		stepFn("save", nil, ret(nil)),
	)
	_, err := mustEngine(Config{}).Transform(m, "app.mjs")
	var terr *errors.Error
	if !gerrors.As(err, &terr) || terr.Kind != errors.KindDanglingStepRef {
		t.Fatalf("err = %v, want kind %s", err, errors.KindDanglingStepRef)
	}
}

func TestTransformUnreachableStepRef(t *testing.T) {
	m := module(
		workflowFn("wf", nil, awaitCall("save")),
		stepFn("save", nil, ret(nil)),
		fn("plain", nil, awaitCall("save")),
	)
	_, err := mustEngine(Config{}).Transform(m, "app.mjs")
	var terr *errors.Error
	if !gerrors.As(err, &terr) || terr.Kind != errors.KindUnreachableStepRef {
		t.Fatalf("err = %v, want kind %s", err, errors.KindUnreachableStepRef)
	}
}

func TestTransformIdempotent(t *testing.T) {
	m := module(
		workflowFn("wf", []string{"input"}, awaitCall("save", ident("input"))),
		stepFn("save", []string{"v"}, ret(ident("v"))),
	)
	first := transform(t, m)
	if !first.Changed {
		t.Fatal("first run must transform")
	}
	second := transform(t, first.Module)
	if second.Changed {
		t.Error("second run must be a no-op")
	}
}

func TestTransformModuleDirectiveConsumed(t *testing.T) {
	m := module(directive(useWorkflow), fn("plain", nil))
	result := transform(t, m)
	if !result.Changed {
		t.Fatal("module directive must force a transform")
	}
	for _, item := range result.Module.Body {
		if s, ok := item.(*js.ExprStmt); ok {
			if lit, ok := s.X.(*js.StringLit); ok && lit.Value == useWorkflow {
				t.Fatal("module directive survived")
			}
		}
	}
	again := transform(t, result.Module)
	if again.Changed {
		t.Error("output must be stable under a second run")
	}
}

func TestTransformExtraWorkflowParamsWarn(t *testing.T) {
	m := module(workflowFn("wf", []string{"input", "extra"},
		ret(member(ident("input"), "id")),
	))
	result := transform(t, m)
	found := false
	for _, w := range result.Warnings {
		if w.Kind == WarnExtraParams {
			found = true
		}
	}
	if !found {
		t.Errorf("warnings = %+v, want %s", result.Warnings, WarnExtraParams)
	}
	if countIdents(result.Module, "input") != 0 {
		t.Error("first parameter must rename to event")
	}
}

func TestTransformDefaultExportWorkflow(t *testing.T) {
	m := module(&js.ExportDecl{
		Decl:    workflowFn("main", []string{"input"}),
		Default: true,
	})
	result := transform(t, m)
	var exported *js.ExportDecl
	for _, item := range result.Module.Body {
		if exp, ok := item.(*js.ExportDecl); ok && exp.Default {
			exported = exp
		}
	}
	if exported == nil {
		t.Fatal("default export lost")
	}
}

func TestTransformCustomPackageName(t *testing.T) {
	eng := mustEngine(Config{PackageName: "@acme/durable"})
	m := module(workflowFn("wf", nil))
	result, err := eng.Transform(m, "app.mjs")
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	imp := result.Module.Body[0].(*js.ImportDecl)
	if imp.Source != "@acme/durable" {
		t.Errorf("import source = %q", imp.Source)
	}
}

func TestParseMode(t *testing.T) {
	cases := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", ModeWorkflow, false},
		{"workflow", ModeWorkflow, false},
		{"client", ModeClient, false},
		{"server", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseMode(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseMode(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("ParseMode(%q) = %v, %v", tc.in, got, err)
		}
	}
}
