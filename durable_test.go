package durable

import (
	"strings"
	"testing"

	"github.com/wippyai/durable-transform/js"
)

func dir(value string) js.Stmt {
	return &js.ExprStmt{X: &js.StringLit{Value: value}}
}

func id(name string) *js.Ident { return &js.Ident{Name: name} }

func lit(value string) *js.StringLit { return &js.StringLit{Value: value} }

func await(e js.Expr) js.Expr { return &js.Await{Arg: e} }

func callOf(name string, args ...js.Expr) *js.Call {
	return &js.Call{Callee: id(name), Args: args}
}

// signupModule mirrors the worked example: a signup workflow calling two
// step functions with a sleep in between.
func signupModule() *js.Module {
	return &js.Module{Body: []js.Stmt{
		&js.ExportDecl{Decl: &js.FuncDecl{
			Name:   "signup",
			Params: []*js.Param{{Name: "input"}},
			Async:  true,
			Body: &js.Block{Stmts: []js.Stmt{
				dir("use workflow"),
				&js.VarDecl{Kind: "const", Decls: []*js.Declarator{{
					Name: id("user"),
					Init: await(callOf("createUser", &js.Member{Obj: id("input"), Prop: "email"})),
				}}},
				&js.ExprStmt{X: await(callOf("sleep", lit("1d")))},
				&js.ExprStmt{X: await(callOf("sendReminder", id("user")))},
				&js.Return{Arg: id("user")},
			}},
		}},
		&js.FuncDecl{
			Name:   "createUser",
			Params: []*js.Param{{Name: "email"}},
			Async:  true,
			Body: &js.Block{Stmts: []js.Stmt{
				dir("use step"),
				&js.Return{Arg: await(&js.Call{
					Callee: &js.Member{Obj: id("db"), Prop: "insert"},
					Args: []js.Expr{&js.ObjectLit{Props: []*js.Property{
						{Key: id("email"), Value: id("email"), Shorthand: true},
					}}},
				})},
			}},
		},
		&js.FuncDecl{
			Name:   "sendReminder",
			Params: []*js.Param{{Name: "user"}},
			Async:  true,
			Body: &js.Block{Stmts: []js.Stmt{
				dir("use step"),
				&js.ExprStmt{X: await(callOf("notify", &js.Member{Obj: id("user"), Prop: "id"}))},
			}},
		},
	}}
}

func TestTransformWorkedExample(t *testing.T) {
	result, err := Transform(signupModule(), "signup.mjs", Config{})
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if !result.Changed {
		t.Fatal("expected a transformed unit")
	}

	src := js.PrintModule(result.Module)

	for _, want := range []string{
		`import { withDurableExecution } from "@cgalceran/aws-durable";`,
		`export const signup = withDurableExecution(async (event, ctx) => {`,
		`ctx.step("createUser", async () => {`,
		`return await db.insert({ email: event.email });`,
		`await ctx.wait("1d");`,
		`ctx.step("sendReminder", async () => {`,
		`export const __workflowMeta = { name: "signup", steps: ["createUser", "sendReminder"] };`,
	} {
		if !strings.Contains(src, want) {
			t.Errorf("output missing %q\n\n%s", want, src)
		}
	}

	for _, gone := range []string{"use workflow", "use step", "function createUser", "function sendReminder", "sleep("} {
		if strings.Contains(src, gone) {
			t.Errorf("output still contains %q\n\n%s", gone, src)
		}
	}

	if len(result.Workflows) != 1 {
		t.Fatalf("summaries = %+v", result.Workflows)
	}
	steps := result.Workflows[0].Steps
	if len(steps) != 2 || steps[0] != "createUser" || steps[1] != "sendReminder" {
		t.Errorf("steps = %v, want [createUser sendReminder]", steps)
	}
}

func TestTransformClientExample(t *testing.T) {
	m := &js.Module{Body: []js.Stmt{
		&js.ImportDecl{
			Specs:  []js.ImportSpec{{Local: "signupWorkflow", Imported: "signupWorkflow", Kind: js.ImportNamed}},
			Source: "./workflows",
		},
		&js.ExprStmt{X: await(callOf("start", id("signupWorkflow")))},
	}}

	result, err := Transform(m, "client.mjs", Config{Mode: ModeClient})
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	src := js.PrintModule(result.Module)

	want := `const signupWorkflow = { __workflow: true, name: "signupWorkflow", functionName: process.env.WORKFLOW_SIGNUP_WORKFLOW };`
	if !strings.Contains(src, want) {
		t.Errorf("output missing descriptor:\n%s", src)
	}
	if strings.Contains(src, "import") {
		t.Errorf("workflow import survived:\n%s", src)
	}
	if !strings.Contains(src, "await start(signupWorkflow);") {
		t.Errorf("usage site altered:\n%s", src)
	}
}

func TestTransformPassthroughUnit(t *testing.T) {
	m := &js.Module{Body: []js.Stmt{
		&js.FuncDecl{Name: "plain", Body: &js.Block{Stmts: []js.Stmt{&js.Return{}}}},
	}}
	result, err := Transform(m, "lib.mjs", Config{})
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if result.Changed {
		t.Error("directive-free unit must pass through")
	}
}

func TestConfigFromJSON(t *testing.T) {
	cfg, err := ConfigFromJSON([]byte(`{
		"mode": "client",
		"packageName": "@acme/durable",
		"envPrefix": "WF_",
		"workflowModules": ["./workflows", "@app/flows/*"]
	}`))
	if err != nil {
		t.Fatalf("ConfigFromJSON: %v", err)
	}
	if cfg.Mode != ModeClient || cfg.PackageName != "@acme/durable" || cfg.EnvPrefix != "WF_" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.WorkflowModules == nil {
		t.Fatal("workflowModules not parsed")
	}
	if !cfg.WorkflowModules.MatchModule("./workflows") {
		t.Error("exact pattern must match")
	}
	if !cfg.WorkflowModules.MatchModule("@app/flows/signup") {
		t.Error("prefix pattern must match")
	}
	if cfg.WorkflowModules.MatchModule("lodash") {
		t.Error("unrelated source must not match")
	}
}

func TestConfigFromJSONDefaults(t *testing.T) {
	cfg, err := ConfigFromJSON(nil)
	if err != nil {
		t.Fatalf("ConfigFromJSON: %v", err)
	}
	if cfg.Mode != ModeWorkflow || cfg.PackageName != "" || cfg.WorkflowModules != nil {
		t.Errorf("cfg = %+v, want zero value", cfg)
	}
}

func TestConfigFromJSONErrors(t *testing.T) {
	if _, err := ConfigFromJSON([]byte(`{bad`)); err == nil {
		t.Error("invalid JSON must fail")
	}
	if _, err := ConfigFromJSON([]byte(`{"mode":"server"}`)); err == nil {
		t.Error("unknown mode must fail")
	}
	if _, err := ConfigFromJSON([]byte(`{"workflowModules":"./x"}`)); err == nil {
		t.Error("non-array workflowModules must fail")
	}
}
