package codegen

import (
	"github.com/wippyai/durable-transform/js"
)

// Names of the runtime surface referenced by emitted code. The runtime
// library itself lives outside this module; these are opaque call targets.
const (
	AdapterName     = "withDurableExecution"
	ContextName     = "ctx"
	EventName       = "event"
	StepMethod      = "step"
	WaitMethod      = "wait"
	CallbackMethod  = "waitForCallback"
	MetaName        = "__workflowMeta"
	InvokeStepName  = "invoke"
	LambdaPackage   = "@aws-sdk/client-lambda"
	UndefinedName   = "undefined"
	ProcessName     = "process"
	EnvProp         = "env"
	DescriptorFlag  = "__workflow"
	DescriptorName  = "name"
	DescriptorField = "functionName"
)

func ident(name string) *js.Ident {
	return &js.Ident{Name: name}
}

func str(value string) *js.StringLit {
	return &js.StringLit{Value: value}
}

func ctxMethod(method string) *js.Member {
	return &js.Member{Obj: ident(ContextName), Prop: method}
}

// Undefined is the placeholder bound to formal parameters left unmatched by
// a call's argument list.
func Undefined() js.Expr {
	return ident(UndefinedName)
}

// SDKImport builds `import { withDurableExecution } from "<pkg>"`.
func SDKImport(packageName string) *js.ImportDecl {
	return &js.ImportDecl{
		Specs:  []js.ImportSpec{{Local: AdapterName, Kind: js.ImportNamed}},
		Source: packageName,
	}
}

// LambdaSDKImport builds
// `import { LambdaClient, InvokeCommand } from "@aws-sdk/client-lambda"`.
func LambdaSDKImport() *js.ImportDecl {
	return &js.ImportDecl{
		Specs: []js.ImportSpec{
			{Local: "LambdaClient", Kind: js.ImportNamed},
			{Local: "InvokeCommand", Kind: js.ImportNamed},
		},
		Source: LambdaPackage,
	}
}

// StepCall wraps body statements into `ctx.step("name", async () => { ... })`.
func StepCall(stepName string, body []js.Stmt) *js.Call {
	closure := &js.Arrow{
		Body:  &js.Block{Stmts: body},
		Async: true,
	}
	return &js.Call{
		Callee: ctxMethod(StepMethod),
		Args:   []js.Expr{str(stepName), closure},
	}
}

// WaitCall builds `ctx.wait(duration)` with the duration expression passed
// through unchanged.
func WaitCall(duration js.Expr) *js.Call {
	return &js.Call{
		Callee: ctxMethod(WaitMethod),
		Args:   []js.Expr{duration},
	}
}

// WaitForCallbackCall builds `ctx.waitForCallback(args...)` with all
// arguments passed through unchanged.
func WaitForCallbackCall(args []js.Expr) *js.Call {
	return &js.Call{
		Callee: ctxMethod(CallbackMethod),
		Args:   args,
	}
}

// InvokeStep expands `invoke(fnName, payload)` into a checkpointed closure:
//
//	ctx.step("invoke", async () => {
//	  const client = new LambdaClient({});
//	  const response = await client.send(new InvokeCommand({
//	    FunctionName: fnName,
//	    Payload: JSON.stringify(payload),
//	  }));
//	  return JSON.parse(new TextDecoder().decode(response.Payload));
//	})
//
// fnName and payload are substituted verbatim, never evaluated here.
func InvokeStep(fnName, payload js.Expr) *js.Call {
	clientDecl := &js.VarDecl{
		Kind: "const",
		Decls: []*js.Declarator{{
			Name: ident("client"),
			Init: &js.New{Callee: ident("LambdaClient"), Args: []js.Expr{&js.ObjectLit{}}},
		}},
	}

	command := &js.New{
		Callee: ident("InvokeCommand"),
		Args: []js.Expr{&js.ObjectLit{Props: []*js.Property{
			{Key: ident("FunctionName"), Value: fnName},
			{Key: ident("Payload"), Value: &js.Call{
				Callee: &js.Member{Obj: ident("JSON"), Prop: "stringify"},
				Args:   []js.Expr{payload},
			}},
		}}},
	}

	responseDecl := &js.VarDecl{
		Kind: "const",
		Decls: []*js.Declarator{{
			Name: ident("response"),
			Init: &js.Await{Arg: &js.Call{
				Callee: &js.Member{Obj: ident("client"), Prop: "send"},
				Args:   []js.Expr{command},
			}},
		}},
	}

	returnStmt := &js.Return{
		Arg: &js.Call{
			Callee: &js.Member{Obj: ident("JSON"), Prop: "parse"},
			Args: []js.Expr{&js.Call{
				Callee: &js.Member{
					Obj:  &js.New{Callee: ident("TextDecoder")},
					Prop: "decode",
				},
				Args: []js.Expr{&js.Member{Obj: ident("response"), Prop: "Payload"}},
			}},
		},
	}

	return StepCall(InvokeStepName, []js.Stmt{clientDecl, responseDecl, returnStmt})
}

// DurableWrapper binds the rewritten workflow body to its original name:
//
//	[export] const <name> = withDurableExecution(async (event, ctx) => { ... });
//
// A default export cannot carry a const binding, so it becomes the binding
// followed by `export default <name>;`.
func DurableWrapper(name string, body []js.Stmt, exported, isDefault bool) []js.Stmt {
	closure := &js.Arrow{
		Params: []*js.Param{{Name: EventName}, {Name: ContextName}},
		Body:   &js.Block{Stmts: body},
		Async:  true,
	}
	decl := &js.VarDecl{
		Kind: "const",
		Decls: []*js.Declarator{{
			Name: ident(name),
			Init: &js.Call{Callee: ident(AdapterName), Args: []js.Expr{closure}},
		}},
	}
	if isDefault {
		return []js.Stmt{decl, &js.ExportDecl{
			Decl:    &js.ExprStmt{X: ident(name)},
			Default: true,
		}}
	}
	if exported {
		return []js.Stmt{&js.ExportDecl{Decl: decl}}
	}
	return []js.Stmt{decl}
}

// WorkflowMeta builds the stable descriptor export:
//
//	export const __workflowMeta = { name: "<wf>", steps: ["s1", ...] };
//
// The shape is a bit-exact contract with external deployment tooling.
func WorkflowMeta(workflowName string, stepNames []string) js.Stmt {
	elems := make([]js.Expr, len(stepNames))
	for i, name := range stepNames {
		elems[i] = str(name)
	}
	decl := &js.VarDecl{
		Kind: "const",
		Decls: []*js.Declarator{{
			Name: ident(MetaName),
			Init: &js.ObjectLit{Props: []*js.Property{
				{Key: ident(DescriptorName), Value: str(workflowName)},
				{Key: ident("steps"), Value: &js.ArrayLit{Elems: elems}},
			}},
		}},
	}
	return &js.ExportDecl{Decl: decl}
}

// Descriptor builds the client-mode stand-in for a workflow import:
//
//	const <local> = { __workflow: true, name: "<imported>",
//	                  functionName: process.env.<envName> };
func Descriptor(localName, importedName, envName string) js.Stmt {
	envLookup := &js.Member{
		Obj:  &js.Member{Obj: ident(ProcessName), Prop: EnvProp},
		Prop: envName,
	}
	return &js.VarDecl{
		Kind: "const",
		Decls: []*js.Declarator{{
			Name: ident(localName),
			Init: &js.ObjectLit{Props: []*js.Property{
				{Key: ident(DescriptorFlag), Value: &js.BoolLit{Value: true}},
				{Key: ident(DescriptorName), Value: str(importedName)},
				{Key: ident(DescriptorField), Value: envLookup},
			}},
		}},
	}
}
