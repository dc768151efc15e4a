// Package durable provides a source-to-source transformation that rewrites
// directive-annotated async ECMAScript functions into durable-execution
// code targeting AWS Lambda.
//
// # Overview
//
// Application authors write workflows as plain async functions and mark
// them with string directives:
//
//	async function signup(input) {
//	  "use workflow";
//	  const user = await createUser(input.email);
//	  await sleep("1d");
//	  await sendReminder(user);
//	}
//
//	async function createUser(email) {
//	  "use step";
//	  return db.insert({ email });
//	}
//
// The transform rewrites each workflow so that every step runs inside a
// named checkpoint closure, letting the runtime persist results and resume
// a partially executed workflow without repeating completed work:
//
//	const signup = withDurableExecution(async (event, ctx) => {
//	  const user = await ctx.step("createUser", async () => {
//	    return db.insert({ email: event.email });
//	  });
//	  await ctx.wait("1d");
//	  await ctx.step("sendReminder", async () => { ... });
//	});
//	export const __workflowMeta = { name: "signup", steps: [...] };
//
// Step functions are inlined at their call sites with arguments substituted
// for parameters, then erased from the module. The built-ins invoke, sleep
// and waitForCallback become runtime-API calls. Everything else in the unit
// is left untouched, and a unit with no directives passes through unchanged.
//
// # Pipeline
//
// Workflow mode runs five passes per unit: directive collection, step
// inlining, special-call rewriting, workflow wrapping and metadata
// emission. A fatal error in any pass aborts the whole unit; no partial
// output is ever produced.
//
// # Client Mode
//
// Client bundles must not link workflow code. In client mode, imports from
// workflow modules are replaced with invocation descriptors that resolve
// the deployed function name from the environment:
//
//	import { signupWorkflow } from "./workflows";
//
// becomes
//
//	const signupWorkflow = {
//	  __workflow: true,
//	  name: "signupWorkflow",
//	  functionName: process.env.WORKFLOW_SIGNUP_WORKFLOW,
//	};
//
// # Usage
//
//	result, err := durable.Transform(module, "app.mjs", durable.Config{})
//
// Client mode with explicit module classification:
//
//	result, err := durable.Transform(module, "client.mjs", durable.Config{
//	    Mode:            durable.ModeClient,
//	    WorkflowModules: durable.NewPatternMatcher([]string{"./workflows/*"}),
//	})
//
// Input trees come from the js package, typically decoded from ESTree JSON
// via the estree package, and the transformed tree prints back to source
// with js.PrintModule.
package durable
