// Package engine orchestrates the directive-driven transform.
//
// Workflow-mode pipeline:
//  1. Collect: classify top-level functions by directive, build the step
//     table and workflow records, scan for special built-in calls
//  2. Inline: expand cataloged step calls at each call site
//     (clone-and-substitute), erase step declarations, verify no live
//     references remain
//  3. Rewrite: replace built-in special calls with runtime-API calls over
//     the fully assembled bodies
//  4. Wrap: canonicalize the event parameter, strip the directive prologue,
//     bind the body to the durable-execution adapter
//  5. Emit: append the __workflowMeta descriptor after each workflow
//
// Client mode runs the descriptor rewriter alone.
//
// The engine is stateless between Transform calls; each call owns its input
// tree and produces a new item sequence. The only process-wide state is the
// immutable special-call rule table.
package engine
