package engine

import (
	"testing"

	"github.com/wippyai/durable-transform/internal/codegen"
	"github.com/wippyai/durable-transform/js"
)

func TestRewriteSpecialsSleep(t *testing.T) {
	body := block(awaitCall("sleep", str("1d")))
	out, invokeUsed := rewriteSpecials(body)
	if invokeUsed {
		t.Error("sleep must not request the lambda import")
	}
	waits := findCalls(out, codegen.WaitMethod)
	if len(waits) != 1 {
		t.Fatalf("got %d ctx.wait calls, want 1", len(waits))
	}
	if d := waits[0].Args[0].(*js.StringLit); d.Value != "1d" {
		t.Errorf("duration = %q, want 1d", d.Value)
	}
}

func TestRewriteSpecialsInvokeFillsMissingArgs(t *testing.T) {
	body := block(awaitCall("invoke", str("other-fn")))
	out, invokeUsed := rewriteSpecials(body)
	if !invokeUsed {
		t.Error("invoke must request the lambda import")
	}
	if countIdents(out, codegen.UndefinedName) != 1 {
		t.Error("missing payload must fill with undefined")
	}
}

func TestRewriteSpecialsInsideClosure(t *testing.T) {
	closure := &js.Arrow{
		Body:  block(awaitCall("sleep", str("5m"))),
		Async: true,
	}
	body := block(&js.ExprStmt{X: call(member(ident("ctx"), "step"), str("s"), closure)})
	out, _ := rewriteSpecials(body)
	if len(findCalls(out, codegen.WaitMethod)) != 1 {
		t.Error("special calls inside inlined closures must rewrite")
	}
}

func TestRewriteSpecialsLeavesOrdinaryCalls(t *testing.T) {
	body := block(awaitCall("fetch", str("/api")))
	out, invokeUsed := rewriteSpecials(body)
	if invokeUsed {
		t.Error("no invoke present")
	}
	if len(findCalls(out, "fetch")) != 1 {
		t.Error("ordinary call must pass through")
	}
}

func TestRewriteSpecialsInputUntouched(t *testing.T) {
	orig := awaitCall("sleep", str("1d"))
	body := block(orig)
	rewriteSpecials(body)
	if len(findCalls(body, "sleep")) != 1 {
		t.Error("rewrite must not mutate its input")
	}
}
