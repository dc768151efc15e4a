package estree

import (
	gerrors "errors"
	"strings"
	"testing"

	"github.com/wippyai/durable-transform/errors"
	"github.com/wippyai/durable-transform/js"
)

const workflowProgram = `{
  "type": "Program",
  "sourceType": "module",
  "body": [
    {
      "type": "ImportDeclaration",
      "specifiers": [
        {"type": "ImportSpecifier",
         "local": {"type": "Identifier", "name": "helper"},
         "imported": {"type": "Identifier", "name": "helper"}}
      ],
      "source": {"type": "Literal", "value": "./lib", "raw": "\"./lib\""}
    },
    {
      "type": "FunctionDeclaration",
      "id": {"type": "Identifier", "name": "signup"},
      "params": [{"type": "Identifier", "name": "input", "loc": {"start": {"line": 3, "column": 23}}}],
      "async": true,
      "loc": {"start": {"line": 3, "column": 0}},
      "body": {
        "type": "BlockStatement",
        "body": [
          {"type": "ExpressionStatement",
           "expression": {"type": "Literal", "value": "use workflow", "raw": "\"use workflow\""}},
          {"type": "ReturnStatement",
           "argument": {
             "type": "AwaitExpression",
             "argument": {
               "type": "CallExpression",
               "callee": {"type": "Identifier", "name": "helper"},
               "arguments": [
                 {"type": "MemberExpression", "computed": false,
                  "object": {"type": "Identifier", "name": "input"},
                  "property": {"type": "Identifier", "name": "email"}}
               ]
             }
           }}
        ]
      }
    }
  ]
}`

func TestDecodeModule(t *testing.T) {
	m, err := DecodeModule([]byte(workflowProgram))
	if err != nil {
		t.Fatalf("DecodeModule: %v", err)
	}
	if len(m.Body) != 2 {
		t.Fatalf("got %d items, want 2", len(m.Body))
	}

	imp, ok := m.Body[0].(*js.ImportDecl)
	if !ok || imp.Source != "./lib" {
		t.Fatalf("Body[0] = %#v", m.Body[0])
	}
	if len(imp.Specs) != 1 || imp.Specs[0].Local != "helper" || imp.Specs[0].Kind != js.ImportNamed {
		t.Errorf("specs = %+v", imp.Specs)
	}

	fn, ok := m.Body[1].(*js.FuncDecl)
	if !ok || fn.Name != "signup" || !fn.Async {
		t.Fatalf("Body[1] = %#v", m.Body[1])
	}
	if fn.Loc.Line != 3 || fn.Loc.Col != 1 {
		t.Errorf("loc = %+v, want line 3 col 1", fn.Loc)
	}
	if len(fn.Params) != 1 || fn.Params[0].Name != "input" {
		t.Errorf("params = %+v", fn.Params)
	}

	dir, ok := fn.Body.Stmts[0].(*js.ExprStmt)
	if !ok {
		t.Fatal("directive statement missing")
	}
	if lit, ok := dir.X.(*js.StringLit); !ok || lit.Value != "use workflow" {
		t.Errorf("directive = %#v", dir.X)
	}

	ret, ok := fn.Body.Stmts[1].(*js.Return)
	if !ok {
		t.Fatal("return missing")
	}
	aw, ok := ret.Arg.(*js.Await)
	if !ok {
		t.Fatalf("return arg = %#v", ret.Arg)
	}
	call := aw.Arg.(*js.Call)
	mem := call.Args[0].(*js.Member)
	if mem.Prop != "email" || mem.Obj.(*js.Ident).Name != "input" {
		t.Errorf("member = %#v", mem)
	}
}

func TestDecodeRejectsNonProgram(t *testing.T) {
	_, err := DecodeModule([]byte(`{"type": "File"}`))
	if err == nil {
		t.Fatal("expected error")
	}
	var terr *errors.Error
	if !gerrors.As(err, &terr) || terr.Phase != errors.PhaseParse {
		t.Errorf("err = %v, want parse phase", err)
	}
}

func TestDecodeRejectsInvalidJSON(t *testing.T) {
	if _, err := DecodeModule([]byte(`{nope`)); err == nil {
		t.Fatal("expected error")
	}
}

func TestDecodeUnsupportedNode(t *testing.T) {
	doc := `{"type": "Program", "body": [
	  {"type": "ClassDeclaration", "loc": {"start": {"line": 7, "column": 0}}}
	]}`
	_, err := DecodeModule([]byte(doc))
	var terr *errors.Error
	if !gerrors.As(err, &terr) || terr.Kind != errors.KindUnsupported {
		t.Fatalf("err = %v, want kind %s", err, errors.KindUnsupported)
	}
	if terr.Line != 7 {
		t.Errorf("line = %d, want 7", terr.Line)
	}
}

func TestDecodeEncodeRoundTrip(t *testing.T) {
	m, err := DecodeModule([]byte(workflowProgram))
	if err != nil {
		t.Fatalf("DecodeModule: %v", err)
	}
	data, err := EncodeModule(m)
	if err != nil {
		t.Fatalf("EncodeModule: %v", err)
	}
	back, err := DecodeModule(data)
	if err != nil {
		t.Fatalf("decode of encoded output: %v", err)
	}
	if js.PrintModule(back) != js.PrintModule(m) {
		t.Errorf("round trip drifted:\n%s\nvs\n%s", js.PrintModule(back), js.PrintModule(m))
	}
}

func TestDecodeDropsTypeWrappers(t *testing.T) {
	doc := `{"type": "Program", "body": [
	  {"type": "ExpressionStatement", "expression": {
	    "type": "TSAsExpression",
	    "expression": {"type": "Identifier", "name": "x"}
	  }}
	]}`
	m, err := DecodeModule([]byte(doc))
	if err != nil {
		t.Fatalf("DecodeModule: %v", err)
	}
	src := js.PrintModule(m)
	if !strings.Contains(src, "x;") {
		t.Errorf("wrapper not unwrapped: %s", src)
	}
}
