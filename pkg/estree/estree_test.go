package estree

import (
	"strings"
	"testing"

	"jspress/pkg/ast"
	"jspress/pkg/errors"
)

const esprimaTree = `{
  "type": "Program",
  "body": [
    {
      "type": "VariableDeclaration",
      "kind": "var",
      "declarations": [
        {
          "type": "VariableDeclarator",
          "id": {"type": "Identifier", "name": "x"},
          "init": {
            "type": "BinaryExpression",
            "operator": "+",
            "left": {"type": "Literal", "value": 1, "raw": "1"},
            "right": {"type": "Identifier", "name": "y"}
          }
        }
      ]
    },
    {
      "type": "FunctionDeclaration",
      "id": {"type": "Identifier", "name": "f"},
      "params": [{"type": "Identifier", "name": "a"}],
      "defaults": [],
      "body": {
        "type": "BlockStatement",
        "body": [
          {"type": "ReturnStatement", "argument": {"type": "Identifier", "name": "a"}}
        ]
      },
      "generator": false,
      "expression": false
    }
  ]
}`

func TestDecode(t *testing.T) {
	prog, err := Decode(strings.NewReader(esprimaTree))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "(Program (VariableDeclaration var (VariableDeclarator x (BinaryExpression + 1 y))) " +
		"(FunctionDeclaration f [a] (BlockStatement (ReturnStatement a))))"
	if got := prog.String(); got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
	fn := prog.Body[1].(*ast.FunctionDeclaration)
	if fn.Defaults == nil || len(fn.Defaults) != 0 {
		t.Errorf("Defaults = %#v, want an empty list", fn.Defaults)
	}
}

func TestLiteralsWithoutRaw(t *testing.T) {
	tests := []struct {
		name  string
		input string
		raw   string
		typ   ast.LiteralType
	}{
		{"string", `{"type":"Literal","value":"a\"b"}`, `"a\"b"`, ast.StringLiteral},
		{"number", `{"type":"Literal","value":1.5}`, "1.5", ast.NumberLiteral},
		{"boolean", `{"type":"Literal","value":true}`, "true", ast.BooleanLiteral},
		{"null", `{"type":"Literal","value":null}`, "null", ast.NullLiteral},
		{"regexp", `{"type":"Literal","value":{},"regex":{"pattern":"a+","flags":"g"}}`, "/a+/g", ast.RegExpLiteral},
		{"raw wins", `{"type":"Literal","value":255,"raw":"0xff"}`, "0xff", ast.NumberLiteral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := `{"type":"Program","body":[{"type":"ExpressionStatement","expression":` + tt.input + `}]}`
			prog, err := Decode(strings.NewReader(doc))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			lit, ok := prog.Body[0].(*ast.ExpressionStatement).Expression.(*ast.Literal)
			if !ok {
				t.Fatalf("expression is %T", prog.Body[0].(*ast.ExpressionStatement).Expression)
			}
			if lit.Raw != tt.raw || lit.Type != tt.typ {
				t.Errorf("got %q (%d), want %q (%d)", lit.Raw, lit.Type, tt.raw, tt.typ)
			}
		})
	}
}

func TestDirectiveField(t *testing.T) {
	doc := `{"type":"Program","body":[{"type":"ExpressionStatement",
		"expression":{"type":"Literal","value":"use strict","raw":"\"use strict\""},
		"directive":"use strict"}]}`
	prog, err := Decode(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	if d := prog.Body[0].(*ast.ExpressionStatement).Directive; d != "use strict" {
		t.Errorf("Directive = %q", d)
	}
}

func TestUnknownKeepsChildren(t *testing.T) {
	doc := `{"type":"Program","body":[{"type":"WithStatement",
		"object":{"type":"Identifier","name":"o"},
		"body":{"type":"BlockStatement","body":[]}}]}`
	prog, err := Decode(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	u, ok := prog.Body[0].(*ast.Unknown)
	if !ok {
		t.Fatalf("statement is %T, want *ast.Unknown", prog.Body[0])
	}
	if u.Type != "WithStatement" || len(u.Children) != 2 {
		t.Fatalf("got %s", u)
	}
	// children come in field name order: body, object
	if _, ok := u.Children[0].(*ast.BlockStatement); !ok {
		t.Errorf("first child is %T", u.Children[0])
	}
	if id, ok := u.Children[1].(*ast.Identifier); !ok || id.Name != "o" {
		t.Errorf("second child is %v", u.Children[1])
	}
}

func TestLegacyHandlers(t *testing.T) {
	doc := `{"type":"Program","body":[{"type":"TryStatement",
		"block":{"type":"BlockStatement","body":[]},
		"handlers":[{"type":"CatchClause","param":{"type":"Identifier","name":"e"},
			"body":{"type":"BlockStatement","body":[]}}],
		"finalizer":null}]}`
	prog, err := Decode(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	try := prog.Body[0].(*ast.TryStatement)
	if try.Handler == nil || try.Handler.Param.Name != "e" {
		t.Errorf("handler = %v", try.Handler)
	}
	if try.Finalizer != nil {
		t.Errorf("finalizer = %v, want nil", try.Finalizer)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", `{"type":`},
		{"wrong root", `{"type":"ExpressionStatement"}`},
		{"bad field", `{"type":"Program","body":[{"type":"Identifier","name":5}]}`},
		{"declarator without id", `{"type":"Program","body":[{"type":"VariableDeclaration","kind":"var","declarations":[{"type":"VariableDeclarator","init":{"type":"Literal","value":1}}]}]}`},
		{"declarator with null id", `{"type":"Program","body":[{"type":"VariableDeclaration","kind":"var","declarations":[{"type":"VariableDeclarator","id":null}]}]}`},
		{"null parameter", `{"type":"Program","body":[{"type":"FunctionDeclaration","id":{"type":"Identifier","name":"f"},"params":[null],"body":{"type":"BlockStatement","body":[]}}]}`},
		{"function declaration without id", `{"type":"Program","body":[{"type":"FunctionDeclaration","params":[],"body":{"type":"BlockStatement","body":[]}}]}`},
		{"function without body", `{"type":"Program","body":[{"type":"ExpressionStatement","expression":{"type":"FunctionExpression","params":[]}}]}`},
		{"catch without body", `{"type":"Program","body":[{"type":"TryStatement","block":{"type":"BlockStatement","body":[]},"handler":{"type":"CatchClause","param":null}}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			if _, ok := err.(*errors.SyntaxError); !ok {
				t.Fatalf("got %T (%v), want *errors.SyntaxError", err, err)
			}
		})
	}
}
