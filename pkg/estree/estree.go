// Package estree reads syntax trees serialised as ESTree JSON, the format
// produced by esprima, acorn and most other JavaScript parsers.
package estree

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"jspress/pkg/ast"
	"jspress/pkg/errors"
	"jspress/pkg/source"
)

// object is one decoded JSON object with its fields left raw.
type object map[string]json.RawMessage

// Decode reads one ESTree document from r. The root must be a Program.
// Node types the printer does not know become *ast.Unknown rather than
// failing the whole tree.
func Decode(r io.Reader) (*ast.Program, errors.MinifyError) {
	return decode(r, nil)
}

// DecodeSource decodes the ESTree document held by src.
func DecodeSource(src *source.SourceFile) (*ast.Program, errors.MinifyError) {
	return decode(strings.NewReader(src.Content), src)
}

func decode(r io.Reader, src *source.SourceFile) (*ast.Program, errors.MinifyError) {
	var root object
	if err := json.NewDecoder(r).Decode(&root); err != nil {
		serr := &errors.SyntaxError{Position: errors.InFile(src), Msg: "invalid ESTree JSON: " + err.Error()}
		return nil, serr.CausedBy(err)
	}
	d := &decoder{}
	if t := d.typeOf(root); t != "Program" {
		return nil, &errors.SyntaxError{
			Position: errors.InFile(src),
			Msg:      fmt.Sprintf("root node is %q, want \"Program\"", t),
		}
	}
	prog := &ast.Program{Body: d.statements(root, "body")}
	if d.err != nil {
		return nil, &errors.SyntaxError{Position: errors.InFile(src), Msg: d.err.Error(), Cause: d.err}
	}
	return prog, nil
}

type decoder struct {
	err error // first malformed field
}

func (d *decoder) fail(err error) {
	if d.err == nil {
		d.err = err
	}
}

// --- field access ---

func (d *decoder) object(raw json.RawMessage) object {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var o object
	if err := json.Unmarshal(raw, &o); err != nil {
		d.fail(err)
		return nil
	}
	return o
}

func (d *decoder) typeOf(o object) string {
	return d.str(o, "type")
}

func (d *decoder) str(o object, field string) string {
	raw, ok := o[field]
	if !ok || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		d.fail(fmt.Errorf("field %s: %w", field, err))
	}
	return s
}

func (d *decoder) flag(o object, field string) bool {
	raw, ok := o[field]
	if !ok {
		return false
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return false
	}
	return b
}

func (d *decoder) list(o object, field string) []json.RawMessage {
	raw, ok := o[field]
	if !ok || string(raw) == "null" {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		d.fail(fmt.Errorf("field %s: %w", field, err))
	}
	return items
}

// --- typed conversion ---

func (d *decoder) statements(o object, field string) []ast.Statement {
	var out []ast.Statement
	for _, raw := range d.list(o, field) {
		if s := d.statement(raw); s != nil {
			out = append(out, s)
		}
	}
	return out
}

func (d *decoder) statement(raw json.RawMessage) ast.Statement {
	n := d.node(raw)
	if n == nil {
		return nil
	}
	if s, ok := n.(ast.Statement); ok {
		return s
	}
	return &ast.Unknown{Type: n.Kind().String(), Children: []ast.Node{n}}
}

func (d *decoder) expression(raw json.RawMessage) ast.Expression {
	n := d.node(raw)
	if n == nil {
		return nil
	}
	if e, ok := n.(ast.Expression); ok {
		return e
	}
	return &ast.Unknown{Type: n.Kind().String(), Children: []ast.Node{n}}
}

func (d *decoder) expressions(o object, field string) []ast.Expression {
	items := d.list(o, field)
	out := make([]ast.Expression, 0, len(items))
	for _, raw := range items {
		out = append(out, d.expression(raw))
	}
	return out
}

func (d *decoder) identifier(raw json.RawMessage) *ast.Identifier {
	o := d.object(raw)
	if o == nil {
		return nil
	}
	if t := d.typeOf(o); t != "Identifier" {
		d.fail(fmt.Errorf("expected Identifier, got %s", t))
		return &ast.Identifier{}
	}
	return &ast.Identifier{Name: d.str(o, "name")}
}

// requiredIdentifier decodes an identifier ESTree does not allow to be
// null. A missing one fails the decode.
func (d *decoder) requiredIdentifier(raw json.RawMessage, what string) *ast.Identifier {
	if id := d.identifier(raw); id != nil {
		return id
	}
	d.fail(fmt.Errorf("%s is missing", what))
	return &ast.Identifier{}
}

func (d *decoder) requiredBlock(raw json.RawMessage, what string) *ast.BlockStatement {
	if b := d.block(raw); b != nil {
		return b
	}
	d.fail(fmt.Errorf("%s is missing", what))
	return &ast.BlockStatement{}
}

func (d *decoder) block(raw json.RawMessage) *ast.BlockStatement {
	o := d.object(raw)
	if o == nil {
		return nil
	}
	return &ast.BlockStatement{Body: d.statements(o, "body")}
}

// node converts any ESTree node. JSON null yields nil.
func (d *decoder) node(raw json.RawMessage) ast.Node {
	o := d.object(raw)
	if o == nil {
		return nil
	}
	switch t := d.typeOf(o); t {
	case "ExpressionStatement":
		return &ast.ExpressionStatement{
			Expression: d.expression(o["expression"]),
			Directive:  d.str(o, "directive"),
		}
	case "VariableDeclaration":
		return d.variableDeclaration(o)
	case "FunctionDeclaration":
		fn := d.function(o)
		if fn.ID == nil {
			d.fail(fmt.Errorf("FunctionDeclaration id is missing"))
		}
		return &ast.FunctionDeclaration{Function: fn}
	case "FunctionExpression":
		return &ast.FunctionExpression{Function: d.function(o)}
	case "BlockStatement":
		return &ast.BlockStatement{Body: d.statements(o, "body")}
	case "EmptyStatement":
		return &ast.EmptyStatement{}
	case "DebuggerStatement":
		return &ast.DebuggerStatement{}
	case "IfStatement":
		return &ast.IfStatement{
			Test:       d.expression(o["test"]),
			Consequent: d.statement(o["consequent"]),
			Alternate:  d.statement(o["alternate"]),
		}
	case "ForStatement":
		return &ast.ForStatement{
			Init:   d.node(o["init"]),
			Test:   d.expression(o["test"]),
			Update: d.expression(o["update"]),
			Body:   d.statement(o["body"]),
		}
	case "ForInStatement":
		return &ast.ForInStatement{
			Left:  d.node(o["left"]),
			Right: d.expression(o["right"]),
			Body:  d.statement(o["body"]),
		}
	case "WhileStatement":
		return &ast.WhileStatement{Test: d.expression(o["test"]), Body: d.statement(o["body"])}
	case "DoWhileStatement":
		return &ast.DoWhileStatement{Body: d.statement(o["body"]), Test: d.expression(o["test"])}
	case "SwitchStatement":
		n := &ast.SwitchStatement{Discriminant: d.expression(o["discriminant"])}
		for _, raw := range d.list(o, "cases") {
			c := d.object(raw)
			n.Cases = append(n.Cases, &ast.SwitchCase{
				Test:       d.expression(c["test"]),
				Consequent: d.statements(c, "consequent"),
			})
		}
		return n
	case "BreakStatement":
		return &ast.BreakStatement{Label: d.identifier(o["label"])}
	case "ContinueStatement":
		return &ast.ContinueStatement{Label: d.identifier(o["label"])}
	case "LabeledStatement":
		return &ast.LabeledStatement{Label: d.requiredIdentifier(o["label"], "LabeledStatement label"), Body: d.statement(o["body"])}
	case "ReturnStatement":
		return &ast.ReturnStatement{Argument: d.expression(o["argument"])}
	case "ThrowStatement":
		return &ast.ThrowStatement{Argument: d.expression(o["argument"])}
	case "TryStatement":
		return d.tryStatement(o)
	case "Identifier":
		return &ast.Identifier{Name: d.str(o, "name")}
	case "Literal":
		return d.literal(o)
	case "ThisExpression":
		return &ast.ThisExpression{}
	case "ArrayExpression":
		return &ast.ArrayExpression{Elements: d.expressions(o, "elements")}
	case "ObjectExpression":
		return d.objectExpression(o)
	case "UnaryExpression":
		return &ast.UnaryExpression{Operator: d.str(o, "operator"), Argument: d.expression(o["argument"])}
	case "UpdateExpression":
		return &ast.UpdateExpression{
			Operator: d.str(o, "operator"),
			Prefix:   d.flag(o, "prefix"),
			Argument: d.expression(o["argument"]),
		}
	case "BinaryExpression":
		return &ast.BinaryExpression{Operator: d.str(o, "operator"), Left: d.expression(o["left"]), Right: d.expression(o["right"])}
	case "LogicalExpression":
		return &ast.LogicalExpression{Operator: d.str(o, "operator"), Left: d.expression(o["left"]), Right: d.expression(o["right"])}
	case "AssignmentExpression":
		return &ast.AssignmentExpression{Operator: d.str(o, "operator"), Left: d.expression(o["left"]), Right: d.expression(o["right"])}
	case "ConditionalExpression":
		return &ast.ConditionalExpression{
			Test:       d.expression(o["test"]),
			Consequent: d.expression(o["consequent"]),
			Alternate:  d.expression(o["alternate"]),
		}
	case "SequenceExpression":
		return &ast.SequenceExpression{Expressions: d.expressions(o, "expressions")}
	case "MemberExpression":
		return &ast.MemberExpression{
			Object:   d.expression(o["object"]),
			Property: d.expression(o["property"]),
			Computed: d.flag(o, "computed"),
		}
	case "CallExpression":
		return &ast.CallExpression{Callee: d.expression(o["callee"]), Arguments: d.expressions(o, "arguments")}
	case "NewExpression":
		return &ast.NewExpression{Callee: d.expression(o["callee"]), Arguments: d.expressions(o, "arguments")}
	case "SpreadElement":
		return &ast.SpreadElement{Argument: d.expression(o["argument"])}
	case "YieldExpression":
		return &ast.YieldExpression{Argument: d.expression(o["argument"]), Delegate: d.flag(o, "delegate")}
	default:
		return d.unknown(t, o)
	}
}

func (d *decoder) variableDeclaration(o object) *ast.VariableDeclaration {
	n := &ast.VariableDeclaration{DeclKind: d.str(o, "kind")}
	for _, raw := range d.list(o, "declarations") {
		decl := d.object(raw)
		n.Declarations = append(n.Declarations, &ast.VariableDeclarator{
			ID:   d.requiredIdentifier(decl["id"], "VariableDeclarator id"),
			Init: d.expression(decl["init"]),
		})
	}
	return n
}

func (d *decoder) function(o object) ast.Function {
	fn := ast.Function{
		ID:         d.identifier(o["id"]),
		Generator:  d.flag(o, "generator"),
		Expression: d.flag(o, "expression"),
	}
	if fn.Expression {
		// the body is an expression; printing stops on the flag
		fn.Body = d.block(o["body"])
	} else {
		fn.Body = d.requiredBlock(o["body"], "function body")
	}
	for _, raw := range d.list(o, "params") {
		fn.Params = append(fn.Params, d.requiredIdentifier(raw, "function parameter"))
	}
	if _, ok := o["defaults"]; ok {
		fn.Defaults = d.expressions(o, "defaults")
	}
	return fn
}

func (d *decoder) tryStatement(o object) *ast.TryStatement {
	n := &ast.TryStatement{
		Block:     d.requiredBlock(o["block"], "TryStatement block"),
		Finalizer: d.block(o["finalizer"]),
	}
	handler := d.object(o["handler"])
	if handler == nil {
		// esprima 1.x lists handlers in an array
		if hs := d.list(o, "handlers"); len(hs) > 0 {
			handler = d.object(hs[0])
		}
	}
	if handler != nil {
		n.Handler = &ast.CatchClause{
			Param: d.identifier(handler["param"]),
			Body:  d.requiredBlock(handler["body"], "CatchClause body"),
		}
	}
	return n
}

func (d *decoder) objectExpression(o object) *ast.ObjectExpression {
	n := &ast.ObjectExpression{}
	for _, raw := range d.list(o, "properties") {
		p := d.object(raw)
		prop := &ast.Property{
			Key:      d.expression(p["key"]),
			Value:    d.expression(p["value"]),
			Computed: d.flag(p, "computed"),
		}
		switch d.str(p, "kind") {
		case "get":
			prop.PropKind = ast.PropertyGet
		case "set":
			prop.PropKind = ast.PropertySet
		}
		n.Properties = append(n.Properties, prop)
	}
	return n
}

// literal keeps the source text when the parser recorded it and rebuilds it
// from the value otherwise.
func (d *decoder) literal(o object) *ast.Literal {
	lit := &ast.Literal{Raw: d.str(o, "raw")}
	value := o["value"]
	if regex := d.object(o["regex"]); regex != nil {
		lit.Type = ast.RegExpLiteral
		if lit.Raw == "" {
			lit.Raw = "/" + d.str(regex, "pattern") + "/" + d.str(regex, "flags")
		}
		return lit
	}
	switch v := strings.TrimSpace(string(value)); {
	case v == "" || v == "null":
		lit.Type = ast.NullLiteral
		if lit.Raw == "" {
			lit.Raw = "null"
		}
	case v == "true" || v == "false":
		lit.Type = ast.BooleanLiteral
		if lit.Raw == "" {
			lit.Raw = v
		}
	case v[0] == '"':
		lit.Type = ast.StringLiteral
		if lit.Raw == "" {
			var s string
			if err := json.Unmarshal(value, &s); err != nil {
				d.fail(err)
			}
			lit.Raw = strconv.Quote(s)
		}
	default:
		lit.Type = ast.NumberLiteral
		if lit.Raw == "" {
			lit.Raw = v
		}
	}
	return lit
}

// unknown keeps whatever child nodes an unrecognised node has, in field
// name order so the result is deterministic.
func (d *decoder) unknown(t string, o object) *ast.Unknown {
	u := &ast.Unknown{Type: t}
	fields := make([]string, 0, len(o))
	for f := range o {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		raw := strings.TrimSpace(string(o[f]))
		switch {
		case strings.HasPrefix(raw, "{"):
			if c := d.childNode(o[f]); c != nil {
				u.Children = append(u.Children, c)
			}
		case strings.HasPrefix(raw, "["):
			var items []json.RawMessage
			if json.Unmarshal(o[f], &items) != nil {
				continue
			}
			for _, item := range items {
				if c := d.childNode(item); c != nil {
					u.Children = append(u.Children, c)
				}
			}
		}
	}
	return u
}

// childNode converts raw if it is an object with a type field.
func (d *decoder) childNode(raw json.RawMessage) ast.Node {
	var probe struct {
		Type string `json:"type"`
	}
	if json.Unmarshal(raw, &probe) != nil || probe.Type == "" {
		return nil
	}
	return d.node(raw)
}
