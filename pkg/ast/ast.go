package ast

import (
	"strings"
)

// --- Interfaces ---

// Node is the base interface for all syntax tree nodes.
type Node interface {
	Kind() Kind     // Discriminator, mirrors the ESTree "type" field
	String() string // Debug representation (s-expression style)
}

// Statement represents a statement node.
type Statement interface {
	Node
	statementNode()
}

// Expression represents an expression node.
type Expression interface {
	Node
	expressionNode()
}

// --- Program Node ---

// Program is the root node of a compilation unit.
type Program struct {
	Body []Statement
}

func (p *Program) Kind() Kind { return KindProgram }
func (p *Program) String() string {
	parts := make([]string, 0, len(p.Body))
	for _, s := range p.Body {
		parts = append(parts, str(s))
	}
	return sexpr(KindProgram, parts...)
}

// --- Statement Nodes ---

// ExpressionStatement wraps an expression used as a statement.
// Directive is set for directive prologue entries such as "use strict".
type ExpressionStatement struct {
	Expression Expression
	Directive  string
}

func (s *ExpressionStatement) statementNode() {}
func (s *ExpressionStatement) Kind() Kind     { return KindExpressionStatement }
func (s *ExpressionStatement) String() string {
	return sexpr(KindExpressionStatement, str(s.Expression))
}

// VariableDeclaration is a `var`, `let` or `const` statement.
type VariableDeclaration struct {
	Declarations []*VariableDeclarator
	DeclKind     string // "var", "let" or "const"
}

func (s *VariableDeclaration) statementNode() {}
func (s *VariableDeclaration) Kind() Kind     { return KindVariableDeclaration }
func (s *VariableDeclaration) String() string {
	parts := []string{s.DeclKind}
	for _, d := range s.Declarations {
		parts = append(parts, d.String())
	}
	return sexpr(KindVariableDeclaration, parts...)
}

// IsVar reports whether the declaration is function scoped.
func (s *VariableDeclaration) IsVar() bool {
	return s.DeclKind == "" || s.DeclKind == "var"
}

// VariableDeclarator is one name/initializer pair of a declaration.
type VariableDeclarator struct {
	ID   *Identifier
	Init Expression // can be nil
}

func (d *VariableDeclarator) Kind() Kind { return KindVariableDeclarator }
func (d *VariableDeclarator) String() string {
	return sexpr(KindVariableDeclarator, str(d.ID), str(d.Init))
}

// Function holds the fields shared by function declarations and expressions.
type Function struct {
	ID        *Identifier   // can be nil for expressions
	Params    []*Identifier // plain identifiers only
	Defaults  []Expression  // parallel to Params, entries can be nil
	Body      *BlockStatement
	Generator bool
	// Expression is the ESTree flag for an expression-bodied function.
	// The printer does not model it.
	Expression bool
}

func (f *Function) sexprParts() []string {
	parts := []string{str(f.ID)}
	params := make([]string, 0, len(f.Params))
	for i, p := range f.Params {
		s := str(p)
		if d := f.DefaultAt(i); d != nil {
			s += "=" + str(d)
		}
		params = append(params, s)
	}
	parts = append(parts, "["+strings.Join(params, " ")+"]", str(f.Body))
	return parts
}

// DefaultAt returns the default value of the i-th parameter, or nil.
func (f *Function) DefaultAt(i int) Expression {
	if i < len(f.Defaults) {
		return f.Defaults[i]
	}
	return nil
}

// FunctionDeclaration is a hoisted `function name(...) {...}` statement.
type FunctionDeclaration struct {
	Function
}

func (s *FunctionDeclaration) statementNode() {}
func (s *FunctionDeclaration) Kind() Kind     { return KindFunctionDeclaration }
func (s *FunctionDeclaration) String() string {
	return sexpr(KindFunctionDeclaration, s.sexprParts()...)
}

// BlockStatement is a braced statement list.
type BlockStatement struct {
	Body []Statement
}

func (s *BlockStatement) statementNode() {}
func (s *BlockStatement) Kind() Kind     { return KindBlockStatement }
func (s *BlockStatement) String() string {
	parts := make([]string, 0, len(s.Body))
	for _, st := range s.Body {
		parts = append(parts, str(st))
	}
	return sexpr(KindBlockStatement, parts...)
}

// EmptyStatement is a lone semicolon.
type EmptyStatement struct{}

func (s *EmptyStatement) statementNode() {}
func (s *EmptyStatement) Kind() Kind     { return KindEmptyStatement }
func (s *EmptyStatement) String() string { return sexpr(KindEmptyStatement) }

// DebuggerStatement is the `debugger` statement.
type DebuggerStatement struct{}

func (s *DebuggerStatement) statementNode() {}
func (s *DebuggerStatement) Kind() Kind     { return KindDebuggerStatement }
func (s *DebuggerStatement) String() string { return sexpr(KindDebuggerStatement) }

// IfStatement represents `if (Test) Consequent else Alternate`.
type IfStatement struct {
	Test       Expression
	Consequent Statement
	Alternate  Statement // can be nil
}

func (s *IfStatement) statementNode() {}
func (s *IfStatement) Kind() Kind     { return KindIfStatement }
func (s *IfStatement) String() string {
	return sexpr(KindIfStatement, str(s.Test), str(s.Consequent), str(s.Alternate))
}

// ForStatement represents `for (Init; Test; Update) Body`.
type ForStatement struct {
	Init   Node // *VariableDeclaration, Expression or nil
	Test   Expression
	Update Expression
	Body   Statement
}

func (s *ForStatement) statementNode() {}
func (s *ForStatement) Kind() Kind     { return KindForStatement }
func (s *ForStatement) String() string {
	return sexpr(KindForStatement, str(s.Init), str(s.Test), str(s.Update), str(s.Body))
}

// ForInStatement represents `for (Left in Right) Body`.
type ForInStatement struct {
	Left  Node // *VariableDeclaration or Expression
	Right Expression
	Body  Statement
}

func (s *ForInStatement) statementNode() {}
func (s *ForInStatement) Kind() Kind     { return KindForInStatement }
func (s *ForInStatement) String() string {
	return sexpr(KindForInStatement, str(s.Left), str(s.Right), str(s.Body))
}

// WhileStatement represents `while (Test) Body`.
type WhileStatement struct {
	Test Expression
	Body Statement
}

func (s *WhileStatement) statementNode() {}
func (s *WhileStatement) Kind() Kind     { return KindWhileStatement }
func (s *WhileStatement) String() string {
	return sexpr(KindWhileStatement, str(s.Test), str(s.Body))
}

// DoWhileStatement represents `do Body while (Test)`.
type DoWhileStatement struct {
	Body Statement
	Test Expression
}

func (s *DoWhileStatement) statementNode() {}
func (s *DoWhileStatement) Kind() Kind     { return KindDoWhileStatement }
func (s *DoWhileStatement) String() string {
	return sexpr(KindDoWhileStatement, str(s.Body), str(s.Test))
}

// SwitchStatement represents `switch (Discriminant) { Cases }`.
type SwitchStatement struct {
	Discriminant Expression
	Cases        []*SwitchCase
}

func (s *SwitchStatement) statementNode() {}
func (s *SwitchStatement) Kind() Kind     { return KindSwitchStatement }
func (s *SwitchStatement) String() string {
	parts := []string{str(s.Discriminant)}
	for _, c := range s.Cases {
		parts = append(parts, c.String())
	}
	return sexpr(KindSwitchStatement, parts...)
}

// SwitchCase is a `case Test:` clause, or `default:` when Test is nil.
type SwitchCase struct {
	Test       Expression
	Consequent []Statement
}

func (c *SwitchCase) Kind() Kind { return KindSwitchCase }
func (c *SwitchCase) String() string {
	parts := []string{str(c.Test)}
	for _, st := range c.Consequent {
		parts = append(parts, str(st))
	}
	return sexpr(KindSwitchCase, parts...)
}

// BreakStatement represents `break [Label];`.
type BreakStatement struct {
	Label *Identifier
}

func (s *BreakStatement) statementNode() {}
func (s *BreakStatement) Kind() Kind     { return KindBreakStatement }
func (s *BreakStatement) String() string { return sexpr(KindBreakStatement, str(s.Label)) }

// ContinueStatement represents `continue [Label];`.
type ContinueStatement struct {
	Label *Identifier
}

func (s *ContinueStatement) statementNode() {}
func (s *ContinueStatement) Kind() Kind     { return KindContinueStatement }
func (s *ContinueStatement) String() string { return sexpr(KindContinueStatement, str(s.Label)) }

// LabeledStatement represents `Label: Body`.
type LabeledStatement struct {
	Label *Identifier
	Body  Statement
}

func (s *LabeledStatement) statementNode() {}
func (s *LabeledStatement) Kind() Kind     { return KindLabeledStatement }
func (s *LabeledStatement) String() string {
	return sexpr(KindLabeledStatement, str(s.Label), str(s.Body))
}

// ReturnStatement represents `return [Argument];`.
type ReturnStatement struct {
	Argument Expression
}

func (s *ReturnStatement) statementNode() {}
func (s *ReturnStatement) Kind() Kind     { return KindReturnStatement }
func (s *ReturnStatement) String() string { return sexpr(KindReturnStatement, str(s.Argument)) }

// ThrowStatement represents `throw Argument;`.
type ThrowStatement struct {
	Argument Expression
}

func (s *ThrowStatement) statementNode() {}
func (s *ThrowStatement) Kind() Kind     { return KindThrowStatement }
func (s *ThrowStatement) String() string { return sexpr(KindThrowStatement, str(s.Argument)) }

// TryStatement represents `try Block catch (..) {..} finally Finalizer`.
type TryStatement struct {
	Block     *BlockStatement
	Handler   *CatchClause    // can be nil
	Finalizer *BlockStatement // can be nil
}

func (s *TryStatement) statementNode() {}
func (s *TryStatement) Kind() Kind     { return KindTryStatement }
func (s *TryStatement) String() string {
	return sexpr(KindTryStatement, str(s.Block), str(s.Handler), str(s.Finalizer))
}

// CatchClause is the `catch (Param) Body` part of a try statement.
type CatchClause struct {
	Param *Identifier
	Body  *BlockStatement
}

func (c *CatchClause) Kind() Kind { return KindCatchClause }
func (c *CatchClause) String() string {
	return sexpr(KindCatchClause, str(c.Param), str(c.Body))
}

// --- Expression Nodes ---

// Identifier is a name reference or binding.
type Identifier struct {
	Name string
}

func (e *Identifier) expressionNode() {}
func (e *Identifier) Kind() Kind      { return KindIdentifier }
func (e *Identifier) String() string  { return e.Name }

// LiteralType classifies literal values.
type LiteralType int

const (
	StringLiteral LiteralType = iota
	NumberLiteral
	BooleanLiteral
	NullLiteral
	RegExpLiteral
)

// Literal is a literal value; Raw is printed verbatim.
type Literal struct {
	Type LiteralType
	Raw  string
}

func (e *Literal) expressionNode() {}
func (e *Literal) Kind() Kind      { return KindLiteral }
func (e *Literal) String() string  { return e.Raw }

// StringValue returns the raw text of a string literal without its quotes.
// Escape sequences are left untouched.
func (e *Literal) StringValue() (string, bool) {
	if e.Type != StringLiteral || len(e.Raw) < 2 {
		return "", false
	}
	return e.Raw[1 : len(e.Raw)-1], true
}

// ThisExpression is `this`.
type ThisExpression struct{}

func (e *ThisExpression) expressionNode() {}
func (e *ThisExpression) Kind() Kind      { return KindThisExpression }
func (e *ThisExpression) String() string  { return "this" }

// ArrayExpression is `[a, , b]`; nil elements are holes.
type ArrayExpression struct {
	Elements []Expression
}

func (e *ArrayExpression) expressionNode() {}
func (e *ArrayExpression) Kind() Kind      { return KindArrayExpression }
func (e *ArrayExpression) String() string {
	parts := make([]string, 0, len(e.Elements))
	for _, el := range e.Elements {
		parts = append(parts, str(el))
	}
	return sexpr(KindArrayExpression, parts...)
}

// PropertyKind distinguishes plain properties from accessors.
type PropertyKind int

const (
	PropertyInit PropertyKind = iota
	PropertyGet
	PropertySet
)

// ObjectExpression is an object literal.
type ObjectExpression struct {
	Properties []*Property
}

func (e *ObjectExpression) expressionNode() {}
func (e *ObjectExpression) Kind() Kind      { return KindObjectExpression }
func (e *ObjectExpression) String() string {
	parts := make([]string, 0, len(e.Properties))
	for _, p := range e.Properties {
		parts = append(parts, p.String())
	}
	return sexpr(KindObjectExpression, parts...)
}

// Property is one entry of an object literal. For accessors Value is
// a *FunctionExpression.
type Property struct {
	Key      Expression // *Identifier or *Literal unless Computed
	Value    Expression
	Computed bool
	PropKind PropertyKind
}

func (p *Property) Kind() Kind { return KindProperty }
func (p *Property) String() string {
	key := str(p.Key)
	if p.Computed {
		key = "[" + key + "]"
	}
	switch p.PropKind {
	case PropertyGet:
		key = "get " + key
	case PropertySet:
		key = "set " + key
	}
	return sexpr(KindProperty, key, str(p.Value))
}

// FunctionExpression is a function used as a value.
type FunctionExpression struct {
	Function
}

func (e *FunctionExpression) expressionNode() {}
func (e *FunctionExpression) Kind() Kind      { return KindFunctionExpression }
func (e *FunctionExpression) String() string {
	return sexpr(KindFunctionExpression, e.sexprParts()...)
}

// UnaryExpression is a prefix operator such as `!`, `typeof` or `-`.
type UnaryExpression struct {
	Operator string
	Argument Expression
}

func (e *UnaryExpression) expressionNode() {}
func (e *UnaryExpression) Kind() Kind      { return KindUnaryExpression }
func (e *UnaryExpression) String() string {
	return sexpr(KindUnaryExpression, e.Operator, str(e.Argument))
}

// UpdateExpression is `++x`, `x--` and friends.
type UpdateExpression struct {
	Operator string // "++" or "--"
	Prefix   bool
	Argument Expression
}

func (e *UpdateExpression) expressionNode() {}
func (e *UpdateExpression) Kind() Kind      { return KindUpdateExpression }
func (e *UpdateExpression) String() string {
	op := e.Operator + "()"
	if !e.Prefix {
		op = "()" + e.Operator
	}
	return sexpr(KindUpdateExpression, op, str(e.Argument))
}

// BinaryExpression is an arithmetic, bitwise, relational or equality operation.
type BinaryExpression struct {
	Operator string
	Left     Expression
	Right    Expression
}

func (e *BinaryExpression) expressionNode() {}
func (e *BinaryExpression) Kind() Kind      { return KindBinaryExpression }
func (e *BinaryExpression) String() string {
	return sexpr(KindBinaryExpression, e.Operator, str(e.Left), str(e.Right))
}

// LogicalExpression is `&&` or `||`.
type LogicalExpression struct {
	Operator string
	Left     Expression
	Right    Expression
}

func (e *LogicalExpression) expressionNode() {}
func (e *LogicalExpression) Kind() Kind      { return KindLogicalExpression }
func (e *LogicalExpression) String() string {
	return sexpr(KindLogicalExpression, e.Operator, str(e.Left), str(e.Right))
}

// AssignmentExpression is `=` or a compound assignment.
type AssignmentExpression struct {
	Operator string
	Left     Expression
	Right    Expression
}

func (e *AssignmentExpression) expressionNode() {}
func (e *AssignmentExpression) Kind() Kind      { return KindAssignmentExpression }
func (e *AssignmentExpression) String() string {
	return sexpr(KindAssignmentExpression, e.Operator, str(e.Left), str(e.Right))
}

// ConditionalExpression is `Test ? Consequent : Alternate`.
type ConditionalExpression struct {
	Test       Expression
	Consequent Expression
	Alternate  Expression
}

func (e *ConditionalExpression) expressionNode() {}
func (e *ConditionalExpression) Kind() Kind      { return KindConditionalExpression }
func (e *ConditionalExpression) String() string {
	return sexpr(KindConditionalExpression, str(e.Test), str(e.Consequent), str(e.Alternate))
}

// SequenceExpression is the comma operator.
type SequenceExpression struct {
	Expressions []Expression
}

func (e *SequenceExpression) expressionNode() {}
func (e *SequenceExpression) Kind() Kind      { return KindSequenceExpression }
func (e *SequenceExpression) String() string {
	parts := make([]string, 0, len(e.Expressions))
	for _, x := range e.Expressions {
		parts = append(parts, str(x))
	}
	return sexpr(KindSequenceExpression, parts...)
}

// MemberExpression is `Object.Property` or `Object[Property]`.
type MemberExpression struct {
	Object   Expression
	Property Expression
	Computed bool
}

func (e *MemberExpression) expressionNode() {}
func (e *MemberExpression) Kind() Kind      { return KindMemberExpression }
func (e *MemberExpression) String() string {
	prop := str(e.Property)
	if e.Computed {
		prop = "[" + prop + "]"
	}
	return sexpr(KindMemberExpression, str(e.Object), prop)
}

// CallExpression is `Callee(Arguments)`.
type CallExpression struct {
	Callee    Expression
	Arguments []Expression
}

func (e *CallExpression) expressionNode() {}
func (e *CallExpression) Kind() Kind      { return KindCallExpression }
func (e *CallExpression) String() string {
	parts := []string{str(e.Callee)}
	for _, a := range e.Arguments {
		parts = append(parts, str(a))
	}
	return sexpr(KindCallExpression, parts...)
}

// NewExpression is `new Callee(Arguments)`. Parsers do not keep track of
// whether the argument list was written out.
type NewExpression struct {
	Callee    Expression
	Arguments []Expression
}

func (e *NewExpression) expressionNode() {}
func (e *NewExpression) Kind() Kind      { return KindNewExpression }
func (e *NewExpression) String() string {
	parts := []string{str(e.Callee)}
	for _, a := range e.Arguments {
		parts = append(parts, str(a))
	}
	return sexpr(KindNewExpression, parts...)
}

// SpreadElement is `...Argument` in an argument list or array literal.
type SpreadElement struct {
	Argument Expression
}

func (e *SpreadElement) expressionNode() {}
func (e *SpreadElement) Kind() Kind      { return KindSpreadElement }
func (e *SpreadElement) String() string  { return sexpr(KindSpreadElement, str(e.Argument)) }

// YieldExpression is `yield [Argument]` or `yield* Argument`.
type YieldExpression struct {
	Argument Expression // can be nil
	Delegate bool
}

func (e *YieldExpression) expressionNode() {}
func (e *YieldExpression) Kind() Kind      { return KindYieldExpression }
func (e *YieldExpression) String() string {
	op := "yield"
	if e.Delegate {
		op = "yield*"
	}
	return sexpr(KindYieldExpression, op, str(e.Argument))
}

// --- Unknown ---

// Unknown stands in for a node whose type an adapter could not map.
// Children holds any nested nodes that could still be recovered.
type Unknown struct {
	Type     string
	Children []Node
}

func (u *Unknown) statementNode()  {}
func (u *Unknown) expressionNode() {}
func (u *Unknown) Kind() Kind      { return KindUnknown }
func (u *Unknown) String() string {
	parts := []string{u.Type}
	for _, c := range u.Children {
		parts = append(parts, str(c))
	}
	return sexpr(KindUnknown, parts...)
}

// --- helpers ---

func str(n Node) string {
	if isNil(n) {
		return "nil"
	}
	return n.String()
}

func sexpr(kind Kind, parts ...string) string {
	var out strings.Builder
	out.WriteString("(")
	out.WriteString(kind.String())
	for _, p := range parts {
		out.WriteString(" ")
		out.WriteString(p)
	}
	out.WriteString(")")
	return out.String()
}
