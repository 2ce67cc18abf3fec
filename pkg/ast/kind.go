package ast

import "reflect"

// Kind identifies the node type. String values match ESTree type names so
// that adapters can map external trees by name.
type Kind int

const (
	KindUnknown Kind = iota
	KindProgram
	KindExpressionStatement
	KindVariableDeclaration
	KindVariableDeclarator
	KindFunctionDeclaration
	KindBlockStatement
	KindEmptyStatement
	KindDebuggerStatement
	KindIfStatement
	KindForStatement
	KindForInStatement
	KindWhileStatement
	KindDoWhileStatement
	KindSwitchStatement
	KindSwitchCase
	KindBreakStatement
	KindContinueStatement
	KindLabeledStatement
	KindReturnStatement
	KindThrowStatement
	KindTryStatement
	KindCatchClause
	KindIdentifier
	KindLiteral
	KindThisExpression
	KindArrayExpression
	KindObjectExpression
	KindProperty
	KindFunctionExpression
	KindUnaryExpression
	KindUpdateExpression
	KindBinaryExpression
	KindLogicalExpression
	KindAssignmentExpression
	KindConditionalExpression
	KindSequenceExpression
	KindMemberExpression
	KindCallExpression
	KindNewExpression
	KindSpreadElement
	KindYieldExpression
)

var kindNames = [...]string{
	KindUnknown:               "Unknown",
	KindProgram:               "Program",
	KindExpressionStatement:   "ExpressionStatement",
	KindVariableDeclaration:   "VariableDeclaration",
	KindVariableDeclarator:    "VariableDeclarator",
	KindFunctionDeclaration:   "FunctionDeclaration",
	KindBlockStatement:        "BlockStatement",
	KindEmptyStatement:        "EmptyStatement",
	KindDebuggerStatement:     "DebuggerStatement",
	KindIfStatement:           "IfStatement",
	KindForStatement:          "ForStatement",
	KindForInStatement:        "ForInStatement",
	KindWhileStatement:        "WhileStatement",
	KindDoWhileStatement:      "DoWhileStatement",
	KindSwitchStatement:       "SwitchStatement",
	KindSwitchCase:            "SwitchCase",
	KindBreakStatement:        "BreakStatement",
	KindContinueStatement:     "ContinueStatement",
	KindLabeledStatement:      "LabeledStatement",
	KindReturnStatement:       "ReturnStatement",
	KindThrowStatement:        "ThrowStatement",
	KindTryStatement:          "TryStatement",
	KindCatchClause:           "CatchClause",
	KindIdentifier:            "Identifier",
	KindLiteral:               "Literal",
	KindThisExpression:        "ThisExpression",
	KindArrayExpression:       "ArrayExpression",
	KindObjectExpression:      "ObjectExpression",
	KindProperty:              "Property",
	KindFunctionExpression:    "FunctionExpression",
	KindUnaryExpression:       "UnaryExpression",
	KindUpdateExpression:      "UpdateExpression",
	KindBinaryExpression:      "BinaryExpression",
	KindLogicalExpression:     "LogicalExpression",
	KindAssignmentExpression:  "AssignmentExpression",
	KindConditionalExpression: "ConditionalExpression",
	KindSequenceExpression:    "SequenceExpression",
	KindMemberExpression:      "MemberExpression",
	KindCallExpression:        "CallExpression",
	KindNewExpression:         "NewExpression",
	KindSpreadElement:         "SpreadElement",
	KindYieldExpression:       "YieldExpression",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// KindNames lists the names of every known kind except Unknown.
func KindNames() []string {
	names := make([]string, 0, len(kindNames)-1)
	for k, name := range kindNames {
		if Kind(k) != KindUnknown {
			names = append(names, name)
		}
	}
	return names
}

// KindByName maps an ESTree type name to its Kind.
func KindByName(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name && Kind(k) != KindUnknown {
			return Kind(k), true
		}
	}
	return KindUnknown, false
}

// isNil catches typed nil pointers stored in a Node interface.
func isNil(n Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// IsNil reports whether n is nil or a typed nil pointer.
func IsNil(n Node) bool { return isNil(n) }
