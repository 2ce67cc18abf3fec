// Package operators holds the precedence and associativity registry used
// by the printer to decide where parentheses are required.
package operators

import (
	"fmt"

	"jspress/pkg/errors"
)

// Assoc is the associativity of an operator.
type Assoc int

const (
	AssocNone Assoc = iota
	LTR
	RTL
)

func (a Assoc) String() string {
	switch a {
	case LTR:
		return "ltr"
	case RTL:
		return "rtl"
	default:
		return "none"
	}
}

// Descriptor is the binding strength of one operator or context.
type Descriptor struct {
	Precedence int
	Assoc      Assoc
}

// Synthetic context markers. They are not operators of the language; the
// printer pushes them to force bracketing in particular positions.
const (
	Primary   = ")"     // above everything
	Member    = "."     // object of a member expression
	Index     = "[]"    // object of a computed member expression
	NewCall   = "new()" // callee of `new`; tighter than a call because `new F` and `new F()` parse alike
	Call      = "fcall" // callee of a call
	NewNoArgs = "new"
	Cond      = "?:"
	Group     = "(" // plain grouping; also the own context of a function expression
	Yield     = "yield"
	Spread    = "..."
	Comma     = "," // comma operator and argument/element position
)

// Prefix returns the table key of a prefix unary or update operator.
func Prefix(op string) string { return op + "()" }

// Postfix returns the table key of a postfix update operator.
func Postfix(op string) string { return "()" + op }

// Entry is a set of tokens sharing one descriptor.
type Entry struct {
	Tokens []string
	Descriptor
}

// Table maps operator tokens to descriptors. It is immutable once built.
type Table struct {
	entries  map[string]Descriptor
	warnings []errors.MinifyError
}

// NewTable builds a table from entries. Registering a token twice keeps the
// first descriptor and yields a ConfigError warning.
func NewTable(entries []Entry) (*Table, []errors.MinifyError) {
	t := &Table{entries: make(map[string]Descriptor)}
	var warnings []errors.MinifyError
	for _, e := range entries {
		for _, tok := range e.Tokens {
			if _, dup := t.entries[tok]; dup {
				warnings = append(warnings, &errors.ConfigError{
					Msg: fmt.Sprintf("duplicate operator %s", tok),
				})
				continue
			}
			t.entries[tok] = e.Descriptor
		}
	}
	t.warnings = warnings
	return t, warnings
}

// Lookup returns the descriptor of token.
func (t *Table) Lookup(token string) (Descriptor, bool) {
	d, ok := t.entries[token]
	return d, ok
}

// Warnings returns the configuration warnings raised while the table was
// built.
func (t *Table) Warnings() []errors.MinifyError { return t.warnings }

// Len returns the number of registered tokens.
func (t *Table) Len() int { return len(t.entries) }

// Standard lists every operator and context the printer uses.
var Standard = []Entry{
	{[]string{Primary}, Descriptor{19, AssocNone}},
	{[]string{Member, Index}, Descriptor{18, LTR}},
	{[]string{NewCall}, Descriptor{18, RTL}},
	{[]string{Call}, Descriptor{17, LTR}},
	{[]string{NewNoArgs}, Descriptor{17, RTL}},
	{[]string{"()++", "()--"}, Descriptor{16, AssocNone}},
	{[]string{"!()", "~()", "+()", "-()", "++()", "--()", "typeof()", "void()", "delete()"}, Descriptor{15, RTL}},
	{[]string{"**"}, Descriptor{14, RTL}},
	{[]string{"*", "/", "%"}, Descriptor{14, LTR}},
	{[]string{"+", "-"}, Descriptor{13, LTR}},
	{[]string{"<<", ">>", ">>>"}, Descriptor{12, LTR}},
	{[]string{"<", "<=", ">", ">=", "in", "instanceof"}, Descriptor{11, LTR}},
	{[]string{"==", "!=", "===", "!=="}, Descriptor{10, LTR}},
	{[]string{"&"}, Descriptor{9, LTR}},
	{[]string{"^"}, Descriptor{8, LTR}},
	{[]string{"|"}, Descriptor{7, LTR}},
	{[]string{"&&"}, Descriptor{6, LTR}},
	{[]string{"||"}, Descriptor{5, LTR}},
	{[]string{Cond}, Descriptor{4, RTL}},
	{[]string{"=", "+=", "-=", "**=", "*=", "/=", "%=", "<<=", ">>=", ">>>=", "&=", "^=", "|="}, Descriptor{3, RTL}},
	{[]string{Group}, Descriptor{3, AssocNone}},
	{[]string{Yield}, Descriptor{2, RTL}},
	{[]string{Spread}, Descriptor{1, AssocNone}},
	{[]string{Comma}, Descriptor{0, LTR}},
}

var defaultTable *Table

func init() {
	defaultTable, _ = NewTable(Standard)
}

// Default returns the process-wide table built from Standard.
func Default() *Table { return defaultTable }

