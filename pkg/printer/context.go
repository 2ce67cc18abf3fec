package printer

import "jspress/pkg/operators"

// slot is the side of its parent operator an operand sits on.
type slot uint8

const (
	slotNone slot = iota
	slotLeft
	slotRight
)

// opContext describes where an expression is printed. It is passed down by
// value, so leaving a handler restores the parent's context.
type opContext struct {
	outer  operators.Descriptor
	nested bool // false at statement level and inside fresh brackets
	slot   slot
	noIn   bool // a bare `in` would end a for-statement initialiser
	wrap   bool // parenthesise regardless of precedence
}

// operand returns the context of an operand of outer placed in s.
func (c opContext) operand(outer operators.Descriptor, s slot) opContext {
	return opContext{outer: outer, nested: true, slot: s, noIn: c.noIn}
}

// needParens reports whether an expression whose own operator is inner must
// be bracketed in context c.
//
// Parentheses are needed when the outer operator binds tighter. At equal
// precedence they are needed when the operand sits on the side opposite to
// the outer operator's associativity, so a-(b-c) keeps its brackets and
// (a-b)-c loses them. Operands without a side fall back to bracketing
// left-associative inner operators.
func needParens(c opContext, inner operators.Descriptor) bool {
	if c.wrap {
		return true
	}
	if !c.nested {
		return false
	}
	outer := c.outer
	if outer.Precedence < 0 || inner.Precedence < 0 {
		return true
	}
	if outer.Precedence != inner.Precedence {
		return outer.Precedence > inner.Precedence
	}
	switch {
	case c.slot == slotLeft && outer.Assoc == operators.LTR,
		c.slot == slotRight && outer.Assoc == operators.RTL:
		return false
	case c.slot == slotLeft && outer.Assoc == operators.RTL,
		c.slot == slotRight && outer.Assoc == operators.LTR:
		return true
	}
	return inner.Assoc == operators.LTR
}
