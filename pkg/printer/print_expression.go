package printer

import (
	"jspress/pkg/ast"
	"jspress/pkg/operators"
)

func (p *Printer) expression(e ast.Expression, c opContext) {
	if ast.IsNil(e) {
		return
	}
	switch e := e.(type) {
	case *ast.Identifier:
		p.identifier(e)
	case *ast.Literal:
		if e.Type == ast.RegExpLiteral {
			p.out.WriteRegExp(e.Raw)
			return
		}
		p.write(e.Raw)
	case *ast.ThisExpression:
		p.write("this")
	case *ast.ArrayExpression:
		p.array(e)
	case *ast.ObjectExpression:
		p.object(e)
	case *ast.FunctionExpression:
		paren := needParens(c, p.op(operators.Group))
		p.openParen(paren)
		p.function(&e.Function, true, true)
		p.closeParen(paren)
	case *ast.UnaryExpression:
		p.unary(e, c)
	case *ast.UpdateExpression:
		p.update(e, c)
	case *ast.BinaryExpression:
		p.binary(e.Operator, e.Left, e.Right, c)
	case *ast.LogicalExpression:
		p.binary(e.Operator, e.Left, e.Right, c)
	case *ast.AssignmentExpression:
		p.binary(e.Operator, e.Left, e.Right, c)
	case *ast.ConditionalExpression:
		p.conditional(e, c)
	case *ast.SequenceExpression:
		p.sequence(e, c)
	case *ast.MemberExpression:
		p.member(e, c)
	case *ast.CallExpression:
		inner := p.op(operators.Call)
		paren := needParens(c, inner)
		p.openParen(paren)
		p.expression(e.Callee, opContext{}.operand(inner, slotLeft))
		p.arguments(e.Arguments)
		p.closeParen(paren)
	case *ast.NewExpression:
		p.newExpression(e, c)
	case *ast.SpreadElement:
		inner := p.op(operators.Spread)
		paren := needParens(c, inner)
		p.openParen(paren)
		p.write("...")
		p.expression(e.Argument, opContext{}.operand(inner, slotRight))
		p.closeParen(paren)
	case *ast.YieldExpression:
		p.yield(e, c)
	case *ast.Unknown:
		p.unknown(e)
	default:
		p.defect("unrecognized expression " + e.Kind().String())
		for _, child := range ast.Children(e) {
			p.visitGeneric(child)
		}
	}
}

func (p *Printer) openParen(paren bool) {
	if paren {
		p.write("(")
	}
}

func (p *Printer) closeParen(paren bool) {
	if paren {
		p.write(")")
	}
}

// identifier prints a binding or reference through the scope.
func (p *Printer) identifier(id *ast.Identifier) {
	p.write(p.lookup(id.Name))
}

func (p *Printer) binary(op string, left, right ast.Expression, c opContext) {
	inner := p.op(op)
	paren := needParens(c, inner) || op == "in" && c.noIn
	if paren {
		c.noIn = false
	}
	p.openParen(paren)
	lc := c.operand(inner, slotLeft)
	if _, unary := left.(*ast.UnaryExpression); unary && op == "**" {
		// -a**b is a syntax error
		lc.wrap = true
	}
	p.expression(left, lc)
	p.write(op)
	p.expression(right, c.operand(inner, slotRight))
	p.closeParen(paren)
}

func (p *Printer) unary(e *ast.UnaryExpression, c opContext) {
	inner := p.op(operators.Prefix(e.Operator))
	paren := needParens(c, inner)
	if paren {
		c.noIn = false
	}
	p.openParen(paren)
	p.write(e.Operator)
	p.expression(e.Argument, c.operand(inner, slotRight))
	p.closeParen(paren)
}

func (p *Printer) update(e *ast.UpdateExpression, c opContext) {
	if e.Prefix {
		inner := p.op(operators.Prefix(e.Operator))
		paren := needParens(c, inner)
		p.openParen(paren)
		p.write(e.Operator)
		p.expression(e.Argument, opContext{}.operand(inner, slotRight))
		p.closeParen(paren)
		return
	}
	inner := p.op(operators.Postfix(e.Operator))
	paren := needParens(c, inner)
	p.openParen(paren)
	p.expression(e.Argument, opContext{}.operand(inner, slotLeft))
	p.write(e.Operator)
	p.closeParen(paren)
}

func (p *Printer) conditional(e *ast.ConditionalExpression, c opContext) {
	inner := p.op(operators.Cond)
	paren := needParens(c, inner)
	if paren {
		c.noIn = false
	}
	p.openParen(paren)
	p.expression(e.Test, c.operand(inner, slotLeft))
	p.write("?")
	p.expression(e.Consequent, c.operand(inner, slotRight))
	p.write(":")
	p.expression(e.Alternate, c.operand(inner, slotRight))
	p.closeParen(paren)
}

func (p *Printer) sequence(e *ast.SequenceExpression, c opContext) {
	inner := p.op(operators.Comma)
	paren := needParens(c, inner)
	if paren {
		c.noIn = false
	}
	p.openParen(paren)
	for i, x := range e.Expressions {
		s := slotRight
		if i == 0 {
			s = slotLeft
		} else {
			p.write(",")
		}
		p.expression(x, c.operand(inner, s))
	}
	p.closeParen(paren)
}

func (p *Printer) member(e *ast.MemberExpression, c opContext) {
	inner := p.op(operators.Member)
	if e.Computed {
		inner = p.op(operators.Index)
	}
	paren := needParens(c, inner)
	if paren {
		c.noIn = false
	}
	p.openParen(paren)
	// a member object takes anything a callee takes
	p.expression(e.Object, c.operand(p.op(operators.Call), slotLeft))
	if e.Computed {
		p.write("[")
		p.expression(e.Property, opContext{})
		p.write("]")
	} else {
		if lit, ok := e.Object.(*ast.Literal); ok && isIntegerLiteral(lit) {
			p.write(".")
		}
		p.write(".")
		p.propertyName(e.Property)
	}
	p.closeParen(paren)
}

// isIntegerLiteral reports whether a number literal would swallow a
// following dot as its decimal point.
func isIntegerLiteral(lit *ast.Literal) bool {
	if lit.Type != ast.NumberLiteral || lit.Raw == "" {
		return false
	}
	for i := 0; i < len(lit.Raw); i++ {
		if c := lit.Raw[i]; c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// propertyName prints a non-computed property key or member name verbatim.
func (p *Printer) propertyName(key ast.Expression) {
	switch k := key.(type) {
	case *ast.Identifier:
		p.write(k.Name)
	case *ast.Literal:
		p.write(k.Raw)
	default:
		p.expression(key, opContext{})
	}
}

func (p *Printer) newExpression(e *ast.NewExpression, c opContext) {
	inner := p.op(operators.NewCall)
	paren := needParens(c, inner)
	p.openParen(paren)
	p.write("new")
	callee := opContext{}.operand(inner, slotRight)
	callee.wrap = containsCall(e.Callee)
	p.expression(e.Callee, callee)
	p.arguments(e.Arguments)
	p.closeParen(paren)
}

func (p *Printer) arguments(args []ast.Expression) {
	p.write("(")
	comma := p.op(operators.Comma)
	for i, a := range args {
		if i > 0 {
			p.write(",")
		}
		p.expression(a, opContext{}.operand(comma, slotNone))
	}
	p.write(")")
}

func (p *Printer) array(e *ast.ArrayExpression) {
	p.write("[")
	comma := p.op(operators.Comma)
	for i, el := range e.Elements {
		if i > 0 {
			p.write(",")
		}
		p.expression(el, opContext{}.operand(comma, slotNone))
	}
	if n := len(e.Elements); n > 0 && ast.IsNil(e.Elements[n-1]) {
		// a trailing hole needs its own comma
		p.write(",")
	}
	p.write("]")
}

func (p *Printer) object(e *ast.ObjectExpression) {
	p.write("{")
	comma := p.op(operators.Comma)
	for i, prop := range e.Properties {
		if i > 0 {
			p.write(",")
		}
		switch prop.PropKind {
		case ast.PropertyGet, ast.PropertySet:
			if prop.PropKind == ast.PropertyGet {
				p.write("get")
			} else {
				p.write("set")
			}
			p.propertyKey(prop)
			if fn, ok := prop.Value.(*ast.FunctionExpression); ok {
				p.function(&fn.Function, false, true)
			} else {
				p.defect("accessor without function value")
			}
		default:
			p.propertyKey(prop)
			p.write(":")
			p.expression(prop.Value, opContext{}.operand(comma, slotNone))
		}
	}
	p.write("}")
}

func (p *Printer) propertyKey(prop *ast.Property) {
	if prop.Computed {
		p.write("[")
		p.expression(prop.Key, opContext{}.operand(p.op(operators.Comma), slotNone))
		p.write("]")
		return
	}
	p.propertyName(prop.Key)
}

func (p *Printer) yield(e *ast.YieldExpression, c opContext) {
	inner := p.op(operators.Yield)
	paren := needParens(c, inner)
	if paren {
		c.noIn = false
	}
	p.openParen(paren)
	p.write("yield")
	if e.Delegate {
		p.write("*")
	}
	if e.Argument != nil {
		p.expression(e.Argument, c.operand(inner, slotRight))
	}
	p.closeParen(paren)
}

// function prints a function declaration, expression or accessor body. The
// keyword is omitted for accessors.
func (p *Printer) function(f *ast.Function, keyword, isExpr bool) {
	if f.Expression {
		p.unsupported("expression-bodied function", "only block bodies can be printed")
	}
	if keyword {
		p.write("function")
		if f.Generator {
			p.write("*")
		}
	}
	if f.ID != nil && !isExpr {
		// declarations are bound by the enclosing region
		p.identifier(f.ID)
	}
	p.push()
	if f.ID != nil && isExpr && keyword {
		p.write(p.declare(f.ID.Name))
	}
	params := make([]string, len(f.Params))
	for i, param := range f.Params {
		params[i] = p.declare(param.Name)
	}
	p.write("(")
	comma := p.op(operators.Comma)
	for i, name := range params {
		if i > 0 {
			p.write(",")
		}
		p.write(name)
		if d := f.DefaultAt(i); d != nil {
			p.write("=")
			p.expression(d, opContext{}.operand(comma, slotNone))
		}
	}
	p.write(")")
	p.write("{")
	if f.Body != nil {
		p.hoistVars(f.Body.Body)
		p.hoistLexical(f.Body.Body)
		p.statements(f.Body.Body)
	}
	p.write("}")
	p.pop()
}
