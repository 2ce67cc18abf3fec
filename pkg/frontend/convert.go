package frontend

import (
	"github.com/tdewolff/parse/v2/js"

	"jspress/pkg/ast"
)

// --- statements ---

func (c *converter) statements(list []js.IStmt) []ast.Statement {
	out := make([]ast.Statement, 0, len(list))
	for _, s := range list {
		if st := c.statement(s); st != nil {
			out = append(out, st)
		}
	}
	return out
}

// statement converts one statement. Comments yield nil.
func (c *converter) statement(s js.IStmt) ast.Statement {
	switch s := s.(type) {
	case *js.ExprStmt:
		return &ast.ExpressionStatement{Expression: c.expression(s.Value)}
	case *js.DirectivePrologueStmt:
		raw := string(s.Value)
		return &ast.ExpressionStatement{
			Expression: &ast.Literal{Type: ast.StringLiteral, Raw: raw},
			Directive:  raw[1 : len(raw)-1],
		}
	case *js.VarDecl:
		return c.varDecl(s)
	case *js.FuncDecl:
		return &ast.FunctionDeclaration{Function: c.function(s)}
	case *js.BlockStmt:
		return c.block(s)
	case *js.EmptyStmt:
		return &ast.EmptyStatement{}
	case *js.DebuggerStmt:
		return &ast.DebuggerStatement{}
	case *js.IfStmt:
		n := &ast.IfStatement{
			Test:       c.expression(s.Cond),
			Consequent: c.body(s.Body),
		}
		if s.Else != nil {
			n.Alternate = c.body(s.Else)
		}
		return n
	case *js.WhileStmt:
		return &ast.WhileStatement{Test: c.expression(s.Cond), Body: c.body(s.Body)}
	case *js.DoWhileStmt:
		return &ast.DoWhileStatement{Body: c.body(s.Body), Test: c.expression(s.Cond)}
	case *js.ForStmt:
		n := &ast.ForStatement{Body: c.loopBody(s.Body)}
		if d, ok := s.Init.(*js.VarDecl); ok {
			if len(d.List) > 0 {
				n.Init = c.varDecl(d)
			}
		} else if s.Init != nil {
			n.Init = c.expression(s.Init)
		}
		if s.Cond != nil {
			n.Test = c.expression(s.Cond)
		}
		if s.Post != nil {
			n.Update = c.expression(s.Post)
		}
		return n
	case *js.ForInStmt:
		n := &ast.ForInStatement{Right: c.expression(s.Value), Body: c.loopBody(s.Body)}
		if d, ok := s.Init.(*js.VarDecl); ok {
			n.Left = c.varDecl(d)
		} else {
			n.Left = c.expression(s.Init)
		}
		return n
	case *js.ForOfStmt:
		c.unsupported("for-of loop")
	case *js.SwitchStmt:
		n := &ast.SwitchStatement{Discriminant: c.expression(s.Init)}
		for _, clause := range s.List {
			sc := &ast.SwitchCase{Consequent: c.statements(clause.List)}
			if clause.Cond != nil {
				sc.Test = c.expression(clause.Cond)
			}
			n.Cases = append(n.Cases, sc)
		}
		return n
	case *js.BranchStmt:
		var label *ast.Identifier
		if s.Label != nil {
			label = &ast.Identifier{Name: string(s.Label)}
		}
		if s.Type == js.ContinueToken {
			return &ast.ContinueStatement{Label: label}
		}
		return &ast.BreakStatement{Label: label}
	case *js.LabelledStmt:
		return &ast.LabeledStatement{
			Label: &ast.Identifier{Name: string(s.Label)},
			Body:  c.body(s.Value),
		}
	case *js.ReturnStmt:
		n := &ast.ReturnStatement{}
		if s.Value != nil {
			n.Argument = c.expression(s.Value)
		}
		return n
	case *js.ThrowStmt:
		return &ast.ThrowStatement{Argument: c.expression(s.Value)}
	case *js.TryStmt:
		n := &ast.TryStatement{Block: c.block(s.Body)}
		if s.Catch != nil {
			h := &ast.CatchClause{Body: c.block(s.Catch)}
			if s.Binding != nil {
				h.Param = c.bindingName(s.Binding, "destructuring catch parameter")
			}
			n.Handler = h
		}
		if s.Finally != nil {
			n.Finalizer = c.block(s.Finally)
		}
		return n
	case *js.Comment:
		return nil
	case *js.WithStmt:
		c.unsupported("with statement")
	case *js.ClassDecl:
		c.unsupported("class declaration")
	case *js.ImportStmt:
		c.unsupported("import declaration")
	case *js.ExportStmt:
		c.unsupported("export declaration")
	default:
		c.unsupported(s.String())
	}
	return nil
}

// body converts a statement that must exist, such as an if branch.
func (c *converter) body(s js.IStmt) ast.Statement {
	if st := c.statement(s); st != nil {
		return st
	}
	return &ast.EmptyStatement{}
}

func (c *converter) block(b *js.BlockStmt) *ast.BlockStatement {
	return &ast.BlockStatement{Body: c.statements(b.List)}
}

// loopBody unwraps the block the parser always builds around a for body.
func (c *converter) loopBody(b *js.BlockStmt) ast.Statement {
	body := c.statements(b.List)
	switch len(body) {
	case 0:
		return &ast.EmptyStatement{}
	case 1:
		if !isDeclaration(body[0]) {
			return body[0]
		}
	}
	return &ast.BlockStatement{Body: body}
}

func isDeclaration(s ast.Statement) bool {
	switch s := s.(type) {
	case *ast.FunctionDeclaration:
		return true
	case *ast.VariableDeclaration:
		return !s.IsVar()
	}
	return false
}

func (c *converter) varDecl(d *js.VarDecl) *ast.VariableDeclaration {
	n := &ast.VariableDeclaration{DeclKind: d.TokenType.String()}
	for _, el := range d.List {
		decl := &ast.VariableDeclarator{ID: c.bindingName(el.Binding, "destructuring declaration")}
		if el.Default != nil {
			decl.Init = c.expression(el.Default)
		}
		n.Declarations = append(n.Declarations, decl)
	}
	return n
}

// bindingName accepts plain identifier bindings only.
func (c *converter) bindingName(b js.IBinding, construct string) *ast.Identifier {
	v, ok := b.(*js.Var)
	if !ok {
		c.unsupported(construct)
	}
	return &ast.Identifier{Name: string(v.Name())}
}

func (c *converter) function(f *js.FuncDecl) ast.Function {
	if f.Async {
		c.unsupported("async function")
	}
	fn := ast.Function{Generator: f.Generator}
	if f.Name != nil {
		fn.ID = &ast.Identifier{Name: string(f.Name.Name())}
	}
	c.params(&fn, f.Params)
	fn.Body = c.block(&f.Body)
	return fn
}

func (c *converter) params(fn *ast.Function, params js.Params) {
	if params.Rest != nil {
		c.unsupported("rest parameter")
	}
	hasDefault := false
	for _, el := range params.List {
		fn.Params = append(fn.Params, c.bindingName(el.Binding, "destructuring parameter"))
		var def ast.Expression
		if el.Default != nil {
			def = c.expression(el.Default)
			hasDefault = true
		}
		fn.Defaults = append(fn.Defaults, def)
	}
	if !hasDefault {
		fn.Defaults = nil
	}
}

// --- expressions ---

func (c *converter) expression(e js.IExpr) ast.Expression {
	switch e := e.(type) {
	case *js.Var:
		return &ast.Identifier{Name: string(e.Name())}
	case *js.LiteralExpr:
		return c.literal(*e)
	case js.LiteralExpr:
		return c.literal(e)
	case *js.GroupExpr:
		return c.expression(e.X)
	case *js.ArrayExpr:
		n := &ast.ArrayExpression{}
		for _, el := range e.List {
			switch {
			case el.Value == nil:
				n.Elements = append(n.Elements, nil)
			case el.Spread:
				n.Elements = append(n.Elements, &ast.SpreadElement{Argument: c.expression(el.Value)})
			default:
				n.Elements = append(n.Elements, c.expression(el.Value))
			}
		}
		return n
	case *js.ObjectExpr:
		return c.object(e)
	case *js.FuncDecl:
		return &ast.FunctionExpression{Function: c.function(e)}
	case *js.DotExpr:
		if e.Optional {
			c.unsupported("optional chaining")
		}
		prop, ok := e.Y.(js.LiteralExpr)
		if !ok {
			c.unsupported("private member access")
		}
		return &ast.MemberExpression{
			Object:   c.expression(e.X),
			Property: &ast.Identifier{Name: string(prop.Data)},
		}
	case *js.IndexExpr:
		if e.Optional {
			c.unsupported("optional chaining")
		}
		return &ast.MemberExpression{
			Object:   c.expression(e.X),
			Property: c.expression(e.Y),
			Computed: true,
		}
	case *js.CallExpr:
		if e.Optional {
			c.unsupported("optional call")
		}
		return &ast.CallExpression{Callee: c.expression(e.X), Arguments: c.arguments(&e.Args)}
	case *js.NewExpr:
		return &ast.NewExpression{Callee: c.expression(e.X), Arguments: c.arguments(e.Args)}
	case *js.UnaryExpr:
		return c.unary(e)
	case *js.BinaryExpr:
		return c.binary(e)
	case *js.CondExpr:
		return &ast.ConditionalExpression{
			Test:       c.expression(e.Cond),
			Consequent: c.expression(e.X),
			Alternate:  c.expression(e.Y),
		}
	case *js.CommaExpr:
		n := &ast.SequenceExpression{}
		for _, x := range e.List {
			n.Expressions = append(n.Expressions, c.expression(x))
		}
		return n
	case *js.YieldExpr:
		n := &ast.YieldExpression{Delegate: e.Generator}
		if e.X != nil {
			n.Argument = c.expression(e.X)
		}
		return n
	case *js.ArrowFunc:
		c.unsupported("arrow function")
	case *js.ClassDecl:
		c.unsupported("class expression")
	case *js.TemplateExpr:
		c.unsupported("template literal")
	case *js.NewTargetExpr:
		c.unsupported("new.target")
	case *js.ImportMetaExpr:
		c.unsupported("import.meta")
	default:
		c.unsupported(e.String())
	}
	return nil
}

func (c *converter) literal(lit js.LiteralExpr) ast.Expression {
	raw := string(lit.Data)
	switch {
	case lit.TokenType == js.ThisToken:
		return &ast.ThisExpression{}
	case lit.TokenType == js.StringToken:
		return &ast.Literal{Type: ast.StringLiteral, Raw: raw}
	case lit.TokenType == js.TrueToken, lit.TokenType == js.FalseToken:
		return &ast.Literal{Type: ast.BooleanLiteral, Raw: raw}
	case lit.TokenType == js.NullToken:
		return &ast.Literal{Type: ast.NullLiteral, Raw: raw}
	case lit.TokenType == js.RegExpToken:
		return &ast.Literal{Type: ast.RegExpLiteral, Raw: raw}
	case js.IsNumeric(lit.TokenType):
		return &ast.Literal{Type: ast.NumberLiteral, Raw: raw}
	}
	return &ast.Unknown{Type: lit.TokenType.String()}
}

func (c *converter) arguments(args *js.Args) []ast.Expression {
	if args == nil {
		return nil
	}
	out := make([]ast.Expression, 0, len(args.List))
	for _, a := range args.List {
		x := c.expression(a.Value)
		if a.Rest {
			x = &ast.SpreadElement{Argument: x}
		}
		out = append(out, x)
	}
	return out
}

func (c *converter) object(o *js.ObjectExpr) *ast.ObjectExpression {
	n := &ast.ObjectExpression{}
	for _, p := range o.List {
		if p.Spread {
			c.unsupported("object spread")
		}
		if p.Init != nil {
			c.unsupported("shorthand property initializer")
		}
		if m, ok := p.Value.(*js.MethodDecl); ok {
			n.Properties = append(n.Properties, c.method(m))
			continue
		}
		key, computed := c.propertyName(p.Name)
		n.Properties = append(n.Properties, &ast.Property{
			Key:      key,
			Value:    c.expression(p.Value),
			Computed: computed,
		})
	}
	return n
}

// method converts `get x(){}`, `set x(v){}` and `f(){}` inside an object
// literal. Plain methods become function-valued properties.
func (c *converter) method(m *js.MethodDecl) *ast.Property {
	if m.Async {
		c.unsupported("async method")
	}
	if m.Name.Private != nil {
		c.unsupported("private method")
	}
	fn := ast.Function{Generator: m.Generator}
	c.params(&fn, m.Params)
	fn.Body = c.block(&m.Body)

	key, computed := c.propertyName(&m.Name.PropertyName)
	prop := &ast.Property{Key: key, Value: &ast.FunctionExpression{Function: fn}, Computed: computed}
	switch {
	case m.Get:
		prop.PropKind = ast.PropertyGet
	case m.Set:
		prop.PropKind = ast.PropertySet
	}
	return prop
}

func (c *converter) propertyName(pn *js.PropertyName) (ast.Expression, bool) {
	if pn == nil {
		c.unsupported("property without name")
	}
	if pn.Computed != nil {
		return c.expression(pn.Computed), true
	}
	lit := pn.Literal
	switch {
	case lit.TokenType == js.StringToken:
		return &ast.Literal{Type: ast.StringLiteral, Raw: string(lit.Data)}, false
	case js.IsNumeric(lit.TokenType):
		return &ast.Literal{Type: ast.NumberLiteral, Raw: string(lit.Data)}, false
	}
	return &ast.Identifier{Name: string(lit.Data)}, false
}

func (c *converter) unary(e *js.UnaryExpr) ast.Expression {
	switch e.Op {
	case js.PreIncrToken, js.PreDecrToken:
		return &ast.UpdateExpression{Operator: e.Op.String(), Prefix: true, Argument: c.expression(e.X)}
	case js.PostIncrToken, js.PostDecrToken:
		return &ast.UpdateExpression{Operator: e.Op.String(), Argument: c.expression(e.X)}
	case js.AwaitToken:
		c.unsupported("await expression")
	}
	return &ast.UnaryExpression{Operator: e.Op.String(), Argument: c.expression(e.X)}
}

var assignmentOps = map[js.TokenType]bool{
	js.EqToken: true, js.AddEqToken: true, js.SubEqToken: true, js.MulEqToken: true,
	js.DivEqToken: true, js.ModEqToken: true, js.ExpEqToken: true, js.LtLtEqToken: true,
	js.GtGtEqToken: true, js.GtGtGtEqToken: true, js.BitAndEqToken: true,
	js.BitOrEqToken: true, js.BitXorEqToken: true,
}

func (c *converter) binary(e *js.BinaryExpr) ast.Expression {
	op := e.Op.String()
	switch {
	case e.Op == js.NullishToken:
		c.unsupported("nullish coalescing")
	case e.Op == js.AndEqToken, e.Op == js.OrEqToken, e.Op == js.NullishEqToken:
		c.unsupported("logical assignment")
	case assignmentOps[e.Op]:
		return &ast.AssignmentExpression{Operator: op, Left: c.expression(e.X), Right: c.expression(e.Y)}
	case e.Op == js.AndToken, e.Op == js.OrToken:
		return &ast.LogicalExpression{Operator: op, Left: c.expression(e.X), Right: c.expression(e.Y)}
	}
	return &ast.BinaryExpression{Operator: op, Left: c.expression(e.X), Right: c.expression(e.Y)}
}
