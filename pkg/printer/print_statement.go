package printer

import (
	"jspress/pkg/ast"
	"jspress/pkg/operators"
)

func (p *Printer) program(prog *ast.Program) {
	for _, s := range prog.Body {
		if fn, ok := p.inlined(s); ok {
			debugPrintf("[Program] inlining wrapper with %d params\n", len(fn.Params))
			p.hoistVars(fn.Body.Body)
			p.hoistLexical(fn.Body.Body)
			p.statements(fn.Body.Body)
			continue
		}
		p.statement(s)
		if d, ok := s.(*ast.VariableDeclaration); ok {
			p.exportDeclaration(d)
		}
	}
}

// exportDeclaration emits NS.name=short; after a top-level declaration of a
// single initialised binding.
func (p *Printer) exportDeclaration(d *ast.VariableDeclaration) {
	if p.opts.ModuleName == "" || len(d.Declarations) != 1 || d.Declarations[0].Init == nil {
		return
	}
	id := d.Declarations[0].ID
	p.out.Capture()
	p.identifier(id)
	short := p.out.Release()
	p.write(p.opts.ModuleName + "." + id.Name + "=" + short + ";")
}

func (p *Printer) statements(stmts []ast.Statement) {
	for _, s := range stmts {
		p.statement(s)
	}
}

func (p *Printer) statement(s ast.Statement) {
	if ast.IsNil(s) {
		p.write(";")
		return
	}
	switch s := s.(type) {
	case *ast.ExpressionStatement:
		p.expressionStatement(s)
	case *ast.VariableDeclaration:
		p.declarations(s, opContext{})
		p.write(";")
	case *ast.FunctionDeclaration:
		p.function(&s.Function, true, false)
	case *ast.BlockStatement:
		p.block(s)
	case *ast.EmptyStatement:
		p.write(";")
	case *ast.DebuggerStatement:
		p.write("debugger;")
	case *ast.IfStatement:
		p.ifStatement(s)
	case *ast.ForStatement:
		p.forStatement(s)
	case *ast.ForInStatement:
		p.forInStatement(s)
	case *ast.WhileStatement:
		p.write("while(")
		p.expression(s.Test, opContext{})
		p.write(")")
		p.statement(s.Body)
	case *ast.DoWhileStatement:
		p.write("do")
		p.statement(s.Body)
		p.write("while(")
		p.expression(s.Test, opContext{})
		p.write(");")
	case *ast.SwitchStatement:
		p.switchStatement(s)
	case *ast.BreakStatement:
		p.jump("break", s.Label)
	case *ast.ContinueStatement:
		p.jump("continue", s.Label)
	case *ast.LabeledStatement:
		p.write(s.Label.Name + ":")
		p.statement(s.Body)
	case *ast.ReturnStatement:
		p.write("return")
		if s.Argument != nil {
			p.expression(s.Argument, opContext{})
		}
		p.write(";")
	case *ast.ThrowStatement:
		p.write("throw")
		p.expression(s.Argument, opContext{})
		p.write(";")
	case *ast.TryStatement:
		p.tryStatement(s)
	case *ast.Unknown:
		p.unknown(s)
	default:
		p.defect("unrecognized statement " + s.Kind().String())
		for _, c := range ast.Children(s) {
			p.visitGeneric(c)
		}
	}
}

func (p *Printer) expressionStatement(s *ast.ExpressionStatement) {
	if s.Directive == "use strict" && p.opts.DropUseStrict {
		return
	}
	p.out.Capture()
	p.expression(s.Expression, opContext{})
	text := p.out.Release()
	if startsAmbiguously(text) || isBareString(s) {
		text = "(" + text + ")"
	}
	p.write(text)
	p.write(";")
}

// isBareString reports whether s is a string statement that is not a
// directive. Printed without grouping it could become one.
func isBareString(s *ast.ExpressionStatement) bool {
	lit, ok := s.Expression.(*ast.Literal)
	return ok && lit.Type == ast.StringLiteral && s.Directive == ""
}

// declarations prints a declaration without its terminating semicolon.
func (p *Printer) declarations(d *ast.VariableDeclaration, c opContext) {
	kind := d.DeclKind
	if kind == "" {
		kind = "var"
	}
	p.write(kind)
	for i, decl := range d.Declarations {
		if i > 0 {
			p.write(",")
		}
		p.identifier(decl.ID)
		if decl.Init != nil {
			p.write("=")
			p.expression(decl.Init, c.operand(p.op(operators.Comma), slotNone))
		}
	}
}

func (p *Printer) block(b *ast.BlockStatement) {
	p.write("{")
	p.push()
	p.hoistLexical(b.Body)
	p.statements(b.Body)
	p.pop()
	p.write("}")
}

func (p *Printer) ifStatement(s *ast.IfStatement) {
	p.write("if(")
	p.expression(s.Test, opContext{})
	p.write(")")
	if s.Alternate != nil && endsInOpenIf(s.Consequent) {
		p.write("{")
		p.statement(s.Consequent)
		p.write("}")
	} else {
		p.statement(s.Consequent)
	}
	if s.Alternate != nil {
		p.write("else")
		p.statement(s.Alternate)
	}
}

// lexicalDeclaration returns n when it is a let or const declaration.
func lexicalDeclaration(n ast.Node) (*ast.VariableDeclaration, bool) {
	d, ok := n.(*ast.VariableDeclaration)
	if !ok || d.IsVar() {
		return nil, false
	}
	return d, true
}

func (p *Printer) forStatement(s *ast.ForStatement) {
	lexical, scoped := lexicalDeclaration(s.Init)
	if scoped {
		p.push()
		for _, d := range lexical.Declarations {
			p.declare(d.ID.Name)
		}
	}
	p.write("for(")
	p.forHead(s.Init)
	p.write(";")
	if s.Test != nil {
		p.expression(s.Test, opContext{})
	}
	p.write(";")
	if s.Update != nil {
		p.expression(s.Update, opContext{})
	}
	p.write(")")
	p.statement(s.Body)
	if scoped {
		p.pop()
	}
}

func (p *Printer) forInStatement(s *ast.ForInStatement) {
	lexical, scoped := lexicalDeclaration(s.Left)
	if scoped {
		p.push()
		for _, d := range lexical.Declarations {
			p.declare(d.ID.Name)
		}
	}
	p.write("for(")
	p.forHead(s.Left)
	p.write("in")
	p.expression(s.Right, opContext{})
	p.write(")")
	p.statement(s.Body)
	if scoped {
		p.pop()
	}
}

// forHead prints the initialiser of a for or for-in head, where a bare `in`
// operator would be misread.
func (p *Printer) forHead(n ast.Node) {
	if ast.IsNil(n) {
		return
	}
	c := opContext{noIn: true}
	switch n := n.(type) {
	case *ast.VariableDeclaration:
		p.declarations(n, c)
	case ast.Expression:
		p.expression(n, c)
	default:
		p.visitGeneric(n)
	}
}

func (p *Printer) switchStatement(s *ast.SwitchStatement) {
	p.write("switch(")
	p.expression(s.Discriminant, opContext{})
	p.write("){")
	p.push()
	for _, c := range s.Cases {
		p.hoistLexical(c.Consequent)
	}
	for _, c := range s.Cases {
		if c.Test != nil {
			p.write("case")
			p.expression(c.Test, opContext{})
		} else {
			p.write("default")
		}
		p.write(":")
		p.statements(c.Consequent)
	}
	p.pop()
	p.write("}")
}

func (p *Printer) jump(keyword string, label *ast.Identifier) {
	p.write(keyword)
	if label != nil {
		p.write(label.Name)
	}
	p.write(";")
}

func (p *Printer) tryStatement(s *ast.TryStatement) {
	p.write("try")
	p.block(s.Block)
	if h := s.Handler; h != nil {
		p.write("catch")
		p.push()
		if h.Param != nil {
			p.write("(")
			p.write(p.declare(h.Param.Name))
			p.write(")")
		}
		p.block(h.Body)
		p.pop()
	}
	if s.Finalizer != nil {
		p.write("finally")
		p.block(s.Finalizer)
	}
}
