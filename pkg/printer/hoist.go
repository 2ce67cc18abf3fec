package printer

import "jspress/pkg/ast"

// hoistProgram binds the declarations of a program's top-level region in
// the current (root) frame, including those of wrappers that will be
// inlined into it.
func (p *Printer) hoistProgram(prog *ast.Program) {
	if p.scope == nil {
		return
	}
	p.hoistVars(prog.Body)
	p.hoistLexical(prog.Body)
	for _, s := range prog.Body {
		if fn, ok := p.inlined(s); ok {
			p.hoistVars(fn.Body.Body)
			p.hoistLexical(fn.Body.Body)
		}
	}
}

// hoistVars binds every `var` declarator and function declaration of a
// function-level region.
func (p *Printer) hoistVars(stmts []ast.Statement) {
	if p.scope == nil {
		return
	}
	eachVarName(stmts, func(name string) { p.declare(name) })
}

// hoistLexical binds the let and const declarators written directly in
// stmts.
func (p *Printer) hoistLexical(stmts []ast.Statement) {
	if p.scope == nil {
		return
	}
	eachLexicalName(stmts, func(name string) { p.declare(name) })
}

// eachVarName calls f for every `var` declarator and function declaration
// of a function-level region. Nested blocks are searched, nested functions
// are not.
func eachVarName(stmts []ast.Statement, f func(string)) {
	for _, s := range stmts {
		eachVarNameIn(s, f)
	}
}

func eachVarNameIn(s ast.Statement, f func(string)) {
	if ast.IsNil(s) {
		return
	}
	switch s := s.(type) {
	case *ast.VariableDeclaration:
		if s.IsVar() {
			for _, d := range s.Declarations {
				f(d.ID.Name)
			}
		}
	case *ast.FunctionDeclaration:
		if s.ID != nil {
			f(s.ID.Name)
		}
	case *ast.BlockStatement:
		eachVarName(s.Body, f)
	case *ast.IfStatement:
		eachVarNameIn(s.Consequent, f)
		eachVarNameIn(s.Alternate, f)
	case *ast.ForStatement:
		if d, ok := s.Init.(*ast.VariableDeclaration); ok {
			eachVarNameIn(d, f)
		}
		eachVarNameIn(s.Body, f)
	case *ast.ForInStatement:
		if d, ok := s.Left.(*ast.VariableDeclaration); ok {
			eachVarNameIn(d, f)
		}
		eachVarNameIn(s.Body, f)
	case *ast.WhileStatement:
		eachVarNameIn(s.Body, f)
	case *ast.DoWhileStatement:
		eachVarNameIn(s.Body, f)
	case *ast.LabeledStatement:
		eachVarNameIn(s.Body, f)
	case *ast.SwitchStatement:
		for _, c := range s.Cases {
			eachVarName(c.Consequent, f)
		}
	case *ast.TryStatement:
		eachVarNameIn(s.Block, f)
		if s.Handler != nil {
			eachVarNameIn(s.Handler.Body, f)
		}
		eachVarNameIn(s.Finalizer, f)
	}
}

// eachLexicalName calls f for the let and const declarators written
// directly in stmts.
func eachLexicalName(stmts []ast.Statement, f func(string)) {
	for _, s := range stmts {
		if d, ok := s.(*ast.VariableDeclaration); ok && !d.IsVar() {
			for _, decl := range d.Declarations {
				f(decl.ID.Name)
			}
		}
	}
}

// planWrappers decides which top-level wrapper calls of progs are inlined.
// A wrapper whose body declares a name the program region already declares
// is left as a call: splicing it would redeclare a let or const, or merge
// two distinct variables into one.
func (p *Printer) planWrappers(progs []*ast.Program) {
	if !p.opts.StripModules {
		return
	}
	mark := func(name string) { p.topNames[name] = true }
	type candidate struct {
		stmt ast.Statement
		fn   *ast.FunctionExpression
	}
	var candidates []candidate
	for _, prog := range progs {
		var rest []ast.Statement
		for _, s := range prog.Body {
			if _, planned := p.wrappers[s]; planned {
				continue
			}
			if fn, ok := p.wrapperCall(s); ok {
				candidates = append(candidates, candidate{s, fn})
				continue
			}
			rest = append(rest, s)
		}
		eachVarName(rest, mark)
		eachLexicalName(rest, mark)
	}
	for _, c := range candidates {
		body := c.fn.Body.Body
		if name, clash := p.clashingName(body); clash {
			debugPrintf("[Wrapper] keeping call, %s is already declared\n", name)
			p.wrappers[c.stmt] = nil
			continue
		}
		eachVarName(body, mark)
		eachLexicalName(body, mark)
		p.wrappers[c.stmt] = c.fn
	}
}

// clashingName returns a name declared by body that the program region
// already declares.
func (p *Printer) clashingName(body []ast.Statement) (string, bool) {
	clash := ""
	check := func(name string) {
		if clash != "" {
			return
		}
		if p.topNames[name] {
			clash = name
			return
		}
		if p.scope != nil {
			if _, ok := p.scope.Declared(name); ok {
				clash = name
			}
		}
	}
	eachVarName(body, check)
	eachLexicalName(body, check)
	return clash, clash != ""
}

// inlined returns the function whose body is printed in place of s.
func (p *Printer) inlined(s ast.Statement) (*ast.FunctionExpression, bool) {
	fn := p.wrappers[s]
	return fn, fn != nil
}

// wrapperCall returns the function of a top-level statement of the form
// (function(a,b){...})(a,b) when the shape of the call allows its body to be
// printed in place of it.
func (p *Printer) wrapperCall(s ast.Statement) (*ast.FunctionExpression, bool) {
	if !p.opts.StripModules {
		return nil, false
	}
	es, ok := s.(*ast.ExpressionStatement)
	if !ok {
		return nil, false
	}
	call, ok := es.Expression.(*ast.CallExpression)
	if !ok {
		return nil, false
	}
	fn, ok := call.Callee.(*ast.FunctionExpression)
	if !ok || fn.ID != nil || fn.Generator || fn.Expression || fn.Body == nil {
		return nil, false
	}
	if len(call.Arguments) != len(fn.Params) {
		return nil, false
	}
	for i, arg := range call.Arguments {
		id, ok := arg.(*ast.Identifier)
		if !ok || id.Name != fn.Params[i].Name || fn.DefaultAt(i) != nil {
			return nil, false
		}
	}
	if usesCallBoundary(fn.Body) {
		return nil, false
	}
	return fn, true
}

// usesCallBoundary reports whether a function body returns or reads
// `arguments` outside of nested functions.
func usesCallBoundary(body *ast.BlockStatement) bool {
	found := false
	var visit func(n ast.Node) bool
	visit = func(n ast.Node) bool {
		if found {
			return false
		}
		switch n := n.(type) {
		case *ast.FunctionDeclaration, *ast.FunctionExpression:
			return false
		case *ast.ReturnStatement:
			found = true
		case *ast.Identifier:
			found = n.Name == "arguments"
		case *ast.MemberExpression:
			// property names are not references
			if !n.Computed {
				ast.Inspect(n.Object, visit)
				return false
			}
		case *ast.Property:
			if !n.Computed {
				ast.Inspect(n.Value, visit)
				return false
			}
		}
		return !found
	}
	ast.Inspect(body, visit)
	return found
}

// endsInOpenIf reports whether s ends with an if statement that has no else
// branch, which would capture a following else.
func endsInOpenIf(s ast.Statement) bool {
	switch s := s.(type) {
	case *ast.IfStatement:
		if s.Alternate == nil {
			return true
		}
		return endsInOpenIf(s.Alternate)
	case *ast.ForStatement:
		return endsInOpenIf(s.Body)
	case *ast.ForInStatement:
		return endsInOpenIf(s.Body)
	case *ast.WhileStatement:
		return endsInOpenIf(s.Body)
	case *ast.LabeledStatement:
		return endsInOpenIf(s.Body)
	}
	return false
}

// containsCall reports whether the member chain of e has a call, which would
// end the callee of a `new` early.
func containsCall(e ast.Expression) bool {
	for {
		switch x := e.(type) {
		case *ast.CallExpression:
			return true
		case *ast.MemberExpression:
			e = x.Object
		default:
			return false
		}
	}
}

// startsAmbiguously reports whether statement text would be read as a block
// or a function declaration.
func startsAmbiguously(text string) bool {
	if len(text) > 0 && text[0] == '{' {
		return true
	}
	const kw = "function"
	if len(text) < len(kw) || text[:len(kw)] != kw {
		return false
	}
	if len(text) == len(kw) {
		return true
	}
	switch text[len(kw)] {
	case '(', '*', ' ':
		return true
	}
	return false
}
