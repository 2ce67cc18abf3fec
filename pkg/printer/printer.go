// Package printer turns a syntax tree back into the shortest JavaScript text
// that behaves the same, adding parentheses only where precedence needs them
// and renaming local bindings to short names.
package printer

import (
	"fmt"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"jspress/pkg/ast"
	"jspress/pkg/errors"
	"jspress/pkg/operators"
	"jspress/pkg/output"
	"jspress/pkg/scope"
	"jspress/pkg/source"
)

const debugPrinter = false

func debugPrintf(format string, args ...interface{}) {
	if debugPrinter {
		fmt.Printf(format, args...)
	}
}

// Options configures a Printer.
type Options struct {
	// RenameVariables replaces every local binding with a short name. When
	// false identifiers pass through unchanged and no scopes are tracked.
	RenameVariables bool
	// StripModules inlines top-level wrapper calls such as
	// (function(a){...})(a).
	StripModules bool
	// ModuleName, when set, exports each top-level single declaration as
	// ModuleName.<name>=<short>.
	ModuleName string
	// DropUseStrict omits "use strict" directives.
	DropUseStrict bool
	// Scope is shared by every program printed with it. Nil creates a fresh
	// scope.
	Scope *scope.Scope
	// Table overrides the operator table. Nil uses operators.Default().
	Table *operators.Table
}

// DefaultOptions returns the options of a plain minification run.
func DefaultOptions() Options {
	return Options{RenameVariables: true}
}

// Printer prints programs. Programs printed by the same Printer share one
// scope and one name counter, so a bundle of files stays collision free.
type Printer struct {
	opts  Options
	table *operators.Table
	scope *scope.Scope // nil when renaming is off
	out   *output.Sink

	src      *source.SourceFile
	errs     []errors.MinifyError
	reported map[string]bool
	pending  []errors.MinifyError // table warnings, reported with the first unit

	prepared map[*ast.Program]bool
	wrappers map[ast.Statement]*ast.FunctionExpression // nil: wrapper kept as a call
	topNames map[string]bool                           // names declared by the program region

	dry    bool            // discovery pass: output is thrown away
	misses map[string]bool // names that resolved to no binding during a dry pass
}

// abort unwinds a unit after a hard-stop error.
type abort struct {
	err errors.MinifyError
}

// New creates a printer.
func New(opts Options) *Printer {
	p := &Printer{
		opts:     opts,
		table:    opts.Table,
		prepared: make(map[*ast.Program]bool),
		wrappers: make(map[ast.Statement]*ast.FunctionExpression),
		topNames: make(map[string]bool),
	}
	if p.table == nil {
		p.table = operators.Default()
	}
	p.pending = p.table.Warnings()
	if opts.RenameVariables {
		p.scope = opts.Scope
		if p.scope == nil {
			p.scope = scope.New()
		}
	}
	return p
}

// Print prints one program. See PrintSource.
func Print(prog *ast.Program, opts Options) (string, []errors.MinifyError) {
	return New(opts).Print(prog)
}

// Scope returns the scope the printer renames through, or nil when renaming
// is disabled.
func (p *Printer) Scope() *scope.Scope { return p.scope }

// Prepare readies a group of programs that are printed one after another
// into the same output. Identifiers none of them declare are kept out of the
// short-name sequence, and the top-level declarations of every program are
// bound up front so earlier programs can refer to later ones. Which wrapper
// calls get inlined is decided here, once for the whole group.
func (p *Printer) Prepare(progs ...*ast.Program) {
	p.planWrappers(progs)
	if p.scope == nil {
		for _, prog := range progs {
			p.prepared[prog] = true
		}
		return
	}
	free := p.freeNames(progs)
	debugPrintf("[Prepare] %d programs, free names %v\n", len(progs), free)
	p.scope.Namer().Avoid(free...)
	for _, prog := range progs {
		p.hoistProgram(prog)
		p.prepared[prog] = true
	}
}

// freeNames runs the programs through a throwaway printer and returns the
// names that resolved to no binding.
func (p *Printer) freeNames(progs []*ast.Program) []string {
	opts := p.opts
	opts.Scope = scope.New()
	dry := New(opts)
	dry.table = p.table
	dry.wrappers = p.wrappers
	dry.dry = true
	dry.misses = make(map[string]bool)
	for _, prog := range progs {
		dry.hoistProgram(prog)
	}
	for _, prog := range progs {
		dry.Print(prog)
	}
	names := make([]string, 0, len(dry.misses))
	for name := range dry.misses {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Print prints prog and returns its text with the diagnostics raised.
func (p *Printer) Print(prog *ast.Program) (string, []errors.MinifyError) {
	return p.PrintSource(prog, nil)
}

// PrintSource prints prog, attributing diagnostics to src. A hard-stop error
// yields empty text and a fatal diagnostic.
func (p *Printer) PrintSource(prog *ast.Program, src *source.SourceFile) (text string, errs []errors.MinifyError) {
	if !p.dry && !p.prepared[prog] {
		p.Prepare(prog)
	}
	delete(p.prepared, prog)

	p.out = output.NewSink()
	p.src = src
	p.errs = nil
	if !p.dry {
		p.errs = append(p.errs, p.pending...)
		p.pending = nil
	}
	p.reported = make(map[string]bool)
	depth := 0
	if p.scope != nil {
		depth = p.scope.Depth()
	}

	defer func() {
		if r := recover(); r != nil {
			a, ok := r.(abort)
			if !ok {
				panic(r)
			}
			if p.scope != nil {
				for p.scope.Depth() > depth {
					p.scope.Pop()
				}
			}
			text = ""
			errs = append(p.errs, a.err)
		}
	}()

	p.program(prog)
	return p.out.String(), p.errs
}

// --- diagnostics ---

func (p *Printer) pos() errors.Position {
	return errors.InFile(p.src)
}

func (p *Printer) defect(msg string) {
	if p.reported[msg] {
		return
	}
	p.reported[msg] = true
	debugPrintf("[Defect] %s\n", msg)
	p.errs = append(p.errs, &errors.DefectError{Position: p.pos(), Msg: msg})
}

func (p *Printer) unsupported(construct, msg string) {
	panic(abort{&errors.UnsupportedError{Position: p.pos(), Construct: construct, Msg: msg}})
}

// op looks up the descriptor of an operator token. A missing entry is a
// defect; the returned descriptor then forces parentheses.
func (p *Printer) op(token string) operators.Descriptor {
	d, ok := p.table.Lookup(token)
	if !ok {
		p.defect(fmt.Sprintf("unrecognized operator %s", token))
		return operators.Descriptor{Precedence: -1}
	}
	return d
}

// suggestKind finds the known node kind closest to an unrecognised name.
func suggestKind(name string) string {
	ranks := fuzzy.RankFindFold(name, ast.KindNames())
	if len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}
	best, bestDist := "", -1
	for _, kind := range ast.KindNames() {
		if !fuzzy.MatchFold(kind, name) {
			continue
		}
		if d := fuzzy.LevenshteinDistance(kind, name); bestDist < 0 || d < bestDist {
			best, bestDist = kind, d
		}
	}
	return best
}

// unknown reports an unrecognised node and prints whatever children it has.
func (p *Printer) unknown(u *ast.Unknown) {
	msg := fmt.Sprintf("unrecognized node kind %s", u.Type)
	if hint := suggestKind(u.Type); hint != "" {
		msg += fmt.Sprintf(" (did you mean %s?)", hint)
	}
	p.defect(msg)
	for _, c := range u.Children {
		p.visitGeneric(c)
	}
}

func (p *Printer) visitGeneric(n ast.Node) {
	switch n := n.(type) {
	case ast.Statement:
		p.statement(n)
	case ast.Expression:
		p.expression(n, opContext{})
	default:
		for _, c := range ast.Children(n) {
			p.visitGeneric(c)
		}
	}
}

// --- names ---

// lookup maps a referenced name to its short name.
func (p *Printer) lookup(name string) string {
	if p.scope == nil {
		return name
	}
	short, ok := p.scope.Resolve(name)
	if !ok && p.dry {
		p.misses[name] = true
	}
	return short
}

// declare binds name in the current frame unless it is already bound there.
func (p *Printer) declare(name string) string {
	if p.scope == nil {
		return name
	}
	if short, ok := p.scope.Declared(name); ok {
		return short
	}
	short := p.scope.Register(name)
	debugPrintf("[Declare] %s -> %s (depth %d)\n", name, short, p.scope.Depth())
	return short
}

func (p *Printer) push() {
	if p.scope != nil {
		p.scope.Push()
	}
}

func (p *Printer) pop() {
	if p.scope != nil {
		p.scope.Pop()
	}
}

func (p *Printer) write(s string) {
	p.out.WriteString(s)
}
