// Package frontend parses JavaScript source text into the syntax tree the
// printer consumes. Parsing is delegated to tdewolff/parse; this package
// only maps its nodes onto pkg/ast and rejects forms the printer does not
// model.
package frontend

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/js"

	"jspress/pkg/ast"
	"jspress/pkg/errors"
	"jspress/pkg/source"
)

const debugFrontend = false

func debugPrintf(format string, args ...interface{}) {
	if debugFrontend {
		fmt.Printf(format, args...)
	}
}

// Parse parses src. The returned error is a *errors.SyntaxError when the
// text is not valid JavaScript and a *errors.UnsupportedError when it uses a
// form the printer cannot reproduce.
func Parse(src *source.SourceFile) (*ast.Program, errors.MinifyError) {
	tree, err := js.Parse(parse.NewInputString(src.Content), js.Options{})
	if err != nil {
		return nil, syntaxError(src, err)
	}
	debugPrintf("[Parse] %s: %d top-level statements\n", src.DisplayPath(), len(tree.List))

	c := &converter{src: src}
	prog, uerr := c.program(tree)
	if uerr != nil {
		return nil, uerr
	}
	return prog, nil
}

// ParseString parses code held in memory.
func ParseString(code string) (*ast.Program, errors.MinifyError) {
	return Parse(source.NewEvalSource(code))
}

func syntaxError(src *source.SourceFile, err error) *errors.SyntaxError {
	serr := &errors.SyntaxError{
		Position: errors.InFile(src),
		Msg:      err.Error(),
	}
	var perr *parse.Error
	if stderrors.As(err, &perr) {
		serr.Position.Line = perr.Line
		serr.Position.Column = perr.Column
		serr.Msg = perr.Message
	}
	return serr.CausedBy(err)
}

// bailout carries an unsupported construct out of the conversion.
type bailout struct {
	err *errors.UnsupportedError
}

type converter struct {
	src *source.SourceFile
}

func (c *converter) program(tree *js.AST) (prog *ast.Program, err *errors.UnsupportedError) {
	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			prog, err = nil, b.err
		}
	}()
	return &ast.Program{Body: c.statements(tree.List)}, nil
}

func (c *converter) unsupported(construct string) {
	panic(bailout{&errors.UnsupportedError{Position: errors.InFile(c.src), Construct: construct}})
}

// IsIncomplete reports whether err was caused by input ending in the middle
// of a statement, so more text may complete it.
func IsIncomplete(err errors.MinifyError) bool {
	serr, ok := err.(*errors.SyntaxError)
	if !ok {
		return false
	}
	return strings.HasSuffix(serr.Msg, " EOF") || strings.Contains(serr.Msg, " EOF in ")
}
