package errors

import (
	stderrors "errors"
	"io/fs"
	"strings"
	"testing"

	"jspress/pkg/source"
)

func TestDisplayErrors(t *testing.T) {
	src := source.NewSourceFile("app.js", "src/app.js", "var a = 1;\nvar = 2;\n")
	errs := []MinifyError{
		&SyntaxError{Position: Position{Line: 2, Column: 5, Source: src}, Msg: "unexpected ="},
		&ConfigError{Msg: "duplicate operator +"},
	}
	var b strings.Builder
	DisplayErrors(&b, errs)
	want := "Syntax fatal at src/app.js:2:5: unexpected =\n" +
		"  var = 2;\n" +
		"      ^\n\n" +
		"Config warning: duplicate operator +\n"
	if got := b.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestMessages(t *testing.T) {
	tests := []struct {
		err  MinifyError
		want string
	}{
		{&UnsupportedError{Construct: "class declaration"}, "Unsupported Error: class declaration is not supported"},
		{&UnsupportedError{Construct: "arrow function", Msg: "use a function expression"}, "Unsupported Error: arrow function: use a function expression"},
		{&DefectError{Position: Position{Line: 3, Column: 1}, Msg: "unrecognized node kind X"}, "Defect Error at 3:1: unrecognized node kind X"},
		{&ConfigError{Msg: "bad"}, "Config Warning: bad"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestCauses(t *testing.T) {
	serr := (&SyntaxError{Msg: "bad"}).CausedBy(fs.ErrInvalid)
	if !stderrors.Is(serr, fs.ErrInvalid) {
		t.Errorf("SyntaxError does not unwrap to its cause")
	}
	ioErr := &IOError{Path: "a.js", Cause: fs.ErrNotExist}
	if !stderrors.Is(ioErr, fs.ErrNotExist) {
		t.Errorf("IOError does not unwrap to its cause")
	}
}

func TestHasFatal(t *testing.T) {
	if HasFatal([]MinifyError{&DefectError{Msg: "x"}, &ConfigError{Msg: "y"}}) {
		t.Errorf("defects and warnings reported as fatal")
	}
	if !HasFatal([]MinifyError{&DefectError{Msg: "x"}, &IOError{Path: "a"}}) {
		t.Errorf("IO error not reported as fatal")
	}
}
