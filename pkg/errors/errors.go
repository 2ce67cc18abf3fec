package errors

import (
	"fmt"
	"io"
	"strings"
)

// Severity tells whether a diagnostic stops compilation of a unit.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
	SeverityFatal // the unit produced no output
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "fatal"
	}
}

// MinifyError is the interface implemented by all jspress errors and
// diagnostics.
type MinifyError interface {
	error
	Pos() Position
	Kind() string // e.g., "Syntax", "Unsupported", "Defect", "Config", "IO"
	// Message returns the message without position info.
	Message() string
	Severity() Severity
	Unwrap() error
}

// --- Concrete Error Types ---

// SyntaxError is returned when the parser adapter rejects its input.
type SyntaxError struct {
	Position
	Msg   string
	Cause error
}

func (e *SyntaxError) Error() string      { return format("Syntax", e.Position, e.Msg) }
func (e *SyntaxError) Pos() Position      { return e.Position }
func (e *SyntaxError) Kind() string       { return "Syntax" }
func (e *SyntaxError) Message() string    { return e.Msg }
func (e *SyntaxError) Severity() Severity { return SeverityFatal }
func (e *SyntaxError) Unwrap() error      { return e.Cause }
func (e *SyntaxError) CausedBy(cause error) *SyntaxError {
	e.Cause = cause
	return e
}

// UnsupportedError aborts a unit that uses a language form the generator
// does not model. Construct names the offending form.
type UnsupportedError struct {
	Position
	Construct string
	Msg       string
	Cause     error
}

func (e *UnsupportedError) Error() string { return format("Unsupported", e.Position, e.Message()) }
func (e *UnsupportedError) Pos() Position { return e.Position }
func (e *UnsupportedError) Kind() string  { return "Unsupported" }
func (e *UnsupportedError) Message() string {
	if e.Msg == "" {
		return fmt.Sprintf("%s is not supported", e.Construct)
	}
	return fmt.Sprintf("%s: %s", e.Construct, e.Msg)
}
func (e *UnsupportedError) Severity() Severity { return SeverityFatal }
func (e *UnsupportedError) Unwrap() error      { return e.Cause }

// DefectError reports a structural problem found while printing, such as
// an unrecognised node kind or an operator missing from the table. Printing
// carries on after it.
type DefectError struct {
	Position
	Msg string
}

func (e *DefectError) Error() string      { return format("Defect", e.Position, e.Msg) }
func (e *DefectError) Pos() Position      { return e.Position }
func (e *DefectError) Kind() string       { return "Defect" }
func (e *DefectError) Message() string    { return e.Msg }
func (e *DefectError) Severity() Severity { return SeverityError }
func (e *DefectError) Unwrap() error      { return nil }

// ConfigError is a build-time configuration problem, e.g. a duplicate
// operator table entry.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string      { return "Config Warning: " + e.Msg }
func (e *ConfigError) Pos() Position      { return Position{} }
func (e *ConfigError) Kind() string       { return "Config" }
func (e *ConfigError) Message() string    { return e.Msg }
func (e *ConfigError) Severity() Severity { return SeverityWarning }
func (e *ConfigError) Unwrap() error      { return nil }

// IOError wraps file system failures of the driver.
type IOError struct {
	Path  string
	Cause error
}

func (e *IOError) Error() string      { return fmt.Sprintf("IO Error: %s: %v", e.Path, e.Cause) }
func (e *IOError) Pos() Position      { return Position{} }
func (e *IOError) Kind() string       { return "IO" }
func (e *IOError) Message() string    { return fmt.Sprintf("%s: %v", e.Path, e.Cause) }
func (e *IOError) Severity() Severity { return SeverityFatal }
func (e *IOError) Unwrap() error      { return e.Cause }

func format(kind string, pos Position, msg string) string {
	if !pos.IsValid() {
		return fmt.Sprintf("%s Error: %s", kind, msg)
	}
	return fmt.Sprintf("%s Error at %s: %s", kind, pos, msg)
}

// HasFatal reports whether any of errs stops compilation.
func HasFatal(errs []MinifyError) bool {
	for _, err := range errs {
		if err.Severity() == SeverityFatal {
			return true
		}
	}
	return false
}

// --- Error Reporting ---

// DisplayErrors writes a list of errors to w in a user-friendly format,
// including the source line and a position marker when the position is known.
func DisplayErrors(w io.Writer, errs []MinifyError) {
	for _, err := range errs {
		pos := err.Pos()
		kind := err.Kind()
		msg := err.Message()

		if !pos.IsValid() || pos.Source == nil {
			fmt.Fprintf(w, "%s %s: %s\n", kind, err.Severity(), msg)
			continue
		}
		lines := pos.Source.Lines()
		lineIdx := pos.Line - 1
		if lineIdx < 0 || lineIdx >= len(lines) {
			fmt.Fprintf(w, "%s %s at %s: %s\n", kind, err.Severity(), pos, msg)
			continue
		}

		fmt.Fprintf(w, "%s %s at %s: %s\n", kind, err.Severity(), pos, msg)
		fmt.Fprintf(w, "  %s\n", strings.TrimRight(lines[lineIdx], "\r\n\t "))
		col := pos.Column - 1
		if col < 0 {
			col = 0
		}
		fmt.Fprintf(w, "  %s^\n\n", strings.Repeat(" ", col))
	}
}
