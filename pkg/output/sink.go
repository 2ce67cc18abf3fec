// Package output provides the append-only text accumulator the printer
// writes through.
package output

import (
	"strings"
	"unicode/utf8"
)

// Sink accumulates printed text. Every write is checked against the last
// byte already written so that two tokens that would fuse when re-read
// (`a`+`in`, `+`+`+x`, `/`+`/re/`, `/re/`+`in`) are separated by a single
// space.
type Sink struct {
	buf   strings.Builder
	last  byte
	regex bool // the active buffer ends with a regular expression literal
	stack []strings.Builder
	lasts []byte
	regs  []bool
}

// NewSink creates an empty sink.
func NewSink() *Sink {
	return &Sink{}
}

// WriteString appends s, inserting a separating space when needed.
func (s *Sink) WriteString(str string) {
	if str == "" {
		return
	}
	if NeedsSpace(s.last, str) || s.regex && isWordByte(str[0]) {
		s.buf.WriteByte(' ')
	}
	s.buf.WriteString(str)
	s.last = str[len(str)-1]
	s.regex = false
}

// WriteRegExp appends a regular expression literal. A word written right
// after it is separated, since it would otherwise be read as flags.
func (s *Sink) WriteRegExp(raw string) {
	s.WriteString(raw)
	s.regex = raw != ""
}

// Last returns the last byte written to the active buffer, or 0.
func (s *Sink) Last() byte { return s.last }

// Len returns the length of the active buffer.
func (s *Sink) Len() int { return s.buf.Len() }

// String returns the text of the active buffer.
func (s *Sink) String() string { return s.buf.String() }

// Capture redirects subsequent writes into a fresh, empty buffer until the
// matching Release. Captures nest.
func (s *Sink) Capture() {
	s.stack = append(s.stack, s.buf)
	s.lasts = append(s.lasts, s.last)
	s.regs = append(s.regs, s.regex)
	s.buf = strings.Builder{}
	s.last = 0
	s.regex = false
}

// Release ends the innermost capture, restores the previous buffer and
// returns the captured text. The text is not appended anywhere.
func (s *Sink) Release() string {
	if len(s.stack) == 0 {
		panic("output: release without matching capture")
	}
	text := s.buf.String()
	n := len(s.stack) - 1
	s.buf = s.stack[n]
	s.last = s.lasts[n]
	s.regex = s.regs[n]
	s.stack = s.stack[:n]
	s.lasts = s.lasts[:n]
	s.regs = s.regs[:n]
	return text
}

// Depth returns the number of active captures.
func (s *Sink) Depth() int { return len(s.stack) }

// NeedsSpace reports whether next must be separated from a preceding byte
// last to be read back as separate tokens.
func NeedsSpace(last byte, next string) bool {
	if last == 0 || next == "" {
		return false
	}
	first := next[0]
	switch {
	case isWordByte(last) && isWordByte(first):
		return true
	case last == '+' && first == '+',
		last == '-' && first == '-',
		last == '/' && first == '/',
		last == '<' && first == '!':
		return true
	}
	return false
}

func isWordByte(c byte) bool {
	return c == '_' || c == '$' || c == '\\' ||
		'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' ||
		c >= utf8.RuneSelf
}
