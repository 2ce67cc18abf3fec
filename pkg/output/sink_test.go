package output

import "testing"

func TestNeedsSpace(t *testing.T) {
	tests := []struct {
		last byte
		next string
		want bool
	}{
		{0, "var", false},
		{'r', "x", true},
		{'n', "typeof", true},
		{'1', "in", true},
		{'$', "_", true},
		{'=', "x", false},
		{'x', "=", false},
		{'+', "+x", true},
		{'+', "-x", false},
		{'-', "-", true},
		{'/', "/re/", true},
		{'<', "!--", true},
		{')', "x", false},
		{'e', "", false},
	}
	for _, tt := range tests {
		if got := NeedsSpace(tt.last, tt.next); got != tt.want {
			t.Errorf("NeedsSpace(%q, %q) = %v, want %v", tt.last, tt.next, got, tt.want)
		}
	}
}

func TestWriteInsertsSeparators(t *testing.T) {
	s := NewSink()
	for _, tok := range []string{"var", "x", "=", "typeof", "y", ";", "a", "+", "+b"} {
		s.WriteString(tok)
	}
	if got, want := s.String(), "var x=typeof y;a+ +b"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCaptureNesting(t *testing.T) {
	s := NewSink()
	s.WriteString("a")
	s.Capture()
	s.WriteString("b")
	s.Capture()
	s.WriteString("c")
	if s.Depth() != 2 {
		t.Fatalf("Depth() = %d, want 2", s.Depth())
	}
	if got := s.Release(); got != "c" {
		t.Errorf("inner capture = %q, want c", got)
	}
	if got := s.Release(); got != "b" {
		t.Errorf("outer capture = %q, want b", got)
	}
	if got := s.String(); got != "a" {
		t.Errorf("base buffer = %q, want a", got)
	}
	// the last byte of the base buffer is back in effect
	s.WriteString("x")
	if got := s.String(); got != "a x" {
		t.Errorf("after release = %q, want \"a x\"", got)
	}
}

func TestCaptureStartsFresh(t *testing.T) {
	s := NewSink()
	s.WriteString("return")
	s.Capture()
	s.WriteString("x")
	if got := s.Release(); got != "x" {
		t.Errorf("capture = %q, want x", got)
	}
}

func TestWordAfterRegExp(t *testing.T) {
	tests := []struct {
		name string
		re   string
		next string
		want string
	}{
		{"keyword after bare regexp", "/a/", "instanceof", "/a/ instanceof"},
		{"in after bare regexp", "/a/", "in", "/a/ in"},
		{"keyword after flags", "/a/g", "in", "/a/g in"},
		{"punctuation after regexp", "/a/", ".", "/a/."},
		{"operator after regexp", "/a/", "+", "/a/+"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSink()
			s.WriteString("x=")
			s.WriteRegExp(tt.re)
			s.WriteString(tt.next)
			if got := s.String(); got != "x="+tt.want {
				t.Errorf("got %q, want %q", got, "x="+tt.want)
			}
		})
	}
}

func TestDivisionIsNotRegExp(t *testing.T) {
	s := NewSink()
	for _, tok := range []string{"a", "/", "b", "in", "o"} {
		s.WriteString(tok)
	}
	want := "a/b in o"
	if got := s.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if s.Last() != 'o' || s.Len() != len(want) {
		t.Errorf("Last() = %q, Len() = %d", s.Last(), s.Len())
	}
}

func TestCaptureKeepsRegExpState(t *testing.T) {
	s := NewSink()
	s.WriteRegExp("/a/")
	s.Capture()
	s.WriteString("in")
	if got := s.Release(); got != "in" {
		t.Errorf("capture = %q, want in", got)
	}
	s.WriteString("instanceof")
	if got, want := s.String(), "/a/ instanceof"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestReleaseWithoutCapturePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Release without Capture did not panic")
		}
	}()
	NewSink().Release()
}
