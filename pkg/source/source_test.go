package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain utf-8", "var x;", "var x;"},
		{"utf-8 bom", "\xef\xbb\xbfvar x;", "var x;"},
		{"utf-16le bom", "\xff\xfev\x00a\x00r\x00", "var"},
		{"utf-16be bom", "\xfe\xff\x00v\x00a\x00r", "var"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lib.js")
	if err := os.WriteFile(path, []byte("a;\nb;"), 0o644); err != nil {
		t.Fatal(err)
	}
	sf, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if sf.Name != "lib.js" || sf.DisplayPath() != path || !sf.IsFile() {
		t.Errorf("got %+v", sf)
	}
	if lines := sf.Lines(); len(lines) != 2 || lines[1] != "b;" {
		t.Errorf("Lines() = %q", lines)
	}
	if _, err := ReadFile(path + ".missing"); err == nil {
		t.Errorf("reading a missing file succeeded")
	}
}

func TestSyntheticSources(t *testing.T) {
	for _, sf := range []*SourceFile{NewEvalSource("x"), NewReplSource("x"), NewStdinSource("x")} {
		if sf.IsFile() {
			t.Errorf("%s reported as a file", sf.Name)
		}
		if !strings.HasPrefix(sf.DisplayPath(), "<") {
			t.Errorf("DisplayPath() = %q", sf.DisplayPath())
		}
	}
}
