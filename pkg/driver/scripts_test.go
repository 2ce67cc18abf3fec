package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dlclark/regexp2"

	"jspress/pkg/printer"
	"jspress/pkg/source"
)

// Expectation is the expected outcome of a script.
type Expectation struct {
	Output string // exact minified text
	Error  string // substring of some diagnostic; set instead of Output
	Flags  []string
}

var expectPattern = regexp2.MustCompile(`^//\s*(expect|expect_error|flags):\s*(.*)$`, regexp2.Multiline)

// parseExpectation reads the header comments of a script:
//
//	// flags: strip-modules, module=NS, no-rename
//	// expect: minified output
//	// expect_error: message
func parseExpectation(content string) (*Expectation, error) {
	exp := &Expectation{}
	found := false
	m, err := expectPattern.FindStringMatch(content)
	for ; m != nil && err == nil; m, err = expectPattern.FindNextMatch(m) {
		value := strings.TrimSpace(m.GroupByNumber(2).String())
		switch m.GroupByNumber(1).String() {
		case "expect":
			exp.Output, found = value, true
		case "expect_error":
			exp.Error, found = value, true
		case "flags":
			for _, f := range strings.Split(value, ",") {
				exp.Flags = append(exp.Flags, strings.TrimSpace(f))
			}
		}
	}
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("no expectation comment found (e.g., // expect: output)")
	}
	return exp, nil
}

func scriptOptions(flags []string) (printer.Options, error) {
	opts := printer.DefaultOptions()
	for _, f := range flags {
		switch {
		case f == "strip-modules":
			opts.StripModules = true
		case f == "no-rename":
			opts.RenameVariables = false
		case strings.HasPrefix(f, "module="):
			opts.ModuleName = strings.TrimPrefix(f, "module=")
		default:
			return opts, fmt.Errorf("unknown flag %q", f)
		}
	}
	return opts, nil
}

func TestScripts(t *testing.T) {
	scriptDir := filepath.Join("testdata", "scripts")
	entries, err := os.ReadDir(scriptDir)
	if err != nil {
		t.Fatalf("Failed to read script directory %q: %v", scriptDir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".js") {
			continue
		}
		scriptPath := filepath.Join(scriptDir, entry.Name())
		t.Run(entry.Name(), func(t *testing.T) {
			src, err := source.ReadFile(scriptPath)
			if err != nil {
				t.Fatalf("Failed to read script %q: %v", scriptPath, err)
			}
			exp, err := parseExpectation(src.Content)
			if err != nil {
				t.Skipf("Failed to parse expectation in %q: %v", scriptPath, err)
			}
			opts, err := scriptOptions(exp.Flags)
			if err != nil {
				t.Fatal(err)
			}

			got, errs := Minify(src, opts)

			if exp.Error != "" {
				var all strings.Builder
				for _, e := range errs {
					all.WriteString(e.Error() + "\n")
				}
				if !strings.Contains(all.String(), exp.Error) {
					t.Errorf("Expected an error containing %q, got:\n%s", exp.Error, all.String())
				}
				return
			}
			if len(errs) > 0 {
				t.Fatalf("Unexpected diagnostics: %v", errs)
			}
			if got != exp.Output {
				t.Errorf("Output mismatch\nexpected: %s\ngot:      %s", exp.Output, got)
			}
		})
	}
}
