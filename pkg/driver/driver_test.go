package driver

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"jspress/pkg/errors"
	"jspress/pkg/printer"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestBundle(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.js": "var first = helper();",
		"b.js": "'use strict';\n(function (window) {\n  function helper() { return window; }\n})(window);",
	})

	opts := DefaultBundleOptions()
	opts.Name = "lib"
	opts.BasePath = dir
	opts.Sources = []string{"a.js", "b.js"}
	opts.Strict = true

	got, errs := Bundle(opts)
	if len(errs) > 0 {
		t.Fatalf("unexpected diagnostics: %v", errs)
	}
	want := `(function(exports){"use strict";var lib=exports.lib={};` +
		`var a=b();lib.first=a;function b(){return window;}` +
		`})(typeof window!=="undefined"?window:this);`
	if got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
}

func TestBundleNamesNeverRepeat(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.js": "function f(x) { return x; }",
		"b.js": "function g(x) { return x; }",
	})
	opts := DefaultBundleOptions()
	opts.Name = "lib"
	opts.BasePath = dir
	opts.Sources = []string{"a.js", "b.js"}

	got, errs := Bundle(opts)
	if len(errs) > 0 {
		t.Fatalf("unexpected diagnostics: %v", errs)
	}
	if !strings.Contains(got, "function a(c){return c;}function b(d){return d;}") {
		t.Errorf("got %s", got)
	}
}

func TestBundleEmbedsResources(t *testing.T) {
	dir := t.TempDir()
	png := []byte{0x89, 'P', 'N', 'G'}
	writeFiles(t, dir, map[string]string{
		"main.js":     "var res = {image: {set: function () {}}, file: {set: function () {}}};\n//!EMBED res: logo.png, shader.glsl\n//!IGNORED whatever\n",
		"logo.png":    string(png),
		"shader.glsl": "void main(){}",
	})
	opts := DefaultBundleOptions()
	opts.Name = "lib"
	opts.BasePath = dir
	opts.Sources = []string{"main.js"}
	opts.RenameVariables = false

	got, errs := Bundle(opts)
	if len(errs) > 0 {
		t.Fatalf("unexpected diagnostics: %v", errs)
	}
	image := `res.image.set("logo.png",(function(){var i=new Image();i.src="data:image/png;base64,` +
		base64.StdEncoding.EncodeToString(png) + `";return i;})());`
	file := `res.file.set("shader.glsl",atob("` + base64.StdEncoding.EncodeToString([]byte("void main(){}")) + `"));`
	if !strings.Contains(got, image) {
		t.Errorf("image registration missing:\n%s", got)
	}
	if !strings.Contains(got, file) {
		t.Errorf("file registration missing:\n%s", got)
	}
	if strings.Contains(got, "IGNORED") {
		t.Errorf("unknown directive left in output")
	}
}

func TestBundleErrors(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"bad.js":   "var = ;",
		"embed.js": "//!EMBED res: missing.png\n",
	})
	tests := []struct {
		name    string
		sources []string
		kind    string
	}{
		{"missing source", []string{"nope.js"}, "IO"},
		{"syntax error", []string{"bad.js"}, "Syntax"},
		{"missing resource", []string{"embed.js"}, "IO"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultBundleOptions()
			opts.Name = "lib"
			opts.BasePath = dir
			opts.Sources = tt.sources
			got, errs := Bundle(opts)
			if got != "" {
				t.Errorf("got output %q", got)
			}
			if !errors.HasFatal(errs) {
				t.Fatalf("expected a fatal diagnostic, got %v", errs)
			}
			if errs[len(errs)-1].Kind() != tt.kind {
				t.Errorf("kind = %s, want %s", errs[len(errs)-1].Kind(), tt.kind)
			}
		})
	}
}

func TestWriteBundle(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.js": "var x = 1;"})
	opts := DefaultBundleOptions()
	opts.Name = "lib"
	opts.Version = "1.2"
	opts.BasePath = dir
	opts.OutDir = filepath.Join(dir, "dist")
	opts.Sources = []string{"a.js"}

	path, errs := WriteBundle(opts)
	if len(errs) > 0 {
		t.Fatalf("unexpected diagnostics: %v", errs)
	}
	if want := filepath.Join(dir, "dist", "lib-1.2.js"); path != want {
		t.Errorf("path = %s, want %s", path, want)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "var a=1;lib.x=a;") {
		t.Errorf("written bundle: %s", data)
	}
}

func TestMinifyFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.js")
	out := filepath.Join(dir, "out.js")
	writeFiles(t, dir, map[string]string{"in.js": "\ufeffvar answer = 40 + 2;"})

	text, errs := MinifyFile(in, out, printer.DefaultOptions())
	if len(errs) > 0 {
		t.Fatalf("unexpected diagnostics: %v", errs)
	}
	if text != "var a=40+2;" {
		t.Errorf("text = %q", text)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != text {
		t.Errorf("file = %q", data)
	}
}

func TestMinifyESTree(t *testing.T) {
	doc := `{"type":"Program","body":[{"type":"ExpressionStatement","expression":
		{"type":"CallExpression","callee":{"type":"Identifier","name":"f"},"arguments":[
			{"type":"BinaryExpression","operator":"*","left":
				{"type":"BinaryExpression","operator":"+","left":{"type":"Literal","value":1},"right":{"type":"Literal","value":2}},
				"right":{"type":"Literal","value":3}}]}}]}`
	got, errs := MinifyESTree(strings.NewReader(doc), printer.DefaultOptions())
	if len(errs) > 0 {
		t.Fatalf("unexpected diagnostics: %v", errs)
	}
	if got != "f((1+2)*3);" {
		t.Errorf("got %s", got)
	}
}

func TestMinifyESTreeRejectsMissingNames(t *testing.T) {
	doc := `{"type":"Program","body":[{"type":"VariableDeclaration","kind":"var","declarations":[
		{"type":"VariableDeclarator","init":{"type":"Literal","value":1}}]}]}`
	got, errs := MinifyESTree(strings.NewReader(doc), printer.DefaultOptions())
	if got != "" {
		t.Errorf("got output %q", got)
	}
	if len(errs) != 1 || errs[0].Kind() != "Syntax" {
		t.Fatalf("diagnostics = %v, want one syntax error", errs)
	}
	if !strings.Contains(errs[0].Message(), "VariableDeclarator id is missing") {
		t.Errorf("message = %q", errs[0].Message())
	}
}

func TestSessionKeepsNames(t *testing.T) {
	s := NewSession(printer.DefaultOptions())
	inputs := []struct {
		code string
		want string
	}{
		{"var total = 0;", "var a=0;"},
		{"function add(n) { total += n; }", "function b(c){a+=c;}"},
		{"add(1);", "b(1);"},
	}
	for _, in := range inputs {
		got, errs := s.Minify(in.code)
		if len(errs) > 0 {
			t.Fatalf("%q: unexpected diagnostics: %v", in.code, errs)
		}
		if got != in.want {
			t.Errorf("%q: got %s, want %s", in.code, got, in.want)
		}
	}
}
