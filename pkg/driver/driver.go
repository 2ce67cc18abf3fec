// Package driver runs the minifier over files: single-file minification,
// multi-file bundles sharing one naming scope, ESTree input and persistent
// interactive sessions.
package driver

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"jspress/pkg/ast"
	"jspress/pkg/errors"
	"jspress/pkg/estree"
	"jspress/pkg/frontend"
	"jspress/pkg/printer"
	"jspress/pkg/source"
)

const debugDriver = false

func debugPrintf(format string, args ...interface{}) {
	if debugDriver {
		fmt.Printf(format, args...)
	}
}

// BundleOptions describes one bundle build.
type BundleOptions struct {
	Name     string   // namespace object the bundle exports, also the file stem
	Version  string   // appended to the output file name
	BasePath string   // directory the sources and embedded resources live in
	OutDir   string   // directory WriteBundle writes to
	Sources  []string // file names relative to BasePath, in output order

	StripModules    bool
	RenameVariables bool
	Strict          bool // emit a single "use strict" for the whole bundle
}

// DefaultBundleOptions returns the settings of a release build.
func DefaultBundleOptions() BundleOptions {
	return BundleOptions{
		Version:         "0.1",
		BasePath:        ".",
		OutDir:          ".",
		StripModules:    true,
		RenameVariables: true,
	}
}

// Bundle minifies every source into one script that registers the bundle
// namespace on the global object. All sources share one scope, so short
// names never repeat across files and top-level names may be used before
// the file declaring them.
func Bundle(opts BundleOptions) (string, []errors.MinifyError) {
	var errs []errors.MinifyError
	name := opts.Name
	if name == "" {
		name = "bundle"
		errs = append(errs, &errors.ConfigError{Msg: "bundle has no name, using \"bundle\""})
	}

	srcs := make([]*source.SourceFile, 0, len(opts.Sources))
	progs := make([]*ast.Program, 0, len(opts.Sources))
	for _, file := range opts.Sources {
		path := filepath.Join(opts.BasePath, file)
		debugPrintf("[Bundle] reading %s\n", path)
		src, err := source.ReadFile(path)
		if err != nil {
			return "", append(errs, &errors.IOError{Path: path, Cause: err})
		}
		src, dirErrs := expandDirectives(src, opts.BasePath)
		errs = append(errs, dirErrs...)
		prog, perr := frontend.Parse(src)
		if perr != nil {
			errs = append(errs, perr)
			continue
		}
		srcs = append(srcs, src)
		progs = append(progs, prog)
	}
	if errors.HasFatal(errs) {
		return "", errs
	}

	p := printer.New(printer.Options{
		RenameVariables: opts.RenameVariables,
		StripModules:    opts.StripModules,
		ModuleName:      name,
		DropUseStrict:   true,
	})
	if s := p.Scope(); s != nil {
		s.Namer().Avoid(name, "exports")
	}
	p.Prepare(progs...)

	var b strings.Builder
	b.WriteString("(function(exports){")
	if opts.Strict {
		b.WriteString(`"use strict";`)
	}
	fmt.Fprintf(&b, "var %s=exports.%s={};", name, name)
	for i, prog := range progs {
		text, printErrs := p.PrintSource(prog, srcs[i])
		errs = append(errs, printErrs...)
		b.WriteString(text)
	}
	b.WriteString(`})(typeof window!=="undefined"?window:this);`)
	if errors.HasFatal(errs) {
		return "", errs
	}
	return b.String(), errs
}

// OutputPath returns the file WriteBundle writes for opts.
func OutputPath(opts BundleOptions) string {
	return filepath.Join(opts.OutDir, fmt.Sprintf("%s-%s.js", opts.Name, opts.Version))
}

// WriteBundle builds the bundle and writes it to OutputPath(opts). Nothing
// is written when a fatal error occurs.
func WriteBundle(opts BundleOptions) (string, []errors.MinifyError) {
	text, errs := Bundle(opts)
	if errors.HasFatal(errs) {
		return "", errs
	}
	path := OutputPath(opts)
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return "", append(errs, &errors.IOError{Path: opts.OutDir, Cause: err})
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", append(errs, &errors.IOError{Path: path, Cause: err})
	}
	return path, errs
}

// Minify parses and prints one source.
func Minify(src *source.SourceFile, opts printer.Options) (string, []errors.MinifyError) {
	prog, err := frontend.Parse(src)
	if err != nil {
		return "", []errors.MinifyError{err}
	}
	return printer.New(opts).PrintSource(prog, src)
}

// MinifyFile minifies the file at in. The result is written to out, or
// returned only when out is empty.
func MinifyFile(in, out string, opts printer.Options) (string, []errors.MinifyError) {
	src, err := source.ReadFile(in)
	if err != nil {
		return "", []errors.MinifyError{&errors.IOError{Path: in, Cause: err}}
	}
	text, errs := Minify(src, opts)
	if errors.HasFatal(errs) || out == "" {
		return text, errs
	}
	if err := os.WriteFile(out, []byte(text), 0o644); err != nil {
		errs = append(errs, &errors.IOError{Path: out, Cause: err})
	}
	return text, errs
}

// MinifyESTree prints an ESTree JSON document read from r.
func MinifyESTree(r io.Reader, opts printer.Options) (string, []errors.MinifyError) {
	prog, err := estree.Decode(r)
	if err != nil {
		return "", []errors.MinifyError{err}
	}
	return printer.New(opts).Print(prog)
}

// Session minifies a sequence of inputs through one printer, so names
// declared by earlier inputs keep their short names in later ones.
type Session struct {
	printer *printer.Printer
}

// NewSession creates a session.
func NewSession(opts printer.Options) *Session {
	return &Session{printer: printer.New(opts)}
}

// Minify prints code in the session's scope.
func (s *Session) Minify(code string) (string, []errors.MinifyError) {
	src := source.NewReplSource(code)
	prog, err := frontend.Parse(src)
	if err != nil {
		return "", []errors.MinifyError{err}
	}
	return s.printer.PrintSource(prog, src)
}
