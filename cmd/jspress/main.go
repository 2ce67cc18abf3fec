package main

import (
	stderrors "errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"jspress/pkg/driver"
	"jspress/pkg/errors"
	"jspress/pkg/frontend"
	"jspress/pkg/printer"
	"jspress/pkg/source"
)

const historyFile = ".jspress_history"

func main() {
	outFlag := flag.String("o", "", "Output file (default: stdout)")
	noRenameFlag := flag.Bool("no-rename", false, "Keep original identifier names")
	stripFlag := flag.Bool("strip-modules", false, "Inline top-level (function(a){...})(a) wrappers (bundles default to true)")
	moduleFlag := flag.String("module", "", "Export top-level declarations on this namespace object")
	strictFlag := flag.Bool("strict", false, "Keep a single \"use strict\" at the top of the output")

	bundleFlag := flag.Bool("bundle", false, "Bundle all input files into one script")
	nameFlag := flag.String("name", "", "Bundle namespace and file stem")
	versionFlag := flag.String("version", "0.1", "Bundle version")
	baseFlag := flag.String("base", ".", "Directory bundle sources are read from")
	outDirFlag := flag.String("out", ".", "Directory the bundle is written to")

	estreeFlag := flag.Bool("estree", false, "Read an ESTree JSON document instead of JavaScript")
	replFlag := flag.Bool("repl", false, "Minify lines interactively")

	flag.Parse()

	opts := printer.DefaultOptions()
	opts.RenameVariables = !*noRenameFlag
	opts.StripModules = *stripFlag
	opts.ModuleName = *moduleFlag
	opts.DropUseStrict = *strictFlag

	switch {
	case *replFlag:
		os.Exit(runRepl(opts))
	case *bundleFlag:
		if *nameFlag == "" || flag.NArg() == 0 {
			fmt.Fprintf(os.Stderr, "Usage: jspress -bundle -name N [-version V] [-base dir] [-out dir] <a.js> [b.js ...]\n")
			os.Exit(64) // Exit code 64: command line usage error
		}
		bopts := driver.DefaultBundleOptions()
		bopts.Name = *nameFlag
		bopts.Version = *versionFlag
		bopts.BasePath = *baseFlag
		bopts.OutDir = *outDirFlag
		bopts.Sources = flag.Args()
		bopts.RenameVariables = !*noRenameFlag
		bopts.StripModules = bundleStripModules(flag.CommandLine, *stripFlag)
		bopts.Strict = *strictFlag
		path, errs := driver.WriteBundle(bopts)
		finish(errs)
		fmt.Fprintf(os.Stderr, "wrote %s\n", path)
	default:
		if flag.NArg() > 1 {
			fmt.Fprintf(os.Stderr, "Usage: jspress [options] [file.js] or jspress -bundle ... or jspress -repl\n")
			os.Exit(64)
		}
		text, errs := minifyInput(flag.Arg(0), *estreeFlag, opts)
		if *strictFlag && !errors.HasFatal(errs) {
			text = `"use strict";` + text
		}
		finish(errs)
		if err := writeOutput(*outFlag, text); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write '%s': %s\n", *outFlag, err)
			os.Exit(70) // Exit code 70: internal software error
		}
	}
}

// bundleStripModules returns the -strip-modules value for a bundle. Bundles
// inline wrappers unless the flag is given explicitly.
func bundleStripModules(fs *flag.FlagSet, strip bool) bool {
	if flagSet(fs, "strip-modules") {
		return strip
	}
	return driver.DefaultBundleOptions().StripModules
}

// flagSet reports whether the named flag was given on the command line.
func flagSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

// minifyInput minifies path, or standard input when path is empty.
func minifyInput(path string, isESTree bool, opts printer.Options) (string, []errors.MinifyError) {
	if path == "" {
		content, err := source.Decode(os.Stdin)
		if err != nil {
			return "", []errors.MinifyError{&errors.IOError{Path: "<stdin>", Cause: err}}
		}
		if isESTree {
			return driver.MinifyESTree(strings.NewReader(content), opts)
		}
		return driver.Minify(source.NewStdinSource(content), opts)
	}
	if isESTree {
		f, err := os.Open(path)
		if err != nil {
			return "", []errors.MinifyError{&errors.IOError{Path: path, Cause: err}}
		}
		defer f.Close()
		return driver.MinifyESTree(f, opts)
	}
	return driver.MinifyFile(path, "", opts)
}

func writeOutput(path, text string) error {
	if path == "" {
		_, err := fmt.Fprintln(os.Stdout, text)
		return err
	}
	return os.WriteFile(path, []byte(text), 0o644)
}

// finish reports diagnostics and exits when any of them is fatal.
func finish(errs []errors.MinifyError) {
	if len(errs) == 0 {
		return
	}
	errors.DisplayErrors(os.Stderr, errs)
	if errors.HasFatal(errs) {
		os.Exit(70)
	}
}

// runRepl minifies each entered statement. Names stay bound across entries.
func runRepl(opts printer.Options) int {
	fmt.Println("jspress (Ctrl+D to exit)")

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	session := driver.NewSession(opts)
	for {
		code, ok := readStatement(ln)
		if !ok {
			fmt.Println()
			return 0
		}
		if strings.TrimSpace(code) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
		text, errs := session.Minify(code)
		if len(errs) > 0 {
			errors.DisplayErrors(os.Stderr, errs)
		}
		if text != "" {
			fmt.Println(text)
		}
	}
}

// readStatement reads lines until they parse or fail for a reason other
// than ending too early.
func readStatement(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := "> "
		if b.Len() > 0 {
			prompt = ". "
		}
		line, err := ln.Prompt(prompt)
		if stderrors.Is(err, io.EOF) {
			return "", false
		}
		if stderrors.Is(err, liner.ErrPromptAborted) {
			b.Reset()
			continue
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading input: %s\n", err)
			return "", false
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		code := b.String()
		if _, perr := frontend.ParseString(code); perr != nil && frontend.IsIncomplete(perr) {
			continue
		}
		return code, true
	}
}
