// Package lint orchestrates one run: scan the configure script, check every
// discovered macro, recursively re-scan nested arguments, then filter the
// accumulated diagnostics through the suppression directives.
package lint

import (
	"errors"

	"atlint/internal/diag"
	"atlint/internal/rules"
	"atlint/internal/scanner"
	"atlint/internal/source"
	"atlint/internal/suppress"
)

const defaultMaxDiagnostics = 100

// Options configures one lint run.
type Options struct {
	// HasAutomake adds AM_INIT_AUTOMAKE to the required-macro set.
	HasAutomake bool
	// AutomakePath runs the companion Makefile.am pass when non-empty.
	AutomakePath string
	// DeprecatedScriptName emits a global advisory about configure.in.
	DeprecatedScriptName bool
	// ExtraRequired holds additional required macro names from project config.
	ExtraRequired []string
	// MaxDiagnostics caps the diagnostic accumulator; 0 means the default.
	MaxDiagnostics int
}

// Result carries the outcome of one run. When Fatal is true the Bag holds
// exactly the one fatal diagnostic and nothing else.
type Result struct {
	FileSet *source.FileSet
	File    *source.File
	Bag     *diag.Bag
	Fatal   bool
}

// LintFile loads a configure script from disk and lints it.
func LintFile(path string, opts Options) (*Result, error) {
	fileSet := source.NewFileSet()
	fileID, err := fileSet.Load(path)
	if err != nil {
		return nil, err
	}
	return lintLoaded(fileSet, fileSet.Get(fileID), opts), nil
}

// LintSource lints in-memory content under the given name (tests, stdin).
func LintSource(name string, content []byte, opts Options) *Result {
	fileSet := source.NewFileSet()
	fileID := fileSet.AddVirtual(name, content)
	return lintLoaded(fileSet, fileSet.Get(fileID), opts)
}

func lintLoaded(fileSet *source.FileSet, file *source.File, opts Options) *Result {
	maxDiagnostics := opts.MaxDiagnostics
	if maxDiagnostics <= 0 {
		maxDiagnostics = defaultMaxDiagnostics
	}
	bag := diag.NewBag(maxDiagnostics)
	reporter := diag.BagReporter{Bag: bag}
	scanOpts := scanner.Options{Reporter: reporter}
	engine := rules.NewEngine(reporter, rules.NewRequiredSet(opts.HasAutomake, opts.ExtraRequired))

	if opts.DeprecatedScriptName {
		reporter.Report(diag.RunDeprecatedFilename, diag.SevWarning, source.Pos{},
			" scripts named 'configure.in' are deprecated; rename to 'configure.ac'")
	}

	var directives []scanner.Directive

	// checkLevel runs the rule engine on one scanning level, then recurses
	// into every argument. A forbidden macro anywhere short-circuits the
	// entire recursion.
	var checkLevel func(macros []scanner.Macro) error
	checkLevel = func(macros []scanner.Macro) error {
		if len(macros) == 0 {
			return nil
		}
		if err := engine.Check(macros); err != nil {
			return err
		}
		for i := range macros {
			m := &macros[i]
			for j := range m.Args {
				text, anchor := stripQuotes(m.Args[j], m.ArgPos[j])
				nested, dirs := scanner.Scan([]byte(text), anchor, scanOpts)
				directives = append(directives, dirs...)
				if err := checkLevel(nested); err != nil {
					return err
				}
			}
		}
		return nil
	}

	macros, dirs := scanner.Scan(file.Content, source.Pos{Line: 1, Col: 1}, scanOpts)
	directives = append(directives, dirs...)

	err := checkLevel(macros)
	if errors.Is(err, rules.ErrForbiddenMacro) {
		// The fatal diagnostic is the sole output of the run.
		bag.Replace([]diag.Diagnostic{*engine.Fatal()})
		return &Result{FileSet: fileSet, File: file, Bag: bag, Fatal: true}
	}

	engine.Finish()
	bag.Replace(suppress.Apply(bag.Items(), directives))

	if opts.AutomakePath != "" {
		// An unreadable companion file skips the pass; the configure script's
		// own diagnostics still stand.
		if amID, loadErr := fileSet.Load(opts.AutomakePath); loadErr == nil {
			LintAutomake(fileSet.Get(amID), bag)
		}
	}
	return &Result{FileSet: fileSet, File: file, Bag: bag}
}

// stripQuotes removes a single pair of surrounding quote delimiters before a
// nested re-scan, advancing the anchor past the stripped open quote so
// nested coordinates stay file-absolute.
func stripQuotes(arg string, pos source.Pos) (string, source.Pos) {
	if len(arg) >= 2 && arg[0] == '[' && arg[len(arg)-1] == ']' {
		pos.Col++
		return arg[1 : len(arg)-1], pos
	}
	return arg, pos
}
