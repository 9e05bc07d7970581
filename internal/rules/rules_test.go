package rules_test

import (
	"errors"
	"strings"
	"testing"

	"atlint/internal/diag"
	"atlint/internal/rules"
	"atlint/internal/scanner"
	"atlint/internal/source"
)

type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, pos source.Pos, msg string) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Pos:      pos,
	})
}

func (r *testReporter) byCode(code diag.Code) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, d := range r.diagnostics {
		if d.Code == code {
			out = append(out, d)
		}
	}
	return out
}

func macroAt(name string, line, col uint32, args ...string) scanner.Macro {
	m := scanner.Macro{Name: name, Pos: source.Pos{Line: line, Col: col}}
	for i, arg := range args {
		m.Args = append(m.Args, arg)
		m.ArgPos = append(m.ArgPos, source.Pos{Line: line, Col: col + uint32(i)})
	}
	return m
}

func newTestEngine(hasAutomake bool, extra ...string) (*rules.Engine, *testReporter) {
	reporter := &testReporter{}
	return rules.NewEngine(reporter, rules.NewRequiredSet(hasAutomake, extra)), reporter
}

func TestCheckCleanMacroPasses(t *testing.T) {
	engine, reporter := newTestEngine(false)

	err := engine.Check([]scanner.Macro{
		macroAt("AC_INIT", 1, 1, "[demo]", "[1.0]"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reporter.diagnostics) != 0 {
		t.Errorf("expected no diagnostics, got %v", reporter.diagnostics)
	}
}

func TestCheckTrailingWhitespace(t *testing.T) {
	tests := []struct {
		name string
		arg  string
		want bool
	}{
		{"trailing space", "[x] ", true},
		{"trailing tab", "[x]\t", true},
		{"trailing newline", "[x]\n", true},
		{"clean", "[x]", false},
		{"empty", "", false},
		{"internal space only", "[a b]", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, reporter := newTestEngine(false)
			if err := engine.Check([]scanner.Macro{macroAt("AC_INIT", 2, 5, tt.arg)}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := reporter.byCode(diag.RuleTrailingWhitespace)
			if tt.want && len(got) != 1 {
				t.Fatalf("expected one trailing-whitespace diagnostic, got %v", reporter.diagnostics)
			}
			if !tt.want && len(got) != 0 {
				t.Fatalf("expected no trailing-whitespace diagnostic, got %v", got)
			}
			if tt.want && got[0].Pos != (source.Pos{Line: 2, Col: 5}) {
				t.Errorf("expected diagnostic at the argument position 2:5, got %s", got[0].Pos)
			}
		})
	}
}

func TestCheckUnquotedArgument(t *testing.T) {
	tests := []struct {
		name string
		arg  string
		want bool
	}{
		{"plain word", "demo", true},
		{"quoted", "[demo]", false},
		{"leading digit", "2.69", false},
		{"whitespace only", " ", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, reporter := newTestEngine(false)
			if err := engine.Check([]scanner.Macro{macroAt("AC_INIT", 1, 1, tt.arg)}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := reporter.byCode(diag.RuleUnquotedArgument)
			if tt.want != (len(got) == 1) {
				t.Errorf("arg %q: expected warning=%v, got %v", tt.arg, tt.want, got)
			}
		})
	}
}

func TestCheckForbiddenMacroStopsRun(t *testing.T) {
	engine, reporter := newTestEngine(false)

	macros := []scanner.Macro{
		macroAt("AC_INIT", 1, 1, "[x]", "[1]"),
		macroAt("AC_CHANGEQUOTE", 3, 1, "<<", ">>"),
		macroAt("AC_CONFIG_AUX_DIR", 4, 1, "wrong"),
	}
	err := engine.Check(macros)
	if err == nil {
		t.Fatal("expected an error for the forbidden macro")
	}
	if !errors.Is(err, rules.ErrForbiddenMacro) {
		t.Fatalf("expected error wrapping ErrForbiddenMacro, got %v", err)
	}

	fatal := engine.Fatal()
	if fatal == nil {
		t.Fatal("expected a fatal diagnostic")
	}
	if fatal.Code != diag.RuleForbiddenMacro || fatal.Severity != diag.SevError {
		t.Errorf("unexpected fatal diagnostic: %+v", fatal)
	}
	if fatal.Pos != (source.Pos{Line: 3, Col: 1}) {
		t.Errorf("expected fatal diagnostic at 3:1, got %s", fatal.Pos)
	}
	if !strings.Contains(fatal.Message, "AC_CHANGEQUOTE") {
		t.Errorf("expected the fatal message to name the macro, got %q", fatal.Message)
	}

	// Macros after the forbidden one were never checked.
	if got := reporter.byCode(diag.RuleUnquotedArgument); len(got) != 0 {
		t.Errorf("expected no diagnostics after the forbidden macro, got %v", got)
	}
}

func TestRequiredMacroTracking(t *testing.T) {
	engine, reporter := newTestEngine(false)

	err := engine.Check([]scanner.Macro{
		macroAt("AC_INIT", 1, 1, "[x]", "[1]"),
		macroAt("AC_PREREQ", 2, 1, "[2.69]"),
		macroAt("AC_CONFIG_SRCDIR", 3, 1, "[src/main.c]"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	engine.Finish()

	got := reporter.byCode(diag.RunMissingRequired)
	if len(got) != 1 {
		t.Fatalf("expected one missing-required diagnostic, got %v", reporter.diagnostics)
	}
	d := got[0]
	if !d.Global() {
		t.Errorf("expected a global diagnostic, got position %s", d.Pos)
	}
	if d.Message != " missing required macro(s): AC_OUTPUT" {
		t.Errorf("unexpected message %q", d.Message)
	}
}

func TestRequiredMacroAllPresent(t *testing.T) {
	engine, reporter := newTestEngine(false)

	err := engine.Check([]scanner.Macro{
		macroAt("AC_INIT", 1, 1),
		macroAt("AC_PREREQ", 2, 1),
		macroAt("AC_CONFIG_SRCDIR", 3, 1),
		macroAt("AC_OUTPUT", 4, 1),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	engine.Finish()

	if got := reporter.byCode(diag.RunMissingRequired); len(got) != 0 {
		t.Errorf("expected no missing-required diagnostic, got %v", got)
	}
}

func TestRequiredMacroSortedNames(t *testing.T) {
	engine, reporter := newTestEngine(true, "ZZ_CUSTOM", "AA_CUSTOM")
	engine.Finish()

	got := reporter.byCode(diag.RunMissingRequired)
	if len(got) != 1 {
		t.Fatalf("expected one missing-required diagnostic, got %v", reporter.diagnostics)
	}
	want := " missing required macro(s): AA_CUSTOM, AC_CONFIG_SRCDIR, AC_INIT, AC_OUTPUT, AC_PREREQ, AM_INIT_AUTOMAKE, ZZ_CUSTOM"
	if got[0].Message != want {
		t.Errorf("expected sorted names:\n%q\ngot:\n%q", want, got[0].Message)
	}
}

func TestAutomakeRequiredOnlyWithMakefile(t *testing.T) {
	engine, reporter := newTestEngine(false)
	err := engine.Check([]scanner.Macro{
		macroAt("AC_INIT", 1, 1),
		macroAt("AC_PREREQ", 2, 1),
		macroAt("AC_CONFIG_SRCDIR", 3, 1),
		macroAt("AC_OUTPUT", 4, 1),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	engine.Finish()

	for _, d := range reporter.byCode(diag.RunMissingRequired) {
		if strings.Contains(d.Message, "AM_INIT_AUTOMAKE") {
			t.Errorf("AM_INIT_AUTOMAKE required without a Makefile.am: %q", d.Message)
		}
	}
}

func TestValidatorAuxDir(t *testing.T) {
	tests := []struct {
		name     string
		macro    scanner.Macro
		wantCode diag.Code
		wantMsg  string
	}{
		{
			name:     "wrong value",
			macro:    macroAt("AC_CONFIG_AUX_DIR", 5, 1, "[scripts]"),
			wantCode: diag.RuleArgumentValue,
			wantMsg:  "AC_CONFIG_AUX_DIR: argument 1 should be [build-aux].",
		},
		{
			name:     "wrong count",
			macro:    macroAt("AC_CONFIG_AUX_DIR", 5, 1, "[a]", "[b]"),
			wantCode: diag.RuleArgumentCount,
			wantMsg:  "AC_CONFIG_AUX_DIR expects exactly 1 argument, found 2.",
		},
		{
			name:     "macro dir wrong value",
			macro:    macroAt("AC_CONFIG_MACRO_DIR", 6, 1, "[m4-extra]"),
			wantCode: diag.RuleArgumentValue,
			wantMsg:  "AC_CONFIG_MACRO_DIR: argument 1 should be [m4].",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, reporter := newTestEngine(false)
			if err := engine.Check([]scanner.Macro{tt.macro}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := reporter.byCode(tt.wantCode)
			if len(got) != 1 {
				t.Fatalf("expected one %v diagnostic, got %v", tt.wantCode, reporter.diagnostics)
			}
			if got[0].Message != tt.wantMsg {
				t.Errorf("expected message %q, got %q", tt.wantMsg, got[0].Message)
			}
			if got[0].Pos != tt.macro.Pos {
				t.Errorf("expected diagnostic at the macro position %s, got %s", tt.macro.Pos, got[0].Pos)
			}
		})
	}
}

func TestValidatorAcceptsExpectedValue(t *testing.T) {
	engine, reporter := newTestEngine(false)

	err := engine.Check([]scanner.Macro{
		macroAt("AC_CONFIG_AUX_DIR", 1, 1, "[build-aux]"),
		macroAt("AC_CONFIG_MACRO_DIR", 2, 1, "[m4]"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reporter.diagnostics) != 0 {
		t.Errorf("expected no diagnostics, got %v", reporter.diagnostics)
	}
}

func TestValidatorUnresolvedNameIsNoop(t *testing.T) {
	engine, reporter := newTestEngine(false)

	// Shares the AC_CONFIG prefix path without reaching a registered leaf.
	err := engine.Check([]scanner.Macro{
		macroAt("AC_CONFIG_HEADERS", 1, 1, "[config.h]"),
		macroAt("AC_CONFIG_AUX", 2, 1, "[x]"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reporter.diagnostics) != 0 {
		t.Errorf("expected no diagnostics for unregistered names, got %v", reporter.diagnostics)
	}
}
