// Package rules validates discovered macros: generic argument hygiene,
// the forbidden-macro block list, required-macro presence tracking, and
// name-specific validators looked up through a segmented-name trie.
package rules

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"atlint/internal/diag"
	"atlint/internal/scanner"
	"atlint/internal/source"
)

// ErrForbiddenMacro is the distinguished fatal outcome: a forbidden macro was
// encountered and the whole run must stop, at every nesting depth.
var ErrForbiddenMacro = errors.New("forbidden macro encountered")

// Engine checks macro sequences level by level. One Engine is shared across
// every nesting level of a run so the required-macro set sees all levels.
type Engine struct {
	reporter diag.Reporter
	required map[string]struct{}
	fatal    *diag.Diagnostic
}

// NewEngine creates an engine emitting through reporter, tracking the given
// required-macro set.
func NewEngine(reporter diag.Reporter, required map[string]struct{}) *Engine {
	return &Engine{
		reporter: reporter,
		required: required,
	}
}

// Check validates every macro of one scanning level, in order. It returns an
// error wrapping ErrForbiddenMacro as soon as a forbidden macro is seen; no
// further macros at any level may be checked after that.
func (e *Engine) Check(macros []scanner.Macro) error {
	for i := range macros {
		m := &macros[i]

		if reason, ok := forbiddenMacros[m.Name]; ok {
			d := diag.NewError(diag.RuleForbiddenMacro, m.Pos,
				fmt.Sprintf("Macro %s is forbidden: %s.", m.Name, reason))
			e.fatal = &d
			return fmt.Errorf("macro %s at %s: %w", m.Name, m.Pos, ErrForbiddenMacro)
		}

		// Presence, not count, matters.
		delete(e.required, m.Name)

		e.checkArgs(m)

		if v := lookupValidator(m.Name); v != nil {
			v(e, m)
		}
	}
	return nil
}

// checkArgs runs the generic argument-hygiene checks, in argument order.
func (e *Engine) checkArgs(m *scanner.Macro) {
	for i, arg := range m.Args {
		pos := m.ArgPos[i]

		if arg != "" && strings.TrimRight(arg, " \t\r\n") != arg {
			e.warn(diag.RuleTrailingWhitespace, pos,
				fmt.Sprintf("Argument %d has trailing whitespace. Trailing whitespace is preserved in M4.", i+1))
		}

		// Unquoted text might itself be an unexpanded macro call or carry
		// stray whitespace into the expansion.
		if arg != "" && !isDigitByte(arg[0]) && !isSpaceByte(arg[0]) && arg[0] != '[' {
			e.warn(diag.RuleUnquotedArgument, pos,
				fmt.Sprintf("Argument %d is unquoted. Consider quoting to prevent errors.", i+1))
		}
	}
}

// Fatal returns the diagnostic behind the ErrForbiddenMacro outcome, if any.
func (e *Engine) Fatal() *diag.Diagnostic {
	return e.fatal
}

// Finish reports whatever is left in the required-macro set as one global
// advisory, names sorted. The leading space in the message is part of the
// global output format: the renderer writes "<name>:" directly followed by
// the message verbatim.
func (e *Engine) Finish() {
	if len(e.required) == 0 {
		return
	}
	names := slices.Sorted(maps.Keys(e.required))
	e.reporter.Report(diag.RunMissingRequired, diag.SevWarning, source.Pos{},
		" missing required macro(s): "+strings.Join(names, ", "))
}

func (e *Engine) warn(code diag.Code, pos source.Pos, msg string) {
	if e.reporter != nil {
		e.reporter.Report(code, diag.SevWarning, pos, msg)
	}
}

func isDigitByte(b byte) bool {
	return b >= '0' && b <= '9'
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}
