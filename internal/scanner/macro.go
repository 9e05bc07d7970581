package scanner

import (
	"strings"

	"atlint/internal/source"
)

// Recognized macro name prefixes. Identifiers without one of these prefixes
// are never recorded as macros.
var macroPrefixes = [...]string{"AC_", "AS_", "AM_", "_"}

// Macro is one discovered macro invocation. Args holds the raw argument text
// (verbatim, including embedded newlines); ArgPos holds the position of each
// argument's first significant character. After normalization
// len(Args) == len(ArgPos), and a call written with an empty parenthesized
// list carries zero arguments.
type Macro struct {
	Name   string
	Pos    source.Pos
	Args   []string
	ArgPos []source.Pos
}

// HasRecognizedPrefix reports whether name starts with one of the macro
// prefixes the linter cares about.
func HasRecognizedPrefix(name string) bool {
	for _, p := range macroPrefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

// normalize applies the post-scan cleanup pass:
//   - a call whose only captured argument is the empty string collapses to a
//     zero-argument call;
//   - non-whitespace-only arguments lose their leading whitespace;
//   - whitespace-only arguments are kept verbatim so the trailing-whitespace
//     rule can still see them.
func (m *Macro) normalize() {
	if len(m.Args) == 1 && m.Args[0] == "" {
		m.Args = nil
		m.ArgPos = nil
		return
	}
	for i, arg := range m.Args {
		if strings.TrimSpace(arg) != "" {
			m.Args[i] = strings.TrimLeft(arg, " \t\n")
		}
	}
}

// DirectiveAction enumerates the suppression directive keywords.
type DirectiveAction uint8

const (
	// DirectiveIgnore suppresses diagnostics on the directive's own line.
	DirectiveIgnore DirectiveAction = iota
	// DirectiveIgnoreNext suppresses diagnostics on the following line.
	DirectiveIgnoreNext
	// DirectiveDisable opens a suppressed section.
	DirectiveDisable
	// DirectiveEnable closes a suppressed section.
	DirectiveEnable
)

func (a DirectiveAction) String() string {
	switch a {
	case DirectiveIgnore:
		return "ignore"
	case DirectiveIgnoreNext:
		return "ignore-next"
	case DirectiveDisable:
		return "disable"
	case DirectiveEnable:
		return "enable"
	}
	return "unknown"
}

// LookupDirectiveAction matches a trimmed directive payload case-insensitively
// against the four action keywords.
func LookupDirectiveAction(payload string) (DirectiveAction, bool) {
	switch strings.ToLower(payload) {
	case "ignore":
		return DirectiveIgnore, true
	case "ignore-next":
		return DirectiveIgnoreNext, true
	case "disable":
		return DirectiveDisable, true
	case "enable":
		return DirectiveEnable, true
	}
	return 0, false
}

// Directive is one recognized suppression instruction embedded in a line
// comment. Pos points at the "atlint:" marker.
type Directive struct {
	Action DirectiveAction
	Pos    source.Pos
}
