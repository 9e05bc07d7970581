package rules

import (
	"fmt"
	"strings"

	"atlint/internal/diag"
	"atlint/internal/scanner"
)

// defaultRequired is the fixed set of macros every configure script must
// invoke somewhere, at any nesting level.
var defaultRequired = [...]string{
	"AC_INIT",
	"AC_PREREQ",
	"AC_CONFIG_SRCDIR",
	"AC_OUTPUT",
}

// automakeRequired is demanded only when a Makefile.am sits next to the
// configure script.
const automakeRequired = "AM_INIT_AUTOMAKE"

// forbiddenMacros maps a forbidden macro name to the reason its mere
// presence aborts the run. AC_CHANGEQUOTE invalidates the fixed [ ] quote
// delimiters the scanner assumes; the diversion macros reorder output, so
// position bookkeeping after them means nothing.
var forbiddenMacros = map[string]string{
	"AC_CHANGEQUOTE": "it redefines the quote delimiters, so no later text can be scanned reliably",
	"AC_DIVERT_PUSH": "it reorders output diversions, so later positions are unreliable",
	"AC_DIVERT_POP":  "it reorders output diversions, so later positions are unreliable",
}

// NewRequiredSet seeds the mutable required-macro set for one run.
func NewRequiredSet(hasAutomake bool, extra []string) map[string]struct{} {
	required := make(map[string]struct{}, len(defaultRequired)+len(extra)+1)
	for _, name := range defaultRequired {
		required[name] = struct{}{}
	}
	if hasAutomake {
		required[automakeRequired] = struct{}{}
	}
	for _, name := range extra {
		if name != "" {
			required[name] = struct{}{}
		}
	}
	return required
}

// validator checks one macro with a registered name-specific rule.
type validator func(e *Engine, m *scanner.Macro)

// trieNode is one segment of the macro-name lookup trie. Names are split on
// '_' and walked segment by segment; an unresolved path is a no-op.
type trieNode struct {
	children map[string]*trieNode
	validate validator
}

var validatorTrie = buildTrie(map[string]validator{
	"AC_CONFIG_AUX_DIR":   expectSingleArg("build-aux"),
	"AC_CONFIG_MACRO_DIR": expectSingleArg("m4"),
})

func buildTrie(validators map[string]validator) *trieNode {
	root := &trieNode{}
	for name, v := range validators {
		node := root
		for _, seg := range strings.Split(name, "_") {
			if node.children == nil {
				node.children = make(map[string]*trieNode)
			}
			child := node.children[seg]
			if child == nil {
				child = &trieNode{}
				node.children[seg] = child
			}
			node = child
		}
		node.validate = v
	}
	return root
}

func lookupValidator(name string) validator {
	node := validatorTrie
	for _, seg := range strings.Split(name, "_") {
		node = node.children[seg]
		if node == nil {
			return nil
		}
	}
	return node.validate
}

// expectSingleArg builds a validator demanding exactly one argument whose
// unquoted value equals expected.
func expectSingleArg(expected string) validator {
	return func(e *Engine, m *scanner.Macro) {
		if len(m.Args) != 1 {
			e.warn(diag.RuleArgumentCount, m.Pos,
				fmt.Sprintf("%s expects exactly 1 argument, found %d.", m.Name, len(m.Args)))
			return
		}
		if unquote(m.Args[0]) != expected {
			e.warn(diag.RuleArgumentValue, m.Pos,
				fmt.Sprintf("%s: argument 1 should be [%s].", m.Name, expected))
		}
	}
}

func unquote(s string) string {
	return strings.TrimRight(strings.TrimLeft(s, "["), "]")
}
