package diag

import (
	"fmt"
)

type Code uint16

const (
	// Unknown fallback code.
	UnknownCode Code = 0

	// Scanner
	ScanInfo             Code = 1000
	ScanUnknownDirective Code = 1001

	// Rule engine
	RuleInfo               Code = 2000
	RuleTrailingWhitespace Code = 2001
	RuleUnquotedArgument   Code = 2002
	RuleArgumentCount      Code = 2003
	RuleArgumentValue      Code = 2004
	RuleForbiddenMacro     Code = 2005

	// Whole-run advisories
	RunInfo                 Code = 3000
	RunMissingRequired      Code = 3001
	RunUnbalancedDirectives Code = 3002
	RunDeprecatedFilename   Code = 3003
)

var codeDescription = map[Code]string{
	UnknownCode: "Unknown issue",

	ScanInfo:             "Scanner note",
	ScanUnknownDirective: "Unknown suppression directive",

	RuleInfo:               "Rule note",
	RuleTrailingWhitespace: "Trailing whitespace in macro argument",
	RuleUnquotedArgument:   "Unquoted macro argument",
	RuleArgumentCount:      "Unexpected macro argument count",
	RuleArgumentValue:      "Unexpected macro argument value",
	RuleForbiddenMacro:     "Forbidden macro",

	RunInfo:                 "Run note",
	RunMissingRequired:      "Missing required macros",
	RunUnbalancedDirectives: "Unbalanced disable/enable directives",
	RunDeprecatedFilename:   "Deprecated configure script name",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("SCAN%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("RULE%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("RUN%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
