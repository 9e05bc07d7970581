package diag

import (
	"atlint/internal/source"
)

// Diagnostic is one finding produced by the scanner or the rule engine.
// A zero Pos marks a global diagnostic: it is never subject to line-based
// suppression and always sorts after every positioned diagnostic.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Pos      source.Pos
}

// Global reports whether the diagnostic carries no source position.
func (d Diagnostic) Global() bool {
	return d.Pos.IsZero()
}

func New(sev Severity, code Code, pos source.Pos, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Pos:      pos,
		Message:  msg,
	}
}

// NewWarning is a shortcut for SevWarning diagnostics.
func NewWarning(code Code, pos source.Pos, msg string) Diagnostic {
	return New(SevWarning, code, pos, msg)
}

// NewError is a shortcut for SevError diagnostics.
func NewError(code Code, pos source.Pos, msg string) Diagnostic {
	return New(SevError, code, pos, msg)
}

// NewGlobal builds an unpositioned advisory.
func NewGlobal(code Code, msg string) Diagnostic {
	return New(SevWarning, code, source.Pos{}, msg)
}
