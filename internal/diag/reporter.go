package diag

import "atlint/internal/source"

// Reporter is the minimal contract for receiving diagnostics from the
// scanning and checking phases. Implementations: BagReporter (stores into a
// Bag), or test collectors.
type Reporter interface {
	Report(code Code, sev Severity, pos source.Pos, msg string)
}

// BagReporter is an adapter that writes into a *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, pos source.Pos, msg string) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Pos:      pos,
	})
}
