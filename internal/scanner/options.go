package scanner

import (
	"atlint/internal/diag"
	"atlint/internal/source"
)

// Options configures a Scanner. The Reporter receives the scanner's own
// diagnostics (currently only unknown-directive warnings); a nil Reporter
// drops them but scanning continues.
type Options struct {
	Reporter diag.Reporter
}

func (s *Scanner) report(code diag.Code, pos source.Pos, msg string) {
	if s.opts.Reporter != nil {
		s.opts.Reporter.Report(code, diag.SevWarning, pos, msg)
	}
}
