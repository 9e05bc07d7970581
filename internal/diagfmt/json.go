package diagfmt

import (
	"encoding/json"
	"io"

	"atlint/internal/diag"
	"atlint/internal/source"
)

// DiagnosticJSON represents one diagnostic in JSON output. Global
// diagnostics carry no line/col fields.
type DiagnosticJSON struct {
	Severity string `json:"severity"`
	Code     string `json:"code,omitempty"`
	Message  string `json:"message"`
	File     string `json:"file"`
	Line     uint32 `json:"line,omitempty"`
	Col      uint32 `json:"col,omitempty"`
}

// DiagnosticsOutput is the root structure of JSON output.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

// JSON encodes diagnostics in the order given.
func JSON(w io.Writer, items []diag.Diagnostic, file *source.File, opts JSONOpts) error {
	out := DiagnosticsOutput{
		Diagnostics: make([]DiagnosticJSON, 0, len(items)),
		Count:       len(items),
	}
	for _, d := range items {
		dj := DiagnosticJSON{
			Severity: d.Severity.String(),
			Message:  d.Message,
			File:     file.Path,
			Line:     d.Pos.Line,
			Col:      d.Pos.Col,
		}
		if opts.IncludeCodes {
			dj.Code = d.Code.ID()
		}
		out.Diagnostics = append(out.Diagnostics, dj)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
