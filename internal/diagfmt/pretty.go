package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"atlint/internal/diag"
	"atlint/internal/source"
)

var (
	warningColor = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed, color.Bold)
	caretColor   = color.New(color.FgGreen, color.Bold)
)

// Pretty formats diagnostics one per line, in the order given (the caller is
// expected to have run suppression filtering, which already orders them):
//
//	<path>:<row>:<col>: <message>   for positioned diagnostics
//	<path>:<message>                for global diagnostics (their message
//	                                carries its own leading space)
//
// With ShowPreview each positioned diagnostic is followed by its source line
// and a caret under the offending column.
func Pretty(w io.Writer, items []diag.Diagnostic, file *source.File, opts PrettyOpts) {
	for _, d := range items {
		msg := d.Message
		if opts.Color {
			msg = severityColor(d.Severity).Sprint(msg)
		}

		if d.Global() {
			fmt.Fprintf(w, "%s:%s\n", file.Path, msg)
			continue
		}

		fmt.Fprintf(w, "%s:%d:%d: %s\n", file.Path, d.Pos.Line, d.Pos.Col, msg)
		if opts.ShowPreview {
			writePreview(w, file, d.Pos, opts.Color)
		}
	}
}

// writePreview prints the source line and a caret aligned to the column,
// accounting for tabs and wide runes in the prefix.
func writePreview(w io.Writer, file *source.File, pos source.Pos, colored bool) {
	line := file.GetLine(pos.Line)
	if line == "" {
		return
	}
	fmt.Fprintf(w, "  %s\n", line)

	prefix := line
	if int(pos.Col)-1 < len(line) {
		prefix = line[:pos.Col-1]
	}
	pad := strings.Repeat(" ", previewWidth(prefix))
	caret := "^"
	if colored {
		caret = caretColor.Sprint(caret)
	}
	fmt.Fprintf(w, "  %s%s\n", pad, caret)
}

func previewWidth(prefix string) int {
	width := 0
	for _, r := range prefix {
		if r == '\t' {
			width += 8 - width%8
			continue
		}
		width += runewidth.RuneWidth(r)
	}
	return width
}

func severityColor(sev diag.Severity) *color.Color {
	if sev >= diag.SevError {
		return errorColor
	}
	return warningColor
}
