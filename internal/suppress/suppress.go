// Package suppress turns embedded directives into line-based suppression
// sets and ranges, then filters and orders the accumulated diagnostics.
package suppress

import (
	"fmt"
	"slices"
	"sort"

	"atlint/internal/diag"
	"atlint/internal/scanner"
)

// lineRange is a disable span; both boundaries are exclusive.
type lineRange struct {
	start uint32
	end   uint32
}

// Apply produces the final ordered diagnostic sequence: positioned
// diagnostics sorted by (row, col) with suppressed ones dropped, followed by
// every global diagnostic unmodified.
//
// Disable/enable directives pair by sorted order, i-th with i-th; this is not
// nesting-aware, so interleaved sections pair in a way their author may not
// expect. A count mismatch discards section suppression for the whole run
// (fail-open) and adds one global advisory instead.
func Apply(items []diag.Diagnostic, directives []scanner.Directive) []diag.Diagnostic {
	ignoreHere := make(map[uint32]struct{})
	ignoreNext := make(map[uint32]struct{})
	var disables, enables []uint32

	for _, d := range directives {
		switch d.Action {
		case scanner.DirectiveIgnore:
			ignoreHere[d.Pos.Line] = struct{}{}
		case scanner.DirectiveIgnoreNext:
			ignoreNext[d.Pos.Line] = struct{}{}
		case scanner.DirectiveDisable:
			disables = append(disables, d.Pos.Line)
		case scanner.DirectiveEnable:
			enables = append(enables, d.Pos.Line)
		}
	}

	var extra []diag.Diagnostic
	var ranges []lineRange
	if len(disables) != len(enables) {
		extra = append(extra, diag.NewGlobal(diag.RunUnbalancedDirectives,
			fmt.Sprintf(" unbalanced suppression directives: %d disable, %d enable; section suppression skipped",
				len(disables), len(enables))))
	} else {
		slices.Sort(disables)
		slices.Sort(enables)
		for i := range disables {
			ranges = append(ranges, lineRange{start: disables[i], end: enables[i]})
		}
	}

	var positioned, globals []diag.Diagnostic
	for _, d := range items {
		if d.Global() {
			globals = append(globals, d)
		} else {
			positioned = append(positioned, d)
		}
	}
	sort.SliceStable(positioned, func(i, j int) bool {
		return positioned[i].Pos.Before(positioned[j].Pos)
	})

	out := make([]diag.Diagnostic, 0, len(items))
	ri := 0
	for _, d := range positioned {
		row := d.Pos.Line
		// A range, once passed, is never revisited.
		for ri < len(ranges) && row > ranges[ri].end {
			ri++
		}
		if _, ok := ignoreHere[row]; ok {
			continue
		}
		if _, ok := ignoreNext[row-1]; ok {
			continue
		}
		if ri < len(ranges) && row > ranges[ri].start && row < ranges[ri].end {
			continue
		}
		out = append(out, d)
	}
	out = append(out, globals...)
	out = append(out, extra...)
	return out
}
