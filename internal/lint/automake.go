package lint

import (
	"atlint/internal/diag"
	"atlint/internal/source"
)

// LintAutomake checks a companion Makefile.am.
// Only the file's presence feeds the configure checks today; content checks
// (SUBDIRS hygiene, obsolete variables, cross-file knowledge with
// configure.ac) are not implemented yet.
func LintAutomake(file *source.File, bag *diag.Bag) {
	// TODO: implement Makefile.am content checks
	_ = file
	_ = bag
}
