// Package diag defines the diagnostic model shared by the scanner, the rule
// engine and the suppression layer.
//
// # Purpose
//
//   - Provide deterministic data structures that capture findings produced by
//     the macro scanner and the rule checks.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//
// # Scope
//
// Package diag does not perform any formatting, IO, or CLI integration.
// Rendering lives in internal/diagfmt; suppression filtering lives in
// internal/suppress; orchestration lives in internal/lint.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Pos – 1-indexed source position; the zero value marks a global advisory
//     that is exempt from line-based suppression and always reported last.
//
// Phases emit through a diag.Reporter to decouple emission from storage;
// diag.BagReporter aggregates into a Bag, which is capacity-limited and
// supports wholesale replacement for the fatal-outcome path.
package diag
