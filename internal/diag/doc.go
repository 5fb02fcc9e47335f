// Package diag defines the diagnostic model shared by all pipeline stages.
//
// # Purpose
//
//   - Provide deterministic, serialisable records for parse errors and
//     formatting findings produced by the parser and the lint reporter.
//   - Offer light-weight utilities (Reporter, Bag, Dedup) that let producers
//     emit diagnostics without coupling to storage or formatting layers.
//   - Model fixes as structured text edits that internal/fix can apply.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Info, Warning, Error (severity.go).
//   - Code – numeric identifier with a stable string form (codes.go).
//   - Message – short human readable text.
//   - Primary – the source.Span the finding points at.
//   - Notes – optional secondary spans.
//   - Fixes – optional Fix records; every formatting finding carries exactly one.
//
// TextEdit spans are source coordinates; OldText guards the edit so the fix
// engine refuses to apply it to content that changed underneath.
//
// # Consumers
//
//   - internal/diagfmt renders diagnostics (pretty/short/json/sarif).
//   - internal/fix applies fixes to files.
//   - internal/driver collects one Bag per file.
package diag
