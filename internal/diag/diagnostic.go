package diag

import (
	"zhfmt/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

// TextEdit replaces Span with NewText. OldText, when set, must match the
// current content of Span for the edit to apply.
type TextEdit struct {
	Span    source.Span
	NewText string
	OldText string
}

// FixApplicability describes how confident a producer is in a fix.
type FixApplicability uint8

const (
	FixApplicabilityAlwaysSafe FixApplicability = iota
	FixApplicabilityManualReview
)

func (a FixApplicability) String() string {
	switch a {
	case FixApplicabilityAlwaysSafe:
		return "always-safe"
	case FixApplicabilityManualReview:
		return "manual-review"
	default:
		return "unknown"
	}
}

// Fix is a suggested correction made of text edits.
type Fix struct {
	ID            string
	Title         string
	Applicability FixApplicability
	Edits         []TextEdit
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}

func New(sev Severity, code Code, primary source.Span, msg string) *Diagnostic {
	return &Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func (d *Diagnostic) WithNote(sp source.Span, msg string) *Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

func (d *Diagnostic) WithFix(fix Fix) *Diagnostic {
	d.Fixes = append(d.Fixes, fix)
	return d
}

// ReplaceFix builds an always-safe single-edit fix.
func ReplaceFix(title string, span source.Span, oldText, newText string) Fix {
	return Fix{
		Title:         title,
		Applicability: FixApplicabilityAlwaysSafe,
		Edits:         []TextEdit{{Span: span, NewText: newText, OldText: oldText}},
	}
}
