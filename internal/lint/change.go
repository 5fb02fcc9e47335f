package lint

import (
	"fmt"

	"zhfmt/internal/diag"
	"zhfmt/internal/fix"
	"zhfmt/internal/source"
)

// ChangeKind tells what sort of value was rewritten.
type ChangeKind uint8

const (
	CharChange ChangeKind = iota + 1
	StringChange
	SpaceChange
)

func (k ChangeKind) String() string {
	switch k {
	case CharChange:
		return "char"
	case StringChange:
		return "string"
	case SpaceChange:
		return "space"
	default:
		return "unknown"
	}
}

// Change is one spliced replacement, in source coordinates.
type Change struct {
	Kind     ChangeKind
	Span     source.Span
	Original string
	Modified string
}

// Code maps the change to its diagnostic code.
func (c Change) Code() diag.Code {
	switch c.Kind {
	case CharChange:
		return diag.FmtCharError
	case StringChange:
		return diag.FmtStringError
	default:
		return diag.FmtSpaceError
	}
}

func (c Change) Message() string {
	if c.Kind != SpaceChange {
		return fmt.Sprintf("%q should be %q", c.Original, c.Modified)
	}
	switch {
	case c.Modified == "":
		return "unexpected space"
	case c.Original == "" && c.Modified == " ":
		return "missing space"
	case c.Modified == " ":
		return "expected one space"
	default:
		return fmt.Sprintf("expected %q", c.Modified)
	}
}

func (c Change) title() string {
	switch {
	case c.Kind != SpaceChange:
		return fmt.Sprintf("replace %q with %q", c.Original, c.Modified)
	case c.Modified == "":
		return "remove space"
	case c.Original == "":
		return "insert space"
	default:
		return "normalize space"
	}
}

// Fix is the edit that performs the change.
func (c Change) Fix() diag.Fix {
	return fix.Edit(c.title(), c.Span, c.Original, c.Modified)
}

// Diagnostics reports parse errors, broken ignore patterns and changes in
// source order.
func (r *Result) Diagnostics(reporter diag.Reporter) {
	fileStart := source.Span{}
	if r.File != nil {
		fileStart = source.At(r.File.ID, 0)
	}
	for _, perr := range r.IgnoreErrs {
		reporter.Report(diag.Warning(diag.CfgInvalidIgnore, fileStart, perr.Error()))
	}
	for _, err := range r.Errors {
		reporter.Report(diag.Error(err.Code.DiagCode(), err.Span, err.Error()))
	}
	for i := len(r.Changes) - 1; i >= 0; i-- {
		c := r.Changes[i]
		reporter.Report(diag.Warning(c.Code(), c.Span, c.Message()).WithFix(c.Fix()))
	}
}
