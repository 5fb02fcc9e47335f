package diagfmt

import (
	"encoding/json"
	"io"

	"zhfmt/internal/diag"
	"zhfmt/internal/source"
)

// Report is the document printed by --format json.
type Report struct {
	Diagnostics []Entry `json:"diagnostics"`
	Count       int     `json:"count"`
}

type Entry struct {
	Severity string      `json:"severity"`
	Code     string      `json:"code"`
	Message  string      `json:"message"`
	Location Location    `json:"location"`
	Notes    []NoteEntry `json:"notes,omitempty"`
	Fixes    []FixEntry  `json:"fixes,omitempty"`
}

// Location всегда несёт байтовые смещения; line/col только с IncludePositions.
type Location struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

type NoteEntry struct {
	Message  string   `json:"message"`
	Location Location `json:"location"`
}

type FixEntry struct {
	ID            string      `json:"id,omitempty"`
	Title         string      `json:"title"`
	Applicability string      `json:"applicability"`
	Edits         []EditEntry `json:"edits,omitempty"`
}

type EditEntry struct {
	Location    Location `json:"location"`
	NewText     string   `json:"new_text"`
	OldText     string   `json:"old_text,omitempty"`
	BeforeLines []string `json:"before_lines,omitempty"`
	AfterLines  []string `json:"after_lines,omitempty"`
}

type jsonBuilder struct {
	fs   *source.FileSet
	opts JSONOpts
}

func (b jsonBuilder) location(span source.Span) Location {
	loc := Location{
		File:      formatPath(b.fs.Get(span.File), b.fs, b.opts.PathMode),
		StartByte: span.Start,
		EndByte:   span.End,
	}
	if b.opts.IncludePositions {
		start, end := b.fs.Resolve(span)
		loc.StartLine, loc.StartCol = start.Line, start.Col
		loc.EndLine, loc.EndCol = end.Line, end.Col
	}
	return loc
}

func (b jsonBuilder) entry(d *diag.Diagnostic) Entry {
	e := Entry{
		Severity: d.Severity.String(),
		Code:     d.Code.ID(),
		Message:  d.Message,
		Location: b.location(d.Primary),
	}
	if b.opts.IncludeNotes {
		for _, n := range d.Notes {
			e.Notes = append(e.Notes, NoteEntry{Message: n.Msg, Location: b.location(n.Span)})
		}
	}
	if b.opts.IncludeFixes {
		for _, f := range d.Fixes {
			e.Fixes = append(e.Fixes, b.fix(f))
		}
	}
	return e
}

func (b jsonBuilder) fix(f diag.Fix) FixEntry {
	out := FixEntry{ID: f.ID, Title: f.Title, Applicability: f.Applicability.String()}
	for _, edit := range f.Edits {
		ee := EditEntry{Location: b.location(edit.Span), NewText: edit.NewText, OldText: edit.OldText}
		if b.opts.IncludePreviews {
			if p, err := buildFixEditPreview(b.fs, edit); err == nil {
				ee.BeforeLines, ee.AfterLines = p.before, p.after
			}
		}
		out.Edits = append(out.Edits, ee)
	}
	return out
}

// BuildReport converts the bag without encoding it. opts.Max truncates the
// output only.
func BuildReport(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) Report {
	items := bag.Items()
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}
	b := jsonBuilder{fs: fs, opts: opts}
	entries := make([]Entry, 0, len(items))
	for _, d := range items {
		entries = append(entries, b.entry(d))
	}
	return Report{Diagnostics: entries, Count: len(entries)}
}

// JSON writes BuildReport as indented JSON.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildReport(bag, fs, opts))
}
