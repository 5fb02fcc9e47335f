package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"fortio.org/safecast"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"zhfmt/internal/diag"
	"zhfmt/internal/source"
)

type palette struct {
	err   *color.Color
	warn  *color.Color
	info  *color.Color
	code  *color.Color
	caret *color.Color
	gut   *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:   color.New(color.FgRed, color.Bold),
		warn:  color.New(color.FgYellow, color.Bold),
		info:  color.New(color.FgCyan),
		code:  color.New(color.Bold),
		caret: color.New(color.FgGreen, color.Bold),
		gut:   color.New(color.FgBlue),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.caret, p.gut} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем строку исходника с подчёркиванием ^~~~ по Span и заменой из первого fix.
// Ширина подчёркивания считается в колонках терминала, так что
// иероглифы занимают две.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for _, d := range bag.Items() {
		prettyOne(w, d, fs, opts, p)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	fmt.Fprintf(w, "%s: %s %s: %s\n",
		location(d.Primary, fs, opts.PathMode),
		p.severity(d.Severity).Sprint(d.Severity.String()),
		p.code.Sprint(d.Code.ID()),
		d.Message)

	writeSnippet(w, fs, d.Primary, fixLabel(d), opts.Context, p)

	if opts.ShowNotes {
		for _, note := range d.Notes {
			fmt.Fprintf(w, "  note: %s: %s\n", location(note.Span, fs, opts.PathMode), note.Msg)
		}
	}
	if !opts.ShowFixes {
		return
	}
	for i, f := range d.Fixes {
		fmt.Fprintf(w, "  fix #%d: %s (%s)", i+1, f.Title, f.Applicability)
		if f.ID != "" {
			fmt.Fprintf(w, " id=%s", f.ID)
		}
		fmt.Fprintln(w)
		for _, edit := range f.Edits {
			fmt.Fprintf(w, "    edit %s apply=%q\n", formatSpan(edit.Span, fs), edit.NewText)
			if !opts.ShowPreview {
				continue
			}
			preview, err := buildFixEditPreview(fs, edit)
			if err != nil {
				continue
			}
			fmt.Fprintln(w, "    preview:")
			for _, line := range preview.before {
				fmt.Fprintf(w, "      - %s\n", line)
			}
			for _, line := range preview.after {
				fmt.Fprintf(w, "      + %s\n", line)
			}
		}
	}
}

// fixLabel is the replacement text of the first edit, quoted so that
// whitespace stays visible.
func fixLabel(d *diag.Diagnostic) string {
	if len(d.Fixes) == 0 || len(d.Fixes[0].Edits) == 0 {
		return ""
	}
	return fmt.Sprintf("%q", d.Fixes[0].Edits[0].NewText)
}

func writeSnippet(w io.Writer, fs *source.FileSet, span source.Span, label string, context int8, p palette) {
	f := fs.Get(span.File)
	start, end := fs.Resolve(span)
	ctx, err := safecast.Conv[uint32](context)
	if err != nil {
		ctx = 0
	}
	lines, err := safecast.Conv[uint32](len(f.LineIdx) + 1)
	if err != nil {
		panic(fmt.Errorf("line count overflow: %w", err))
	}
	first := start.Line - min(ctx, start.Line-1)
	last := min(start.Line+ctx, lines)
	gutter := len(fmt.Sprint(last))

	for ln := first; ln <= last; ln++ {
		line := f.GetLine(ln)
		fmt.Fprintf(w, "%s %s\n", p.gut.Sprintf("%*d |", gutter, ln), line)
		if ln != start.Line {
			continue
		}
		from := min(int(start.Col-1), len(line))
		to := len(line)
		if end.Line == start.Line {
			to = min(int(end.Col-1), len(line))
		}
		to = max(to, from)
		marks := "^" + strings.Repeat("~", max(runewidth.StringWidth(line[from:to])-1, 0))
		caret := p.caret.Sprint(marks)
		if label != "" {
			caret += " " + p.caret.Sprint(label)
		}
		fmt.Fprintf(w, "%s %s%s\n", p.gut.Sprintf("%*s |", gutter, ""), indent(line[:from]), caret)
	}
}

// indent turns a line prefix into blanks of the same display width.
// Tabs are kept so the caret lines up however the terminal expands them.
func indent(prefix string) string {
	var sb strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			sb.WriteByte('\t')
			continue
		}
		sb.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return sb.String()
}

// Short prints one line per diagnostic.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, mode PathMode) {
	for _, d := range bag.Items() {
		fmt.Fprintf(w, "%s: %s %s: %s\n", location(d.Primary, fs, mode), d.Severity, d.Code.ID(), d.Message)
	}
}
