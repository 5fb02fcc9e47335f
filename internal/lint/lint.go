// Package lint runs the whole pipeline over one file: markup events, tokens,
// paragraph trees, rules, and finally the reverse walk that splices every
// rewritten value back into a copy of the source.
package lint

import (
	"path/filepath"
	"strings"

	"zhfmt/internal/config"
	"zhfmt/internal/ignore"
	"zhfmt/internal/markup"
	"zhfmt/internal/parser"
	"zhfmt/internal/rules"
	"zhfmt/internal/source"
)

// Mode selects how the file is split into paragraphs.
type Mode uint8

const (
	Markdown Mode = iota
	Plain
)

func (m Mode) String() string {
	if m == Plain {
		return "text"
	}
	return "markdown"
}

// ModeForPath picks Markdown for .md/.markdown/.mdx files and Plain otherwise.
func ModeForPath(path string) Mode {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown", ".mdx":
		return Markdown
	default:
		return Plain
	}
}

// Options tune a single run.
type Options struct {
	Mode Mode
	// Rules, when non-nil, replaces the default rule list.
	Rules []rules.Rule
}

// Result is everything one run produced.
type Result struct {
	File *source.File
	// Text is the rewritten content. It equals File.Content when nothing changed.
	Text []byte
	// Changes are in reverse source order, the order they were spliced in.
	Changes    []Change
	Errors     []*parser.Error
	Disabled   bool
	Paragraphs []parser.Result
	IgnoreErrs []*ignore.PatternError
}

// Changed reports whether the text differs from the source.
func (r *Result) Changed() bool { return len(r.Changes) > 0 }

// Events returns the markup events of file in the given mode.
func Events(file *source.File, mode Mode) []markup.Event {
	if mode == Plain {
		return markup.Plain(file.Content, file.ID)
	}
	return markup.Markdown(file.Content, file.ID)
}

// Run lints file with cfg.
func Run(file *source.File, cfg *config.Config, opts Options) *Result {
	res := &Result{File: file}
	events := Events(file, opts.Mode)

	var directives []ignore.Directive
	if opts.Mode == Plain {
		directives = ignore.Directives(file, nil)
	} else {
		directives = ignore.Directives(file, events)
	}
	if ignore.IsDisabled(directives) {
		res.Disabled = true
		res.Text = append([]byte(nil), file.Content...)
		return res
	}

	patterns := append(append([]string(nil), cfg.Ignores...), ignore.Patterns(directives)...)
	ranges, patternErrs := ignore.Ranges(file.Content, file.ID, patterns)
	res.IgnoreErrs = patternErrs

	res.Paragraphs = parser.ParseFile(file, events)
	for _, pr := range res.Paragraphs {
		if pr.Err != nil {
			res.Errors = append(res.Errors, pr.Err)
			continue
		}
		apply(pr, cfg, opts)
	}

	sp := &splicer{text: append([]byte(nil), file.Content...), ranges: ranges}
	for i := len(res.Paragraphs) - 1; i >= 0; i-- {
		if p := res.Paragraphs[i].Paragraph; p != nil {
			sp.paragraph(p)
		}
	}
	res.Text = sp.text
	res.Changes = sp.changes
	return res
}

func apply(pr parser.Result, cfg *config.Config, opts Options) {
	if opts.Rules == nil {
		rules.Run(pr.Paragraph, cfg)
		return
	}
	rules.RunWith(pr.Paragraph, cfg, opts.Rules...)
	if cfg.TrimSpace {
		rules.TrimSpace(pr.Paragraph)
	}
}
