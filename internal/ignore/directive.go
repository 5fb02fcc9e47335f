package ignore

import (
	"regexp"
	"strings"

	"zhfmt/internal/markup"
	"zhfmt/internal/source"
)

// Kind of a directive.
type Kind uint8

const (
	Disabled Kind = iota + 1
	Pattern
)

func (k Kind) String() string {
	switch k {
	case Disabled:
		return "disabled"
	case Pattern:
		return "ignore"
	default:
		return "unknown"
	}
}

// Directive is one parsed comment.
type Directive struct {
	Kind    Kind
	Pattern string
	Span    source.Span
}

var directiveRe = regexp.MustCompile(`<!--\s*zhfmt\s+(disabled|ignore:\s*(.*?))\s*-->`)

// Directives collects the directives of a file. With events, only HTML and
// HTMLBlock events are searched; with nil events the whole content is (plain
// text has no markup to hide comments in).
func Directives(file *source.File, events []markup.Event) []Directive {
	if events == nil {
		return scan(file.Content, source.Span{File: file.ID, Start: 0, End: file.Len()})
	}
	var out []Directive
	for _, ev := range events {
		if ev.Kind != markup.HTML && ev.Kind != markup.HTMLBlock {
			continue
		}
		out = append(out, scan(file.Content[ev.Span.Start:ev.Span.End], ev.Span)...)
	}
	return out
}

func scan(text []byte, at source.Span) []Directive {
	var out []Directive
	for _, m := range directiveRe.FindAllSubmatchIndex(text, -1) {
		span := source.Span{File: at.File, Start: at.Start + offset(m[0]), End: at.Start + offset(m[1])}
		body := string(text[m[2]:m[3]])
		if body == "disabled" {
			out = append(out, Directive{Kind: Disabled, Span: span})
			continue
		}
		pattern := strings.TrimSpace(string(text[m[4]:m[5]]))
		if pattern == "" {
			continue
		}
		out = append(out, Directive{Kind: Pattern, Pattern: pattern, Span: span})
	}
	return out
}

// IsDisabled reports whether any directive disables the file.
func IsDisabled(directives []Directive) bool {
	for _, d := range directives {
		if d.Kind == Disabled {
			return true
		}
	}
	return false
}

// Patterns returns the ignore patterns in source order.
func Patterns(directives []Directive) []string {
	var out []string
	for _, d := range directives {
		if d.Kind == Pattern {
			out = append(out, d.Pattern)
		}
	}
	return out
}
