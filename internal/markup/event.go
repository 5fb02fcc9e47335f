// Package markup turns a document into a flat, source-ordered stream of
// structural events. Each event carries the byte span it covers in the file.
package markup

import (
	"fmt"

	"zhfmt/internal/source"
)

// Kind identifies a structural event.
type Kind uint8

const (
	Invalid Kind = iota
	ParagraphStart
	ParagraphEnd
	EmphasisStart
	EmphasisEnd
	StrongStart
	StrongEnd
	StrikethroughStart
	StrikethroughEnd
	LinkStart
	LinkEnd
	ImageStart
	ImageEnd
	Code
	HTML
	HTMLBlock
	AutoLink
	SoftBreak
	HardBreak
	Text
)

var kindNames = [...]string{
	Invalid:            "invalid",
	ParagraphStart:     "paragraph-start",
	ParagraphEnd:       "paragraph-end",
	EmphasisStart:      "emphasis-start",
	EmphasisEnd:        "emphasis-end",
	StrongStart:        "strong-start",
	StrongEnd:          "strong-end",
	StrikethroughStart: "strikethrough-start",
	StrikethroughEnd:   "strikethrough-end",
	LinkStart:          "link-start",
	LinkEnd:            "link-end",
	ImageStart:         "image-start",
	ImageEnd:           "image-end",
	Code:               "code",
	HTML:               "html",
	HTMLBlock:          "html-block",
	AutoLink:           "autolink",
	SoftBreak:          "soft-break",
	HardBreak:          "hard-break",
	Text:               "text",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// IsStart reports inline wrapper starts (emphasis, strong, link, ...).
func (k Kind) IsStart() bool {
	switch k {
	case EmphasisStart, StrongStart, StrikethroughStart, LinkStart, ImageStart:
		return true
	}
	return false
}

// IsEnd reports inline wrapper ends.
func (k Kind) IsEnd() bool {
	switch k {
	case EmphasisEnd, StrongEnd, StrikethroughEnd, LinkEnd, ImageEnd:
		return true
	}
	return false
}

// IsWrapper reports whether k is a start or end of an inline wrapper.
func (k Kind) IsWrapper() bool { return k.IsStart() || k.IsEnd() }

// Event is one structural marker with its source span.
type Event struct {
	Kind Kind
	Span source.Span
}

func (e Event) String() string {
	return fmt.Sprintf("%s@%d..%d", e.Kind, e.Span.Start, e.Span.End)
}

// IsBlock reports paragraph boundaries.
func (k Kind) IsBlock() bool { return k == ParagraphStart || k == ParagraphEnd }
