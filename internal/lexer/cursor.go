package lexer

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"

	"zhfmt/internal/source"
)

// Cursor представляет позицию внутри одного текстового события.
type Cursor struct {
	File *source.File
	Off  uint32
	// Limit is the exclusive upper bound for Off (end of the text event).
	Limit uint32
}

// NewCursor creates a cursor over span in f. The span is clamped to the file.
func NewCursor(f *source.File, span source.Span) Cursor {
	size, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return Cursor{
		File:  f,
		Off:   min(span.Start, size),
		Limit: min(span.End, size),
	}
}

// EOF проверяет, достигнут ли конец события
func (c *Cursor) EOF() bool {
	return c.Off >= c.Limit
}

// Rune decodes the rune at Off and advances past it.
// Invalid UTF-8 yields utf8.RuneError one byte wide.
func (c *Cursor) Rune() (r rune, sp source.Span) {
	start := c.Off
	r, size := utf8.DecodeRune(c.File.Content[c.Off:c.Limit])
	if size <= 0 {
		size = 1
	}
	w, err := safecast.Conv[uint32](size)
	if err != nil {
		panic(fmt.Errorf("rune size overflow: %w", err))
	}
	c.Off += w
	return r, source.Span{File: c.File.ID, Start: start, End: c.Off}
}
