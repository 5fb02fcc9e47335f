package lsp

import (
	"net/url"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf16"

	"fortio.org/safecast"
	lsp "github.com/sourcegraph/go-lsp"

	"zhfmt/internal/source"
)

// Позиции LSP считаются в строках и UTF-16 единицах, source.Span в байтах.

func utf16Width(r rune) int {
	if n := utf16.RuneLen(r); n > 0 {
		return n
	}
	return 1
}

func utf16Count(s string) int {
	n := 0
	for _, r := range s {
		n += utf16Width(r)
	}
	return n
}

// lineStart reports the byte offset of zero-based line, false if text is shorter.
func lineStart(text string, line int) (int, bool) {
	off := 0
	for ; line > 0; line-- {
		nl := strings.IndexByte(text[off:], '\n')
		if nl < 0 {
			return len(text), false
		}
		off += nl + 1
	}
	return off, true
}

// columnBytes is the byte length of the first units UTF-16 units of line. A
// surrogate pair is never split and the newline is never crossed.
func columnBytes(line string, units int) int {
	n := 0
	for i, r := range line {
		if r == '\n' || n >= units {
			return i
		}
		w := utf16Width(r)
		if n+w > units {
			return i
		}
		n += w
	}
	return len(line)
}

func offsetForPosition(text string, pos lsp.Position) int {
	if pos.Line < 0 || pos.Character < 0 {
		return 0
	}
	start, ok := lineStart(text, pos.Line)
	if !ok {
		return len(text)
	}
	return start + columnBytes(text[start:], pos.Character)
}

// applyChanges replays didChange events in order. An event without a range
// replaces the whole text.
func applyChanges(text string, changes []lsp.TextDocumentContentChangeEvent) string {
	for _, c := range changes {
		if c.Range == nil {
			text = c.Text
			continue
		}
		start := offsetForPosition(text, c.Range.Start)
		end := max(offsetForPosition(text, c.Range.End), start)
		text = text[:start] + c.Text + text[end:]
	}
	return text
}

func clampOffset(n int) uint32 {
	v, err := safecast.Conv[uint32](max(n, 0))
	if err != nil {
		return ^uint32(0)
	}
	return v
}

// positionAt maps a byte offset of file to an LSP position; offsets past the
// end stick to the end.
func positionAt(file *source.File, offset uint32) lsp.Position {
	if file == nil {
		return lsp.Position{}
	}
	offset = min(offset, clampOffset(len(file.Content)))
	line, _ := slices.BinarySearch(file.LineIdx, offset)
	var from uint32
	if line > 0 {
		from = min(file.LineIdx[line-1]+1, offset)
	}
	return lsp.Position{Line: line, Character: utf16Count(string(file.Content[from:offset]))}
}

func spanRange(file *source.File, span source.Span) lsp.Range {
	if file == nil {
		return lsp.Range{}
	}
	return lsp.Range{Start: positionAt(file, span.Start), End: positionAt(file, span.End)}
}

// uriToPath gives an absolute path for file URIs and bare paths, "" otherwise.
func uriToPath(uri lsp.DocumentURI) string {
	if uri == "" {
		return ""
	}
	u, err := url.Parse(string(uri))
	if err != nil {
		return ""
	}
	var p string
	switch u.Scheme {
	case "file":
		p = u.Path
		// file:///C:/dir
		if len(p) >= 3 && p[0] == '/' && p[2] == ':' {
			p = p[1:]
		}
	case "":
		p = string(uri)
	default:
		return ""
	}
	p = filepath.FromSlash(p)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

func pathToURI(path string) lsp.DocumentURI {
	if path == "" {
		return ""
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	p := filepath.ToSlash(path)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return lsp.DocumentURI((&url.URL{Scheme: "file", Path: p}).String())
}
