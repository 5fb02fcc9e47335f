package markup

import (
	"bytes"
	"fmt"

	"fortio.org/safecast"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"zhfmt/internal/source"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.Strikethrough, extension.Table))

// Markdown parses src as CommonMark (+ GFM tables and strikethrough) and
// flattens the inline structure of every text block into events.
//
// goldmark keeps byte segments for text but not for delimiters, so wrapper
// events are located by scanning the source forward from the last known
// position. Code blocks are dropped; HTML blocks are kept as HTMLBlock events.
func Markdown(src []byte, file source.FileID) []Event {
	doc := markdown.Parser().Parse(text.NewReader(src))
	b := &builder{src: src, file: file, limit: len(src)}
	if err := ast.Walk(doc, b.visit); err != nil {
		// visit never fails
		panic(fmt.Errorf("markup: walk: %w", err))
	}
	return b.events
}

type builder struct {
	src    []byte
	file   source.FileID
	events []Event
	pos    int // everything before pos is already accounted for
	limit  int // end of the current block
}

func (b *builder) visit(n ast.Node, entering bool) (ast.WalkStatus, error) {
	switch n.Kind() {
	case ast.KindCodeBlock, ast.KindFencedCodeBlock:
		return ast.WalkSkipChildren, nil
	case ast.KindHTMLBlock:
		if entering {
			b.htmlBlock(n.(*ast.HTMLBlock))
		}
		return ast.WalkSkipChildren, nil
	case ast.KindParagraph, ast.KindHeading, ast.KindTextBlock, east.KindTableCell:
		b.block(n, entering)
	case ast.KindText:
		if entering {
			b.text(n.(*ast.Text))
		}
	case ast.KindEmphasis:
		kind := EmphasisStart
		level := n.(*ast.Emphasis).Level
		if level >= 2 {
			kind = StrongStart
		}
		if !entering {
			kind++
		}
		b.delimiter(kind, "*_", level)
	case east.KindStrikethrough:
		if entering {
			b.delimiter(StrikethroughStart, "~", 0)
		} else {
			b.delimiter(StrikethroughEnd, "~", 0)
		}
	case ast.KindLink:
		if entering {
			b.marker(LinkStart, "[")
		} else {
			b.linkTail(LinkEnd)
		}
	case ast.KindImage:
		if entering {
			b.marker(ImageStart, "![")
		} else {
			b.linkTail(ImageEnd)
		}
	case ast.KindCodeSpan:
		if entering {
			b.codeSpan(n)
		}
		return ast.WalkSkipChildren, nil
	case ast.KindAutoLink:
		if entering {
			b.autoLink()
		}
	case ast.KindRawHTML:
		if entering {
			segs := n.(*ast.RawHTML).Segments
			if segs.Len() > 0 {
				b.emit(HTML, segs.At(0).Start, segs.At(segs.Len()-1).Stop)
			}
		}
		return ast.WalkSkipChildren, nil
	}
	return ast.WalkContinue, nil
}

func (b *builder) block(n ast.Node, entering bool) {
	lines := n.Lines()
	if entering {
		start := b.pos
		b.limit = len(b.src)
		if lines.Len() > 0 {
			start = lines.At(0).Start
			b.limit = lines.At(lines.Len() - 1).Stop
		}
		b.pos = max(b.pos, start)
		b.emit(ParagraphStart, b.pos, b.pos)
		return
	}
	end := b.pos
	if lines.Len() > 0 {
		end = max(end, lines.At(lines.Len()-1).Stop)
	}
	b.emit(ParagraphEnd, end, end)
	b.limit = len(b.src)
}

func (b *builder) text(t *ast.Text) {
	seg := t.Segment
	if seg.Stop > seg.Start {
		b.emit(Text, seg.Start, seg.Stop)
	}
	switch {
	case t.HardLineBreak():
		b.lineBreak(HardBreak)
	case t.SoftLineBreak():
		b.lineBreak(SoftBreak)
	}
}

func (b *builder) htmlBlock(n *ast.HTMLBlock) {
	lines := n.Lines()
	if lines.Len() == 0 {
		return
	}
	end := lines.At(lines.Len() - 1).Stop
	if n.HasClosure() {
		end = max(end, n.ClosureLine.Stop)
	}
	b.emit(HTMLBlock, lines.At(0).Start, end)
}

// lineBreak covers trailing blanks, the newline and the continuation prefix
// (indentation, blockquote markers) of the next line.
func (b *builder) lineBreak(kind Kind) {
	start := b.pos
	nl := bytes.IndexByte(b.src[start:], '\n')
	if nl < 0 {
		b.emit(kind, start, start)
		return
	}
	end := start + nl + 1
	for end < len(b.src) && (b.src[end] == ' ' || b.src[end] == '\t' || b.src[end] == '>') {
		end++
	}
	b.emit(kind, start, end)
}

// delimiter locates a run of one of chars. width 0 means "the whole run, at most two".
func (b *builder) delimiter(kind Kind, chars string, width int) {
	i := b.indexAny(chars)
	if i < 0 {
		b.emit(kind, b.pos, b.pos)
		return
	}
	end := i + 1
	for end < b.limit && b.src[end] == b.src[i] && ((width == 0 && end-i < 2) || end-i < width) {
		end++
	}
	b.emit(kind, i, end)
}

func (b *builder) marker(kind Kind, lit string) {
	i := bytes.Index(b.src[b.pos:b.limit], []byte(lit))
	if i < 0 {
		b.emit(kind, b.pos, b.pos)
		return
	}
	b.emit(kind, b.pos+i, b.pos+i+len(lit))
}

// linkTail covers `]` plus an optional `(destination "title")` or `[label]`.
func (b *builder) linkTail(kind Kind) {
	i := bytes.IndexByte(b.src[b.pos:b.limit], ']')
	if i < 0 {
		b.emit(kind, b.pos, b.pos)
		return
	}
	start := b.pos + i
	end := start + 1
	if end < b.limit {
		switch b.src[end] {
		case '(':
			end = b.skipParens(end)
		case '[':
			if j := bytes.IndexByte(b.src[end:b.limit], ']'); j >= 0 {
				end += j + 1
			}
		}
	}
	b.emit(kind, start, end)
}

func (b *builder) skipParens(open int) int {
	depth := 0
	for i := open; i < b.limit; i++ {
		switch b.src[i] {
		case '\\':
			i++
		case '"':
			if j := bytes.IndexByte(b.src[i+1:b.limit], '"'); j >= 0 {
				i += j + 1
			}
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return b.limit
}

func (b *builder) codeSpan(n ast.Node) {
	i := b.indexAny("`")
	if i < 0 {
		b.emit(Code, b.pos, b.pos)
		return
	}
	run := 1
	for i+run < b.limit && b.src[i+run] == '`' {
		run++
	}
	from := i + run
	if last, ok := n.LastChild().(*ast.Text); ok && last.Segment.Stop > from {
		from = last.Segment.Stop
	}
	end := from
	for k := from; k < b.limit; {
		if b.src[k] != '`' {
			k++
			continue
		}
		m := k
		for m < b.limit && b.src[m] == '`' {
			m++
		}
		if m-k == run {
			end = m
			break
		}
		k = m
	}
	b.emit(Code, i, end)
}

func (b *builder) autoLink() {
	i := b.indexAny("<")
	if i < 0 {
		b.emit(AutoLink, b.pos, b.pos)
		return
	}
	end := i + 1
	if j := bytes.IndexByte(b.src[i:b.limit], '>'); j >= 0 {
		end = i + j + 1
	}
	b.emit(AutoLink, i, end)
}

func (b *builder) indexAny(chars string) int {
	if b.pos >= b.limit {
		return -1
	}
	i := bytes.IndexAny(b.src[b.pos:b.limit], chars)
	if i < 0 {
		return -1
	}
	return b.pos + i
}

func (b *builder) emit(kind Kind, start, end int) {
	start = max(start, b.pos)
	end = max(end, start)
	b.events = append(b.events, Event{Kind: kind, Span: b.span(start, end)})
	b.pos = end
}

func (b *builder) span(start, end int) source.Span {
	s, err := safecast.Conv[uint32](start)
	if err != nil {
		panic(fmt.Errorf("markup: offset overflow: %w", err))
	}
	e, err := safecast.Conv[uint32](end)
	if err != nil {
		panic(fmt.Errorf("markup: offset overflow: %w", err))
	}
	return source.Span{File: b.file, Start: s, End: e}
}
