package markup

import (
	"bytes"

	"zhfmt/internal/source"
)

// Plain treats src as plain text: every run of non-blank lines is one
// paragraph and each newline inside it is a SoftBreak. "\r\n" belongs to the break.
func Plain(src []byte, file source.FileID) []Event {
	b := &builder{src: src, file: file, limit: len(src)}
	inPara := false
	prevEnd := 0 // content end of the previous line in the paragraph
	for lineStart := 0; lineStart < len(src); {
		lineEnd := len(src)
		next := len(src)
		if i := bytes.IndexByte(src[lineStart:], '\n'); i >= 0 {
			lineEnd = lineStart + i
			next = lineEnd + 1
		}
		contentEnd := lineEnd
		if contentEnd > lineStart && src[contentEnd-1] == '\r' {
			contentEnd--
		}
		line := src[lineStart:contentEnd]
		if len(bytes.TrimSpace(line)) == 0 {
			if inPara {
				b.emit(ParagraphEnd, prevEnd, prevEnd)
				inPara = false
			}
			b.pos = next
			lineStart = next
			continue
		}
		if inPara {
			b.emit(SoftBreak, prevEnd, lineStart)
		} else {
			b.pos = lineStart
			b.emit(ParagraphStart, lineStart, lineStart)
			inPara = true
		}
		b.emit(Text, lineStart, contentEnd)
		prevEnd = contentEnd
		lineStart = next
	}
	if inPara {
		b.emit(ParagraphEnd, prevEnd, prevEnd)
	}
	return b.events
}
