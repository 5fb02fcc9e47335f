// Package lexer flattens markup events into tokens: text events become one
// Char token per rune, every other event passes through as an Event token.
package lexer

import (
	"zhfmt/internal/markup"
	"zhfmt/internal/source"
	"zhfmt/internal/token"
)

type Lexer struct {
	file   *source.File
	events []markup.Event
	next   int // индекс следующего события
	cursor Cursor
	inText bool
	look   *token.Token // 1 элементный буфер для токена
}

func New(file *source.File, events []markup.Event) *Lexer {
	return &Lexer{file: file, events: events}
}

// Next возвращает следующий токен. После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}
	for {
		if lx.inText {
			if !lx.cursor.EOF() {
				r, sp := lx.cursor.Rune()
				return token.Token{Kind: token.Char, Char: r, Span: sp}
			}
			lx.inText = false
		}
		if lx.next >= len(lx.events) {
			return token.Token{Kind: token.EOF, Span: lx.endSpan()}
		}
		ev := lx.events[lx.next]
		lx.next++
		if ev.Kind != markup.Text {
			return token.Token{Kind: token.Event, Event: ev, Span: ev.Span}
		}
		// пустые текстовые события просто пропускаются
		lx.cursor = NewCursor(lx.file, ev.Span)
		lx.inText = true
	}
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

func (lx *Lexer) endSpan() source.Span {
	var off uint32
	if n := len(lx.events); n > 0 {
		off = lx.events[n-1].Span.End
	}
	return source.Span{File: lx.file.ID, Start: off, End: off}
}

// Tokenize collects the whole stream, including the final EOF.
func Tokenize(file *source.File, events []markup.Event) []token.Token {
	lx := New(file, events)
	var out []token.Token
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.IsEOF() {
			return out
		}
	}
}
