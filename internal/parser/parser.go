// Package parser builds paragraph trees out of the token stream.
//
// Each ParagraphStart..ParagraphEnd pair yields one Result. Letters are
// grouped into runs of equal width, quotation marks into nested groups and
// every whitespace run is attached to the node before it. A paragraph that
// fails to parse is reported and skipped as a whole; the next one is parsed
// from a clean state.
package parser

import (
	"zhfmt/internal/ast"
	"zhfmt/internal/charkind"
	"zhfmt/internal/lexer"
	"zhfmt/internal/markup"
	"zhfmt/internal/source"
	"zhfmt/internal/token"
)

// Result is one paragraph. Exactly one of Paragraph and Err is set.
type Result struct {
	Paragraph *ast.Paragraph
	Err       *Error
}

// Parser: состояние парсера на один файл.
type Parser struct {
	lx              *lexer.Lexer
	prev, cur, next token.Token
	closers         []rune // ожидаемые закрывающие кавычки, сбрасываются на каждом абзаце
}

func New(lx *lexer.Lexer) *Parser {
	p := &Parser{lx: lx}
	p.cur = lx.Next()
	p.next = lx.Next()
	return p
}

// ParseFile is New(lexer.New(file, events)).Parse().
func ParseFile(file *source.File, events []markup.Event) []Result {
	return New(lexer.New(file, events)).Parse()
}

// Parse consumes the whole stream. Events outside paragraphs are skipped.
func (p *Parser) Parse() []Result {
	var out []Result
	for !p.cur.IsEOF() {
		if !p.cur.IsEvent(markup.ParagraphStart) {
			p.advance()
			continue
		}
		out = append(out, p.parseParagraph())
	}
	return out
}

func (p *Parser) advance() {
	p.prev = p.cur
	p.cur = p.next
	p.next = p.lx.Next()
}

func (p *Parser) atParagraphEnd() bool {
	return p.cur.IsEOF() || p.cur.IsEvent(markup.ParagraphEnd)
}

func (p *Parser) parseParagraph() Result {
	open := p.cur
	p.advance()
	p.closers = p.closers[:0]

	para := &ast.Paragraph{}
	para.Leading = p.takeSpace(open.Span.End)
	nodes, err := p.parseNodes(0, open)
	if err != nil {
		// resync: пропускаем остаток абзаца
		for !p.atParagraphEnd() {
			p.advance()
		}
	}
	para.Span = open.Span.Cover(p.cur.Span)
	if p.cur.IsEvent(markup.ParagraphEnd) {
		p.advance()
	}
	if err != nil {
		return Result{Err: err}
	}
	para.Nodes = nodes
	return Result{Paragraph: para}
}

// parseNodes reads nodes until the paragraph ends or, inside a group, until
// closer shows up. The closer itself is not consumed.
func (p *Parser) parseNodes(closer rune, opener token.Token) ([]ast.Node, *Error) {
	var nodes []ast.Node
	for {
		if p.atParagraphEnd() {
			if closer != 0 {
				return nodes, &Error{Code: UnexpectedEnd, Span: opener.Span, Value: opener.Char}
			}
			return nodes, nil
		}
		if closer != 0 && p.atCloser(closer) {
			return nodes, nil
		}
		n, err := p.parseNode()
		if err != nil {
			return nodes, err
		}
		nodes = append(nodes, n)
	}
}

func (p *Parser) parseNode() (ast.Node, *Error) {
	tok := p.cur
	if tok.Kind == token.Event {
		p.advance()
		n := &ast.Event{Event: tok.Event}
		n.Space = p.takeSpace(tok.Span.End)
		return n, nil
	}
	switch kind := tok.CharKind(); {
	case kind == charkind.HalfLetter || kind == charkind.FullLetter:
		return p.parseContent(kind), nil
	case kind == charkind.ChineseLeftQuote:
		closer, _ := charkind.RightQuoteFor(tok.Char)
		return p.parseGroup(closer)
	case kind == charkind.WesternQuote && !p.isApostrophe():
		return p.parseGroup(tok.Char)
	case kind == charkind.ChineseRightQuote:
		return nil, &Error{Code: UnclosedQuotationMark, Span: tok.Span, Value: tok.Char}
	}
	p.advance()
	n := &ast.Char{Value: ast.NewOffsetValue(tok.Char, tok.Span)}
	n.Space = p.takeSpace(tok.Span.End)
	return n, nil
}
