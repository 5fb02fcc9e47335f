package parser

import (
	"slices"
	"strings"

	"zhfmt/internal/ast"
	"zhfmt/internal/charkind"
	"zhfmt/internal/source"
	"zhfmt/internal/token"
)

// parseContent собирает максимальную последовательность букв одной ширины.
func (p *Parser) parseContent(kind charkind.Kind) ast.Node {
	var sb strings.Builder
	span := p.cur.Span
	for p.cur.Kind == token.Char && p.cur.CharKind() == kind {
		sb.WriteRune(p.cur.Char)
		span = span.Cover(p.cur.Span)
		p.advance()
	}
	value := ast.NewOffsetValue(sb.String(), span)
	if kind == charkind.FullLetter {
		n := &ast.FullContent{Value: value}
		n.Space = p.takeSpace(span.End)
		return n
	}
	n := &ast.HalfContent{Value: value}
	n.Space = p.takeSpace(span.End)
	return n
}

func (p *Parser) parseGroup(closer rune) (ast.Node, *Error) {
	open := p.cur
	p.advance()
	p.closers = append(p.closers, closer)

	g := &ast.Group{Start: ast.NewOffsetValue(open.Char, open.Span)}
	g.Inner = p.takeSpace(open.Span.End)
	nodes, err := p.parseNodes(closer, open)
	if err != nil {
		return nil, err
	}
	g.Nodes = nodes

	end := p.cur
	p.advance()
	p.closers = p.closers[:len(p.closers)-1]
	g.End = ast.NewOffsetValue(end.Char, end.Span)
	g.Space = p.takeSpace(end.Span.End)
	return g, nil
}

// takeSpace жадно забирает пробельные символы, начиная с позиции at.
func (p *Parser) takeSpace(at uint32) ast.OffsetValue[ast.Space] {
	var sb strings.Builder
	span := source.Span{File: p.cur.Span.File, Start: at, End: at}
	for p.cur.Kind == token.Char && p.cur.CharKind() == charkind.Space {
		sb.WriteRune(p.cur.Char)
		span.End = p.cur.Span.End
		p.advance()
	}
	return ast.NewOffsetValue(ast.Space(sb.String()), span)
}

func (p *Parser) atCloser(closer rune) bool {
	if p.cur.Kind != token.Char || p.cur.Char != closer {
		return false
	}
	return closer != '\'' || !p.betweenHalfLetters()
}

// isApostrophe: `'` внутри слова (don't) или сразу после него (students'),
// если ни одна открытая группа не ждёт `'`.
func (p *Parser) isApostrophe() bool {
	if p.cur.Char != '\'' || !isHalfLetter(p.prev) {
		return false
	}
	return isHalfLetter(p.next) || !slices.Contains(p.closers, '\'')
}

func (p *Parser) betweenHalfLetters() bool {
	return isHalfLetter(p.prev) && isHalfLetter(p.next)
}

func isHalfLetter(t token.Token) bool {
	return t.Kind == token.Char && t.CharKind() == charkind.HalfLetter
}
