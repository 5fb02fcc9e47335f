package lint

import (
	"zhfmt/internal/ast"
	"zhfmt/internal/ignore"
	"zhfmt/internal/source"
)

// splicer walks trees backwards so that every span it replaces still points
// into the untouched prefix of text.
type splicer struct {
	text    []byte
	ranges  ignore.Set
	changes []Change
}

func (s *splicer) paragraph(p *ast.Paragraph) {
	s.nodes(p.Nodes)
	s.space(&p.Leading)
}

func (s *splicer) nodes(nodes []ast.Node) {
	for i := len(nodes) - 1; i >= 0; i-- {
		s.node(nodes[i])
	}
}

func (s *splicer) node(n ast.Node) {
	s.space(n.SpaceAfter())
	switch n := n.(type) {
	case *ast.Char:
		s.char(&n.Value)
	case *ast.HalfContent:
		s.content(&n.Value)
	case *ast.FullContent:
		s.content(&n.Value)
	case *ast.Group:
		s.char(&n.End)
		s.nodes(n.Nodes)
		s.space(&n.Inner)
		s.char(&n.Start)
	}
}

func (s *splicer) char(v *ast.OffsetValue[rune]) {
	if m, ok := v.Modified(); ok {
		s.replace(CharChange, v.Span(), string(v.Original()), string(m))
	}
}

func (s *splicer) content(v *ast.OffsetValue[string]) {
	if m, ok := v.Modified(); ok {
		s.replace(StringChange, v.Span(), v.Original(), m)
	}
}

func (s *splicer) space(v *ast.OffsetValue[ast.Space]) {
	if m, ok := v.Modified(); ok {
		s.replace(SpaceChange, v.Span(), string(v.Original()), string(m))
	}
}

func (s *splicer) replace(kind ChangeKind, span source.Span, original, modified string) {
	if s.ranges.Touches(span) {
		return
	}
	tail := append([]byte(modified), s.text[span.End:]...)
	s.text = append(s.text[:span.Start], tail...)
	s.changes = append(s.changes, Change{Kind: kind, Span: span, Original: original, Modified: modified})
}
