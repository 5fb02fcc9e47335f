package ast

import (
	"testing"

	"zhfmt/internal/markup"
	"zhfmt/internal/source"
)

func sp(start, end uint32) source.Span { return source.Span{File: 1, Start: start, End: end} }

func TestOffsetValueSetRevert(t *testing.T) {
	v := NewOffsetValue(',', sp(0, 1))
	if v.IsModified() || v.Value() != ',' {
		t.Fatalf("fresh value must be unmodified")
	}
	v.Set('，')
	if got, ok := v.Modified(); !ok || got != '，' || v.Value() != '，' {
		t.Fatalf("Set did not record replacement: %q %v", got, ok)
	}
	if v.Original() != ',' {
		t.Fatalf("original changed to %q", v.Original())
	}
	v.Set(',')
	if v.IsModified() {
		t.Fatalf("setting the original must clear the replacement")
	}
	v.Set('。')
	v.Revert()
	if v.IsModified() || v.Value() != ',' {
		t.Fatalf("Revert must restore the original")
	}
	if v.Span() != sp(0, 1) {
		t.Fatalf("span changed: %v", v.Span())
	}
}

func TestSpace(t *testing.T) {
	if SpaceFromBool(true) != OneSpace || SpaceFromBool(false) != NoSpace {
		t.Fatalf("SpaceFromBool mismatch")
	}
	if NoSpace.Present() || !Space("\t ").Present() {
		t.Fatalf("Present mismatch")
	}
}

func TestTrailingHelpers(t *testing.T) {
	c := &Char{Value: NewOffsetValue('a', sp(0, 1))}
	c.Space = NewOffsetValue(Space("  "), sp(1, 3))
	var n Node = c
	if !n.HasSpaceAfter() {
		t.Fatalf("expected original space")
	}
	n.RemoveSpaceAfter()
	if n.HasSpaceAfter() || !n.SpaceAfter().IsModified() {
		t.Fatalf("RemoveSpaceAfter did not apply")
	}
	n.AddSpaceAfter()
	if n.SpaceAfter().Value() != OneSpace {
		t.Fatalf("AddSpaceAfter = %q", n.SpaceAfter().Value())
	}
	n.RevertSpaceAfter()
	if n.SpaceAfter().Value() != "  " {
		t.Fatalf("RevertSpaceAfter = %q", n.SpaceAfter().Value())
	}
}

func TestPredicatesAndSpans(t *testing.T) {
	start := &Event{Event: markup.Event{Kind: markup.StrongStart, Span: sp(0, 2)}}
	end := &Event{Event: markup.Event{Kind: markup.StrongEnd, Span: sp(5, 7)}}
	code := &Event{Event: markup.Event{Kind: markup.Code, Span: sp(8, 11)}}
	g := &Group{
		Start: NewOffsetValue('“', sp(2, 5)),
		End:   NewOffsetValue('”', sp(9, 12)),
	}
	if !IsStartWrapper(start) || IsEndWrapper(start) || !IsWrapper(end) || IsWrapper(code) {
		t.Fatalf("wrapper predicates mismatch")
	}
	if !IsCode(code) || IsCode(start) {
		t.Fatalf("IsCode mismatch")
	}
	if got := NodeSpan(g); got != sp(2, 12) {
		t.Fatalf("group span = %v", got)
	}
	if IsContent(g) || !IsContent(&FullContent{}) {
		t.Fatalf("IsContent mismatch")
	}
}

func TestParagraphIsModified(t *testing.T) {
	inner := &Char{Value: NewOffsetValue(',', sp(3, 4))}
	p := &Paragraph{Nodes: []Node{&Group{Nodes: []Node{inner}}}}
	if p.IsModified() {
		t.Fatalf("fresh paragraph must be unmodified")
	}
	inner.Value.Set('，')
	if !p.IsModified() {
		t.Fatalf("nested modification not detected")
	}
}

func TestCharPredicatesOriginalAndValue(t *testing.T) {
	c := &Char{Value: NewOffsetValue('）', sp(0, 3))}
	c.Value.Set(')')
	isHalf := func(r rune) bool { return r == ')' }
	if IsCharAnd(c, isHalf) {
		t.Fatalf("IsCharAnd must look at the original value")
	}
	if !IsCharValueAnd(c, isHalf) {
		t.Fatalf("IsCharValueAnd must look at the current value")
	}
	if IsCharValueAnd(&HalfContent{Value: NewOffsetValue(")", sp(0, 1))}, isHalf) {
		t.Fatalf("content is not a char")
	}
}
