package ast

import (
	"zhfmt/internal/markup"
	"zhfmt/internal/source"
)

// IsStartWrapper reports an inline wrapper start event (emphasis, link, ...).
func IsStartWrapper(n Node) bool {
	ev, ok := n.(*Event)
	return ok && ev.Event.Kind.IsStart()
}

// IsEndWrapper reports an inline wrapper end event.
func IsEndWrapper(n Node) bool {
	ev, ok := n.(*Event)
	return ok && ev.Event.Kind.IsEnd()
}

func IsWrapper(n Node) bool { return IsStartWrapper(n) || IsEndWrapper(n) }

// IsEventKind reports whether n is an event of kind k.
func IsEventKind(n Node, k markup.Kind) bool {
	ev, ok := n.(*Event)
	return ok && ev.Event.Kind == k
}

// IsCode reports an inline code span.
func IsCode(n Node) bool { return IsEventKind(n, markup.Code) }

// IsCharAnd reports whether n is a Char whose original value satisfies pred.
func IsCharAnd(n Node, pred func(rune) bool) bool {
	c, ok := n.(*Char)
	return ok && pred(c.Value.Original())
}

// IsCharValueAnd is IsCharAnd over the current (possibly rewritten) value.
func IsCharValueAnd(n Node, pred func(rune) bool) bool {
	c, ok := n.(*Char)
	return ok && pred(c.Value.Value())
}

// IsContent reports HalfContent or FullContent.
func IsContent(n Node) bool {
	switch n.(type) {
	case *HalfContent, *FullContent:
		return true
	}
	return false
}

// NodeSpan is the span of the node body without its trailing space.
func NodeSpan(n Node) source.Span {
	switch n := n.(type) {
	case *Char:
		return n.Value.Span()
	case *HalfContent:
		return n.Value.Span()
	case *FullContent:
		return n.Value.Span()
	case *Event:
		return n.Event.Span
	case *Group:
		return n.Start.Span().Cover(n.End.Span())
	}
	return source.Span{}
}

// Inspect walks nodes depth-first in source order. Children of a group are
// visited only when fn returns true for the group.
func Inspect(nodes []Node, fn func(Node) bool) {
	for _, n := range nodes {
		if !fn(n) {
			continue
		}
		if g, ok := n.(*Group); ok {
			Inspect(g.Nodes, fn)
		}
	}
}

// IsModified reports whether any value in the paragraph has a replacement.
func (p *Paragraph) IsModified() bool {
	if p.Leading.IsModified() {
		return true
	}
	modified := false
	Inspect(p.Nodes, func(n Node) bool {
		if modified {
			return false
		}
		if n.SpaceAfter().IsModified() {
			modified = true
		}
		switch n := n.(type) {
		case *Char:
			modified = modified || n.Value.IsModified()
		case *HalfContent:
			modified = modified || n.Value.IsModified()
		case *FullContent:
			modified = modified || n.Value.IsModified()
		case *Group:
			modified = modified || n.Start.IsModified() || n.Inner.IsModified() || n.End.IsModified()
		}
		return !modified
	})
	return modified
}
