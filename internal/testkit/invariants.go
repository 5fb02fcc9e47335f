// Package testkit holds invariant checks shared by unit and fuzz tests.
package testkit

import (
	"fmt"

	"zhfmt/internal/ast"
	"zhfmt/internal/source"
)

// CheckParagraph runs the span invariants on a parsed paragraph:
// 1) Leading starts at the paragraph start
// 2) every trailing space starts exactly at the end of its node body
// 3) nodes and spaces are ordered and never overlap
// 4) group children lie between the group's inner space and its closing mark
// 5) everything stays inside the paragraph span
func CheckParagraph(p *ast.Paragraph) error {
	if p == nil {
		return fmt.Errorf("nil paragraph")
	}
	if p.Leading.Span().Start != p.Span.Start {
		return fmt.Errorf("leading space %v does not start at paragraph %v", p.Leading.Span(), p.Span)
	}
	end, err := checkNodes(p.Nodes, p.Leading.Span().End)
	if err != nil {
		return err
	}
	if end > p.Span.End {
		return fmt.Errorf("nodes end at %d beyond paragraph %v", end, p.Span)
	}
	return nil
}

// checkNodes verifies a sibling list starting no earlier than from and
// returns the end of the last trailing space.
func checkNodes(nodes []ast.Node, from uint32) (uint32, error) {
	pos := from
	for i, n := range nodes {
		body := ast.NodeSpan(n)
		if body.Start < pos {
			return 0, fmt.Errorf("node %d %v starts before %d", i, body, pos)
		}
		if body.End < body.Start {
			return 0, fmt.Errorf("node %d has inverted span %v", i, body)
		}
		if g, ok := n.(*ast.Group); ok {
			if err := checkGroup(g); err != nil {
				return 0, fmt.Errorf("node %d: %w", i, err)
			}
		} else if _, isEvent := n.(*ast.Event); !isEvent && body.Empty() {
			return 0, fmt.Errorf("node %d has empty span %v", i, body)
		}
		space := n.SpaceAfter().Span()
		if err := checkSpace(space, body.End); err != nil {
			return 0, fmt.Errorf("node %d: %w", i, err)
		}
		pos = space.End
	}
	return pos, nil
}

func checkGroup(g *ast.Group) error {
	start, end := g.Start.Span(), g.End.Span()
	if start.Empty() || end.Empty() {
		return fmt.Errorf("group marks must be non-empty: %v %v", start, end)
	}
	if err := checkSpace(g.Inner.Span(), start.End); err != nil {
		return fmt.Errorf("inner: %w", err)
	}
	last, err := checkNodes(g.Nodes, g.Inner.Span().End)
	if err != nil {
		return err
	}
	if last > end.Start {
		return fmt.Errorf("group children end at %d after closing mark %v", last, end)
	}
	return nil
}

func checkSpace(space source.Span, at uint32) error {
	if space.Start != at {
		return fmt.Errorf("space %v does not start at node end %d", space, at)
	}
	if space.End < space.Start {
		return fmt.Errorf("space has inverted span %v", space)
	}
	return nil
}
