package rules

import (
	"zhfmt/internal/ast"
	"zhfmt/internal/charkind"
)

// Cursor points at one node inside a sibling list. Neighbours never cross
// group boundaries: a group's children form their own list.
type Cursor struct {
	nodes []ast.Node
	index int
}

// NewCursor positions a cursor at nodes[index].
func NewCursor(nodes []ast.Node, index int) *Cursor {
	return &Cursor{nodes: nodes, index: index}
}

func (c *Cursor) Index() int { return c.index }

func (c *Cursor) Current() ast.Node { return c.nodes[c.index] }

func (c *Cursor) at(i int) ast.Node {
	if i < 0 || i >= len(c.nodes) {
		return nil
	}
	return c.nodes[i]
}

// Before is the raw previous sibling, or nil.
func (c *Cursor) Before() ast.Node { return c.at(c.index - 1) }

// After is the raw next sibling, or nil.
func (c *Cursor) After() ast.Node { return c.at(c.index + 1) }

// BeforeVisibleIndex is the index of the closest previous sibling that is not
// a wrapper event, or -1.
func (c *Cursor) BeforeVisibleIndex() int {
	for i := c.index - 1; i >= 0; i-- {
		if !ast.IsWrapper(c.nodes[i]) {
			return i
		}
	}
	return -1
}

// AfterVisibleIndex is the index of the closest next sibling that is not a
// wrapper event, or -1.
func (c *Cursor) AfterVisibleIndex() int {
	for i := c.index + 1; i < len(c.nodes); i++ {
		if !ast.IsWrapper(c.nodes[i]) {
			return i
		}
	}
	return -1
}

func (c *Cursor) BeforeVisible() ast.Node { return c.at(c.BeforeVisibleIndex()) }

func (c *Cursor) AfterVisible() ast.Node { return c.at(c.AfterVisibleIndex()) }

// IsHalfwidthPunctuationWithoutSpaceAround: a Western mark glued between two
// half-width runs, as in `1,000`, `a.b` or `foo/bar`. Marks are compared by
// their current value, so a `）` already turned into `)` counts as Western.
func (c *Cursor) IsHalfwidthPunctuationWithoutSpaceAround() bool {
	cur, before, after := c.Current(), c.Before(), c.After()
	if before == nil || after == nil {
		return false
	}
	_, beforeHalf := before.(*ast.HalfContent)
	_, afterHalf := after.(*ast.HalfContent)
	return ast.IsCharValueAnd(cur, charkind.IsWesternPunctuation) &&
		!cur.HasSpaceAfter() &&
		beforeHalf && !before.HasSpaceAfter() &&
		afterHalf
}

// IsSuccessiveHalfwidthPunctuation: the current Western mark touches another
// one, as in `?!` or `...`.
func (c *Cursor) IsSuccessiveHalfwidthPunctuation() bool {
	cur := c.Current()
	if !ast.IsCharValueAnd(cur, charkind.IsWesternPunctuation) {
		return false
	}
	if before := c.Before(); before != nil &&
		ast.IsCharValueAnd(before, charkind.IsWesternPunctuation) && !before.HasSpaceAfter() {
		return true
	}
	after := c.After()
	return after != nil && ast.IsCharValueAnd(after, charkind.IsWesternPunctuation) && !cur.HasSpaceAfter()
}
