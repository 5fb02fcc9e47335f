package rules

import "zhfmt/internal/ast"

// A gap is the whitespace between two visible siblings: the trailing space of
// the left one plus the trailing spaces of the wrapper events in between.
// `中 **a**` has two slots between 中 and a: after 中 and after `**`.
//
// The host slot is the one reached by moving past end wrappers and stopping
// before the first start wrapper, so space always lands outside the markup:
// `中** a**` becomes `中 **a**`.
type gap struct {
	slots []*ast.OffsetValue[ast.Space]
	host  int
}

// gapBetween collects the slots from nodes[left] up to nodes[right]
// (exclusive). right may be len(nodes).
func (c *Cursor) gapBetween(left, right int) gap {
	g := gap{}
	g.slots = append(g.slots, c.nodes[left].SpaceAfter())
	hostFixed := false
	for i := left + 1; i < right; i++ {
		g.slots = append(g.slots, c.nodes[i].SpaceAfter())
		if hostFixed {
			continue
		}
		if ast.IsEndWrapper(c.nodes[i]) {
			g.host = i - left
		} else {
			hostFixed = true
		}
	}
	return g
}

func (g gap) set(s ast.Space) {
	for i, slot := range g.slots {
		if i == g.host {
			slot.Set(s)
		} else {
			slot.Set(ast.NoSpace)
		}
	}
}

func (g gap) revert() {
	for _, slot := range g.slots {
		slot.Revert()
	}
}

func (c *Cursor) gapAfter() gap {
	right := c.AfterVisibleIndex()
	if right < 0 {
		right = len(c.nodes)
	}
	return c.gapBetween(c.index, right)
}

// gapBefore is empty when nothing visible precedes the current node.
func (c *Cursor) gapBefore() gap {
	left := c.BeforeVisibleIndex()
	if left < 0 {
		return gap{}
	}
	return c.gapBetween(left, c.index)
}

func (c *Cursor) setGapAfter(s ast.Space) { c.gapAfter().set(s) }
func (c *Cursor) setGapBefore(s ast.Space) { c.gapBefore().set(s) }
func (c *Cursor) revertGapAfter() { c.gapAfter().revert() }
func (c *Cursor) revertGapBefore() { c.gapBefore().revert() }
