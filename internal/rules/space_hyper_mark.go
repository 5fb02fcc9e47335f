package rules

import (
	"zhfmt/internal/ast"
	"zhfmt/internal/config"
)

// SpaceHyperMark removes space just inside markup wrappers: `** a **` → `**a**`.
func SpaceHyperMark(c *Cursor, cfg *config.Config) {
	if !cfg.NoSpaceInsideHyperMark {
		return
	}
	cur, after := c.Current(), c.After()
	if after == nil {
		return
	}
	curStart, curEnd := ast.IsStartWrapper(cur), ast.IsEndWrapper(cur)
	afterStart, afterEnd := ast.IsStartWrapper(after), ast.IsEndWrapper(after)
	switch {
	case curStart && afterStart,
		curEnd && afterEnd,
		curStart && !ast.IsWrapper(after),
		!ast.IsWrapper(cur) && afterEnd:
		cur.RemoveSpaceAfter()
	}
}
