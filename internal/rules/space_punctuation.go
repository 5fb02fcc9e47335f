package rules

import (
	"zhfmt/internal/ast"
	"zhfmt/internal/charkind"
	"zhfmt/internal/config"
)

// SpacePunctuation fixes the space around pause and stop marks (，。,.:;!?).
func SpacePunctuation(c *Cursor, cfg *config.Config) {
	cur, ok := c.Current().(*ast.Char)
	if !ok || !charkind.IsPauseStop(cur.Value.Value()) {
		return
	}
	if c.IsHalfwidthPunctuationWithoutSpaceAround() {
		return
	}

	if cfg.NoSpaceBeforePauseOrStop {
		if before := c.BeforeVisible(); before != nil && isSolidOr(before, charkind.IsRightBracket) {
			c.setGapBefore(ast.NoSpace)
		}
	}

	after := c.AfterVisible()
	if after == nil || !isSolidOr(after, charkind.IsLeftBracket) {
		return
	}
	if charkind.IsWesternPunctuation(cur.Value.Value()) {
		if c.IsSuccessiveHalfwidthPunctuation() {
			return
		}
		if want, ok := cfg.SpaceAfterHalfwidthPauseOrStop.Want(); ok {
			c.setGapAfter(ast.SpaceFromBool(want))
		}
		return
	}
	if cfg.NoSpaceAfterFullwidthPauseOrStop {
		c.setGapAfter(ast.NoSpace)
	}
}

// isSolid: letters, quotations and inline code; the things punctuation
// spacing is measured against.
func isSolid(n ast.Node) bool {
	if ast.IsContent(n) || ast.IsCode(n) {
		return true
	}
	_, isGroup := n.(*ast.Group)
	return isGroup
}

func isSolidOr(n ast.Node, pred func(rune) bool) bool {
	return isSolid(n) || ast.IsCharAnd(n, pred)
}
