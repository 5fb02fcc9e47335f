package rules

import (
	"zhfmt/internal/ast"
	"zhfmt/internal/charkind"
	"zhfmt/internal/config"
)

// SpaceBracket fixes the space inside and around brackets.
//
// Half-width brackets glued to half-width text on the outside, as in
// `minute(s)` or `call()x`, are part of a word and keep their spacing.
func SpaceBracket(c *Cursor, cfg *config.Config) {
	cur, after := c.Current(), c.AfterVisible()

	if cfg.NoSpaceInsideBracket && after != nil {
		switch {
		case ast.IsCharAnd(cur, charkind.IsLeftBracket):
			c.setGapAfter(ast.NoSpace)
		case ast.IsCharAnd(after, charkind.IsRightBracket):
			c.setGapAfter(ast.NoSpace)
		}
	}

	if after == nil {
		return
	}
	afterIdx := c.AfterVisibleIndex()
	var brackets []rune
	switch {
	case ast.IsCharAnd(cur, charkind.IsRightBracket) && ast.IsCharAnd(after, charkind.IsLeftBracket):
		if c.inWord(c.matchLeft(c.index)) || c.inWord(afterIdx) {
			return
		}
		brackets = []rune{charValue(cur), charValue(after)}
	case ast.IsCharAnd(cur, charkind.IsRightBracket) && isSolid(after):
		if c.inWord(c.matchLeft(c.index)) {
			return
		}
		brackets = []rune{charValue(cur)}
	case isSolid(cur) && ast.IsCharAnd(after, charkind.IsLeftBracket):
		if c.inWord(afterIdx) {
			return
		}
		brackets = []rune{charValue(after)}
	default:
		return
	}

	full := false
	for _, r := range brackets {
		full = full || charkind.IsWideOrChinese(r)
	}
	if full {
		if cfg.NoSpaceOutsideFullwidthBracket {
			c.setGapAfter(ast.NoSpace)
		}
		return
	}
	if want, ok := cfg.SpaceOutsideHalfwidthBracket.Want(); ok {
		c.setGapAfter(ast.SpaceFromBool(want))
	}
}

func charValue(n ast.Node) rune {
	if ch, ok := n.(*ast.Char); ok {
		return ch.Value.Value()
	}
	return 0
}

// matchLeft finds the left bracket closing at nodes[right], or -1.
func (c *Cursor) matchLeft(right int) int {
	depth := 0
	for i := right; i >= 0; i-- {
		switch {
		case ast.IsCharAnd(c.nodes[i], charkind.IsRightBracket):
			depth++
		case ast.IsCharAnd(c.nodes[i], charkind.IsLeftBracket):
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// inWord reports a half-width left bracket at nodes[left] that is glued to
// the half-width text before it and opens onto half-width text (`s(x)`), or
// closes at once before it (`f()x`).
func (c *Cursor) inWord(left int) bool {
	if left <= 0 || !ast.IsCharAnd(c.nodes[left], charkind.IsLeftBracket) {
		return false
	}
	if charkind.IsWideOrChinese(charValue(c.nodes[left])) {
		return false
	}
	prev := c.nodes[left-1]
	if _, ok := prev.(*ast.HalfContent); !ok || prev.HasSpaceAfter() {
		return false
	}
	next := c.at(left + 1)
	if _, ok := next.(*ast.HalfContent); ok {
		return true
	}
	if next != nil && ast.IsCharAnd(next, charkind.IsRightBracket) && !c.nodes[left].HasSpaceAfter() {
		_, ok := c.at(left + 2).(*ast.HalfContent)
		return ok
	}
	return false
}
