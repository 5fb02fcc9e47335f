package rules

import (
	"strings"
	"unicode/utf8"

	"zhfmt/internal/ast"
	"zhfmt/internal/charkind"
	"zhfmt/internal/config"
)

// SpaceLetters normalises the gap between two letter runs.
//
//	half×half  exactly one space, `**foo**bar` becomes `**foo** bar`
//	full×full  whitespace is removed
//	mixed      SpaceBetweenMixedwidthContent; `2019年` keeps its shape when
//	           the full run is exactly one unit from SkipZhUnits
func SpaceLetters(c *Cursor, cfg *config.Config) {
	cur, after := c.Current(), c.AfterVisible()
	if !ast.IsContent(cur) || after == nil || !ast.IsContent(after) {
		return
	}
	_, curHalf := cur.(*ast.HalfContent)
	_, afterHalf := after.(*ast.HalfContent)
	switch {
	case curHalf && afterHalf:
		if cfg.SpaceBetweenHalfwidthContent {
			c.setGapAfter(ast.OneSpace)
		}
	case !curHalf && !afterHalf:
		if cfg.NoSpaceBetweenFullwidthContent {
			c.setGapAfter(ast.NoSpace)
		}
	default:
		want, ok := cfg.SpaceBetweenMixedwidthContent.Want()
		if !ok {
			return
		}
		if curHalf && isNumberBeforeUnit(cur.(*ast.HalfContent), after.(*ast.FullContent), cfg) {
			return
		}
		c.setGapAfter(ast.SpaceFromBool(want))
	}
}

func isNumberBeforeUnit(num *ast.HalfContent, text *ast.FullContent, cfg *config.Config) bool {
	return charkind.IsNumeric(num.Value.Value()) && isZhUnit(text.Value.Value(), cfg)
}

// isZhUnit: `年` is a unit, `年度` is not.
func isZhUnit(s string, cfg *config.Config) bool {
	r, size := utf8.DecodeRuneInString(s)
	return size > 0 && size == len(s) && strings.ContainsRune(cfg.SkipZhUnits, r)
}
