package rules

import (
	"zhfmt/internal/ast"
	"zhfmt/internal/config"
)

// SpaceCode fixes the space between inline code and adjacent text or code.
func SpaceCode(c *Cursor, cfg *config.Config) {
	if !ast.IsCode(c.Current()) {
		return
	}
	want, ok := cfg.SpaceOutsideCode.Want()
	if !ok {
		return
	}
	s := ast.SpaceFromBool(want)
	if before := c.BeforeVisible(); before != nil && (ast.IsContent(before) || ast.IsCode(before)) {
		c.setGapBefore(s)
	}
	if after := c.AfterVisible(); after != nil && (ast.IsContent(after) || ast.IsCode(after)) {
		c.setGapAfter(s)
	}
}
