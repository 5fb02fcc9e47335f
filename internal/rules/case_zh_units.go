package rules

import (
	"zhfmt/internal/ast"
	"zhfmt/internal/charkind"
	"zhfmt/internal/config"
)

// CaseZhUnits keeps numbers glued to Chinese units: `2019年06月26号` stays as is.
// Both gaps around the number go back to what the source had, whatever sits
// before it.
func CaseZhUnits(c *Cursor, cfg *config.Config) {
	num, ok := c.Current().(*ast.HalfContent)
	if !ok || !charkind.IsNumeric(num.Value.Value()) {
		return
	}
	text, ok := c.AfterVisible().(*ast.FullContent)
	if !ok || !isZhUnit(text.Value.Value(), cfg) {
		return
	}
	c.revertGapAfter()
	c.revertGapBefore()
}
