package rules

import (
	"zhfmt/internal/ast"
	"zhfmt/internal/charkind"
	"zhfmt/internal/config"
)

// SpaceQuotation fixes the space inside and around quotation groups.
// Full-width (or Chinese) marks follow NoSpaceOutsideFullwidthQuotation,
// Western ones SpaceOutsideHalfwidthQuotation.
func SpaceQuotation(c *Cursor, cfg *config.Config) {
	g, ok := c.Current().(*ast.Group)
	if !ok {
		return
	}
	if cfg.NoSpaceInsideQuotation {
		quotationInside(g)
	}

	halfWant, halfOK := cfg.SpaceOutsideHalfwidthQuotation.Want()
	if !cfg.NoSpaceOutsideFullwidthQuotation && !halfOK {
		return
	}
	apply := func(wide bool, set func(ast.Space)) {
		switch {
		case wide:
			if cfg.NoSpaceOutsideFullwidthQuotation {
				set(ast.NoSpace)
			}
		case halfOK:
			set(ast.SpaceFromBool(halfWant))
		}
	}

	if next, ok := c.AfterVisible().(*ast.Group); ok {
		wide := charkind.IsWideOrChinese(g.End.Value()) || charkind.IsWideOrChinese(next.Start.Value())
		apply(wide, c.setGapAfter)
	} else if after := c.AfterVisible(); after != nil && (ast.IsContent(after) || ast.IsCode(after)) {
		apply(charkind.IsWideOrChinese(g.End.Value()), c.setGapAfter)
	}

	// group×group is handled from the left group
	if before := c.BeforeVisible(); before != nil && (ast.IsContent(before) || ast.IsCode(before)) {
		apply(charkind.IsWideOrChinese(g.Start.Value()), c.setGapBefore)
	}
}

func quotationInside(g *ast.Group) {
	if len(g.Nodes) == 0 {
		g.Inner.Set(ast.NoSpace)
		return
	}
	if !ast.IsCharAnd(g.Nodes[0], charkind.IsRight) {
		g.Inner.Set(ast.NoSpace)
	}
	if last := g.Nodes[len(g.Nodes)-1]; !ast.IsCharAnd(last, charkind.IsLeft) {
		last.RemoveSpaceAfter()
	}
}
