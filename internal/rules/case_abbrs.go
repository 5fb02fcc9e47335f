package rules

import (
	"strings"

	"zhfmt/internal/ast"
	"zhfmt/internal/config"
)

// CaseAbbrs restores the dot of a known abbreviation (`vs.`, `e.g.`) and the
// space after it, undoing width and spacing changes made by earlier rules.
func CaseAbbrs(c *Cursor, cfg *config.Config) {
	dot, ok := c.Current().(*ast.Char)
	if !ok || dot.Value.Original() != '.' || len(cfg.SkipAbbrs) == 0 {
		return
	}
	// inner dot of `e.g`: the last dot decides
	if _, ok := c.After().(*ast.HalfContent); ok && !dot.SpaceAfter().Original().Present() {
		return
	}
	for _, abbr := range cfg.SkipAbbrs {
		if c.matchAbbr(abbr) {
			dot.Value.Revert()
			c.revertGapAfter()
			return
		}
	}
}

// matchAbbr compares the nodes before the current dot with abbr, which is
// case-sensitive and may omit its final dot (`a.k.a`).
func (c *Cursor) matchAbbr(abbr string) bool {
	parts := strings.Split(strings.TrimSuffix(abbr, "."), ".")
	i := c.index - 1
	for k := len(parts) - 1; k >= 0; k-- {
		word, ok := c.at(i).(*ast.HalfContent)
		if !ok || word.Value.Original() != parts[k] || word.SpaceAfter().Original().Present() {
			return false
		}
		i--
		if k == 0 {
			break
		}
		sep, ok := c.at(i).(*ast.Char)
		if !ok || sep.Value.Original() != '.' || sep.SpaceAfter().Original().Present() {
			return false
		}
		i--
	}
	// `x.vs.` is not `vs.`
	prev, ok := c.at(i).(*ast.Char)
	return !ok || prev.Value.Original() != '.' || prev.SpaceAfter().Original().Present()
}
