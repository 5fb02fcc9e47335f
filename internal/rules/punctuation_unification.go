package rules

import (
	"zhfmt/internal/ast"
	"zhfmt/internal/config"
)

var (
	toSimplified  = map[rune]rune{'「': '“', '」': '”', '『': '‘', '』': '’'}
	toTraditional = map[rune]rune{'“': '「', '”': '」', '‘': '『', '’': '』'}
)

// PunctuationUnification converges quotation marks to one script.
func PunctuationUnification(c *Cursor, cfg *config.Config) {
	g, ok := c.Current().(*ast.Group)
	if !ok {
		return
	}
	var table map[rune]rune
	switch cfg.UnifiedPunctuation {
	case config.ScriptSimplified:
		table = toSimplified
	case config.ScriptTraditional:
		table = toTraditional
	default:
		return
	}
	if r, ok := table[g.Start.Value()]; ok {
		g.Start.Set(r)
	}
	if r, ok := table[g.End.Value()]; ok {
		g.End.Set(r)
	}
}
