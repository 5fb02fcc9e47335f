package rules

import (
	"strings"

	"zhfmt/internal/ast"
	"zhfmt/internal/charkind"
	"zhfmt/internal/config"
)

var toHalfwidth = map[rune]rune{
	'，': ',', '。': '.', '；': ';', '：': ':', '？': '?', '！': '!',
	'（': '(', '）': ')', '［': '[', '］': ']', '｛': '{', '｝': '}',
	'“': '"', '”': '"', '‘': '\'', '’': '\'',
}

var toFullwidth = map[rune]rune{
	',': '，', '.': '。', ';': '；', ':': '：', '?': '？', '!': '！',
	'(': '（', ')': '）', '[': '［', ']': '］', '{': '｛', '}': '｝',
}

// PunctuationWidth converts marks listed in HalfwidthPunctuation /
// FullwidthPunctuation to that width.
//
// Marks glued between half-width runs (`1,000`) and runs of Western marks
// (`?!`) are left alone. A Western-quoted group becomes “…” or ‘…’ whenever
// those marks are in FullwidthPunctuation, whatever the group holds.
func PunctuationWidth(c *Cursor, cfg *config.Config) {
	if g, ok := c.Current().(*ast.Group); ok {
		groupWidth(g, cfg)
		return
	}
	if !ast.IsCharAnd(c.Current(), charkind.IsPunctuation) {
		return
	}
	if c.IsHalfwidthPunctuationWithoutSpaceAround() || c.IsSuccessiveHalfwidthPunctuation() {
		return
	}
	ch := c.Current().(*ast.Char)
	if r := ch.Value.Original(); charkind.IsSingle(r) || charkind.IsBracket(r) {
		convertWidth(&ch.Value, cfg)
	}
}

func groupWidth(g *ast.Group, cfg *config.Config) {
	var left, right rune
	switch g.Start.Original() {
	case '"':
		left, right = '“', '”'
	case '\'':
		left, right = '‘', '’'
	default:
		convertWidth(&g.Start, cfg)
		convertWidth(&g.End, cfg)
		return
	}
	if strings.ContainsRune(cfg.FullwidthPunctuation, left) {
		g.Start.Set(left)
	}
	if strings.ContainsRune(cfg.FullwidthPunctuation, right) {
		g.End.Set(right)
	}
}

func convertWidth(v *ast.OffsetValue[rune], cfg *config.Config) {
	r := v.Original()
	if half, ok := toHalfwidth[r]; ok && strings.ContainsRune(cfg.HalfwidthPunctuation, half) {
		v.Set(half)
	}
	if full, ok := toFullwidth[r]; ok && strings.ContainsRune(cfg.FullwidthPunctuation, full) {
		v.Set(full)
	}
}
