// Package rules rewrites paragraph trees in place.
//
// A rule looks at one node through a Cursor and may set or revert values of
// that node and of the whitespace around it. Rules never add, drop or move
// nodes. Children of a group are handled before the group itself. Within one
// sibling list the width rules sweep every index first, so spacing rules
// always see neighbours with their final width. The remaining rules then run
// in a fixed order, one index at a time; later rules deliberately override
// earlier ones (CaseAbbrs and CaseZhUnits undo what the spacing rules did).
package rules

import (
	"reflect"

	"zhfmt/internal/ast"
	"zhfmt/internal/config"
)

// Rule inspects c.Current() and rewrites values according to cfg.
type Rule func(c *Cursor, cfg *config.Config)

// Named pairs a rule with its name for traces and dumps.
type Named struct {
	Name string
	Rule Rule
}

var ordered = []Named{
	{"punctuation-width", PunctuationWidth},
	{"punctuation-unification", PunctuationUnification},
	{"space-letters", SpaceLetters},
	{"space-punctuation", SpacePunctuation},
	{"space-quotation", SpaceQuotation},
	{"space-bracket", SpaceBracket},
	{"space-code", SpaceCode},
	{"space-hyper-mark", SpaceHyperMark},
	{"case-abbrs", CaseAbbrs},
	{"case-zh-units", CaseZhUnits},
}

// Rules returns the rules in execution order.
func Rules() []Rule {
	out := make([]Rule, len(ordered))
	for i, n := range ordered {
		out[i] = n.Rule
	}
	return out
}

// NamedRules returns the rules with their names, in execution order.
func NamedRules() []Named {
	return append([]Named(nil), ordered...)
}

// Run applies every rule to p, then TrimSpace when cfg asks for it.
func Run(p *ast.Paragraph, cfg *config.Config) {
	RunWith(p, cfg, Rules()...)
	if cfg.TrimSpace {
		TrimSpace(p)
	}
}

// RunWith applies only the given rules. Width rules among them sweep first;
// the others keep the given order.
func RunWith(p *ast.Paragraph, cfg *config.Config, rules ...Rule) {
	runNodes(p.Nodes, cfg, rules)
}

func runNodes(nodes []ast.Node, cfg *config.Config, rules []Rule) {
	width, rest := splitWidth(rules)
	for i := range nodes {
		if g, ok := nodes[i].(*ast.Group); ok {
			runNodes(g.Nodes, cfg, rules)
		}
	}
	sweep(nodes, cfg, width)
	sweep(nodes, cfg, rest)
}

func sweep(nodes []ast.Node, cfg *config.Config, rules []Rule) {
	if len(rules) == 0 {
		return
	}
	for i := range nodes {
		c := NewCursor(nodes, i)
		for _, rule := range rules {
			rule(c, cfg)
		}
	}
}

// widthRules decide which mark a punctuation node is; nothing else may
// look at a neighbour before they are done with it.
var widthRules = map[uintptr]bool{
	funcID(PunctuationWidth):       true,
	funcID(PunctuationUnification): true,
}

func funcID(r Rule) uintptr { return reflect.ValueOf(r).Pointer() }

// splitWidth keeps the relative order inside both halves.
func splitWidth(rules []Rule) (width, rest []Rule) {
	for _, r := range rules {
		if widthRules[funcID(r)] {
			width = append(width, r)
		} else {
			rest = append(rest, r)
		}
	}
	return width, rest
}

// TrimSpace drops whitespace at both ends of a paragraph.
func TrimSpace(p *ast.Paragraph) {
	p.Leading.Set(ast.NoSpace)
	if n := len(p.Nodes); n > 0 {
		p.Nodes[n-1].RemoveSpaceAfter()
	}
}
