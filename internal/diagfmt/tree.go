package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"zhfmt/internal/ast"
	"zhfmt/internal/parser"
	"zhfmt/internal/source"
)

type treeNode struct {
	label    string
	children []*treeNode
}

// FormatTreePretty печатает дерево абзацев файла в виде псевдографики.
func FormatTreePretty(w io.Writer, results []parser.Result, fs *source.FileSet) error {
	for idx, res := range results {
		root := buildParagraphNode(res, fs, idx)
		var sb strings.Builder
		sb.WriteString(root.label)
		sb.WriteByte('\n')
		writeTree(&sb, root.children, "")
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
	}
	return nil
}

func writeTree(sb *strings.Builder, nodes []*treeNode, prefix string) {
	for i, n := range nodes {
		last := i == len(nodes)-1
		branch, next := "├─ ", "│  "
		if last {
			branch, next = "└─ ", "   "
		}
		sb.WriteString(prefix)
		sb.WriteString(branch)
		sb.WriteString(n.label)
		sb.WriteByte('\n')
		writeTree(sb, n.children, prefix+next)
	}
}

func buildParagraphNode(res parser.Result, fs *source.FileSet, idx int) *treeNode {
	if res.Err != nil {
		return &treeNode{label: fmt.Sprintf("Paragraph[%d]: error %s: %s (span: %s)",
			idx, res.Err.Code, res.Err.Error(), formatSpan(res.Err.Span, fs))}
	}
	p := res.Paragraph
	root := &treeNode{label: fmt.Sprintf("Paragraph[%d] (span: %s)%s", idx, formatSpan(p.Span, fs), spaceSuffix("leading", p.Leading))}
	for _, n := range p.Nodes {
		root.children = append(root.children, buildNode(n, fs))
	}
	return root
}

func buildNode(n ast.Node, fs *source.FileSet) *treeNode {
	var label string
	switch v := n.(type) {
	case *ast.Char:
		label = fmt.Sprintf("Char %s", runeValue(v.Value))
	case *ast.HalfContent:
		label = fmt.Sprintf("HalfContent %s", stringValue(v.Value))
	case *ast.FullContent:
		label = fmt.Sprintf("FullContent %s", stringValue(v.Value))
	case *ast.Event:
		label = fmt.Sprintf("Event %s", v.Event.Kind)
	case *ast.Group:
		node := &treeNode{label: fmt.Sprintf("Group %s…%s (span: %s)%s%s",
			runeValue(v.Start), runeValue(v.End), formatSpan(ast.NodeSpan(v), fs),
			spaceSuffix("inner", v.Inner), spaceSuffix("space", v.Space))}
		for _, child := range v.Nodes {
			node.children = append(node.children, buildNode(child, fs))
		}
		return node
	default:
		label = fmt.Sprintf("%T", n)
	}
	return &treeNode{label: fmt.Sprintf("%s (span: %s)%s", label, formatSpan(ast.NodeSpan(n), fs), spaceSuffix("space", *n.SpaceAfter()))}
}

// runeValue показывает исходное значение и, если правила его поменяли, новое.
func runeValue(v ast.OffsetValue[rune]) string {
	if m, ok := v.Modified(); ok {
		return fmt.Sprintf("%q -> %q", v.Original(), m)
	}
	return fmt.Sprintf("%q", v.Original())
}

func stringValue(v ast.OffsetValue[string]) string {
	if m, ok := v.Modified(); ok {
		return fmt.Sprintf("%q -> %q", v.Original(), m)
	}
	return fmt.Sprintf("%q", v.Original())
}

func spaceSuffix(name string, v ast.OffsetValue[ast.Space]) string {
	if m, ok := v.Modified(); ok {
		return fmt.Sprintf(" %s=%q -> %q", name, string(v.Original()), string(m))
	}
	if v.Original().Present() {
		return fmt.Sprintf(" %s=%q", name, string(v.Original()))
	}
	return ""
}

type NodeOutput struct {
	Kind     string        `json:"kind"`
	Value    string        `json:"value,omitempty"`
	Modified *string       `json:"modified,omitempty"`
	Event    string        `json:"event,omitempty"`
	Span     source.Span   `json:"span"`
	Space    string        `json:"space,omitempty"`
	Children []*NodeOutput `json:"children,omitempty"`
}

type ParagraphOutput struct {
	Span    source.Span   `json:"span"`
	Leading string        `json:"leading,omitempty"`
	Error   *ErrorOutput  `json:"error,omitempty"`
	Nodes   []*NodeOutput `json:"nodes,omitempty"`
}

type ErrorOutput struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Span    source.Span `json:"span"`
}

// FormatTreeJSON выводит абзацы в JSON формате
func FormatTreeJSON(w io.Writer, results []parser.Result) error {
	output := make([]ParagraphOutput, 0, len(results))
	for _, res := range results {
		if res.Err != nil {
			output = append(output, ParagraphOutput{
				Span: res.Err.Span,
				Error: &ErrorOutput{
					Code:    res.Err.Code.DiagCode().ID(),
					Message: res.Err.Error(),
					Span:    res.Err.Span,
				},
			})
			continue
		}
		p := res.Paragraph
		out := ParagraphOutput{Span: p.Span, Leading: string(p.Leading.Value())}
		for _, n := range p.Nodes {
			out.Nodes = append(out.Nodes, nodeJSON(n))
		}
		output = append(output, out)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func nodeJSON(n ast.Node) *NodeOutput {
	out := &NodeOutput{Span: ast.NodeSpan(n), Space: string(n.SpaceAfter().Value())}
	switch v := n.(type) {
	case *ast.Char:
		out.Kind = "char"
		out.Value = string(v.Value.Original())
		if m, ok := v.Value.Modified(); ok {
			s := string(m)
			out.Modified = &s
		}
	case *ast.HalfContent:
		out.Kind = "half-content"
		out.Value = v.Value.Original()
		if m, ok := v.Value.Modified(); ok {
			out.Modified = &m
		}
	case *ast.FullContent:
		out.Kind = "full-content"
		out.Value = v.Value.Original()
		if m, ok := v.Value.Modified(); ok {
			out.Modified = &m
		}
	case *ast.Event:
		out.Kind = "event"
		out.Event = v.Event.Kind.String()
	case *ast.Group:
		out.Kind = "group"
		out.Value = string(v.Start.Original()) + string(v.End.Original())
		for _, child := range v.Nodes {
			out.Children = append(out.Children, nodeJSON(child))
		}
	}
	return out
}
