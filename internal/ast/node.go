package ast

import (
	"zhfmt/internal/markup"
	"zhfmt/internal/source"
)

// Node is one of *Char, *HalfContent, *FullContent, *Event or *Group.
type Node interface {
	node()
	SpaceAfter() *OffsetValue[Space]
	HasSpaceAfter() bool
	SetSpaceAfter(s Space)
	AddSpaceAfter()
	RemoveSpaceAfter()
	RevertSpaceAfter()
}

// Trailing is the whitespace run that follows a node. Its span starts at the
// node end and stops where the next node begins.
type Trailing struct {
	Space OffsetValue[Space]
}

func (t *Trailing) SpaceAfter() *OffsetValue[Space] { return &t.Space }

func (t *Trailing) HasSpaceAfter() bool { return t.Space.Value().Present() }

func (t *Trailing) SetSpaceAfter(s Space) { t.Space.Set(s) }

func (t *Trailing) AddSpaceAfter() { t.Space.Set(OneSpace) }

func (t *Trailing) RemoveSpaceAfter() { t.Space.Set(NoSpace) }

func (t *Trailing) RevertSpaceAfter() { t.Space.Revert() }

// Char is a single punctuation mark or other rune.
type Char struct {
	Value OffsetValue[rune]
	Trailing
}

// HalfContent is a maximal run of half-width letters.
type HalfContent struct {
	Value OffsetValue[string]
	Trailing
}

// FullContent is a maximal run of full-width letters.
type FullContent struct {
	Value OffsetValue[string]
	Trailing
}

// Event is a markup event kept in place (wrappers, code, html, breaks).
type Event struct {
	Event markup.Event
	Trailing
}

// Group is a quotation: its delimiters, the whitespace right after the
// opener, and the nested nodes.
type Group struct {
	Start OffsetValue[rune]
	Inner OffsetValue[Space]
	Nodes []Node
	End   OffsetValue[rune]
	Trailing
}

func (*Char) node()        {}
func (*HalfContent) node() {}
func (*FullContent) node() {}
func (*Event) node()       {}
func (*Group) node()       {}

// Paragraph is the unit of parsing and rewriting.
type Paragraph struct {
	Span source.Span
	// Leading is whitespace before the first node.
	Leading OffsetValue[Space]
	Nodes   []Node
}
