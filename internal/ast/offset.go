package ast

import "zhfmt/internal/source"

// OffsetValue is an original value at a fixed span with an optional replacement.
type OffsetValue[T comparable] struct {
	original T
	modified T
	changed  bool
	span     source.Span
}

// NewOffsetValue anchors v at span.
func NewOffsetValue[T comparable](v T, span source.Span) OffsetValue[T] {
	return OffsetValue[T]{original: v, span: span}
}

// Set stores v as the replacement. Setting the original value clears it.
func (o *OffsetValue[T]) Set(v T) {
	if v == o.original {
		o.Revert()
		return
	}
	o.modified = v
	o.changed = true
}

// Revert drops the replacement.
func (o *OffsetValue[T]) Revert() {
	var zero T
	o.modified = zero
	o.changed = false
}

func (o *OffsetValue[T]) Original() T { return o.original }

// Value returns the replacement if any, else the original.
func (o *OffsetValue[T]) Value() T {
	if o.changed {
		return o.modified
	}
	return o.original
}

func (o *OffsetValue[T]) Modified() (T, bool) { return o.modified, o.changed }

func (o *OffsetValue[T]) IsModified() bool { return o.changed }

func (o *OffsetValue[T]) Span() source.Span { return o.span }

// Space is a whitespace run between two nodes. NoSpace and OneSpace are the
// two values rules produce; anything else is a literal run from the source.
type Space string

const (
	NoSpace  Space = ""
	OneSpace Space = " "
)

// SpaceFromBool maps true to OneSpace and false to NoSpace.
func SpaceFromBool(b bool) Space {
	if b {
		return OneSpace
	}
	return NoSpace
}

// Present reports whether the run is non-empty.
func (s Space) Present() bool { return s != NoSpace }
