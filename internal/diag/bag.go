package diag

import (
	"cmp"
	"slices"
)

// Bag collects the diagnostics of one file, or of a whole run after Merge.
// Once max is reached further Adds are only counted.
type Bag struct {
	items   []*Diagnostic
	max     int // 0 = без лимита
	dropped int
}

func NewBag(max int) *Bag {
	return &Bag{items: make([]*Diagnostic, 0, min(max, 64)), max: max}
}

// Add reports false when the limit swallowed d.
func (b *Bag) Add(d *Diagnostic) bool {
	if b.max > 0 && len(b.items) >= b.max {
		b.dropped++
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Len() int     { return len(b.items) }
func (b *Bag) Dropped() int { return b.dropped }

// Items shares the backing array; callers must not modify it.
func (b *Bag) Items() []*Diagnostic { return b.items }

func (b *Bag) HasErrors() bool {
	return slices.ContainsFunc(b.items, func(d *Diagnostic) bool { return d.Severity >= SevError })
}

// Merge appends other regardless of the limit and carries its drop count.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	b.items = append(b.items, other.items...)
	b.dropped += other.dropped
}

// Sort orders by file and span, errors before warnings at the same span,
// then by code.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y *Diagnostic) int {
		return cmp.Or(
			cmp.Compare(x.Primary.File, y.Primary.File),
			cmp.Compare(x.Primary.Start, y.Primary.Start),
			cmp.Compare(x.Primary.End, y.Primary.End),
			cmp.Compare(y.Severity, x.Severity),
			cmp.Compare(x.Code, y.Code),
		)
	})
}
