package ignore

import (
	"fmt"
	"regexp"
	"sort"

	"fortio.org/safecast"

	"zhfmt/internal/source"
)

// PatternError is an ignore pattern that does not compile.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid ignore pattern %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }

// Set is a sorted list of protected ranges.
type Set []source.Span

// Ranges matches every pattern over the whole content. Broken patterns are
// returned as errors and otherwise skipped.
func Ranges(content []byte, file source.FileID, patterns []string) (Set, []*PatternError) {
	var (
		out  Set
		errs []*PatternError
	)
	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			errs = append(errs, &PatternError{Pattern: pattern, Err: err})
			continue
		}
		group := re.SubexpIndex("ignore")
		for _, m := range re.FindAllSubmatchIndex(content, -1) {
			start, end := m[0], m[1]
			if group > 0 && m[2*group] >= 0 {
				start, end = m[2*group], m[2*group+1]
			}
			if start == end {
				continue
			}
			out = append(out, source.Span{File: file, Start: offset(start), End: offset(end)})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		return out[i].End < out[j].End
	})
	return out, errs
}

// Touches reports whether span overlaps a range. An empty span on a range
// edge counts as inside.
func (s Set) Touches(span source.Span) bool {
	for _, r := range s {
		if r.Start > span.End {
			// дальше только более поздние диапазоны
			break
		}
		if span.Touches(r) {
			return true
		}
	}
	return false
}

func offset(i int) uint32 {
	v, err := safecast.Conv[uint32](i)
	if err != nil {
		panic(fmt.Errorf("ignore offset overflow: %w", err))
	}
	return v
}
