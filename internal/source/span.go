package source

import (
	"fmt"
)

// Span is a half-open byte range inside one file of a FileSet.
type Span struct {
	File  FileID
	Start uint32 // в байтах включительно
	End   uint32 // в байтах не включительно
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Cover returns the smallest span containing both s and other.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Touches reports whether the spans overlap or, for an empty span, whether it
// sits inside or on the edge of other.
func (s Span) Touches(other Span) bool {
	if s.File != other.File {
		return false
	}
	if s.Empty() {
		return s.Start >= other.Start && s.Start <= other.End
	}
	return s.Start < other.End && other.Start < s.End
}

// At returns an empty span positioned at off.
func At(file FileID, off uint32) Span {
	return Span{File: file, Start: off, End: off}
}
