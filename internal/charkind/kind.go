// Package charkind classifies single runes for the formatter.
//
// Classification order: Unicode space separator, then letters/numbers/symbols
// (split by East-Asian width), then punctuation (split by the curated tables in
// tables.go), then everything else.
package charkind

import (
	"unicode"

	"golang.org/x/text/width"
)

// Kind is the semantic class of a rune.
type Kind uint8

const (
	Other Kind = iota
	Space
	HalfLetter
	FullLetter
	ChinesePauseStop
	ChineseLeftQuote
	ChineseRightQuote
	ChineseLeftBracket
	ChineseRightBracket
	ChineseOther
	WesternPauseStop
	WesternQuote
	WesternLeftBracket
	WesternRightBracket
	WesternOther
	// PunctuationOther is non-ASCII punctuation outside every table.
	PunctuationOther
)

var kindNames = [...]string{
	Other:               "other",
	Space:               "space",
	HalfLetter:          "half-letter",
	FullLetter:          "full-letter",
	ChinesePauseStop:    "zh-pause-stop",
	ChineseLeftQuote:    "zh-left-quote",
	ChineseRightQuote:   "zh-right-quote",
	ChineseLeftBracket:  "zh-left-bracket",
	ChineseRightBracket: "zh-right-bracket",
	ChineseOther:        "zh-other",
	WesternPauseStop:    "w-pause-stop",
	WesternQuote:        "w-quote",
	WesternLeftBracket:  "w-left-bracket",
	WesternRightBracket: "w-right-bracket",
	WesternOther:        "w-other",
	PunctuationOther:    "punct-other",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Classify maps r to its Kind. It is pure and total.
func Classify(r rune) Kind {
	switch {
	case unicode.Is(unicode.Zs, r):
		return Space
	case unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsSymbol(r):
		if IsWide(r) {
			return FullLetter
		}
		return HalfLetter
	case unicode.IsPunct(r):
		if k, ok := punctuationTable[r]; ok {
			return k
		}
		if r <= unicode.MaxASCII {
			return WesternOther
		}
		return PunctuationOther
	default:
		return Other
	}
}

// IsWide reports whether r has East-Asian width Wide or Fullwidth.
func IsWide(r rune) bool {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return true
	default:
		return false
	}
}
