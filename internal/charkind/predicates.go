package charkind

import "unicode"

func IsLetter(r rune) bool {
	k := Classify(r)
	return k == HalfLetter || k == FullLetter
}

func IsSpace(r rune) bool { return Classify(r) == Space }

func IsChinesePunctuation(r rune) bool {
	switch Classify(r) {
	case ChinesePauseStop, ChineseLeftQuote, ChineseRightQuote,
		ChineseLeftBracket, ChineseRightBracket, ChineseOther:
		return true
	}
	return false
}

func IsWesternPunctuation(r rune) bool {
	switch Classify(r) {
	case WesternPauseStop, WesternQuote, WesternLeftBracket,
		WesternRightBracket, WesternOther:
		return true
	}
	return false
}

// IsPunctuation is true for table or ASCII punctuation; PunctuationOther is excluded.
func IsPunctuation(r rune) bool {
	return IsChinesePunctuation(r) || IsWesternPunctuation(r)
}

func IsPauseStop(r rune) bool {
	k := Classify(r)
	return k == ChinesePauseStop || k == WesternPauseStop
}

func IsQuote(r rune) bool {
	switch Classify(r) {
	case ChineseLeftQuote, ChineseRightQuote, WesternQuote:
		return true
	}
	return false
}

func IsBracket(r rune) bool {
	switch Classify(r) {
	case ChineseLeftBracket, ChineseRightBracket, WesternLeftBracket, WesternRightBracket:
		return true
	}
	return false
}

func IsOther(r rune) bool {
	switch Classify(r) {
	case ChineseOther, WesternOther, PunctuationOther:
		return true
	}
	return false
}

func IsLeft(r rune) bool {
	switch Classify(r) {
	case ChineseLeftQuote, ChineseLeftBracket, WesternLeftBracket:
		return true
	}
	return false
}

func IsRight(r rune) bool {
	switch Classify(r) {
	case ChineseRightQuote, ChineseRightBracket, WesternRightBracket:
		return true
	}
	return false
}

func IsLeftBracket(r rune) bool {
	k := Classify(r)
	return k == ChineseLeftBracket || k == WesternLeftBracket
}

func IsRightBracket(r rune) bool {
	k := Classify(r)
	return k == ChineseRightBracket || k == WesternRightBracket
}

// IsSingle is pause/stop or "other" punctuation: marks that never pair up.
func IsSingle(r rune) bool {
	return IsPauseStop(r) || IsOther(r)
}

func IsWideOrChinese(r rune) bool {
	return IsWide(r) || IsChinesePunctuation(r)
}

// IsNumeric reports whether s is a non-empty run of narrow decimal digits.
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) || IsWide(r) {
			return false
		}
	}
	return true
}
