package charkind

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		r    rune
		want Kind
	}{
		{' ', Space},
		{'　', Space},
		{'a', HalfLetter},
		{'7', HalfLetter},
		{'+', HalfLetter}, // symbols count as letters
		{'中', FullLetter},
		{'Ａ', FullLetter},
		{'，', ChinesePauseStop},
		{'、', ChinesePauseStop},
		{'「', ChineseLeftQuote},
		{'“', ChineseLeftQuote},
		{'’', ChineseRightQuote},
		{'（', ChineseLeftBracket},
		{'》', ChineseRightBracket},
		{'…', ChineseOther},
		{'-', ChineseOther},
		{'.', WesternPauseStop},
		{'?', WesternPauseStop},
		{'"', WesternQuote},
		{'\'', WesternQuote},
		{'[', WesternLeftBracket},
		{'}', WesternRightBracket},
		{'/', WesternOther},
		{'#', WesternOther},
		{'«', PunctuationOther},
		{'\n', Other},
		{'\t', Other},
	}
	for _, tt := range tests {
		if got := Classify(tt.r); got != tt.want {
			t.Errorf("Classify(%q) = %s, want %s", tt.r, got, tt.want)
		}
	}
}

func TestTablesArePunctuation(t *testing.T) {
	all := [][]rune{
		chinesePauseStop, chineseLeftQuote, chineseRightQuote, chineseLeftBracket,
		chineseRightBracket, chineseOther, westernPauseStop, westernQuote,
		westernLeftBracket, westernRightBracket,
	}
	for _, table := range all {
		for _, r := range table {
			if !IsPunctuation(r) {
				t.Errorf("%q (%U) from a punctuation table is not punctuation", r, r)
			}
		}
	}
}

func TestPredicates(t *testing.T) {
	if !IsWideOrChinese('“') || IsWideOrChinese('"') {
		t.Errorf("IsWideOrChinese mismatch on quotes")
	}
	if !IsWideOrChinese('（') || IsWideOrChinese('(') {
		t.Errorf("IsWideOrChinese mismatch on brackets")
	}
	if !IsSingle('，') || !IsSingle('…') || IsSingle('(') {
		t.Errorf("IsSingle mismatch")
	}
	if !IsLeft('「') || !IsLeft('(') || IsLeft('"') {
		t.Errorf("IsLeft mismatch")
	}
	if !IsRight('」') || !IsRight(']') || IsRight('\'') {
		t.Errorf("IsRight mismatch")
	}
	if !IsQuote('“') || !IsQuote('"') || IsQuote('（') {
		t.Errorf("IsQuote mismatch")
	}
	if !IsBracket('（') || !IsBracket(']') || IsBracket('“') {
		t.Errorf("IsBracket mismatch")
	}
	if !IsSpace(' ') || !IsSpace('　') || IsSpace('\t') {
		t.Errorf("IsSpace mismatch")
	}
	if IsPunctuation('«') || !IsOther('«') {
		t.Errorf("PunctuationOther must be other but not punctuation")
	}
	if r, ok := RightQuoteFor('『'); !ok || r != '』' {
		t.Errorf("RightQuoteFor('『') = %q,%v", r, ok)
	}
	if _, ok := RightQuoteFor('"'); ok {
		t.Errorf("western quote has no table partner")
	}
}

func TestIsNumeric(t *testing.T) {
	for s, want := range map[string]bool{
		"2019": true,
		"06":   true,
		"":     false,
		"12a":  false,
		"２０":   false,
	} {
		if got := IsNumeric(s); got != want {
			t.Errorf("IsNumeric(%q) = %v, want %v", s, got, want)
		}
	}
}
