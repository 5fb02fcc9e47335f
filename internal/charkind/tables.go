package charkind

// Таблицы пунктуации. Порядок внутри пар левых/правых кавычек значим:
// закрывающая кавычка ищется по индексу открывающей.
var (
	chinesePauseStop    = []rune{'。', '．', '，', '、', '：', '；', '！', '‼', '？', '⁇'}
	chineseLeftQuote    = []rune{'「', '『', '“', '‘'}
	chineseRightQuote   = []rune{'」', '』', '”', '’'}
	chineseLeftBracket  = []rune{'（', '《', '〈', '【', '〖', '〔', '［', '｛'}
	chineseRightBracket = []rune{'）', '》', '〉', '】', '〗', '〕', '］', '｝'}
	chineseOther        = []rune{'⸺', '—', '…', '⋯', '～', '-', '–', '·', '・', '‧', '／'}
	westernPauseStop    = []rune{'.', ',', ':', ';', '!', '?'}
	westernQuote        = []rune{'"', '\''}
	westernLeftBracket  = []rune{'(', '[', '{'}
	westernRightBracket = []rune{')', ']', '}'}
)

var punctuationTable = buildTable()

func buildTable() map[rune]Kind {
	m := make(map[rune]Kind, 64)
	// first table wins, matching the classification order
	add := func(rs []rune, k Kind) {
		for _, r := range rs {
			if _, ok := m[r]; !ok {
				m[r] = k
			}
		}
	}
	add(chinesePauseStop, ChinesePauseStop)
	add(chineseLeftQuote, ChineseLeftQuote)
	add(chineseRightQuote, ChineseRightQuote)
	add(chineseLeftBracket, ChineseLeftBracket)
	add(chineseRightBracket, ChineseRightBracket)
	add(chineseOther, ChineseOther)
	add(westernPauseStop, WesternPauseStop)
	add(westernQuote, WesternQuote)
	add(westernLeftBracket, WesternLeftBracket)
	add(westernRightBracket, WesternRightBracket)
	return m
}

// RightQuoteFor returns the closing partner of a Chinese left quotation mark.
func RightQuoteFor(left rune) (rune, bool) {
	for i, r := range chineseLeftQuote {
		if r == left {
			return chineseRightQuote[i], true
		}
	}
	return 0, false
}
