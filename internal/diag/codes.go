package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Ошибки разбора абзаца
	SynInfo                  Code = 2000
	SynUnexpectedEnd         Code = 2001
	SynUnclosedQuotationMark Code = 2002

	// Правки форматирования
	FmtInfo        Code = 3000
	FmtCharError   Code = 3001
	FmtStringError Code = 3002
	FmtSpaceError  Code = 3003

	// Ввод-вывод и конфигурация
	IOReadFailed     Code = 4001
	IOWriteFailed    Code = 4002
	CfgInvalidIgnore Code = 5001
)

var codeDescription = map[Code]string{
	UnknownCode:              "Unknown error",
	SynInfo:                  "Parser information",
	SynUnexpectedEnd:         "Unexpected end of paragraph",
	SynUnclosedQuotationMark: "Unclosed quotation mark",
	FmtInfo:                  "Formatting information",
	FmtCharError:             "Punctuation should be rewritten",
	FmtStringError:           "Text should be rewritten",
	FmtSpaceError:            "Whitespace should be adjusted",
	IOReadFailed:             "Failed to read file",
	IOWriteFailed:            "Failed to write file",
	CfgInvalidIgnore:         "Invalid ignore pattern",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("FMT%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("CFG%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
