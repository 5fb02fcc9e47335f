package parser

import (
	"fmt"

	"zhfmt/internal/diag"
	"zhfmt/internal/source"
)

// ErrorCode classifies a paragraph-level parse failure.
type ErrorCode uint8

const (
	// UnexpectedEnd: the paragraph ended while a quotation was still open.
	UnexpectedEnd ErrorCode = iota + 1
	// UnclosedQuotationMark: a closing quotation mark with no matching opener.
	UnclosedQuotationMark
)

func (c ErrorCode) String() string {
	switch c {
	case UnexpectedEnd:
		return "unexpected-end"
	case UnclosedQuotationMark:
		return "unclosed-quotation-mark"
	default:
		return fmt.Sprintf("error(%d)", uint8(c))
	}
}

// DiagCode maps the parse error to its diagnostic code.
func (c ErrorCode) DiagCode() diag.Code {
	switch c {
	case UnexpectedEnd:
		return diag.SynUnexpectedEnd
	case UnclosedQuotationMark:
		return diag.SynUnclosedQuotationMark
	default:
		return diag.UnknownCode
	}
}

// Error is a parse failure. A paragraph with an error is left untouched.
type Error struct {
	Code  ErrorCode
	Span  source.Span
	Value rune
}

func (e *Error) Error() string {
	switch e.Code {
	case UnexpectedEnd:
		return fmt.Sprintf("quotation mark %q is never closed", e.Value)
	case UnclosedQuotationMark:
		return fmt.Sprintf("unmatched closing quotation mark %q", e.Value)
	default:
		return e.Code.String()
	}
}
