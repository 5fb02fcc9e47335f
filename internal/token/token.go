package token

import (
	"fmt"

	"zhfmt/internal/charkind"
	"zhfmt/internal/markup"
	"zhfmt/internal/source"
)

// Token is either a rune of text or a markup event, with its location.
type Token struct {
	Kind  Kind
	Event markup.Event
	Char  rune
	Span  source.Span
}

// IsEOF reports the terminating token.
func (t Token) IsEOF() bool { return t.Kind == EOF }

// IsEvent reports whether the token is an event of kind k.
func (t Token) IsEvent(k markup.Kind) bool { return t.Kind == Event && t.Event.Kind == k }

// CharKind classifies a Char token; every other token is charkind.Other.
func (t Token) CharKind() charkind.Kind {
	if t.Kind != Char {
		return charkind.Other
	}
	return charkind.Classify(t.Char)
}

// IsChar reports whether the token is a Char satisfying pred.
func (t Token) IsChar(pred func(rune) bool) bool {
	return t.Kind == Char && pred(t.Char)
}

func (t Token) String() string {
	switch t.Kind {
	case Char:
		return fmt.Sprintf("char %q@%d..%d", t.Char, t.Span.Start, t.Span.End)
	case Event:
		return "event " + t.Event.String()
	default:
		return fmt.Sprintf("%s@%d", t.Kind, t.Span.Start)
	}
}
