package token

import "fmt"

// Kind represents the category of a token.
type Kind uint8

const (
	// Invalid indicates a zero token.
	Invalid Kind = iota
	// EOF marks the end of the event stream.
	EOF
	// Event is a structural markup event passed through unchanged.
	Event
	// Char is a single rune from a text event.
	Char
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "invalid"
	case EOF:
		return "eof"
	case Event:
		return "event"
	case Char:
		return "char"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}
