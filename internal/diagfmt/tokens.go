package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"zhfmt/internal/source"
	"zhfmt/internal/token"
)

type TokenOutput struct {
	Kind     string      `json:"kind"`
	Char     string      `json:"char,omitempty"`
	CharKind string      `json:"char_kind,omitempty"`
	Event    string      `json:"event,omitempty"`
	Span     source.Span `json:"span"`
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(tok.Span)

		if _, err := fmt.Fprintf(w, "%4d: %-6s", i+1, tok.Kind.String()); err != nil {
			return err
		}
		switch tok.Kind {
		case token.Char:
			fmt.Fprintf(w, " %-6q %-16s", tok.Char, tok.CharKind().String())
		case token.Event:
			fmt.Fprintf(w, " %-23s", tok.Event.Kind.String())
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d\n",
			startPos.Line, startPos.Col,
			endPos.Line, endPos.Col)

		if tok.IsEOF() {
			break
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		out := TokenOutput{Kind: tok.Kind.String(), Span: tok.Span}
		switch tok.Kind {
		case token.Char:
			out.Char = string(tok.Char)
			out.CharKind = tok.CharKind().String()
		case token.Event:
			out.Event = tok.Event.Kind.String()
		}
		output = append(output, out)
		if tok.IsEOF() {
			break
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
