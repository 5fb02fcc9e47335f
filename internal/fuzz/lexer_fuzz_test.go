package fuzztests

import (
	"testing"
	"unicode/utf8"

	"zhfmt/internal/lexer"
	"zhfmt/internal/lint"
	"zhfmt/internal/source"
	"zhfmt/internal/token"
)

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.md", input))

		for _, mode := range []lint.Mode{lint.Markdown, lint.Plain} {
			tokens := lexer.Tokenize(file, lint.Events(file, mode))
			if len(tokens) == 0 || !tokens[len(tokens)-1].IsEOF() {
				t.Fatalf("%s: stream must end with EOF", mode)
			}
			var prev uint32
			for i, tok := range tokens {
				if tok.Span.End > file.Len() || tok.Span.End < tok.Span.Start {
					t.Fatalf("%s: token %d span %v outside file (len %d)", mode, i, tok.Span, file.Len())
				}
				if tok.Kind != token.Char {
					continue
				}
				if tok.Span.Start < prev {
					t.Fatalf("%s: char %d at %v overlaps previous end %d", mode, i, tok.Span, prev)
				}
				r, size := utf8.DecodeRune(file.Content[tok.Span.Start:tok.Span.End])
				if r != tok.Char || uint32(size) != tok.Span.Len() {
					t.Fatalf("%s: char %q does not match its span %v", mode, tok.Char, tok.Span)
				}
				prev = tok.Span.End
			}
		}
	})
}
