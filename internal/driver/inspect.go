package driver

import (
	"zhfmt/internal/config"
	"zhfmt/internal/lexer"
	"zhfmt/internal/lint"
	"zhfmt/internal/parser"
	"zhfmt/internal/source"
	"zhfmt/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Mode    lint.Mode
	Tokens  []token.Token
}

// Tokenize loads one file and returns its token stream, EOF included.
func Tokenize(path string, mode Mode, nfc bool) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	id, err := load(fs, path, nfc)
	if err != nil {
		return nil, err
	}
	file := fs.Get(id)
	m := mode.For(path)
	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Mode:    m,
		Tokens:  lexer.Tokenize(file, lint.Events(file, m)),
	}, nil
}

type ParseResult struct {
	FileSet    *source.FileSet
	File       *source.File
	Mode       lint.Mode
	Paragraphs []parser.Result
}

// Parse loads one file and builds its paragraph trees. With cfg set, the
// rules run on the trees so the dump shows the rewritten values.
func Parse(path string, mode Mode, nfc bool, cfg *config.Config) (*ParseResult, error) {
	fs := source.NewFileSet()
	id, err := load(fs, path, nfc)
	if err != nil {
		return nil, err
	}
	file := fs.Get(id)
	m := mode.For(path)
	out := &ParseResult{FileSet: fs, File: file, Mode: m}
	if cfg == nil {
		out.Paragraphs = parser.ParseFile(file, lint.Events(file, m))
		return out, nil
	}
	out.Paragraphs = lint.Run(file, cfg, lint.Options{Mode: m}).Paragraphs
	return out, nil
}

// FormatSource lints content that does not live on disk (stdin). The file is
// virtual, so fix.Apply refuses to write it; callers print Result.Text.
func FormatSource(name string, content []byte, cfg *config.Config, mode Mode) (*source.FileSet, *lint.Result) {
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, content)
	if cfg == nil {
		cfg = config.Default()
	}
	return fs, lint.Run(fs.Get(id), cfg, lint.Options{Mode: mode.For(name)})
}
