package diagfmt

import (
	"fmt"

	"zhfmt/internal/source"
)

func formatPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	case PathModeAuto:
		return f.FormatPath("auto", "")
	default:
		return f.Path
	}
}

// formatSpan formats a span as "startLine:startCol-endLine:endCol", or as
// "span(start-end)" without a FileSet.
func formatSpan(span source.Span, fs *source.FileSet) string {
	if fs != nil {
		start, end := fs.Resolve(span)
		return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
	}
	return fmt.Sprintf("span(%d-%d)", span.Start, span.End)
}

// location is "path:line:col" of the span start.
func location(span source.Span, fs *source.FileSet, mode PathMode) string {
	start, _ := fs.Resolve(span)
	return fmt.Sprintf("%s:%d:%d", formatPath(fs.Get(span.File), fs, mode), start.Line, start.Col)
}
