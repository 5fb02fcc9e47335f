package diagfmt

import (
	"fmt"
	"strings"

	"zhfmt/internal/diag"
	"zhfmt/internal/source"
)

type fixEditPreview struct {
	before []string
	after  []string
}

// buildFixEditPreview renders the lines touched by edit before and after it
// is applied.
func buildFixEditPreview(fs *source.FileSet, edit diag.TextEdit) (fixEditPreview, error) {
	if fs == nil {
		return fixEditPreview{}, fmt.Errorf("nil FileSet")
	}
	file := fs.Get(edit.Span.File)
	size := file.Len()
	if edit.Span.Start > edit.Span.End || edit.Span.End > size {
		return fixEditPreview{}, fmt.Errorf("edit span %s out of range", edit.Span)
	}

	startPos, endPos := fs.Resolve(edit.Span)
	blockStart := lineStartOffset(file, startPos.Line)
	blockEnd := min(lineEndOffset(file, max(endPos.Line, startPos.Line)), size)

	original := file.Content[blockStart:blockEnd]
	relStart := edit.Span.Start - blockStart
	relEnd := edit.Span.End - blockStart

	var after strings.Builder
	after.Write(original[:relStart])
	after.WriteString(edit.NewText)
	after.Write(original[relEnd:])

	return fixEditPreview{
		before: splitPreviewLines(string(original)),
		after:  splitPreviewLines(after.String()),
	}, nil
}

func splitPreviewLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	text = strings.TrimSuffix(text, "\r")
	return strings.Split(text, "\n")
}

// lineStartOffset is the byte offset of the first byte of line (1-based).
func lineStartOffset(f *source.File, line uint32) uint32 {
	if line <= 1 {
		return 0
	}
	if idx := int(line) - 2; idx < len(f.LineIdx) {
		return f.LineIdx[idx] + 1
	}
	return f.Len()
}

// lineEndOffset is the offset just past the newline ending line.
func lineEndOffset(f *source.File, line uint32) uint32 {
	if line == 0 {
		return 0
	}
	if idx := int(line) - 1; idx < len(f.LineIdx) {
		return f.LineIdx[idx] + 1
	}
	return f.Len()
}
