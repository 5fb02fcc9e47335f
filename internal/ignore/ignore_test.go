package ignore_test

import (
	"errors"
	"regexp/syntax"
	"testing"

	"github.com/google/go-cmp/cmp"

	"zhfmt/internal/ignore"
	"zhfmt/internal/markup"
	"zhfmt/internal/source"
)

func TestDirectivesMarkdown(t *testing.T) {
	src := "<!-- zhfmt ignore: foo\\d+ -->\n\n中文 <!-- zhfmt disabled --> 文字\n\n`<!-- zhfmt disabled -->`\n"
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.md", []byte(src))
	file := fs.Get(id)

	got := ignore.Directives(file, markup.Markdown(file.Content, id))
	if len(got) != 2 {
		t.Fatalf("expected 2 directives, got %+v", got)
	}
	if got[0].Kind != ignore.Pattern || got[0].Pattern != `foo\d+` {
		t.Errorf("first directive = %+v", got[0])
	}
	if got[1].Kind != ignore.Disabled {
		t.Errorf("second directive = %+v", got[1])
	}
	if text := file.Text(got[1].Span); text != "<!-- zhfmt disabled -->" {
		t.Errorf("directive span covers %q", text)
	}
	if !ignore.IsDisabled(got) {
		t.Errorf("IsDisabled = false")
	}
	if diff := cmp.Diff([]string{`foo\d+`}, ignore.Patterns(got)); diff != "" {
		t.Errorf("patterns mismatch (-want +got):\n%s", diff)
	}
}

func TestDirectivesPlain(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.txt", []byte("文字\n<!--zhfmt ignore: a.b-->\n"))
	got := ignore.Directives(fs.Get(id), nil)
	if len(got) != 1 || got[0].Pattern != "a.b" {
		t.Fatalf("unexpected directives: %+v", got)
	}
}

func TestRanges(t *testing.T) {
	content := []byte("see foo1 and foo22, keep (x) here")
	set, errs := ignore.Ranges(content, 3, []string{`foo\d+`, `\((?P<ignore>[^)]*)\)`, `(`})
	want := ignore.Set{
		{File: 3, Start: 4, End: 8},
		{File: 3, Start: 13, End: 18},
		{File: 3, Start: 26, End: 27},
	}
	if diff := cmp.Diff(want, set); diff != "" {
		t.Fatalf("ranges mismatch (-want +got):\n%s", diff)
	}
	if len(errs) != 1 || errs[0].Pattern != "(" {
		t.Fatalf("expected one pattern error, got %+v", errs)
	}
	var syntaxErr *syntax.Error
	if !errors.As(errs[0], &syntaxErr) {
		t.Fatalf("expected a regexp syntax error, got %T", errs[0].Err)
	}
}

func TestSetTouches(t *testing.T) {
	set := ignore.Set{{Start: 4, End: 8}, {Start: 20, End: 22}}
	tests := []struct {
		name string
		span source.Span
		want bool
	}{
		{"before", source.Span{Start: 0, End: 4}, false},
		{"overlap", source.Span{Start: 7, End: 9}, true},
		{"insert at edge", source.Span{Start: 8, End: 8}, true},
		{"insert at start edge", source.Span{Start: 20, End: 20}, true},
		{"between", source.Span{Start: 9, End: 19}, false},
		{"after", source.Span{Start: 23, End: 23}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := set.Touches(tt.span); got != tt.want {
				t.Errorf("Touches(%v) = %v, want %v", tt.span, got, tt.want)
			}
		})
	}
}
