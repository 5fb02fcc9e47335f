package fix

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"zhfmt/internal/diag"
	"zhfmt/internal/source"
)

func TestEditPicksShape(t *testing.T) {
	at := source.Span{File: 1, Start: 5, End: 5}
	span := source.Span{File: 1, Start: 2, End: 5}

	tests := []struct {
		name     string
		span     source.Span
		from, to string
		want     diag.TextEdit
	}{
		{"insert", at, "", " ", diag.TextEdit{Span: at, NewText: " "}},
		{"delete", span, "   ", "", diag.TextEdit{Span: span, OldText: "   "}},
		{"replace", span, "abc", "x", diag.TextEdit{Span: span, OldText: "abc", NewText: "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Edit(tt.name, tt.span, tt.from, tt.to)
			if f.Applicability != diag.FixApplicabilityAlwaysSafe {
				t.Fatalf("applicability = %s", f.Applicability)
			}
			if diff := cmp.Diff([]diag.TextEdit{tt.want}, f.Edits); diff != "" {
				t.Fatalf("edits mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestInsertTextCollapsesSpan(t *testing.T) {
	f := InsertText("insert", source.Span{File: 2, Start: 3, End: 9}, "x", WithID("id-1"))
	if f.ID != "id-1" {
		t.Fatalf("id = %q", f.ID)
	}
	if got := f.Edits[0].Span; got.Start != 3 || got.End != 3 {
		t.Fatalf("span = %v, want empty at 3", got)
	}
}
