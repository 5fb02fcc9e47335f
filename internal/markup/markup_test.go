package markup

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func kindsOf(events []Event, skipText bool) []Kind {
	out := make([]Kind, 0, len(events))
	for _, ev := range events {
		if skipText && ev.Kind == Text {
			continue
		}
		out = append(out, ev.Kind)
	}
	return out
}

func textOf(src string, ev Event) string {
	return src[ev.Span.Start:ev.Span.End]
}

func checkOrdered(t *testing.T, events []Event) {
	t.Helper()
	for i := 1; i < len(events); i++ {
		if events[i].Span.Start < events[i-1].Span.End {
			t.Fatalf("event %d (%s) overlaps %d (%s)", i, events[i], i-1, events[i-1])
		}
	}
}

func TestMarkdownKinds(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []Kind
	}{
		{"plain paragraph", "你好 world", []Kind{ParagraphStart, ParagraphEnd}},
		{"emphasis", "a *b* c", []Kind{ParagraphStart, EmphasisStart, EmphasisEnd, ParagraphEnd}},
		{"strong", "a **b** c", []Kind{ParagraphStart, StrongStart, StrongEnd, ParagraphEnd}},
		{"code span", "use `x` now", []Kind{ParagraphStart, Code, ParagraphEnd}},
		{"link", "[a](http://x) b", []Kind{ParagraphStart, LinkStart, LinkEnd, ParagraphEnd}},
		{"two paragraphs", "a\n\nb\n", []Kind{ParagraphStart, ParagraphEnd, ParagraphStart, ParagraphEnd}},
		{"fenced code skipped", "```\ncode\n```\n", nil},
		{"heading", "# 标题\n", []Kind{ParagraphStart, ParagraphEnd}},
		{"soft break", "a\nb", []Kind{ParagraphStart, SoftBreak, ParagraphEnd}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := Markdown([]byte(tt.src), 1)
			checkOrdered(t, events)
			got := kindsOf(events, true)
			if len(got) == 0 {
				got = nil
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMarkdownSpans(t *testing.T) {
	src := "a *b* `c` [d](http://e) f"
	events := Markdown([]byte(src), 1)
	checkOrdered(t, events)
	var got []string
	for _, ev := range events {
		if ev.Kind.IsBlock() {
			continue
		}
		got = append(got, textOf(src, ev))
	}
	joined := ""
	for _, s := range got {
		joined += s
	}
	if joined != src {
		t.Fatalf("events do not cover the paragraph: %q", got)
	}
	for _, ev := range events {
		switch ev.Kind {
		case EmphasisStart, EmphasisEnd:
			if textOf(src, ev) != "*" {
				t.Errorf("%s covers %q", ev, textOf(src, ev))
			}
		case Code:
			if textOf(src, ev) != "`c`" {
				t.Errorf("code covers %q", textOf(src, ev))
			}
		case LinkStart:
			if textOf(src, ev) != "[" {
				t.Errorf("link start covers %q", textOf(src, ev))
			}
		case LinkEnd:
			if textOf(src, ev) != "](http://e)" {
				t.Errorf("link end covers %q", textOf(src, ev))
			}
		}
	}
}

func TestMarkdownSoftBreakSpan(t *testing.T) {
	src := "a\nb"
	events := Markdown([]byte(src), 1)
	i := slices.IndexFunc(events, func(ev Event) bool { return ev.Kind == SoftBreak })
	if i < 0 {
		t.Fatalf("no soft break in %v", events)
	}
	if got := textOf(src, events[i]); got != "\n" {
		t.Fatalf("soft break covers %q", got)
	}
}

func TestMarkdownHTMLBlock(t *testing.T) {
	src := "<!-- zhfmt disabled -->\n\n文本\n"
	events := Markdown([]byte(src), 1)
	if len(events) == 0 || events[0].Kind != HTMLBlock {
		t.Fatalf("want leading html block, got %v", events)
	}
}

func TestPlain(t *testing.T) {
	src := "  第一行\r\nsecond line\n\n\t\nthird"
	events := Plain([]byte(src), 1)
	checkOrdered(t, events)
	want := []Kind{
		ParagraphStart, Text, SoftBreak, Text, ParagraphEnd,
		ParagraphStart, Text, ParagraphEnd,
	}
	if diff := cmp.Diff(want, kindsOf(events, false)); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}
	texts := []string{
		textOf(src, events[1]),
		textOf(src, events[2]),
		textOf(src, events[3]),
		textOf(src, events[6]),
	}
	wantTexts := []string{"  第一行", "\r\n", "second line", "third"}
	if diff := cmp.Diff(wantTexts, texts); diff != "" {
		t.Fatalf("texts mismatch (-want +got):\n%s", diff)
	}
}

func TestPlainEmpty(t *testing.T) {
	if got := Plain(nil, 1); len(got) != 0 {
		t.Fatalf("want no events, got %v", got)
	}
	if got := Plain([]byte("\n \n"), 1); len(got) != 0 {
		t.Fatalf("want no events for blank text, got %v", got)
	}
}

func TestKindPredicates(t *testing.T) {
	if !LinkStart.IsStart() || LinkStart.IsEnd() || !LinkEnd.IsWrapper() {
		t.Fatalf("link predicates wrong")
	}
	if Code.IsWrapper() || Text.IsWrapper() {
		t.Fatalf("atomic events are not wrappers")
	}
	if Kind(200).String() != "kind(200)" {
		t.Fatalf("unexpected name %q", Kind(200).String())
	}
}
