package diag

import (
	"testing"

	"zhfmt/internal/source"
)

func TestBagLimitAndDropped(t *testing.T) {
	b := NewBag(2)
	for i := range 3 {
		b.Add(New(SevWarning, FmtSpaceError, source.At(0, uint32(i)), "x"))
	}
	if b.Len() != 2 || b.Dropped() != 1 {
		t.Fatalf("len=%d dropped=%d, want 2 and 1", b.Len(), b.Dropped())
	}
}

func TestBagSort(t *testing.T) {
	b := NewBag(0)
	b.Add(New(SevWarning, FmtCharError, source.Span{Start: 5, End: 6}, "b"))
	b.Add(New(SevWarning, FmtSpaceError, source.Span{Start: 1, End: 1}, "a"))
	b.Add(New(SevError, SynUnexpectedEnd, source.Span{Start: 5, End: 6}, "c"))

	b.Sort()

	items := b.Items()
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	wantCodes := []Code{FmtSpaceError, SynUnexpectedEnd, FmtCharError}
	for i, want := range wantCodes {
		if items[i].Code != want {
			t.Errorf("items[%d].Code = %s, want %s", i, items[i].Code.ID(), want.ID())
		}
	}
	if !b.HasErrors() {
		t.Errorf("HasErrors = false")
	}
}

func TestCodeIDs(t *testing.T) {
	tests := map[Code]string{
		SynUnclosedQuotationMark: "SYN2002",
		FmtSpaceError:            "FMT3003",
		IOReadFailed:             "IO4001",
		CfgInvalidIgnore:         "CFG5001",
		UnknownCode:              "E0000",
	}
	for code, want := range tests {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", code, got, want)
		}
	}
}

func TestDedup(t *testing.T) {
	bag := NewBag(0)
	r := Dedup(bag)
	sp := source.Span{Start: 1, End: 2}
	r.Report(Warning(FmtCharError, sp, "same"))
	r.Report(Warning(FmtCharError, sp, "same"))
	r.Report(Warning(FmtCharError, sp, "other"))
	r.Report(Error(FmtCharError, source.Span{Start: 2, End: 3}, "same"))
	if bag.Len() != 3 {
		t.Fatalf("expected 3 diagnostics, got %d", bag.Len())
	}
}

func TestSeverityString(t *testing.T) {
	for sev, want := range map[Severity]string{SevInfo: "INFO", SevWarning: "WARNING", SevError: "ERROR", Severity(9): "UNKNOWN"} {
		if got := sev.String(); got != want {
			t.Errorf("Severity(%d) = %q, want %q", sev, got, want)
		}
	}
}
