package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"zhfmt/internal/diag"
	"zhfmt/internal/source"
)

// sample: "中文 ,再见\n", пробел на байте 6, запятая на байте 7.
func sampleFile(t *testing.T) (*source.FileSet, source.FileID) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.md", []byte("中文 ,再见\n"))
	return fs, fileID
}

// TestJSONBasic проверяет базовое JSON форматирование
func TestJSONBasic(t *testing.T) {
	fs, fileID := sampleFile(t)

	bag := diag.NewBag(10)
	bag.Add(diag.New(
		diag.SevWarning,
		diag.FmtSpaceError,
		source.Span{File: fileID, Start: 6, End: 7},
		"unexpected space",
	))

	var buf bytes.Buffer
	opts := JSONOpts{
		IncludePositions: true,
		PathMode:         PathModeBasename,
		IncludeNotes:     true,
		IncludeFixes:     true,
	}
	if err := JSON(&buf, bag, fs, opts); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output Report
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v\nOutput: %s", err, buf.String())
	}
	if output.Count != 1 || len(output.Diagnostics) != 1 {
		t.Fatalf("Expected 1 diagnostic, got %d (%d)", output.Count, len(output.Diagnostics))
	}

	got := output.Diagnostics[0]
	want := Entry{
		Severity: "WARNING",
		Code:     "FMT3003",
		Message:  "unexpected space",
		Location: Location{
			File:      "test.md",
			StartByte: 6,
			EndByte:   7,
			StartLine: 1,
			StartCol:  7,
			EndLine:   1,
			EndCol:    8,
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("diagnostic mismatch (-want +got):\n%s", diff)
	}
}

// TestJSONWithNotesAndFixes проверяет JSON с заметками и исправлениями
func TestJSONWithNotesAndFixes(t *testing.T) {
	fs, fileID := sampleFile(t)

	bag := diag.NewBag(10)
	d := diag.New(
		diag.SevWarning,
		diag.FmtCharError,
		source.Span{File: fileID, Start: 7, End: 8},
		`',' should be '，'`,
	).WithNote(
		source.Span{File: fileID, Start: 8, End: 14},
		"followed by full-width text",
	).WithFix(diag.Fix{
		ID:            "FMT3001-fix",
		Title:         "replace ','",
		Applicability: diag.FixApplicabilityAlwaysSafe,
		Edits: []diag.TextEdit{{
			Span:    source.Span{File: fileID, Start: 7, End: 8},
			NewText: "，",
			OldText: ",",
		}},
	})
	bag.Add(d)

	opts := JSONOpts{
		PathMode:     PathModeBasename,
		IncludeNotes: true,
		IncludeFixes: true,
	}
	output := BuildReport(bag, fs, opts)
	if len(output.Diagnostics) != 1 {
		t.Fatalf("Expected 1 diagnostic, got %d", len(output.Diagnostics))
	}
	got := output.Diagnostics[0]

	wantNotes := []NoteEntry{{
		Message:  "followed by full-width text",
		Location: Location{File: "test.md", StartByte: 8, EndByte: 14},
	}}
	if diff := cmp.Diff(wantNotes, got.Notes); diff != "" {
		t.Errorf("notes mismatch (-want +got):\n%s", diff)
	}

	wantFixes := []FixEntry{{
		ID:            "FMT3001-fix",
		Title:         "replace ','",
		Applicability: "always-safe",
		Edits: []EditEntry{{
			Location: Location{File: "test.md", StartByte: 7, EndByte: 8},
			NewText:  "，",
			OldText:  ",",
		}},
	}}
	if diff := cmp.Diff(wantFixes, got.Fixes); diff != "" {
		t.Errorf("fixes mismatch (-want +got):\n%s", diff)
	}
}

// TestJSONWithoutNotesAndFixes: флаги выключены, секций нет.
func TestJSONWithoutNotesAndFixes(t *testing.T) {
	fs, fileID := sampleFile(t)
	bag := diag.NewBag(10)
	span := source.Span{File: fileID, Start: 7, End: 8}
	bag.Add(diag.New(diag.SevWarning, diag.FmtCharError, span, "x").
		WithNote(span, "note").
		WithFix(diag.ReplaceFix("replace", span, ",", "，")))

	output := BuildReport(bag, fs, JSONOpts{PathMode: PathModeBasename})
	got := output.Diagnostics[0]
	if got.Notes != nil || got.Fixes != nil {
		t.Errorf("expected no notes and fixes, got %+v / %+v", got.Notes, got.Fixes)
	}
	if got.Location.StartLine != 0 || got.Location.StartCol != 0 {
		t.Errorf("positions must be omitted, got %+v", got.Location)
	}
}

// TestJSONMaxLimit проверяет ограничение количества диагностик
func TestJSONMaxLimit(t *testing.T) {
	fs, fileID := sampleFile(t)
	bag := diag.NewBag(0)
	for i := uint32(0); i < 5; i++ {
		bag.Add(diag.New(diag.SevWarning, diag.FmtSpaceError, source.Span{File: fileID, Start: i, End: i + 1}, "w"))
	}

	output := BuildReport(bag, fs, JSONOpts{Max: 3})
	if output.Count != 3 || len(output.Diagnostics) != 3 {
		t.Fatalf("Expected 3 diagnostics, got %d", output.Count)
	}
	if output.Diagnostics[2].Location.StartByte != 2 {
		t.Errorf("Expected truncation to keep order, got start %d", output.Diagnostics[2].Location.StartByte)
	}
}

// TestJSONPathModes проверяет режимы путей в JSON
func TestJSONPathModes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("/home/user/notes/docs/readme.md", []byte("中文\n"))
	fs.SetBaseDir("/home/user/notes")

	bag := diag.NewBag(1)
	bag.Add(diag.New(diag.SevInfo, diag.FmtInfo, source.Span{File: fileID, Start: 0, End: 3}, "info"))

	tests := []struct {
		mode PathMode
		want string
	}{
		{PathModeAbsolute, "/home/user/notes/docs/readme.md"},
		{PathModeRelative, "docs/readme.md"},
		{PathModeBasename, "readme.md"},
	}
	for _, tt := range tests {
		output := BuildReport(bag, fs, JSONOpts{PathMode: tt.mode})
		if got := output.Diagnostics[0].Location.File; got != tt.want {
			t.Errorf("mode %d: got %q, want %q", tt.mode, got, tt.want)
		}
	}
}

// TestJSONFixPreview проверяет before/after строки превью
func TestJSONFixPreview(t *testing.T) {
	fs, fileID := sampleFile(t)
	span := source.Span{File: fileID, Start: 6, End: 7}
	bag := diag.NewBag(1)
	bag.Add(diag.New(diag.SevWarning, diag.FmtSpaceError, span, "unexpected space").
		WithFix(diag.ReplaceFix("remove space", span, " ", "")))

	output := BuildReport(bag, fs, JSONOpts{IncludeFixes: true, IncludePreviews: true})
	edit := output.Diagnostics[0].Fixes[0].Edits[0]
	if diff := cmp.Diff([]string{"中文 ,再见"}, edit.BeforeLines); diff != "" {
		t.Errorf("before mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"中文,再见"}, edit.AfterLines); diff != "" {
		t.Errorf("after mismatch (-want +got):\n%s", diff)
	}
}
