package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("doc.md", []byte("你好"), 0)
	id2 := fs.Add("doc.md", []byte("再见"), 0)
	if id1 == id2 {
		t.Fatalf("expected distinct ids, got %d twice", id1)
	}
	latest, ok := fs.GetLatest("doc.md")
	if !ok || latest != id2 {
		t.Fatalf("GetLatest = %d,%v; want %d,true", latest, ok, id2)
	}
	if got := string(fs.Get(id1).Content); got != "你好" {
		t.Errorf("first version content = %q", got)
	}
}

func TestResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("x.md", []byte("ab\ncd\n\nef"))

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{2, LineCol{1, 3}}, // the newline itself
		{3, LineCol{2, 1}},
		{4, LineCol{2, 2}},
		{6, LineCol{3, 1}},
		{7, LineCol{4, 1}},
		{9, LineCol{4, 3}},
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(At(id, tt.off))
		if start != tt.want {
			t.Errorf("Resolve(%d) = %+v, want %+v", tt.off, start, tt.want)
		}
	}
}

func TestGetLineStripsCR(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("crlf.txt", []byte("one\r\ntwo\r\nthree")))
	if got := f.GetLine(1); got != "one" {
		t.Errorf("line 1 = %q", got)
	}
	if got := f.GetLine(3); got != "three" {
		t.Errorf("line 3 = %q", got)
	}
	if got := f.GetLine(4); got != "" {
		t.Errorf("line 4 = %q, want empty", got)
	}
}

func TestLoadKeepsCRLFAndStripsBOM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.md")
	if err := os.WriteFile(path, append([]byte{0xEF, 0xBB, 0xBF}, "a\r\nb"...), 0o644); err != nil {
		t.Fatal(err)
	}
	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "a\r\nb" {
		t.Fatalf("content = %q", f.Content)
	}
	if !f.Flags.Has(FileHadBOM) {
		t.Fatalf("expected FileHadBOM flag")
	}
	if got := RestoreBOM(f, []byte("x")); len(got) != 4 || got[3] != 'x' {
		t.Fatalf("RestoreBOM = %q", got)
	}
}

func TestLoadNFC(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nfd.md")
	// "é" в форме NFD: e + U+0301
	if err := os.WriteFile(path, []byte("cafe\u0301 文字"), 0o600); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSet()
	id, err := fs.LoadNFC(path)
	if err != nil {
		t.Fatalf("LoadNFC: %v", err)
	}
	f := fs.Get(id)
	if got := string(f.Content); got != "caf\u00e9 文字" {
		t.Fatalf("content = %q", got)
	}
	if !f.Flags.Has(FileNormalizedNFC) {
		t.Fatalf("expected FileNormalizedNFC flag")
	}
}
