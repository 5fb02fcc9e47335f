package driver

import (
	"context"
	"path/filepath"
	"testing"

	"zhfmt/internal/config"
	"zhfmt/internal/diag"
	"zhfmt/internal/lint"
	"zhfmt/internal/observ"
	"zhfmt/internal/pipeline"
	"zhfmt/internal/source"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{in: "", want: ModeAuto},
		{in: "auto", want: ModeAuto},
		{in: "MD", want: ModeMarkdown},
		{in: "plain", want: ModeText},
		{in: "html", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseMode(%q) err = %v", tt.in, err)
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if ModeAuto.For("a.md") != lint.Markdown || ModeAuto.For("a.txt") != lint.Plain {
		t.Error("auto mode must follow the extension")
	}
	if ModeText.For("a.md") != lint.Plain || ModeMarkdown.For("a.txt") != lint.Markdown {
		t.Error("explicit mode must win over the extension")
	}
}

func statusesOf(events []pipeline.Event, file string) []pipeline.Status {
	var out []pipeline.Status
	for _, e := range events {
		if e.File == file {
			out = append(out, e.Status)
		}
	}
	return out
}

func lastStatus(t *testing.T, events []pipeline.Event, file string) pipeline.Event {
	t.Helper()
	var last *pipeline.Event
	for i := range events {
		if events[i].File == file {
			last = &events[i]
		}
	}
	if last == nil {
		t.Fatalf("no events for %s", file)
	}
	return *last
}

func TestLintFiles(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"clean.md": "中文 English\n",
		"dirty.md": "中文English\n",
	})
	clean := filepath.Join(dir, "clean.md")
	dirty := filepath.Join(dir, "dirty.md")
	missing := filepath.Join(dir, "missing.md")

	rec := &pipeline.Recorder{}
	timer := observ.NewTimer()
	fs := source.NewFileSet()
	results, err := LintFiles(context.Background(), fs, []string{clean, dirty, missing}, Options{
		Config:   config.Default(),
		Jobs:     2,
		Progress: rec,
		Timer:    timer,
	})
	if err != nil {
		t.Fatalf("LintFiles: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	if r := results[0]; r.Path != clean || r.Changed() || r.Failed() || r.Bag.Len() != 0 {
		t.Errorf("clean file: changed=%v failed=%v diags=%d", r.Changed(), r.Failed(), r.Bag.Len())
	}

	r := results[1]
	if !r.Changed() || r.Failed() {
		t.Fatalf("dirty file: changed=%v failed=%v", r.Changed(), r.Failed())
	}
	if got := string(r.Lint.Text); got != "中文 English\n" {
		t.Errorf("dirty text = %q", got)
	}
	if r.Bag.Len() == 0 {
		t.Error("dirty file must produce diagnostics")
	}

	r = results[2]
	if r.LoadErr == nil || !r.Failed() || r.Lint != nil {
		t.Fatalf("missing file: loadErr=%v failed=%v", r.LoadErr, r.Failed())
	}
	items := r.Bag.Items()
	if len(items) != 1 || items[0].Code != diag.IOReadFailed || items[0].Severity != diag.SevError {
		t.Errorf("missing file diagnostics = %+v", items)
	}
	if f := fs.Get(r.FileID); f.Path == "" {
		t.Error("missing file must get a placeholder")
	}

	events := rec.Events()
	if got := lastStatus(t, events, clean).Status; got != pipeline.StatusDone {
		t.Errorf("clean status = %s", got)
	}
	if got := lastStatus(t, events, dirty); got.Status != pipeline.StatusChanged || got.Changes != len(results[1].Lint.Changes) {
		t.Errorf("dirty event = %+v", got)
	}
	if got := lastStatus(t, events, missing); got.Status != pipeline.StatusError || got.Err == nil {
		t.Errorf("missing event = %+v", got)
	}
	if got := statusesOf(events, dirty); len(got) == 0 || got[0] != pipeline.StatusQueued {
		t.Errorf("dirty statuses = %v", got)
	}

	report := timer.Report()
	names := map[string]bool{}
	for _, ph := range report.Phases {
		names[ph.Name] = true
	}
	for _, want := range []string{"load", "lint", "file"} {
		if !names[want] {
			t.Errorf("timer is missing phase %q", want)
		}
	}
}

func TestLintFilesCache(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"clean.md": "中文 English\n",
		"dirty.md": "中文English\n",
	})
	paths := []string{filepath.Join(dir, "clean.md"), filepath.Join(dir, "dirty.md")}
	cache, err := NewDiskCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	opts := Options{Config: config.Default(), Cache: cache}

	first, err := LintFiles(context.Background(), source.NewFileSet(), paths, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first[0].Cached || first[1].Cached {
		t.Fatal("cold cache must not hit")
	}

	rec := &pipeline.Recorder{}
	opts.Progress = rec
	second, err := LintFiles(context.Background(), source.NewFileSet(), paths, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second[0].Cached || second[0].Lint != nil {
		t.Errorf("clean file should be served from cache: %+v", second[0])
	}
	if second[1].Cached || !second[1].Changed() {
		t.Errorf("dirty file must be linted again: cached=%v", second[1].Cached)
	}
	if got := lastStatus(t, rec.Events(), paths[0]).Status; got != pipeline.StatusCached {
		t.Errorf("cached status = %s", got)
	}

	// другой конфиг: другой ключ
	opts.Config = config.Empty()
	third, err := LintFiles(context.Background(), source.NewFileSet(), paths[:1], opts)
	if err != nil {
		t.Fatal(err)
	}
	if third[0].Cached {
		t.Error("config change must invalidate the cache")
	}
}

func TestLintFilesCanceled(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.md": "中文\n"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := LintFiles(ctx, source.NewFileSet(), []string{filepath.Join(dir, "a.md")}, Options{})
	if err == nil {
		t.Error("expected context error")
	}
}

func TestFormatSource(t *testing.T) {
	fs, res := FormatSource("<stdin>", []byte("中文English"), config.Default(), ModeText)
	if fs == nil || res == nil {
		t.Fatal("nil result")
	}
	if got := string(res.Text); got != "中文 English" {
		t.Errorf("text = %q", got)
	}
}
