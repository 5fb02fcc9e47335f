package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"zhfmt/internal/config"
)

// runCLI executes the root command with fresh flag values.
func runCLI(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	resetFlags(rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--color", "off"}, args...))
	err = rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestCheckReportsAndFails(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"clean.md": "中文 English\n",
		"dirty.md": "中文English\n",
	})

	out, _, err := runCLI(t, "", "check", "--format", "short", "--ui", "off", "--fullpath", dir)
	if err == nil {
		t.Fatal("expected check to fail on a dirty file")
	}
	if !strings.Contains(err.Error(), "1 file(s) need formatting") {
		t.Errorf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "dirty.md:1:7: WARNING FMT3003") {
		t.Errorf("missing diagnostic in output:\n%s", out)
	}
	if strings.Contains(out, "clean.md") {
		t.Errorf("clean file reported:\n%s", out)
	}

	if _, _, err := runCLI(t, "", "check", "--ui", "off", filepath.Join(dir, "clean.md")); err != nil {
		t.Errorf("clean file must pass: %v", err)
	}
}

func TestCheckJSON(t *testing.T) {
	dir := writeFiles(t, map[string]string{"dirty.md": "你好,再见.\n"})
	out, _, err := runCLI(t, "", "check", "--format", "json", "--ui", "off", dir)
	if err == nil {
		t.Fatal("expected failure")
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if !strings.Contains(out, "FMT3001") {
		t.Errorf("expected char diagnostics:\n%s", out)
	}
}

func TestCheckInvalidFlags(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.md": "中文\n"})
	tests := [][]string{
		{"check", "--format", "xml", dir},
		{"check", "--mode", "html", dir},
		{"check", "--ui", "sometimes", dir},
	}
	for _, args := range tests {
		if _, _, err := runCLI(t, "", args...); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}

func TestFixRewritesFiles(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.md":  "中文English,再见.\n",
		"b.txt": "你好,再见.\n",
	})
	a := filepath.Join(dir, "a.md")

	out, _, err := runCLI(t, "", "fix", "--dry-run", "--ui", "off", a)
	if err != nil {
		t.Fatalf("dry run: %v", err)
	}
	if out != "中文 English，再见。\n" {
		t.Errorf("dry run output = %q", out)
	}
	if data, _ := os.ReadFile(a); string(data) != "中文English,再见.\n" {
		t.Fatalf("dry run modified the file: %q", data)
	}

	if _, _, err := runCLI(t, "", "fix", "--ui", "off", "--quiet", dir+"/*"); err != nil {
		t.Fatalf("fix: %v", err)
	}
	want := map[string]string{
		"a.md":  "中文 English，再见。\n",
		"b.txt": "你好，再见。\n",
	}
	for name, content := range want {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != content {
			t.Errorf("%s = %q, want %q", name, data, content)
		}
	}

	if _, _, err := runCLI(t, "", "check", "--ui", "off", dir+"/*"); err != nil {
		t.Errorf("fixed files must pass check: %v", err)
	}
}

func TestFixKeepsBrokenParagraph(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.md": "前文“没有结束foo\n\n中文foo\n"})
	path := filepath.Join(dir, "a.md")
	_, stderr, err := runCLI(t, "", "fix", "--ui", "off", path)
	if err == nil {
		t.Fatal("expected failure for the unclosed quote")
	}
	if !strings.Contains(stderr, "SYN2001") {
		t.Errorf("parse error not reported:\n%s", stderr)
	}
	if data, _ := os.ReadFile(path); string(data) != "前文“没有结束foo\n\n中文 foo\n" {
		t.Errorf("file = %q", data)
	}
}

func TestFormatStdin(t *testing.T) {
	out, _, err := runCLI(t, "中文foo 中文 foo中foo文", "format")
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if out != "中文 foo 中文 foo 中 foo 文" {
		t.Errorf("output = %q", out)
	}

	out, stderr, err := runCLI(t, "中文”中文", "format")
	if err == nil {
		t.Fatal("expected failure on unparsable input")
	}
	if out != "中文”中文" || !strings.Contains(stderr, "SYN2002") {
		t.Errorf("out = %q, stderr = %q", out, stderr)
	}
}

func TestTokenizeAndParse(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.txt": "中文“foo”"})
	path := filepath.Join(dir, "a.txt")

	out, _, err := runCLI(t, "", "tokenize", path)
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if !strings.Contains(out, "'“'") && !strings.Contains(out, `"“"`) {
		t.Errorf("quote token missing:\n%s", out)
	}

	out, _, err = runCLI(t, "", "parse", path)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !strings.Contains(out, `Group '“'…'”'`) || !strings.Contains(out, `HalfContent "foo"`) {
		t.Errorf("unexpected tree:\n%s", out)
	}

	out, _, err = runCLI(t, "", "parse", "--format", "json", path)
	if err != nil {
		t.Fatalf("parse json: %v", err)
	}
	var payload any
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Errorf("invalid JSON: %v", err)
	}
}

func TestInit(t *testing.T) {
	dir := t.TempDir()
	if _, _, err := runCLI(t, "", "init", dir); err != nil {
		t.Fatalf("init: %v", err)
	}
	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	if err != nil {
		t.Fatalf("written config does not load: %v", err)
	}
	if cfg.Hash() != config.Default().Hash() {
		t.Error("written config differs from the default")
	}

	if _, _, err := runCLI(t, "", "init", dir); err == nil {
		t.Error("second init must refuse to overwrite")
	}
	if _, _, err := runCLI(t, "", "init", "--force", dir); err != nil {
		t.Errorf("init --force: %v", err)
	}
}

func TestVersion(t *testing.T) {
	out, _, err := runCLI(t, "", "version", "--full")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "zhfmt ") || !strings.Contains(out, "commit: ") || !strings.Contains(out, "built:") {
		t.Errorf("unexpected output:\n%s", out)
	}

	out, _, err = runCLI(t, "", "version", "--format", "json")
	if err != nil {
		t.Fatalf("version json: %v", err)
	}
	var payload versionPayload
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if payload.Tool != "zhfmt" || payload.GitCommit != "" {
		t.Errorf("unexpected payload %+v", payload)
	}

	if _, _, err := runCLI(t, "", "version", "--format", "xml"); err == nil {
		t.Error("expected unsupported format error")
	}
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiAuto, "ON": uiOn, " off ": uiOff, "never": uiOff} {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Errorf("readUIMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := readUIMode("maybe"); err == nil {
		t.Error("expected error")
	}
	if !shouldUseTUI(uiOn, nil) || shouldUseTUI(uiOff, nil) {
		t.Error("explicit modes must win")
	}
}
