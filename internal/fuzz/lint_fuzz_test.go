package fuzztests

import (
	"testing"

	"zhfmt/internal/config"
	"zhfmt/internal/diag"
	"zhfmt/internal/fix"
	"zhfmt/internal/lint"
	"zhfmt/internal/source"
)

// FuzzLintFixesMatchText checks that applying every emitted fix yields
// exactly the rewritten text.
func FuzzLintFixesMatchText(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		for _, mode := range []lint.Mode{lint.Markdown, lint.Plain} {
			fs := source.NewFileSet()
			file := fs.Get(fs.AddVirtual("fuzz.md", input))
			res := lint.Run(file, config.Default(), lint.Options{Mode: mode})
			if !res.Changed() {
				if string(res.Text) != string(file.Content) {
					t.Fatalf("%s: text differs without changes", mode)
				}
				continue
			}

			bag := diag.NewBag(0)
			res.Diagnostics(bag)
			applied, err := fix.Preview(fs, bag.Items(), fix.ApplyOptions{Mode: fix.ApplyModeAll})
			if err != nil {
				t.Fatalf("%s: Preview: %v", mode, err)
			}
			if got := string(applied.Buffers[file.ID]); got != string(res.Text) {
				t.Fatalf("%s: fixes give %q, text is %q\ninput: %q", mode, got, res.Text, truncateForLog(input, 200))
			}
		}
	})
}
