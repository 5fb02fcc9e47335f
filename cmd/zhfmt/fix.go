package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"zhfmt/internal/diag"
	"zhfmt/internal/diagfmt"
	"zhfmt/internal/driver"
	"zhfmt/internal/fix"
	"zhfmt/internal/observ"
	"zhfmt/internal/pipeline"
	"zhfmt/internal/source"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] [path|glob...]",
	Short: "Rewrite files in place",
	Long: `Fix lints the given files and applies every rewrite in place. With --dry-run
the patched text is printed to stdout instead. Paragraphs that fail to parse
are left untouched and reported.`,
	RunE: runFix,
}

func init() {
	fixCmd.Flags().Bool("dry-run", false, "print patched files to stdout instead of writing them")
	registerLintFlags(fixCmd)
}

func runFix(cmd *cobra.Command, args []string) (err error) {
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return fmt.Errorf("failed to get dry-run flag: %w", err)
	}
	lf, err := readLintFlags(cmd)
	if err != nil {
		return err
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	finish, err := startSession(cmd)
	if err != nil {
		return err
	}
	defer func() { finish(err) }()

	files, err := driver.Discover(args, lf.exclude)
	if err != nil {
		return fmt.Errorf("fix: %w", err)
	}
	cfg, err := loadConfig(cmd, configStart(args))
	if err != nil {
		return err
	}
	var timer *observ.Timer
	if showTimings {
		timer = observ.NewTimer()
	}

	fs := source.NewFileSet()
	if wd, wdErr := os.Getwd(); wdErr == nil {
		fs.SetBaseDir(wd)
	}
	// все диагностики нужны целиком: каждая несёт свою правку
	opts := driver.Options{
		Config: cfg,
		Mode:   lf.mode,
		Jobs:   lf.jobs,
		NFC:    lf.nfc,
		Timer:  timer,
	}
	withUI := shouldUseTUI(lf.ui, os.Stderr) && !dryRun && !quiet

	var timings pipeline.Timings
	start := time.Now()
	results, err := runLint(cmd.Context(), "fix", fs, files, opts, withUI)
	timings.Add(pipeline.StageLint, time.Since(start))
	if err != nil {
		return fmt.Errorf("fix: %w", err)
	}

	bag := collectDiagnostics(results)
	start = time.Now()
	applyOpts := fix.ApplyOptions{Mode: fix.ApplyModeAll}
	var res *fix.ApplyResult
	if dryRun {
		res, err = fix.Preview(fs, bag.Items(), applyOpts)
	} else {
		res, err = fix.Apply(fs, bag.Items(), applyOpts)
	}
	timings.Add(pipeline.StageFix, time.Since(start))
	if err != nil && !errors.Is(err, fix.ErrNoFixes) {
		return fmt.Errorf("fix: %w", err)
	}

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	if dryRun {
		if err := writeBuffers(out, fs, results, res); err != nil {
			return err
		}
	} else if !quiet {
		if err := handleApplyResult(out, res); err != nil {
			return err
		}
	}

	sum := summarize(results)
	if sum.failed > 0 {
		colored, colorErr := useColor(cmd, os.Stderr)
		if colorErr != nil {
			return colorErr
		}
		diagfmt.Pretty(errOut, onlyErrors(bag), fs, diagfmt.PrettyOpts{Color: colored, Context: 2})
	}
	if !quiet {
		sum.write(errOut, "fixed")
	}
	if showTimings {
		printStageTimings(errOut, timings)
		if err := timer.WriteSummary(errOut); err != nil {
			return err
		}
	}
	if sum.failed > 0 {
		return fmt.Errorf("fix: %d file(s) could not be fully processed", sum.failed)
	}
	return nil
}

// writeBuffers prints every linted file, patched or not, in input order.
func writeBuffers(out io.Writer, fs *source.FileSet, results []driver.FileResult, res *fix.ApplyResult) error {
	for i := range results {
		r := &results[i]
		if r.LoadErr != nil {
			continue
		}
		content := fs.Get(r.FileID).Content
		if res != nil {
			if buf, ok := res.Buffers[r.FileID]; ok {
				content = buf
			}
		}
		if len(results) > 1 {
			if _, err := fmt.Fprintf(out, "==> %s <==\n", r.Path); err != nil {
				return err
			}
		}
		if _, err := out.Write(source.RestoreBOM(fs.Get(r.FileID), content)); err != nil {
			return err
		}
	}
	return nil
}

func onlyErrors(bag *diag.Bag) *diag.Bag {
	out := diag.NewBag(0)
	for _, d := range bag.Items() {
		if d.Severity >= diag.SevError {
			out.Add(d)
		}
	}
	return out
}

func handleApplyResult(out io.Writer, res *fix.ApplyResult) error {
	if res == nil {
		return nil
	}
	if len(res.FileChanges) > 0 {
		if _, err := fmt.Fprintln(out, "Updated files:"); err != nil {
			return err
		}
		for _, change := range res.FileChanges {
			if _, err := fmt.Fprintf(out, "  %s (%d edits)\n", change.Path, change.EditCount); err != nil {
				return err
			}
		}
	}
	if len(res.Skipped) > 0 {
		if _, err := fmt.Fprintln(out, "Skipped fixes:"); err != nil {
			return err
		}
		for _, skip := range res.Skipped {
			id := skip.ID
			if id == "" {
				id = "(unnamed)"
			}
			if _, err := fmt.Fprintf(out, "  %s [%s]: %s\n", skip.Title, id, skip.Reason); err != nil {
				return err
			}
		}
	}
	return nil
}
