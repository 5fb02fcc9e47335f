package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"zhfmt/internal/diagfmt"
	"zhfmt/internal/driver"
	"zhfmt/internal/observ"
	"zhfmt/internal/pipeline"
	"zhfmt/internal/source"
	"zhfmt/internal/version"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [path|glob...]",
	Short: "Report spacing and punctuation problems",
	Long: `Check lints the given files, directories or doublestar globs (default: ./**/*.md)
and prints a diagnostic for every rewrite zhfmt would make. It exits with a
non-zero status when any file would change or fails to parse.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|short|json|sarif)")
	checkCmd.Flags().Bool("disk-cache", false, "remember clean files between runs")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().Bool("suggest", false, "include fix suggestions in output")
	checkCmd.Flags().Bool("preview", false, "preview fixed lines in output")
	registerLintFlags(checkCmd)
}

// runCheck executes the "check" command. Diagnostics go to stdout in the
// chosen format; the summary and timings go to stderr.
func runCheck(cmd *cobra.Command, args []string) (err error) {
	formatStr, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format, ok := diagfmt.ParseFormat(formatStr)
	if !ok {
		return fmt.Errorf("unknown format: %s", formatStr)
	}
	enableDiskCache, err := cmd.Flags().GetBool("disk-cache")
	if err != nil {
		return fmt.Errorf("failed to get disk-cache flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	suggest, err := cmd.Flags().GetBool("suggest")
	if err != nil {
		return fmt.Errorf("failed to get suggest flag: %w", err)
	}
	preview, err := cmd.Flags().GetBool("preview")
	if err != nil {
		return fmt.Errorf("failed to get preview flag: %w", err)
	}
	lf, err := readLintFlags(cmd)
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
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
		return fmt.Errorf("check: %w", err)
	}
	cfg, err := loadConfig(cmd, configStart(args))
	if err != nil {
		return err
	}

	var cache *driver.DiskCache
	if enableDiskCache {
		if cache, err = driver.OpenDiskCache("zhfmt"); err != nil {
			return fmt.Errorf("check: failed to open disk cache: %w", err)
		}
	}
	var timer *observ.Timer
	if showTimings {
		timer = observ.NewTimer()
	}

	fs := source.NewFileSet()
	if wd, wdErr := os.Getwd(); wdErr == nil {
		fs.SetBaseDir(wd)
	}
	opts := driver.Options{
		Config:         cfg,
		Mode:           lf.mode,
		Jobs:           lf.jobs,
		MaxDiagnostics: maxDiagnostics,
		NFC:            lf.nfc,
		Cache:          cache,
		Timer:          timer,
	}
	withUI := shouldUseTUI(lf.ui, os.Stderr) && format == diagfmt.FormatPretty && !quiet

	var timings pipeline.Timings
	start := time.Now()
	results, err := runLint(cmd.Context(), "check", fs, files, opts, withUI)
	timings.Add(pipeline.StageLint, time.Since(start))
	if err != nil {
		return fmt.Errorf("check: %w", err)
	}

	start = time.Now()
	bag := collectDiagnostics(results)
	out := cmd.OutOrStdout()
	pathMode := pathModeFor(fullPath)
	colored, err := useColor(cmd, os.Stdout)
	if err != nil {
		return err
	}
	switch format {
	case diagfmt.FormatPretty:
		diagfmt.Pretty(out, bag, fs, diagfmt.PrettyOpts{
			Color:       colored,
			Context:     2,
			PathMode:    pathMode,
			ShowNotes:   withNotes,
			ShowFixes:   suggest || preview,
			ShowPreview: preview,
		})
	case diagfmt.FormatShort:
		diagfmt.Short(out, bag, fs, pathMode)
	case diagfmt.FormatJSON:
		err = diagfmt.JSON(out, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     withNotes,
			IncludeFixes:     suggest || preview,
			IncludePreviews:  preview,
		})
	case diagfmt.FormatSarif:
		err = diagfmt.Sarif(out, bag, fs, diagfmt.SarifRunMeta{
			ToolName:       "zhfmt",
			ToolVersion:    version.Version,
			InvocationArgs: os.Args[1:],
		})
	}
	if err != nil {
		return fmt.Errorf("failed to format diagnostics: %w", err)
	}
	timings.Add(pipeline.StageReport, time.Since(start))

	sum := summarize(results)
	errOut := cmd.ErrOrStderr()
	if !quiet && format == diagfmt.FormatPretty {
		sum.write(errOut, "checked")
	}
	if showTimings {
		printStageTimings(errOut, timings)
		if err := timer.WriteSummary(errOut); err != nil {
			return err
		}
	}

	if sum.changed > 0 || sum.failed > 0 {
		return fmt.Errorf("check: %d file(s) need formatting, %d failed", sum.changed, sum.failed)
	}
	return nil
}
