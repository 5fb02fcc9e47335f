package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"zhfmt/internal/config"
	"zhfmt/internal/diag"
	"zhfmt/internal/diagfmt"
	"zhfmt/internal/driver"
	"zhfmt/internal/pipeline"
	"zhfmt/internal/trace"
)

// useColor resolves --color for the stream f.
func useColor(cmd *cobra.Command, f *os.File) (bool, error) {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch colorFlag {
	case "on", "always":
		return true, nil
	case "off", "never":
		return false, nil
	case "auto", "":
		return isTerminal(f), nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
	}
}

// loadConfig honours --config, otherwise searches upwards from start.
func loadConfig(cmd *cobra.Command, start string) (*config.Config, error) {
	explicit, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg, path, err := config.Resolve(explicit, start)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	detail := "default"
	if path != "" {
		detail = path
	}
	trace.Point(trace.FromContext(cmd.Context()), trace.ScopeDriver, "config", detail, 0)
	return cfg, nil
}

// configStart picks the directory config discovery starts from.
func configStart(args []string) string {
	if len(args) == 0 {
		return "."
	}
	if info, err := os.Stat(args[0]); err == nil && info.IsDir() {
		return args[0]
	}
	return filepath.Dir(args[0])
}

// lintFlags are shared by check and fix.
type lintFlags struct {
	mode    driver.Mode
	jobs    int
	nfc     bool
	exclude []string
	ui      uiMode
}

func registerLintFlags(cmd *cobra.Command) {
	cmd.Flags().String("mode", "auto", "markup mode (auto|markdown|text)")
	cmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	cmd.Flags().Bool("nfc", false, "normalize input to Unicode NFC before linting")
	cmd.Flags().StringSlice("exclude", nil, "glob patterns to skip (doublestar syntax)")
	cmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
}

func readLintFlags(cmd *cobra.Command) (lintFlags, error) {
	var lf lintFlags
	modeStr, err := cmd.Flags().GetString("mode")
	if err != nil {
		return lf, fmt.Errorf("failed to get mode flag: %w", err)
	}
	if lf.mode, err = driver.ParseMode(modeStr); err != nil {
		return lf, err
	}
	if lf.jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return lf, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if lf.nfc, err = cmd.Flags().GetBool("nfc"); err != nil {
		return lf, fmt.Errorf("failed to get nfc flag: %w", err)
	}
	if lf.exclude, err = cmd.Flags().GetStringSlice("exclude"); err != nil {
		return lf, fmt.Errorf("failed to get exclude flag: %w", err)
	}
	uiStr, err := cmd.Flags().GetString("ui")
	if err != nil {
		return lf, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if lf.ui, err = readUIMode(uiStr); err != nil {
		return lf, err
	}
	return lf, nil
}

// collectDiagnostics merges every per-file bag into one sorted bag.
func collectDiagnostics(results []driver.FileResult) *diag.Bag {
	bag := diag.NewBag(0)
	for i := range results {
		if results[i].Bag != nil {
			bag.Merge(results[i].Bag)
		}
	}
	bag.Sort()
	return bag
}

// summary counts the outcome of a run.
type summary struct {
	files, changed, failed, cached, dropped int
}

func summarize(results []driver.FileResult) summary {
	s := summary{files: len(results)}
	for i := range results {
		r := &results[i]
		switch {
		case r.Failed():
			s.failed++
		case r.Changed():
			s.changed++
		}
		if r.Cached {
			s.cached++
		}
		if r.Bag != nil {
			s.dropped += r.Bag.Dropped()
		}
	}
	return s
}

func (s summary) write(out io.Writer, verb string) {
	fmt.Fprintf(out, "%s %d file(s): %d changed, %d failed", verb, s.files, s.changed, s.failed)
	if s.cached > 0 {
		fmt.Fprintf(out, ", %d cached", s.cached)
	}
	if s.dropped > 0 {
		fmt.Fprintf(out, " (%d diagnostics over the limit)", s.dropped)
	}
	fmt.Fprintln(out)
}

func pathModeFor(fullPath bool) diagfmt.PathMode {
	if fullPath {
		return diagfmt.PathModeAbsolute
	}
	return diagfmt.PathModeAuto
}

func printStageTimings(out io.Writer, timings pipeline.Timings) {
	for _, stage := range []pipeline.Stage{pipeline.StageLint, pipeline.StageFix, pipeline.StageReport} {
		if timings.Has(stage) {
			fmt.Fprintf(out, "%s %.1f ms\n", stage, toMillis(timings.Duration(stage)))
		}
	}
	if total := timings.Sum(pipeline.StageLint, pipeline.StageFix, pipeline.StageReport); total > 0 {
		fmt.Fprintf(out, "total %.1f ms\n", toMillis(total))
	}
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
