package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"zhfmt/internal/config"
	"zhfmt/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "zhfmt",
	Short: "Spacing and punctuation linter for mixed Chinese and Western prose",
	Long: `zhfmt checks Markdown and plain text for spacing and punctuation problems
between Chinese and Western script, reports them, and rewrites files on request`,
	SilenceUsage: true,
}

func init() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(formatCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(lspCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	pf := rootCmd.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics per file (0 = unlimited)")
	pf.String("config", "", "path to a config file (default: nearest "+config.FileName+")")

	pf.String("trace", "", "trace output file (\"-\" for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "ring", "trace storage (stream|ring|both)")
	pf.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	pf.Int("trace-ring-size", 4096, "events kept by the ring tracer")
	pf.Duration("trace-heartbeat", 0, "emit heartbeat events at this interval (0 = off)")

	pf.String("cpu-profile", "", "write a CPU profile to file")
	pf.String("mem-profile", "", "write a heap profile to file")
	pf.String("runtime-trace", "", "write a runtime execution trace to file")
}

// main executes the root command and exits with status 1 on any error.
func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
