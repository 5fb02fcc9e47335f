package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"zhfmt/internal/config"
	"zhfmt/internal/diagfmt"
	"zhfmt/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file>",
	Short: "Dump the paragraph trees of a file",
	Long: `Parse prints the tree of every paragraph: content runs, punctuation, groups
and the whitespace around them. With --rules the rewrite rules run first and
modified values are shown as "old" -> "new".`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	parseCmd.Flags().String("mode", "auto", "markup mode (auto|markdown|text)")
	parseCmd.Flags().Bool("nfc", false, "normalize input to Unicode NFC")
	parseCmd.Flags().Bool("rules", false, "apply the rewrite rules before dumping")
}

func runParse(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	modeStr, err := cmd.Flags().GetString("mode")
	if err != nil {
		return fmt.Errorf("failed to get mode flag: %w", err)
	}
	mode, err := driver.ParseMode(modeStr)
	if err != nil {
		return err
	}
	nfc, err := cmd.Flags().GetBool("nfc")
	if err != nil {
		return fmt.Errorf("failed to get nfc flag: %w", err)
	}
	withRules, err := cmd.Flags().GetBool("rules")
	if err != nil {
		return fmt.Errorf("failed to get rules flag: %w", err)
	}

	var cfg *config.Config
	if withRules {
		if cfg, err = loadConfig(cmd, configStart(args)); err != nil {
			return err
		}
	}
	result, err := driver.Parse(filePath, mode, nfc, cfg)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	switch format {
	case "pretty":
		return diagfmt.FormatTreePretty(cmd.OutOrStdout(), result.Paragraphs, result.FileSet)
	case "json":
		return diagfmt.FormatTreeJSON(cmd.OutOrStdout(), result.Paragraphs)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
