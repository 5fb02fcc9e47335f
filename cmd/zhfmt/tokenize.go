package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"zhfmt/internal/diagfmt"
	"zhfmt/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file>",
	Short: "Dump the token stream of a file",
	Long:  `Tokenize flattens the markup of a file into the rune and event tokens the parser consumes`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	tokenizeCmd.Flags().String("mode", "auto", "markup mode (auto|markdown|text)")
	tokenizeCmd.Flags().Bool("nfc", false, "normalize input to Unicode NFC")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	// Получаем флаги
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

	result, err := driver.Tokenize(filePath, mode, nfc)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(cmd.OutOrStdout(), result.Tokens, result.FileSet)
	case "json":
		return diagfmt.FormatTokensJSON(cmd.OutOrStdout(), result.Tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
