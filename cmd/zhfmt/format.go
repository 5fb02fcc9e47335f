package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/unicode/norm"

	"zhfmt/internal/diag"
	"zhfmt/internal/diagfmt"
	"zhfmt/internal/driver"
	"zhfmt/internal/source"
)

var formatCmd = &cobra.Command{
	Use:   "format [flags] [file|-]",
	Short: "Format stdin or a single file to stdout",
	Long: `Format reads text from stdin (or from the named file), applies every rewrite and
writes the result to stdout. Stdin is treated as Markdown unless --mode or
--stdin-filename say otherwise.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFormat,
}

func init() {
	formatCmd.Flags().String("mode", "auto", "markup mode (auto|markdown|text)")
	formatCmd.Flags().String("stdin-filename", "", "file name used for stdin in mode detection and diagnostics")
	formatCmd.Flags().Bool("nfc", false, "normalize input to Unicode NFC before formatting")
}

func runFormat(cmd *cobra.Command, args []string) (err error) {
	modeStr, err := cmd.Flags().GetString("mode")
	if err != nil {
		return fmt.Errorf("failed to get mode flag: %w", err)
	}
	mode, err := driver.ParseMode(modeStr)
	if err != nil {
		return err
	}
	stdinName, err := cmd.Flags().GetString("stdin-filename")
	if err != nil {
		return fmt.Errorf("failed to get stdin-filename flag: %w", err)
	}
	nfc, err := cmd.Flags().GetBool("nfc")
	if err != nil {
		return fmt.Errorf("failed to get nfc flag: %w", err)
	}

	finish, err := startSession(cmd)
	if err != nil {
		return err
	}
	defer func() { finish(err) }()

	var (
		name    string
		content []byte
	)
	if len(args) == 0 || args[0] == "-" {
		name = stdinName
		if name == "" {
			name = "<stdin>"
			if mode == driver.ModeAuto {
				mode = driver.ModeMarkdown
			}
		}
		if content, err = io.ReadAll(cmd.InOrStdin()); err != nil {
			return fmt.Errorf("format: failed to read stdin: %w", err)
		}
	} else {
		name = args[0]
		// #nosec G304 -- path is provided by the user
		if content, err = os.ReadFile(name); err != nil {
			return fmt.Errorf("format: %w", err)
		}
	}
	if nfc {
		content = norm.NFC.Bytes(content)
	}

	cfg, err := loadConfig(cmd, configStart(args))
	if err != nil {
		return err
	}
	fs, res := driver.FormatSource(name, content, cfg, mode)
	if _, err := cmd.OutOrStdout().Write(source.RestoreBOM(res.File, res.Text)); err != nil {
		return fmt.Errorf("format: failed to write output: %w", err)
	}

	bag := diag.NewBag(0)
	res.Diagnostics(bag)
	if !bag.HasErrors() {
		return nil
	}
	colored, err := useColor(cmd, os.Stderr)
	if err != nil {
		return err
	}
	diagfmt.Pretty(cmd.ErrOrStderr(), onlyErrors(bag), fs, diagfmt.PrettyOpts{Color: colored, Context: 2})
	return fmt.Errorf("format: %s: some paragraphs were left unformatted", name)
}
