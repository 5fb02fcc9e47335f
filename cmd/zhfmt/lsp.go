package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"zhfmt/internal/config"
	"zhfmt/internal/driver"
	"zhfmt/internal/lsp"
)

var lspCmd = &cobra.Command{
	Use:   "lsp",
	Short: "Run the zhfmt language server over stdio",
	Long: `Lsp publishes diagnostics for open documents, offers quick fixes for each
finding and formats whole documents. Configuration is discovered per document
unless --config is given`,
	Args: cobra.NoArgs,
	RunE: runLSP,
}

func init() {
	lspCmd.Flags().String("mode", "auto", "markup mode (auto|markdown|text)")
	lspCmd.Flags().Duration("debounce", 300*time.Millisecond, "delay before re-linting an edited document")
}

func runLSP(cmd *cobra.Command, _ []string) (err error) {
	modeStr, err := cmd.Flags().GetString("mode")
	if err != nil {
		return fmt.Errorf("failed to get mode flag: %w", err)
	}
	mode, err := driver.ParseMode(modeStr)
	if err != nil {
		return err
	}
	debounce, err := cmd.Flags().GetDuration("debounce")
	if err != nil {
		return fmt.Errorf("failed to get debounce flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	explicit, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}

	finish, err := startSession(cmd)
	if err != nil {
		return err
	}
	defer func() { finish(err) }()

	var cfg *config.Config
	if explicit != "" {
		if cfg, err = loadConfig(cmd, ""); err != nil {
			return err
		}
	}

	server := lsp.NewServer(lsp.ServerOptions{
		Debounce:       debounce,
		Config:         cfg,
		Mode:           mode,
		MaxDiagnostics: maxDiagnostics,
		Log:            cmd.ErrOrStderr(),
	})
	err = server.Run(cmd.Context(), stdio{in: os.Stdin, out: os.Stdout})
	switch {
	case errors.Is(err, lsp.ErrExit):
		return nil
	case errors.Is(err, lsp.ErrExitWithoutShutdown):
		return fmt.Errorf("lsp exit without shutdown")
	default:
		return err
	}
}

// stdio joins stdin and stdout into the stream the server reads and writes.
type stdio struct{ in, out *os.File }

func (c stdio) Read(p []byte) (int, error)  { return c.in.Read(p) }
func (c stdio) Write(p []byte) (int, error) { return c.out.Write(p) }

func (c stdio) Close() error {
	if err := c.in.Close(); err != nil {
		c.out.Close()
		return err
	}
	return c.out.Close()
}
