package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"zhfmt/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write the default " + config.FileName,
	Long: `Initialize writes the recommended configuration to ` + config.FileName + ` in the given
directory (default: the current one). An existing file is kept unless --force
is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().Bool("force", false, "overwrite an existing config file")
}

const configHeader = `# zhfmt configuration
# Tri-state options take true, false or "keep".
# Set preset = "empty" to start from every rule disabled.

`

func runInit(cmd *cobra.Command, args []string) error {
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return fmt.Errorf("failed to get force flag: %w", err)
	}

	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err = os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	path := filepath.Join(target, config.FileName)
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config already exists: %s (use --force to overwrite)", path)
	}

	var buf bytes.Buffer
	buf.WriteString(configHeader)
	if err := config.Default().Encode(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
