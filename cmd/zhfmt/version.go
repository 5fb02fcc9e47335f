package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"zhfmt/internal/version"
)

const versionTagline = "a space between 中文 and English"

// versionPayload is the --format json document; optional fields appear only
// when their flag is set.
type versionPayload struct {
	Tool       string `json:"tool"`
	Version    string `json:"version"`
	Tagline    string `json:"tagline"`
	GitCommit  string `json:"git_commit,omitempty"`
	GitMessage string `json:"git_message,omitempty"`
	BuildDate  string `json:"build_date,omitempty"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show zhfmt build fingerprints",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func init() {
	f := versionCmd.Flags()
	f.Bool("hash", false, "include git commit hash")
	f.Bool("message", false, "include git commit message")
	f.Bool("date", false, "include build timestamp")
	f.Bool("full", false, "show every recorded bit of build metadata")
	f.String("format", "pretty", "output format (pretty|json)")
}

func runVersion(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	format, err := flags.GetString("format")
	if err != nil {
		return err
	}
	full, _ := flags.GetBool("full")
	want := func(name string) bool {
		on, _ := flags.GetBool(name)
		return on || full
	}

	info := version.Get()
	p := versionPayload{Tool: "zhfmt", Version: info.Version, Tagline: versionTagline}
	if want("hash") {
		p.GitCommit = orUnknown(info.GitCommit)
	}
	if want("message") {
		p.GitMessage = orUnknown(info.GitMessage)
	}
	if want("date") {
		p.BuildDate = orUnknown(info.BuildDate)
	}

	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	case "pretty":
		colored, err := useColor(cmd, os.Stdout)
		if err != nil {
			return err
		}
		printVersion(cmd.OutOrStdout(), p, colored)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
}

func printVersion(out io.Writer, p versionPayload, colored bool) {
	fmt.Fprintf(out, "zhfmt %s (%s)\n", version.Colored(p.Version, colored), p.Tagline)
	for _, line := range [][2]string{
		{"commit: ", p.GitCommit},
		{"message: ", p.GitMessage},
		{"built:  ", p.BuildDate},
	} {
		if line[1] != "" {
			fmt.Fprintf(out, "%s%s\n", line[0], line[1])
		}
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
