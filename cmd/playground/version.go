package main

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"playground/internal/version"
)

type versionPayload struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

var (
	versionFormat string
	versionFull   bool
)

func init() {
	versionCmd.Flags().StringVar(&versionFormat, "output", "pretty", "output format (pretty|json)")
	versionCmd.Flags().BoolVar(&versionFull, "full", false, "include commit and build date")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show playground build information",
	RunE: func(cmd *cobra.Command, args []string) error {
		payload := versionPayload{
			Tool:      "playground",
			Version:   version.Current(),
			GoVersion: runtime.Version(),
		}
		if versionFull {
			payload.GitCommit = valueOrUnknown(version.GitCommit)
			payload.BuildDate = valueOrUnknown(version.BuildDate)
		}
		switch strings.ToLower(versionFormat) {
		case "pretty":
			return renderVersionPretty(cmd.OutOrStdout(), payload)
		case "json":
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(payload)
		default:
			return fmt.Errorf("unsupported format %q (must be pretty or json)", versionFormat)
		}
	},
}

func renderVersionPretty(out io.Writer, p versionPayload) error {
	if _, err := fmt.Fprintf(out, "playground %s (%s)\n", version.Styled(), p.GoVersion); err != nil {
		return err
	}
	if p.GitCommit != "" {
		if _, err := fmt.Fprintf(out, "commit: %s\n", p.GitCommit); err != nil {
			return err
		}
	}
	if p.BuildDate != "" {
		if _, err := fmt.Fprintf(out, "built:  %s\n", p.BuildDate); err != nil {
			return err
		}
	}
	return nil
}

func valueOrUnknown(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "unknown"
	}
	return s
}
