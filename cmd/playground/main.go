package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"playground/internal/version"
)

var rootCmd = &cobra.Command{
	Use:           "playground",
	Short:         "Terbium playground harness",
	Long:          `Run Terbium programs the way the web playground does: ast, dis or run, with a diagnostics report`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return startSession(cmd)
	},
}

// errFindings - программа дошла до отчёта с ошибками; текст уже напечатан.
var errFindings = errors.New("request finished with errors")

func init() {
	rootCmd.Version = version.Current()

	rootCmd.AddCommand(astCmd)
	rootCmd.AddCommand(disCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	flags := rootCmd.PersistentFlags()
	flags.String("mode", "", "diagnostics rendering (plain|ansi|html|auto); default from playground.toml")
	flags.String("config", "", "path to playground.toml (default: search upwards from the input)")
	flags.Int("max-diagnostics", 0, "maximum number of syntax diagnostics to report (0 = config value)")
	flags.Int("max-steps", 0, "interpreter step budget (0 = config value, -1 = unbounded)")
	flags.Bool("timings", false, "print per-stage timings to stderr")
	flags.String("format", "text", "response output format (text|json|msgpack)")
	flags.Bool("cache", false, "reuse responses from the on-disk cache")
	flags.String("trace", "", "trace output file (- for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-mode", "stream", "trace storage mode (stream|ring|both)")
	flags.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	flags.Int("trace-ring-size", 4096, "ring buffer capacity for --trace-mode=ring")
	flags.Duration("trace-heartbeat", 0, "emit heartbeat events at this interval (0 = off)")
	flags.String("cpu-profile", "", "write a CPU profile to this path")
	flags.String("mem-profile", "", "write a heap profile to this path on exit")
	flags.String("runtime-trace", "", "write a Go runtime trace to this path")
}

// main executes the root command. A failed command exits with status 1.
func main() {
	err := rootCmd.Execute()
	stopSession()
	if err != nil {
		if !errors.Is(err, errFindings) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
