package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"playground/internal/driver"
	"playground/internal/ui"
)

var batchCmd = &cobra.Command{
	Use:   "batch [flags] <dir>",
	Short: "Run an operation over every *.tb file in a directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runBatch,
}

func init() {
	batchCmd.Flags().Int("jobs", 0, "max parallel requests (0=auto)")
	batchCmd.Flags().String("op", "run", "operation per file (ast|dis|run)")
	batchCmd.Flags().String("ui", "auto", "progress view (auto|on|off)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	dir := args[0]
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	opStr, err := cmd.Flags().GetString("op")
	if err != nil {
		return fmt.Errorf("failed to get op flag: %w", err)
	}
	op, err := driver.ParseOp(opStr)
	if err != nil {
		return err
	}
	uiStr, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiStr)
	if err != nil {
		return err
	}

	s, err := loadSettings(cmd, dir)
	if err != nil {
		return err
	}
	files, err := driver.ListSources(dir)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", dir, err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no %s files under %s", driver.SourceExt, dir)
	}

	h := driver.NewHarness(s.opts)
	var results []driver.BatchResult
	if shouldUseTUI(mode) && s.format == formatText {
		results, err = runBatchWithUI(cmd.Context(), h, op, dir, files, jobs)
	} else {
		results, err = h.RunBatch(cmd.Context(), op, files, jobs, nil)
	}
	if err != nil {
		return err
	}
	if err := writeBatch(cmd.OutOrStdout(), dir, s, results); err != nil {
		return err
	}
	if failed, _ := driver.BatchTally(results); failed > 0 {
		return errFindings
	}
	return nil
}

type batchOutcome struct {
	results []driver.BatchResult
	err     error
}

func runBatchWithUI(ctx context.Context, h *driver.Harness, op driver.Op, dir string, files []string, jobs int) ([]driver.BatchResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan batchOutcome, 1)

	go func() {
		res, err := h.RunBatch(ctx, op, files, jobs, driver.ChannelSink{Ch: events})
		outcomeCh <- batchOutcome{results: res, err: err}
		close(events)
	}()

	title := fmt.Sprintf("%s %s", op, dir)
	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}

// writeBatch prints one section per file followed by a batch summary.
func writeBatch(out io.Writer, dir string, s *settings, results []driver.BatchResult) error {
	for _, r := range results {
		header := fmt.Sprintf("== %s (%.1f ms)", displayPath(dir, r.Path), float64(r.Elapsed.Microseconds())/1000)
		if s.format != formatText {
			header = "# " + displayPath(dir, r.Path)
		}
		if _, err := fmt.Fprintln(out, header); err != nil {
			return err
		}
		if r.Err != nil {
			if _, err := fmt.Fprintf(out, "error: %v\n", r.Err); err != nil {
				return err
			}
			continue
		}
		if err := writeOutcome(out, out, s, r.Outcome); err != nil {
			return err
		}
	}
	failed, tally := driver.BatchTally(results)
	_, err := fmt.Fprintf(out, "%d %s, %d failed; %s\n", len(results), plural(len(results), "file"), failed, tally.Summary())
	return err
}

func displayPath(base, path string) string {
	if rel, err := filepath.Rel(base, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
