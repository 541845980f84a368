package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"playground/internal/driver"
)

var astCmd = &cobra.Command{
	Use:   "ast [flags] <file.tb|->",
	Short: "Print the syntax tree of a Terbium program",
	Args:  cobra.MaximumNArgs(1),
	RunE:  requestRunner(driver.OpAST),
}

var disCmd = &cobra.Command{
	Use:   "dis [flags] <file.tb|->",
	Short: "Print the bytecode disassembly of a Terbium program",
	Args:  cobra.MaximumNArgs(1),
	RunE:  requestRunner(driver.OpDis),
}

var runCmd = &cobra.Command{
	Use:     "run [flags] <file.tb|->",
	Aliases: []string{"interpret"},
	Short:   "Run a Terbium program and print its value",
	Args:    cobra.MaximumNArgs(1),
	RunE:    requestRunner(driver.OpInterpret),
}

func requestRunner(op driver.Op) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		arg := "-"
		if len(args) == 1 {
			arg = args[0]
		}
		s, err := loadSettings(cmd, inputDir(arg))
		if err != nil {
			return err
		}
		src, err := readInput(cmd.InOrStdin(), arg)
		if err != nil {
			return err
		}
		out := driver.NewHarness(s.opts).Exec(op, src)
		if err := writeOutcome(cmd.OutOrStdout(), cmd.ErrOrStderr(), s, out); err != nil {
			return err
		}
		if out.Aborted != nil {
			return errFindings
		}
		return nil
	}
}

// readInput reads the program from a file, or from stdin for "-".
func readInput(stdin io.Reader, arg string) (string, error) {
	if arg == "-" {
		src, err := driver.ReadSource(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return src, nil
	}
	src, err := driver.LoadSource(arg)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", arg, err)
	}
	return src, nil
}

// writeOutcome prints the response: in text format the primary result goes to
// stdout and the report to stderr; json and msgpack emit the whole response.
func writeOutcome(stdout, stderr io.Writer, s *settings, out driver.Outcome) error {
	resp := out.Response
	switch s.format {
	case formatJSON:
		if err := resp.WriteJSON(stdout); err != nil {
			return err
		}
	case formatMsgpack:
		if err := resp.WriteMsgpack(stdout); err != nil {
			return err
		}
	default:
		if !resp.Result.IsNull() {
			if _, err := fmt.Fprintln(stdout, resp.Result.String()); err != nil {
				return err
			}
		}
		if resp.Diagnostics != nil {
			if _, err := fmt.Fprintln(stderr, *resp.Diagnostics); err != nil {
				return err
			}
		}
	}
	if s.timings && out.Timings != nil {
		_, err := fmt.Fprint(stderr, out.Timings.String())
		return err
	}
	return nil
}
