package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"playground/internal/diagfmt"
	"playground/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file.tb|->",
	Short: "Dump the tokens of a Terbium source file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("tokens", "pretty", "token output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	arg := "-"
	if len(args) == 1 {
		arg = args[0]
	}
	format, err := cmd.Flags().GetString("tokens")
	if err != nil {
		return fmt.Errorf("failed to get tokens flag: %w", err)
	}
	s, err := loadSettings(cmd, inputDir(arg))
	if err != nil {
		return err
	}
	var result *driver.TokenizeResult
	if arg == "-" {
		src, err := readInput(cmd.InOrStdin(), arg)
		if err != nil {
			return err
		}
		result = driver.TokenizeSource(src, s.opts.MaxDiagnostics)
	} else {
		// с диска: спаны несут настоящее имя файла
		result, err = driver.Tokenize(arg, s.opts.MaxDiagnostics)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", arg, err)
		}
	}

	// Выводим диагностику в stderr, если есть
	if result.Bag.Len() > 0 {
		report := diagfmt.Render(result.Bag.Items(), result.FileSet, s.opts.Mode)
		if _, err := fmt.Fprintln(cmd.ErrOrStderr(), report); err != nil {
			return err
		}
	}

	switch format {
	case "pretty":
		err = diagfmt.FormatTokensPretty(cmd.OutOrStdout(), result.Tokens, result.FileSet)
	case "json":
		err = diagfmt.FormatTokensJSON(cmd.OutOrStdout(), result.Tokens)
	default:
		return fmt.Errorf("unknown token format: %s", format)
	}
	if err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return errFindings
	}
	return nil
}
