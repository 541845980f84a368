package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"playground/internal/driver"
	"playground/internal/project"
	"playground/internal/trace"
)

// outputFormat selects how a response reaches stdout.
type outputFormat string

const (
	formatText    outputFormat = "text"
	formatJSON    outputFormat = "json"
	formatMsgpack outputFormat = "msgpack"
)

func readOutputFormat(value string) (outputFormat, error) {
	switch f := outputFormat(strings.ToLower(strings.TrimSpace(value))); f {
	case "", formatText:
		return formatText, nil
	case formatJSON, formatMsgpack:
		return f, nil
	}
	return "", fmt.Errorf("invalid --format value %q (expected text|json|msgpack)", value)
}

// settings - всё, что команда узнала из флагов и playground.toml.
type settings struct {
	opts       driver.Options
	format     outputFormat
	timings    bool
	configPath string
}

// loadSettings merges playground.toml (explicit --config, or found by walking
// up from startDir) with the persistent flags. Flags win when set.
func loadSettings(cmd *cobra.Command, startDir string) (*settings, error) {
	flags := cmd.Root().PersistentFlags()

	cfg, path, err := readConfig(cmd, startDir)
	if err != nil {
		return nil, err
	}
	if flags.Changed("mode") {
		if cfg.Render.Mode, err = flags.GetString("mode"); err != nil {
			return nil, fmt.Errorf("failed to get mode flag: %w", err)
		}
	}
	if strings.EqualFold(strings.TrimSpace(cfg.Render.Mode), "auto") {
		cfg.Render.Mode = "plain"
		if isTerminal(os.Stderr) {
			cfg.Render.Mode = "ansi"
		}
	}
	if flags.Changed("max-diagnostics") {
		if cfg.Limits.MaxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
			return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
	}
	if flags.Changed("max-steps") {
		if cfg.Limits.MaxSteps, err = flags.GetInt("max-steps"); err != nil {
			return nil, fmt.Errorf("failed to get max-steps flag: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts, err := driver.OptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	opts.Tracer = trace.FromContext(cmd.Context())

	s := &settings{opts: opts, configPath: path}
	if s.timings, err = flags.GetBool("timings"); err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	s.opts.Timings = s.timings

	formatStr, err := flags.GetString("format")
	if err != nil {
		return nil, fmt.Errorf("failed to get format flag: %w", err)
	}
	if s.format, err = readOutputFormat(formatStr); err != nil {
		return nil, err
	}

	useCache, err := flags.GetBool("cache")
	if err != nil {
		return nil, fmt.Errorf("failed to get cache flag: %w", err)
	}
	if useCache {
		cache, err := driver.OpenResponseCache(cacheApp)
		if err != nil {
			return nil, fmt.Errorf("failed to open response cache: %w", err)
		}
		s.opts.Cache = cache
	}
	return s, nil
}

func readConfig(cmd *cobra.Command, startDir string) (project.Config, string, error) {
	explicit, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return project.Config{}, "", fmt.Errorf("failed to get config flag: %w", err)
	}
	if explicit != "" {
		cfg, err := project.LoadConfig(explicit)
		return cfg, explicit, err
	}
	return project.Discover(startDir)
}

// inputDir is where config discovery starts for an input argument.
func inputDir(arg string) string {
	if arg == "" || arg == "-" {
		return "."
	}
	if info, err := os.Stat(arg); err == nil && info.IsDir() {
		return arg
	}
	return filepath.Dir(arg)
}
