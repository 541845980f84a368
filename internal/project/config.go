package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// ConfigFileName is looked up from the input directory upwards.
const ConfigFileName = "playground.toml"

// Config mirrors playground.toml:
//
//	[render]
//	mode = "ansi"
//
//	[limits]
//	max_diagnostics = 50
//	max_steps = 100000
//
//	[pipeline]
//	ast_policy = "lenient"
//	passes = ["names", "unused"]
type Config struct {
	Render   RenderConfig   `toml:"render"`
	Limits   LimitsConfig   `toml:"limits"`
	Pipeline PipelineConfig `toml:"pipeline"`
}

type RenderConfig struct {
	Mode string `toml:"mode"`
}

type LimitsConfig struct {
	MaxDiagnostics int `toml:"max_diagnostics"`
	MaxSteps       int `toml:"max_steps"` // -1 - без ограничения
}

type PipelineConfig struct {
	ASTPolicy string   `toml:"ast_policy"`
	Passes    []string `toml:"passes"` // nil - набор по умолчанию
}

const (
	DefaultMaxDiagnostics = 100
	DefaultMaxSteps       = 1_000_000
)

// Default returns the configuration used when no playground.toml exists.
func Default() Config {
	return Config{
		Render:   RenderConfig{Mode: "plain"},
		Limits:   LimitsConfig{MaxDiagnostics: DefaultMaxDiagnostics, MaxSteps: DefaultMaxSteps},
		Pipeline: PipelineConfig{ASTPolicy: "strict"},
	}
}

// FindConfig walks up from startDir to locate playground.toml.
func FindConfig(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// LoadConfig decodes path over Default(). Unknown keys are rejected so that
// a typo does not silently fall back to a default.
func LoadConfig(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover finds and loads the config for startDir. Without a file it returns
// Default() and an empty path.
func Discover(startDir string) (Config, string, error) {
	path, ok, err := FindConfig(startDir)
	if err != nil || !ok {
		return Default(), "", err
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return Config{}, path, err
	}
	return cfg, path, nil
}

// Validate checks value ranges that TOML typing cannot express. Render mode
// and pass names are checked by their consumers.
func (c Config) Validate() error {
	if c.Limits.MaxDiagnostics < 0 {
		return fmt.Errorf("[limits].max_diagnostics must be >= 0, got %d", c.Limits.MaxDiagnostics)
	}
	if c.Limits.MaxSteps < -1 {
		return fmt.Errorf("[limits].max_steps must be >= -1, got %d", c.Limits.MaxSteps)
	}
	if !slices.Contains([]string{"strict", "lenient"}, strings.ToLower(c.Pipeline.ASTPolicy)) {
		return fmt.Errorf("[pipeline].ast_policy must be \"strict\" or \"lenient\", got %q", c.Pipeline.ASTPolicy)
	}
	return nil
}
