// Package config loads the linter configuration: which style rules are
// enabled, their parameters, the fix-pass ceiling, and where schemas and
// SQL templates live on disk.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Severity is the report level a rule emits at.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// RuleToggle is the common on/off switch shared by parameterless rules.
type RuleToggle struct {
	Enabled bool `koanf:"enabled"`
}

// IndentationRule configures the indentation check.
type IndentationRule struct {
	Enabled bool `koanf:"enabled"`
	Spaces  int  `koanf:"spaces" validate:"min=1,max=8"`
}

// LineLengthRule configures the line-length check. It is report-only:
// rewrapping a long line can change YAML semantics, so it is never fixed.
type LineLengthRule struct {
	Enabled  bool     `koanf:"enabled"`
	Max      int      `koanf:"max" validate:"min=20"`
	Severity Severity `koanf:"severity" validate:"oneof=error warning info"`
}

// RuleSet holds the per-rule settings for the style pass.
type RuleSet struct {
	DocumentStart  RuleToggle      `koanf:"document_start"`
	Indentation    IndentationRule `koanf:"indentation"`
	Colons         RuleToggle      `koanf:"colons"`
	TrailingSpaces RuleToggle      `koanf:"trailing_spaces"`
	NewLineAtEOF   RuleToggle      `koanf:"new_line_at_eof"`
	LineLength     LineLengthRule  `koanf:"line_length"`
}

// Configuration is the full linter configuration for one invocation.
// It is loaded once and passed explicitly; nothing reads it as ambient state.
type Configuration struct {
	MaxFixPasses int     `koanf:"max_fix_passes" validate:"min=1,max=100"`
	SchemaDir    string  `koanf:"schema_dir" validate:"required"`
	TemplateDir  string  `koanf:"template_dir" validate:"required"`
	Rules        RuleSet `koanf:"rules"`
}

// DefaultConfigPath is where Load looks when no --config flag is given.
const DefaultConfigPath = ".configlint.yml"

// Load builds a Configuration from defaults, an optional config file, and
// CONFIGLINT_* environment overrides, in that priority order (env highest).
// A missing default config file is not an error; the defaults apply.
func Load(path string) (*Configuration, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("loading config file %s: %w", path, err)
			}
		} else if path != DefaultConfigPath {
			// An explicitly named config file must exist.
			return nil, fmt.Errorf("config file not found: %s", path)
		}
	}

	if err := k.Load(env.Provider("CONFIGLINT_", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("loading environment overrides: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.SchemaDir = expandHomePath(cfg.SchemaDir)
	cfg.TemplateDir = expandHomePath(cfg.TemplateDir)

	return &cfg, nil
}

// envTransform converts environment variable names to config keys.
// Example: CONFIGLINT_MAX_FIX_PASSES -> max_fix_passes
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "CONFIGLINT_"))
}

// expandHomePath expands ~ to the user's home directory.
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
