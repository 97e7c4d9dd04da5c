// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	Project  ProjectConfig  `toml:"project"`
	Log      LogConfig      `toml:"log"`
	Manifest ManifestConfig `toml:"manifest"`
	Legacy   LegacyConfig   `toml:"legacy"`
	Codegen  CodegenConfig  `toml:"codegen"`
	History  HistoryConfig  `toml:"history"`
}

// ProjectConfig locates the Unity project that owns the package descriptors.
type ProjectConfig struct {
	Root string `toml:"root"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type ManifestConfig struct {
	// EscapeStrings applies JSON string escaping to manifest values.
	// Off by default: values are written verbatim.
	EscapeStrings bool `toml:"escape_strings"`
}

type LegacyConfig struct {
	Format string `toml:"format"`
}

type CodegenConfig struct {
	Template string `toml:"template"`
	Filename string `toml:"filename"`
}

type HistoryConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Defaults.
const (
	DefaultLogLevel        = "info"
	DefaultLegacyFormat    = "unitypackage"
	DefaultCodegenFilename = "VersionConstants.cs"
	DefaultHistoryPath     = ".unipack/history.db"
)

// Default returns the configuration used when no config file is found.
func Default() *Config {
	cfg := &Config{History: HistoryConfig{Enabled: true}}
	cfg.applyDefaults()
	return cfg
}

// Load reads, parses, and validates the configuration file.
func Load(path string) (*Config, error) {
	cfg, missing, err := load(path)
	if err != nil {
		return nil, err
	}

	cfgErr := &ConfigError{Path: path, Missing: missing, Errors: cfg.Validate()}
	if cfgErr.HasErrors() {
		return nil, cfgErr
	}
	return cfg, nil
}

// LoadWithoutValidation reads and parses the configuration file, skipping validation
// and unresolved environment variables.
func LoadWithoutValidation(path string) (*Config, error) {
	cfg, _, err := load(path)
	return cfg, err
}

func load(path string) (*Config, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))

	cfg := Config{History: HistoryConfig{Enabled: true}}
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()

	// A relative project root is relative to the config file, not the cwd.
	if cfg.Project.Root != "" && !filepath.IsAbs(cfg.Project.Root) {
		cfg.Project.Root = filepath.Join(filepath.Dir(path), cfg.Project.Root)
	}

	return &cfg, missing, nil
}

func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Legacy.Format == "" {
		c.Legacy.Format = DefaultLegacyFormat
	}
	if c.Codegen.Filename == "" {
		c.Codegen.Filename = DefaultCodegenFilename
	}
	if c.History.Path == "" {
		c.History.Path = DefaultHistoryPath
	}
}

// HistoryPath resolves the history database path against the project root.
func (c *Config) HistoryPath(projectRoot string) string {
	if c.History.Path == ":memory:" || filepath.IsAbs(c.History.Path) {
		return c.History.Path
	}
	return filepath.Join(projectRoot, c.History.Path)
}

// envVarPattern matches ${VAR}, ${VAR:-default} and ${VAR:?message}.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?:(:-|:\?)([^}]*))?\}`)

// substituteEnvVars replaces environment variable references and reports
// the ones that could not be resolved.
func substituteEnvVars(content string) (string, []string) {
	var missing []string

	result := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		parts := envVarPattern.FindStringSubmatch(match)
		name, op, arg := parts[1], parts[2], parts[3]

		value, ok := os.LookupEnv(name)
		switch op {
		case ":-":
			if !ok || value == "" {
				return arg
			}
			return value
		case ":?":
			if !ok || value == "" {
				missing = append(missing, name+": "+arg)
				return match
			}
			return value
		default:
			if !ok {
				missing = append(missing, name)
				return match
			}
			return value
		}
	})

	return result, missing
}
