package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	EnvPrefix         = "CODEMERGE"
	DefaultOutputFile = "merged_output.txt"
	DefaultSample     = 5
)

// DefaultExcludeDirs are directory names skipped anywhere in a path.
var DefaultExcludeDirs = []string{
	"venv", ".venv", "__pycache__", ".pytest_cache", ".tox",
	".git", ".mypy_cache", ".ipynb_checkpoints", "node_modules", "build", "dist",
}

// DefaultIncludeExts are the file extensions merged when none are configured.
var DefaultIncludeExts = []string{
	".py", ".swift", ".js", ".jsx", ".ts", ".tsx", ".sql", ".json", ".css", ".html", ".yml",
}

type Config struct {
	LogLevel        string   `mapstructure:"log_level" yaml:"log_level"`
	Output          string   `mapstructure:"output" yaml:"output"`
	Root            string   `mapstructure:"root" yaml:"root"`
	OutputFile      string   `mapstructure:"output_file" yaml:"output_file"`
	ExcludeDirs     []string `mapstructure:"exclude_dirs" yaml:"exclude_dirs"`
	IncludeExts     []string `mapstructure:"include_exts" yaml:"include_exts"`
	ExcludePatterns []string `mapstructure:"exclude_patterns" yaml:"exclude_patterns"`
	DecodeErrors    string   `mapstructure:"decode_errors" yaml:"decode_errors"`
	RejectedSample  int      `mapstructure:"rejected_sample" yaml:"rejected_sample"`
	Report          string   `mapstructure:"report" yaml:"report,omitempty"`
}

// Default returns the configuration used when no file, env var or flag
// overrides anything.
func Default() Config {
	return Config{
		LogLevel:        "info",
		Output:          "text",
		Root:            ".",
		OutputFile:      DefaultOutputFile,
		ExcludeDirs:     append([]string(nil), DefaultExcludeDirs...),
		IncludeExts:     append([]string(nil), DefaultIncludeExts...),
		ExcludePatterns: []string{},
		DecodeErrors:    "replace",
		RejectedSample:  DefaultSample,
	}
}

// Load reads configuration from defaults, an optional codemerge.yaml and
// CODEMERGE_* environment variables. When configFile is non-empty it is read
// instead of searching the default locations, and must exist.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("codemerge")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.codemerge")
	}

	def := Default()
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("output", def.Output)
	v.SetDefault("root", def.Root)
	v.SetDefault("output_file", def.OutputFile)
	v.SetDefault("exclude_dirs", def.ExcludeDirs)
	v.SetDefault("include_exts", def.IncludeExts)
	v.SetDefault("exclude_patterns", def.ExcludePatterns)
	v.SetDefault("decode_errors", def.DecodeErrors)
	v.SetDefault("rejected_sample", def.RejectedSample)
	v.SetDefault("report", "")

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate normalizes list values in place and rejects unknown enum values.
func (c *Config) Validate() error {
	c.ExcludeDirs = cleanList(c.ExcludeDirs)
	c.ExcludePatterns = cleanList(c.ExcludePatterns)
	c.IncludeExts = NormalizeExts(c.IncludeExts)

	switch strings.ToLower(c.Output) {
	case "text", "json":
		c.Output = strings.ToLower(c.Output)
	default:
		return fmt.Errorf("invalid output format %q (want text or json)", c.Output)
	}

	switch strings.ToLower(c.DecodeErrors) {
	case "replace", "ignore":
		c.DecodeErrors = strings.ToLower(c.DecodeErrors)
	default:
		return fmt.Errorf("invalid decode_errors %q (want replace or ignore)", c.DecodeErrors)
	}

	if c.Root == "" {
		return fmt.Errorf("root must not be empty")
	}
	if c.OutputFile == "" {
		return fmt.Errorf("output_file must not be empty")
	}
	if c.RejectedSample < 0 {
		return fmt.Errorf("rejected_sample must be >= 0, got %d", c.RejectedSample)
	}
	return nil
}

// NormalizeExts lowercases extensions and adds a missing leading dot.
// Blank and duplicate entries are dropped.
func NormalizeExts(exts []string) []string {
	seen := make(map[string]bool, len(exts))
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" || e == "." {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		if seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return out
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
