// Package config loads csvq settings from a YAML file and the environment.
//
// Precedence, lowest first: Default, the YAML file, CSVQ_* environment
// variables. Command-line flags are applied on top by the caller.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/vegasq/csvq/internal/logger"
	"github.com/vegasq/csvq/output"
)

// Environment variables read by ApplyEnv
const (
	EnvFormat       = "CSVQ_FORMAT"
	EnvLimit        = "CSVQ_LIMIT"
	EnvLogLevel     = "CSVQ_LOG_LEVEL"
	EnvLogFormat    = "CSVQ_LOG_FORMAT"
	EnvDelimiter    = "CSVQ_DELIMITER"
	EnvMaxCellWidth = "CSVQ_MAX_CELL_WIDTH"
)

// Config is the complete csvq configuration
type Config struct {
	Output OutputConfig `yaml:"output"`
	Log    LogConfig    `yaml:"log"`
	Reader ReaderConfig `yaml:"reader"`
}

// OutputConfig controls result rendering
type OutputConfig struct {
	Format       string `yaml:"format"`
	Limit        int    `yaml:"limit"`
	MaxCellWidth int    `yaml:"max_cell_width"`
}

// LogConfig controls diagnostics on stderr
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ReaderConfig controls source parsing
type ReaderConfig struct {
	// Delimiter is a single character; empty means detect from the
	// file extension
	Delimiter string `yaml:"delimiter"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Output: OutputConfig{
			Format:       "table",
			MaxCellWidth: 40,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: logger.FormatText,
		},
	}
}

// Load reads the YAML file at path over Default. An empty path returns
// Default unchanged. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := decode(content, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

func decode(content []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ApplyEnv overrides cfg with CSVQ_* variables taken from lookup,
// typically os.LookupEnv
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvFormat); ok && v != "" {
		c.Output.Format = v
	}
	if v, ok := lookup(EnvLimit); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvLimit, v, err)
		}
		c.Output.Limit = n
	}
	if v, ok := lookup(EnvMaxCellWidth); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvMaxCellWidth, v, err)
		}
		c.Output.MaxCellWidth = n
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := lookup(EnvLogFormat); ok && v != "" {
		c.Log.Format = v
	}
	if v, ok := lookup(EnvDelimiter); ok && v != "" {
		c.Reader.Delimiter = v
	}
	return nil
}

// Validate reports the first invalid setting
func (c *Config) Validate() error {
	if !validOutputFormat(c.Output.Format) {
		return fmt.Errorf("output.format: unsupported format %q (supported formats: %s)",
			c.Output.Format, strings.Join(output.Formats, ", "))
	}
	if c.Output.Limit < 0 {
		return fmt.Errorf("output.limit: must not be negative, got %d", c.Output.Limit)
	}
	if c.Output.MaxCellWidth < 0 {
		return fmt.Errorf("output.max_cell_width: must not be negative, got %d", c.Output.MaxCellWidth)
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if !logger.ValidFormat(c.Log.Format) {
		return fmt.Errorf("log.format: unsupported format %q (supported formats: text, json)", c.Log.Format)
	}
	if _, err := c.Reader.DelimiterRune(); err != nil {
		return fmt.Errorf("reader.delimiter: %w", err)
	}
	return nil
}

// DelimiterRune returns the configured delimiter, or 0 when unset.
// The escape "\t" is accepted for tab.
func (r ReaderConfig) DelimiterRune() (rune, error) {
	d := r.Delimiter
	if d == "" {
		return 0, nil
	}
	if d == `\t` {
		return '\t', nil
	}
	if utf8.RuneCountInString(d) != 1 {
		return 0, fmt.Errorf("must be a single character, got %q", d)
	}
	c, _ := utf8.DecodeRuneInString(d)
	if c == '"' || c == '\r' || c == '\n' || c == utf8.RuneError {
		return 0, fmt.Errorf("invalid delimiter %q", d)
	}
	return c, nil
}

func validOutputFormat(f string) bool {
	for _, name := range output.Formats {
		if strings.EqualFold(f, name) {
			return true
		}
	}
	return false
}
