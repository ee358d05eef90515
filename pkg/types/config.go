// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// OutputFormat selects the export encoding.
type OutputFormat string

const (
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

// DefaultIndent is the JSON indent width used when none is configured.
const DefaultIndent = 4

// ExportConfig holds settings for the serializer.
type ExportConfig struct {
	// Format selects the output encoding: json or yaml.
	Format OutputFormat `json:"format" yaml:"format"`

	// Indent is the number of spaces per nesting level in JSON output (default 4).
	Indent int `json:"indent" yaml:"indent"`
}

// ParseConfig holds settings for the parser.
type ParseConfig struct {
	// Strict rejects duplicate sections and duplicate keys instead of
	// letting the last definition win.
	Strict bool `json:"strict" yaml:"strict"`
}

// AppConfig groups all settings read from the config file, environment, and flags.
type AppConfig struct {
	Export ExportConfig `json:"export" yaml:"export"`
	Parse  ParseConfig  `json:"parse" yaml:"parse"`

	// LogLevel is the zap level name, or "none" to disable logging.
	LogLevel string `json:"log_level" yaml:"log_level"`
}
