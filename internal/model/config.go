package model

import (
	"strings"
	"time"
)

// DefaultInputPath is read when no file argument is given
const DefaultInputPath = "all_test_files_combined.txt"

// DefaultDelimiter separates generated files in the combined input
var DefaultDelimiter = strings.Repeat("=", 80)

// ReservedName is excluded from signature classification
const ReservedName = "id"

// AmountDivisor selects the denominator of the numeric distance average
type AmountDivisor string

const (
	// DivisorAllPairs divides by every unique-value pair, parsed or not.
	// Reports produced before the corrected form existed use this.
	DivisorAllPairs AmountDivisor = "all"
	// DivisorNumericPairs divides by the pairs that were actually summed.
	DivisorNumericPairs AmountDivisor = "numeric"
)

// Config is the complete gendiv configuration
type Config struct {
	Input      InputConfig      `yaml:"input" mapstructure:"input"`
	Analysis   AnalysisConfig   `yaml:"analysis" mapstructure:"analysis"`
	Diversity  DiversityConfig  `yaml:"diversity" mapstructure:"diversity"`
	Signatures SignaturesConfig `yaml:"signatures" mapstructure:"signatures"`
	Output     OutputConfig     `yaml:"output" mapstructure:"output"`
	Cache      CacheConfig      `yaml:"cache" mapstructure:"cache"`
}

// InputConfig locates and splits the combined input file
type InputConfig struct {
	Path      string `yaml:"path" mapstructure:"path"`
	Delimiter string `yaml:"delimiter" mapstructure:"delimiter"`
}

// AnalysisConfig controls extraction and chunk processing
type AnalysisConfig struct {
	Extractor string `yaml:"extractor" mapstructure:"extractor"` // regex or syntax
	Workers   int    `yaml:"workers" mapstructure:"workers"`     // <= 1 processes chunks inline
}

// DiversityConfig controls the diversity engine
type DiversityConfig struct {
	AmountDivisor AmountDivisor `yaml:"amount_divisor" mapstructure:"amount_divisor"`
}

// SignaturesConfig controls the signature classifier
type SignaturesConfig struct {
	ReservedName string   `yaml:"reserved_name" mapstructure:"reserved_name"`
	CommonValues []string `yaml:"common_values" mapstructure:"common_values"`
	RepeatCount  int      `yaml:"repeat_count" mapstructure:"repeat_count"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Format string `yaml:"format" mapstructure:"format"` // text, json, markdown, html
	Path   string `yaml:"path" mapstructure:"path"`     // empty writes to stdout
}

// CacheConfig controls reuse of analyses for chunks with identical text
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			Path:      DefaultInputPath,
			Delimiter: DefaultDelimiter,
		},
		Analysis: AnalysisConfig{
			Extractor: "regex",
			Workers:   1,
		},
		Diversity: DiversityConfig{
			AmountDivisor: DivisorAllPairs,
		},
		Signatures: SignaturesConfig{
			ReservedName: ReservedName,
			CommonValues: []string{"19.95", "99.99", "49.50", "99.00"},
			RepeatCount:  10,
		},
		Output: OutputConfig{
			Format: "text",
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     10 * time.Minute,
		},
	}
}

// Validate checks enumerated fields and bounds
func (c *Config) Validate() error {
	if c.Input.Delimiter == "" {
		return &ConfigError{Field: "input.delimiter", Message: "must not be empty"}
	}
	switch c.Analysis.Extractor {
	case "regex", "syntax":
	default:
		return &ConfigError{Field: "analysis.extractor", Message: "must be regex or syntax, got " + c.Analysis.Extractor}
	}
	switch c.Diversity.AmountDivisor {
	case DivisorAllPairs, DivisorNumericPairs:
	default:
		return &ConfigError{Field: "diversity.amount_divisor", Message: "must be all or numeric, got " + string(c.Diversity.AmountDivisor)}
	}
	if c.Signatures.RepeatCount <= 0 {
		return &ConfigError{Field: "signatures.repeat_count", Message: "must be positive"}
	}
	switch c.Output.Format {
	case "text", "json", "markdown", "html":
	default:
		return &ConfigError{Field: "output.format", Message: "must be text, json, markdown or html, got " + c.Output.Format}
	}
	return nil
}

// ConfigError reports an invalid configuration field
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
