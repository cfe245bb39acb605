package config

import (
	"fmt"
	"strings"

	"github.com/harrison/zipfinder/internal/logger"
)

// Summary formats accepted by SummaryFormat
const (
	SummaryText = "text"
	SummaryYAML = "yaml"
)

// Config represents zipfinder options that sit around the scan request itself
type Config struct {
	// LogLevel sets the diagnostic verbosity on stderr (trace, debug, info, warn, error)
	LogLevel string

	// SummaryFormat selects how the closing totals are printed (text, yaml)
	SummaryFormat string

	// Color enables terminal colors when the output supports them
	Color bool

	// Exclude holds gitignore-style patterns for paths to skip
	Exclude []string
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		LogLevel:      "warn",
		SummaryFormat: SummaryText,
		Color:         true,
		Exclude:       nil,
	}
}

// MergeWithFlags merges CLI flags into the configuration.
// Non-nil flag values override configuration values.
func (c *Config) MergeWithFlags(logLevel *string, summaryFormat *string, noColor *bool, exclude []string) {
	if logLevel != nil {
		c.LogLevel = strings.ToLower(strings.TrimSpace(*logLevel))
	}
	if summaryFormat != nil {
		c.SummaryFormat = strings.ToLower(strings.TrimSpace(*summaryFormat))
	}
	if noColor != nil && *noColor {
		c.Color = false
	}
	if len(exclude) > 0 {
		c.Exclude = append(c.Exclude, exclude...)
	}
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if !logger.IsValidLevel(c.LogLevel) {
		return fmt.Errorf("invalid log_level %q, must be one of: %s", c.LogLevel, strings.Join(logger.ValidLevels, ", "))
	}

	switch c.SummaryFormat {
	case SummaryText, SummaryYAML:
	default:
		return fmt.Errorf("invalid summary_format %q, must be one of: text, yaml", c.SummaryFormat)
	}

	for _, pattern := range c.Exclude {
		if strings.TrimSpace(pattern) == "" {
			return fmt.Errorf("exclude patterns cannot be empty")
		}
	}

	return nil
}
