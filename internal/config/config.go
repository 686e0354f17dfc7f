// Package config loads and validates the md2doc YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/rvoss/go-md2doc/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
	ErrInvalidField   = errors.New("invalid config field")
)

// Field limits.
const (
	MaxBulletLength = 8  // a short glyph, possibly multi-byte
	MaxIndentWidth  = 16 // spaces per nesting level
	MaxWorkers      = 64
)

// Config holds all configuration for document generation.
type Config struct {
	Output  OutputConfig  `yaml:"output"`
	Convert ConvertConfig `yaml:"convert"`
	Style   StyleConfig   `yaml:"style"`
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
}

// ConvertConfig defines batch conversion options.
type ConvertConfig struct {
	Workers int `yaml:"workers"` // Parallel workers (0 = auto)
}

// StyleConfig defines visual projection options.
type StyleConfig struct {
	Bullet          string `yaml:"bullet"`          // Unordered list glyph (empty = default)
	IndentWidth     int    `yaml:"indentWidth"`     // Spaces per list nesting level (0 = default)
	BorderColor     string `yaml:"borderColor"`     // Table border RRGGBB (empty = default)
	HeaderShading   string `yaml:"headerShading"`   // Header row fill RRGGBB (empty = default)
	NoHeaderShading bool   `yaml:"noHeaderShading"` // Disable header row shading entirely
}

// DefaultConfig returns a config with all defaults (zero values select
// library defaults downstream).
func DefaultConfig() *Config {
	return &Config{}
}

// Load reads and validates a config file. A missing file at an explicit
// path is an error; callers decide whether a config file is optional.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var hexColor = regexp.MustCompile(`^[0-9a-fA-F]{6}$`)

// Validate checks field values and lengths.
func (c *Config) Validate() error {
	if len(c.Style.Bullet) > MaxBulletLength {
		return fmt.Errorf("%w: bullet %q too long", ErrInvalidField, c.Style.Bullet)
	}
	if c.Style.IndentWidth < 0 || c.Style.IndentWidth > MaxIndentWidth {
		return fmt.Errorf("%w: indentWidth %d (must be 0..%d)", ErrInvalidField, c.Style.IndentWidth, MaxIndentWidth)
	}
	if c.Convert.Workers < 0 || c.Convert.Workers > MaxWorkers {
		return fmt.Errorf("%w: workers %d (must be 0..%d)", ErrInvalidField, c.Convert.Workers, MaxWorkers)
	}
	for name, val := range map[string]string{
		"borderColor":   c.Style.BorderColor,
		"headerShading": c.Style.HeaderShading,
	} {
		if val != "" && !hexColor.MatchString(val) {
			return fmt.Errorf("%w: %s %q is not an RRGGBB color", ErrInvalidField, name, val)
		}
	}
	return nil
}
