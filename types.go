package md2doc

import (
	"fmt"
	"regexp"

	"github.com/rvoss/go-md2doc/document"
	"github.com/rvoss/go-md2doc/internal/pipeline"
)

// Indent width bounds, in spaces per list nesting level.
const (
	MinIndentWidth     = 1
	MaxIndentWidth     = 16
	DefaultIndentWidth = pipeline.DefaultIndentWidth
)

// Default visual settings for projected blocks.
const (
	DefaultBullet      = pipeline.DefaultBullet
	DefaultBorderColor = string(pipeline.DefaultBorderColor)
	DefaultHeaderShade = string(pipeline.DefaultHeaderShade)
)

// Input contains conversion parameters.
type Input struct {
	Markdown string // Markdown content (required)
}

// WarningKind classifies a non-fatal conversion diagnostic.
type WarningKind string

// Warning kinds.
const (
	// WarningStructural marks a malformed or empty block that was skipped
	// rather than rendered incorrectly.
	WarningStructural WarningKind = WarningKind(pipeline.WarnStructural)
	// WarningCapability marks an optional cosmetic host operation the
	// current host does not support.
	WarningCapability WarningKind = WarningKind(pipeline.WarnCapability)
)

// Warning is a non-fatal diagnostic recorded during conversion.
type Warning struct {
	Kind    WarningKind
	Message string
}

func (w Warning) String() string {
	return string(w.Kind) + ": " + w.Message
}

// Outcome reports the result of a conversion. Warnings are populated on
// success and on fatal failure alike, for diagnostics.
type Outcome struct {
	Warnings []Warning
}

// toPublicWarnings converts internal pipeline warnings to the public type.
func toPublicWarnings(ws []pipeline.Warning) []Warning {
	if len(ws) == 0 {
		return nil
	}
	out := make([]Warning, len(ws))
	for i, w := range ws {
		out[i] = Warning{Kind: WarningKind(w.Kind), Message: w.Message}
	}
	return out
}

// hexColor matches an RRGGBB color without the leading "#".
var hexColor = regexp.MustCompile(`^[0-9a-fA-F]{6}$`)

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	projector pipeline.ProjectorConfig

	// headerShadeSet distinguishes "never configured" (use the default
	// shade) from an explicit empty color (shading disabled).
	headerShadeSet bool
}

// WithBullet sets the glyph used for unordered list items.
func WithBullet(glyph string) Option {
	return func(c *Converter) {
		c.cfg.projector.Bullet = glyph
	}
}

// WithIndentWidth sets the number of spaces per list nesting level.
// The value is validated by NewConverter.
func WithIndentWidth(width int) Option {
	return func(c *Converter) {
		c.cfg.projector.IndentWidth = width
	}
}

// WithBorderColor sets the table border color as an RRGGBB hex string.
func WithBorderColor(color string) Option {
	return func(c *Converter) {
		c.cfg.projector.BorderColor = document.Color(color)
	}
}

// WithHeaderShading sets the table header row fill as an RRGGBB hex
// string. An empty string disables header shading.
func WithHeaderShading(color string) Option {
	return func(c *Converter) {
		c.cfg.projector.HeaderShade = document.Color(color)
		c.cfg.headerShadeSet = true
	}
}

// validate checks option-provided settings after they are applied.
func (cfg *converterConfig) validate() error {
	if w := cfg.projector.IndentWidth; w != 0 && (w < MinIndentWidth || w > MaxIndentWidth) {
		return fmt.Errorf("%w: %d (must be between %d and %d)", ErrInvalidIndentWidth, w, MinIndentWidth, MaxIndentWidth)
	}
	if c := string(cfg.projector.BorderColor); c != "" && !hexColor.MatchString(c) {
		return fmt.Errorf("%w: %q", ErrInvalidColor, c)
	}
	if c := string(cfg.projector.HeaderShade); c != "" && !hexColor.MatchString(c) {
		return fmt.Errorf("%w: %q", ErrInvalidColor, c)
	}
	return nil
}
