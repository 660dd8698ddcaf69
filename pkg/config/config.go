// Package config defines core configuration types for mdlive.
// These types are pure data structures; discovery and merging live in the
// CLI's config loader.
package config

// Flavor specifies the Markdown flavor used to detect inline spans.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// ColorMode controls colored CLI output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Default values.
const (
	DefaultLogLevel          = "info"
	DefaultIDPrefix          = "mdl"
	DefaultActiveClass       = "active"
	DefaultMarkerClass       = "md-marker"
	DefaultHiddenMarkerClass = "md-hide"
)

// Config is the root configuration structure for mdlive.
type Config struct {
	// LogLevel is the logging level ("debug", "info", "warn", "error").
	LogLevel string `yaml:"log_level"`

	// Flavor specifies the Markdown flavor ("commonmark" or "gfm").
	Flavor Flavor `yaml:"flavor"`

	// IDPrefix prefixes every allocated block id.
	IDPrefix string `yaml:"id_prefix"`

	// ActiveClass is the class carried by the block holding the caret.
	ActiveClass string `yaml:"active_class"`

	// MarkerClass is the class of spans wrapping markdown markers.
	MarkerClass string `yaml:"marker_class"`

	// HiddenMarkerClass is added to markers of runs away from the caret.
	HiddenMarkerClass string `yaml:"hidden_marker_class"`

	// DemoteHeadings turns a heading back into a paragraph once its marker
	// is deleted. Nil means enabled.
	DemoteHeadings *bool `yaml:"demote_headings,omitempty"`

	// CLI-level options (not persisted to config files).

	// Color controls colored output.
	Color ColorMode `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	demote := true
	return &Config{
		LogLevel:          DefaultLogLevel,
		Flavor:            FlavorCommonMark,
		IDPrefix:          DefaultIDPrefix,
		ActiveClass:       DefaultActiveClass,
		MarkerClass:       DefaultMarkerClass,
		HiddenMarkerClass: DefaultHiddenMarkerClass,
		DemoteHeadings:    &demote,
		Color:             ColorAuto,
	}
}

// ShouldDemoteHeadings reports whether headings that lose their marker are
// demoted.
func (c *Config) ShouldDemoteHeadings() bool {
	return c.DemoteHeadings == nil || *c.DemoteHeadings
}
