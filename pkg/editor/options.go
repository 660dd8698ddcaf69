package editor

import (
	"github.com/charmbracelet/log"

	"github.com/yaklabco/mdlive/internal/logging"
	"github.com/yaklabco/mdlive/pkg/config"
)

// Option configures an Editor.
type Option func(*options)

type options struct {
	logger *log.Logger
	cfg    *config.Config
}

func defaultOptions() options {
	return options{
		logger: logging.Default(),
		cfg:    config.NewConfig(),
	}
}

// WithLogger sets the logger handler errors and debug traces go to.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithConfig sets the editor configuration. Empty fields fall back to the
// defaults.
func WithConfig(cfg *config.Config) Option {
	return func(o *options) {
		if cfg != nil {
			o.cfg = withDefaults(cfg)
		}
	}
}

// withDefaults returns a copy of cfg with empty fields set to defaults.
func withDefaults(cfg *config.Config) *config.Config {
	out := cfg.Clone()
	def := config.NewConfig()
	if out.Flavor == "" {
		out.Flavor = def.Flavor
	}
	if out.IDPrefix == "" {
		out.IDPrefix = def.IDPrefix
	}
	if out.ActiveClass == "" {
		out.ActiveClass = def.ActiveClass
	}
	if out.MarkerClass == "" {
		out.MarkerClass = def.MarkerClass
	}
	if out.HiddenMarkerClass == "" {
		out.HiddenMarkerClass = def.HiddenMarkerClass
	}
	return out
}
