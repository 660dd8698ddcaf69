package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/yaklabco/mdlive/pkg/config"
)

// envVarPrefix is the prefix for all mdlive environment variables.
const envVarPrefix = "MDLIVE_"

type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
)

type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"LOG_LEVEL":           {field: "log_level", typ: envTypeString, description: "Log level: debug, info, warn, or error"},
	"FLAVOR":              {field: "flavor", typ: envTypeString, description: "Markdown flavor: commonmark or gfm"},
	"ID_PREFIX":           {field: "id_prefix", typ: envTypeString, description: "Prefix for generated block ids"},
	"ACTIVE_CLASS":        {field: "active_class", typ: envTypeString, description: "Class of the block holding the caret"},
	"MARKER_CLASS":        {field: "marker_class", typ: envTypeString, description: "Class of markdown marker spans"},
	"HIDDEN_MARKER_CLASS": {field: "hidden_marker_class", typ: envTypeString, description: "Class added to hidden markers"},
	"DEMOTE_HEADINGS":     {field: "demote_headings", typ: envTypeBool, description: "Demote headings whose marker is deleted: true or false"},
	"COLOR":               {field: "color", typ: envTypeString, description: "Colored output: auto, always, or never"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with MDLIVE_ (e.g., MDLIVE_FLAVOR).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "log_level":
		cfg.LogLevel = value
	case "flavor":
		cfg.Flavor = config.Flavor(value)
	case "id_prefix":
		cfg.IDPrefix = value
	case "active_class":
		cfg.ActiveClass = value
	case "marker_class":
		cfg.MarkerClass = value
	case "hidden_marker_class":
		cfg.HiddenMarkerClass = value
	case "color":
		cfg.Color = config.ColorMode(value)
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "demote_headings":
		cfg.DemoteHeadings = &value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// EnvVar describes one supported environment variable.
type EnvVar struct {
	Name        string
	Description string
}

// ListEnvVars returns all supported environment variables sorted by name.
func ListEnvVars() []EnvVar {
	vars := make([]EnvVar, 0, len(envMappings))
	for suffix, mapping := range envMappings {
		vars = append(vars, EnvVar{Name: envVarPrefix + suffix, Description: mapping.description})
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i].Name < vars[j].Name })
	return vars
}
