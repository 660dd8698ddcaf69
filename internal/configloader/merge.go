package configloader

import "github.com/yaklabco/mdlive/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Pointers: override overwrites base if override is non-nil
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	if override.LogLevel != "" {
		result.LogLevel = override.LogLevel
	}
	if override.Flavor != "" {
		result.Flavor = override.Flavor
	}
	if override.IDPrefix != "" {
		result.IDPrefix = override.IDPrefix
	}
	if override.ActiveClass != "" {
		result.ActiveClass = override.ActiveClass
	}
	if override.MarkerClass != "" {
		result.MarkerClass = override.MarkerClass
	}
	if override.HiddenMarkerClass != "" {
		result.HiddenMarkerClass = override.HiddenMarkerClass
	}
	if override.Color != "" {
		result.Color = override.Color
	}

	// A pointer lets a file set demote_headings: false explicitly.
	if override.DemoteHeadings != nil {
		demote := *override.DemoteHeadings
		result.DemoteHeadings = &demote
	}

	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
