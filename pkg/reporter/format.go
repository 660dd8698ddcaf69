package reporter

import (
	"fmt"
	"strings"
)

// Format represents an output format.
type Format string

// Output formats supported by the reporter.
const (
	// FormatText prints a status line per script and a summary block.
	FormatText Format = "text"

	// FormatBlocks adds the block table of each script's document.
	FormatBlocks Format = "blocks"

	// FormatMarkdown adds each script's markdown source.
	FormatMarkdown Format = "markdown"

	// FormatHTML adds each script's rendered markup.
	FormatHTML Format = "html"

	FormatJSON    Format = "json"
	FormatDiff    Format = "diff"
	FormatSummary Format = "summary"
)

// Formats lists every format in the order shown to users.
var Formats = []Format{
	FormatText, FormatBlocks, FormatMarkdown, FormatHTML, FormatJSON, FormatDiff, FormatSummary,
}

// ParseFormat parses a format string, returning an error for unknown formats.
func ParseFormat(formatStr string) (Format, error) {
	if formatStr == "" {
		return FormatText, nil
	}
	format := Format(formatStr)
	if !format.IsValid() {
		return "", fmt.Errorf("unknown format %q; valid formats: %s", formatStr, FormatNames())
	}
	return format, nil
}

// FormatNames returns the comma separated list of valid formats.
func FormatNames() string {
	names := make([]string, 0, len(Formats))
	for _, f := range Formats {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// IsValid returns true if the format is a known valid format.
func (f Format) IsValid() bool {
	switch f {
	case FormatText, FormatBlocks, FormatMarkdown, FormatHTML, FormatJSON, FormatDiff, FormatSummary:
		return true
	default:
		return false
	}
}
