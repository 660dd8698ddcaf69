// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Outcome styles
	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style
	Failure lipgloss.Style

	// Document components
	BlockID lipgloss.Style
	Tag     lipgloss.Style
	Heading lipgloss.Style
	Text    lipgloss.Style
	Active  lipgloss.Style
	Marker  lipgloss.Style
	Caret   lipgloss.Style

	// Script components
	Path     lipgloss.Style
	Mismatch lipgloss.Style

	// Expectation diffs
	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	// Summary and table chrome
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	TableHeader  lipgloss.Style
	Separator    lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

// newColorStyles creates styles with ANSI 256 colors.
func newColorStyles() *Styles {
	return &Styles{
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Failure: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),

		BlockID: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Tag:     lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Heading: lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
		Text:    lipgloss.NewStyle(),
		Active:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Marker:  lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Caret:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),

		Path:     lipgloss.NewStyle().Bold(true),
		Mismatch: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Italic(true),

		DiffHeader:  lipgloss.NewStyle().Bold(true),
		DiffHunk:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		DiffAdd:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		DiffRemove:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		DiffContext: lipgloss.NewStyle(),

		SummaryTitle: lipgloss.NewStyle().Bold(true),
		SummaryValue: lipgloss.NewStyle(),
		TableHeader:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")),
		Separator:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		Dim:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

// newNoColorStyles creates styles with no color formatting.
func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Error:        plain,
		Warning:      plain,
		Success:      plain,
		Failure:      plain,
		BlockID:      plain,
		Tag:          plain,
		Heading:      plain,
		Text:         plain,
		Active:       plain,
		Marker:       plain,
		Caret:        plain,
		Path:         plain,
		Mismatch:     plain,
		DiffHeader:   plain,
		DiffHunk:     plain,
		DiffAdd:      plain,
		DiffRemove:   plain,
		DiffContext:  plain,
		SummaryTitle: plain,
		SummaryValue: plain,
		TableHeader:  plain,
		Separator:    plain,
		Dim:          plain,
		Bold:         plain,
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		// https://no-color.org/
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
