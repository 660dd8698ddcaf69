package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/mdlive/pkg/codec"
	"github.com/yaklabco/mdlive/pkg/runner"
)

// Status labels, padded to the same width.
const (
	labelPass  = "PASS "
	labelFail  = "FAIL "
	labelError = "ERROR"
)

// FormatOutcome formats the result of one replay script: a status line and,
// for failures, one line per unmet expectation or the error.
func (s *Styles) FormatOutcome(outcome runner.ScriptOutcome) string {
	var builder strings.Builder

	if outcome.Error != nil || outcome.Result == nil {
		builder.WriteString(fmt.Sprintf("  %s  %s\n", s.Error.Render(labelError), s.Path.Render(outcome.Path)))
		if outcome.Error != nil {
			builder.WriteString("    " + s.Dim.Render(outcome.Error.Error()) + "\n")
		}
		return builder.String()
	}

	result := outcome.Result
	label := s.Success.Render(labelPass)
	if !result.Passed() {
		label = s.Failure.Render(labelFail)
	}

	builder.WriteString(fmt.Sprintf("  %s  %s  %s\n",
		label,
		s.Path.Render(outcome.Path),
		s.Dim.Render(fmt.Sprintf("(%s, %s)", plural(result.Steps, "step"), plural(len(result.Blocks), "block"))),
	))
	for _, mismatch := range result.Mismatches {
		builder.WriteString("    " + s.Mismatch.Render(mismatch) + "\n")
	}

	return builder.String()
}

// FormatCaretContext prints text with a marker line under the selection:
// "^" for a caret, "^~~" for a range.
func (s *Styles) FormatCaretContext(text string, sel codec.State) string {
	const indent = "    "

	runes := []rune(text)
	sel = sel.Clamp(len(runes))

	var builder strings.Builder
	builder.WriteString(indent + s.Text.Render(text) + "\n")

	padding := lipgloss.Width(string(runes[:sel.Start]))
	span := lipgloss.Width(string(runes[sel.Start:sel.End]))
	marker := "^"
	if span > 1 {
		marker += strings.Repeat("~", span-1)
	}
	builder.WriteString(indent + strings.Repeat(" ", padding) + s.Caret.Render(marker) + "\n")

	return builder.String()
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
