package pretty

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/mdlive/pkg/event"
	"github.com/yaklabco/mdlive/pkg/runner"
)

const summaryDividerWidth = 40

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 scripts: 2 passed, 1 failed (9 steps, 7 blocks)".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	passed := stats.ScriptsPlayed - stats.ScriptsFailed
	detail := s.Dim.Render(fmt.Sprintf(" (%s, %s)",
		plural(stats.StepsPlayed, "step"), plural(stats.BlocksTotal, "block")))

	if stats.ScriptsDiscovered == 0 {
		return s.Dim.Render("No scripts found") + "\n"
	}

	if stats.ScriptsFailed == 0 && stats.ScriptsErrored == 0 {
		return s.Success.Render(fmt.Sprintf("All %s passed", plural(passed, "script"))) + detail + "\n"
	}

	parts := []string{s.Success.Render(fmt.Sprintf("%d passed", passed))}
	if stats.ScriptsFailed > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d failed", stats.ScriptsFailed)))
	}
	if stats.ScriptsErrored > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d errored", stats.ScriptsErrored)))
	}

	return plural(stats.ScriptsDiscovered, "script") + ": " + strings.Join(parts, ", ") + detail + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(s.Separator.Render(strings.Repeat("-", summaryDividerWidth)))
	builder.WriteString("\n")

	builder.WriteString("  Scripts played:    " +
		s.SummaryValue.Render(strconv.Itoa(stats.ScriptsPlayed)) + "\n")
	if stats.ScriptsFailed > 0 {
		builder.WriteString("  Scripts failed:    " +
			s.Failure.Render(strconv.Itoa(stats.ScriptsFailed)) + "\n")
	}
	if stats.ScriptsErrored > 0 {
		builder.WriteString("  Scripts errored:   " +
			s.Error.Render(strconv.Itoa(stats.ScriptsErrored)) + "\n")
	}
	builder.WriteString("  Steps:             " +
		s.SummaryValue.Render(strconv.Itoa(stats.StepsPlayed)) + "\n")
	builder.WriteString("  Blocks:            " +
		s.SummaryValue.Render(strconv.Itoa(stats.BlocksTotal)) + "\n")

	if len(stats.Events) > 0 {
		builder.WriteString("\n  Events:\n")
		names := make([]event.Name, 0, len(stats.Events))
		for name := range stats.Events {
			names = append(names, name)
		}
		slices.Sort(names)
		for _, name := range names {
			builder.WriteString(fmt.Sprintf("    %-18s %s\n",
				string(name)+":", s.SummaryValue.Render(strconv.Itoa(stats.Events[name]))))
		}
	}

	builder.WriteString("\n")
	switch {
	case stats.ScriptsErrored > 0 || stats.ScriptsFailed > 0:
		builder.WriteString(s.Failure.Render("Replay failed"))
	default:
		builder.WriteString(s.Success.Render("Replay passed"))
	}
	builder.WriteString("\n")

	return builder.String()
}
