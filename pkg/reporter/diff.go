package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/mdlive/internal/ui/pretty"
	"github.com/yaklabco/mdlive/pkg/replay"
	"github.com/yaklabco/mdlive/pkg/runner"
	"github.com/yaklabco/mdlive/pkg/textdiff"
)

// DiffReporter prints, for every failed script, unified diffs between the
// expected and the actual markdown and HTML. Expectations that cannot be
// diffed are listed below the script header.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return nil
	}

	var scriptsWithDiffs, additions, deletions int

	for _, outcome := range result.Scripts {
		path := displayPath(outcome.Path, r.opts.WorkingDir)

		if outcome.Error != nil || outcome.Result == nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.Path.Render(path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", outcome.Error)),
			)
			continue
		}

		played := outcome.Result
		if played.Passed() {
			continue
		}

		scriptsWithDiffs++
		fmt.Fprintln(r.bw, r.styles.DiffHeader.Render("replay "+path))
		for _, diff := range expectationDiffs(played) {
			additions += diff.Additions
			deletions += diff.Deletions
			r.writeDiff(diff)
		}
		for _, mismatch := range played.Mismatches {
			if !diffable(mismatch) {
				fmt.Fprintln(r.bw, r.styles.Mismatch.Render(mismatch))
			}
		}
		fmt.Fprintln(r.bw)
	}

	if scriptsWithDiffs > 0 && r.opts.ShowSummary {
		r.writeSummary(scriptsWithDiffs, additions, deletions)
	}

	return nil
}

// expectationDiffs diffs the expected markdown and HTML of played against
// what the editor produced.
func expectationDiffs(played *replay.Result) []*textdiff.Diff {
	if played.Expect == nil {
		return nil
	}

	var diffs []*textdiff.Diff
	if want := played.Expect.Markdown; want != nil {
		if diff := textdiff.Compute("expected markdown", "actual markdown", *want, played.Markdown); diff.HasChanges() {
			diffs = append(diffs, diff)
		}
	}
	if want := played.Expect.HTML; want != nil {
		if diff := textdiff.Compute("expected html", "actual html", *want, played.HTML); diff.HasChanges() {
			diffs = append(diffs, diff)
		}
	}
	return diffs
}

// diffable reports whether a mismatch is shown as a diff.
func diffable(mismatch string) bool {
	return strings.HasPrefix(mismatch, "markdown:") || strings.HasPrefix(mismatch, "html:")
}

func (r *DiffReporter) writeDiff(diff *textdiff.Diff) {
	minus, plus := diff.Header()
	fmt.Fprintln(r.bw, r.styles.DiffRemove.Render(minus))
	fmt.Fprintln(r.bw, r.styles.DiffAdd.Render(plus))

	for _, hunk := range diff.Hunks {
		fmt.Fprintln(r.bw, r.styles.DiffHunk.Render(hunk.Range()))
		for _, line := range hunk.Lines {
			fmt.Fprintln(r.bw, r.lineStyle(line.Kind).Render(line.String()))
		}
	}
}

func (r *DiffReporter) lineStyle(kind textdiff.LineKind) lipgloss.Style {
	switch kind {
	case textdiff.Add:
		return r.styles.DiffAdd
	case textdiff.Remove:
		return r.styles.DiffRemove
	default:
		return r.styles.DiffContext
	}
}

// writeSummary writes a summary line at the end.
func (r *DiffReporter) writeSummary(scripts, additions, deletions int) {
	verb := "differ"
	if scripts == 1 {
		verb = "differs"
	}
	parts := []string{pluralize(scripts, "script") + " " + verb}

	if additions > 0 {
		parts = append(parts, r.styles.DiffAdd.Render(pluralize(additions, "insertion")+"(+)"))
	}
	if deletions > 0 {
		parts = append(parts, r.styles.DiffRemove.Render(pluralize(deletions, "deletion")+"(-)"))
	}

	fmt.Fprintln(r.bw, strings.Join(parts, ", "))
}

func pluralize(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
