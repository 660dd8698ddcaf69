package reporter

import (
	"context"
	"io"

	"github.com/yaklabco/mdlive/internal/ui/pretty"
	"github.com/yaklabco/mdlive/pkg/runner"
)

// SummaryReporter prints the run statistics on one line.
type SummaryReporter struct {
	opts   Options
	styles *pretty.Styles
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	return &SummaryReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) error {
	stats := runner.Stats{}
	if result != nil {
		stats = result.Stats
	}
	_, err := io.WriteString(r.opts.Writer, r.styles.FormatSummaryOneLine(stats))
	return err
}
