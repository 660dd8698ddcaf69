package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/mdlive/internal/ui/pretty"
	"github.com/yaklabco/mdlive/pkg/replay"
	"github.com/yaklabco/mdlive/pkg/runner"
)

// TextReporter formats results as styled terminal output. Besides the
// status of each script it can print the script's resulting document as a
// block table, markdown or HTML.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	docs   *pretty.DocumentFormatter
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)
	return &TextReporter{
		opts:   opts,
		styles: styles,
		docs:   pretty.NewDocumentFormatter(styles, opts.TermWidth),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Scripts) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Dim.Render("No scripts found."))
		}
		return nil
	}

	for _, outcome := range result.Scripts {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(r.bw, r.styles.FormatOutcome(outcomeForDisplay(outcome, r.opts.WorkingDir)))
		if body := r.body(outcome.Result); body != "" {
			fmt.Fprint(r.bw, "\n"+body+"\n")
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats))
	}

	return nil
}

// body returns the document section printed under a script's status line.
func (r *TextReporter) body(played *replay.Result) string {
	if played == nil {
		return ""
	}

	switch r.opts.Format {
	case FormatBlocks:
		return r.docs.FormatDocument(played.Blocks)
	case FormatMarkdown:
		return played.Markdown + "\n"
	case FormatHTML:
		return played.HTML + "\n"
	default:
		return ""
	}
}
