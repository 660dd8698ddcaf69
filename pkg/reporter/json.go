package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/mdlive/pkg/runner"
)

// Script status values.
const (
	statusPass  = "pass"
	statusFail  = "fail"
	statusError = "error"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string       `json:"version"`
	Scripts []JSONScript `json:"scripts"`
	Summary JSONSummary  `json:"summary"`
}

// JSONScript represents a single script's outcome.
type JSONScript struct {
	Path       string      `json:"path"`
	Name       string      `json:"name,omitempty"`
	Status     string      `json:"status"`
	Steps      int         `json:"steps"`
	Markdown   string      `json:"markdown"`
	HTML       string      `json:"html"`
	Active     string      `json:"active,omitempty"`
	Blocks     []JSONBlock `json:"blocks"`
	Mismatches []string    `json:"mismatches,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// JSONBlock represents one block of a resulting document.
type JSONBlock struct {
	ID     string            `json:"id"`
	Tag    string            `json:"tag"`
	Text   string            `json:"text"`
	Attrs  map[string]string `json:"attrs,omitempty"`
	Active bool              `json:"active,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	ScriptsDiscovered int            `json:"scriptsDiscovered"`
	ScriptsPlayed     int            `json:"scriptsPlayed"`
	ScriptsFailed     int            `json:"scriptsFailed"`
	ScriptsErrored    int            `json:"scriptsErrored"`
	Steps             int            `json:"steps"`
	Blocks            int            `json:"blocks"`
	Events            map[string]int `json:"events"`
	Passed            bool           `json:"passed"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(r.buildOutput(result)); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: "1.0.0",
		Scripts: make([]JSONScript, 0),
		Summary: JSONSummary{Events: make(map[string]int), Passed: true},
	}

	if result == nil {
		return output
	}

	for _, outcome := range result.Scripts {
		output.Scripts = append(output.Scripts, r.buildScript(outcome))
	}

	stats := result.Stats
	output.Summary = JSONSummary{
		ScriptsDiscovered: stats.ScriptsDiscovered,
		ScriptsPlayed:     stats.ScriptsPlayed,
		ScriptsFailed:     stats.ScriptsFailed,
		ScriptsErrored:    stats.ScriptsErrored,
		Steps:             stats.StepsPlayed,
		Blocks:            stats.BlocksTotal,
		Events:            make(map[string]int, len(stats.Events)),
		Passed:            !result.HasFailures(),
	}
	for name, n := range stats.Events {
		output.Summary.Events[string(name)] = n
	}

	return output
}

func (r *JSONReporter) buildScript(outcome runner.ScriptOutcome) JSONScript {
	script := JSONScript{
		Path:   displayPath(outcome.Path, r.opts.WorkingDir),
		Status: statusError,
		Blocks: make([]JSONBlock, 0),
	}

	if outcome.Error != nil {
		script.Error = outcome.Error.Error()
	}
	played := outcome.Result
	if played == nil {
		return script
	}

	script.Name = played.Name
	script.Steps = played.Steps
	script.Markdown = played.Markdown
	script.HTML = played.HTML
	script.Active = played.Active
	script.Mismatches = played.Mismatches
	script.Status = statusPass
	if !played.Passed() {
		script.Status = statusFail
	}

	for _, b := range played.Blocks {
		script.Blocks = append(script.Blocks, JSONBlock{
			ID:     b.ID,
			Tag:    b.Tag.String(),
			Text:   b.Text,
			Attrs:  b.Attrs,
			Active: b.Active,
		})
	}

	return script
}
