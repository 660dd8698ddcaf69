package runner

import (
	"github.com/yaklabco/mdlive/pkg/event"
	"github.com/yaklabco/mdlive/pkg/replay"
)

// ScriptOutcome is the result of one script.
type ScriptOutcome struct {
	Path string

	// Result is nil when the script could not be loaded or played.
	Result *replay.Result

	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	ScriptsDiscovered int

	// ScriptsPlayed counts scripts that ran to the end.
	ScriptsPlayed int

	// ScriptsFailed counts played scripts with unmet expectations.
	ScriptsFailed int

	// ScriptsErrored counts scripts that could not be loaded or played.
	ScriptsErrored int

	StepsPlayed int
	BlocksTotal int

	// Events counts dispatched editor events by name over all scripts.
	Events map[event.Name]int
}

// Result is the overall runner result.
type Result struct {
	// Scripts are ordered like the discovered paths.
	Scripts []ScriptOutcome

	Stats Stats
}

// HasFailures reports whether any script errored or missed an expectation.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.ScriptsFailed > 0 || r.Stats.ScriptsErrored > 0
}

func newStats() Stats {
	return Stats{Events: make(map[event.Name]int)}
}

func (r *Result) accumulate(outcome ScriptOutcome) {
	r.Scripts = append(r.Scripts, outcome)

	if outcome.Error != nil || outcome.Result == nil {
		r.Stats.ScriptsErrored++
		return
	}

	played := outcome.Result
	r.Stats.ScriptsPlayed++
	if !played.Passed() {
		r.Stats.ScriptsFailed++
	}
	r.Stats.StepsPlayed += played.Steps
	r.Stats.BlocksTotal += len(played.Blocks)
	for name, n := range played.Events {
		r.Stats.Events[name] += n
	}
}
