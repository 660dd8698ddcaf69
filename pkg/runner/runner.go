package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/yaklabco/mdlive/pkg/replay"
)

// Runner plays discovered scripts with a replay.Player. Every script gets
// its own editor, so scripts run in parallel without sharing state.
type Runner struct {
	Player *replay.Player
}

// New creates a new Runner with the given player.
func New(player *replay.Player) *Runner {
	return &Runner{Player: player}
}

// Run discovers scripts under opts.Paths and plays them concurrently.
// Outcomes are returned in discovery order regardless of completion order.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	paths, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}
	return r.RunPaths(ctx, paths, opts.Jobs)
}

// RunPaths plays the scripts at paths with up to jobs workers.
func (r *Runner) RunPaths(ctx context.Context, paths []string, jobs int) (*Result, error) {
	result := &Result{
		Scripts: make([]ScriptOutcome, 0, len(paths)),
		Stats:   newStats(),
	}
	result.Stats.ScriptsDiscovered = len(paths)

	if len(paths) == 0 {
		return result, nil
	}

	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(paths))

	workCh := make(chan string)
	outCh := make(chan ScriptOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range paths {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]ScriptOutcome, len(paths))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range paths {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}
	return result, nil
}

func (r *Runner) worker(ctx context.Context, workCh <-chan string, outCh chan<- ScriptOutcome) {
	for path := range workCh {
		if ctx.Err() != nil {
			return
		}

		outcome := ScriptOutcome{Path: path}
		script, err := replay.Load(ctx, path)
		if err == nil {
			outcome.Result, err = r.Player.Play(ctx, script)
		}
		outcome.Error = err

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}
