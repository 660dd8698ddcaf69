package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/mdlive/internal/configloader"
	"github.com/yaklabco/mdlive/pkg/fsutil"
	"github.com/yaklabco/mdlive/pkg/replay"
	"github.com/yaklabco/mdlive/pkg/runner"
)

// Exit codes for mdlive.
const (
	// ExitSuccess indicates successful execution; every script passed.
	ExitSuccess = 0

	// ExitReplayFailed indicates a script missed an expectation or errored.
	ExitReplayFailed = 1

	// ExitInvalidUsage indicates invalid command-line usage or input.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ErrReplayFailed is returned when at least one replay script failed.
var ErrReplayFailed = errors.New("replay failed")

// ErrInvalidUsage marks errors caused by bad arguments.
var ErrInvalidUsage = errors.New("invalid usage")

// ExitCodeFromResult determines the exit code of a replay run.
func ExitCodeFromResult(result *runner.Result) int {
	if result == nil || !result.HasFailures() {
		return ExitSuccess
	}
	return ExitReplayFailed
}

// ExitCodeFromError maps an error returned by a command to an exit code.
func ExitCodeFromError(err error) int {
	var validation *configloader.ValidationError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrReplayFailed):
		return ExitReplayFailed
	case errors.Is(err, ErrInvalidUsage), errors.Is(err, replay.ErrInvalidStep):
		return ExitInvalidUsage
	case errors.As(err, &validation):
		return ExitConfigError
	case errors.Is(err, fs.ErrNotExist),
		errors.Is(err, fs.ErrPermission),
		errors.Is(err, fsutil.ErrIsDirectory):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
