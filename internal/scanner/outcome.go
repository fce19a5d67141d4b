package scanner

import (
	"context"
	"errors"
	"io/fs"
	"os/exec"
	"strings"

	"github.com/buemura/nscan/pkg/types"
)

// resourceLimitExitCode is the status reported for a process killed by
// SIGKILL, which is how the OOM killer and rlimit enforcement end a process.
const resourceLimitExitCode = -9

// classify maps the result of cmd.Run to an Outcome and exit code. ctxErr is
// the error of the context the command ran under.
func classify(ctxErr, runErr error, stdout string) (types.Outcome, int) {
	if runErr == nil {
		return types.OutcomeSuccess, 0
	}

	var exitErr *exec.ExitError
	isExit := errors.As(runErr, &exitErr)
	code := -1
	if isExit {
		code = exitStatus(exitErr)
	}

	switch {
	case errors.Is(ctxErr, context.DeadlineExceeded):
		return types.OutcomeTimedOut, code
	case errors.Is(ctxErr, context.Canceled):
		return types.OutcomeInterrupted, code
	}

	if !isExit {
		if errors.Is(runErr, exec.ErrNotFound) || errors.Is(runErr, fs.ErrNotExist) {
			return types.OutcomeToolMissing, code
		}
		return types.OutcomeLaunchFailed, code
	}

	hasOutput := strings.TrimSpace(stdout) != ""
	switch {
	case hasOutput:
		return types.OutcomePartial, code
	case code == resourceLimitExitCode:
		return types.OutcomeKilled, code
	default:
		return types.OutcomeNonZeroExit, code
	}
}
