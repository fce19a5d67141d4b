package scanner

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"github.com/buemura/nscan/pkg/types"
)

// waitDelay bounds how long Wait blocks on output pipes still held open by
// orphaned children after the scanner itself was killed.
var waitDelay = 2 * time.Second

// Result is the outcome of one scanner run.
type Result struct {
	Outcome  types.Outcome
	Output   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// Runner executes `<binary> -u <url>` with a bounded execution window.
type Runner struct {
	binary  string
	timeout time.Duration
	report  Reporter
}

// NewRunner creates a runner for the configured scanner binary.
func NewRunner(opts Options, report Reporter) *Runner {
	return &Runner{
		binary:  opts.Binary,
		timeout: opts.ScanTimeout,
		report:  report,
	}
}

// Run scans target and never returns an error: every failure is folded into
// Result.Outcome, and only outcomes with HasOutput carry output worth saving.
func (r *Runner) Run(ctx context.Context, target types.Target) Result {
	args := []string{"-u", target.URL}
	r.report.Debugf("executing command: %s %s", r.binary, strings.Join(args, " "))

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := command(ctx, r.binary, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := settle(cmd, cmd.Run())

	res := Result{
		Output:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}
	res.Outcome, res.ExitCode = classify(ctx.Err(), err, res.Output)

	r.describe(res, err)
	if !res.Outcome.HasOutput() {
		res.Output = ""
	}
	return res
}

func (r *Runner) describe(res Result, err error) {
	switch res.Outcome {
	case types.OutcomeTimedOut:
		r.report.Warnf("%s scan timed out after %s", r.binary, r.timeout)
		return
	case types.OutcomeInterrupted:
		r.report.Warnf("%s scan interrupted", r.binary)
		return
	case types.OutcomeToolMissing:
		r.report.Errorf("%s command not found. Please ensure it is installed and in PATH", r.binary)
		return
	case types.OutcomeLaunchFailed:
		r.report.Errorf("unexpected error running %s: %v", r.binary, err)
		return
	}

	r.report.Block("scanner output:", res.Output)

	switch {
	case res.ExitCode == resourceLimitExitCode:
		r.report.Warnf("%s process was killed by SIGKILL (likely due to memory/resource limits)", r.binary)
		r.report.Warnf("this indicates the process was using too much memory or CPU")
		if res.Outcome == types.OutcomePartial {
			r.report.Infof("keeping partial output captured before the kill")
		}
	case res.ExitCode != 0:
		r.report.Warnf("%s exited with code %d", r.binary, res.ExitCode)
		r.report.Block("scanner error output:", res.Stderr)
	}
}

// settle treats exec.ErrWaitDelay after a zero exit as a clean run. The
// scanner finished; only a detached child kept the output pipes open.
func settle(cmd *exec.Cmd, err error) error {
	if errors.Is(err, exec.ErrWaitDelay) && cmd.ProcessState != nil && cmd.ProcessState.Success() {
		return nil
	}
	return err
}

func command(ctx context.Context, name string, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, name, args...)
	setProcessGroup(cmd)
	cmd.WaitDelay = waitDelay
	return cmd
}
