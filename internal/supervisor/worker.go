package supervisor

import (
	"context"
	"fmt"
	"os/exec"
)

// crashCode is the synthetic completion code used when a worker could
// not be started or was killed by a signal rather than exiting
// normally - spec.md 4.10's "worker crash", reported as no verdict.
const crashCode = -1000

// Process exit codes are a single unsigned byte on Unix, so
// abpdriver's negative result codes (-10, -20) can't cross exec
// boundaries directly. Workers exit with these byte-safe codes
// instead; DecodeExitCode translates back to the logical abpdriver
// code the rest of this package and the supervisor's pruning logic
// understand.
const (
	ExitTooSmall           = 0
	ExitSAT                = 10
	ExitUNSAT              = 20
	ExitVerificationFailed = 30
	ExitSolverOther        = 40
)

// DecodeExitCode maps a worker's byte-safe exit code back to the
// logical abpdriver result code (0, 10, 20, -10, -20).
func DecodeExitCode(exitCode int) int {
	switch exitCode {
	case ExitSAT:
		return 10
	case ExitUNSAT:
		return 20
	case ExitVerificationFailed:
		return -10
	case ExitSolverOther:
		return -20
	default:
		return 0
	}
}

// Completion is what a worker reports when it exits.
type Completion struct {
	Width int
	Code  int
	Err   error
}

// Worker is one forked OS process running a single abpdriver query.
// The supervisor re-execs the current binary with a hidden worker flag
// naming the width to query; the worker's own main() runs exactly one
// query and exits with the byte-safe Exit* code for its abpdriver result.
type Worker struct {
	Width int
	cmd   *exec.Cmd
	done  chan Completion
}

// StartWorker forks selfPath (typically os.Args[0]) with args plus a
// "--worker-width=N" flag appended, and begins waiting for it in the
// background. The worker's process is stopped early by cancelling ctx
// or by calling Terminate.
func StartWorker(ctx context.Context, selfPath string, args []string, width int) *Worker {
	full := append(append([]string{}, args...), fmt.Sprintf("--worker-width=%d", width))
	cmd := exec.CommandContext(ctx, selfPath, full...)

	w := &Worker{Width: width, cmd: cmd, done: make(chan Completion, 1)}
	go w.wait()
	return w
}

func (w *Worker) wait() {
	err := w.cmd.Run()
	if err == nil {
		w.done <- Completion{Width: w.Width, Code: DecodeExitCode(ExitTooSmall)}
		return
	}
	// ExitCode is -1 when the process was killed by a signal; that is
	// reported as a crash, not decoded as an exit code.
	if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() >= 0 {
		w.done <- Completion{Width: w.Width, Code: DecodeExitCode(exitErr.ExitCode())}
		return
	}
	w.done <- Completion{Width: w.Width, Code: crashCode, Err: err}
}

// Done returns the channel the worker's completion is posted to,
// exactly once.
func (w *Worker) Done() <-chan Completion {
	return w.done
}

// Terminate sends the worker a termination signal. It has no chance
// to flush; the supervisor treats it as "no verdict" regardless of
// what it was doing.
func (w *Worker) Terminate() error {
	if w.cmd.Process == nil {
		return nil
	}
	return w.cmd.Process.Kill()
}

// PID returns the worker's OS process id, or 0 if it hasn't started.
func (w *Worker) PID() int {
	if w.cmd.Process == nil {
		return 0
	}
	return w.cmd.Process.Pid
}
