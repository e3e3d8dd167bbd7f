package gitx

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Runner executes the git binary with a per-command timeout. The working
// directory is always the repository root, and stdout/stderr are captured
// separately so failures carry the real error text.
type Runner struct {
	gitPath string
	dir     string
	timeout time.Duration
	logger  *zap.Logger
}

// NewRunner creates a Runner for the repository at dir.
func NewRunner(gitPath, dir string, timeout time.Duration, logger *zap.Logger) *Runner {
	if gitPath == "" {
		gitPath = "git"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{gitPath: gitPath, dir: dir, timeout: timeout, logger: logger}
}

// Run executes `git <args...>` and returns trimmed stdout. A non-zero exit
// yields a *CommandError carrying stderr (or "Unknown error") and the exit
// code; a timeout yields the same error kind with exit code -1.
func (r *Runner) Run(args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.gitPath, args...)
	cmd.Dir = r.dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	display := r.gitPath + " " + strings.Join(args, " ")
	r.logger.Debug("running git command", zap.String("command", display))

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return "", &CommandError{Command: display, Stderr: "Command timed out", ExitCode: -1}
	}
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = "Unknown error"
		}
		code := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			code = exitErr.ExitCode()
		}
		return "", &CommandError{Command: display, Stderr: msg, ExitCode: code}
	}

	return strings.TrimSpace(stdout.String()), nil
}

// ExecResult is the outcome of executing a user-approved command string.
// A failed command is data, not an error: the caller decides what to do
// with the exit code and stderr.
type ExecResult struct {
	Command  string `json:"command"`
	ExitCode int    `json:"return_code"`
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr"`
	Success  bool   `json:"success"`
}

// Execute runs a full command string in the repository root under the same
// timeout contract as Run. Commands containing quotes go through the shell
// so quoting is honored; everything else is split on whitespace.
func (r *Runner) Execute(command string) (*ExecResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	var cmd *exec.Cmd
	if strings.ContainsAny(command, `"'`) {
		cmd = exec.CommandContext(ctx, "sh", "-c", command)
	} else {
		fields := strings.Fields(command)
		if len(fields) == 0 {
			return nil, &CommandError{Command: command, Stderr: "empty command", ExitCode: -1}
		}
		cmd = exec.CommandContext(ctx, fields[0], fields[1:]...)
	}
	cmd.Dir = r.dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.logger.Info("executing command", zap.String("command", command))

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return nil, &CommandError{Command: command, Stderr: "Command timed out", ExitCode: -1}
	}

	result := &ExecResult{
		Command:  command,
		Stdout:   strings.TrimSpace(stdout.String()),
		Stderr:   strings.TrimSpace(stderr.String()),
		Success:  err == nil,
		ExitCode: 0,
	}
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
		} else {
			// Spawn failure (binary missing etc) has no exit code.
			return nil, &CommandError{Command: command, Stderr: err.Error(), ExitCode: -1}
		}
	}
	return result, nil
}
