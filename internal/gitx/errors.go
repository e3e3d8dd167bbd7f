package gitx

import "fmt"

// CommandError reports a git invocation that exited non-zero or timed out.
// It is fatal to the operation that issued it and is never retried.
type CommandError struct {
	Command  string
	Stderr   string
	ExitCode int
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("git command failed: %s (exit code: %d): %s", e.Command, e.ExitCode, e.Stderr)
}

// ValidationError reports that a path is not a usable git repository. It is
// raised at construction time, before any scrape is attempted.
type ValidationError struct {
	Path string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("path %s is not a git repository", e.Path)
}
