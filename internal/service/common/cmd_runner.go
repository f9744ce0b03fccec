package common

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// CmdRunner is interface for executing external commands
type CmdRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
	LookPath(name string) (string, error)
}

// realCmdRunner implements CmdRunner using os/exec
type realCmdRunner struct{}

// NewCmdRunner creates a new CmdRunner
func NewCmdRunner() CmdRunner {
	return &realCmdRunner{}
}

// Run executes an external command and returns its stdout. On failure the
// captured stderr is folded into the error so callers can map tool-specific
// messages.
func (r *realCmdRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok && len(exitErr.Stderr) > 0 {
			return output, fmt.Errorf("%w: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return output, err
	}
	return output, nil
}

// LookPath reports where the named binary lives, for dependency preflight.
func (r *realCmdRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
