package venv

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// CommandRunner executes a local command and returns its captured output.
// The one-method shape keeps the provisioner testable with a recorder fake
// instead of a real interpreter and package installer.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner runs commands with os/exec, capturing stdout and stderr.
type ExecRunner struct{}

// Run executes the command and returns its output. A non-zero exit status is
// returned as an error with the captured stderr folded in for diagnostics.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	runErr := cmd.Run()

	stdoutStr := stdoutBuf.String()
	stderrStr := stderrBuf.String()

	if runErr != nil {
		return stdoutStr, stderrStr, fmt.Errorf("failed to execute '%s': %w. Stderr: %s", name, runErr, stderrStr)
	}
	return stdoutStr, stderrStr, nil
}
