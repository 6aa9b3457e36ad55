package gitcmd

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// GitRunner is the function signature for executing git commands.
// Swapping it out lets tests substitute a programmable fake for the
// real git binary.
type GitRunner func(ctx context.Context, args ...string) (stdout string, err error)

// Runner holds the function used to run git commands. It defaults to
// the real implementation.
var Runner GitRunner = runGitCommandReal

// runGitCommandReal shells out to git. No timeout is applied here: a
// scan either runs to completion or is killed externally, and the
// caller's context is honoured if it carries a deadline.
func runGitCommandReal(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	err := cmd.Run()
	stdout := strings.TrimSpace(stdoutBuf.String())
	stderr := strings.TrimSpace(stderrBuf.String())

	if err != nil {
		return stdout, fmt.Errorf("git command failed: %w\nargs: %v\nstderr: %s", err, args, stderr)
	}

	return stdout, nil
}

// RunGitCommand is a convenience wrapper over the package-level Runner.
// All other gitcmd functions go through this.
func RunGitCommand(ctx context.Context, args ...string) (string, error) {
	if Runner == nil {
		return "", fmt.Errorf("GitRunner is not initialized")
	}
	return Runner(ctx, args...)
}
