// Package vcsx is a typed wrapper over the git CLI: repository and branch
// resolution, worktree creation/removal with the reuse/fetch/base-create
// dispatch the add pipeline needs, and the dirty/unmerged guards the
// remove pipeline needs.
package vcsx

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// Debug mirrors the teacher's gitx.Debug: when true every invoked git
// command is echoed to the logger at debug level before running.
var Debug = false

// Logger receives the debug command trace. Defaults to slog.Default() so
// packages that never call SetLogger still work.
var Logger = slog.Default()

func SetLogger(l *slog.Logger) { Logger = l }

// RunGit executes a git command against the current directory.
func RunGit(ctx context.Context, args ...string) (string, error) {
	return RunGitInDir(ctx, "", args...)
}

// RunGitInDir executes a git command with an explicit working directory.
func RunGitInDir(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	if dir != "" {
		cmd.Dir = dir
	}

	if Debug {
		Logger.Debug("git "+strings.Join(args, " "), "dir", dir)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		stderrStr := strings.TrimSpace(stderr.String())
		if stderrStr != "" {
			return "", fmt.Errorf("git %s failed: %w: %s", args[0], err, stderrStr)
		}
		return "", fmt.Errorf("git %s failed: %w", args[0], err)
	}

	return strings.TrimSpace(stdout.String()), nil
}

// CheckGitInstalled verifies git is on PATH.
func CheckGitInstalled() error {
	if _, err := exec.LookPath("git"); err != nil {
		return fmt.Errorf("git command not found: please install git")
	}
	return nil
}
