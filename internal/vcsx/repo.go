package vcsx

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/frederikschubertflex/workmux/internal/werrors"
)

// Repo is the resolved repository location: always the main worktree's
// root, never a secondary worktree, so sibling worktree placement stays
// correct regardless of which worktree the process was invoked from.
type Repo struct {
	Root   string
	Name   string
	Parent string
}

func getMainWorktreeRoot(ctx context.Context, dir string) (string, error) {
	output, err := RunGitInDir(ctx, dir, "worktree", "list", "--porcelain")
	if err != nil {
		return "", fmt.Errorf("failed to get worktree list: %w", err)
	}
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "worktree ") {
			return strings.TrimPrefix(line, "worktree "), nil
		}
	}
	return "", fmt.Errorf("could not find main worktree in output")
}

// GetRepo resolves the repository rooted at (or above) dir. It always
// returns the main worktree's root even when dir is inside a secondary
// worktree.
func GetRepo(ctx context.Context, dir string) (*Repo, error) {
	if _, err := RunGitInDir(ctx, dir, "rev-parse", "--show-toplevel"); err != nil {
		return nil, &werrors.NotARepoError{Path: dir}
	}

	root, err := getMainWorktreeRoot(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve main worktree root: %w", err)
	}

	return &Repo{
		Root:   root,
		Name:   filepath.Base(root),
		Parent: filepath.Dir(root),
	}, nil
}

// IsInsideWorktree reports whether dir is inside any git working tree.
func IsInsideWorktree(ctx context.Context, dir string) bool {
	_, err := RunGitInDir(ctx, dir, "rev-parse", "--is-inside-work-tree")
	return err == nil
}
