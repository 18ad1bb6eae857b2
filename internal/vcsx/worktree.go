package vcsx

import (
	"context"
	"fmt"
	"strings"

	"github.com/frederikschubertflex/workmux/internal/werrors"
)

// Worktree mirrors one block of `git worktree list --porcelain`.
type Worktree struct {
	Path       string
	Branch     string
	HEAD       string
	IsDetached bool
	IsLocked   bool
	IsPrunable bool
}

// List returns every worktree of the repository rooted at dir.
func List(ctx context.Context, dir string) ([]Worktree, error) {
	output, err := RunGitInDir(ctx, dir, "worktree", "list", "--porcelain")
	if err != nil {
		return nil, err
	}
	return parseWorktreePorcelain(output), nil
}

func parseWorktreePorcelain(output string) []Worktree {
	var worktrees []Worktree
	var current *Worktree

	flush := func() {
		if current != nil {
			worktrees = append(worktrees, *current)
			current = nil
		}
	}

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			flush()
			continue
		}
		parts := strings.SplitN(line, " ", 2)
		key := parts[0]
		value := ""
		if len(parts) > 1 {
			value = parts[1]
		}
		switch key {
		case "worktree":
			flush()
			current = &Worktree{Path: value}
		case "HEAD":
			if current != nil {
				current.HEAD = value
			}
		case "branch":
			if current != nil {
				current.Branch = strings.TrimPrefix(value, "refs/heads/")
			}
		case "detached":
			if current != nil {
				current.IsDetached = true
			}
		case "locked":
			if current != nil {
				current.IsLocked = true
			}
		case "prunable":
			if current != nil {
				current.IsPrunable = true
			}
		}
	}
	flush()
	return worktrees
}

// FindWorktreeByBranch returns the worktree checked out on branch, or nil.
func FindWorktreeByBranch(ctx context.Context, dir, branch string) (*Worktree, error) {
	worktrees, err := List(ctx, dir)
	if err != nil {
		return nil, err
	}
	for _, wt := range worktrees {
		if wt.Branch == branch {
			return &wt, nil
		}
	}
	return nil, nil
}

// AddResult reports what worktree_add actually did, so the add pipeline
// knows what to roll back. Upstream scrubbing happens inside WorktreeAdd.
type AddResult struct {
	BranchCreated  bool
	UpstreamWasSet bool // true only on the fetch+track remote-only path
}

// AddOptions configures worktree_add's three-way dispatch.
type AddOptions struct {
	Path   string
	Branch string
	Base   string // explicit --base ref; "" means "use current branch"
}

// WorktreeAdd implements the reuse / fetch+track / create-from-base
// dispatch described by the VCS Gateway contract.
func WorktreeAdd(ctx context.Context, repoDir string, opts AddOptions) (AddResult, error) {
	state, remote, err := BranchExists(ctx, repoDir, opts.Branch)
	if err != nil {
		return AddResult{}, &werrors.VcsFailureError{Step: "branch_exists", Err: err}
	}

	switch state {
	case BranchLocal:
		if _, err := RunGitInDir(ctx, repoDir, "worktree", "add", opts.Path, opts.Branch); err != nil {
			return AddResult{}, &werrors.VcsFailureError{Step: "worktree add (reuse)", Err: err}
		}
		return AddResult{}, nil

	case BranchRemoteOnly:
		if _, err := RunGitInDir(ctx, repoDir, "fetch", remote, opts.Branch); err != nil {
			return AddResult{}, &werrors.VcsFailureError{Step: "fetch", Err: err}
		}
		remoteRef := remote + "/" + opts.Branch
		if _, err := RunGitInDir(ctx, repoDir, "worktree", "add", "-b", opts.Branch, opts.Path, remoteRef); err != nil {
			return AddResult{}, &werrors.VcsFailureError{Step: "worktree add (track remote)", Err: err}
		}
		if _, err := RunGitInDir(ctx, repoDir, "branch", "--set-upstream-to="+remoteRef, opts.Branch); err != nil {
			return AddResult{}, &werrors.VcsFailureError{Step: "set-upstream-to", Err: err}
		}
		return AddResult{BranchCreated: true, UpstreamWasSet: true}, nil

	default: // BranchNone: create from base
		base := opts.Base
		if base == "" {
			current, detached, err := CurrentBranch(ctx, repoDir)
			if err != nil {
				return AddResult{}, &werrors.VcsFailureError{Step: "current_branch", Err: err}
			}
			if detached {
				return AddResult{}, &werrors.DetachedHeadNoBaseError{}
			}
			base = current
		}
		args := []string{"worktree", "add", "-b", opts.Branch, opts.Path, base}
		if _, err := RunGitInDir(ctx, repoDir, args...); err != nil {
			return AddResult{}, &werrors.VcsFailureError{Step: "worktree add (create)", Err: err}
		}
		if opts.Base != "" {
			if err := ScrubUpstream(ctx, repoDir, opts.Branch); err != nil {
				return AddResult{}, &werrors.VcsFailureError{Step: "scrub upstream", Err: err}
			}
		}
		return AddResult{BranchCreated: true}, nil
	}
}

// WorktreeRemove removes a worktree.
func WorktreeRemove(ctx context.Context, repoDir, path string, force bool) error {
	args := []string{"worktree", "remove"}
	if force {
		args = append(args, "--force")
	}
	args = append(args, path)
	if _, err := RunGitInDir(ctx, repoDir, args...); err != nil {
		return &werrors.VcsFailureError{Step: "worktree remove", Err: err}
	}
	return nil
}

// RemoveBranch deletes the branch itself; only used by rollback when the
// branch was freshly created by this invocation.
func RemoveBranch(ctx context.Context, repoDir, branch string) error {
	if err := DeleteBranch(ctx, repoDir, branch, true); err != nil {
		return fmt.Errorf("failed to delete branch %s during rollback: %w", branch, err)
	}
	return nil
}

// Prune removes stale worktree administrative files.
func Prune(ctx context.Context, repoDir string) error {
	_, err := RunGitInDir(ctx, repoDir, "worktree", "prune")
	return err
}
