package vcsx

import (
	"context"
	"fmt"
	"strings"
)

// BranchState is the three-way result of branch_exists: a branch may be
// fully local, live only on a remote-tracking ref, or not exist at all.
type BranchState int

const (
	BranchNone BranchState = iota
	BranchLocal
	BranchRemoteOnly
)

// CurrentBranch returns the checked-out branch name, or ("", true) when
// HEAD is detached.
func CurrentBranch(ctx context.Context, dir string) (name string, detached bool, err error) {
	out, err := RunGitInDir(ctx, dir, "branch", "--show-current")
	if err != nil {
		return "", false, fmt.Errorf("failed to get current branch: %w", err)
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", true, nil
	}
	return out, false, nil
}

func localBranchExists(ctx context.Context, dir, branch string) (bool, error) {
	ref := "refs/heads/" + branch
	_, err := RunGitInDir(ctx, dir, "show-ref", "--verify", ref)
	if err != nil {
		return false, nil
	}
	return true, nil
}

// remoteForBranch returns the first remote that has a ref/remotes/<remote>/<branch>,
// or "" if none do.
func remoteForBranch(ctx context.Context, dir, branch string) (string, error) {
	out, err := RunGitInDir(ctx, dir, "for-each-ref", "--format=%(refname)", "refs/remotes/")
	if err != nil {
		return "", fmt.Errorf("failed to list remote refs: %w", err)
	}
	suffix := "/" + branch
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "refs/remotes/") {
			continue
		}
		rest := strings.TrimPrefix(line, "refs/remotes/")
		if !strings.HasSuffix(rest, suffix) {
			continue
		}
		remote := strings.TrimSuffix(rest, suffix)
		if remote == "" || strings.Contains(remote, "/") {
			continue // HEAD pointer or nested ref, not a real remote/branch pair
		}
		return remote, nil
	}
	return "", nil
}

// BranchExists implements the three-way branch_exists contract used by
// worktree_add's dispatch.
func BranchExists(ctx context.Context, dir, branch string) (BranchState, string, error) {
	local, err := localBranchExists(ctx, dir, branch)
	if err != nil {
		return BranchNone, "", err
	}
	if local {
		return BranchLocal, "", nil
	}
	remote, err := remoteForBranch(ctx, dir, branch)
	if err != nil {
		return BranchNone, "", err
	}
	if remote != "" {
		return BranchRemoteOnly, remote, nil
	}
	return BranchNone, "", nil
}

// ScrubUpstream removes branch.<name>.merge and branch.<name>.remote,
// ignoring "key not found" failures from either unset.
func ScrubUpstream(ctx context.Context, dir, branch string) error {
	_, _ = RunGitInDir(ctx, dir, "config", "--unset", "branch."+branch+".merge")
	_, _ = RunGitInDir(ctx, dir, "config", "--unset", "branch."+branch+".remote")
	return nil
}

// DeleteBranch deletes a local branch.
func DeleteBranch(ctx context.Context, dir, branch string, force bool) error {
	flag := "-d"
	if force {
		flag = "-D"
	}
	_, err := RunGitInDir(ctx, dir, "branch", flag, branch)
	return err
}

// HasUpstream reports whether branch has a configured upstream and
// returns its ref (e.g. "origin/main") if so.
func HasUpstream(ctx context.Context, dir, branch string) (string, bool) {
	out, err := RunGitInDir(ctx, dir, "rev-parse", "--abbrev-ref", branch+"@{upstream}")
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(out), true
}

// IsUnmerged reports whether branch has commits not reachable from its
// upstream (if it has one) or from defaultBranch otherwise.
func IsUnmerged(ctx context.Context, dir, branch, defaultBranch string) (bool, error) {
	target := defaultBranch
	if upstream, ok := HasUpstream(ctx, dir, branch); ok {
		target = upstream
	}
	if target == "" {
		return false, nil
	}
	out, err := RunGitInDir(ctx, dir, "rev-list", "--count", target+".."+branch)
	if err != nil {
		return false, fmt.Errorf("failed to check unmerged commits: %w", err)
	}
	return strings.TrimSpace(out) != "0", nil
}

// IsDirty reports whether the worktree at dir has uncommitted changes.
func IsDirty(ctx context.Context, dir string) (bool, error) {
	out, err := RunGitInDir(ctx, dir, "status", "--porcelain")
	if err != nil {
		return false, fmt.Errorf("failed to check worktree status: %w", err)
	}
	return strings.TrimSpace(out) != "", nil
}
