package pipeline

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/frederikschubertflex/workmux/internal/muxx"
	"github.com/frederikschubertflex/workmux/internal/naming"
	"github.com/frederikschubertflex/workmux/internal/vcsx"
	"github.com/frederikschubertflex/workmux/internal/werrors"
)

// RemoveOptions configures one invocation of the remove pipeline.
type RemoveOptions struct {
	RepoRoot      string
	Session       string
	Branch        string
	Force         bool
	DefaultBranch string // used to judge "unmerged" when the branch has no upstream
	Quiet         bool
	Templates     naming.Templates // must match what add used, so window names reverse exactly
}

// RunRemove tears down the worktree and window for Branch, guarding on
// dirty/unmerged state unless Force is set.
func RunRemove(ctx context.Context, opts RemoveOptions, mux *muxx.Manager, logger *slog.Logger, in io.Reader, out io.Writer) error {
	if logger == nil {
		logger = slog.Default()
	}

	wt, err := vcsx.FindWorktreeByBranch(ctx, opts.RepoRoot, opts.Branch)
	if err != nil {
		return &werrors.VcsFailureError{Step: "find worktree", Err: err}
	}
	if wt == nil {
		return &werrors.NoSuchWorktreeError{Branch: opts.Branch}
	}

	if !opts.Force {
		dirty, err := vcsx.IsDirty(ctx, wt.Path)
		if err != nil {
			return &werrors.VcsFailureError{Step: "status", Err: err}
		}
		if dirty {
			return &werrors.DirtyWorktreeError{Path: wt.Path}
		}

		unmerged, err := vcsx.IsUnmerged(ctx, opts.RepoRoot, opts.Branch, opts.DefaultBranch)
		if err != nil {
			return &werrors.VcsFailureError{Step: "rev-list", Err: err}
		}
		if unmerged {
			return &werrors.UnmergedCommitsError{Branch: opts.Branch}
		}

		if err := confirm(in, out, fmt.Sprintf("Remove worktree %s for branch %s? [y/N] ", wt.Path, opts.Branch)); err != nil {
			return err
		}
	}

	ids, err := naming.DeriveIdentifiers(naming.Input{
		BaseName:     opts.Branch,
		Input:        opts.Branch,
		Singleton:    true,
		ExplicitName: opts.Branch,
	}, opts.Templates, opts.RepoRoot)
	if err != nil {
		return err
	}

	if err := mux.DetachIfSelf(opts.Session, ids.WindowName); err != nil {
		logger.Warn("kill_window failed during remove", "err", err)
	}

	if err := vcsx.WorktreeRemove(ctx, opts.RepoRoot, wt.Path, opts.Force); err != nil {
		return err
	}

	if !opts.Quiet {
		fmt.Fprintf(out, "removed worktree %s\n", wt.Path)
	}
	return nil
}

// confirm reads a y/N confirmation line from in. Absence of an explicit
// "y"/"yes" aborts with ConfirmationRequiredError.
func confirm(in io.Reader, out io.Writer, prompt string) error {
	fmt.Fprint(out, prompt)
	reader := bufio.NewReader(in)
	line, _ := reader.ReadString('\n')
	answer := strings.ToLower(strings.TrimSpace(line))
	if answer == "y" || answer == "yes" {
		return nil
	}
	return &werrors.ConfirmationRequiredError{}
}
