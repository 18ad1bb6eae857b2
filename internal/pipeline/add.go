// Package pipeline coordinates the VCS Gateway, Multiplexer Gateway and
// Pane Orchestrator into the end-to-end add and remove flows, including
// staged rollback on partial failure.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"github.com/google/uuid"

	"github.com/frederikschubertflex/workmux/internal/config"
	"github.com/frederikschubertflex/workmux/internal/expand"
	"github.com/frederikschubertflex/workmux/internal/muxx"
	"github.com/frederikschubertflex/workmux/internal/naming"
	"github.com/frederikschubertflex/workmux/internal/paneorch"
	"github.com/frederikschubertflex/workmux/internal/vcsx"
	"github.com/frederikschubertflex/workmux/internal/werrors"
)

// AddOptions configures one invocation of the add pipeline.
type AddOptions struct {
	RepoRoot     string
	Session      string // tmux session all windows are created in
	Base         string
	Background   bool
	Templates    naming.Templates
	Config       *config.Config
	Quiet        bool
	ExplicitName string // --name, only meaningful for a true singleton record
}

// AddReport summarizes one record's outcome.
type AddReport struct {
	RecordID    string
	Identifiers naming.Identifiers
	Err         error
}

// RunAdd processes every record sequentially, stopping the whole batch on
// the first record that fails (earlier successful records are not rolled
// back).
func RunAdd(ctx context.Context, records []expand.Record, opts AddOptions, mux *muxx.Manager, logger *slog.Logger, out io.Writer) ([]AddReport, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if err := checkHandleCollisions(records, opts.Templates, opts.RepoRoot); err != nil {
		return nil, err
	}

	var reports []AddReport
	for _, record := range records {
		report, err := runAddOne(ctx, record, opts, mux, logger, out)
		reports = append(reports, report)
		if err != nil {
			if len(records) > 1 {
				fmt.Fprintf(out, "created %d of %d worktrees; aborting on: %v\n", succeeded(reports), len(records), err)
			}
			return reports, err
		}
	}

	if len(records) > 1 {
		fmt.Fprintf(out, "created %d of %d worktrees\n", succeeded(reports), len(records))
	}
	return reports, nil
}

func succeeded(reports []AddReport) int {
	n := 0
	for _, r := range reports {
		if r.Err == nil {
			n++
		}
	}
	return n
}

func checkHandleCollisions(records []expand.Record, tmpl naming.Templates, repoRoot string) error {
	seen := make(map[string]bool, len(records))
	for _, r := range records {
		ids, err := naming.DeriveIdentifiers(toNamingInput(r, ""), tmpl, repoRoot)
		if err != nil {
			var unknown *naming.UnknownVariableError
			if errors.As(err, &unknown) {
				return &werrors.BranchTemplateError{Template: unknown.Template, Var: unknown.Var}
			}
			return err
		}
		if seen[ids.Handle] {
			return &werrors.HandleCollisionError{Handle: ids.Handle}
		}
		seen[ids.Handle] = true
	}
	return nil
}

func toNamingInput(r expand.Record, explicitName string) naming.Input {
	return naming.Input{
		BaseName:     r.BaseName,
		Index:        r.Index,
		Input:        r.Input,
		Vars:         r.Vars,
		Singleton:    r.Singleton,
		ExplicitName: explicitName,
	}
}

// rollbackToken is the T1/T2 staged-rollback state for one record: T1 is
// the worktree (path, whether this invocation created the branch); T2 is
// the window name, once created.
type rollbackToken struct {
	repoRoot      string
	worktreePath  string
	branchName    string
	branchCreated bool
	worktreeAdded bool
	windowCreated bool
	session       string
	windowName    string
}

func runAddOne(ctx context.Context, record expand.Record, opts AddOptions, mux *muxx.Manager, logger *slog.Logger, out io.Writer) (AddReport, error) {
	recordID := uuid.NewString()
	log := logger.With("record_id", recordID)

	ids, err := naming.DeriveIdentifiers(toNamingInput(record, opts.ExplicitName), opts.Templates, opts.RepoRoot)
	if err != nil {
		return AddReport{RecordID: recordID, Err: err}, err
	}

	tok := &rollbackToken{repoRoot: opts.RepoRoot, worktreePath: ids.WorktreePath, branchName: ids.BranchName, session: opts.Session, windowName: ids.WindowName}

	if _, statErr := os.Stat(ids.WorktreePath); statErr == nil {
		werr := &werrors.WorktreeExistsError{Branch: ids.BranchName, Path: ids.WorktreePath}
		return AddReport{RecordID: recordID, Identifiers: ids, Err: werr}, werr
	}
	if existing, err := vcsx.FindWorktreeByBranch(ctx, opts.RepoRoot, ids.BranchName); err == nil && existing != nil {
		werr := &werrors.WorktreeExistsError{Branch: ids.BranchName, Path: existing.Path}
		return AddReport{RecordID: recordID, Identifiers: ids, Err: werr}, werr
	}

	addResult, err := vcsx.WorktreeAdd(ctx, opts.RepoRoot, vcsx.AddOptions{
		Path:   ids.WorktreePath,
		Branch: ids.BranchName,
		Base:   opts.Base,
	})
	if err != nil {
		return AddReport{RecordID: recordID, Identifiers: ids, Err: err}, err
	}
	tok.worktreeAdded = true
	tok.branchCreated = addResult.BranchCreated

	if err := mux.NewWindow(opts.Session, ids.WindowName, ids.WorktreePath, opts.Background); err != nil {
		werr := &werrors.MultiplexerFailureError{Step: "new_window", Err: err}
		rollback(ctx, tok, mux, log)
		return AddReport{RecordID: recordID, Identifiers: ids, Err: werr}, werr
	}
	tok.windowCreated = true

	if opts.Config != nil {
		result := paneorch.Setup(mux, opts.Session, ids.WindowName, ids.WorktreePath, opts.Config.Panes, log)
		for _, w := range result.Warnings {
			if !opts.Quiet {
				fmt.Fprintf(out, "warning: %s\n", w)
			}
		}
	}

	if opts.Config != nil {
		for _, hookCmd := range opts.Config.PostCreate {
			cmd := exec.CommandContext(ctx, "sh", "-c", hookCmd)
			cmd.Dir = ids.WorktreePath
			if hookErr := cmd.Run(); hookErr != nil {
				werr := &werrors.HookFailureError{Command: hookCmd, Err: hookErr}
				rollback(ctx, tok, mux, log)
				return AddReport{RecordID: recordID, Identifiers: ids, Err: werr}, werr
			}
		}
	}

	if !opts.Background {
		if err := mux.SelectWindow(opts.Session, ids.WindowName); err != nil {
			log.Warn("select_window failed", "err", err)
		}
	}

	if !opts.Quiet {
		fmt.Fprintf(out, "created worktree %s (window %s)\n", ids.WorktreePath, ids.WindowName)
	}

	return AddReport{RecordID: recordID, Identifiers: ids}, nil
}

// rollback undoes a failed record's completed steps in reverse order.
func rollback(ctx context.Context, tok *rollbackToken, mux *muxx.Manager, log *slog.Logger) {
	if tok.windowCreated {
		if err := mux.KillWindow(tok.session, tok.windowName); err != nil {
			log.Warn("rollback: kill_window failed", "err", err)
		}
	}
	if tok.worktreeAdded {
		if err := vcsx.WorktreeRemove(ctx, tok.repoRoot, tok.worktreePath, true); err != nil {
			log.Warn("rollback: worktree remove failed", "err", err)
		}
		if tok.branchCreated {
			if err := vcsx.RemoveBranch(ctx, tok.repoRoot, tok.branchName); err != nil {
				log.Warn("rollback: branch delete failed", "err", err)
			}
		}
	}
}
