// Package werrors defines the typed error kinds workmux raises and the
// exit code each one maps to. cmd/workmux's main never hand-maps strings to
// exit codes; it only asks errors.As for a CodedError.
package werrors

import "fmt"

// CodedError is implemented by every error kind in this package.
type CodedError interface {
	error
	ExitCode() int
}

const (
	ExitUsage       = 2
	ExitEnvironment = 3
	ExitVcs         = 4
	ExitMultiplexer = 5
	ExitGuard       = 6
	ExitHook        = 7
)

type NotARepoError struct{ Path string }

func (e *NotARepoError) Error() string {
	return fmt.Sprintf("%s is not inside a git repository", e.Path)
}
func (e *NotARepoError) ExitCode() int { return ExitEnvironment }

type NoMultiplexerServerError struct{ Socket string }

func (e *NoMultiplexerServerError) Error() string {
	if e.Socket != "" {
		return fmt.Sprintf("no tmux server reachable on socket %q; start tmux or unset WORKMUX_MUX_SOCKET", e.Socket)
	}
	return "no tmux server reachable; start a tmux server first"
}
func (e *NoMultiplexerServerError) ExitCode() int { return ExitEnvironment }

type DetachedHeadNoBaseError struct{}

func (e *DetachedHeadNoBaseError) Error() string {
	return "HEAD is in detached HEAD state and no --base was given; pass --base <ref>"
}
func (e *DetachedHeadNoBaseError) ExitCode() int { return ExitUsage }

type WorktreeExistsError struct{ Branch, Path string }

func (e *WorktreeExistsError) Error() string {
	return fmt.Sprintf("A worktree for branch '%s' already exists. Use 'workmux open %s' to jump to it.", e.Branch, e.Branch)
}
func (e *WorktreeExistsError) ExitCode() int { return ExitVcs }

type BranchTemplateError struct {
	Template string
	Var      string
}

func (e *BranchTemplateError) Error() string {
	return fmt.Sprintf("template %q references unknown variable %q", e.Template, e.Var)
}
func (e *BranchTemplateError) ExitCode() int { return ExitUsage }

type HandleCollisionError struct{ Handle string }

func (e *HandleCollisionError) Error() string {
	return fmt.Sprintf("handle %q is produced by more than one entry in this batch; no worktrees were created", e.Handle)
}
func (e *HandleCollisionError) ExitCode() int { return ExitUsage }

type VcsFailureError struct {
	Step string
	Err  error
}

func (e *VcsFailureError) Error() string { return fmt.Sprintf("git %s: %v", e.Step, e.Err) }
func (e *VcsFailureError) Unwrap() error { return e.Err }
func (e *VcsFailureError) ExitCode() int { return ExitVcs }

type MultiplexerFailureError struct {
	Step string
	Err  error
}

func (e *MultiplexerFailureError) Error() string { return fmt.Sprintf("tmux %s: %v", e.Step, e.Err) }
func (e *MultiplexerFailureError) Unwrap() error { return e.Err }
func (e *MultiplexerFailureError) ExitCode() int { return ExitMultiplexer }

type HookFailureError struct {
	Command string
	Err     error
}

func (e *HookFailureError) Error() string {
	return fmt.Sprintf("post_create command %q failed: %v", e.Command, e.Err)
}
func (e *HookFailureError) Unwrap() error { return e.Err }
func (e *HookFailureError) ExitCode() int { return ExitHook }

type DirtyWorktreeError struct{ Path string }

func (e *DirtyWorktreeError) Error() string {
	return fmt.Sprintf("worktree %s has uncommitted changes; pass -f to remove anyway", e.Path)
}
func (e *DirtyWorktreeError) ExitCode() int { return ExitGuard }

type UnmergedCommitsError struct{ Branch string }

func (e *UnmergedCommitsError) Error() string {
	return fmt.Sprintf("branch %s has commits not present upstream; pass -f to remove anyway", e.Branch)
}
func (e *UnmergedCommitsError) ExitCode() int { return ExitGuard }

type ConfirmationRequiredError struct{}

func (e *ConfirmationRequiredError) Error() string {
	return "removal requires confirmation; answer 'y' or pass -f"
}
func (e *ConfirmationRequiredError) ExitCode() int { return ExitUsage }

type StdinConflictError struct{ Reason string }

func (e *StdinConflictError) Error() string { return e.Reason }
func (e *StdinConflictError) ExitCode() int { return ExitUsage }

type NoSuchWorktreeError struct{ Branch string }

func (e *NoSuchWorktreeError) Error() string {
	return fmt.Sprintf("no worktree found for branch '%s'", e.Branch)
}
func (e *NoSuchWorktreeError) ExitCode() int { return ExitUsage }
