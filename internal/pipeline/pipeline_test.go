package pipeline

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/frederikschubertflex/workmux/internal/expand"
	"github.com/frederikschubertflex/workmux/internal/muxx"
)

// mockExecutor mirrors the one in internal/muxx: a CommandExecutor fake
// so pipeline tests never touch a real tmux server. Unlike a static
// outputData buffer, it tracks windows created via new-session/new-window
// so list-windows reflects them -- otherwise muxx.Manager.waitForWindow's
// retry loop can never observe a window that was "created" by the mock.
type mockExecutor struct {
	runFunc    func(args []string) error
	outputData []byte
	windows    []string
}

func windowNameFromArgs(args []string) string {
	for i, a := range args {
		if a == "-n" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func (m *mockExecutor) Run(name string, args ...string) error {
	if m.runFunc != nil {
		if err := m.runFunc(args); err != nil {
			return err
		}
	}
	if len(args) > 0 && (args[0] == "new-session" || args[0] == "new-window") {
		if wn := windowNameFromArgs(args); wn != "" {
			m.windows = append(m.windows, wn)
		}
	}
	return nil
}

func (m *mockExecutor) Output(name string, args ...string) ([]byte, error) {
	if len(args) > 0 && args[0] == "list-windows" {
		if m.outputData != nil {
			return m.outputData, nil
		}
		return []byte(strings.Join(m.windows, "\n")), nil
	}
	if len(args) > 0 && args[0] == "list-panes" {
		return []byte("%1\n"), nil
	}
	return []byte(""), nil
}

type staticErr struct{ msg string }

func (e *staticErr) Error() string { return e.msg }

func setupTestRepo(t *testing.T) string {
	t.Helper()
	repoPath := filepath.Join(t.TempDir(), "test-repo")
	if err := os.MkdirAll(repoPath, 0755); err != nil {
		t.Fatalf("failed to create repo dir: %v", err)
	}
	run := func(args ...string) {
		cmd := exec.Command("git", args...)
		cmd.Dir = repoPath
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v failed: %v: %s", args, err, out)
		}
	}
	run("init", "-b", "main")
	run("config", "user.name", "Test User")
	run("config", "user.email", "test@example.com")
	if err := os.WriteFile(filepath.Join(repoPath, "README.md"), []byte("# test\n"), 0644); err != nil {
		t.Fatalf("failed to write README: %v", err)
	}
	run("add", "README.md")
	run("commit", "-m", "initial commit")
	return repoPath
}

func worktreesDirFor(repoPath string) string {
	return filepath.Join(filepath.Dir(repoPath), filepath.Base(repoPath)+"__worktrees")
}

func TestRunAddCreatesWorktreeAndWindow(t *testing.T) {
	repoPath := setupTestRepo(t)
	mux := muxx.NewManagerWithExecutor("", &mockExecutor{})

	records := []expand.Record{{BaseName: "feature-worktree", Index: 1, Input: "feature-worktree", Singleton: true}}

	var out bytes.Buffer
	reports, err := RunAdd(context.Background(), records, AddOptions{
		RepoRoot: repoPath,
		Session:  "workmux",
		Quiet:    true,
	}, mux, nil, &out)
	if err != nil {
		t.Fatalf("RunAdd() error = %v", err)
	}
	if len(reports) != 1 || reports[0].Err != nil {
		t.Fatalf("unexpected reports: %+v", reports)
	}
	if reports[0].Identifiers.BranchName != "feature-worktree" {
		t.Errorf("BranchName = %q", reports[0].Identifiers.BranchName)
	}

	wtPath := filepath.Join(worktreesDirFor(repoPath), "feature-worktree")
	if _, err := os.Stat(wtPath); err != nil {
		t.Errorf("expected worktree directory to exist: %v", err)
	}
}

func TestRunAddHandleCollisionAbortsBeforeSideEffects(t *testing.T) {
	repoPath := setupTestRepo(t)
	mux := muxx.NewManagerWithExecutor("", &mockExecutor{})

	records := []expand.Record{
		{BaseName: "topic", Index: 1, Input: "x"},
		{BaseName: "topic", Index: 2, Input: "x"},
	}

	var out bytes.Buffer
	_, err := RunAdd(context.Background(), records, AddOptions{RepoRoot: repoPath, Session: "workmux", Quiet: true}, mux, nil, &out)
	if err == nil {
		t.Fatal("expected HandleCollisionError")
	}

	if _, statErr := os.Stat(worktreesDirFor(repoPath)); statErr == nil {
		t.Error("expected no worktrees directory to have been created before the collision was detected")
	}
}

func TestRunAddRollsBackOnMultiplexerFailure(t *testing.T) {
	repoPath := setupTestRepo(t)
	mockExec := &mockExecutor{
		runFunc: func(args []string) error {
			if len(args) > 0 && (args[0] == "has-session" || args[0] == "new-session") {
				return &staticErr{"forced failure"}
			}
			return nil
		},
	}
	mux := muxx.NewManagerWithExecutor("", mockExec)

	records := []expand.Record{{BaseName: "feature-rollback", Index: 1, Input: "feature-rollback", Singleton: true}}
	var out bytes.Buffer
	_, err := RunAdd(context.Background(), records, AddOptions{RepoRoot: repoPath, Session: "workmux", Quiet: true}, mux, nil, &out)
	if err == nil {
		t.Fatal("expected multiplexer failure to propagate")
	}

	wtPath := filepath.Join(worktreesDirFor(repoPath), "feature-rollback")
	if _, statErr := os.Stat(wtPath); statErr == nil {
		t.Error("expected worktree to be rolled back after window creation failed")
	}
}

func TestRunRemoveRequiresConfirmationWithoutForce(t *testing.T) {
	repoPath := setupTestRepo(t)
	mux := muxx.NewManagerWithExecutor("", &mockExecutor{})

	records := []expand.Record{{BaseName: "to-remove", Index: 1, Input: "to-remove", Singleton: true}}
	var out bytes.Buffer
	if _, err := RunAdd(context.Background(), records, AddOptions{RepoRoot: repoPath, Session: "workmux", Quiet: true}, mux, nil, &out); err != nil {
		t.Fatalf("setup RunAdd() error = %v", err)
	}

	var removeOut bytes.Buffer
	err := RunRemove(context.Background(), RemoveOptions{
		RepoRoot: repoPath,
		Session:  "workmux",
		Branch:   "to-remove",
	}, mux, nil, strings.NewReader("n\n"), &removeOut)
	if err == nil {
		t.Fatal("expected ConfirmationRequiredError when user declines")
	}
}

func TestRunRemoveSucceedsWithForce(t *testing.T) {
	repoPath := setupTestRepo(t)
	mux := muxx.NewManagerWithExecutor("", &mockExecutor{})

	records := []expand.Record{{BaseName: "force-remove", Index: 1, Input: "force-remove", Singleton: true}}
	var out bytes.Buffer
	if _, err := RunAdd(context.Background(), records, AddOptions{RepoRoot: repoPath, Session: "workmux", Quiet: true}, mux, nil, &out); err != nil {
		t.Fatalf("setup RunAdd() error = %v", err)
	}

	var removeOut bytes.Buffer
	err := RunRemove(context.Background(), RemoveOptions{
		RepoRoot: repoPath,
		Session:  "workmux",
		Branch:   "force-remove",
		Force:    true,
		Quiet:    true,
	}, mux, nil, strings.NewReader(""), &removeOut)
	if err != nil {
		t.Fatalf("RunRemove() error = %v", err)
	}

	wtPath := filepath.Join(worktreesDirFor(repoPath), "force-remove")
	if _, statErr := os.Stat(wtPath); statErr == nil {
		t.Error("expected worktree directory to be removed")
	}
}
