package muxx

import (
	"fmt"
	"strings"
	"testing"
)

// mockExecutor is a CommandExecutor fake, descended from the teacher's
// tmux manager_test.go mockExecutor: records every invocation and lets a
// test script canned responses or a runFunc override.
type mockExecutor struct {
	runCalls    [][]string
	outputCalls [][]string

	runErr     error
	runFunc    func(args []string) error
	outputData []byte
	outputErr  error
	outputFunc func(args []string) ([]byte, error)
}

func (m *mockExecutor) Run(name string, args ...string) error {
	m.runCalls = append(m.runCalls, append([]string{name}, args...))
	if m.runFunc != nil {
		return m.runFunc(args)
	}
	return m.runErr
}

func (m *mockExecutor) Output(name string, args ...string) ([]byte, error) {
	m.outputCalls = append(m.outputCalls, append([]string{name}, args...))
	if m.outputFunc != nil {
		return m.outputFunc(args)
	}
	return m.outputData, m.outputErr
}

func TestNewManagerWithExecutor(t *testing.T) {
	mock := &mockExecutor{}
	m := NewManagerWithExecutor("", mock)
	if m.executor != mock {
		t.Fatal("expected manager to use the provided executor")
	}
}

func TestWindowExists(t *testing.T) {
	cases := []struct {
		name       string
		outputData []byte
		outputErr  error
		want       bool
		wantErr    bool
	}{
		{"found", []byte("wm-a\nwm-b\n"), nil, true, false},
		{"not found", []byte("wm-a\nwm-c\n"), nil, false, false},
		{"list fails", nil, fmt.Errorf("no server"), false, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			mock := &mockExecutor{outputData: c.outputData, outputErr: c.outputErr}
			m := NewManagerWithExecutor("", mock)
			got, err := m.WindowExists("sess", "wm-b")
			if (err != nil) != c.wantErr {
				t.Fatalf("err = %v, wantErr = %v", err, c.wantErr)
			}
			if err == nil && got != c.want {
				t.Errorf("got = %v, want %v", got, c.want)
			}
		})
	}
}

func TestNewWindowAlreadyExists(t *testing.T) {
	mock := &mockExecutor{outputData: []byte("wm-feature\n")}
	m := NewManagerWithExecutor("", mock)
	err := m.NewWindow("sess", "wm-feature", "/tmp", false)
	if err == nil {
		t.Fatal("expected ErrWindowExists")
	}
	if _, ok := err.(*ErrWindowExists); !ok {
		t.Fatalf("expected *ErrWindowExists, got %T", err)
	}
}

func TestNewWindowCreatesSessionWhenMissing(t *testing.T) {
	mock := &mockExecutor{}
	mock.runFunc = func(args []string) error {
		if len(args) > 0 && args[0] == "has-session" {
			return fmt.Errorf("no such session")
		}
		return nil
	}
	m := NewManagerWithExecutor("", mock)

	// WindowExists keeps reporting false (has-session keeps failing, so
	// the session never appears to exist), so waitForWindow exhausts its retries and
	// NewWindow still returns an error -- this test only asserts that
	// new-session, not new-window, is what gets attempted when the
	// session doesn't exist yet.
	err := m.NewWindow("sess", "wm-feature", "/tmp", false)
	if err == nil {
		t.Fatal("expected waitForWindow to time out since WindowExists keeps reporting false")
	}

	sawNewSession := false
	for _, call := range mock.runCalls {
		if len(call) > 1 && call[1] == "new-session" {
			sawNewSession = true
		}
	}
	if !sawNewSession {
		t.Error("expected new-session to be attempted when has-session fails")
	}
}

func TestWindowExistsMissingSessionIsNotAnError(t *testing.T) {
	mock := &mockExecutor{
		runFunc: func(args []string) error {
			if len(args) > 0 && args[0] == "has-session" {
				return fmt.Errorf("can't find session workmux")
			}
			return nil
		},
		outputErr: fmt.Errorf("can't find session workmux"),
	}
	m := NewManagerWithExecutor("", mock)

	exists, err := m.WindowExists("workmux", "wm-feature")
	if err != nil {
		t.Fatalf("WindowExists() on a missing session should not error, got %v", err)
	}
	if exists {
		t.Error("expected exists = false for a missing session")
	}
	for _, call := range mock.outputCalls {
		if len(call) > 1 && call[1] == "list-windows" {
			t.Error("list-windows should not be called when the session doesn't exist yet")
		}
	}
}

func TestNewWindowSucceedsOnFreshServer(t *testing.T) {
	sessionCreated := false
	mock := &mockExecutor{}
	mock.runFunc = func(args []string) error {
		if len(args) > 0 && args[0] == "has-session" {
			if sessionCreated {
				return nil
			}
			return fmt.Errorf("can't find session workmux")
		}
		if len(args) > 0 && args[0] == "new-session" {
			sessionCreated = true
		}
		return nil
	}
	mock.outputFunc = func(args []string) ([]byte, error) {
		if len(args) > 0 && args[0] == "list-windows" {
			if sessionCreated {
				return []byte("wm-feature\n"), nil
			}
			return nil, fmt.Errorf("can't find session workmux")
		}
		return []byte(""), nil
	}
	m := NewManagerWithExecutor("", mock)

	if err := m.NewWindow("workmux", "wm-feature", "/tmp", false); err != nil {
		t.Fatalf("NewWindow() on a fresh server should succeed, got %v", err)
	}

	sawNewSession := false
	for _, call := range mock.runCalls {
		if len(call) > 1 && call[1] == "new-session" {
			sawNewSession = true
		}
	}
	if !sawNewSession {
		t.Error("expected new-session to be attempted when has-session fails")
	}
}

func TestKillWindowMissingIsNotAnError(t *testing.T) {
	mock := &mockExecutor{outputData: []byte("")}
	m := NewManagerWithExecutor("", mock)
	if err := m.KillWindow("sess", "wm-gone"); err != nil {
		t.Fatalf("KillWindow on missing window should not error, got %v", err)
	}
}

func TestSendKeys(t *testing.T) {
	mock := &mockExecutor{}
	m := NewManagerWithExecutor("", mock)
	if err := m.SendKeys("%3", "echo hi", true); err != nil {
		t.Fatalf("SendKeys() error = %v", err)
	}
	last := mock.runCalls[len(mock.runCalls)-1]
	if !contains(last, "Enter") {
		t.Errorf("expected Enter in send-keys args, got %v", last)
	}
}

func TestSocketFlagPrepended(t *testing.T) {
	mock := &mockExecutor{}
	m := NewManagerWithExecutor("/tmp/custom.sock", mock)
	_ = m.run("list-sessions")
	call := mock.runCalls[0]
	if call[1] != "-S" || call[2] != "/tmp/custom.sock" {
		t.Errorf("expected -S socket prepended, got %v", call)
	}
}

func TestLoginShellCommandWrapsCommand(t *testing.T) {
	got := LoginShellCommand("/bin/zsh", "npm run dev")
	if !strings.Contains(got, "/bin/zsh -l -i -c") || !strings.Contains(got, "exec /bin/zsh -l -i") {
		t.Errorf("unexpected wrapper: %q", got)
	}
}

func TestLoginShellCommandEmpty(t *testing.T) {
	got := LoginShellCommand("/bin/bash", "")
	if got != "/bin/bash -l -i" {
		t.Errorf("got %q", got)
	}
}

func contains(items []string, want string) bool {
	for _, it := range items {
		if it == want {
			return true
		}
	}
	return false
}
