// Package paneorch applies a project's pane layout to a freshly created
// multiplexer window: splitting panes, setting their working directory,
// and dispatching each pane's startup command through a login shell.
package paneorch

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/frederikschubertflex/workmux/internal/config"
	"github.com/frederikschubertflex/workmux/internal/muxx"
)

// SetupResult records what happened, for callers that want to know
// whether any non-fatal pane failures occurred.
type SetupResult struct {
	Warnings []string
}

// Setup applies panes to window (already created, already containing one
// pane) inside session, rooted at worktreePath. Pane failures are
// collected as warnings rather than returned as a hard error: per the
// design, a broken pane command never aborts the add pipeline.
func Setup(m *muxx.Manager, session, window, worktreePath string, panes []config.Pane, logger *slog.Logger) SetupResult {
	if logger == nil {
		logger = slog.Default()
	}
	if len(panes) == 0 {
		return SetupResult{}
	}

	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}

	result := SetupResult{}
	paneIDs := make([]string, len(panes))

	for i, p := range panes {
		cwd := worktreePath
		if p.Cwd != "" {
			cwd = p.Cwd
		}

		if i == 0 {
			// pane[0] is the window's initial pane; there is nothing to
			// split, but its command still needs the login-shell wrapper.
			paneIDs[i] = ""
		} else {
			direction := p.Split
			if direction == "" {
				direction = "horizontal"
			}
			paneID, err := m.SplitWindow(session, window, direction, cwd)
			if err != nil {
				warn := fmt.Sprintf("split for pane %d failed: %v", i, err)
				logger.Warn(warn)
				result.Warnings = append(result.Warnings, warn)
				continue
			}
			paneIDs[i] = paneID
		}
	}

	target := func(i int) string {
		if paneIDs[i] != "" {
			return paneIDs[i]
		}
		return session + ":" + window + ".0"
	}

	for i, p := range panes {
		// Every pane, including the window's initial one, is started as a
		// login shell so profile-defined aliases/functions are visible --
		// regardless of whether a startup command was configured.
		wrapped := muxx.LoginShellCommand(shell, p.Command)
		if err := m.SendKeys(target(i), wrapped, true); err != nil {
			warn := fmt.Sprintf("send-keys for pane %d failed: %v", i, err)
			logger.Warn(warn)
			result.Warnings = append(result.Warnings, warn)
		}
	}

	for i, p := range panes {
		if p.Focus {
			if err := m.SelectPane(target(i)); err != nil {
				warn := fmt.Sprintf("select-pane for pane %d failed: %v", i, err)
				logger.Warn(warn)
				result.Warnings = append(result.Warnings, warn)
			}
			break
		}
	}

	return result
}
