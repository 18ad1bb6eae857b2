// Package cli wires cobra commands onto the expansion, VCS, multiplexer
// and pipeline packages. Mapping a werrors.CodedError to a process exit
// code is left to cmd/workmux's main.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/frederikschubertflex/workmux/internal/config"
	"github.com/frederikschubertflex/workmux/internal/logx"
	"github.com/frederikschubertflex/workmux/internal/muxx"
	"github.com/frederikschubertflex/workmux/internal/vcsx"
	"github.com/frederikschubertflex/workmux/internal/werrors"
)

var (
	flagRepo  string
	flagQuiet bool
	flagDebug bool

	versionInfo = "dev"
	commitInfo  = "unknown"
	dateInfo    = "unknown"

	logger *slog.Logger
)

// SetVersionInfo is called from main with build-time version metadata.
func SetVersionInfo(version, commit, date string) {
	versionInfo = version
	commitInfo = commit
	dateInfo = date
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
}

var rootCmd = &cobra.Command{
	Use:   "workmux",
	Short: "Couple git worktrees with tmux windows for per-branch dev environments",
	Long: `workmux provisions a git worktree and a tmux window together, one pair per
branch, so switching branches means switching windows instead of stashing.`,
	Version:       "dev",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if flagDebug {
			vcsx.Debug = true
		}
		logger = logx.New(os.Stderr, flagDebug)
		vcsx.SetLogger(logger)
		return vcsx.CheckGitInstalled()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagRepo, "repo", "", "repository root (defaults to the current directory's repo)")
	rootCmd.PersistentFlags().BoolVar(&flagQuiet, "quiet", false, "minimal output")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "debug mode (show git command execution)")

	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newRemoveCmd())
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// resolveRepo resolves the repository rooted at (or above) --repo, always
// returning the main worktree's root.
func resolveRepo(ctx context.Context) (*vcsx.Repo, error) {
	dir := flagRepo
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		dir = wd
	}
	return vcsx.GetRepo(ctx, dir)
}

// loadProjectConfig reads .workmux.yaml from repoRoot; a missing file is
// not an error.
func loadProjectConfig(repoRoot string) (*config.Config, error) {
	return config.Load(filepath.Join(repoRoot, ".workmux.yaml"))
}

// muxSocket resolves the multiplexer socket override.
func muxSocket() string {
	return os.Getenv("WORKMUX_MUX_SOCKET")
}

// newMultiplexer builds a Manager after confirming a tmux binary is
// actually on PATH.
func newMultiplexer() (*muxx.Manager, error) {
	if !muxx.IsTmuxAvailable() {
		return nil, &werrors.NoMultiplexerServerError{Socket: muxSocket()}
	}
	return muxx.NewManager(muxSocket()), nil
}

// resolveSession returns the tmux session a window should be created
// or killed in: the session the invoking shell is actually attached
// to, or DefaultSession when workmux isn't running inside a tmux
// client at all.
func resolveSession(mux *muxx.Manager) string {
	if name, ok := mux.CurrentSessionName(); ok {
		return name
	}
	return muxx.DefaultSession
}
