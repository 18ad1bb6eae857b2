package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/frederikschubertflex/workmux/internal/naming"
	"github.com/frederikschubertflex/workmux/internal/pipeline"
	"github.com/frederikschubertflex/workmux/internal/vcsx"
)

func newRemoveCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "remove <branch_name>",
		Short: "Remove a worktree and its multiplexer window",
		Long: `Remove the worktree checked out on branch_name and kill its tmux window.
Refuses a dirty or unmerged worktree unless -f is given; otherwise asks for
confirmation on stdin. The branch itself is never deleted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()

			repo, err := resolveRepo(ctx)
			if err != nil {
				return err
			}

			projectCfg, err := loadProjectConfig(repo.Root)
			if err != nil {
				return fmt.Errorf("failed to load .workmux.yaml: %w", err)
			}

			mux, err := newMultiplexer()
			if err != nil {
				return err
			}

			defaultBranch, _, err := vcsx.CurrentBranch(ctx, repo.Root)
			if err != nil {
				defaultBranch = ""
			}

			templates := naming.Templates{
				HandleTemplate: projectCfg.HandleTemplate,
				WindowTemplate: projectCfg.WindowTemplate,
			}

			return pipeline.RunRemove(ctx, pipeline.RemoveOptions{
				RepoRoot:      repo.Root,
				Session:       resolveSession(mux),
				Branch:        args[0],
				Force:         force,
				DefaultBranch: defaultBranch,
				Quiet:         flagQuiet,
				Templates:     templates,
			}, mux, logger, c.InOrStdin(), c.OutOrStdout())
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip dirty/unmerged checks and confirmation")

	return cmd
}
