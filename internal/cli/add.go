package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/frederikschubertflex/workmux/internal/editor"
	"github.com/frederikschubertflex/workmux/internal/expand"
	"github.com/frederikschubertflex/workmux/internal/naming"
	"github.com/frederikschubertflex/workmux/internal/pipeline"
)

type addCmdConfig struct {
	count          int
	foreach        foreachValue
	base           string
	background     bool
	name           string
	branchTemplate string
	handleTemplate string
	windowTemplate string
	promptFile     string
	promptEditor   bool
	editorBin      string
}

func newAddCmd() *cobra.Command {
	cfg := &addCmdConfig{}

	cmd := &cobra.Command{
		Use:   "add <base_name>",
		Short: "Create one or more worktrees and their multiplexer windows",
		Long: `Create a worktree and a tmux window for base_name, or a whole batch of
them when --count, --foreach, --prompt frontmatter, or piped stdin describe
more than one.`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runAdd(c, args[0], cfg)
		},
	}

	cmd.Flags().IntVarP(&cfg.count, "count", "n", 0, "number of worktrees to create")
	cmd.Flags().Var(&cfg.foreach, "foreach", `cartesian axes, e.g. "env:dev,prod;region:us,eu"`)
	cmd.Flags().StringVar(&cfg.base, "base", "", "base ref for newly created branches (defaults to the current branch)")
	cmd.Flags().BoolVar(&cfg.background, "background", false, "create the window without selecting it")
	cmd.Flags().StringVar(&cfg.name, "name", "", "explicit branch/handle name (singleton batches only)")
	cmd.Flags().StringVar(&cfg.branchTemplate, "branch-template", "", "override the branch name template")
	cmd.Flags().StringVar(&cfg.handleTemplate, "handle-template", "", "override the worktree handle template")
	cmd.Flags().StringVar(&cfg.windowTemplate, "window-template", "", "override the window name template")
	cmd.Flags().StringVarP(&cfg.promptFile, "prompt", "P", "", "prompt frontmatter file (may supply foreach)")
	cmd.Flags().BoolVar(&cfg.promptEditor, "prompt-editor", false, "open $EDITOR to author the prompt frontmatter interactively")
	cmd.Flags().StringVar(&cfg.editorBin, "editor", "", "editor binary to use with --prompt-editor")

	return cmd
}

func runAdd(cmd *cobra.Command, baseName string, cfg *addCmdConfig) error {
	ctx := cmd.Context()

	opts := expand.Options{
		BaseName:     baseName,
		Count:        cfg.count,
		Foreach:      cfg.foreach.raw,
		ExplicitName: cfg.name,
		PromptEditor: cfg.promptEditor,
	}

	if stdinLines, err := readPipedStdin(cmd.InOrStdin()); err != nil {
		return err
	} else {
		opts.StdinLines = stdinLines
	}

	promptFile := cfg.promptFile
	if cfg.promptEditor && promptFile == "" {
		tmpFile, err := authorPromptInteractively(cfg.editorBin)
		if err != nil {
			return err
		}
		defer os.Remove(tmpFile)
		promptFile = tmpFile
	}
	if promptFile != "" {
		prompt, err := expand.ReadPromptFile(promptFile)
		if err != nil {
			return fmt.Errorf("failed to read prompt file: %w", err)
		}
		opts.PromptForeach = prompt.Foreach
	}

	records, err := expand.Expand(opts)
	if err != nil {
		return err
	}

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

	templates := naming.Templates{
		BranchTemplate: firstNonEmpty(cfg.branchTemplate, projectCfg.BranchTemplate),
		HandleTemplate: firstNonEmpty(cfg.handleTemplate, projectCfg.HandleTemplate),
		WindowTemplate: firstNonEmpty(cfg.windowTemplate, projectCfg.WindowTemplate),
	}

	_, err = pipeline.RunAdd(ctx, records, pipeline.AddOptions{
		RepoRoot:     repo.Root,
		Session:      resolveSession(mux),
		Base:         cfg.base,
		Background:   cfg.background,
		Templates:    templates,
		Config:       projectCfg,
		Quiet:        flagQuiet,
		ExplicitName: cfg.name,
	}, mux, logger, cmd.OutOrStdout())
	return err
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

// readPipedStdin returns nil when stdin isn't piped or is empty, otherwise
// the filtered, non-blank lines.
func readPipedStdin(in io.Reader) ([]string, error) {
	f, ok := in.(*os.File)
	if !ok {
		return nil, nil
	}
	stat, err := f.Stat()
	if err != nil || (stat.Mode()&os.ModeCharDevice) != 0 {
		return nil, nil
	}

	var raw []byte
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		raw = append(raw, scanner.Bytes()...)
		raw = append(raw, '\n')
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return expand.CollectStdinLines(string(raw)), nil
}

// authorPromptInteractively opens a blank frontmatter-seeded temp file in
// the resolved editor and blocks until it's saved and closed.
func authorPromptInteractively(preferredEditor string) (string, error) {
	tmp, err := os.CreateTemp("", "workmux-prompt-*.md")
	if err != nil {
		return "", err
	}
	path := tmp.Name()
	fmt.Fprint(tmp, "---\n# foreach:\n#   env: [dev, prod]\n---\n")
	if err := tmp.Close(); err != nil {
		os.Remove(path)
		return "", err
	}

	if err := editor.Open(path, preferredEditor); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}
