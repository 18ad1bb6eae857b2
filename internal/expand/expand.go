package expand

import (
	"fmt"
	"os"

	"github.com/frederikschubertflex/workmux/internal/werrors"
)

// Expand resolves opts into the ordered batch of records the add pipeline
// will process, applying the source-precedence and conflict rules.
func Expand(opts Options) ([]Record, error) {
	hasStdin := len(opts.StdinLines) > 0
	hasForeach := opts.Foreach != ""
	hasCount := opts.Count > 0
	hasPromptForeach := len(opts.PromptForeach) > 0
	multi := hasStdin || hasForeach || hasCount || hasPromptForeach

	if opts.ExplicitName != "" && multi {
		return nil, &werrors.StdinConflictError{
			Reason: "--name cannot be used with multi-worktree generation",
		}
	}

	if hasStdin {
		if hasForeach {
			return nil, &werrors.StdinConflictError{
				Reason: "Cannot use --foreach when piping input from stdin",
			}
		}
		if opts.PromptEditor {
			return nil, &werrors.StdinConflictError{
				Reason: "Cannot use interactive prompt editor when piping input",
			}
		}
		if hasPromptForeach {
			fmt.Fprintln(os.Stderr, "stdin input overrides prompt frontmatter")
		}
		return expandStdin(opts.BaseName, opts.StdinLines), nil
	}

	if hasForeach {
		axes, err := parseForeach(opts.Foreach)
		if err != nil {
			return nil, err
		}
		return expandForeach(opts.BaseName, axes), nil
	}

	if hasCount {
		return expandCount(opts.BaseName, opts.Count), nil
	}

	if hasPromptForeach {
		axes := axesFromMap(opts.PromptForeach)
		return expandForeach(opts.BaseName, axes), nil
	}

	return []Record{{BaseName: opts.BaseName, Index: 1, Input: opts.BaseName, Singleton: true}}, nil
}

// CollectStdinLines is a thin helper cli wires up: given raw stdin bytes
// (empty when nothing was piped), return the filtered line list, or nil.
func CollectStdinLines(raw string) []string {
	if raw == "" {
		return nil
	}
	return linesFromStdin(raw)
}
