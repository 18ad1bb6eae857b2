package naming

import (
	"path/filepath"
	"strconv"
)

// Templates holds the (possibly overridden) render templates used to
// derive identifiers for one expansion batch.
type Templates struct {
	BranchTemplate string // "" means "use the count/singleton default"
	HandleTemplate string // "" means slugify(branch_name)
	WindowTemplate string // "" means "{{window_prefix}}{{handle}}"
	WindowPrefix   string // "" means "wm-"
}

// Input is the subset of an expansion record naming needs. It mirrors
// expand.Record's fields without importing that package, so this
// package stays a leaf with no dependencies of its own.
type Input struct {
	BaseName     string
	Index        int
	Input        string
	Vars         map[string]string
	Singleton    bool   // true only for the no-flags fallback record (see expand.Record.Singleton)
	ExplicitName string // --name override, only valid when Singleton
}

// Identifiers is the pure output of deriving names for one expansion
// record against a repository root.
type Identifiers struct {
	BranchName   string
	Handle       string
	WindowName   string
	WorktreePath string
}

// DeriveIdentifiers computes branch_name, handle, window_name and
// worktree_path for one record. repoRoot must be the main worktree root
// (never a secondary worktree's path), so the result is always a sibling
// of the repository regardless of invocation CWD.
func DeriveIdentifiers(in Input, tmpl Templates, repoRoot string) (Identifiers, error) {
	scope := buildScope(in)

	var branchName string
	var err error
	if in.ExplicitName != "" {
		branchName = in.ExplicitName
	} else {
		branchTmpl := tmpl.BranchTemplate
		if branchTmpl == "" {
			branchTmpl = defaultBranchTemplate(in)
		}
		branchName, err = Render(branchTmpl, scope)
		if err != nil {
			return Identifiers{}, err
		}
	}
	scope["branch_name"] = branchName

	handle := branchName
	if tmpl.HandleTemplate != "" {
		handle, err = Render(tmpl.HandleTemplate, scope)
		if err != nil {
			return Identifiers{}, err
		}
	}
	handle = Slugify(handle)
	scope["handle"] = handle

	windowPrefix := tmpl.WindowPrefix
	if windowPrefix == "" {
		windowPrefix = "wm-"
	}
	scope["window_prefix"] = windowPrefix

	windowTmpl := tmpl.WindowTemplate
	if windowTmpl == "" {
		windowTmpl = "{{window_prefix}}{{handle}}"
	}
	windowName, err := Render(windowTmpl, scope)
	if err != nil {
		return Identifiers{}, err
	}

	repoParent := filepath.Dir(repoRoot)
	repoBase := filepath.Base(repoRoot)
	worktreePath := filepath.Join(repoParent, repoBase+"__worktrees", handle)

	return Identifiers{
		BranchName:   branchName,
		Handle:       handle,
		WindowName:   windowName,
		WorktreePath: worktreePath,
	}, nil
}

func defaultBranchTemplate(in Input) string {
	if in.Singleton {
		return "{{base_name}}"
	}
	return "{{base_name}}-{{input}}"
}

func buildScope(in Input) map[string]string {
	scope := map[string]string{
		"base_name": in.BaseName,
		"input":     in.Input,
		"index":     strconv.Itoa(in.Index),
	}
	for k, v := range in.Vars {
		scope[k] = v
	}
	return scope
}
