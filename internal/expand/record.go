// Package expand implements input expansion: turning a base name plus
// flags, stdin and prompt frontmatter into an ordered list of
// ExpansionRecords, one per worktree the add pipeline will create.
package expand

// Record is one row of the expansion table; it becomes one worktree.
type Record struct {
	BaseName string
	Index    int // 1-based ordinal within the batch
	Input    string
	Vars     map[string]string

	// Singleton is true only for the bare "no --count/--foreach/stdin/
	// prompt" fallback record. A --count 1 (or any other multi-record
	// mechanism that happens to produce exactly one record) is not a
	// singleton: it still uses the multi-record branch template default.
	Singleton bool
}

// Options collects every input-expansion flag and piece of stdin/prompt
// data gathered by the cli layer before Expand is called.
type Options struct {
	BaseName string

	Count   int    // --count, 0 means unset
	Foreach string // --foreach "AXIS:v1,v2;AXIS2:v3,v4"

	StdinLines []string // nil when stdin was not piped or was empty

	PromptForeach map[string][]string // foreach: map parsed from -P frontmatter, nil if absent
	PromptEditor  bool                // --prompt-editor was requested

	ExplicitName string // --name, only legal for a singleton batch
}
