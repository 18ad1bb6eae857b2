package expand

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Prompt is the result of reading a -P/--prompt file: the parsed
// frontmatter (only the foreach key is meaningful to workmux) and the
// opaque body text, which workmux never interprets.
type Prompt struct {
	Foreach map[string][]string
	Body    string
}

type frontmatter struct {
	Foreach map[string][]string `yaml:"foreach"`
}

const frontmatterDelim = "---"

// ReadPromptFile reads a frontmatter-delimited prompt file: an optional
// leading "---\n...\n---\n" YAML block followed by an opaque body.
// Unrecognized frontmatter keys are ignored rather than rejected, since
// the same file is also read by whatever process the pane ultimately
// launches.
func ReadPromptFile(path string) (Prompt, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Prompt{}, err
	}
	return ParsePrompt(string(raw))
}

// ParsePrompt parses prompt text already in memory (used for both -P
// files and the output of --prompt-editor).
func ParsePrompt(text string) (Prompt, error) {
	text = strings.TrimPrefix(text, "\ufeff")
	if !strings.HasPrefix(text, frontmatterDelim) {
		return Prompt{Body: text}, nil
	}

	rest := text[len(frontmatterDelim):]
	rest = strings.TrimPrefix(rest, "\n")
	closeIdx := strings.Index(rest, "\n"+frontmatterDelim)
	if closeIdx == -1 {
		return Prompt{Body: text}, nil
	}
	yamlBlock := rest[:closeIdx]
	body := rest[closeIdx+len("\n"+frontmatterDelim):]
	body = strings.TrimPrefix(body, "\n")

	var fm frontmatter
	if err := yaml.Unmarshal([]byte(yamlBlock), &fm); err != nil {
		return Prompt{}, err
	}
	return Prompt{Foreach: fm.Foreach, Body: body}, nil
}
