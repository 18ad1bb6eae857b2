// Package config loads the project-level .workmux.yaml file: pane
// layout, post-create hooks and naming template overrides. Discovery
// (where to look) is the caller's concern; this package only parses a
// path it is handed, defaulting to an empty configuration when that path
// doesn't exist -- the same missing-file-is-fine shape the teacher's
// internal/config package uses for its own (unrelated) settings file.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Pane is one entry of the panes sequence. The first entry describes the
// window's initial pane; its Split is ignored.
type Pane struct {
	Split   string `yaml:"split,omitempty"`   // "horizontal" (default) or "vertical"
	Command string `yaml:"command,omitempty"`
	Cwd     string `yaml:"cwd,omitempty"`
	Focus   bool   `yaml:"focus,omitempty"`
}

// Config is the parsed shape of .workmux.yaml.
type Config struct {
	Panes      []Pane   `yaml:"panes,omitempty"`
	PostCreate []string `yaml:"post_create,omitempty"`

	BranchTemplate string `yaml:"branch_template,omitempty"`
	HandleTemplate string `yaml:"handle_template,omitempty"`
	WindowTemplate string `yaml:"window_template,omitempty"`
}

// Load reads and parses path. A missing file yields an empty, valid
// Config rather than an error: a repository with no .workmux.yaml still
// gets a single default shell pane and no hooks.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
