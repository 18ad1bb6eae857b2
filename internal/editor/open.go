// Package editor resolves and launches the user's preferred editor for
// --prompt-editor, mirroring the teacher's editor-resolution cascade.
package editor

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// FindEditor resolves the editor binary to launch, in priority order:
// an explicit --editor flag, WORKMUX_EDITOR, VISUAL, EDITOR, then a short
// list of common editors found on PATH.
func FindEditor(preferredEditor string) (string, error) {
	candidates := []string{
		preferredEditor,
		os.Getenv("WORKMUX_EDITOR"),
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		"vim",
		"vi",
		"nano",
	}

	if runtime.GOOS == "darwin" {
		candidates = append(candidates, "open")
	} else if runtime.GOOS == "linux" {
		candidates = append(candidates, "xdg-open")
	}

	for _, e := range candidates {
		if e == "" {
			continue
		}
		if path, err := exec.LookPath(e); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("no editor found; set WORKMUX_EDITOR, VISUAL, or EDITOR, or pass --editor")
}

// Open launches editor (or the resolved default) on path and blocks until
// it exits, so the caller can read back whatever the user saved.
func Open(path, editor string) error {
	editorPath, err := FindEditor(editor)
	if err != nil {
		return err
	}
	cmd := exec.Command(editorPath, path)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to launch editor: %w", err)
	}
	return nil
}
