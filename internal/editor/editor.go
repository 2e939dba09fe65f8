package editor

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

func editorCmd() []string {
	for _, k := range []string{"EDITOR", "VISUAL"} {
		if f := strings.Fields(os.Getenv(k)); len(f) > 0 {
			return f
		}
	}
	return []string{"vi"}
}

// Open runs the user's editor on path and waits for it to exit. EDITOR may
// carry arguments, e.g. "code --wait".
func Open(path string) error {
	args := editorCmd()
	cmd := exec.Command(args[0], append(args[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor %q: %w", args[0], err)
	}
	return nil
}

// Edit creates a temporary file called name, fills it with write, opens it
// in the editor and returns its path. The caller removes it with cleanup.
func Edit(name string, write func(path string) error) (string, func(), error) {
	dir, err := os.MkdirTemp("", "dolphin-edit-")
	if err != nil {
		return "", nil, fmt.Errorf("creating temp dir: %w", err)
	}
	cleanup := func() { os.RemoveAll(dir) }
	path := filepath.Join(dir, name)
	if err := write(path); err != nil {
		cleanup()
		return "", nil, err
	}
	if err := Open(path); err != nil {
		cleanup()
		return "", nil, err
	}
	return path, cleanup, nil
}
