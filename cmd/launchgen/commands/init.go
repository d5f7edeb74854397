package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/launchgen/internal/config"
	ferrors "git.home.luguber.info/inful/launchgen/internal/foundation/errors"
	"git.home.luguber.info/inful/launchgen/internal/output"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force      bool `help:"Overwrite existing files"`
	WithConfig bool `name:"with-config" help:"Also write a configuration file holding the defaults"`
}

func sampleTemplate() map[string]any {
	return map[string]any{
		"type":        "cppdbg",
		"request":     "launch",
		"program":     "${workspaceFolder}/build/app",
		"cwd":         "${workspaceFolder}",
		"stopAtEntry": false,
		"MIMode":      "gdb",
		"args":        []any{},
	}
}

func sampleConfigs() []any {
	return []any{
		map[string]any{
			"name":    "app: default",
			"extends": "cpp",
			"enabled": true,
		},
		map[string]any{
			"name":    "app: help",
			"extends": "cpp",
			"enabled": false,
			"args":    []any{"--help"},
		},
	}
}

func (i *InitCmd) Run(glob *Global, root *CLI) error {
	out := glob.stdout()
	_, _ = fmt.Fprintln(out, "Initializing launchgen project")

	if i.WithConfig {
		ws, err := root.workspaceRoot()
		if err != nil {
			return err
		}
		path := root.configPath(ws)
		if err := config.Init(path, i.Force); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "Wrote configuration to %s\n", path)
	}

	s, err := root.Settings()
	if err != nil {
		return err
	}

	files := []struct {
		path  string
		value any
	}{
		{filepath.Join(s.TemplatesDir, "cpp.json"), sampleTemplate()},
		{filepath.Join(s.ConfigsDir, "example.json"), sampleConfigs()},
	}
	for _, f := range files {
		exists, err := fileExists(f.path)
		if err != nil {
			return err
		}
		if exists && !i.Force {
			_, _ = fmt.Fprintf(out, "Skipping %s (exists; use --force to overwrite)\n", relTo(s.Root, f.path))
			continue
		}
		if _, err := output.WriteFile(f.path, f.value); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "Wrote %s\n", relTo(s.Root, f.path))
	}
	_, _ = fmt.Fprintln(out, "initialized successfully")
	return nil
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to stat file").
			WithContext("file", path).
			Fatal().
			Build()
	}
}
