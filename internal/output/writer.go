// Package output serializes the launch document and writes it to disk.
package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	ferrors "git.home.luguber.info/inful/launchgen/internal/foundation/errors"
)

// Marshal renders v as two-space indented JSON with a trailing newline.
// Object keys are sorted, so equal input always yields equal bytes. HTML
// characters are left unescaped because editors read the file verbatim.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryInternal, "failed to serialize launch document").
			Fatal().
			Build()
	}
	return buf.Bytes(), nil
}

// Result describes what WriteFile did.
type Result struct {
	Path    string
	Bytes   int
	Changed bool
}

// WriteFile writes v to path atomically.
//
// The function ensures:
//   - Parent directories are created if needed
//   - The content is written to a temporary file in the target directory and
//     renamed over path, so readers never observe a partial document
//   - An existing file with identical content is left untouched
func WriteFile(path string, v any) (Result, error) {
	if path == "" {
		return Result{}, ferrors.ConfigError("output path is required").Build()
	}

	data, err := Marshal(v)
	if err != nil {
		return Result{}, err
	}

	res := Result{Path: path, Bytes: len(data)}

	// #nosec G304 -- path is the configured output file.
	existing, err := os.ReadFile(path)
	switch {
	case err == nil && bytes.Equal(existing, data):
		return res, nil
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return Result{}, fsError(err, "read existing output", path)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return Result{}, fsError(err, "create output directory", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return Result{}, fsError(err, "create temporary file", dir)
	}
	tmpPath := tmp.Name()
	defer func() {
		// no-op after a successful rename
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return Result{}, fsError(err, "write temporary file", tmpPath)
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return Result{}, fsError(err, "set permissions on", tmpPath)
	}
	if err := tmp.Close(); err != nil {
		return Result{}, fsError(err, "close temporary file", tmpPath)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return Result{}, fsError(err, "replace output file", path)
	}

	res.Changed = true
	return res, nil
}

func fsError(err error, action, path string) error {
	return ferrors.WrapError(err, ferrors.CategoryFileSystem, fmt.Sprintf("failed to %s %s", action, path)).
		Fatal().
		WithContext("path", path).
		Build()
}
