// Package baseargs loads shared argument lists referenced by configuration
// entries through their baseArgs field.
package baseargs

import (
	"fmt"
	"path/filepath"
	"slices"

	"git.home.luguber.info/inful/launchgen/internal/document"
	ferrors "git.home.luguber.info/inful/launchgen/internal/foundation/errors"
)

// Resolver loads base-args files of the form {"args": [string, ...]}.
// Results are memoized per path for the lifetime of the resolver, which is a
// single generation run.
type Resolver struct {
	baseDir string
	cache   map[string][]string
	loads   int
}

// NewResolver creates a resolver that resolves relative paths against baseDir.
// An empty baseDir leaves relative paths relative to the working directory.
func NewResolver(baseDir string) *Resolver {
	return &Resolver{
		baseDir: baseDir,
		cache:   make(map[string][]string),
	}
}

// Resolve returns the argument list stored at path.
func (r *Resolver) Resolve(path string) ([]string, error) {
	full := r.abs(path)
	if args, ok := r.cache[full]; ok {
		return slices.Clone(args), nil
	}

	value, err := document.Load(full)
	if err != nil {
		return nil, err
	}
	r.loads++

	args, err := extractArgs(full, value)
	if err != nil {
		return nil, err
	}
	r.cache[full] = args
	return slices.Clone(args), nil
}

// Loads reports how many files were read from disk.
func (r *Resolver) Loads() int {
	return r.loads
}

func (r *Resolver) abs(path string) string {
	if filepath.IsAbs(path) || r.baseDir == "" {
		return filepath.Clean(path)
	}
	return filepath.Join(r.baseDir, path)
}

func extractArgs(path string, value any) ([]string, error) {
	obj, ok := value.(map[string]any)
	if !ok {
		return nil, ferrors.MalformedBaseArgsError(fmt.Sprintf(
			"invalid baseArgs file %s: expected an object, found %s", path, document.TypeName(value))).
			WithContext("file", path).
			Build()
	}
	raw, present := obj["args"]
	if !present {
		return nil, ferrors.MalformedBaseArgsError(fmt.Sprintf(
			"invalid baseArgs file %s: missing 'args' array", path)).
			WithContext("file", path).
			Build()
	}
	args, ok := document.StringList(raw)
	if !ok {
		return nil, ferrors.MalformedBaseArgsError(fmt.Sprintf(
			"invalid baseArgs file %s: 'args' must be an array of strings", path)).
			WithContext("file", path).
			Build()
	}
	return args, nil
}
