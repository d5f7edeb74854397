package baseargs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/launchgen/internal/foundation/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "args/common.json", `{"args": ["-v", "--color"]}`)

	r := NewResolver(dir)
	args, err := r.Resolve("args/common.json")
	require.NoError(t, err)
	assert.Equal(t, []string{"-v", "--color"}, args)
}

func TestResolve_AbsolutePathIgnoresBaseDir(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "common.json", `{"args": ["-v"]}`)

	r := NewResolver(filepath.Join(dir, "elsewhere"))
	args, err := r.Resolve(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"-v"}, args)
}

func TestResolve_EmptyArgs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "none.json", `{"args": []}`)

	args, err := NewResolver(dir).Resolve("none.json")
	require.NoError(t, err)
	assert.Empty(t, args)
}

func TestResolve_Malformed(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"array.json":    `["-v"]`,
		"missing.json":  `{"flags": ["-v"]}`,
		"notlist.json":  `{"args": "-v"}`,
		"numbers.json":  `{"args": ["-v", 3]}`,
		"nullargs.json": `{"args": null}`,
	}
	r := NewResolver(dir)
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			writeFile(t, dir, name, content)
			_, err := r.Resolve(name)
			require.Error(t, err)
			assert.True(t, ferrors.HasCategory(err, ferrors.CategoryMalformedBaseArgs), "got %v", err)
		})
	}
}

func TestResolve_LoaderErrorsPropagate(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broken.json", `{"args": [`)
	r := NewResolver(dir)

	_, err := r.Resolve("broken.json")
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryParse))

	_, err = r.Resolve("absent.json")
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryNotFound))
}

func TestResolve_MemoizesPerPath(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "common.json", `{"args": ["-v"]}`)
	r := NewResolver(dir)

	first, err := r.Resolve("common.json")
	require.NoError(t, err)
	first[0] = "mutated"

	second, err := r.Resolve("./common.json")
	require.NoError(t, err)
	assert.Equal(t, []string{"-v"}, second)
	assert.Equal(t, 1, r.Loads())
}
