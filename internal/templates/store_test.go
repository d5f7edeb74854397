package templates

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/launchgen/internal/foundation/errors"
)

func writeTemplate(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_IndexesByBaseName(t *testing.T) {
	dir := t.TempDir()
	cpp := writeTemplate(t, dir, "cpp.json", `{"type": "cppdbg", "request": "launch", "program": "X"}`)
	lldb := writeTemplate(t, dir, "lldb.yaml", "type: lldb\nrequest: launch\n")

	store, err := Load([]string{cpp, lldb})
	require.NoError(t, err)

	assert.Equal(t, 2, store.Len())
	assert.Equal(t, []string{"cpp", "lldb"}, store.Names())

	tpl, ok := store.Lookup("cpp")
	require.True(t, ok)
	assert.Equal(t, Template{"type": "cppdbg", "request": "launch", "program": "X"}, tpl)

	src, ok := store.Source("lldb")
	require.True(t, ok)
	assert.Equal(t, lldb, src)

	_, ok = store.Lookup("gdb")
	assert.False(t, ok)
}

func TestLoad_DuplicateTemplate(t *testing.T) {
	dir := t.TempDir()
	a := writeTemplate(t, dir, "cpp.json", `{"type": "cppdbg"}`)
	b := writeTemplate(t, dir, "cpp.yaml", "type: cppdbg\n")

	_, err := Load([]string{a, b})
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryDuplicateTemplate))
	assert.Contains(t, err.Error(), a)
	assert.Contains(t, err.Error(), b)
}

func TestLoad_PropagatesLoaderErrors(t *testing.T) {
	dir := t.TempDir()
	bad := writeTemplate(t, dir, "bad.json", `{"type": `)

	_, err := Load([]string{bad})
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryParse))

	_, err = Load([]string{filepath.Join(dir, "missing.json")})
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryNotFound))
}

func TestAdd_RejectsNonObjects(t *testing.T) {
	store := NewStore()
	err := store.Add("templates/list.json", []any{"a"})
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryParse))
}

func TestAdd_ValidatesTemplateArgs(t *testing.T) {
	store := NewStore()
	err := store.Add("templates/cpp.json", map[string]any{"args": "not-a-list"})
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryParse))

	require.NoError(t, store.Add("templates/gdb.json", map[string]any{"args": []any{"-q"}}))
	tpl, _ := store.Lookup("gdb")
	assert.Equal(t, []string{"-q"}, tpl.Args())
}

func TestLookup_ReturnsCopy(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.Add("cpp.json", map[string]any{
		"type":        "cppdbg",
		"environment": []any{map[string]any{"name": "A", "value": "1"}},
	}))

	tpl, _ := store.Lookup("cpp")
	tpl["type"] = "changed"
	tpl["environment"].([]any)[0].(map[string]any)["value"] = "2"

	again, _ := store.Lookup("cpp")
	assert.Equal(t, "cppdbg", again["type"])
	assert.Equal(t, "1", again["environment"].([]any)[0].(map[string]any)["value"])
}

func TestAdd_DoesNotAliasInput(t *testing.T) {
	store := NewStore()
	doc := map[string]any{"type": "cppdbg"}
	require.NoError(t, store.Add("cpp.json", doc))
	doc["type"] = "mutated"

	tpl, _ := store.Lookup("cpp")
	assert.Equal(t, "cppdbg", tpl["type"])
}

func TestNameFromPath(t *testing.T) {
	assert.Equal(t, "cpp", NameFromPath("/x/templates/cpp.json"))
	assert.Equal(t, "my.debug", NameFromPath("my.debug.json"))
	assert.Equal(t, "noext", NameFromPath("noext"))
}
