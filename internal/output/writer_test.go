package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doc struct {
	Version        string           `json:"version"`
	Configurations []map[string]any `json:"configurations"`
}

func sample() doc {
	return doc{
		Version: "0.2.0",
		Configurations: []map[string]any{{
			"name":    "T1",
			"type":    "cppdbg",
			"program": "${workspaceFolder}/build/app",
			"args":    []any{"<input.txt", "-n", "3"},
			"port":    json.Number("9229"),
		}},
	}
}

func TestMarshal_StableAndReadable(t *testing.T) {
	data, err := Marshal(sample())
	require.NoError(t, err)

	want := `{
  "version": "0.2.0",
  "configurations": [
    {
      "args": [
        "<input.txt",
        "-n",
        "3"
      ],
      "name": "T1",
      "port": 9229,
      "program": "${workspaceFolder}/build/app",
      "type": "cppdbg"
    }
  ]
}
`
	assert.Equal(t, want, string(data))
}

func TestWriteFile_CreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".vscode", "nested", "launch.json")

	res, err := WriteFile(path, sample())
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, path, res.Path)

	// #nosec G304 -- path is controlled by test.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, res.Bytes, len(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestWriteFile_SkipsIdenticalContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "launch.json")

	first, err := WriteFile(path, sample())
	require.NoError(t, err)
	require.True(t, first.Changed)

	second, err := WriteFile(path, sample())
	require.NoError(t, err)
	assert.False(t, second.Changed)
}

func TestWriteFile_ReplacesDifferentContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "launch.json")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o600))

	res, err := WriteFile(path, sample())
	require.NoError(t, err)
	assert.True(t, res.Changed)

	// #nosec G304 -- path is controlled by test.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"version": "0.2.0"`)
}

func TestWriteFile_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	_, err := WriteFile(filepath.Join(dir, "launch.json"), sample())
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "launch.json", entries[0].Name())
}

func TestWriteFile_RequiresPath(t *testing.T) {
	_, err := WriteFile("", sample())
	assert.Error(t, err)
}
