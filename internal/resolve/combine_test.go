package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverlay(t *testing.T) {
	tpl := map[string]any{
		"type":    "cppdbg",
		"request": "launch",
		"cwd":     "${workspaceFolder}",
		"args":    []any{"--from-template"},
	}
	out := Overlay(tpl, map[string]any{
		"cwd":         "${workspaceFolder}/test",
		"stopAtEntry": true,
	}, "T1")

	assert.Equal(t, map[string]any{
		"type":        "cppdbg",
		"request":     "launch",
		"cwd":         "${workspaceFolder}/test",
		"stopAtEntry": true,
		"args":        []any{"--from-template"},
		"name":        "T1",
	}, out)
	assert.Equal(t, "${workspaceFolder}", tpl["cwd"], "template must not be modified")
}

func TestOverlay_SkipsReservedKeys(t *testing.T) {
	out := Overlay(map[string]any{"type": "lldb", "enabled": false}, map[string]any{
		"extends":  "other",
		"enabled":  true,
		"baseArgs": "x.json",
		"args":     []any{"-x"},
		"name":     "ignored",
	}, "Real")

	assert.Equal(t, map[string]any{"type": "lldb", "name": "Real"}, out)
}

func TestOverlay_NestedValuesAreReplacedNotMerged(t *testing.T) {
	tpl := map[string]any{"env": map[string]any{"A": "1", "B": "2"}}
	out := Overlay(tpl, map[string]any{"env": map[string]any{"A": "x"}}, "T")
	assert.Equal(t, map[string]any{"A": "x"}, out["env"])
}

func TestComposeArgs(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, ComposeArgs([]string{"a"}, []string{"b"}, []string{"c"}))
	assert.Equal(t, []string{"x", "x"}, ComposeArgs([]string{"x"}, nil, []string{"x"}), "no deduplication")
	assert.Equal(t, []string{"-v", "-d"}, ComposeArgs(nil, []string{"-v"}, []string{"-d"}))

	empty := ComposeArgs(nil, nil, nil)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}
