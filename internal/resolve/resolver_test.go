package resolve

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/launchgen/internal/foundation/errors"
	"git.home.luguber.info/inful/launchgen/internal/templates"
)

type fakeArgs struct {
	files map[string][]string
	err   error
	calls []string
}

func (f *fakeArgs) Resolve(path string) ([]string, error) {
	f.calls = append(f.calls, path)
	if f.err != nil {
		return nil, f.err
	}
	args, ok := f.files[path]
	if !ok {
		return nil, ferrors.NotFoundError("file not found: " + path).Build()
	}
	return args, nil
}

func newStore(t *testing.T, tpls map[string]map[string]any) *templates.Store {
	t.Helper()
	store := templates.NewStore()
	for name, tpl := range tpls {
		require.NoError(t, store.Add(name+".json", tpl))
	}
	return store
}

func cppStore(t *testing.T) *templates.Store {
	return newStore(t, map[string]map[string]any{
		"cpp": {"type": "cppdbg", "request": "launch", "program": "X"},
	})
}

func TestResolve_BasicScenario(t *testing.T) {
	r := NewResolver(cppStore(t), &fakeArgs{})

	cfg, err := r.Resolve(Entry{Name: "T1", Extends: "cpp", Enabled: true, Args: []string{"-x"}})
	require.NoError(t, err)

	assert.Equal(t, Configuration{
		"type":    "cppdbg",
		"request": "launch",
		"program": "X",
		"name":    "T1",
		"args":    []any{"-x"},
	}, cfg)
	assert.Equal(t, "T1", cfg.Name())
}

func TestResolve_BaseArgsPrecedeEntryArgs(t *testing.T) {
	args := &fakeArgs{files: map[string][]string{"common.json": {"-v"}}}
	r := NewResolver(cppStore(t), args)

	cfg, err := r.Resolve(Entry{Name: "T", Extends: "cpp", Enabled: true, BaseArgs: "common.json", Args: []string{"-d"}})
	require.NoError(t, err)
	assert.Equal(t, []any{"-v", "-d"}, cfg["args"])
	assert.Equal(t, []string{"common.json"}, args.calls)
}

func TestResolve_TemplateArgsComeFirst(t *testing.T) {
	store := newStore(t, map[string]map[string]any{
		"cpp": {"type": "cppdbg", "args": []any{"a"}},
	})
	r := NewResolver(store, &fakeArgs{files: map[string][]string{"b.json": {"b"}}})

	cfg, err := r.Resolve(Entry{Name: "T", Extends: "cpp", BaseArgs: "b.json", Args: []string{"c"}})
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b", "c"}, cfg["args"])
}

func TestResolve_ArgsDefaultToEmpty(t *testing.T) {
	r := NewResolver(cppStore(t), &fakeArgs{})

	cfg, err := r.Resolve(Entry{Name: "T", Extends: "cpp", Enabled: true})
	require.NoError(t, err)
	assert.Equal(t, []any{}, cfg["args"])
}

func TestResolve_RoundTrip(t *testing.T) {
	tpl := map[string]any{
		"type":        "cppdbg",
		"request":     "launch",
		"stopAtEntry": false,
		"environment": []any{},
		"setupCommands": []any{
			map[string]any{"text": "-enable-pretty-printing", "ignoreFailures": true},
		},
	}
	r := NewResolver(newStore(t, map[string]map[string]any{"cpp": tpl}), &fakeArgs{})

	cfg, err := r.Resolve(Entry{Name: "Plain", Extends: "cpp", Enabled: true, Overrides: map[string]any{}})
	require.NoError(t, err)

	want := Configuration{}
	for k, v := range tpl {
		want[k] = v
	}
	want["name"] = "Plain"
	want["args"] = []any{}
	assert.Equal(t, want, cfg)
}

func TestResolve_OverridesWin(t *testing.T) {
	r := NewResolver(cppStore(t), &fakeArgs{})

	cfg, err := r.Resolve(Entry{
		Name:      "T",
		Extends:   "cpp",
		Overrides: map[string]any{"program": "Y", "cwd": "/tmp"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Y", cfg["program"])
	assert.Equal(t, "/tmp", cfg["cwd"])

	again, err := r.Resolve(Entry{Name: "U", Extends: "cpp"})
	require.NoError(t, err)
	assert.Equal(t, "X", again["program"], "overrides must not leak into the template")
}

func TestResolve_UnknownTemplate(t *testing.T) {
	r := NewResolver(cppStore(t), &fakeArgs{})

	_, err := r.Resolve(Entry{Name: "T", Extends: "lldb", Location: Location{File: "c.json"}})
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryUnknownTemplate))
	assert.Contains(t, err.Error(), `unknown template "lldb"`)
	assert.Contains(t, err.Error(), "available: cpp")

	classified, _ := ferrors.AsClassified(err)
	name, _ := classified.Context().GetString("configuration")
	assert.Equal(t, "T", name)
}

func TestResolve_UnknownTemplateWithEmptyStore(t *testing.T) {
	r := NewResolver(templates.NewStore(), &fakeArgs{})
	_, err := r.Resolve(Entry{Name: "T", Extends: "cpp"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no templates loaded")
}

func TestResolve_BaseArgsErrorsPropagate(t *testing.T) {
	malformed := ferrors.MalformedBaseArgsError("invalid baseArgs file x.json: missing 'args' array").Build()
	r := NewResolver(cppStore(t), &fakeArgs{err: malformed})

	_, err := r.Resolve(Entry{Name: "T", Extends: "cpp", BaseArgs: "x.json"})
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryMalformedBaseArgs))

	classified, _ := ferrors.AsClassified(err)
	name, _ := classified.Context().GetString("configuration")
	assert.Equal(t, "T", name)
}

func TestResolve_UnclassifiedBaseArgsError(t *testing.T) {
	r := NewResolver(cppStore(t), &fakeArgs{err: errors.New("boom")})

	_, err := r.Resolve(Entry{Name: "T", Extends: "cpp", BaseArgs: "x.json"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `configuration "T"`)
	assert.Contains(t, err.Error(), "boom")
}
