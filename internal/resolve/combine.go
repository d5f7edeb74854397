package resolve

import (
	"maps"

	"git.home.luguber.info/inful/launchgen/internal/document"
)

// Overlay is the first combine step: a copy of the template with every
// override key written on top. name is injected last; args is left to
// ComposeArgs.
func Overlay(template map[string]any, overrides map[string]any, name string) map[string]any {
	out := document.CloneObject(template)
	if out == nil {
		out = make(map[string]any, len(overrides)+2)
	}
	for k, v := range overrides {
		switch k {
		case KeyName, KeyExtends, KeyEnabled, KeyBaseArgs, KeyArgs:
			continue
		}
		out[k] = document.Clone(v)
	}
	maps.DeleteFunc(out, func(k string, _ any) bool {
		return k == KeyExtends || k == KeyEnabled || k == KeyBaseArgs
	})
	out[KeyName] = name
	return out
}

// ComposeArgs is the second combine step: the lists are concatenated front to
// back with no reordering or deduplication. The result is never nil.
func ComposeArgs(lists ...[]string) []string {
	n := 0
	for _, l := range lists {
		n += len(l)
	}
	out := make([]string, 0, n)
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

func toValues(args []string) []any {
	out := make([]any, len(args))
	for i, a := range args {
		out[i] = a
	}
	return out
}
