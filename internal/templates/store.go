// Package templates holds the named debugger templates that configuration
// entries extend.
//
// A template is identified by its file base name without extension, so
// templates/cpp.json defines the template "cpp". Templates are immutable once
// added: Lookup always hands out a deep copy.
package templates

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"git.home.luguber.info/inful/launchgen/internal/document"
	ferrors "git.home.luguber.info/inful/launchgen/internal/foundation/errors"
)

// Template is the key/value mapping of one template file.
type Template map[string]any

// Store indexes templates by name.
type Store struct {
	templates map[string]Template
	sources   map[string]string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		templates: make(map[string]Template),
		sources:   make(map[string]string),
	}
}

// Load reads every path with the document loader and adds it to a new store.
func Load(paths []string) (*Store, error) {
	store := NewStore()
	for _, path := range paths {
		value, err := document.Load(path)
		if err != nil {
			return nil, err
		}
		if err := store.Add(path, value); err != nil {
			return nil, err
		}
	}
	return store, nil
}

// NameFromPath derives a template name from its file path.
func NameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Add registers an already decoded template document loaded from path.
func (s *Store) Add(path string, value any) error {
	obj, ok := value.(map[string]any)
	if !ok {
		return ferrors.ParseError(fmt.Sprintf("template %s must be an object, found %s", path, document.TypeName(value))).
			WithContext("file", path).
			Build()
	}

	if args, present := obj["args"]; present {
		if _, ok := document.StringList(args); !ok {
			return ferrors.ParseError(fmt.Sprintf("template %s: 'args' must be an array of strings", path)).
				WithContext("file", path).
				Build()
		}
	}

	name := NameFromPath(path)
	if existing, dup := s.sources[name]; dup {
		return ferrors.DuplicateTemplateError(fmt.Sprintf(
			"duplicate template name %q defined by %s and %s", name, existing, path)).
			WithContext("template", name).
			WithContext("files", []string{existing, path}).
			Build()
	}

	s.templates[name] = Template(document.CloneObject(obj))
	s.sources[name] = path
	return nil
}

// Lookup returns a copy of the named template.
func (s *Store) Lookup(name string) (Template, bool) {
	tpl, ok := s.templates[name]
	if !ok {
		return nil, false
	}
	return Template(document.CloneObject(tpl)), true
}

// Source returns the file a template was loaded from.
func (s *Store) Source(name string) (string, bool) {
	path, ok := s.sources[name]
	return path, ok
}

// Names returns the sorted template names.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.templates))
	for name := range s.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len reports the number of templates.
func (s *Store) Len() int {
	return len(s.templates)
}

// Args returns the template's own argument list, if any.
func (t Template) Args() []string {
	list, _ := document.StringList(t["args"])
	return list
}
