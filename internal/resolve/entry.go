package resolve

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/launchgen/internal/document"
	ferrors "git.home.luguber.info/inful/launchgen/internal/foundation/errors"
)

// Reserved entry keys. They steer resolution and are never copied verbatim
// into the resolved configuration.
const (
	KeyName     = "name"
	KeyExtends  = "extends"
	KeyEnabled  = "enabled"
	KeyBaseArgs = "baseArgs"
	KeyArgs     = "args"
)

// Location identifies where an entry was declared.
type Location struct {
	File  string
	Index int
}

func (l Location) String() string {
	return fmt.Sprintf("%s[%d]", l.File, l.Index)
}

// Entry is one configuration entry from a configuration file.
type Entry struct {
	Name     string
	Extends  string
	Enabled  bool
	BaseArgs string
	Args     []string

	// Overrides holds every other key of the entry; these win over template keys.
	Overrides map[string]any

	Location Location
}

// ParseEntries converts a decoded configuration array. It returns the entries
// that parsed and one error per malformed element, in array order.
func ParseEntries(file string, items []any) ([]Entry, []error) {
	entries := make([]Entry, 0, len(items))
	var errs []error
	for i, item := range items {
		entry, err := ParseEntry(item, Location{File: file, Index: i})
		if err != nil {
			errs = append(errs, err)
			continue
		}
		entries = append(entries, entry)
	}
	return entries, errs
}

// ParseEntry validates the structure of a single decoded entry.
func ParseEntry(raw any, loc Location) (Entry, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return Entry{}, invalidField(loc, "", fmt.Sprintf("entry must be an object, found %s", document.TypeName(raw)))
	}

	entry := Entry{
		Overrides: make(map[string]any, len(obj)),
		Location:  loc,
	}

	var err error
	if entry.Name, err = requiredString(obj, KeyName, loc); err != nil {
		return Entry{}, err
	}
	if entry.Extends, err = requiredString(obj, KeyExtends, loc); err != nil {
		return Entry{}, err
	}
	if strings.ContainsAny(entry.Extends, `/\`) {
		return Entry{}, invalidField(loc, KeyExtends, fmt.Sprintf(
			"invalid extends value %q: only template names are allowed (e.g. \"cpp\", \"lldb\")", entry.Extends))
	}

	enabled, present := obj[KeyEnabled]
	if !present {
		return Entry{}, missingField(loc, KeyEnabled)
	}
	if entry.Enabled, ok = enabled.(bool); !ok {
		return Entry{}, invalidField(loc, KeyEnabled, fmt.Sprintf("'enabled' must be a boolean, found %s", document.TypeName(enabled)))
	}

	if raw, present := obj[KeyBaseArgs]; present {
		path, isString := raw.(string)
		if !isString || path == "" {
			return Entry{}, invalidField(loc, KeyBaseArgs, "'baseArgs' must be a non-empty path string")
		}
		entry.BaseArgs = path
	}

	if raw, present := obj[KeyArgs]; present {
		args, isList := document.StringList(raw)
		if !isList {
			return Entry{}, invalidField(loc, KeyArgs, "'args' must be an array of strings")
		}
		entry.Args = args
	}

	for k, v := range obj {
		switch k {
		case KeyName, KeyExtends, KeyEnabled, KeyBaseArgs, KeyArgs:
			continue
		}
		entry.Overrides[k] = document.Clone(v)
	}

	return entry, nil
}

func requiredString(obj map[string]any, key string, loc Location) (string, error) {
	raw, present := obj[key]
	if !present {
		return "", missingField(loc, key)
	}
	s, ok := raw.(string)
	if !ok {
		return "", invalidField(loc, key, fmt.Sprintf("'%s' must be a string, found %s", key, document.TypeName(raw)))
	}
	if strings.TrimSpace(s) == "" {
		return "", missingField(loc, key)
	}
	return s, nil
}

func missingField(loc Location, field string) error {
	return ferrors.MissingFieldError(fmt.Sprintf("%s: missing required field '%s'", loc, field)).
		WithContext("file", loc.File).
		WithContext("index", loc.Index).
		WithContext("field", field).
		Build()
}

func invalidField(loc Location, field, msg string) error {
	b := ferrors.InvalidFieldError(fmt.Sprintf("%s: %s", loc, msg)).
		WithContext("file", loc.File).
		WithContext("index", loc.Index)
	if field != "" {
		b = b.WithContext("field", field)
	}
	return b.Build()
}
