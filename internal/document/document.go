// Package document reads a single template, configuration or base-args file
// into the generic value model shared by the rest of launchgen.
//
// Decoded values are always one of: map[string]any, []any, string,
// json.Number, bool or nil. JSON is the canonical format; files ending in
// .yaml or .yml are decoded with yaml.v3 and normalized to the same model.
package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	ferrors "git.home.luguber.info/inful/launchgen/internal/foundation/errors"
)

// Load reads path and decodes its content.
func Load(path string) (any, error) {
	// #nosec G304 -- paths come from directory enumeration or user configuration.
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ferrors.NotFoundError(fmt.Sprintf("file not found: %s", path)).
				WithContext("file", path).
				Build()
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, fmt.Sprintf("failed to read %s", path)).
			Fatal().
			WithContext("file", path).
			Build()
	}

	value, err := Decode(data, FormatFor(path))
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryParse, fmt.Sprintf("failed to parse %s", path)).
			Fatal().
			WithContext("file", path).
			Build()
	}
	return value, nil
}

// LoadObject loads path and requires the top-level value to be an object.
func LoadObject(path string) (map[string]any, error) {
	value, err := Load(path)
	if err != nil {
		return nil, err
	}
	obj, ok := value.(map[string]any)
	if !ok {
		return nil, ferrors.ParseError(fmt.Sprintf("%s must contain an object, found %s", path, TypeName(value))).
			WithContext("file", path).
			Build()
	}
	return obj, nil
}

// LoadArray loads path and requires the top-level value to be an array.
func LoadArray(path string) ([]any, error) {
	value, err := Load(path)
	if err != nil {
		return nil, err
	}
	switch v := value.(type) {
	case []any:
		return v, nil
	case map[string]any:
		return nil, ferrors.ParseError(fmt.Sprintf(
			"%s must contain an array of configuration objects; wrap single objects in [ ]", path)).
			WithContext("file", path).
			Build()
	default:
		return nil, ferrors.ParseError(fmt.Sprintf(
			"%s must contain an array of configuration objects, found %s", path, TypeName(value))).
			WithContext("file", path).
			Build()
	}
}

// Format identifies the syntax of a document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor picks the decoder from the file extension. Anything that is not
// YAML is treated as JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode parses data in the given format.
func Decode(data []byte, format Format) (any, error) {
	if format == FormatYAML {
		return decodeYAML(data)
	}
	return decodeJSON(data)
}

func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("document is empty")
		}
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level value")
	}
	return value, nil
}

// TypeName describes a decoded value for error messages.
func TypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case json.Number:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
