// Package resolve turns configuration entries into resolved launch
// configurations by combining them with their template and base-args file.
package resolve

import (
	"fmt"
	"strings"

	ferrors "git.home.luguber.info/inful/launchgen/internal/foundation/errors"
	"git.home.luguber.info/inful/launchgen/internal/templates"
)

// TemplateSource looks up templates by name.
type TemplateSource interface {
	Lookup(name string) (templates.Template, bool)
	Names() []string
}

// ArgsSource loads base-args files.
type ArgsSource interface {
	Resolve(path string) ([]string, error)
}

// Configuration is a fully merged launch configuration.
type Configuration map[string]any

// Name returns the configuration's name.
func (c Configuration) Name() string {
	name, _ := c[KeyName].(string)
	return name
}

// Resolver combines entries with templates and base-args files.
type Resolver struct {
	templates TemplateSource
	baseArgs  ArgsSource
}

// NewResolver creates a resolver.
func NewResolver(templates TemplateSource, baseArgs ArgsSource) *Resolver {
	return &Resolver{templates: templates, baseArgs: baseArgs}
}

// Resolve produces the configuration for entry. The result's args are
// template args, then base args, then entry args.
func (r *Resolver) Resolve(entry Entry) (Configuration, error) {
	tpl, ok := r.templates.Lookup(entry.Extends)
	if !ok {
		return nil, r.unknownTemplate(entry)
	}

	var base []string
	if entry.BaseArgs != "" {
		args, err := r.baseArgs.Resolve(entry.BaseArgs)
		if err != nil {
			return nil, withEntry(err, entry)
		}
		base = args
	}

	merged := Overlay(tpl, entry.Overrides, entry.Name)
	merged[KeyArgs] = toValues(ComposeArgs(tpl.Args(), base, entry.Args))
	return Configuration(merged), nil
}

func (r *Resolver) unknownTemplate(entry Entry) error {
	msg := fmt.Sprintf("%s: configuration %q extends unknown template %q", entry.Location, entry.Name, entry.Extends)
	if names := r.templates.Names(); len(names) > 0 {
		msg += fmt.Sprintf(" (available: %s)", strings.Join(names, ", "))
	} else {
		msg += " (no templates loaded)"
	}
	return ferrors.UnknownTemplateError(msg).
		WithContext("file", entry.Location.File).
		WithContext("index", entry.Location.Index).
		WithContext("configuration", entry.Name).
		WithContext("template", entry.Extends).
		Build()
}

// withEntry attaches the entry's identity to a classified error from a collaborator.
func withEntry(err error, entry Entry) error {
	classified, ok := ferrors.AsClassified(err)
	if !ok {
		return fmt.Errorf("configuration %q (%s): %w", entry.Name, entry.Location, err)
	}
	return classified.
		WithContext("configuration", entry.Name).
		WithContext("entry", entry.Location.String())
}
