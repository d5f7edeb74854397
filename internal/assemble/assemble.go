// Package assemble builds the launch document from parsed configuration files.
package assemble

import (
	"fmt"
	"log/slog"
	"strings"

	"git.home.luguber.info/inful/launchgen/internal/diagnostics"
	ferrors "git.home.luguber.info/inful/launchgen/internal/foundation/errors"
	"git.home.luguber.info/inful/launchgen/internal/logfields"
	"git.home.luguber.info/inful/launchgen/internal/resolve"
)

// LaunchVersion is the launch.json schema version written to every document.
const LaunchVersion = "0.2.0"

// Document is the generated launch.json.
type Document struct {
	Version        string                  `json:"version"`
	Configurations []resolve.Configuration `json:"configurations"`
}

// File is one configuration file's entries in array order.
type File struct {
	Path    string
	Entries []resolve.Entry
}

// Stats counts what an assembly pass saw.
type Stats struct {
	Files    int
	Entries  int
	Enabled  int
	Disabled int
	Emitted  int
}

// EntryResolver resolves a single entry.
type EntryResolver interface {
	Resolve(entry resolve.Entry) (resolve.Configuration, error)
}

// Assembler filters, resolves and orders entries.
type Assembler struct {
	resolver EntryResolver
	policy   diagnostics.DisabledPolicy
	report   *diagnostics.Report
	logger   *slog.Logger
}

// New creates an assembler that records problems in report.
func New(resolver EntryResolver, policy diagnostics.DisabledPolicy, report *diagnostics.Report) *Assembler {
	if policy == "" {
		policy = diagnostics.DefaultDisabledPolicy
	}
	return &Assembler{
		resolver: resolver,
		policy:   policy,
		report:   report,
		logger:   slog.Default(),
	}
}

// WithLogger sets the logger used for debug output.
func (a *Assembler) WithLogger(logger *slog.Logger) *Assembler {
	if logger != nil {
		a.logger = logger
	}
	return a
}

// Assemble resolves every enabled entry in file order, then array order. No
// document is returned when any fatal error was reported.
func (a *Assembler) Assemble(files []File) (*Document, Stats, error) {
	stats := Stats{Files: len(files)}
	for _, f := range files {
		stats.Entries += len(f.Entries)
		for _, e := range f.Entries {
			if e.Enabled {
				stats.Enabled++
			} else {
				stats.Disabled++
			}
		}
	}

	if a.checkDuplicateNames(files) {
		return nil, stats, a.report.Err()
	}

	doc := &Document{
		Version:        LaunchVersion,
		Configurations: make([]resolve.Configuration, 0, stats.Enabled),
	}

	for _, f := range files {
		for _, entry := range f.Entries {
			if !entry.Enabled {
				if a.checkDisabled(entry) {
					return nil, stats, a.report.Err()
				}
				continue
			}

			cfg, err := a.resolver.Resolve(entry)
			if err != nil {
				if a.report.Add(err) {
					return nil, stats, a.report.Err()
				}
				continue
			}
			a.logger.Debug("Resolved configuration",
				logfields.Configuration(entry.Name),
				logfields.Template(entry.Extends),
				logfields.File(entry.Location.File))
			doc.Configurations = append(doc.Configurations, cfg)
		}
	}

	if a.report.HasErrors() {
		return nil, stats, a.report.Err()
	}
	stats.Emitted = len(doc.Configurations)
	return doc, stats, nil
}

// checkDisabled applies the disabled-entry policy. It returns true when the
// run must stop.
func (a *Assembler) checkDisabled(entry resolve.Entry) bool {
	if a.policy == diagnostics.DisabledIgnore {
		a.logger.Debug("Skipping disabled configuration", logfields.Configuration(entry.Name))
		return false
	}

	_, err := a.resolver.Resolve(entry)
	if err == nil {
		a.logger.Debug("Disabled configuration is valid", logfields.Configuration(entry.Name))
		return false
	}

	if a.policy == diagnostics.DisabledFail {
		return a.report.Add(err)
	}
	a.report.WarnDisabled(err)
	return false
}

// checkDuplicateNames reports every name shared by two or more enabled
// entries. It returns true when the run must stop.
func (a *Assembler) checkDuplicateNames(files []File) bool {
	seen := make(map[string][]resolve.Location)
	var order []string
	for _, f := range files {
		for _, e := range f.Entries {
			if !e.Enabled {
				continue
			}
			if _, ok := seen[e.Name]; !ok {
				order = append(order, e.Name)
			}
			seen[e.Name] = append(seen[e.Name], e.Location)
		}
	}

	stop := false
	for _, name := range order {
		locs := seen[name]
		if len(locs) < 2 {
			continue
		}
		where := make([]string, len(locs))
		for i, l := range locs {
			where[i] = "  - " + l.String()
		}
		err := ferrors.DuplicateNameError(fmt.Sprintf(
			"duplicate configuration name %q found in:\n%s\neach configuration must have a unique name",
			name, strings.Join(where, "\n"))).
			WithContext("configuration", name).
			WithContext("locations", len(locs)).
			Build()
		if a.report.Add(err) {
			stop = true
			break
		}
	}
	return stop
}
