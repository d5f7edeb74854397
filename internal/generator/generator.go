// Package generator runs the full resolution pipeline: it loads templates and
// configuration files, resolves every entry and assembles the launch
// document. It works on file paths handed in by the caller and never writes
// anything; writing is left to the output package.
package generator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/launchgen/internal/assemble"
	"git.home.luguber.info/inful/launchgen/internal/baseargs"
	"git.home.luguber.info/inful/launchgen/internal/diagnostics"
	"git.home.luguber.info/inful/launchgen/internal/document"
	ferrors "git.home.luguber.info/inful/launchgen/internal/foundation/errors"
	"git.home.luguber.info/inful/launchgen/internal/logfields"
	"git.home.luguber.info/inful/launchgen/internal/metrics"
	"git.home.luguber.info/inful/launchgen/internal/resolve"
	"git.home.luguber.info/inful/launchgen/internal/templates"
)

const defaultConcurrency = 8

// Input lists the files of one run. ConfigPaths order is the output order.
type Input struct {
	TemplatePaths []string
	ConfigPaths   []string
}

// Options tune a Generator.
type Options struct {
	Mode           diagnostics.Mode
	DisabledPolicy diagnostics.DisabledPolicy
	// SkipUnreadable turns missing or unparsable files into warnings.
	SkipUnreadable bool
	// BaseDir anchors relative baseArgs paths.
	BaseDir     string
	Concurrency int
	Logger      *slog.Logger
	Recorder    metrics.Recorder
}

// Result is the outcome of a run. Document is nil when the run failed.
type Result struct {
	Document  *assemble.Document
	Stats     assemble.Stats
	Templates []string
	Entries   []assemble.File
	Warnings  []error
	Errors    []error
	// TemplateSources maps template names to the file they came from.
	TemplateSources map[string]string
}

// Generator produces launch documents.
type Generator struct {
	opts Options
}

// New creates a Generator, filling unset options with defaults.
func New(opts Options) *Generator {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Recorder == nil {
		opts.Recorder = metrics.NoopRecorder{}
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}
	if opts.DisabledPolicy == "" {
		opts.DisabledPolicy = diagnostics.DefaultDisabledPolicy
	}
	return &Generator{opts: opts}
}

type loaded struct {
	value any
	err   error
}

// Generate runs the pipeline. The returned Result is never nil, so callers
// can report warnings even when err is non-nil.
func (g *Generator) Generate(ctx context.Context, in Input) (*Result, error) {
	log := g.opts.Logger
	report := diagnostics.NewReport(g.opts.Mode)
	result := &Result{}
	defer func() {
		result.Warnings = report.Warnings()
		result.Errors = report.Errors()
		g.recordDiagnostics(result)
	}()

	start := time.Now()
	tplDocs, cfgDocs, err := g.loadAll(ctx, in)
	if err != nil {
		return result, err
	}
	g.opts.Recorder.ObservePhaseDuration("load", time.Since(start))
	log.Debug("Loaded input files",
		slog.Int("templates", len(in.TemplatePaths)),
		slog.Int("configs", len(in.ConfigPaths)),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))

	store := templates.NewStore()
	for i, path := range in.TemplatePaths {
		if g.admit(report, tplDocs[i].err) {
			continue
		}
		if report.ShouldStop() {
			return result, report.Err()
		}
		if tplDocs[i].err != nil {
			continue
		}
		if err := store.Add(path, tplDocs[i].value); err != nil {
			// A wrongly shaped template counts as unreadable; a duplicate name does not.
			if ferrors.HasCategory(err, ferrors.CategoryParse) {
				if g.admit(report, err) {
					continue
				}
			} else {
				report.Add(err)
			}
			if report.ShouldStop() {
				return result, report.Err()
			}
			continue
		}
		log.Debug("Loaded template", logfields.Template(templates.NameFromPath(path)), logfields.File(path))
	}
	result.Templates = store.Names()
	result.TemplateSources = make(map[string]string, store.Len())
	for _, name := range result.Templates {
		result.TemplateSources[name], _ = store.Source(name)
	}
	g.opts.Recorder.SetTemplates(store.Len())

	if len(in.ConfigPaths) == 0 {
		report.Warn(ferrors.NotFoundError("no configuration files found; the launch document will be empty").Build())
	}

	files := make([]assemble.File, 0, len(in.ConfigPaths))
	for i, path := range in.ConfigPaths {
		if g.admit(report, cfgDocs[i].err) {
			continue
		}
		if report.ShouldStop() {
			return result, report.Err()
		}
		if cfgDocs[i].err != nil {
			continue
		}
		items, _ := cfgDocs[i].value.([]any)
		entries, errs := resolve.ParseEntries(path, items)
		for _, err := range errs {
			if report.Add(err) {
				return result, report.Err()
			}
		}
		log.Debug("Loaded configuration file", logfields.File(path), logfields.Count(len(entries)))
		files = append(files, assemble.File{Path: path, Entries: entries})
	}
	result.Entries = files

	assembleStart := time.Now()
	resolver := resolve.NewResolver(store, baseargs.NewResolver(g.opts.BaseDir))
	doc, stats, err := assemble.New(resolver, g.opts.DisabledPolicy, report).
		WithLogger(log).
		Assemble(files)
	g.opts.Recorder.ObservePhaseDuration("assemble", time.Since(assembleStart))
	result.Stats = stats
	if err != nil {
		return result, err
	}
	if err := report.Err(); err != nil {
		return result, err
	}

	if len(in.ConfigPaths) > 0 && stats.Enabled == 0 {
		report.Warn(ferrors.NewError(ferrors.CategoryConfig,
			fmt.Sprintf("no enabled configurations found in %d file(s)", len(in.ConfigPaths))).Build())
	}

	g.opts.Recorder.AddEntries(metrics.EntryEmitted, stats.Emitted)
	g.opts.Recorder.AddEntries(metrics.EntryDisabled, stats.Disabled)
	result.Document = doc
	return result, nil
}

// admit records a load error. It returns true when the file was skipped with
// a warning.
func (g *Generator) admit(report *diagnostics.Report, err error) bool {
	if err == nil {
		return false
	}
	if g.opts.SkipUnreadable {
		report.Warn(err)
		g.opts.Logger.Debug("Skipping unreadable file", logfields.Error(err))
		return true
	}
	report.Add(err)
	return false
}

// loadAll reads every input file concurrently. Results are stored by index so
// the caller sees them in enumeration order regardless of completion order.
func (g *Generator) loadAll(ctx context.Context, in Input) ([]loaded, []loaded, error) {
	tpls := make([]loaded, len(in.TemplatePaths))
	cfgs := make([]loaded, len(in.ConfigPaths))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.opts.Concurrency)
	for i, path := range in.TemplatePaths {
		i, path := i, path
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			v, err := document.Load(path)
			tpls[i] = loaded{value: v, err: err}
			return nil
		})
	}
	for i, path := range in.ConfigPaths {
		i, path := i, path
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			v, err := document.LoadArray(path)
			cfgs[i] = loaded{value: v, err: err}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}
	return tpls, cfgs, nil
}

func (g *Generator) recordDiagnostics(result *Result) {
	for _, w := range result.Warnings {
		g.opts.Recorder.IncDiagnostic(string(ferrors.SeverityWarning), string(ferrors.GetCategory(w)))
	}
	for _, e := range result.Errors {
		g.opts.Recorder.IncDiagnostic(string(ferrors.GetSeverity(e)), string(ferrors.GetCategory(e)))
	}
}
