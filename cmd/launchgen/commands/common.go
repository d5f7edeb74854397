// Package commands implements the launchgen subcommands.
package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/launchgen/internal/config"
	"git.home.luguber.info/inful/launchgen/internal/diagnostics"
	ferrors "git.home.luguber.info/inful/launchgen/internal/foundation/errors"
	"git.home.luguber.info/inful/launchgen/internal/generator"
	"git.home.luguber.info/inful/launchgen/internal/logfields"
	"git.home.luguber.info/inful/launchgen/internal/metrics"
	"git.home.luguber.info/inful/launchgen/internal/workspace"
)

// inputExtensions are the file types picked up from the templates and
// configs directories.
var inputExtensions = []string{".json", ".yaml", ".yml"}

// Global carries process-wide state into every command.
type Global struct {
	Context context.Context
	Logger  *slog.Logger
	Stdout  io.Writer
}

func (g *Global) ctx() context.Context {
	if g == nil || g.Context == nil {
		return context.Background()
	}
	return g.Context
}

func (g *Global) stdout() io.Writer {
	if g == nil || g.Stdout == nil {
		return os.Stdout
	}
	return g.Stdout
}

// CLI definition & global flags. Flags left empty fall back to the
// environment, the configuration file and the built-in defaults.
type CLI struct {
	Config    string           `short:"c" help:"Configuration file path (default: <root>/.launchgen.yaml)"`
	Root      string           `help:"Workspace root (default: enclosing git worktree, else the current directory)"`
	Verbose   bool             `short:"v" negatable:"" help:"Enable verbose logging and report every problem instead of stopping at the first"`
	LogFormat string           `name:"log-format" help:"Log output format (text, json)"`
	Version   kong.VersionFlag `name:"version" help:"Show version and exit"`

	Templates      string `short:"t" help:"Templates directory"`
	Configs        string `short:"C" help:"Configurations directory"`
	Output         string `short:"o" help:"Output launch.json path"`
	KeepGoing      bool   `name:"keep-going" short:"k" negatable:"" help:"Collect every error instead of stopping at the first"`
	DisabledPolicy string `name:"disabled-policy" help:"How to treat resolution failures of disabled entries (ignore, warn, fail)"`
	SkipUnreadable bool   `name:"skip-unreadable" negatable:"" help:"Skip missing, unparsable or wrongly shaped input files with a warning"`
	MetricsFile    string `name:"metrics-file" help:"Write run metrics in Prometheus text format to this file"`

	Generate GenerateCmd `cmd:"" default:"1" help:"Generate launch.json (default command)"`
	Validate ValidateCmd `cmd:"" help:"Resolve every configuration and report problems without writing"`
	List     ListCmd     `cmd:"" help:"List templates and configuration entries"`
	Init     InitCmd     `cmd:"" help:"Scaffold template and configuration directories"`

	// explicit holds the names of flags given on the command line.
	explicit map[string]bool
}

// logOutput receives all log output.
var logOutput io.Writer = os.Stderr

// AfterApply runs after flag parsing; setup logging once and remember which
// flags were set so that --no-<flag> can switch off a configured boolean.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply(kctx *kong.Context) error {
	c.explicit = make(map[string]bool)
	for _, el := range kctx.Path {
		if el.Flag != nil {
			c.explicit[el.Flag.Name] = true
		}
	}
	setupLogging(c.Verbose, c.LogFormat)
	return nil
}

func setupLogging(verbose bool, format string) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if f, _ := config.ParseLogFormat(format); f == config.LogFormatJSON {
		handler = slog.NewJSONHandler(logOutput, opts)
	} else {
		handler = slog.NewTextHandler(logOutput, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// Settings is the resolved view of flags, environment and configuration
// file. All paths are absolute.
type Settings struct {
	Root         string
	Config       *config.Config
	TemplatesDir string
	ConfigsDir   string
	Output       string
	MetricsFile  string
}

// Settings resolves the workspace root and the effective configuration.
func (c *CLI) Settings() (*Settings, error) {
	root, err := c.workspaceRoot()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(root, c.Config)
	if err != nil {
		return nil, err
	}
	if err := cfg.Apply(c.overrides()); err != nil {
		return nil, err
	}
	c.applyBoolFlags(cfg)
	if c.loggingChanged(cfg) {
		setupLogging(cfg.Verbose, cfg.LogFormat)
	}

	s := &Settings{
		Root:         root,
		Config:       cfg,
		TemplatesDir: workspace.Resolve(root, cfg.TemplatesDir),
		ConfigsDir:   workspace.Resolve(root, cfg.ConfigsDir),
		Output:       workspace.Resolve(root, cfg.Output),
		MetricsFile:  workspace.Resolve(root, cfg.MetricsFile),
	}
	slog.Debug("Resolved settings",
		slog.String("root", s.Root),
		logfields.Dir(s.TemplatesDir),
		slog.String("configs_dir", s.ConfigsDir),
		logfields.Path(s.Output),
		slog.String("config_file", cfg.File))
	return s, nil
}

// applyBoolFlags copies boolean flags given on the command line, including
// their --no- forms. Config.Apply cannot do this since false is a zero value.
func (c *CLI) applyBoolFlags(cfg *config.Config) {
	if c.explicit["verbose"] {
		cfg.Verbose = c.Verbose
	}
	if c.explicit["keep-going"] {
		cfg.KeepGoing = c.KeepGoing
	}
	if c.explicit["skip-unreadable"] {
		cfg.SkipUnreadable = c.SkipUnreadable
	}
}

// loggingChanged reports whether the effective configuration asks for a
// different logger than the one AfterApply installed from the flags.
func (c *CLI) loggingChanged(cfg *config.Config) bool {
	flagFormat, _ := config.ParseLogFormat(c.LogFormat)
	cfgFormat, _ := config.ParseLogFormat(cfg.LogFormat)
	return cfg.Verbose != c.Verbose || cfgFormat != flagFormat
}

func (c *CLI) workspaceRoot() (string, error) {
	start := c.Root
	if start == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to determine working directory").Fatal().Build()
		}
		start = wd
	}
	root, err := workspace.Root(start)
	if err != nil {
		return "", ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to determine workspace root").
			WithContext("dir", start).
			Fatal().
			Build()
	}
	return root, nil
}

// configPath is the configuration file a command refers to.
func (c *CLI) configPath(root string) string {
	if c.Config != "" {
		return c.Config
	}
	return filepath.Join(root, config.DefaultFileName)
}

func (c *CLI) overrides() *config.Config {
	return &config.Config{
		TemplatesDir:   c.Templates,
		ConfigsDir:     c.Configs,
		Output:         c.Output,
		LogFormat:      c.LogFormat,
		Verbose:        c.Verbose,
		DisabledPolicy: c.DisabledPolicy,
		KeepGoing:      c.KeepGoing,
		SkipUnreadable: c.SkipUnreadable,
		MetricsFile:    c.MetricsFile,
	}
}

// Input enumerates template and configuration files. A missing directory is
// a not_found error.
func (s *Settings) Input() (generator.Input, error) {
	tpls, err := workspace.ListFiles(s.TemplatesDir, inputExtensions...)
	if err != nil {
		return generator.Input{}, err
	}
	cfgs, err := workspace.ListFiles(s.ConfigsDir, inputExtensions...)
	if err != nil {
		return generator.Input{}, err
	}
	return generator.Input{TemplatePaths: tpls, ConfigPaths: cfgs}, nil
}

// run bundles one generator invocation with its metrics.
type run struct {
	settings *Settings
	recorder metrics.Recorder
	prom     *metrics.PrometheusRecorder
	started  time.Time
}

func newRun(s *Settings) *run {
	r := &run{settings: s, recorder: metrics.NoopRecorder{}, started: time.Now()}
	if s.MetricsFile != "" {
		r.prom = metrics.NewPrometheusRecorder(nil)
		r.recorder = r.prom
	}
	return r
}

// generate runs the generator over the configured directories. collect
// forces collect-all mode regardless of configuration.
func (r *run) generate(ctx context.Context, collect bool) (*generator.Result, error) {
	cfg := r.settings.Config
	opts := generator.Options{
		Mode:           cfg.Mode(),
		DisabledPolicy: cfg.Policy(),
		SkipUnreadable: cfg.SkipUnreadable,
		BaseDir:        r.settings.Root,
		Concurrency:    cfg.Concurrency,
		Logger:         slog.Default(),
		Recorder:       r.recorder,
	}
	if collect {
		opts.Mode = diagnostics.CollectAll
	}

	in, err := r.settings.Input()
	if err != nil {
		return &generator.Result{}, err
	}
	return generator.New(opts).Generate(ctx, in)
}

// finish records the outcome and flushes the metrics file when one is
// configured. A failure to write metrics is logged, never returned.
func (r *run) finish(outcome metrics.Outcome) {
	r.recorder.IncOutcome(outcome)
	r.recorder.ObserveRunDuration(time.Since(r.started))
	if r.prom == nil {
		return
	}
	if err := r.prom.WriteTextfile(r.settings.MetricsFile); err != nil {
		slog.Warn("Failed to write metrics file", logfields.File(r.settings.MetricsFile), logfields.Error(err))
		return
	}
	slog.Debug("Wrote metrics file", logfields.File(r.settings.MetricsFile))
}
