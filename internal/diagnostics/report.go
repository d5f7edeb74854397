// Package diagnostics collects the fatal errors and warnings produced during
// a generation run.
package diagnostics

import (
	"context"
	"errors"
	"log/slog"

	ferrors "git.home.luguber.info/inful/launchgen/internal/foundation/errors"
	"git.home.luguber.info/inful/launchgen/internal/logfields"
)

// Report accumulates problems found during a run. It is not safe for
// concurrent use; generation reports from its sequential phases only.
type Report struct {
	mode     Mode
	errs     []error
	warnings []error
}

// NewReport creates an empty report.
func NewReport(mode Mode) *Report {
	return &Report{mode: mode}
}

// Mode returns the report's mode.
func (r *Report) Mode() Mode {
	return r.mode
}

// Add files err as a warning or a fatal error based on its severity.
// It returns true when processing should stop.
func (r *Report) Add(err error) bool {
	if err == nil {
		return r.ShouldStop()
	}
	if ferrors.IsWarning(err) {
		r.warnings = append(r.warnings, err)
		return r.ShouldStop()
	}
	r.errs = append(r.errs, err)
	return r.ShouldStop()
}

// Warn records err as a warning regardless of its severity.
func (r *Report) Warn(err error) {
	if err == nil {
		return
	}
	r.warnings = append(r.warnings, ferrors.AsWarning(err))
}

// contextDisabled marks warnings raised while validating a disabled entry.
const contextDisabled = "disabled"

// WarnDisabled records err as a warning about a disabled entry. Such
// warnings are quiet by default; see LogWarnings.
func (r *Report) WarnDisabled(err error) {
	if err == nil {
		return
	}
	r.warnings = append(r.warnings, ferrors.AsWarning(err).WithContext(contextDisabled, true))
}

// FromDisabled reports whether err was recorded through WarnDisabled.
func FromDisabled(err error) bool {
	classified, ok := ferrors.AsClassified(err)
	if !ok {
		return false
	}
	disabled, _ := classified.Context().Get(contextDisabled)
	flag, _ := disabled.(bool)
	return flag
}

// ShouldStop reports whether a fail-fast run has hit a fatal error.
func (r *Report) ShouldStop() bool {
	return r.mode == FailFast && len(r.errs) > 0
}

// HasErrors reports whether any fatal error was recorded.
func (r *Report) HasErrors() bool {
	return len(r.errs) > 0
}

// Errors returns the recorded fatal errors in order.
func (r *Report) Errors() []error {
	return append([]error(nil), r.errs...)
}

// Warnings returns the recorded warnings in order.
func (r *Report) Warnings() []error {
	return append([]error(nil), r.warnings...)
}

// Err joins every fatal error, or returns nil when there are none.
func (r *Report) Err() error {
	switch len(r.errs) {
	case 0:
		return nil
	case 1:
		return r.errs[0]
	default:
		return errors.Join(r.errs...)
	}
}

// LogWarnings writes each recorded warning to logger at warn level,
// including warnings about disabled entries.
func (r *Report) LogWarnings(logger *slog.Logger) {
	LogWarnings(logger, r.warnings, true)
}

// LogWarnings writes warnings to logger, attaching the file and configuration
// name when the error carries them. Warnings about disabled entries are
// logged at debug level unless showDisabled is set, so they only surface in
// verbose runs.
func LogWarnings(logger *slog.Logger, warnings []error, showDisabled bool) {
	if logger == nil {
		logger = slog.Default()
	}
	for _, w := range warnings {
		level := slog.LevelWarn
		if !showDisabled && FromDisabled(w) {
			level = slog.LevelDebug
		}
		attrs := []slog.Attr{logfields.Category(string(ferrors.GetCategory(w)))}
		if classified, ok := ferrors.AsClassified(w); ok {
			if file, ok := classified.Context().GetString("file"); ok {
				attrs = append(attrs, logfields.File(file))
			}
			if name, ok := classified.Context().GetString("configuration"); ok {
				attrs = append(attrs, logfields.Configuration(name))
			}
		}
		logger.LogAttrs(context.Background(), level, w.Error(), attrs...)
	}
}
