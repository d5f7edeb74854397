package errors

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
)

// CLIErrorAdapter handles error presentation and exit code determination for CLI applications.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
	out     io.Writer
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
		out:     os.Stderr,
	}
}

// ExitCodeFor determines the appropriate exit code for an error.
// When err joins several errors the code of the first one wins.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}

	if classified, ok := AsClassified(first(err)); ok {
		return a.exitCodeFromClassified(classified)
	}

	return 1
}

// exitCodeFromClassified maps ClassifiedError to exit codes.
func (a *CLIErrorAdapter) exitCodeFromClassified(err *ClassifiedError) int {
	switch err.Category() {
	case CategoryMissingField, CategoryInvalidField, CategoryUnknownTemplate,
		CategoryMalformedBaseArgs, CategoryDuplicateTemplate, CategoryDuplicateName:
		return 2 // Invalid input
	case CategoryNotFound:
		return 3
	case CategoryParse:
		return 4
	case CategoryConfig:
		return 7
	case CategoryInternal:
		return 10
	case CategoryFileSystem:
		return 11
	default:
		return 1
	}
}

// FormatError formats an error for user-friendly display, one line per joined error.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}

	errs := flatten(err)
	lines := make([]string, 0, len(errs))
	for _, e := range errs {
		if classified, ok := AsClassified(e); ok {
			lines = append(lines, a.formatClassified(classified))
			continue
		}
		lines = append(lines, fmt.Sprintf("Error: %v", e))
	}
	return strings.Join(lines, "\n")
}

// formatClassified formats a ClassifiedError for display.
func (a *CLIErrorAdapter) formatClassified(err *ClassifiedError) string {
	msg := fmt.Sprintf("Error: %s", err.Error())
	if !a.verbose || len(err.Context()) == 0 {
		return msg
	}

	keys := make([]string, 0, len(err.Context()))
	for k := range err.Context() {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, err.Context()[k]))
	}
	return fmt.Sprintf("%s [%s] (%s)", msg, err.Category(), strings.Join(parts, " "))
}

// HandleError processes an error and exits the program with appropriate code.
func (a *CLIErrorAdapter) HandleError(err error) {
	if err == nil {
		return
	}

	exitCode := a.ExitCodeFor(err)
	message := a.FormatError(err)

	if a.verbose {
		a.logError(err)
	}

	_, _ = fmt.Fprintf(a.out, "%s\n", message)
	os.Exit(exitCode)
}

// logError logs every error in the chain with its category.
func (a *CLIErrorAdapter) logError(err error) {
	for _, e := range flatten(err) {
		if classified, ok := AsClassified(e); ok {
			level := SlogLevel(classified.Severity())
			a.logger.LogAttrs(context.Background(), level, classified.Message(),
				slog.String("category", string(classified.Category())))
			continue
		}
		a.logger.Error("Unclassified error", "error", e)
	}
}

// SlogLevel converts an error severity to a slog level.
func SlogLevel(severity ErrorSeverity) slog.Level {
	switch severity {
	case SeverityInfo:
		return slog.LevelInfo
	case SeverityWarning:
		return slog.LevelWarn
	case SeverityError, SeverityFatal:
		return slog.LevelError
	default:
		return slog.LevelError
	}
}

// flatten expands errors created with errors.Join.
func flatten(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []error
		for _, e := range joined.Unwrap() {
			out = append(out, flatten(e)...)
		}
		return out
	}
	return []error{err}
}

func first(err error) error {
	if errs := flatten(err); len(errs) > 0 {
		return errs[0]
	}
	return err
}
