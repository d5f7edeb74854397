// Package errors provides the classified error primitives used across launchgen.
//
// Every failure the generator can report carries a category that names what
// went wrong (a missing file, a malformed document, an unknown template, a
// duplicate configuration name, ...) and a severity that decides whether the
// run aborts or continues with a warning.
//
// Key features:
//   - ErrorCategory: what kind of problem occurred
//   - ErrorSeverity: fatal, error, warning or info
//   - ClassifiedError: structured error with category, severity and context
//   - ErrorBuilder: fluent API for creating classified errors
//   - CLIErrorAdapter: exit code mapping and user-facing formatting
//
// Example usage:
//
//	err := errors.UnknownTemplateError("unknown template \"cpp\"").
//		WithContext("configuration", "Run tests").
//		WithContext("file", path).
//		Build()
package errors
