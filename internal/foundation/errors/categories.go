package errors

import "maps"

// ErrorCategory represents the kind of problem an error reports.
type ErrorCategory string

const (
	// CategoryNotFound means a referenced file or directory does not exist.
	CategoryNotFound ErrorCategory = "not_found"
	// CategoryParse means a document could not be decoded or has the wrong shape.
	CategoryParse ErrorCategory = "parse"

	// Resolution errors raised while turning configuration entries into output.
	CategoryMissingField      ErrorCategory = "missing_field"
	CategoryInvalidField      ErrorCategory = "invalid_field"
	CategoryUnknownTemplate   ErrorCategory = "unknown_template"
	CategoryMalformedBaseArgs ErrorCategory = "malformed_base_args"
	CategoryDuplicateTemplate ErrorCategory = "duplicate_template"
	CategoryDuplicateName     ErrorCategory = "duplicate_name"

	// Ambient categories for the surrounding tool.
	CategoryConfig     ErrorCategory = "config"
	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryInternal   ErrorCategory = "internal"
)

// ErrorSeverity indicates the impact level of an error.
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Aborts the run, nothing is written
	SeverityError   ErrorSeverity = "error"   // Fails the current operation
	SeverityWarning ErrorSeverity = "warning" // Reported, the run continues
	SeverityInfo    ErrorSeverity = "info"    // Informational, no impact
)

// ErrorContext provides structured context for errors.
type ErrorContext map[string]any

// Set adds or updates a context value.
func (c ErrorContext) Set(key string, value any) ErrorContext {
	if c == nil {
		c = make(ErrorContext)
	}
	c[key] = value
	return c
}

// Get retrieves a context value.
func (c ErrorContext) Get(key string) (any, bool) {
	if c == nil {
		return nil, false
	}
	value, exists := c[key]
	return value, exists
}

// GetString retrieves a string context value.
func (c ErrorContext) GetString(key string) (string, bool) {
	if value, exists := c.Get(key); exists {
		if str, ok := value.(string); ok {
			return str, true
		}
	}
	return "", false
}

// Merge combines two contexts, with other taking precedence.
func (c ErrorContext) Merge(other ErrorContext) ErrorContext {
	if c == nil {
		return other
	}
	if other == nil {
		return c
	}
	result := make(ErrorContext)
	maps.Copy(result, c)
	maps.Copy(result, other)
	return result
}
