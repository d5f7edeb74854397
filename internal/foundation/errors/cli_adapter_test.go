package errors

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil error", err: nil, expected: 0},
		{name: "unknown template", err: UnknownTemplateError("unknown template").Build(), expected: 2},
		{name: "duplicate name", err: DuplicateNameError("duplicate").Build(), expected: 2},
		{name: "missing field", err: MissingFieldError("missing name").Build(), expected: 2},
		{name: "not found", err: NotFoundError("missing").Build(), expected: 3},
		{name: "parse", err: ParseError("bad json").Build(), expected: 4},
		{name: "config", err: ConfigError("bad config").Build(), expected: 7},
		{name: "internal", err: InternalError("bug").Build(), expected: 10},
		{name: "filesystem", err: FileSystemError("write failed").Build(), expected: 11},
		{name: "unclassified", err: errors.New("plain"), expected: 1},
		{
			name:     "joined uses first error",
			err:      errors.Join(ParseError("bad json").Build(), NotFoundError("missing").Build()),
			expected: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, adapter.ExitCodeFor(tt.err))
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	err := UnknownTemplateError("unknown template \"cpp\"").
		WithContext("file", "configs/a.json").
		Build()

	t.Run("non-verbose", func(t *testing.T) {
		adapter := NewCLIErrorAdapter(false, slog.Default())
		assert.Equal(t, "Error: unknown template \"cpp\"", adapter.FormatError(err))
	})

	t.Run("verbose adds category and context", func(t *testing.T) {
		adapter := NewCLIErrorAdapter(true, slog.Default())
		assert.Equal(t,
			"Error: unknown template \"cpp\" [unknown_template] (file=configs/a.json)",
			adapter.FormatError(err))
	})

	t.Run("joined errors one per line", func(t *testing.T) {
		adapter := NewCLIErrorAdapter(false, slog.Default())
		joined := errors.Join(err, errors.New("plain"))
		assert.Equal(t, "Error: unknown template \"cpp\"\nError: plain", adapter.FormatError(joined))
	})

	t.Run("nil", func(t *testing.T) {
		adapter := NewCLIErrorAdapter(false, nil)
		assert.Empty(t, adapter.FormatError(nil))
	})
}

func TestSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelWarn, SlogLevel(SeverityWarning))
	assert.Equal(t, slog.LevelInfo, SlogLevel(SeverityInfo))
	assert.Equal(t, slog.LevelError, SlogLevel(SeverityFatal))
	assert.Equal(t, slog.LevelError, SlogLevel(SeverityError))
}
