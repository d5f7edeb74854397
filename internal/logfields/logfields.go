package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyFile          = "file"
	KeyPath          = "path"
	KeyDir           = "dir"
	KeyTemplate      = "template"
	KeyConfiguration = "configuration"
	KeyIndex         = "index"
	KeyCount         = "count"
	KeyCategory      = "category"
	KeyDurationMS    = "duration_ms"
	KeyError         = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func File(f string) slog.Attr          { return slog.String(KeyFile, f) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func Dir(d string) slog.Attr           { return slog.String(KeyDir, d) }
func Template(name string) slog.Attr   { return slog.String(KeyTemplate, name) }
func Configuration(n string) slog.Attr { return slog.String(KeyConfiguration, n) }
func Index(i int) slog.Attr            { return slog.Int(KeyIndex, i) }
func Count(n int) slog.Attr            { return slog.Int(KeyCount, n) }
func Category(c string) slog.Attr      { return slog.String(KeyCategory, c) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
