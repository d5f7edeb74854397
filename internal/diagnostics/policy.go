package diagnostics

import (
	"fmt"
	"strings"
)

// Mode controls whether a run stops at the first fatal error.
type Mode int

const (
	// FailFast stops at the first fatal error.
	FailFast Mode = iota
	// CollectAll keeps going so every problem is reported in one run.
	CollectAll
)

func (m Mode) String() string {
	if m == CollectAll {
		return "collect-all"
	}
	return "fail-fast"
}

// DisabledPolicy decides what happens when a disabled entry fails to resolve.
type DisabledPolicy string

const (
	// DisabledIgnore skips resolution of disabled entries entirely.
	DisabledIgnore DisabledPolicy = "ignore"
	// DisabledWarn resolves disabled entries and reports failures as warnings.
	DisabledWarn DisabledPolicy = "warn"
	// DisabledFail treats failures of disabled entries like enabled ones.
	DisabledFail DisabledPolicy = "fail"
)

// DefaultDisabledPolicy is used when nothing is configured.
const DefaultDisabledPolicy = DisabledWarn

// ParseDisabledPolicy parses a policy name. The empty string yields the default.
func ParseDisabledPolicy(s string) (DisabledPolicy, error) {
	switch p := DisabledPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DefaultDisabledPolicy, nil
	case DisabledIgnore, DisabledWarn, DisabledFail:
		return p, nil
	default:
		return "", fmt.Errorf("invalid disabled policy %q (expected ignore, warn or fail)", s)
	}
}
