package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObservePhaseDuration("load", 15*time.Millisecond)
	pr.ObserveRunDuration(40 * time.Millisecond)
	pr.SetTemplates(2)
	pr.AddEntries(EntryEmitted, 3)
	pr.AddEntries(EntryDisabled, 1)
	pr.IncDiagnostic("warning", "unknown_template")
	pr.IncOutcome(OutcomeWritten)

	mfs, err := reg.Gather()
	require.NoError(t, err)

	got := map[string]bool{}
	for _, mf := range mfs {
		got[mf.GetName()] = true
	}
	for _, name := range []string{
		"launchgen_phase_duration_seconds",
		"launchgen_run_duration_seconds",
		"launchgen_templates",
		"launchgen_configuration_entries_total",
		"launchgen_diagnostics_total",
		"launchgen_run_outcomes_total",
	} {
		assert.True(t, got[name], "missing metric %s", name)
	}
}

func TestPrometheusRecorder_NilRegistry(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	require.NotNil(t, pr.Registry())
	pr.IncOutcome(OutcomeFailed)
}

func TestPrometheusRecorder_WriteTextfile(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.SetTemplates(4)
	pr.AddEntries(EntryEmitted, 2)

	path := filepath.Join(t.TempDir(), "launchgen.prom")
	require.NoError(t, pr.WriteTextfile(path))

	// #nosec G304 -- path is controlled by test.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "launchgen_templates 4")
	assert.Contains(t, string(data), `launchgen_configuration_entries_total{state="emitted"} 2`)
}
