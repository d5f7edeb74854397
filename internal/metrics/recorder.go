package metrics

import "time"

// Outcome labels a finished run.
type Outcome string

const (
	OutcomeWritten   Outcome = "written"
	OutcomeUnchanged Outcome = "unchanged"
	OutcomeValidated Outcome = "validated"
	OutcomeFailed    Outcome = "failed"
)

// EntryState labels configuration entry counters.
type EntryState string

const (
	EntryEmitted  EntryState = "emitted"
	EntryDisabled EntryState = "disabled"
)

// Recorder defines observability hooks for generation runs.
type Recorder interface {
	ObservePhaseDuration(phase string, d time.Duration)
	ObserveRunDuration(d time.Duration)
	SetTemplates(n int)
	AddEntries(state EntryState, n int)
	IncDiagnostic(severity string, category string)
	IncOutcome(outcome Outcome)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObservePhaseDuration(string, time.Duration) {}
func (NoopRecorder) ObserveRunDuration(time.Duration)           {}
func (NoopRecorder) SetTemplates(int)                           {}
func (NoopRecorder) AddEntries(EntryState, int)                 {}
func (NoopRecorder) IncDiagnostic(string, string)               {}
func (NoopRecorder) IncOutcome(Outcome)                         {}
