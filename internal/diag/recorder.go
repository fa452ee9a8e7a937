package diag

import "time"

// OutcomeLabel enumerates operation outcomes for counters.
type OutcomeLabel string

const (
	OutcomeSuccess OutcomeLabel = "success"
	OutcomeSkipped OutcomeLabel = "skipped"
	OutcomeFailed  OutcomeLabel = "failed"
)

// Recorder defines observability hooks for the layout engine.
type Recorder interface {
	ObserveLoadDuration(d time.Duration)
	IncLoad(outcome OutcomeLabel)
	IncRejected(check string)
	IncMigration(outcome OutcomeLabel)
	SetTemplatesVersion(v int)
	SetLayoutCount(n int)
	IncStorageError(op string)
	IncFallback(kind string)
	IncCycle(scope string)
}

// NoopRecorder is a Recorder that does nothing (default when diagnostics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveLoadDuration(time.Duration) {}
func (NoopRecorder) IncLoad(OutcomeLabel)              {}
func (NoopRecorder) IncRejected(string)                {}
func (NoopRecorder) IncMigration(OutcomeLabel)         {}
func (NoopRecorder) SetTemplatesVersion(int)           {}
func (NoopRecorder) SetLayoutCount(int)                {}
func (NoopRecorder) IncStorageError(string)            {}
func (NoopRecorder) IncFallback(string)                {}
func (NoopRecorder) IncCycle(string)                   {}
