package metrics

import "time"

// OutcomeLabel enumerates manifest build outcomes for counters.
type OutcomeLabel string

const (
	OutcomeSuccess OutcomeLabel = "success"
	OutcomeEmpty   OutcomeLabel = "empty"
	OutcomeFailed  OutcomeLabel = "failed"
)

// Recorder defines observability hooks for manifest builds. Implementations
// may forward to Prometheus; NoopRecorder is the default.
type Recorder interface {
	ObserveBuildDuration(d time.Duration)
	IncBuildOutcome(outcome OutcomeLabel)
	SetDiscoveredItems(n int)
	IncExcluded(reason string)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveBuildDuration(time.Duration) {}
func (NoopRecorder) IncBuildOutcome(OutcomeLabel)       {}
func (NoopRecorder) SetDiscoveredItems(int)             {}
func (NoopRecorder) IncExcluded(string)                 {}
