package summarizer

import "time"

// Attempt outcomes reported to the Recorder.
const (
	OutcomeSuccess     = "success"
	OutcomeEmpty       = "empty"
	OutcomeUnavailable = "unavailable"
	OutcomeFatal       = "fatal"
)

// Recorder receives operational measurements. Implementations must be safe for concurrent use.
type Recorder interface {
	ModelAttempt(model, outcome string)
	SummaryCompleted(chunks int, duration time.Duration)
	SummaryFailed(code string)
}

// NopRecorder discards everything.
type NopRecorder struct{}

// ModelAttempt implements Recorder.
func (NopRecorder) ModelAttempt(string, string) {}

// SummaryCompleted implements Recorder.
func (NopRecorder) SummaryCompleted(int, time.Duration) {}

// SummaryFailed implements Recorder.
func (NopRecorder) SummaryFailed(string) {}

var _ Recorder = NopRecorder{}
