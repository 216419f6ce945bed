package completion

import (
	"context"

	"go.uber.org/zap"

	"twi-speech/internal/app/logging"
	"twi-speech/internal/app/metrics"
	"twi-speech/internal/app/model"
)

// RecordingCounter is the ledger query the tracker depends on
type RecordingCounter interface {
	CountBySpeaker(ctx context.Context, speakerID string) (model.RecordingCounts, error)
}

// Quota is the per-speaker recording requirement
type Quota struct {
	Total       int
	Spontaneous int
}

// DefaultQuota is 163 recordings of which 8 are spontaneous
var DefaultQuota = Quota{
	Total:       model.DefaultRequiredRecordings,
	Spontaneous: model.DefaultRequiredSpontaneous,
}

// Scripted is the scripted share of the quota
func (q Quota) Scripted() int {
	return q.Total - q.Spontaneous
}

// Evaluate applies the completion rule to counts. All three thresholds must
// hold so that a speaker cannot complete with one category alone.
func (q Quota) Evaluate(counts model.RecordingCounts) model.Progress {
	scripted := counts.Scripted()
	return model.Progress{
		TotalRecordings:       counts.Total,
		ScriptedRecordings:    scripted,
		SpontaneousRecordings: counts.Spontaneous,
		TotalRequired:         q.Total,
		IsComplete: counts.Total >= q.Total &&
			counts.Spontaneous >= q.Spontaneous &&
			scripted >= q.Scripted(),
	}
}

// Tracker derives speaker progress from the recording ledger
type Tracker struct {
	counter RecordingCounter
	quota   Quota
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewTracker creates a tracker
func NewTracker(counter RecordingCounter, quota Quota, logger *zap.Logger, m *metrics.Metrics) *Tracker {
	return &Tracker{
		counter: counter,
		quota:   quota,
		logger:  logging.OrNop(logger).Named("completion"),
		metrics: m,
	}
}

// Quota returns the configured quota
func (t *Tracker) Quota() Quota {
	return t.quota
}

// Progress computes a speaker's progress. A ledger failure yields an unknown
// result instead of an error so that callers are never blocked by it.
func (t *Tracker) Progress(ctx context.Context, speakerID string) model.ProgressResult {
	counts, err := t.counter.CountBySpeaker(ctx, speakerID)
	if err != nil {
		t.logger.Warn("progress unavailable",
			zap.String("speaker_id", speakerID),
			zap.Error(err),
		)
		t.metrics.ProgressUnknown()
		return model.UnknownProgress(t.quota.Total)
	}
	return model.KnownProgress(t.quota.Evaluate(counts))
}
