package purge

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"go.uber.org/zap"

	apperrors "twi-speech/internal/app/errors"
	"twi-speech/internal/app/logging"
	"twi-speech/internal/app/metrics"
	"twi-speech/internal/app/model"
)

// RecordingLedger enumerates and clears recordings
type RecordingLedger interface {
	ListKeys(ctx context.Context) ([]model.RecordingKey, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// SpeakerStore clears speakers
type SpeakerStore interface {
	DeleteAll(ctx context.Context) (int64, error)
}

// BatchDeleter removes objects in one request and reports per-key success
type BatchDeleter interface {
	DeleteMany(ctx context.Context, keys []string) map[string]bool
}

// Orchestrator performs confirmed bulk deletions
type Orchestrator struct {
	recordings RecordingLedger
	speakers   SpeakerStore
	objects    BatchDeleter
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

// NewOrchestrator creates a purge orchestrator
func NewOrchestrator(recordings RecordingLedger, speakers SpeakerStore, objects BatchDeleter, logger *zap.Logger, m *metrics.Metrics) *Orchestrator {
	return &Orchestrator{
		recordings: recordings,
		speakers:   speakers,
		objects:    objects,
		logger:     logging.OrNop(logger).Named("purge"),
		metrics:    m,
	}
}

// PurgeAllRecordings deletes every stored object and then every recording row.
// The ledger is cleared regardless of object deletion results; keys that could
// not be deleted are returned in R2FailedKeys. If clearing the ledger fails the
// partial summary is returned together with the error.
func (o *Orchestrator) PurgeAllRecordings(ctx context.Context, confirm bool) (*model.PurgeSummary, error) {
	if !confirm {
		return nil, apperrors.ErrPurgeNotConfirmed
	}

	o.logger.Warn("deleting all recordings and stored objects")

	keys, err := o.recordings.ListKeys(ctx)
	if err != nil {
		return nil, err
	}

	summary := &model.PurgeSummary{
		R2AttemptedCount: len(keys),
		R2FailedKeys:     make([]string, 0),
	}
	if len(keys) == 0 {
		zero := int64(0)
		summary.Message = "No recordings found to delete."
		summary.DBDeletedCount = &zero
		return summary, nil
	}

	objectKeys := lo.Uniq(lo.FilterMap(keys, func(k model.RecordingKey, _ int) (string, bool) {
		return k.ObjectKey, k.HasObject()
	}))
	if len(objectKeys) > 0 {
		results := o.objects.DeleteMany(ctx, objectKeys)
		summary.R2FailedKeys = lo.Filter(objectKeys, func(key string, _ int) bool {
			return !results[key]
		})
	}
	o.metrics.PurgeObjects(len(objectKeys)-len(summary.R2FailedKeys), len(summary.R2FailedKeys))
	if len(summary.R2FailedKeys) > 0 {
		o.logger.Warn("some objects could not be deleted",
			zap.Int("failed", len(summary.R2FailedKeys)),
			zap.Strings("keys", summary.R2FailedKeys),
		)
	}

	deleted, err := o.recordings.DeleteAll(ctx)
	if err != nil {
		o.logger.Error("failed to clear recording ledger", zap.Error(err))
		summary.Message = fmt.Sprintf("Error during deletion: %v", err)
		return summary, err
	}
	summary.DBDeletedCount = &deleted
	o.metrics.PurgeRows(deleted)

	summary.Message = fmt.Sprintf("Delete process complete. DB Docs Deleted: %d.", deleted)
	if len(summary.R2FailedKeys) > 0 {
		summary.Message += fmt.Sprintf(" R2 Deletion Failures: %d.", len(summary.R2FailedKeys))
	} else {
		summary.Message += " All associated R2 objects processed successfully."
	}

	o.logger.Info("recording purge finished",
		zap.Int64("db_deleted", deleted),
		zap.Int("r2_attempted", summary.R2AttemptedCount),
		zap.Int("r2_failed", len(summary.R2FailedKeys)),
	)
	return summary, nil
}

// PurgeAllSpeakers deletes every speaker row. Recordings and objects are not touched.
func (o *Orchestrator) PurgeAllSpeakers(ctx context.Context, confirm bool) (int64, error) {
	if !confirm {
		return 0, apperrors.ErrPurgeNotConfirmed
	}

	o.logger.Warn("deleting all speakers")
	deleted, err := o.speakers.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	o.logger.Info("speaker purge finished", zap.Int64("deleted", deleted))
	return deleted, nil
}
