package transcription

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "twi-speech/internal/app/errors"
	"twi-speech/internal/app/logging"
	"twi-speech/internal/app/metrics"
	"twi-speech/internal/app/model"
	"twi-speech/internal/app/utils"
)

// Updater is the ledger write used for transcriptions
type Updater interface {
	UpdateTranscription(ctx context.Context, id, text string, transcribedBy *string, at time.Time) (*model.Recording, error)
}

// Service attaches transcriptions to recordings
type Service struct {
	recordings Updater
	now        utils.Clock
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

// NewService creates a transcription service
func NewService(recordings Updater, clock utils.Clock, logger *zap.Logger, m *metrics.Metrics) *Service {
	if clock == nil {
		clock = utils.ClockIn(nil)
	}
	return &Service{
		recordings: recordings,
		now:        clock,
		logger:     logging.OrNop(logger).Named("transcription"),
		metrics:    m,
	}
}

// Transcribe sets the transcription of a recording and marks it transcribed.
// A malformed id is a validation error; an unknown id is ErrRecordingNotFound.
func (s *Service) Transcribe(ctx context.Context, recordingID, text string, transcribedBy *string) (*model.Recording, error) {
	id, err := uuid.Parse(strings.TrimSpace(recordingID))
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidIdentifier, "recording id %q", recordingID)
	}

	rec, err := s.recordings.UpdateTranscription(ctx, id.String(), text, transcribedBy, s.now())
	if err != nil {
		if !apperrors.IsNotFound(err) {
			s.logger.Error("failed to update transcription", zap.String("recording_id", id.String()), zap.Error(err))
		}
		return nil, err
	}

	s.metrics.Transcribed()
	s.logger.Info("transcription updated", zap.String("recording_id", rec.ID))
	return rec, nil
}
