package services

import (
	"context"

	"github.com/samber/lo"

	"twi-speech/internal/api/v1/dto"
	"twi-speech/internal/app/model"
)

// RecordingLister lists recordings
type RecordingLister interface {
	List(ctx context.Context, filter model.RecordingFilter) ([]model.Recording, error)
}

// Transcriber records transcriptions
type Transcriber interface {
	Transcribe(ctx context.Context, recordingID, text string, transcribedBy *string) (*model.Recording, error)
}

// RecordingPurger deletes every recording and its object
type RecordingPurger interface {
	PurgeAllRecordings(ctx context.Context, confirm bool) (*model.PurgeSummary, error)
}

// RecordingServiceImpl implements RecordingService
type RecordingServiceImpl struct {
	recordings  RecordingLister
	transcriber Transcriber
	purger      RecordingPurger
}

// NewRecordingService creates a new recording service
func NewRecordingService(recordings RecordingLister, transcriber Transcriber, purger RecordingPurger) RecordingService {
	return &RecordingServiceImpl{
		recordings:  recordings,
		transcriber: transcriber,
		purger:      purger,
	}
}

// ListRecordings returns a page of recordings, newest first
func (s *RecordingServiceImpl) ListRecordings(ctx context.Context, query dto.ListRecordingsQuery) ([]dto.RecordingResponse, error) {
	return s.list(ctx, query.Filter())
}

// ListSpontaneousRecordings returns a page of spontaneous recordings, newest first
func (s *RecordingServiceImpl) ListSpontaneousRecordings(ctx context.Context, query dto.ListRecordingsQuery) ([]dto.RecordingResponse, error) {
	filter := query.Filter()
	filter.SpontaneousOnly = true
	return s.list(ctx, filter)
}

func (s *RecordingServiceImpl) list(ctx context.Context, filter model.RecordingFilter) ([]dto.RecordingResponse, error) {
	recordings, err := s.recordings.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return lo.Map(recordings, func(r model.Recording, _ int) dto.RecordingResponse {
		return dto.NewRecordingResponse(r)
	}), nil
}

// UpdateTranscription sets the transcription of one recording
func (s *RecordingServiceImpl) UpdateTranscription(ctx context.Context, recordingID string, req *dto.UpdateTranscriptionRequest) (*dto.RecordingResponse, error) {
	rec, err := s.transcriber.Transcribe(ctx, recordingID, *req.Transcription, req.TranscribedBy)
	if err != nil {
		return nil, err
	}
	resp := dto.NewRecordingResponse(*rec)
	return &resp, nil
}

// DeleteAllRecordings purges recordings and their objects
func (s *RecordingServiceImpl) DeleteAllRecordings(ctx context.Context, confirm bool) (*dto.DeleteSummaryResponse, error) {
	summary, err := s.purger.PurgeAllRecordings(ctx, confirm)
	if summary == nil {
		return nil, err
	}
	return dto.NewDeleteSummaryResponse(summary), err
}
