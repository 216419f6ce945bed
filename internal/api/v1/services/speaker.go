package services

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"twi-speech/internal/api/v1/dto"
	"twi-speech/internal/app/model"
)

// SpeakerReader looks speakers up by code and lists them
type SpeakerReader interface {
	Get(ctx context.Context, participantCode string) (*model.Speaker, error)
	List(ctx context.Context, skip, limit int) ([]model.Speaker, error)
}

// ProgressReader computes speaker progress
type ProgressReader interface {
	Progress(ctx context.Context, speakerID string) model.ProgressResult
}

// SpeakerPurger deletes every speaker
type SpeakerPurger interface {
	PurgeAllSpeakers(ctx context.Context, confirm bool) (int64, error)
}

// SpeakerServiceImpl implements SpeakerService
type SpeakerServiceImpl struct {
	speakers SpeakerReader
	progress ProgressReader
	purger   SpeakerPurger
}

// NewSpeakerService creates a new speaker service
func NewSpeakerService(speakers SpeakerReader, progress ProgressReader, purger SpeakerPurger) SpeakerService {
	return &SpeakerServiceImpl{
		speakers: speakers,
		progress: progress,
		purger:   purger,
	}
}

// ListSpeakers returns a page of speakers, newest first, each with live progress
func (s *SpeakerServiceImpl) ListSpeakers(ctx context.Context, query dto.ListSpeakersQuery) ([]dto.SpeakerResponse, error) {
	speakers, err := s.speakers.List(ctx, query.Skip, query.Limit)
	if err != nil {
		return nil, err
	}
	return lo.Map(speakers, func(spk model.Speaker, _ int) dto.SpeakerResponse {
		return dto.NewSpeakerResponse(spk, s.progress.Progress(ctx, spk.ID))
	}), nil
}

// GetSpeaker returns one speaker by participant code
func (s *SpeakerServiceImpl) GetSpeaker(ctx context.Context, participantCode string) (*dto.SpeakerResponse, error) {
	spk, err := s.speakers.Get(ctx, participantCode)
	if err != nil {
		return nil, err
	}
	resp := dto.NewSpeakerResponse(*spk, s.progress.Progress(ctx, spk.ID))
	return &resp, nil
}

// DeleteAllSpeakers removes every speaker. Recordings are kept.
func (s *SpeakerServiceImpl) DeleteAllSpeakers(ctx context.Context, confirm bool) (*dto.DeleteConfirmationResponse, error) {
	deleted, err := s.purger.PurgeAllSpeakers(ctx, confirm)
	if err != nil {
		return nil, err
	}
	return &dto.DeleteConfirmationResponse{
		Message:      fmt.Sprintf("Successfully deleted %d speaker documents from the database.", deleted),
		DeletedCount: deleted,
	}, nil
}
