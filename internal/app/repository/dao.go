package repository

import (
	"context"
	"time"

	"twi-speech/internal/app/model"
)

// SpeakerDAO persists speaker identities
type SpeakerDAO interface {
	// FindByCode returns ErrSpeakerNotFound when no speaker has the code
	FindByCode(ctx context.Context, participantCode string) (*model.Speaker, error)

	// Create returns ErrDuplicateSpeaker when the participant code is taken
	Create(ctx context.Context, speaker *model.Speaker) error

	// UpdateDescriptors writes the non-nil descriptors and returns the updated row
	UpdateDescriptors(ctx context.Context, id string, d model.SpeakerDescriptors, updatedAt time.Time) (*model.Speaker, error)

	List(ctx context.Context, skip, limit int) ([]model.Speaker, error)

	DeleteAll(ctx context.Context) (int64, error)
}

// RecordingDAO is the recording ledger
type RecordingDAO interface {
	Create(ctx context.Context, recording *model.Recording) error

	List(ctx context.Context, filter model.RecordingFilter) ([]model.Recording, error)

	// CountBySpeaker returns total and spontaneous counts in one aggregate query
	CountBySpeaker(ctx context.Context, speakerID string) (model.RecordingCounts, error)

	// UpdateTranscription returns ErrRecordingNotFound when no row matched
	UpdateTranscription(ctx context.Context, id, text string, transcribedBy *string, at time.Time) (*model.Recording, error)

	ListKeys(ctx context.Context) ([]model.RecordingKey, error)

	DeleteAll(ctx context.Context) (int64, error)
}
