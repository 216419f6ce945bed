package services

import (
	"context"
	"io"

	"twi-speech/internal/api/v1/dto"
)

// UploadService accepts recording submissions
type UploadService interface {
	UploadAudio(ctx context.Context, req *dto.UploadAudioRequest) (*dto.UploadResponse, error)
}

// SpeakerService defines the interface for speaker operations
type SpeakerService interface {
	ListSpeakers(ctx context.Context, query dto.ListSpeakersQuery) ([]dto.SpeakerResponse, error)
	GetSpeaker(ctx context.Context, participantCode string) (*dto.SpeakerResponse, error)
	DeleteAllSpeakers(ctx context.Context, confirm bool) (*dto.DeleteConfirmationResponse, error)
}

// RecordingService defines the interface for recording operations.
// DeleteAllRecordings may return a partial summary together with an error.
type RecordingService interface {
	ListRecordings(ctx context.Context, query dto.ListRecordingsQuery) ([]dto.RecordingResponse, error)
	ListSpontaneousRecordings(ctx context.Context, query dto.ListRecordingsQuery) ([]dto.RecordingResponse, error)
	UpdateTranscription(ctx context.Context, recordingID string, req *dto.UpdateTranscriptionRequest) (*dto.RecordingResponse, error)
	DeleteAllRecordings(ctx context.Context, confirm bool) (*dto.DeleteSummaryResponse, error)
}

// ExportService defines the interface for spreadsheet exports
type ExportService interface {
	ExportSpeakers(ctx context.Context, writer io.Writer) error
	ExportRecordings(ctx context.Context, writer io.Writer) error
}
