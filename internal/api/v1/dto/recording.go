package dto

import (
	"time"

	"twi-speech/internal/app/model"
)

// ListRecordingsQuery represents query parameters for listing recordings
type ListRecordingsQuery struct {
	Skip            int    `form:"skip,default=0" binding:"min=0"`
	Limit           int    `form:"limit,default=50" binding:"min=1,max=1000"`
	ParticipantCode string `form:"participant_code"`
}

// Filter converts the query to a ledger filter
func (q ListRecordingsQuery) Filter() model.RecordingFilter {
	return model.RecordingFilter{
		ParticipantCode: q.ParticipantCode,
		Skip:            q.Skip,
		Limit:           q.Limit,
	}
}

// UpdateTranscriptionRequest is the body of PATCH /recordings/:id/transcription.
// An empty transcription is accepted; a missing one is not.
type UpdateTranscriptionRequest struct {
	Transcription *string `json:"transcription" binding:"required"`
	TranscribedBy *string `json:"transcribed_by"`
}

// RecordingResponse is one recording's metadata
type RecordingResponse struct {
	ID                     string     `json:"id"`
	SpeakerID              string     `json:"speaker_id"`
	ParticipantCode        string     `json:"participant_code"`
	PromptID               string     `json:"prompt_id"`
	PromptText             string     `json:"prompt_text"`
	SessionID              *string    `json:"session_id"`
	FileURL                string     `json:"file_url"`
	ObjectKey              string     `json:"object_key"`
	FilenameOriginal       string     `json:"filename_original"`
	ContentType            *string    `json:"content_type"`
	SizeBytes              *int64     `json:"size_bytes"`
	RecordingDuration      *int64     `json:"recording_duration"`
	UploadedAt             time.Time  `json:"uploaded_at"`
	Transcription          *string    `json:"transcription"`
	TranscriptionStatus    string     `json:"transcription_status"`
	TranscribedBy          *string    `json:"transcribed_by"`
	TranscriptionUpdatedAt *time.Time `json:"transcription_updated_at"`
}

// NewRecordingResponse converts a recording
func NewRecordingResponse(r model.Recording) RecordingResponse {
	return RecordingResponse{
		ID:                     r.ID,
		SpeakerID:              r.SpeakerID,
		ParticipantCode:        r.ParticipantCode,
		PromptID:               r.PromptID,
		PromptText:             r.PromptText,
		SessionID:              r.SessionID,
		FileURL:                r.FileURL,
		ObjectKey:              r.ObjectKey,
		FilenameOriginal:       r.FilenameOriginal,
		ContentType:            r.ContentType,
		SizeBytes:              r.SizeBytes,
		RecordingDuration:      r.RecordingDuration,
		UploadedAt:             r.UploadedAt,
		Transcription:          r.Transcription,
		TranscriptionStatus:    string(r.TranscriptionStatus),
		TranscribedBy:          r.TranscribedBy,
		TranscriptionUpdatedAt: r.TranscriptionUpdatedAt,
	}
}

// DeleteSummaryResponse reports a recording purge
type DeleteSummaryResponse struct {
	Message          string   `json:"message"`
	DBDeletedCount   *int64   `json:"db_deleted_count"`
	R2AttemptedCount int      `json:"r2_attempted_count"`
	R2FailedKeys     []string `json:"r2_failed_keys"`
}

// NewDeleteSummaryResponse converts a purge summary
func NewDeleteSummaryResponse(s *model.PurgeSummary) *DeleteSummaryResponse {
	failed := s.R2FailedKeys
	if failed == nil {
		failed = []string{}
	}
	return &DeleteSummaryResponse{
		Message:          s.Message,
		DBDeletedCount:   s.DBDeletedCount,
		R2AttemptedCount: s.R2AttemptedCount,
		R2FailedKeys:     failed,
	}
}
