package dto

import (
	"mime/multipart"

	"twi-speech/internal/app/model"
)

// UploadAudioRequest is the multipart form of POST /upload/audio
type UploadAudioRequest struct {
	ParticipantCode   string                `form:"participant_code" binding:"required"`
	PromptID          string                `form:"prompt_id" binding:"required"`
	PromptText        string                `form:"prompt_text" binding:"required"`
	SessionID         *string               `form:"session_id"`
	Dialect           *string               `form:"dialect"`
	AgeRange          *string               `form:"age_range"`
	Gender            *string               `form:"gender"`
	RecordingDuration *int64                `form:"recording_duration"`
	File              *multipart.FileHeader `form:"file" binding:"required"`
}

// UploadResponse is returned with 201 after a successful upload
type UploadResponse struct {
	Message         string           `json:"message"`
	FileURL         string           `json:"file_url"`
	RecordingID     string           `json:"recording_db_id"`
	SpeakerID       string           `json:"speaker_db_id"`
	ParticipantCode string           `json:"participant_code"`
	PromptID        string           `json:"prompt_id"`
	Progress        ProgressResponse `json:"progress"`
}

// NewUploadResponse converts an ingest result
func NewUploadResponse(r *model.UploadResult) *UploadResponse {
	return &UploadResponse{
		Message:         r.Message,
		FileURL:         r.FileURL,
		RecordingID:     r.RecordingID,
		SpeakerID:       r.SpeakerID,
		ParticipantCode: r.ParticipantCode,
		PromptID:        r.PromptID,
		Progress:        NewProgressResponse(r.Progress),
	}
}
