package dto

import (
	"time"

	"twi-speech/internal/app/model"
)

// ListSpeakersQuery represents query parameters for listing speakers
type ListSpeakersQuery struct {
	Skip  int `form:"skip,default=0" binding:"min=0"`
	Limit int `form:"limit,default=100" binding:"min=1,max=1000"`
}

// SpeakerResponse is a speaker with live progress
type SpeakerResponse struct {
	ID              string           `json:"id"`
	ParticipantCode string           `json:"participant_code"`
	Dialect         *string          `json:"dialect"`
	AgeRange        *string          `json:"age_range"`
	Gender          *string          `json:"gender"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       *time.Time       `json:"updated_at"`
	Progress        ProgressResponse `json:"progress"`
}

// NewSpeakerResponse converts a speaker and its progress
func NewSpeakerResponse(s model.Speaker, p model.ProgressResult) SpeakerResponse {
	return SpeakerResponse{
		ID:              s.ID,
		ParticipantCode: s.ParticipantCode,
		Dialect:         s.Dialect,
		AgeRange:        s.AgeRange,
		Gender:          s.Gender,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
		Progress:        NewProgressResponse(p),
	}
}

// DeleteConfirmationResponse reports a speaker purge
type DeleteConfirmationResponse struct {
	Message      string `json:"message"`
	DeletedCount int64  `json:"deleted_count"`
}
