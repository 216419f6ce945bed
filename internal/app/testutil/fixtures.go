package testutil

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"twi-speech/internal/app/model"
)

// FixedTime is the reference timestamp used by fixtures
var FixedTime = time.Date(2025, 3, 6, 9, 30, 0, 0, time.UTC)

// StringPtr returns a pointer to s
func StringPtr(s string) *string {
	return &s
}

// NewTestSpeaker builds a speaker with a fresh id
func NewTestSpeaker(code string) *model.Speaker {
	return &model.Speaker{
		ID:              uuid.NewString(),
		ParticipantCode: code,
		Dialect:         StringPtr("Asante"),
		AgeRange:        StringPtr("25-34"),
		Gender:          StringPtr("female"),
		CreatedAt:       FixedTime,
	}
}

// NewTestRecording builds a pending recording for speaker
func NewTestRecording(speaker *model.Speaker, promptID string, uploadedAt time.Time) *model.Recording {
	id := uuid.NewString()
	key := fmt.Sprintf("recordings/%s/%s_%s.wav", speaker.ParticipantCode, promptID, id)
	return &model.Recording{
		ID:                  id,
		SpeakerID:           speaker.ID,
		ParticipantCode:     speaker.ParticipantCode,
		PromptID:            promptID,
		PromptText:          "Maakye, wo ho te sɛn?",
		FileURL:             "https://pub-test.r2.dev/twi-recordings/" + key,
		ObjectKey:           key,
		FilenameOriginal:    promptID + ".wav",
		ContentType:         StringPtr("audio/wav"),
		UploadedAt:          uploadedAt,
		TranscriptionStatus: model.TranscriptionPending,
	}
}
