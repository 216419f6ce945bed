package model

import (
	"strings"
	"time"
)

// SpontaneousPromptPrefix marks prompts in the spontaneous category
const SpontaneousPromptPrefix = "Spontaneous_"

// UnknownObjectKey is the sentinel stored when no object key was recorded
const UnknownObjectKey = "unknown_key"

// TranscriptionStatus is the lifecycle state of a recording's transcription
type TranscriptionStatus string

const (
	TranscriptionPending     TranscriptionStatus = "pending"
	TranscriptionTranscribed TranscriptionStatus = "transcribed"
)

// Recording is the metadata of one submitted audio file.
// Identity fields never change after creation; only the transcription group mutates.
type Recording struct {
	ID                     string              `json:"id"`
	SpeakerID              string              `json:"speaker_id"`
	ParticipantCode        string              `json:"participant_code"`
	PromptID               string              `json:"prompt_id"`
	PromptText             string              `json:"prompt_text"`
	SessionID              *string             `json:"session_id"`
	FileURL                string              `json:"file_url"`
	ObjectKey              string              `json:"object_key"`
	FilenameOriginal       string              `json:"filename_original"`
	ContentType            *string             `json:"content_type"`
	SizeBytes              *int64              `json:"size_bytes"`
	RecordingDuration      *int64              `json:"recording_duration"` // milliseconds
	UploadedAt             time.Time           `json:"uploaded_at"`
	Transcription          *string             `json:"transcription"`
	TranscriptionStatus    TranscriptionStatus `json:"transcription_status"`
	TranscribedBy          *string             `json:"transcribed_by"`
	TranscriptionUpdatedAt *time.Time          `json:"transcription_updated_at"`
}

// IsSpontaneous reports whether the recording answers a spontaneous prompt
func (r *Recording) IsSpontaneous() bool {
	return IsSpontaneousPrompt(r.PromptID)
}

// IsSpontaneousPrompt reports whether promptID belongs to the spontaneous category
func IsSpontaneousPrompt(promptID string) bool {
	return strings.HasPrefix(promptID, SpontaneousPromptPrefix)
}

// RecordingKey is the id/object-key projection used by bulk purge
type RecordingKey struct {
	ID        string
	ObjectKey string
}

// HasObject reports whether the key points at a real blob
func (k RecordingKey) HasObject() bool {
	return IsDeletableKey(k.ObjectKey)
}

// IsDeletableKey reports whether an object key refers to something that can be deleted
func IsDeletableKey(key string) bool {
	return key != "" && key != UnknownObjectKey
}

// RecordingFilter selects recordings for listing
type RecordingFilter struct {
	ParticipantCode string
	SpontaneousOnly bool
	Skip            int
	Limit           int // 0 means no limit
}

// RecordingCounts are the per-category counts for one speaker
type RecordingCounts struct {
	Total       int
	Spontaneous int
}

// Scripted is the number of recordings outside the spontaneous category
func (c RecordingCounts) Scripted() int {
	return c.Total - c.Spontaneous
}
