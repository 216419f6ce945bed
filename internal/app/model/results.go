package model

// UploadResult is returned from a successful submission
type UploadResult struct {
	Message         string         `json:"message"`
	FileURL         string         `json:"file_url"`
	RecordingID     string         `json:"recording_db_id"`
	SpeakerID       string         `json:"speaker_db_id"`
	ParticipantCode string         `json:"participant_code"`
	PromptID        string         `json:"prompt_id"`
	Progress        ProgressResult `json:"progress"`
}

// PurgeSummary reports the outcome of a bulk recording purge.
// R2FailedKeys is the only signal left for follow-up remediation.
type PurgeSummary struct {
	Message          string   `json:"message"`
	DBDeletedCount   *int64   `json:"db_deleted_count"`
	R2AttemptedCount int      `json:"r2_attempted_count"`
	R2FailedKeys     []string `json:"r2_failed_keys"`
}
