package dto

import "twi-speech/internal/app/model"

// ProgressResponse is a speaker's completion state. Status is "unknown" when
// the counts could not be computed, in which case the counts are zero.
type ProgressResponse struct {
	Status                string `json:"status"`
	TotalRecordings       int    `json:"total_recordings"`
	ScriptedRecordings    int    `json:"scripted_recordings"`
	SpontaneousRecordings int    `json:"spontaneous_recordings"`
	TotalRequired         int    `json:"total_required"`
	IsComplete            bool   `json:"is_complete"`
}

// NewProgressResponse converts a progress result
func NewProgressResponse(p model.ProgressResult) ProgressResponse {
	return ProgressResponse{
		Status:                string(p.Status),
		TotalRecordings:       p.TotalRecordings,
		ScriptedRecordings:    p.ScriptedRecordings,
		SpontaneousRecordings: p.SpontaneousRecordings,
		TotalRequired:         p.TotalRequired,
		IsComplete:            p.IsComplete,
	}
}
