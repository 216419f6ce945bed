package model

const (
	// DefaultRequiredRecordings is the per-speaker recording quota
	DefaultRequiredRecordings = 163
	// DefaultRequiredSpontaneous is the spontaneous share of the quota
	DefaultRequiredSpontaneous = 8
)

// ProgressStatus tells whether a progress value was actually computed
type ProgressStatus string

const (
	ProgressOK      ProgressStatus = "ok"
	ProgressUnknown ProgressStatus = "unknown"
)

// Progress is a speaker's derived completion state
type Progress struct {
	TotalRecordings       int  `json:"total_recordings"`
	ScriptedRecordings    int  `json:"scripted_recordings"`
	SpontaneousRecordings int  `json:"spontaneous_recordings"`
	TotalRequired         int  `json:"total_required"`
	IsComplete            bool `json:"is_complete"`
}

// ProgressResult is either a computed Progress or Unknown.
// An unknown result carries zero counts and must not be read as "incomplete".
type ProgressResult struct {
	Status ProgressStatus `json:"status"`
	Progress
}

// KnownProgress wraps a computed progress value
func KnownProgress(p Progress) ProgressResult {
	return ProgressResult{Status: ProgressOK, Progress: p}
}

// UnknownProgress is the degraded result used when progress could not be computed
func UnknownProgress(totalRequired int) ProgressResult {
	return ProgressResult{
		Status:   ProgressUnknown,
		Progress: Progress{TotalRequired: totalRequired},
	}
}

// Known reports whether the progress was computed
func (r ProgressResult) Known() bool {
	return r.Status == ProgressOK
}
