package model

import "time"

// Speaker is one participant identity, keyed by an immutable participant code
type Speaker struct {
	ID              string     `json:"id"`
	ParticipantCode string     `json:"participant_code"`
	Dialect         *string    `json:"dialect"`
	AgeRange        *string    `json:"age_range"`
	Gender          *string    `json:"gender"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at"`
}

// SpeakerDescriptors carries the mutable descriptive fields.
// A nil field means "not supplied" and never overwrites a stored value.
type SpeakerDescriptors struct {
	Dialect  *string
	AgeRange *string
	Gender   *string
}

// IsEmpty reports whether no descriptor was supplied
func (d SpeakerDescriptors) IsEmpty() bool {
	return d.Dialect == nil && d.AgeRange == nil && d.Gender == nil
}

// Diff returns the descriptors that are supplied and differ from the stored speaker
func (d SpeakerDescriptors) Diff(s *Speaker) SpeakerDescriptors {
	var changed SpeakerDescriptors
	if differs(d.Dialect, s.Dialect) {
		changed.Dialect = d.Dialect
	}
	if differs(d.AgeRange, s.AgeRange) {
		changed.AgeRange = d.AgeRange
	}
	if differs(d.Gender, s.Gender) {
		changed.Gender = d.Gender
	}
	return changed
}

func differs(supplied, stored *string) bool {
	if supplied == nil {
		return false
	}
	return stored == nil || *stored != *supplied
}

// SpeakerWithProgress is a speaker annotated with live-computed progress
type SpeakerWithProgress struct {
	Speaker
	Progress ProgressResult `json:"progress"`
}
