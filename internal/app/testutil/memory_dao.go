package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	apperrors "twi-speech/internal/app/errors"
	"twi-speech/internal/app/model"
	"twi-speech/internal/app/repository"
)

// MemorySpeakerDAO is an in-memory repository.SpeakerDAO.
// ErrorMap injects a failure per method name.
type MemorySpeakerDAO struct {
	mu       sync.Mutex
	speakers map[string]*model.Speaker // participant code -> speaker

	ErrorMap  map[string]error
	CallCount map[string]int
}

var _ repository.SpeakerDAO = (*MemorySpeakerDAO)(nil)

// NewMemorySpeakerDAO creates an empty store
func NewMemorySpeakerDAO() *MemorySpeakerDAO {
	return &MemorySpeakerDAO{
		speakers:  make(map[string]*model.Speaker),
		ErrorMap:  make(map[string]error),
		CallCount: make(map[string]int),
	}
}

func (m *MemorySpeakerDAO) call(method string) error {
	m.CallCount[method]++
	return m.ErrorMap[method]
}

func (m *MemorySpeakerDAO) FindByCode(ctx context.Context, participantCode string) (*model.Speaker, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.call("FindByCode"); err != nil {
		return nil, err
	}
	s, ok := m.speakers[participantCode]
	if !ok {
		return nil, apperrors.ErrSpeakerNotFound
	}
	copied := *s
	return &copied, nil
}

func (m *MemorySpeakerDAO) Create(ctx context.Context, speaker *model.Speaker) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.call("Create"); err != nil {
		return err
	}
	if _, ok := m.speakers[speaker.ParticipantCode]; ok {
		return repository.ErrDuplicateSpeaker
	}
	copied := *speaker
	m.speakers[speaker.ParticipantCode] = &copied
	return nil
}

func (m *MemorySpeakerDAO) UpdateDescriptors(ctx context.Context, id string, d model.SpeakerDescriptors, updatedAt time.Time) (*model.Speaker, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.call("UpdateDescriptors"); err != nil {
		return nil, err
	}
	for _, s := range m.speakers {
		if s.ID != id {
			continue
		}
		if d.Dialect != nil {
			s.Dialect = d.Dialect
		}
		if d.AgeRange != nil {
			s.AgeRange = d.AgeRange
		}
		if d.Gender != nil {
			s.Gender = d.Gender
		}
		s.UpdatedAt = &updatedAt
		copied := *s
		return &copied, nil
	}
	return nil, apperrors.ErrSpeakerNotFound
}

func (m *MemorySpeakerDAO) List(ctx context.Context, skip, limit int) ([]model.Speaker, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.call("List"); err != nil {
		return nil, err
	}
	all := make([]model.Speaker, 0, len(m.speakers))
	for _, s := range m.speakers {
		all = append(all, *s)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return page(all, skip, limit), nil
}

func (m *MemorySpeakerDAO) DeleteAll(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.call("DeleteAll"); err != nil {
		return 0, err
	}
	n := int64(len(m.speakers))
	m.speakers = make(map[string]*model.Speaker)
	return n, nil
}

// Count returns the number of stored speakers
func (m *MemorySpeakerDAO) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.speakers)
}

// MemoryRecordingDAO is an in-memory repository.RecordingDAO
type MemoryRecordingDAO struct {
	mu         sync.Mutex
	recordings []*model.Recording

	ErrorMap  map[string]error
	CallCount map[string]int
}

var _ repository.RecordingDAO = (*MemoryRecordingDAO)(nil)

// NewMemoryRecordingDAO creates an empty ledger
func NewMemoryRecordingDAO() *MemoryRecordingDAO {
	return &MemoryRecordingDAO{
		ErrorMap:  make(map[string]error),
		CallCount: make(map[string]int),
	}
}

func (m *MemoryRecordingDAO) call(method string) error {
	m.CallCount[method]++
	return m.ErrorMap[method]
}

func (m *MemoryRecordingDAO) Create(ctx context.Context, rec *model.Recording) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.call("Create"); err != nil {
		return err
	}
	copied := *rec
	if copied.TranscriptionStatus == "" {
		copied.TranscriptionStatus = model.TranscriptionPending
	}
	m.recordings = append(m.recordings, &copied)
	return nil
}

func (m *MemoryRecordingDAO) List(ctx context.Context, filter model.RecordingFilter) ([]model.Recording, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.call("List"); err != nil {
		return nil, err
	}
	var out []model.Recording
	for _, r := range m.recordings {
		if filter.ParticipantCode != "" && r.ParticipantCode != filter.ParticipantCode {
			continue
		}
		if filter.SpontaneousOnly && !r.IsSpontaneous() {
			continue
		}
		out = append(out, *r)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].UploadedAt.After(out[j].UploadedAt) })
	return page(out, filter.Skip, filter.Limit), nil
}

func (m *MemoryRecordingDAO) CountBySpeaker(ctx context.Context, speakerID string) (model.RecordingCounts, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.call("CountBySpeaker"); err != nil {
		return model.RecordingCounts{}, err
	}
	var counts model.RecordingCounts
	for _, r := range m.recordings {
		if r.SpeakerID != speakerID {
			continue
		}
		counts.Total++
		if strings.HasPrefix(r.PromptID, model.SpontaneousPromptPrefix) {
			counts.Spontaneous++
		}
	}
	return counts, nil
}

func (m *MemoryRecordingDAO) UpdateTranscription(ctx context.Context, id, text string, transcribedBy *string, at time.Time) (*model.Recording, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.call("UpdateTranscription"); err != nil {
		return nil, err
	}
	for _, r := range m.recordings {
		if r.ID != id {
			continue
		}
		r.Transcription = &text
		r.TranscriptionStatus = model.TranscriptionTranscribed
		r.TranscribedBy = transcribedBy
		r.TranscriptionUpdatedAt = &at
		copied := *r
		return &copied, nil
	}
	return nil, apperrors.ErrRecordingNotFound
}

func (m *MemoryRecordingDAO) ListKeys(ctx context.Context) ([]model.RecordingKey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.call("ListKeys"); err != nil {
		return nil, err
	}
	keys := make([]model.RecordingKey, 0, len(m.recordings))
	for _, r := range m.recordings {
		keys = append(keys, model.RecordingKey{ID: r.ID, ObjectKey: r.ObjectKey})
	}
	return keys, nil
}

func (m *MemoryRecordingDAO) DeleteAll(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.call("DeleteAll"); err != nil {
		return 0, err
	}
	n := int64(len(m.recordings))
	m.recordings = nil
	return n, nil
}

// Count returns the number of stored recordings
func (m *MemoryRecordingDAO) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.recordings)
}

func page[T any](items []T, skip, limit int) []T {
	if skip < 0 {
		skip = 0
	}
	if skip >= len(items) {
		return []T{}
	}
	items = items[skip:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
