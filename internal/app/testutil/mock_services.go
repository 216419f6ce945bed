package testutil

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/mock"

	"twi-speech/internal/api/v1/dto"
)

// MockServices contains all mock services for testing
type MockServices struct {
	UploadService    *MockUploadService
	SpeakerService   *MockSpeakerService
	RecordingService *MockRecordingService
	ExportService    *MockExportService
}

// NewMockServices creates a new instance of mock services
func NewMockServices(t *testing.T) *MockServices {
	return &MockServices{
		UploadService:    NewMockUploadService(t),
		SpeakerService:   NewMockSpeakerService(t),
		RecordingService: NewMockRecordingService(t),
		ExportService:    NewMockExportService(t),
	}
}

// AssertExpectations asserts every mock's expectations
func (m *MockServices) AssertExpectations(t *testing.T) {
	m.UploadService.AssertExpectations(t)
	m.SpeakerService.AssertExpectations(t)
	m.RecordingService.AssertExpectations(t)
	m.ExportService.AssertExpectations(t)
}

// MockUploadService is a mock implementation of UploadService
type MockUploadService struct {
	mock.Mock
}

func NewMockUploadService(t *testing.T) *MockUploadService {
	m := &MockUploadService{}
	m.Test(t)
	return m
}

func (m *MockUploadService) UploadAudio(ctx context.Context, req *dto.UploadAudioRequest) (*dto.UploadResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UploadResponse), args.Error(1)
}

// MockSpeakerService is a mock implementation of SpeakerService
type MockSpeakerService struct {
	mock.Mock
}

func NewMockSpeakerService(t *testing.T) *MockSpeakerService {
	m := &MockSpeakerService{}
	m.Test(t)
	return m
}

func (m *MockSpeakerService) ListSpeakers(ctx context.Context, query dto.ListSpeakersQuery) ([]dto.SpeakerResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.SpeakerResponse), args.Error(1)
}

func (m *MockSpeakerService) GetSpeaker(ctx context.Context, participantCode string) (*dto.SpeakerResponse, error) {
	args := m.Called(ctx, participantCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SpeakerResponse), args.Error(1)
}

func (m *MockSpeakerService) DeleteAllSpeakers(ctx context.Context, confirm bool) (*dto.DeleteConfirmationResponse, error) {
	args := m.Called(ctx, confirm)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DeleteConfirmationResponse), args.Error(1)
}

// MockRecordingService is a mock implementation of RecordingService
type MockRecordingService struct {
	mock.Mock
}

func NewMockRecordingService(t *testing.T) *MockRecordingService {
	m := &MockRecordingService{}
	m.Test(t)
	return m
}

func (m *MockRecordingService) ListRecordings(ctx context.Context, query dto.ListRecordingsQuery) ([]dto.RecordingResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.RecordingResponse), args.Error(1)
}

func (m *MockRecordingService) ListSpontaneousRecordings(ctx context.Context, query dto.ListRecordingsQuery) ([]dto.RecordingResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.RecordingResponse), args.Error(1)
}

func (m *MockRecordingService) UpdateTranscription(ctx context.Context, recordingID string, req *dto.UpdateTranscriptionRequest) (*dto.RecordingResponse, error) {
	args := m.Called(ctx, recordingID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RecordingResponse), args.Error(1)
}

func (m *MockRecordingService) DeleteAllRecordings(ctx context.Context, confirm bool) (*dto.DeleteSummaryResponse, error) {
	args := m.Called(ctx, confirm)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DeleteSummaryResponse), args.Error(1)
}

// MockExportService is a mock implementation of ExportService
type MockExportService struct {
	mock.Mock
}

func NewMockExportService(t *testing.T) *MockExportService {
	m := &MockExportService{}
	m.Test(t)
	return m
}

func (m *MockExportService) ExportSpeakers(ctx context.Context, writer io.Writer) error {
	args := m.Called(ctx, writer)
	return args.Error(0)
}

func (m *MockExportService) ExportRecordings(ctx context.Context, writer io.Writer) error {
	args := m.Called(ctx, writer)
	return args.Error(0)
}
