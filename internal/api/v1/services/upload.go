package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"twi-speech/internal/api/v1/dto"
	"twi-speech/internal/app/ingest"
	"twi-speech/internal/app/model"
)

// Submitter runs the ingest pipeline
type Submitter interface {
	Submit(ctx context.Context, sub ingest.Submission) (*model.UploadResult, error)
}

// UploadServiceImpl implements UploadService
type UploadServiceImpl struct {
	ingest Submitter
}

// NewUploadService creates a new upload service
func NewUploadService(submitter Submitter) UploadService {
	return &UploadServiceImpl{ingest: submitter}
}

// UploadAudio reads the uploaded file and submits it with its metadata
func (s *UploadServiceImpl) UploadAudio(ctx context.Context, req *dto.UploadAudioRequest) (*dto.UploadResponse, error) {
	file, err := req.File.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	result, err := s.ingest.Submit(ctx, ingest.Submission{
		ParticipantCode: req.ParticipantCode,
		PromptID:        req.PromptID,
		PromptText:      req.PromptText,
		SessionID:       optional(req.SessionID),
		Descriptors: model.SpeakerDescriptors{
			Dialect:  optional(req.Dialect),
			AgeRange: optional(req.AgeRange),
			Gender:   optional(req.Gender),
		},
		RecordingDuration: req.RecordingDuration,
		Filename:          req.File.Filename,
		ContentType:       req.File.Header.Get("Content-Type"),
		Data:              data,
	})
	if err != nil {
		return nil, err
	}
	return dto.NewUploadResponse(result), nil
}

// optional treats blank form values as not supplied
func optional(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
