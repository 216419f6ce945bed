package ingest

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "twi-speech/internal/app/errors"
	"twi-speech/internal/app/logging"
	"twi-speech/internal/app/metrics"
	"twi-speech/internal/app/model"
	"twi-speech/internal/app/registry"
	"twi-speech/internal/app/storage"
	"twi-speech/internal/app/utils"
)

const successMessage = "Upload successful"

// Submission is one recording upload with its metadata
type Submission struct {
	ParticipantCode   string `validate:"required,participant_code"`
	PromptID          string `validate:"required,max=255"`
	PromptText        string `validate:"required"`
	SessionID         *string
	Descriptors       model.SpeakerDescriptors
	RecordingDuration *int64 `validate:"omitempty,gte=0"`
	Filename          string `validate:"required"`
	ContentType       string
	Data              []byte
}

// Stage names the step at which a submission failed after side effects
type Stage string

const (
	StageObjectStore Stage = "object_store"
	StageLedger      Stage = "ledger"
)

// StageError reports a failure that left earlier side effects in place.
// After an object store failure the speaker may exist without recordings;
// after a ledger failure OrphanObjectKey names a blob no recording references.
type StageError struct {
	Stage           Stage
	SpeakerID       string
	SpeakerCreated  bool
	OrphanObjectKey string
	Err             error
}

func (e *StageError) Error() string {
	if e.OrphanObjectKey != "" {
		return fmt.Sprintf("%s stage failed (orphan object %s): %v", e.Stage, e.OrphanObjectKey, e.Err)
	}
	return fmt.Sprintf("%s stage failed (speaker %s): %v", e.Stage, e.SpeakerID, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// SpeakerResolver resolves speaker identity
type SpeakerResolver interface {
	Resolve(ctx context.Context, req registry.ResolveRequest) (*model.Speaker, bool, error)
}

// ObjectPutter stores audio bytes
type ObjectPutter interface {
	Put(ctx context.Context, req storage.PutRequest) (*storage.StoredObject, error)
}

// RecordingWriter persists recording metadata
type RecordingWriter interface {
	Create(ctx context.Context, recording *model.Recording) error
}

// ProgressReader computes speaker progress
type ProgressReader interface {
	Progress(ctx context.Context, speakerID string) model.ProgressResult
}

// Orchestrator runs a submission through speaker, object store, ledger and progress
type Orchestrator struct {
	speakers   SpeakerResolver
	objects    ObjectPutter
	recordings RecordingWriter
	progress   ProgressReader

	validate *validator.Validate
	prefix   string
	now      utils.Clock
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

// Options configures an Orchestrator
type Options struct {
	ParticipantPrefix string
	Clock             utils.Clock
	Logger            *zap.Logger
	Metrics           *metrics.Metrics
}

// NewOrchestrator wires the submission pipeline
func NewOrchestrator(speakers SpeakerResolver, objects ObjectPutter, recordings RecordingWriter, progress ProgressReader, opts Options) *Orchestrator {
	o := &Orchestrator{
		speakers:   speakers,
		objects:    objects,
		recordings: recordings,
		progress:   progress,
		validate:   NewValidator(opts.ParticipantPrefix),
		prefix:     opts.ParticipantPrefix,
		now:        opts.Clock,
		logger:     logging.OrNop(opts.Logger).Named("ingest"),
		metrics:    opts.Metrics,
	}
	if o.now == nil {
		o.now = utils.ClockIn(nil)
	}
	return o
}

// Submit runs one submission. Steps are not rolled back: a failure after the
// speaker or object step returns a *StageError describing what was left behind.
func (o *Orchestrator) Submit(ctx context.Context, sub Submission) (*model.UploadResult, error) {
	sub.ParticipantCode = strings.TrimSpace(sub.ParticipantCode)
	contentType := strings.ToLower(strings.TrimSpace(sub.ContentType))
	logger := o.logger.With(
		zap.String("participant_code", sub.ParticipantCode),
		zap.String("prompt_id", sub.PromptID),
	)

	// 1. Validate
	if err := o.validate.Struct(sub); err != nil {
		o.metrics.Upload(metrics.OutcomeValidation, 0)
		return nil, translateValidation(err, o.prefix)
	}
	if len(sub.Data) == 0 {
		o.metrics.Upload(metrics.OutcomeValidation, 0)
		return nil, apperrors.ErrEmptyUpload
	}
	switch {
	case contentType == "":
		logger.Warn("no content type provided", zap.String("filename", sub.Filename))
	case !storage.IsExpectedContentType(contentType):
		logger.Warn("unexpected upload content type",
			zap.String("content_type", contentType),
			zap.String("filename", sub.Filename),
		)
	}

	// 2. Resolve speaker
	speaker, created, err := o.speakers.Resolve(ctx, registry.ResolveRequest{
		ParticipantCode: sub.ParticipantCode,
		Descriptors:     sub.Descriptors,
	})
	if err != nil {
		o.metrics.Upload(outcomeOf(err), 0)
		return nil, err
	}

	// 3. Store bytes
	obj, err := o.objects.Put(ctx, storage.PutRequest{
		Data:             sub.Data,
		ParticipantCode:  sub.ParticipantCode,
		PromptID:         sub.PromptID,
		OriginalFilename: sub.Filename,
		ContentType:      contentType,
	})
	if err != nil {
		logger.Error("object upload failed after speaker resolution",
			zap.String("speaker_id", speaker.ID),
			zap.Bool("speaker_created", created),
			zap.Error(err),
		)
		if created {
			o.metrics.Orphan(metrics.OrphanSpeaker)
		}
		o.metrics.Upload(outcomeOf(err), 0)
		return nil, &StageError{Stage: StageObjectStore, SpeakerID: speaker.ID, SpeakerCreated: created, Err: err}
	}

	// 4. Persist metadata
	size := obj.Size
	recording := &model.Recording{
		ID:                  uuid.NewString(),
		SpeakerID:           speaker.ID,
		ParticipantCode:     sub.ParticipantCode,
		PromptID:            sub.PromptID,
		PromptText:          sub.PromptText,
		SessionID:           sub.SessionID,
		FileURL:             obj.URL,
		ObjectKey:           obj.Key,
		FilenameOriginal:    sub.Filename,
		SizeBytes:           &size,
		RecordingDuration:   sub.RecordingDuration,
		UploadedAt:          o.now(),
		TranscriptionStatus: model.TranscriptionPending,
	}
	if contentType != "" {
		recording.ContentType = &contentType
	}
	if err := o.recordings.Create(ctx, recording); err != nil {
		logger.Error("recording insert failed, object is unreferenced",
			zap.String("object_key", obj.Key),
			zap.Error(err),
		)
		o.metrics.Orphan(metrics.OrphanObject)
		o.metrics.Upload(outcomeOf(err), 0)
		return nil, &StageError{Stage: StageLedger, SpeakerID: speaker.ID, SpeakerCreated: created, OrphanObjectKey: obj.Key, Err: err}
	}

	// 5. Progress, best effort
	progress := o.progress.Progress(ctx, speaker.ID)

	o.metrics.Upload(metrics.OutcomeSuccess, size)
	logger.Info("recording stored",
		zap.String("recording_id", recording.ID),
		zap.String("object_key", obj.Key),
		zap.Int64("size", size),
		zap.String("progress", string(progress.Status)),
	)

	return &model.UploadResult{
		Message:         successMessage,
		FileURL:         obj.URL,
		RecordingID:     recording.ID,
		SpeakerID:       speaker.ID,
		ParticipantCode: sub.ParticipantCode,
		PromptID:        sub.PromptID,
		Progress:        progress,
	}, nil
}

func outcomeOf(err error) string {
	switch apperrors.KindOf(err) {
	case apperrors.KindValidation:
		return metrics.OutcomeValidation
	case apperrors.KindStorage:
		return metrics.OutcomeStorageError
	default:
		return metrics.OutcomeMetadataError
	}
}
