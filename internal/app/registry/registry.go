package registry

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "twi-speech/internal/app/errors"
	"twi-speech/internal/app/lock"
	"twi-speech/internal/app/logging"
	"twi-speech/internal/app/metrics"
	"twi-speech/internal/app/model"
	"twi-speech/internal/app/repository"
	"twi-speech/internal/app/utils"
)

// ResolveRequest identifies a speaker and carries optional descriptors
type ResolveRequest struct {
	ParticipantCode string
	Descriptors     model.SpeakerDescriptors
}

// Registry is the only path that creates speaker identities
type Registry struct {
	speakers repository.SpeakerDAO
	locker   lock.Locker
	prefix   string
	now      utils.Clock
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

// Options configures a Registry
type Options struct {
	ParticipantPrefix string
	Clock             utils.Clock
	Locker            lock.Locker
	Logger            *zap.Logger
	Metrics           *metrics.Metrics
}

// New creates a registry over speakers
func New(speakers repository.SpeakerDAO, opts Options) *Registry {
	r := &Registry{
		speakers: speakers,
		locker:   opts.Locker,
		prefix:   opts.ParticipantPrefix,
		now:      opts.Clock,
		logger:   logging.OrNop(opts.Logger).Named("registry"),
		metrics:  opts.Metrics,
	}
	if r.locker == nil {
		r.locker = lock.NoopLocker{}
	}
	if r.now == nil {
		r.now = utils.ClockIn(nil)
	}
	return r
}

// ValidateParticipantCode checks that code carries prefix and a non-empty suffix
func ValidateParticipantCode(prefix, code string) error {
	if !strings.HasPrefix(code, prefix) || len(code) == len(prefix) {
		return apperrors.Wrapf(apperrors.ErrInvalidParticipantCode, "participant code must start with %q", prefix)
	}
	return nil
}

// Resolve returns the speaker for a participant code, creating it on first use.
// Supplied descriptors that differ from stored values are written in one update.
// The boolean reports whether the speaker was created by this call.
func (r *Registry) Resolve(ctx context.Context, req ResolveRequest) (*model.Speaker, bool, error) {
	unlock, err := r.locker.Lock(ctx, req.ParticipantCode)
	if err != nil {
		return nil, false, apperrors.Metadata(err, "failed to acquire speaker lock")
	}
	defer unlock()

	existing, err := r.speakers.FindByCode(ctx, req.ParticipantCode)
	switch {
	case err == nil:
		speaker, err := r.merge(ctx, existing, req.Descriptors)
		return speaker, false, err
	case !apperrors.IsNotFound(err):
		return nil, false, err
	}

	if err := ValidateParticipantCode(r.prefix, req.ParticipantCode); err != nil {
		return nil, false, err
	}

	speaker := &model.Speaker{
		ID:              uuid.NewString(),
		ParticipantCode: req.ParticipantCode,
		Dialect:         req.Descriptors.Dialect,
		AgeRange:        req.Descriptors.AgeRange,
		Gender:          req.Descriptors.Gender,
		CreatedAt:       r.now(),
	}
	err = r.speakers.Create(ctx, speaker)
	if err == nil {
		r.metrics.SpeakerCreated()
		r.logger.Info("speaker created",
			zap.String("participant_code", speaker.ParticipantCode),
			zap.String("speaker_id", speaker.ID),
		)
		return speaker, true, nil
	}
	if !repository.IsDuplicate(err) {
		return nil, false, err
	}

	// Another writer created the speaker between lookup and insert
	r.logger.Debug("speaker created concurrently, re-reading",
		zap.String("participant_code", req.ParticipantCode),
	)
	existing, err = r.speakers.FindByCode(ctx, req.ParticipantCode)
	if err != nil {
		return nil, false, err
	}
	merged, err := r.merge(ctx, existing, req.Descriptors)
	return merged, false, err
}

func (r *Registry) merge(ctx context.Context, existing *model.Speaker, supplied model.SpeakerDescriptors) (*model.Speaker, error) {
	changed := supplied.Diff(existing)
	if changed.IsEmpty() {
		return existing, nil
	}
	updated, err := r.speakers.UpdateDescriptors(ctx, existing.ID, changed, r.now())
	if err != nil {
		return nil, err
	}
	r.logger.Debug("speaker descriptors updated", zap.String("speaker_id", existing.ID))
	return updated, nil
}

// Get returns the speaker for code or ErrSpeakerNotFound
func (r *Registry) Get(ctx context.Context, participantCode string) (*model.Speaker, error) {
	return r.speakers.FindByCode(ctx, participantCode)
}

// List returns speakers newest first
func (r *Registry) List(ctx context.Context, skip, limit int) ([]model.Speaker, error) {
	return r.speakers.List(ctx, skip, limit)
}
