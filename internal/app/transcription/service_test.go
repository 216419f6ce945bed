package transcription

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "twi-speech/internal/app/errors"
	"twi-speech/internal/app/model"
	"twi-speech/internal/app/testutil"
	"twi-speech/internal/app/utils"
)

func TestTranscribe(t *testing.T) {
	dao := testutil.NewMemoryRecordingDAO()
	rec := testutil.NewTestRecording(testutil.NewTestSpeaker("TWI_Speaker_001"), "Greeting_01", testutil.FixedTime)
	require.NoError(t, dao.Create(context.Background(), rec))

	at := time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)
	svc := NewService(dao, utils.FixedClock(at), nil, nil)

	updated, err := svc.Transcribe(context.Background(), rec.ID, "Maakye", testutil.StringPtr("kofi"))
	require.NoError(t, err)

	assert.Equal(t, "Maakye", *updated.Transcription)
	assert.Equal(t, model.TranscriptionTranscribed, updated.TranscriptionStatus)
	assert.Equal(t, "kofi", *updated.TranscribedBy)
	assert.Equal(t, at, *updated.TranscriptionUpdatedAt)
	assert.Equal(t, rec.ObjectKey, updated.ObjectKey)
	assert.Equal(t, rec.PromptID, updated.PromptID)
}

func TestTranscribe_InvalidIdentifier(t *testing.T) {
	dao := testutil.NewMemoryRecordingDAO()
	svc := NewService(dao, nil, nil, nil)

	_, err := svc.Transcribe(context.Background(), "not-a-uuid", "x", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidIdentifier)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	assert.False(t, apperrors.IsNotFound(err))
	assert.Equal(t, 0, dao.CallCount["UpdateTranscription"])
}

func TestTranscribe_NotFound(t *testing.T) {
	svc := NewService(testutil.NewMemoryRecordingDAO(), nil, nil, nil)

	_, err := svc.Transcribe(context.Background(), "6f1c2b1e-8a53-4d7e-9a4b-2f0b7c9d1e23", "x", nil)
	assert.ErrorIs(t, err, apperrors.ErrRecordingNotFound)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestTranscribe_BackendFailure(t *testing.T) {
	dao := testutil.NewMemoryRecordingDAO()
	dao.ErrorMap["UpdateTranscription"] = apperrors.Fail(apperrors.ErrUpdateFailed, stderrors.New("read-only"), "failed to update transcription")
	svc := NewService(dao, nil, nil, nil)

	_, err := svc.Transcribe(context.Background(), "6f1c2b1e-8a53-4d7e-9a4b-2f0b7c9d1e23", "x", nil)
	assert.ErrorIs(t, err, apperrors.ErrUpdateFailed)
	assert.Equal(t, apperrors.KindMetadata, apperrors.KindOf(err))
}
