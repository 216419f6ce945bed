package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "twi-speech/internal/app/errors"
	"twi-speech/internal/app/ingest"
)

func TestFromDomain(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantKind   ErrorKind
		wantStatus int
		wantMsg    string
	}{
		{"invalid participant code", apperrors.Wrapf(apperrors.ErrInvalidParticipantCode, "participant_code must start with %q", "TWI_Speaker_"), KindValidation, http.StatusUnprocessableEntity, ""},
		{"empty upload", apperrors.ErrEmptyUpload, KindValidation, http.StatusUnprocessableEntity, "received empty file content"},
		{"invalid identifier", apperrors.Wrapf(apperrors.ErrInvalidIdentifier, "recording id %q", "abc"), KindBadRequest, http.StatusBadRequest, ""},
		{"not confirmed", apperrors.ErrPurgeNotConfirmed, KindForbidden, http.StatusForbidden, NotConfirmedMessage},
		{"recording not found", apperrors.Wrap(apperrors.ErrRecordingNotFound, "update"), KindNotFound, http.StatusNotFound, "Recording not found"},
		{"speaker not found", apperrors.ErrSpeakerNotFound, KindNotFound, http.StatusNotFound, "Speaker not found"},
		{"storage fault", apperrors.Storage(stderrors.New("dial tcp: refused"), "failed to upload recording"), KindInternal, http.StatusInternalServerError, "Object storage request failed"},
		{
			"stage error",
			&ingest.StageError{Stage: ingest.StageLedger, OrphanObjectKey: "recordings/x.wav", Err: apperrors.Metadata(stderrors.New("disk full"), "insert")},
			KindInternal, http.StatusInternalServerError, "Database request failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := FromDomain(tt.err)
			require.NotNil(t, apiErr)
			assert.Equal(t, tt.wantKind, apiErr.Kind)
			assert.Equal(t, tt.wantStatus, apiErr.HTTPStatus())
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, apiErr.Message)
			}
			assert.NotContains(t, apiErr.Message, "refused")
			assert.NotContains(t, apiErr.Message, "disk full")
		})
	}
}

func TestFromDomain_Unclassified(t *testing.T) {
	assert.Nil(t, FromDomain(nil))
	assert.Nil(t, FromDomain(stderrors.New("boom")))

	original := NewBadRequestError("bad")
	assert.Same(t, original, FromDomain(fmt.Errorf("wrapped: %w", original)))
}
