package services

import (
	"bytes"
	"context"
	stderrors "errors"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"twi-speech/internal/api/v1/dto"
	apperrors "twi-speech/internal/app/errors"
	"twi-speech/internal/app/ingest"
	"twi-speech/internal/app/model"
	"twi-speech/internal/app/testutil"
)

type mockSubmitter struct {
	mock.Mock
}

func (m *mockSubmitter) Submit(ctx context.Context, sub ingest.Submission) (*model.UploadResult, error) {
	args := m.Called(ctx, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UploadResult), args.Error(1)
}

type stubProgress struct{}

func (stubProgress) Progress(context.Context, string) model.ProgressResult {
	return model.KnownProgress(model.Progress{TotalRecordings: 2, TotalRequired: 163})
}

type stubPurger struct {
	summary *model.PurgeSummary
	deleted int64
	err     error
}

func (s stubPurger) PurgeAllRecordings(context.Context, bool) (*model.PurgeSummary, error) {
	return s.summary, s.err
}

func (s stubPurger) PurgeAllSpeakers(context.Context, bool) (int64, error) {
	return s.deleted, s.err
}

func fileHeader(t *testing.T, filename, contentType string, data []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["file"][0]
}

func TestUploadService_UploadAudio(t *testing.T) {
	submitter := &mockSubmitter{}
	svc := NewUploadService(submitter)

	blank := "  "
	dialect := " Fante "
	req := &dto.UploadAudioRequest{
		ParticipantCode: "TWI_Speaker_001",
		PromptID:        "Prompt_01",
		PromptText:      "Maakye",
		Dialect:         &dialect,
		Gender:          &blank,
		File:            fileHeader(t, "clip.webm", "audio/webm", []byte("audio")),
	}

	submitter.On("Submit", mock.Anything, mock.MatchedBy(func(sub ingest.Submission) bool {
		return sub.Filename == "clip.webm" &&
			sub.ContentType == "audio/webm" &&
			string(sub.Data) == "audio" &&
			*sub.Descriptors.Dialect == "Fante" &&
			sub.Descriptors.Gender == nil &&
			sub.Descriptors.AgeRange == nil
	})).Return(&model.UploadResult{
		Message:     "Upload successful",
		RecordingID: "rec-1",
		SpeakerID:   "spk-1",
		Progress:    model.UnknownProgress(163),
	}, nil)

	resp, err := svc.UploadAudio(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "rec-1", resp.RecordingID)
	assert.Equal(t, "unknown", resp.Progress.Status)
	submitter.AssertExpectations(t)
}

func TestUploadService_PassesDomainErrors(t *testing.T) {
	submitter := &mockSubmitter{}
	submitter.On("Submit", mock.Anything, mock.Anything).Return(nil, apperrors.ErrEmptyUpload)

	svc := NewUploadService(submitter)
	_, err := svc.UploadAudio(context.Background(), &dto.UploadAudioRequest{
		File: fileHeader(t, "empty.wav", "audio/wav", nil),
	})
	assert.ErrorIs(t, err, apperrors.ErrEmptyUpload)
}

func TestSpeakerService(t *testing.T) {
	ctx := context.Background()
	speakers := testutil.NewMemorySpeakerDAO()
	spk := testutil.NewTestSpeaker("TWI_Speaker_001")
	require.NoError(t, speakers.Create(ctx, spk))

	svc := NewSpeakerService(speakerReader{speakers}, stubProgress{}, stubPurger{deleted: 1})

	list, err := svc.ListSpeakers(ctx, dto.ListSpeakersQuery{Limit: 100})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 2, list[0].Progress.TotalRecordings)
	assert.Equal(t, "ok", list[0].Progress.Status)

	got, err := svc.GetSpeaker(ctx, "TWI_Speaker_001")
	require.NoError(t, err)
	assert.Equal(t, spk.ID, got.ID)

	_, err = svc.GetSpeaker(ctx, "TWI_Speaker_404")
	assert.True(t, apperrors.IsNotFound(err))

	deleted, err := svc.DeleteAllSpeakers(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted.DeletedCount)
	assert.Equal(t, "Successfully deleted 1 speaker documents from the database.", deleted.Message)
}

// speakerReader adapts the DAO to the registry's read API
type speakerReader struct {
	dao *testutil.MemorySpeakerDAO
}

func (r speakerReader) Get(ctx context.Context, code string) (*model.Speaker, error) {
	return r.dao.FindByCode(ctx, code)
}

func (r speakerReader) List(ctx context.Context, skip, limit int) ([]model.Speaker, error) {
	return r.dao.List(ctx, skip, limit)
}

type stubTranscriber struct {
	text string
}

func (s *stubTranscriber) Transcribe(_ context.Context, id, text string, by *string) (*model.Recording, error) {
	s.text = text
	return &model.Recording{ID: id, Transcription: &text, TranscribedBy: by, TranscriptionStatus: model.TranscriptionTranscribed}, nil
}

func TestRecordingService(t *testing.T) {
	ctx := context.Background()
	recordings := testutil.NewMemoryRecordingDAO()
	spk := testutil.NewTestSpeaker("TWI_Speaker_001")
	require.NoError(t, recordings.Create(ctx, testutil.NewTestRecording(spk, "Prompt_01", testutil.FixedTime)))
	require.NoError(t, recordings.Create(ctx, testutil.NewTestRecording(spk, "Spontaneous_01", testutil.FixedTime)))

	transcriber := &stubTranscriber{}
	svc := NewRecordingService(recordings, transcriber, stubPurger{})

	all, err := svc.ListRecordings(ctx, dto.ListRecordingsQuery{Limit: 50})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	spont, err := svc.ListSpontaneousRecordings(ctx, dto.ListRecordingsQuery{Limit: 50})
	require.NoError(t, err)
	require.Len(t, spont, 1)
	assert.Equal(t, "Spontaneous_01", spont[0].PromptID)

	empty := ""
	updated, err := svc.UpdateTranscription(ctx, "rec-1", &dto.UpdateTranscriptionRequest{Transcription: &empty})
	require.NoError(t, err)
	assert.Equal(t, "transcribed", updated.TranscriptionStatus)
	assert.Equal(t, "", transcriber.text)
}

func TestRecordingService_DeleteAllPartialFailure(t *testing.T) {
	clearErr := apperrors.Metadata(stderrors.New("locked"), "failed to delete recordings")
	svc := NewRecordingService(nil, nil, stubPurger{
		summary: &model.PurgeSummary{Message: "Error during deletion", R2AttemptedCount: 3},
		err:     clearErr,
	})

	resp, err := svc.DeleteAllRecordings(context.Background(), true)
	assert.ErrorIs(t, err, clearErr)
	require.NotNil(t, resp)
	assert.Equal(t, 3, resp.R2AttemptedCount)
	assert.Equal(t, []string{}, resp.R2FailedKeys)
	assert.Nil(t, resp.DBDeletedCount)
}

func TestRecordingService_DeleteAllNotConfirmed(t *testing.T) {
	svc := NewRecordingService(nil, nil, stubPurger{err: apperrors.ErrPurgeNotConfirmed})
	resp, err := svc.DeleteAllRecordings(context.Background(), false)
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, apperrors.ErrPurgeNotConfirmed)
}
