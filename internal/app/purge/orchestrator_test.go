package purge

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "twi-speech/internal/app/errors"
	"twi-speech/internal/app/model"
	"twi-speech/internal/app/storage"
	"twi-speech/internal/app/testutil"
	"twi-speech/internal/config"
)

type fixture struct {
	orchestrator *Orchestrator
	recordings   *testutil.MemoryRecordingDAO
	speakers     *testutil.MemorySpeakerDAO
	objects      *testutil.FakeObjectClient
}

func newFixture() *fixture {
	recordings := testutil.NewMemoryRecordingDAO()
	speakers := testutil.NewMemorySpeakerDAO()
	objects := testutil.NewFakeObjectClient()
	gateway := storage.NewGateway(objects, config.StorageConfig{AccountID: "acct", Bucket: "twi"}, nil)
	return &fixture{
		orchestrator: NewOrchestrator(recordings, speakers, gateway, nil, nil),
		recordings:   recordings,
		speakers:     speakers,
		objects:      objects,
	}
}

func (f *fixture) seed(t *testing.T, n int) []*model.Recording {
	t.Helper()
	speaker := testutil.NewTestSpeaker("TWI_Speaker_001")
	recs := make([]*model.Recording, n)
	for i := range recs {
		recs[i] = testutil.NewTestRecording(speaker, fmt.Sprintf("Prompt_%02d", i), testutil.FixedTime)
		f.objects.Objects[recs[i].ObjectKey] = []byte{1}
		require.NoError(t, f.recordings.Create(context.Background(), recs[i]))
	}
	return recs
}

func TestPurgeAllRecordings_NotConfirmed(t *testing.T) {
	f := newFixture()
	f.seed(t, 1)

	summary, err := f.orchestrator.PurgeAllRecordings(context.Background(), false)
	assert.Nil(t, summary)
	assert.ErrorIs(t, err, apperrors.ErrPurgeNotConfirmed)
	assert.Equal(t, 1, f.recordings.Count())
	assert.Equal(t, 0, f.objects.Calls())
}

func TestPurgeAllRecordings_EmptyLedger(t *testing.T) {
	f := newFixture()

	summary, err := f.orchestrator.PurgeAllRecordings(context.Background(), true)
	require.NoError(t, err)

	require.NotNil(t, summary.DBDeletedCount)
	assert.Equal(t, int64(0), *summary.DBDeletedCount)
	assert.Equal(t, 0, summary.R2AttemptedCount)
	assert.Equal(t, []string{}, summary.R2FailedKeys)
	assert.Equal(t, 0, f.objects.Calls())
	assert.Equal(t, 0, f.recordings.CallCount["DeleteAll"])
}

func TestPurgeAllRecordings_PartialStorageFailure(t *testing.T) {
	f := newFixture()
	recs := f.seed(t, 5)
	f.objects.BatchErrs[recs[1].ObjectKey] = stderrors.New("AccessDenied")
	f.objects.BatchErrs[recs[3].ObjectKey] = stderrors.New("InternalError")

	summary, err := f.orchestrator.PurgeAllRecordings(context.Background(), true)
	require.NoError(t, err)

	assert.Equal(t, 5, summary.R2AttemptedCount)
	assert.ElementsMatch(t, []string{recs[1].ObjectKey, recs[3].ObjectKey}, summary.R2FailedKeys)
	require.NotNil(t, summary.DBDeletedCount)
	assert.Equal(t, int64(5), *summary.DBDeletedCount)
	assert.Contains(t, summary.Message, "R2 Deletion Failures: 2")
	assert.Equal(t, 0, f.recordings.Count())
	assert.Equal(t, 1, f.objects.BatchCalls)
}

func TestPurgeAllRecordings_SentinelKeysSkipped(t *testing.T) {
	f := newFixture()
	recs := f.seed(t, 2)
	unknown := testutil.NewTestRecording(testutil.NewTestSpeaker("TWI_Speaker_002"), "Prompt_x", testutil.FixedTime)
	unknown.ObjectKey = model.UnknownObjectKey
	require.NoError(t, f.recordings.Create(context.Background(), unknown))

	summary, err := f.orchestrator.PurgeAllRecordings(context.Background(), true)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.R2AttemptedCount)
	assert.Empty(t, summary.R2FailedKeys)
	assert.Equal(t, int64(3), *summary.DBDeletedCount)
	assert.ElementsMatch(t, []string{recs[0].ObjectKey, recs[1].ObjectKey}, f.objects.BatchKeys[0])
	assert.Contains(t, summary.Message, "All associated R2 objects processed successfully.")
}

func TestPurgeAllRecordings_OnlySentinelKeys(t *testing.T) {
	f := newFixture()
	rec := testutil.NewTestRecording(testutil.NewTestSpeaker("TWI_Speaker_002"), "Prompt_x", testutil.FixedTime)
	rec.ObjectKey = model.UnknownObjectKey
	require.NoError(t, f.recordings.Create(context.Background(), rec))

	summary, err := f.orchestrator.PurgeAllRecordings(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.R2AttemptedCount)
	assert.Equal(t, int64(1), *summary.DBDeletedCount)
	assert.Equal(t, 0, f.objects.Calls())
}

func TestPurgeAllRecordings_LedgerClearFails(t *testing.T) {
	f := newFixture()
	recs := f.seed(t, 2)
	f.objects.BatchErrs[recs[0].ObjectKey] = stderrors.New("AccessDenied")
	f.recordings.ErrorMap["DeleteAll"] = apperrors.Metadata(stderrors.New("locked"), "failed to delete recordings")

	summary, err := f.orchestrator.PurgeAllRecordings(context.Background(), true)
	require.Error(t, err)
	require.NotNil(t, summary)
	assert.Nil(t, summary.DBDeletedCount)
	assert.Equal(t, 2, summary.R2AttemptedCount)
	assert.Equal(t, []string{recs[0].ObjectKey}, summary.R2FailedKeys)
	assert.Contains(t, summary.Message, "Error during deletion")
}

func TestPurgeAllRecordings_EnumerationFails(t *testing.T) {
	f := newFixture()
	f.recordings.ErrorMap["ListKeys"] = apperrors.Metadata(stderrors.New("closed"), "failed to enumerate recordings")

	summary, err := f.orchestrator.PurgeAllRecordings(context.Background(), true)
	assert.Nil(t, summary)
	assert.ErrorIs(t, err, apperrors.ErrQueryFailed)
	assert.Equal(t, 0, f.objects.Calls())
}

func TestPurgeAllSpeakers(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	require.NoError(t, f.speakers.Create(ctx, testutil.NewTestSpeaker("TWI_Speaker_001")))
	require.NoError(t, f.speakers.Create(ctx, testutil.NewTestSpeaker("TWI_Speaker_002")))
	f.seed(t, 1)

	_, err := f.orchestrator.PurgeAllSpeakers(ctx, false)
	assert.ErrorIs(t, err, apperrors.ErrPurgeNotConfirmed)
	assert.Equal(t, 2, f.speakers.Count())

	n, err := f.orchestrator.PurgeAllSpeakers(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Equal(t, 0, f.speakers.Count())

	// Not cascading
	assert.Equal(t, 1, f.recordings.Count())
	assert.Equal(t, 0, f.objects.Calls())
}
