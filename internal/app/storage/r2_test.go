package storage

import (
	"context"
	stderrors "errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "twi-speech/internal/app/errors"
	"twi-speech/internal/app/testutil"
	"twi-speech/internal/config"
)

func newTestGateway(client ObjectClient) *Gateway {
	return NewGateway(client, config.StorageConfig{
		AccountID: "acct123",
		Bucket:    "twi-recordings",
	}, nil)
}

func TestGateway_Put(t *testing.T) {
	client := testutil.NewFakeObjectClient()
	gw := newTestGateway(client)

	obj, err := gw.Put(context.Background(), PutRequest{
		Data:             []byte("RIFF...."),
		ParticipantCode:  "TWI_Speaker_001",
		PromptID:         "Greeting_01",
		OriginalFilename: "take1.WAV",
		ContentType:      "audio/wav",
	})
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^recordings/TWI_Speaker_001/Greeting_01_[0-9a-f-]{36}\.wav$`), obj.Key)
	assert.Equal(t, "https://pub-acct123.r2.dev/twi-recordings/"+obj.Key, obj.URL)
	assert.Equal(t, "audio/wav", obj.ContentType)
	assert.Equal(t, int64(8), obj.Size)
	assert.True(t, client.Has(obj.Key))
	assert.Equal(t, "audio/wav", client.ContentTypes[obj.Key])
}

func TestGateway_Put_EmptyContent(t *testing.T) {
	client := testutil.NewFakeObjectClient()
	gw := newTestGateway(client)

	obj, err := gw.Put(context.Background(), PutRequest{
		ParticipantCode:  "TWI_Speaker_001",
		PromptID:         "Greeting_01",
		OriginalFilename: "take1.wav",
	})
	assert.Nil(t, obj)
	assert.ErrorIs(t, err, apperrors.ErrEmptyUpload)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	assert.Equal(t, 0, client.Calls())
}

func TestGateway_Put_BackendFailure(t *testing.T) {
	client := testutil.NewFakeObjectClient()
	client.PutErr = stderrors.New("connection reset")
	gw := newTestGateway(client)

	_, err := gw.Put(context.Background(), PutRequest{
		Data:             []byte{1},
		ParticipantCode:  "TWI_Speaker_001",
		PromptID:         "Greeting_01",
		OriginalFilename: "take1.wav",
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindStorage, apperrors.KindOf(err))
	assert.Equal(t, 1, client.PutCalls)
}

func TestGateway_Put_M4AContentType(t *testing.T) {
	client := testutil.NewFakeObjectClient()
	gw := newTestGateway(client)

	obj, err := gw.Put(context.Background(), PutRequest{
		Data:             []byte{1, 2},
		ParticipantCode:  "TWI_Speaker_002",
		PromptID:         "Spontaneous_03",
		OriginalFilename: "blob.mp4",
	})
	require.NoError(t, err)
	assert.Contains(t, obj.Key, "recordings/TWI_Speaker_002/Spontaneous_03_")
	assert.Equal(t, ".m4a", obj.Key[len(obj.Key)-4:])
	assert.Equal(t, "audio/mp4", obj.ContentType)
}

func TestGateway_Delete(t *testing.T) {
	client := testutil.NewFakeObjectClient()
	gw := newTestGateway(client)
	ctx := context.Background()

	assert.True(t, gw.Delete(ctx, ""))
	assert.True(t, gw.Delete(ctx, "unknown_key"))
	assert.Equal(t, 0, client.RemoveCalls)

	assert.True(t, gw.Delete(ctx, "recordings/a/b.wav"))
	assert.Equal(t, 1, client.RemoveCalls)

	client.RemoveErr = stderrors.New("503")
	assert.False(t, gw.Delete(ctx, "recordings/a/c.wav"))
}

func TestGateway_DeleteMany(t *testing.T) {
	client := testutil.NewFakeObjectClient()
	client.BatchErrs["recordings/x/2.wav"] = stderrors.New("AccessDenied")
	client.OmitFromBatch["recordings/x/3.wav"] = true
	gw := newTestGateway(client)

	results := gw.DeleteMany(context.Background(), []string{
		"recordings/x/1.wav",
		"recordings/x/2.wav",
		"recordings/x/3.wav",
		"unknown_key",
		"",
	})

	assert.Equal(t, map[string]bool{
		"recordings/x/1.wav": true,
		"recordings/x/2.wav": false,
		"recordings/x/3.wav": false,
		"unknown_key":        true,
		"":                   true,
	}, results)
	assert.Equal(t, 1, client.BatchCalls)
	assert.Equal(t, []string{"recordings/x/1.wav", "recordings/x/2.wav", "recordings/x/3.wav"}, client.BatchKeys[0])
}

func TestGateway_DeleteMany_NothingDeletable(t *testing.T) {
	client := testutil.NewFakeObjectClient()
	gw := newTestGateway(client)

	results := gw.DeleteMany(context.Background(), []string{"unknown_key"})
	assert.Equal(t, map[string]bool{"unknown_key": true}, results)
	assert.Equal(t, 0, client.Calls())
}
