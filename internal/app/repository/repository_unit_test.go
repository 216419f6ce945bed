package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "twi-speech/internal/app/errors"
	"twi-speech/internal/app/model"
)

func newMockDB(t *testing.T, driver string) (*CommonDB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewCommonDB(db, driver), mock
}

// TestDAO_Interface verifies the stores implement the DAO interfaces
func TestDAO_Interface(t *testing.T) {
	var _ SpeakerDAO = (*SpeakerStore)(nil)
	var _ RecordingDAO = (*RecordingStore)(nil)
}

func TestCommonDB_Placeholders(t *testing.T) {
	sqliteDB := NewCommonDB(nil, "sqlite3")
	pgDB := NewCommonDB(nil, "postgres")

	assert.Equal(t, "?, ?, ?", sqliteDB.placeholderList(1, 3))
	assert.Equal(t, "$2, $3", pgDB.placeholderList(2, 2))

	assert.Equal(t, "", sqliteDB.pageClause(0, 0))
	assert.Equal(t, " LIMIT 10 OFFSET 5", pgDB.pageClause(5, 10))
	assert.Equal(t, " LIMIT -1 OFFSET 5", sqliteDB.pageClause(5, 0))
	assert.Equal(t, " OFFSET 5", pgDB.pageClause(5, 0))
	assert.Equal(t, " LIMIT 10 OFFSET 0", pgDB.pageClause(-3, 10))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pq.Error{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pq.Error{Code: "23503"}))
	assert.True(t, IsUniqueViolation(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}))
	assert.False(t, IsUniqueViolation(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintNotNull}))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
}

func TestSpeakerStore_Create_PostgresDuplicate(t *testing.T) {
	db, mock := newMockDB(t, "postgres")
	store := NewSpeakerStore(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO speakers (" + speakerColumns + ") VALUES ($1, $2, $3, $4, $5, $6, $7)")).
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})

	err := store.Create(context.Background(), &model.Speaker{ID: "id", ParticipantCode: "TWI_Speaker_1", CreatedAt: time.Now()})
	assert.True(t, IsDuplicate(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSpeakerStore_Create_Failure(t *testing.T) {
	db, mock := newMockDB(t, "postgres")
	store := NewSpeakerStore(db)

	mock.ExpectExec("INSERT INTO speakers").WillReturnError(errors.New("connection refused"))

	err := store.Create(context.Background(), &model.Speaker{ID: "id", ParticipantCode: "TWI_Speaker_1"})
	assert.False(t, IsDuplicate(err))
	assert.Equal(t, apperrors.KindMetadata, apperrors.KindOf(err))
	assert.ErrorIs(t, err, apperrors.ErrInsertFailed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStores_FailuresMatchOperation(t *testing.T) {
	ctx := context.Background()
	cause := errors.New("connection refused")

	tests := []struct {
		name   string
		expect func(mock sqlmock.Sqlmock)
		call   func(db *CommonDB) error
		want   error
	}{
		{
			name:   "recording insert",
			expect: func(mock sqlmock.Sqlmock) { mock.ExpectExec("INSERT INTO recordings").WillReturnError(cause) },
			call: func(db *CommonDB) error {
				return NewRecordingStore(db).Create(ctx, &model.Recording{ID: "rec"})
			},
			want: apperrors.ErrInsertFailed,
		},
		{
			name:   "speaker update",
			expect: func(mock sqlmock.Sqlmock) { mock.ExpectQuery("UPDATE speakers").WillReturnError(cause) },
			call: func(db *CommonDB) error {
				_, err := NewSpeakerStore(db).UpdateDescriptors(ctx, "spk", model.SpeakerDescriptors{}, time.Now())
				return err
			},
			want: apperrors.ErrUpdateFailed,
		},
		{
			name:   "transcription update",
			expect: func(mock sqlmock.Sqlmock) { mock.ExpectQuery("UPDATE recordings").WillReturnError(cause) },
			call: func(db *CommonDB) error {
				_, err := NewRecordingStore(db).UpdateTranscription(ctx, "rec", "text", nil, time.Now())
				return err
			},
			want: apperrors.ErrUpdateFailed,
		},
		{
			name:   "speaker delete",
			expect: func(mock sqlmock.Sqlmock) { mock.ExpectExec("DELETE FROM speakers").WillReturnError(cause) },
			call: func(db *CommonDB) error {
				_, err := NewSpeakerStore(db).DeleteAll(ctx)
				return err
			},
			want: apperrors.ErrDeleteFailed,
		},
		{
			name:   "recording delete",
			expect: func(mock sqlmock.Sqlmock) { mock.ExpectExec("DELETE FROM recordings").WillReturnError(cause) },
			call: func(db *CommonDB) error {
				_, err := NewRecordingStore(db).DeleteAll(ctx)
				return err
			},
			want: apperrors.ErrDeleteFailed,
		},
		{
			name:   "speaker list",
			expect: func(mock sqlmock.Sqlmock) { mock.ExpectQuery("SELECT").WillReturnError(cause) },
			call: func(db *CommonDB) error {
				_, err := NewSpeakerStore(db).List(ctx, 0, 10)
				return err
			},
			want: apperrors.ErrQueryFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t, "postgres")
			tt.expect(mock)

			err := tt.call(db)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, cause)
			assert.Equal(t, apperrors.KindMetadata, apperrors.KindOf(err))
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestStores_WriteTimesInUTC(t *testing.T) {
	eastern := time.FixedZone("EDT", -4*60*60)
	local := time.Date(2024, 11, 3, 1, 45, 0, 0, eastern)
	want := time.Date(2024, 11, 3, 5, 45, 0, 0, time.UTC)

	db, mock := newMockDB(t, "postgres")
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE speakers SET updated_at = $1 WHERE id = $2")).
		WithArgs(want, "spk").
		WillReturnRows(sqlmock.NewRows([]string{"id", "participant_code", "dialect", "age_range", "gender", "created_at", "updated_at"}).
			AddRow("spk", "TWI_Speaker_1", nil, nil, nil, want, want))
	_, err := NewSpeakerStore(db).UpdateDescriptors(context.Background(), "spk", model.SpeakerDescriptors{}, local)
	require.NoError(t, err)

	mock.ExpectExec("INSERT INTO speakers").
		WithArgs("spk", "TWI_Speaker_1", nil, nil, nil, want, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))
	err = NewSpeakerStore(db).Create(context.Background(), &model.Speaker{ID: "spk", ParticipantCode: "TWI_Speaker_1", CreatedAt: local})
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSpeakerStore_UpdateDescriptors_OnlySuppliedColumns(t *testing.T) {
	db, mock := newMockDB(t, "postgres")
	store := NewSpeakerStore(db)
	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "participant_code", "dialect", "age_range", "gender", "created_at", "updated_at"}).
		AddRow("spk", "TWI_Speaker_1", "Fante", nil, "male", at, at)
	mock.ExpectQuery(regexp.QuoteMeta(
		"UPDATE speakers SET dialect = $1, gender = $2, updated_at = $3 WHERE id = $4 RETURNING " + speakerColumns,
	)).WithArgs("Fante", "male", at, "spk").WillReturnRows(rows)

	fante, male := "Fante", "male"
	speaker, err := store.UpdateDescriptors(context.Background(), "spk", model.SpeakerDescriptors{Dialect: &fante, Gender: &male}, at)
	require.NoError(t, err)
	assert.Equal(t, "Fante", *speaker.Dialect)
	assert.Nil(t, speaker.AgeRange)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordingStore_CountBySpeaker_Query(t *testing.T) {
	db, mock := newMockDB(t, "postgres")
	store := NewRecordingStore(db)

	mock.ExpectQuery(regexp.QuoteMeta("SUM(CASE WHEN SUBSTR(prompt_id, 1, 12) = $1 THEN 1 ELSE 0 END)")).
		WithArgs(model.SpontaneousPromptPrefix, "spk").
		WillReturnRows(sqlmock.NewRows([]string{"count", "spontaneous"}).AddRow(12, 3))

	counts, err := store.CountBySpeaker(context.Background(), "spk")
	require.NoError(t, err)
	assert.Equal(t, model.RecordingCounts{Total: 12, Spontaneous: 3}, counts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordingStore_CountBySpeaker_Failure(t *testing.T) {
	db, mock := newMockDB(t, "sqlite3")
	store := NewRecordingStore(db)

	mock.ExpectQuery("SELECT COUNT").WillReturnError(sql.ErrConnDone)

	_, err := store.CountBySpeaker(context.Background(), "spk")
	assert.Equal(t, apperrors.KindMetadata, apperrors.KindOf(err))
}

func TestRecordingStore_UpdateTranscription_NotFound(t *testing.T) {
	db, mock := newMockDB(t, "postgres")
	store := NewRecordingStore(db)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE recordings")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := store.UpdateTranscription(context.Background(), "rec", "text", nil, time.Now())
	assert.ErrorIs(t, err, apperrors.ErrRecordingNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordingStore_DeleteAll(t *testing.T) {
	db, mock := newMockDB(t, "postgres")
	store := NewRecordingStore(db)

	mock.ExpectExec("DELETE FROM recordings").WillReturnResult(sqlmock.NewResult(0, 5))

	n, err := store.DeleteAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
