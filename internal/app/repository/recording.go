package repository

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	apperrors "twi-speech/internal/app/errors"
	"twi-speech/internal/app/model"
)

const recordingColumns = `id, speaker_id, participant_code, prompt_id, prompt_text, session_id,
	file_url, object_key, filename_original, content_type, size_bytes, recording_duration,
	uploaded_at, transcription, transcription_status, transcribed_by, transcription_updated_at`

const recordingColumnCount = 17

// RecordingStore implements RecordingDAO for any supported dialect
type RecordingStore struct {
	*CommonDB
}

// NewRecordingStore creates a recording ledger over db
func NewRecordingStore(db *CommonDB) *RecordingStore {
	return &RecordingStore{CommonDB: db}
}

func scanRecording(row interface{ Scan(...interface{}) error }) (*model.Recording, error) {
	var (
		r      model.Recording
		status string
	)
	err := row.Scan(
		&r.ID, &r.SpeakerID, &r.ParticipantCode, &r.PromptID, &r.PromptText, &r.SessionID,
		&r.FileURL, &r.ObjectKey, &r.FilenameOriginal, &r.ContentType, &r.SizeBytes, &r.RecordingDuration,
		&r.UploadedAt, &r.Transcription, &status, &r.TranscribedBy, &r.TranscriptionUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	r.TranscriptionStatus = model.TranscriptionStatus(status)
	return &r, nil
}

// Create inserts a recording row
func (r *RecordingStore) Create(ctx context.Context, rec *model.Recording) error {
	if rec.TranscriptionStatus == "" {
		rec.TranscriptionStatus = model.TranscriptionPending
	}
	if rec.ObjectKey == "" {
		rec.ObjectKey = model.UnknownObjectKey
	}

	query := fmt.Sprintf(
		"INSERT INTO recordings (%s) VALUES (%s)",
		recordingColumns, r.placeholderList(1, recordingColumnCount),
	)

	_, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.SpeakerID, rec.ParticipantCode, rec.PromptID, rec.PromptText, rec.SessionID,
		rec.FileURL, rec.ObjectKey, rec.FilenameOriginal, rec.ContentType, rec.SizeBytes, rec.RecordingDuration,
		utc(rec.UploadedAt), rec.Transcription, string(rec.TranscriptionStatus), rec.TranscribedBy, utcPtr(rec.TranscriptionUpdatedAt),
	)
	if err != nil {
		return apperrors.Fail(apperrors.ErrInsertFailed, err, "failed to insert recording")
	}
	return nil
}

// List returns recordings newest first
func (r *RecordingStore) List(ctx context.Context, filter model.RecordingFilter) ([]model.Recording, error) {
	var (
		where []string
		args  []interface{}
	)
	if filter.ParticipantCode != "" {
		args = append(args, filter.ParticipantCode)
		where = append(where, fmt.Sprintf("participant_code = %s", r.placeholders(len(args))))
	}
	if filter.SpontaneousOnly {
		args = append(args, model.SpontaneousPromptPrefix)
		where = append(where, r.spontaneousPredicate(len(args)))
	}

	query := fmt.Sprintf("SELECT %s FROM recordings", recordingColumns)
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY uploaded_at DESC" + r.pageClause(filter.Skip, filter.Limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Metadata(err, "failed to list recordings")
	}
	defer rows.Close()

	recordings := make([]model.Recording, 0)
	for rows.Next() {
		rec, err := scanRecording(rows)
		if err != nil {
			return nil, apperrors.Metadata(err, "failed to scan recording")
		}
		recordings = append(recordings, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Metadata(err, "failed to list recordings")
	}
	return recordings, nil
}

// spontaneousPredicate compares the prompt prefix literally; LIKE would treat '_' as a wildcard
func (r *RecordingStore) spontaneousPredicate(n int) string {
	return fmt.Sprintf("SUBSTR(prompt_id, 1, %d) = %s", len(model.SpontaneousPromptPrefix), r.placeholders(n))
}

// CountBySpeaker returns the total and spontaneous recording counts for a speaker
func (r *RecordingStore) CountBySpeaker(ctx context.Context, speakerID string) (model.RecordingCounts, error) {
	query := fmt.Sprintf(
		`SELECT COUNT(*), COALESCE(SUM(CASE WHEN %s THEN 1 ELSE 0 END), 0)
		 FROM recordings WHERE speaker_id = %s`,
		r.spontaneousPredicate(1), r.placeholders(2),
	)

	var counts model.RecordingCounts
	err := r.db.QueryRowContext(ctx, query, model.SpontaneousPromptPrefix, speakerID).
		Scan(&counts.Total, &counts.Spontaneous)
	if err != nil {
		return model.RecordingCounts{}, apperrors.Metadata(err, "failed to count recordings")
	}
	return counts, nil
}

// UpdateTranscription sets the transcription group in a single statement
func (r *RecordingStore) UpdateTranscription(ctx context.Context, id, text string, transcribedBy *string, at time.Time) (*model.Recording, error) {
	query := fmt.Sprintf(
		`UPDATE recordings
		 SET transcription = %s, transcription_status = %s, transcribed_by = %s, transcription_updated_at = %s
		 WHERE id = %s
		 RETURNING %s`,
		r.placeholders(1), r.placeholders(2), r.placeholders(3), r.placeholders(4), r.placeholders(5),
		recordingColumns,
	)

	rec, err := scanRecording(r.db.QueryRowContext(ctx, query,
		text, string(model.TranscriptionTranscribed), transcribedBy, utc(at), id,
	))
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrRecordingNotFound
	}
	if err != nil {
		return nil, apperrors.Fail(apperrors.ErrUpdateFailed, err, "failed to update transcription")
	}
	return rec, nil
}

// ListKeys enumerates the id and object key of every recording
func (r *RecordingStore) ListKeys(ctx context.Context) ([]model.RecordingKey, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, object_key FROM recordings")
	if err != nil {
		return nil, apperrors.Metadata(err, "failed to enumerate recordings")
	}
	defer rows.Close()

	keys := make([]model.RecordingKey, 0)
	for rows.Next() {
		var (
			k         model.RecordingKey
			objectKey sql.NullString
		)
		if err := rows.Scan(&k.ID, &objectKey); err != nil {
			return nil, apperrors.Metadata(err, "failed to scan recording key")
		}
		k.ObjectKey = objectKey.String
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Metadata(err, "failed to enumerate recordings")
	}
	return keys, nil
}

// DeleteAll removes every recording row
func (r *RecordingStore) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM recordings")
	if err != nil {
		return 0, apperrors.Fail(apperrors.ErrDeleteFailed, err, "failed to delete recordings")
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Fail(apperrors.ErrDeleteFailed, err, "failed to count deleted recordings")
	}
	return n, nil
}
