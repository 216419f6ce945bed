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

const speakerColumns = "id, participant_code, dialect, age_range, gender, created_at, updated_at"

// SpeakerStore implements SpeakerDAO for any supported dialect
type SpeakerStore struct {
	*CommonDB
}

// NewSpeakerStore creates a speaker store over db
func NewSpeakerStore(db *CommonDB) *SpeakerStore {
	return &SpeakerStore{CommonDB: db}
}

func scanSpeaker(row interface{ Scan(...interface{}) error }) (*model.Speaker, error) {
	var s model.Speaker
	err := row.Scan(&s.ID, &s.ParticipantCode, &s.Dialect, &s.AgeRange, &s.Gender, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// FindByCode looks a speaker up by participant code
func (s *SpeakerStore) FindByCode(ctx context.Context, participantCode string) (*model.Speaker, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM speakers WHERE participant_code = %s",
		speakerColumns, s.placeholders(1),
	)

	speaker, err := scanSpeaker(s.db.QueryRowContext(ctx, query, participantCode))
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrSpeakerNotFound
	}
	if err != nil {
		return nil, apperrors.Metadata(err, "failed to look up speaker")
	}
	return speaker, nil
}

// Create inserts a new speaker row
func (s *SpeakerStore) Create(ctx context.Context, speaker *model.Speaker) error {
	query := fmt.Sprintf(
		"INSERT INTO speakers (%s) VALUES (%s)",
		speakerColumns, s.placeholderList(1, 7),
	)

	_, err := s.db.ExecContext(ctx, query,
		speaker.ID, speaker.ParticipantCode, speaker.Dialect, speaker.AgeRange,
		speaker.Gender, utc(speaker.CreatedAt), utcPtr(speaker.UpdatedAt),
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return apperrors.Wrap(ErrDuplicateSpeaker, speaker.ParticipantCode)
		}
		return apperrors.Fail(apperrors.ErrInsertFailed, err, "failed to insert speaker")
	}
	return nil
}

// UpdateDescriptors writes the supplied descriptors in one statement
func (s *SpeakerStore) UpdateDescriptors(ctx context.Context, id string, d model.SpeakerDescriptors, updatedAt time.Time) (*model.Speaker, error) {
	var (
		sets []string
		args []interface{}
	)
	add := func(column string, value *string) {
		if value == nil {
			return
		}
		args = append(args, *value)
		sets = append(sets, fmt.Sprintf("%s = %s", column, s.placeholders(len(args))))
	}
	add("dialect", d.Dialect)
	add("age_range", d.AgeRange)
	add("gender", d.Gender)

	args = append(args, utc(updatedAt))
	sets = append(sets, fmt.Sprintf("updated_at = %s", s.placeholders(len(args))))
	args = append(args, id)

	query := fmt.Sprintf(
		"UPDATE speakers SET %s WHERE id = %s RETURNING %s",
		strings.Join(sets, ", "), s.placeholders(len(args)), speakerColumns,
	)

	speaker, err := scanSpeaker(s.db.QueryRowContext(ctx, query, args...))
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrSpeakerNotFound
	}
	if err != nil {
		return nil, apperrors.Fail(apperrors.ErrUpdateFailed, err, "failed to update speaker")
	}
	return speaker, nil
}

// List returns speakers newest first
func (s *SpeakerStore) List(ctx context.Context, skip, limit int) ([]model.Speaker, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM speakers ORDER BY created_at DESC%s",
		speakerColumns, s.pageClause(skip, limit),
	)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Metadata(err, "failed to list speakers")
	}
	defer rows.Close()

	speakers := make([]model.Speaker, 0)
	for rows.Next() {
		speaker, err := scanSpeaker(rows)
		if err != nil {
			return nil, apperrors.Metadata(err, "failed to scan speaker")
		}
		speakers = append(speakers, *speaker)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Metadata(err, "failed to list speakers")
	}
	return speakers, nil
}

// DeleteAll removes every speaker row. Recordings are left untouched.
func (s *SpeakerStore) DeleteAll(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM speakers")
	if err != nil {
		return 0, apperrors.Fail(apperrors.ErrDeleteFailed, err, "failed to delete speakers")
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Fail(apperrors.ErrDeleteFailed, err, "failed to count deleted speakers")
	}
	return n, nil
}
