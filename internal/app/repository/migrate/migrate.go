package migrate

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"twi-speech/internal/app/model"
	"twi-speech/internal/app/repository"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS speakers (
		id TEXT PRIMARY KEY,
		participant_code TEXT NOT NULL UNIQUE,
		dialect TEXT,
		age_range TEXT,
		gender TEXT,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS recordings (
		id TEXT PRIMARY KEY,
		speaker_id TEXT NOT NULL,
		participant_code TEXT NOT NULL,
		prompt_id TEXT NOT NULL,
		prompt_text TEXT NOT NULL,
		session_id TEXT,
		file_url TEXT NOT NULL,
		object_key TEXT NOT NULL DEFAULT 'unknown_key',
		filename_original TEXT NOT NULL,
		content_type TEXT,
		size_bytes INTEGER,
		recording_duration INTEGER,
		uploaded_at TIMESTAMP NOT NULL,
		transcription TEXT,
		transcription_status TEXT NOT NULL DEFAULT 'pending',
		transcribed_by TEXT,
		transcription_updated_at TIMESTAMP
	)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS speakers (
		id TEXT PRIMARY KEY,
		participant_code TEXT NOT NULL UNIQUE,
		dialect TEXT,
		age_range TEXT,
		gender TEXT,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS recordings (
		id TEXT PRIMARY KEY,
		speaker_id TEXT NOT NULL,
		participant_code TEXT NOT NULL,
		prompt_id TEXT NOT NULL,
		prompt_text TEXT NOT NULL,
		session_id TEXT,
		file_url TEXT NOT NULL,
		object_key TEXT NOT NULL DEFAULT 'unknown_key',
		filename_original TEXT NOT NULL,
		content_type TEXT,
		size_bytes BIGINT,
		recording_duration BIGINT,
		uploaded_at TIMESTAMPTZ NOT NULL,
		transcription TEXT,
		transcription_status TEXT NOT NULL DEFAULT 'pending',
		transcribed_by TEXT,
		transcription_updated_at TIMESTAMPTZ
	)`,
}

// Recordings reference speakers by id without a foreign key; the two tables
// are purged independently.
var indexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_recordings_speaker_id ON recordings (speaker_id)`,
	`CREATE INDEX IF NOT EXISTS idx_recordings_participant_code ON recordings (participant_code)`,
	`CREATE INDEX IF NOT EXISTS idx_recordings_uploaded_at ON recordings (uploaded_at)`,
	`CREATE INDEX IF NOT EXISTS idx_speakers_created_at ON speakers (created_at)`,
}

// Statements returns the DDL for a dialect
func Statements(driverName string) ([]string, error) {
	var schema []string
	switch driverName {
	case "sqlite3":
		schema = sqliteSchema
	case "postgres":
		schema = postgresSchema
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driverName)
	}
	return append(append([]string{}, schema...), indexes...), nil
}

// Migrate creates the tables and indexes if they do not exist
func Migrate(ctx context.Context, db *repository.CommonDB) error {
	statements, err := Statements(db.DriverName())
	if err != nil {
		return err
	}
	for _, stmt := range statements {
		if _, err := db.DB().ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

// CopyStats reports rows handled by Copy
type CopyStats struct {
	Speakers   int
	Recordings int
	Skipped    int
}

// Copy moves every speaker and recording from src into dst. Rows whose id or
// participant code already exist in dst are skipped, so a copy can be rerun.
func Copy(ctx context.Context, src, dst *repository.CommonDB, logger *zap.Logger) (CopyStats, error) {
	var stats CopyStats

	if err := Migrate(ctx, dst); err != nil {
		return stats, err
	}

	speakers, err := repository.NewSpeakerStore(src).List(ctx, 0, 0)
	if err != nil {
		return stats, err
	}
	dstSpeakers := repository.NewSpeakerStore(dst)
	for i := range speakers {
		err := dstSpeakers.Create(ctx, &speakers[i])
		switch {
		case err == nil:
			stats.Speakers++
		case repository.IsDuplicate(err):
			stats.Skipped++
		default:
			return stats, err
		}
	}

	recordings, err := repository.NewRecordingStore(src).List(ctx, model.RecordingFilter{})
	if err != nil {
		return stats, err
	}
	dstRecordings := repository.NewRecordingStore(dst)
	for i := range recordings {
		err := dstRecordings.Create(ctx, &recordings[i])
		switch {
		case err == nil:
			stats.Recordings++
		case repository.IsUniqueViolation(err):
			stats.Skipped++
		default:
			return stats, err
		}
	}

	logger.Info("metadata copy completed",
		zap.Int("speakers", stats.Speakers),
		zap.Int("recordings", stats.Recordings),
		zap.Int("skipped", stats.Skipped),
	)
	return stats, nil
}
