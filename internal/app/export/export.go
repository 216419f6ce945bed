package export

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/tealeg/xlsx"
	"go.uber.org/zap"

	"twi-speech/internal/app/logging"
	"twi-speech/internal/app/model"
)

// ContentType is the media type of generated workbooks
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var speakerColumns = []string{
	"id", "participant_code", "dialect", "age_range", "gender",
	"total_recordings", "recordings_complete",
	"created_at", "updated_at",
}

var recordingColumns = []string{
	"id", "speaker_id", "participant_code", "prompt_id", "prompt_text",
	"speaker_dialect", "speaker_age_range", "speaker_gender",
	"file_url", "object_key", "filename_original", "content_type",
	"size_bytes", "recording_duration", "uploaded_at", "session_id",
	"transcription", "transcription_status", "transcribed_by",
	"transcription_updated_at",
}

// SpeakerLister lists speakers newest first. A zero limit returns all rows.
type SpeakerLister interface {
	List(ctx context.Context, skip, limit int) ([]model.Speaker, error)
}

// RecordingLister lists recordings newest first
type RecordingLister interface {
	List(ctx context.Context, filter model.RecordingFilter) ([]model.Recording, error)
}

// ProgressReader computes a speaker's progress
type ProgressReader interface {
	Progress(ctx context.Context, speakerID string) model.ProgressResult
}

// Exporter renders the speaker and recording tables as xlsx workbooks
type Exporter struct {
	speakers   SpeakerLister
	recordings RecordingLister
	progress   ProgressReader
	location   *time.Location
	logger     *zap.Logger
}

// NewExporter creates an exporter. Timestamps are rendered in loc.
func NewExporter(speakers SpeakerLister, recordings RecordingLister, progress ProgressReader, loc *time.Location, logger *zap.Logger) *Exporter {
	if loc == nil {
		loc = time.UTC
	}
	return &Exporter{
		speakers:   speakers,
		recordings: recordings,
		progress:   progress,
		location:   loc,
		logger:     logging.OrNop(logger).Named("export"),
	}
}

// FileName returns the attachment name for an export of kind taken at now
func FileName(kind string, now time.Time) string {
	return fmt.Sprintf("twi_%s_export_%s.xlsx", kind, now.Format("20060102_150405"))
}

// Speakers writes every speaker with live progress to w and returns the row count
func (e *Exporter) Speakers(ctx context.Context, w io.Writer, tracker Tracker) (int, error) {
	tracker = orNopTracker(tracker)

	speakers, err := e.speakers.List(ctx, 0, 0)
	if err != nil {
		return 0, err
	}
	if len(speakers) == 0 {
		e.logger.Warn("no speaker data found for export")
	}

	file, sheet, err := newWorkbook("Speakers", speakerColumns)
	if err != nil {
		return 0, err
	}

	tracker.Start(len(speakers), "Exporting speakers")
	for i := range speakers {
		s := &speakers[i]
		p := e.progress.Progress(ctx, s.ID)

		row := sheet.AddRow()
		addString(row, s.ID)
		addString(row, s.ParticipantCode)
		addOptional(row, s.Dialect)
		addOptional(row, s.AgeRange)
		addOptional(row, s.Gender)
		if p.Known() {
			row.AddCell().SetInt(p.TotalRecordings)
			addString(row, strconv.FormatBool(p.IsComplete))
		} else {
			addString(row, "")
			addString(row, string(model.ProgressUnknown))
		}
		addString(row, e.formatTime(s.CreatedAt))
		addOptionalTime(row, s.UpdatedAt, e.formatTime)
		tracker.Increment()
	}
	tracker.Done()

	if err := file.Write(w); err != nil {
		return 0, fmt.Errorf("failed to write speaker workbook: %w", err)
	}
	e.logger.Info("exported speakers", zap.Int("rows", len(speakers)))
	return len(speakers), nil
}

// Recordings writes every recording merged with its speaker's descriptors to w
func (e *Exporter) Recordings(ctx context.Context, w io.Writer, tracker Tracker) (int, error) {
	tracker = orNopTracker(tracker)

	recordings, err := e.recordings.List(ctx, model.RecordingFilter{})
	if err != nil {
		return 0, err
	}
	speakers, err := e.speakers.List(ctx, 0, 0)
	if err != nil {
		return 0, err
	}
	byID := make(map[string]*model.Speaker, len(speakers))
	for i := range speakers {
		byID[speakers[i].ID] = &speakers[i]
	}
	if len(recordings) == 0 {
		e.logger.Warn("no recording data found for export")
	}

	file, sheet, err := newWorkbook("Recordings", recordingColumns)
	if err != nil {
		return 0, err
	}

	tracker.Start(len(recordings), "Exporting recordings")
	for i := range recordings {
		r := &recordings[i]
		// Recordings may outlive their speaker after a speaker purge
		spk := byID[r.SpeakerID]
		if spk == nil {
			spk = &model.Speaker{}
		}

		row := sheet.AddRow()
		addString(row, r.ID)
		addString(row, r.SpeakerID)
		addString(row, r.ParticipantCode)
		addString(row, r.PromptID)
		addString(row, r.PromptText)
		addOptional(row, spk.Dialect)
		addOptional(row, spk.AgeRange)
		addOptional(row, spk.Gender)
		addString(row, r.FileURL)
		addString(row, r.ObjectKey)
		addString(row, r.FilenameOriginal)
		addOptional(row, r.ContentType)
		addOptionalInt(row, r.SizeBytes)
		addOptionalInt(row, r.RecordingDuration)
		addString(row, e.formatTime(r.UploadedAt))
		addOptional(row, r.SessionID)
		addOptional(row, r.Transcription)
		addString(row, string(r.TranscriptionStatus))
		addOptional(row, r.TranscribedBy)
		addOptionalTime(row, r.TranscriptionUpdatedAt, e.formatTime)
		tracker.Increment()
	}
	tracker.Done()

	if err := file.Write(w); err != nil {
		return 0, fmt.Errorf("failed to write recording workbook: %w", err)
	}
	e.logger.Info("exported recordings", zap.Int("rows", len(recordings)))
	return len(recordings), nil
}

func (e *Exporter) formatTime(t time.Time) string {
	return t.In(e.location).Format(time.RFC3339)
}

func newWorkbook(sheetName string, columns []string) (*xlsx.File, *xlsx.Sheet, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to add sheet %s: %w", sheetName, err)
	}
	header := sheet.AddRow()
	for _, col := range columns {
		header.AddCell().Value = col
	}
	return file, sheet, nil
}

func addString(row *xlsx.Row, v string) {
	row.AddCell().Value = v
}

func addOptional(row *xlsx.Row, v *string) {
	if v == nil {
		row.AddCell()
		return
	}
	row.AddCell().Value = *v
}

func addOptionalInt(row *xlsx.Row, v *int64) {
	if v == nil {
		row.AddCell()
		return
	}
	row.AddCell().SetInt64(*v)
}

func addOptionalTime(row *xlsx.Row, v *time.Time, format func(time.Time) string) {
	if v == nil {
		row.AddCell()
		return
	}
	row.AddCell().Value = format(*v)
}
