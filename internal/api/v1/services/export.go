package services

import (
	"context"
	"io"

	"twi-speech/internal/app/export"
)

// ExportServiceImpl implements ExportService
type ExportServiceImpl struct {
	exporter *export.Exporter
}

// NewExportService creates a new export service
func NewExportService(exporter *export.Exporter) ExportService {
	return &ExportServiceImpl{exporter: exporter}
}

// ExportSpeakers writes the speaker workbook
func (s *ExportServiceImpl) ExportSpeakers(ctx context.Context, writer io.Writer) error {
	_, err := s.exporter.Speakers(ctx, writer, nil)
	return err
}

// ExportRecordings writes the recording workbook
func (s *ExportServiceImpl) ExportRecordings(ctx context.Context, writer io.Writer) error {
	_, err := s.exporter.Recordings(ctx, writer, nil)
	return err
}
