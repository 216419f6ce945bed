package handlers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"twi-speech/internal/api/middleware"
	"twi-speech/internal/api/v1/services"
	"twi-speech/internal/app/export"
	"twi-speech/internal/app/utils"
)

// ExportHandler handles spreadsheet downloads
type ExportHandler struct {
	service services.ExportService
	now     utils.Clock
}

// NewExportHandler creates a new export handler
func NewExportHandler(service services.ExportService, clock utils.Clock) *ExportHandler {
	if clock == nil {
		clock = utils.ClockIn(nil)
	}
	return &ExportHandler{
		service: service,
		now:     clock,
	}
}

// Speakers handles GET /api/v1/speakers/export/excel
func (h *ExportHandler) Speakers(c *gin.Context) {
	h.send(c, "speakers", h.service.ExportSpeakers)
}

// Recordings handles GET /api/v1/recordings/export/excel
func (h *ExportHandler) Recordings(c *gin.Context) {
	h.send(c, "recordings", h.service.ExportRecordings)
}

// send renders the whole workbook before writing so that failures still
// produce a proper error response
func (h *ExportHandler) send(c *gin.Context, kind string, render func(context.Context, io.Writer) error) {
	var buf bytes.Buffer
	if err := render(c.Request.Context(), &buf); err != nil {
		middleware.HandleError(c, err)
		return
	}

	filename := export.FileName(kind, h.now())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}
