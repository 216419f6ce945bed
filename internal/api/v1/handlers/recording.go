package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"twi-speech/internal/api/middleware"
	"twi-speech/internal/api/v1/dto"
	"twi-speech/internal/api/v1/services"
)

// RecordingHandler handles recording-related API endpoints
type RecordingHandler struct {
	service services.RecordingService
}

// NewRecordingHandler creates a new recording handler
func NewRecordingHandler(service services.RecordingService) *RecordingHandler {
	return &RecordingHandler{service: service}
}

// List handles GET /api/v1/recordings
func (h *RecordingHandler) List(c *gin.Context) {
	var query dto.ListRecordingsQuery
	if err := middleware.ValidateQuery(c, &query); err != nil {
		middleware.HandleError(c, err)
		return
	}

	response, err := h.service.ListRecordings(c.Request.Context(), query)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ListSpontaneous handles GET /api/v1/recordings/spontaneous
func (h *RecordingHandler) ListSpontaneous(c *gin.Context) {
	var query dto.ListRecordingsQuery
	if err := middleware.ValidateQuery(c, &query); err != nil {
		middleware.HandleError(c, err)
		return
	}

	response, err := h.service.ListSpontaneousRecordings(c.Request.Context(), query)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// UpdateTranscription handles PATCH /api/v1/recordings/:recording_id/transcription
// @Summary Attach a transcription to a recording
// @Tags Recordings
// @Accept json
// @Produce json
// @Param recording_id path string true "Recording ID"
// @Param request body dto.UpdateTranscriptionRequest true "Transcription"
// @Success 200 {object} dto.RecordingResponse
// @Router /api/v1/recordings/{recording_id}/transcription [patch]
func (h *RecordingHandler) UpdateTranscription(c *gin.Context) {
	var req dto.UpdateTranscriptionRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	response, err := h.service.UpdateTranscription(c.Request.Context(), c.Param("recording_id"), &req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// DeleteAll handles DELETE /api/v1/recordings/all?confirm=true
// A purge that deleted objects but could not clear the ledger answers 500
// with the partial summary so the failed keys are not lost.
func (h *RecordingHandler) DeleteAll(c *gin.Context) {
	var query dto.ConfirmQuery
	if err := middleware.ValidateQuery(c, &query); err != nil {
		middleware.HandleError(c, err)
		return
	}

	response, err := h.service.DeleteAllRecordings(c.Request.Context(), query.Confirmed())
	if err != nil {
		if response == nil {
			middleware.HandleError(c, err)
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, response)
		return
	}

	c.JSON(http.StatusOK, response)
}
