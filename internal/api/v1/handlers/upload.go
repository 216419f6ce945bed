package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"twi-speech/internal/api/middleware"
	"twi-speech/internal/api/v1/dto"
	"twi-speech/internal/api/v1/services"
)

// UploadHandler handles audio submissions
type UploadHandler struct {
	service        services.UploadService
	maxUploadBytes int64
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(service services.UploadService, maxUploadBytes int64) *UploadHandler {
	return &UploadHandler{
		service:        service,
		maxUploadBytes: maxUploadBytes,
	}
}

// UploadAudio handles POST /api/v1/upload/audio
// @Summary Upload one recorded prompt
// @Description Stores the audio file, records its metadata and returns the speaker's progress
// @Tags Upload
// @Accept multipart/form-data
// @Produce json
// @Param participant_code formData string true "Participant code, e.g. TWI_Speaker_001"
// @Param prompt_id formData string true "Prompt identifier"
// @Param prompt_text formData string true "Prompt text"
// @Param file formData file true "Audio file"
// @Success 201 {object} dto.UploadResponse
// @Router /api/v1/upload/audio [post]
func (h *UploadHandler) UploadAudio(c *gin.Context) {
	var req dto.UploadAudioRequest
	if err := middleware.ValidateForm(c, &req, h.maxUploadBytes); err != nil {
		middleware.HandleError(c, err)
		return
	}

	response, err := h.service.UploadAudio(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}
