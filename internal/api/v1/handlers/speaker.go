package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"twi-speech/internal/api/middleware"
	"twi-speech/internal/api/v1/dto"
	"twi-speech/internal/api/v1/services"
)

// SpeakerHandler handles speaker-related API endpoints
type SpeakerHandler struct {
	service services.SpeakerService
}

// NewSpeakerHandler creates a new speaker handler
func NewSpeakerHandler(service services.SpeakerService) *SpeakerHandler {
	return &SpeakerHandler{service: service}
}

// List handles GET /api/v1/speakers
func (h *SpeakerHandler) List(c *gin.Context) {
	var query dto.ListSpeakersQuery
	if err := middleware.ValidateQuery(c, &query); err != nil {
		middleware.HandleError(c, err)
		return
	}

	response, err := h.service.ListSpeakers(c.Request.Context(), query)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/v1/speakers/:participant_code
func (h *SpeakerHandler) Get(c *gin.Context) {
	code := strings.TrimSpace(c.Param("participant_code"))

	response, err := h.service.GetSpeaker(c.Request.Context(), code)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// DeleteAll handles DELETE /api/v1/speakers/all?confirm=true
// Recordings and stored objects are not affected
func (h *SpeakerHandler) DeleteAll(c *gin.Context) {
	var query dto.ConfirmQuery
	if err := middleware.ValidateQuery(c, &query); err != nil {
		middleware.HandleError(c, err)
		return
	}

	response, err := h.service.DeleteAllSpeakers(c.Request.Context(), query.Confirmed())
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
