package routes

import (
	"github.com/gin-gonic/gin"

	"twi-speech/internal/api/middleware"
	"twi-speech/internal/api/v1/handlers"
	"twi-speech/internal/api/v1/services"
	"twi-speech/internal/app/utils"
)

// ServiceContainer holds all services needed by handlers
type ServiceContainer struct {
	UploadService    services.UploadService
	SpeakerService   services.SpeakerService
	RecordingService services.RecordingService
	ExportService    services.ExportService

	MaxUploadBytes int64
	Clock          utils.Clock
}

// RegisterRoutes registers all v1 API routes
func RegisterRoutes(router *gin.RouterGroup, container *ServiceContainer) {
	uploadHandler := handlers.NewUploadHandler(container.UploadService, container.MaxUploadBytes)
	router.POST("/upload/audio", middleware.BodyLimit(container.MaxUploadBytes), uploadHandler.UploadAudio)

	exportHandler := handlers.NewExportHandler(container.ExportService, container.Clock)

	speakerHandler := handlers.NewSpeakerHandler(container.SpeakerService)
	speakers := router.Group("/speakers")
	{
		speakers.GET("", speakerHandler.List)
		speakers.GET("/export/excel", exportHandler.Speakers)
		speakers.GET("/:participant_code", speakerHandler.Get)
		speakers.DELETE("/all", speakerHandler.DeleteAll)
	}

	recordingHandler := handlers.NewRecordingHandler(container.RecordingService)
	recordings := router.Group("/recordings")
	{
		recordings.GET("", recordingHandler.List)
		recordings.GET("/spontaneous", recordingHandler.ListSpontaneous)
		recordings.GET("/export/excel", exportHandler.Recordings)
		recordings.PATCH("/:recording_id/transcription", recordingHandler.UpdateTranscription)
		recordings.DELETE("/all", recordingHandler.DeleteAll)
	}
}
