package routes

import (
	"github.com/gin-gonic/gin"
	"speech-kit/internal/api/v1/handlers"
	"speech-kit/internal/api/v1/services"
)

// ServiceContainer holds all services needed by handlers
type ServiceContainer struct {
	SpeechService  services.SpeechService
	MaxUploadBytes int64
}

// RegisterRoutes registers the speech routes at the root of router
func RegisterRoutes(router gin.IRoutes, container *ServiceContainer) {
	router.GET("/health", handlers.Health)

	speechHandler := handlers.NewSpeechHandler(container.SpeechService, container.MaxUploadBytes)
	router.POST("/speech-to-text", speechHandler.Transcribe)
}
