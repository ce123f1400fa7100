package routes

import (
	"context"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/loglens/backend/internal/controllers"
	"github.com/loglens/backend/internal/logger"
	"github.com/loglens/backend/internal/services"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes and wires the service graph.
func SetupRoutes(r *gin.Engine, db *gorm.DB, stopChan <-chan struct{}) {
	// Initialize services
	gemini, err := services.NewGeminiService(context.Background(), os.Getenv("GEMINI_API_KEY"))
	if err != nil {
		logger.Fatal("Failed to initialize Gemini service", map[string]interface{}{
			"error": err.Error(),
		})
	}
	analysisService := services.NewAnalysisService(gemini)
	shareService := services.NewShareService(db)

	// Initialize controllers
	analysisController := controllers.NewAnalysisController(analysisService, shareService)
	shareController := controllers.NewShareController(shareService)
	alertController := controllers.NewAlertController(db)

	// Periodically reap expired shares until shutdown.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-stopChan:
				return
			case <-ticker.C:
				if _, err := shareService.CleanupExpired(); err != nil {
					logger.Warn("Share cleanup failed", map[string]interface{}{
						"error": err.Error(),
					})
				}
			}
		}
	}()

	// API routes
	api := r.Group("/api/v1")
	{
		analysis := api.Group("/analysis")
		{
			analysis.POST("", analysisController.Analyze)
			analysis.POST("/parse", analysisController.ParsePreview)
			analysis.GET("/:id/audio", analysisController.GetAudio)
		}

		session := api.Group("/session")
		{
			session.POST("/decode", analysisController.DecodeSession)
		}

		share := api.Group("/share")
		{
			share.POST("", shareController.CreateShare)
			share.GET("/:shareId", shareController.GetShare)
		}

		history := api.Group("/history")
		{
			history.GET("", shareController.ListHistory)
			history.GET("/:id", shareController.GetHistory)
			history.DELETE("/:id", shareController.DeleteHistory)
		}

		alerts := api.Group("/alerts")
		{
			alerts.GET("", alertController.ListRules)
			alerts.POST("", alertController.CreateRule)
			alerts.PUT("/:id", alertController.UpdateRule)
			alerts.DELETE("/:id", alertController.DeleteRule)
		}
	}
}
