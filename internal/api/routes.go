package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"workout-tracker/internal/observability"
	"workout-tracker/internal/service"
)

// SetupRoutes wires every handler into the router.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	planService service.WorkoutPlanService,
	sessionService service.WorkoutSessionService,
	sessionExerciseService service.SessionExerciseService,
	exerciseService service.ExerciseService,
) {
	authHandler := NewAuthHandler(authService)
	planHandler := NewWorkoutPlanHandler(planService)
	sessionHandler := NewWorkoutSessionHandler(sessionService)
	sessionExerciseHandler := NewSessionExerciseHandler(sessionExerciseService)
	exerciseHandler := NewExerciseHandler(exerciseService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.Use(observability.RequestMetrics())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := api.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", authHandler.Me)

		// --- Plan Routes ---
		planGroup := protected.Group("/plans")
		{
			planGroup.POST("", planHandler.Create)
			planGroup.GET("", planHandler.List)
			planGroup.DELETE("", planHandler.DeleteAll)
			planGroup.GET("/:planId", planHandler.GetByID)
			planGroup.PATCH("/:planId", planHandler.Update)
			planGroup.DELETE("/:planId", planHandler.Delete)
			planGroup.POST("/:planId/copy", planHandler.Copy)

			// --- Session Routes ---
			sessionGroup := planGroup.Group("/:planId/sessions")
			{
				sessionGroup.POST("", sessionHandler.Create)
				sessionGroup.GET("", sessionHandler.List)
				sessionGroup.DELETE("", sessionHandler.DeleteAll)
				sessionGroup.GET("/:sessionId", sessionHandler.GetByID)
				sessionGroup.PATCH("/:sessionId", sessionHandler.Update)
				sessionGroup.DELETE("/:sessionId", sessionHandler.Delete)
				sessionGroup.PATCH("/:sessionId/status", sessionHandler.UpdateStatus)

				// --- Exercise-Log Routes ---
				entryGroup := sessionGroup.Group("/:sessionId/exercises")
				{
					entryGroup.POST("", sessionExerciseHandler.Create)
					entryGroup.GET("", sessionExerciseHandler.List)
					entryGroup.DELETE("", sessionExerciseHandler.DeleteAll)
					entryGroup.GET("/:exerciseId", sessionExerciseHandler.GetByID)
					entryGroup.PATCH("/:exerciseId", sessionExerciseHandler.Update)
					entryGroup.DELETE("/:exerciseId", sessionExerciseHandler.Delete)
					entryGroup.PATCH("/:exerciseId/completed", sessionExerciseHandler.MarkCompleted)
				}
			}
		}

		// --- Catalog Routes ---
		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.GET("", exerciseHandler.List)
			exerciseGroup.GET("/:exerciseId", exerciseHandler.GetByID)
			exerciseGroup.GET("/:exerciseId/video", exerciseHandler.GetVideoDownloadURL)
			exerciseGroup.POST("/:exerciseId/video", exerciseHandler.AttachVideo)
			exerciseGroup.POST("/:exerciseId/video/upload-url", exerciseHandler.RequestVideoUploadURL)
		}
	}
}
