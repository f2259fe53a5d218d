package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/eximia/exams-backend/internal/config"
	"github.com/eximia/exams-backend/internal/handler"
	"github.com/eximia/exams-backend/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Exam     *handler.ExamHandler
	Question *handler.QuestionHandler
	Option   *handler.OptionHandler
	System   *handler.SystemHandler
}

// SetupRouter configures all Gin route groups.
func SetupRouter(handlers *Handlers, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", handlers.System.Health)

	api := router.Group("/api/v1")
	{
		exams := api.Group("/exams")
		{
			exams.POST("", handlers.Exam.CreateExam)
			exams.POST("/enqueue", handlers.Exam.EnqueueExam)
			exams.GET("", handlers.Exam.SearchExams)
			exams.GET("/:id", handlers.Exam.GetExam)
			exams.PUT("/:id", handlers.Exam.UpdateExam)
			exams.DELETE("/:id", handlers.Exam.DeleteExam)
			exams.POST("/:id/questions", handlers.Question.AddQuestion)
			exams.GET("/:id/questions", handlers.Question.ListQuestions)
		}

		questions := api.Group("/questions")
		{
			questions.GET("/:id", handlers.Question.GetQuestion)
			questions.PUT("/:id", handlers.Question.UpdateQuestion)
			questions.DELETE("/:id", handlers.Question.DeleteQuestion)
			questions.GET("/:id/options", handlers.Option.ListOptions)
		}

		options := api.Group("/options")
		{
			options.GET("/:id", handlers.Option.GetOption)
			options.PUT("/:id", handlers.Option.UpdateOption)
			options.DELETE("/:id", handlers.Option.DeleteOption)
		}
	}

	return router
}
