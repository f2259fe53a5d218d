package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/eximia/exams-backend/internal/config"
	"github.com/eximia/exams-backend/internal/database"
	"github.com/eximia/exams-backend/internal/handler"
	"github.com/eximia/exams-backend/internal/logger"
	"github.com/eximia/exams-backend/internal/messaging"
	"github.com/eximia/exams-backend/internal/repository"
	"github.com/eximia/exams-backend/internal/router"
	"github.com/eximia/exams-backend/internal/rules"
	"github.com/eximia/exams-backend/internal/service"
	"github.com/eximia/exams-backend/internal/validator"
	"github.com/eximia/exams-backend/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Float64("total_points", cfg.ExamTotalPoints).
		Msg("Starting Eximia Exams Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	examRepo := repository.NewExamRepository(pool)
	questionRepo := repository.NewQuestionRepository(pool)
	optionRepo := repository.NewOptionRepository(pool)

	// ─── Validation Registry and Messaging ─────────────────────────────
	registry := rules.DefaultRegistry()
	publisher := messaging.NewExamPublisher(rdb, log)

	// ─── Initialize Services ──────────────────────────────────────────
	examService := service.NewExamService(
		examRepo, questionRepo, optionRepo,
		registry, publisher,
		cfg.ExamTotalPoints, cfg.DefaultPassingScore,
		log,
	)
	questionService := service.NewQuestionService(examRepo, questionRepo, optionRepo, registry, log)
	optionService := service.NewOptionService(questionRepo, optionRepo, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Exam:     handler.NewExamHandler(examService, publisher),
		Question: handler.NewQuestionHandler(questionService),
		Option:   handler.NewOptionHandler(optionService),
		System:   handler.NewSystemHandler(pool, rdb),
	}

	// ─── Start Background Worker ──────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())
	requestWorker := worker.NewExamRequestWorker(rdb, examService, log)
	go requestWorker.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop the request worker and let in-flight work finish.
	workerCancel()
	time.Sleep(2 * time.Second)

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
