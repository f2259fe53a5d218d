package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/eximia/exams-backend/internal/config"
	"github.com/eximia/exams-backend/internal/model"
	"github.com/eximia/exams-backend/internal/service"
)

const requestPollTimeout = 1 * time.Second

// ExamRequestWorker consumes queued exam creation requests and runs the same
// create flow as the HTTP endpoint. Validation failures are terminal for the
// message: the service already published an exam.failed event, so the message
// is dropped, not requeued.
type ExamRequestWorker struct {
	rdb         *redis.Client
	examService *service.ExamService
	log         zerolog.Logger
}

// NewExamRequestWorker creates a new ExamRequestWorker.
func NewExamRequestWorker(rdb *redis.Client, examService *service.ExamService, log zerolog.Logger) *ExamRequestWorker {
	return &ExamRequestWorker{
		rdb:         rdb,
		examService: examService,
		log:         log.With().Str("component", "exam_request_worker").Logger(),
	}
}

// Start runs the poll loop until ctx is cancelled.
func (w *ExamRequestWorker) Start(ctx context.Context) {
	w.log.Info().Msg("ExamRequestWorker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("ExamRequestWorker stopped")
			return
		default:
			item, err := w.rdb.BLPop(ctx, requestPollTimeout, config.ExamRequestQueue).Result()
			if err != nil {
				if err != redis.Nil && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}
			if len(item) < 2 {
				continue
			}

			var req model.CreateExamRequest
			if err := json.Unmarshal([]byte(item[1]), &req); err != nil {
				w.log.Error().Err(err).Msg("Invalid JSON payload, dropping message")
				continue
			}

			if _, err := w.examService.Create(ctx, &req); err != nil {
				w.log.Warn().Err(err).Str("title", req.Title).Msg("Queued exam creation failed")
				continue
			}
			w.log.Info().Str("title", req.Title).Msg("Queued exam creation processed")
		}
	}
}
