// Package messaging is the fire-and-forget notification boundary. Creation
// requests are queued on a Redis list and consumed by the ExamRequestWorker;
// lifecycle events land on a second list for interested consumers. The core
// create flow works identically without it.
package messaging

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/eximia/exams-backend/internal/config"
	"github.com/eximia/exams-backend/internal/model"
)

// Event kinds pushed to the event list.
const (
	EventExamCreated = "exam.created"
	EventExamFailed  = "exam.failed"
)

// ExamEvent is the payload pushed to the event list after a create flow
// finishes.
type ExamEvent struct {
	Kind       string    `json:"kind"`
	ExamID     string    `json:"exam_id,omitempty"`
	Title      string    `json:"title"`
	Error      string    `json:"error,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ExamPublisher pushes creation requests and lifecycle events onto Redis
// lists. All methods are best effort: failures are logged, never returned to
// the create flow.
type ExamPublisher struct {
	rdb *redis.Client
	log zerolog.Logger
}

// NewExamPublisher creates a new ExamPublisher.
func NewExamPublisher(rdb *redis.Client, log zerolog.Logger) *ExamPublisher {
	return &ExamPublisher{
		rdb: rdb,
		log: log.With().Str("component", "exam_publisher").Logger(),
	}
}

// EnqueueCreation queues an exam creation request for the worker. Unlike the
// event methods this one reports failure: the caller promised the client the
// request was accepted.
func (p *ExamPublisher) EnqueueCreation(ctx context.Context, req *model.CreateExamRequest) error {
	raw, err := json.Marshal(req)
	if err != nil {
		return err
	}
	if err := p.rdb.RPush(ctx, config.ExamRequestQueue, raw).Err(); err != nil {
		return err
	}
	p.log.Info().Str("title", req.Title).Msg("Exam creation request enqueued")
	return nil
}

// PublishCreated pushes an exam.created event.
func (p *ExamPublisher) PublishCreated(ctx context.Context, exam *model.Exam) {
	p.push(ctx, ExamEvent{
		Kind:       EventExamCreated,
		ExamID:     exam.ID.String(),
		Title:      exam.Title,
		OccurredAt: time.Now().UTC(),
	})
}

// PublishFailed pushes an exam.failed event carrying the failure message.
func (p *ExamPublisher) PublishFailed(ctx context.Context, title string, cause error) {
	p.push(ctx, ExamEvent{
		Kind:       EventExamFailed,
		Title:      title,
		Error:      cause.Error(),
		OccurredAt: time.Now().UTC(),
	})
}

func (p *ExamPublisher) push(ctx context.Context, event ExamEvent) {
	raw, err := json.Marshal(event)
	if err != nil {
		p.log.Error().Err(err).Msg("Marshal event failed")
		return
	}
	if err := p.rdb.RPush(ctx, config.ExamEventList, raw).Err(); err != nil {
		p.log.Error().Err(err).Str("kind", event.Kind).Msg("Push event failed")
	}
}
