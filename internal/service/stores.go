package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/eximia/exams-backend/internal/model"
)

// The services talk to persistence through these narrow interfaces, satisfied
// by the pgx repositories in internal/repository. Tests substitute in-memory
// fakes.

// ExamStore persists exam shells.
type ExamStore interface {
	Create(ctx context.Context, e *model.Exam) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Exam, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	Update(ctx context.Context, e *model.Exam) error
	SetQuestionIDs(ctx context.Context, id uuid.UUID, questionIDs []uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, criteria model.ExamCriteria, limit, offset int) ([]model.Exam, int, error)
}

// QuestionStore persists questions.
type QuestionStore interface {
	Create(ctx context.Context, q *model.Question) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Question, error)
	ListByExamID(ctx context.Context, examID uuid.UUID) ([]model.Question, error)
	Update(ctx context.Context, q *model.Question) error
	SetOptionIDs(ctx context.Context, id uuid.UUID, optionIDs []uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByExamID(ctx context.Context, examID uuid.UUID) error
}

// OptionStore persists options.
type OptionStore interface {
	Create(ctx context.Context, o *model.Option) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Option, error)
	ListByQuestionID(ctx context.Context, questionID uuid.UUID) ([]model.Option, error)
	Update(ctx context.Context, o *model.Option) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByQuestionID(ctx context.Context, questionID uuid.UUID) error
	DeleteByQuestionIDs(ctx context.Context, questionIDs []uuid.UUID) error
}

// EventPublisher is the fire-and-forget notification channel. Implementations
// must not fail the calling flow; errors are logged, not returned.
type EventPublisher interface {
	PublishCreated(ctx context.Context, exam *model.Exam)
	PublishFailed(ctx context.Context, title string, cause error)
}
