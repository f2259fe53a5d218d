package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eximia/exams-backend/internal/model"
)

// QuestionRepository handles question data access.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

const questionColumns = `id, exam_id, question_text, question_type, points, explanation,
	option_ids, order_index, created_at, updated_at`

func scanQuestion(row pgx.Row, q *model.Question) error {
	return row.Scan(&q.ID, &q.ExamID, &q.QuestionText, &q.QuestionType, &q.Points,
		&q.Explanation, &q.OptionIDs, &q.OrderIndex, &q.CreatedAt, &q.UpdatedAt)
}

// Create inserts a new question and fills in the generated ID and timestamps.
func (r *QuestionRepository) Create(ctx context.Context, q *model.Question) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO questions (exam_id, question_text, question_type, points, explanation, option_ids, order_index)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at`,
		q.ExamID, q.QuestionText, q.QuestionType, q.Points, q.Explanation, q.OptionIDs, q.OrderIndex,
	).Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt)
}

// GetByID retrieves a question by its UUID.
func (r *QuestionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Question, error) {
	q := &model.Question{}
	err := scanQuestion(r.pool.QueryRow(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE id = $1`, id), q)
	if err != nil {
		return nil, notFound(err)
	}
	return q, nil
}

// ExistsByID reports whether a question with the given ID exists.
func (r *QuestionRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM questions WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

// ListByExamID retrieves all questions for an exam, ordered by order index.
func (r *QuestionRepository) ListByExamID(ctx context.Context, examID uuid.UUID) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+questionColumns+`
		 FROM questions WHERE exam_id = $1
		 ORDER BY order_index NULLS LAST, created_at`, examID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		var q model.Question
		if err := scanQuestion(rows, &q); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// Update rewrites a question's mutable columns.
func (r *QuestionRepository) Update(ctx context.Context, q *model.Question) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE questions
		 SET question_text = $1, question_type = $2, points = $3, explanation = $4,
		     option_ids = $5, order_index = $6, updated_at = NOW()
		 WHERE id = $7`,
		q.QuestionText, q.QuestionType, q.Points, q.Explanation, q.OptionIDs, q.OrderIndex, q.ID)
	return err
}

// SetOptionIDs back-patches the question's option reference list after the
// options are persisted.
func (r *QuestionRepository) SetOptionIDs(ctx context.Context, id uuid.UUID, optionIDs []uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE questions SET option_ids = $1, updated_at = NOW() WHERE id = $2`,
		optionIDs, id)
	return err
}

// Delete removes a single question row.
func (r *QuestionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	return err
}

// DeleteByExamID removes all questions belonging to an exam.
func (r *QuestionRepository) DeleteByExamID(ctx context.Context, examID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM questions WHERE exam_id = $1`, examID)
	return err
}
