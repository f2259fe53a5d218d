package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eximia/exams-backend/internal/model"
)

// OptionRepository handles option data access.
type OptionRepository struct {
	pool *pgxpool.Pool
}

// NewOptionRepository creates a new OptionRepository.
func NewOptionRepository(pool *pgxpool.Pool) *OptionRepository {
	return &OptionRepository{pool: pool}
}

const optionColumns = `id, question_id, option_text, is_correct, points, order_index,
	explanation, created_at, updated_at`

func scanOption(row pgx.Row, o *model.Option) error {
	return row.Scan(&o.ID, &o.QuestionID, &o.OptionText, &o.IsCorrect, &o.Points,
		&o.OrderIndex, &o.Explanation, &o.CreatedAt, &o.UpdatedAt)
}

// Create inserts a new option and fills in the generated ID and timestamps.
func (r *OptionRepository) Create(ctx context.Context, o *model.Option) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO options (question_id, option_text, is_correct, points, order_index, explanation)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		o.QuestionID, o.OptionText, o.IsCorrect, o.Points, o.OrderIndex, o.Explanation,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
}

// GetByID retrieves an option by its UUID.
func (r *OptionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Option, error) {
	o := &model.Option{}
	err := scanOption(r.pool.QueryRow(ctx,
		`SELECT `+optionColumns+` FROM options WHERE id = $1`, id), o)
	if err != nil {
		return nil, notFound(err)
	}
	return o, nil
}

// ListByQuestionID retrieves all options for a question, ordered by order
// index.
func (r *OptionRepository) ListByQuestionID(ctx context.Context, questionID uuid.UUID) ([]model.Option, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+optionColumns+`
		 FROM options WHERE question_id = $1
		 ORDER BY order_index NULLS LAST, created_at`, questionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var options []model.Option
	for rows.Next() {
		var o model.Option
		if err := scanOption(rows, &o); err != nil {
			return nil, err
		}
		options = append(options, o)
	}
	return options, rows.Err()
}

// Update rewrites an option's mutable columns.
func (r *OptionRepository) Update(ctx context.Context, o *model.Option) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE options
		 SET option_text = $1, is_correct = $2, points = $3, order_index = $4,
		     explanation = $5, updated_at = NOW()
		 WHERE id = $6`,
		o.OptionText, o.IsCorrect, o.Points, o.OrderIndex, o.Explanation, o.ID)
	return err
}

// Delete removes a single option row.
func (r *OptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM options WHERE id = $1`, id)
	return err
}

// DeleteByQuestionID removes all options belonging to a question.
func (r *OptionRepository) DeleteByQuestionID(ctx context.Context, questionID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM options WHERE question_id = $1`, questionID)
	return err
}

// DeleteByQuestionIDs removes options for a batch of questions in one call.
func (r *OptionRepository) DeleteByQuestionIDs(ctx context.Context, questionIDs []uuid.UUID) error {
	if len(questionIDs) == 0 {
		return nil
	}
	_, err := r.pool.Exec(ctx, `DELETE FROM options WHERE question_id = ANY($1)`, questionIDs)
	return err
}
