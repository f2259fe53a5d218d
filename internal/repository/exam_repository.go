package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eximia/exams-backend/internal/model"
)

// ExamRepository handles exam data access.
type ExamRepository struct {
	pool *pgxpool.Pool
}

// NewExamRepository creates a new ExamRepository.
func NewExamRepository(pool *pgxpool.Pool) *ExamRepository {
	return &ExamRepository{pool: pool}
}

const examColumns = `id, title, description, duration_minutes, passing_score, total_points,
	subject, difficulty_level, question_ids, created_by, updated_by, created_at, updated_at`

func scanExam(row pgx.Row, e *model.Exam) error {
	return row.Scan(&e.ID, &e.Title, &e.Description, &e.DurationMinutes, &e.PassingScore,
		&e.TotalPoints, &e.Subject, &e.DifficultyLevel, &e.QuestionIDs,
		&e.CreatedBy, &e.UpdatedBy, &e.CreatedAt, &e.UpdatedAt)
}

// Create inserts a new exam shell and fills in the generated ID and
// timestamps.
func (r *ExamRepository) Create(ctx context.Context, e *model.Exam) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO exams (title, description, duration_minutes, passing_score, total_points,
		                    subject, difficulty_level, question_ids, created_by, updated_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, created_at, updated_at`,
		e.Title, e.Description, e.DurationMinutes, e.PassingScore, e.TotalPoints,
		e.Subject, e.DifficultyLevel, e.QuestionIDs, e.CreatedBy, e.UpdatedBy,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

// GetByID retrieves an exam by its UUID.
func (r *ExamRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Exam, error) {
	e := &model.Exam{}
	err := scanExam(r.pool.QueryRow(ctx,
		`SELECT `+examColumns+` FROM exams WHERE id = $1`, id), e)
	if err != nil {
		return nil, notFound(err)
	}
	return e, nil
}

// ExistsByID reports whether an exam with the given ID exists.
func (r *ExamRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM exams WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

// Update rewrites an exam's mutable columns.
func (r *ExamRepository) Update(ctx context.Context, e *model.Exam) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE exams
		 SET title = $1, description = $2, duration_minutes = $3, passing_score = $4,
		     total_points = $5, subject = $6, difficulty_level = $7, question_ids = $8,
		     updated_by = $9, updated_at = NOW()
		 WHERE id = $10`,
		e.Title, e.Description, e.DurationMinutes, e.PassingScore, e.TotalPoints,
		e.Subject, e.DifficultyLevel, e.QuestionIDs, e.UpdatedBy, e.ID)
	return err
}

// SetQuestionIDs back-patches the exam's question reference list after the
// questions are persisted.
func (r *ExamRepository) SetQuestionIDs(ctx context.Context, id uuid.UUID, questionIDs []uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE exams SET question_ids = $1, updated_at = NOW() WHERE id = $2`,
		questionIDs, id)
	return err
}

// Delete removes an exam row. Child questions and options are deleted by the
// service beforehand; there is no FK cascade.
func (r *ExamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM exams WHERE id = $1`, id)
	return err
}

// Search retrieves exams matching the criteria with pagination. Title and
// description filters are case-insensitive substring matches; the rest are
// exact.
func (r *ExamRepository) Search(ctx context.Context, criteria model.ExamCriteria, limit, offset int) ([]model.Exam, int, error) {
	where := ""
	var args []interface{}

	addFilter := func(clause string, value interface{}) {
		args = append(args, value)
		if where == "" {
			where = " WHERE "
		} else {
			where += " AND "
		}
		where += fmt.Sprintf(clause, len(args))
	}

	if criteria.Title != "" {
		addFilter(`title ILIKE '%%' || $%d || '%%'`, criteria.Title)
	}
	if criteria.Description != "" {
		addFilter(`description ILIKE '%%' || $%d || '%%'`, criteria.Description)
	}
	if criteria.Subject != "" {
		addFilter(`subject = $%d`, criteria.Subject)
	}
	if criteria.DifficultyLevel != "" {
		addFilter(`difficulty_level = $%d`, criteria.DifficultyLevel)
	}
	if criteria.CreatedBy != "" {
		addFilter(`created_by = $%d`, criteria.CreatedBy)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM exams`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM exams%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		examColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var exams []model.Exam
	for rows.Next() {
		var e model.Exam
		if err := scanExam(rows, &e); err != nil {
			return nil, 0, err
		}
		exams = append(exams, e)
	}
	return exams, total, rows.Err()
}
