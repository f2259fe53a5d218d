// Package servicetest provides in-memory implementations of the service
// store interfaces for tests.
package servicetest

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/eximia/exams-backend/internal/model"
	"github.com/eximia/exams-backend/internal/repository"
)

// MemExams is an in-memory ExamStore.
type MemExams struct {
	Rows []*model.Exam
}

func (s *MemExams) Create(_ context.Context, e *model.Exam) error {
	e.ID = uuid.New()
	clone := *e
	s.Rows = append(s.Rows, &clone)
	return nil
}

func (s *MemExams) GetByID(_ context.Context, id uuid.UUID) (*model.Exam, error) {
	for _, e := range s.Rows {
		if e.ID == id {
			clone := *e
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *MemExams) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	for _, e := range s.Rows {
		if e.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemExams) Update(_ context.Context, e *model.Exam) error {
	for i, row := range s.Rows {
		if row.ID == e.ID {
			clone := *e
			s.Rows[i] = &clone
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *MemExams) SetQuestionIDs(_ context.Context, id uuid.UUID, questionIDs []uuid.UUID) error {
	for _, e := range s.Rows {
		if e.ID == id {
			e.QuestionIDs = questionIDs
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *MemExams) Delete(_ context.Context, id uuid.UUID) error {
	for i, e := range s.Rows {
		if e.ID == id {
			s.Rows = append(s.Rows[:i], s.Rows[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *MemExams) Search(_ context.Context, criteria model.ExamCriteria, limit, offset int) ([]model.Exam, int, error) {
	var matched []model.Exam
	for _, e := range s.Rows {
		if criteria.Title != "" && !strings.Contains(strings.ToLower(e.Title), strings.ToLower(criteria.Title)) {
			continue
		}
		if criteria.Subject != "" && e.Subject != criteria.Subject {
			continue
		}
		if criteria.DifficultyLevel != "" && e.DifficultyLevel != criteria.DifficultyLevel {
			continue
		}
		if criteria.CreatedBy != "" && e.CreatedBy != criteria.CreatedBy {
			continue
		}
		matched = append(matched, *e)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

// MemQuestions is an in-memory QuestionStore. CreateErr, when set, is
// returned after FailAfter successful creates to exercise rollback paths.
type MemQuestions struct {
	Rows      []*model.Question
	CreateErr error
	FailAfter int
	created   int
}

func (s *MemQuestions) Create(_ context.Context, q *model.Question) error {
	if s.CreateErr != nil && s.created >= s.FailAfter {
		return s.CreateErr
	}
	s.created++
	q.ID = uuid.New()
	clone := *q
	s.Rows = append(s.Rows, &clone)
	return nil
}

func (s *MemQuestions) GetByID(_ context.Context, id uuid.UUID) (*model.Question, error) {
	for _, q := range s.Rows {
		if q.ID == id {
			clone := *q
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *MemQuestions) ListByExamID(_ context.Context, examID uuid.UUID) ([]model.Question, error) {
	var out []model.Question
	for _, q := range s.Rows {
		if q.ExamID == examID {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (s *MemQuestions) Update(_ context.Context, q *model.Question) error {
	for i, row := range s.Rows {
		if row.ID == q.ID {
			clone := *q
			s.Rows[i] = &clone
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *MemQuestions) SetOptionIDs(_ context.Context, id uuid.UUID, optionIDs []uuid.UUID) error {
	for _, q := range s.Rows {
		if q.ID == id {
			q.OptionIDs = optionIDs
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *MemQuestions) Delete(_ context.Context, id uuid.UUID) error {
	for i, q := range s.Rows {
		if q.ID == id {
			s.Rows = append(s.Rows[:i], s.Rows[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *MemQuestions) DeleteByExamID(_ context.Context, examID uuid.UUID) error {
	kept := s.Rows[:0]
	for _, q := range s.Rows {
		if q.ExamID != examID {
			kept = append(kept, q)
		}
	}
	s.Rows = kept
	return nil
}

// MemOptions is an in-memory OptionStore.
type MemOptions struct {
	Rows []*model.Option
}

func (s *MemOptions) Create(_ context.Context, o *model.Option) error {
	o.ID = uuid.New()
	clone := *o
	s.Rows = append(s.Rows, &clone)
	return nil
}

func (s *MemOptions) GetByID(_ context.Context, id uuid.UUID) (*model.Option, error) {
	for _, o := range s.Rows {
		if o.ID == id {
			clone := *o
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *MemOptions) ListByQuestionID(_ context.Context, questionID uuid.UUID) ([]model.Option, error) {
	var out []model.Option
	for _, o := range s.Rows {
		if o.QuestionID == questionID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (s *MemOptions) Update(_ context.Context, o *model.Option) error {
	for i, row := range s.Rows {
		if row.ID == o.ID {
			clone := *o
			s.Rows[i] = &clone
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *MemOptions) Delete(_ context.Context, id uuid.UUID) error {
	for i, o := range s.Rows {
		if o.ID == id {
			s.Rows = append(s.Rows[:i], s.Rows[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *MemOptions) DeleteByQuestionID(_ context.Context, questionID uuid.UUID) error {
	return s.DeleteByQuestionIDs(nil, []uuid.UUID{questionID})
}

func (s *MemOptions) DeleteByQuestionIDs(_ context.Context, questionIDs []uuid.UUID) error {
	drop := make(map[uuid.UUID]bool, len(questionIDs))
	for _, id := range questionIDs {
		drop[id] = true
	}
	kept := s.Rows[:0]
	for _, o := range s.Rows {
		if !drop[o.QuestionID] {
			kept = append(kept, o)
		}
	}
	s.Rows = kept
	return nil
}

// ErrStoreFailure is a generic injected store error.
var ErrStoreFailure = errors.New("store failure")
