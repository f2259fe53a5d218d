package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/eximia/exams-backend/internal/model"
	"github.com/eximia/exams-backend/internal/points"
	"github.com/eximia/exams-backend/internal/repository"
	"github.com/eximia/exams-backend/internal/rules"
)

// ErrQuestionPointsRequired is returned when a standalone question request
// carries no point value. Inside a create-exam flow the distribution engine
// assigns one; on the standalone endpoints the caller must.
var ErrQuestionPointsRequired = errors.New("question must have points assigned before distributing to options")

// QuestionService handles the standalone question endpoints. Questions
// created or updated here go through the same distribution and type rules as
// in the full create-exam flow.
type QuestionService struct {
	examStore     ExamStore
	questionStore QuestionStore
	optionStore   OptionStore
	registry      *rules.Registry
	log           zerolog.Logger
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(
	examStore ExamStore,
	questionStore QuestionStore,
	optionStore OptionStore,
	registry *rules.Registry,
	log zerolog.Logger,
) *QuestionService {
	return &QuestionService{
		examStore:     examStore,
		questionStore: questionStore,
		optionStore:   optionStore,
		registry:      registry,
		log:           log.With().Str("component", "question_service").Logger(),
	}
}

// Create adds a single question to an existing exam. The question's points
// must be explicit here; its options go through distribution and type
// validation before anything is written.
func (s *QuestionService) Create(ctx context.Context, examID uuid.UUID, req *model.QuestionRequest) (*model.QuestionDetail, error) {
	s.log.Info().Str("exam_id", examID.String()).Msg("Creating question")

	exam, err := s.examStore.GetByID(ctx, examID)
	if err != nil {
		return nil, err
	}

	prepared, err := s.prepare(req)
	if err != nil {
		return nil, err
	}

	detail, err := persistQuestion(ctx, s.questionStore, s.optionStore, examID, prepared)
	if err != nil {
		return nil, err
	}

	if err := s.examStore.SetQuestionIDs(ctx, examID, append(exam.QuestionIDs, detail.ID)); err != nil {
		return nil, fmt.Errorf("patch exam question ids: %w", err)
	}

	s.log.Info().Str("question_id", detail.ID.String()).Msg("Question created")
	return detail, nil
}

// GetByID retrieves a question with its options resolved.
func (s *QuestionService) GetByID(ctx context.Context, id uuid.UUID) (*model.QuestionDetail, error) {
	question, err := s.questionStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	options, err := s.optionStore.ListByQuestionID(ctx, id)
	if err != nil {
		return nil, err
	}
	if options == nil {
		options = []model.Option{}
	}

	return &model.QuestionDetail{Question: *question, Options: options}, nil
}

// ListByExam retrieves all questions of an exam with their options resolved.
func (s *QuestionService) ListByExam(ctx context.Context, examID uuid.UUID) ([]model.QuestionDetail, error) {
	if _, err := s.examStore.GetByID(ctx, examID); err != nil {
		return nil, err
	}

	questions, err := s.questionStore.ListByExamID(ctx, examID)
	if err != nil {
		return nil, err
	}

	details := make([]model.QuestionDetail, 0, len(questions))
	for _, q := range questions {
		options, err := s.optionStore.ListByQuestionID(ctx, q.ID)
		if err != nil {
			return nil, err
		}
		if options == nil {
			options = []model.Option{}
		}
		details = append(details, model.QuestionDetail{Question: q, Options: options})
	}
	return details, nil
}

// Update replaces a question's content and option set. The existing options
// are deleted and recreated from the request after distribution and type
// validation pass.
func (s *QuestionService) Update(ctx context.Context, id uuid.UUID, req *model.QuestionRequest) (*model.QuestionDetail, error) {
	s.log.Info().Str("question_id", id.String()).Msg("Updating question")

	question, err := s.questionStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	prepared, err := s.prepare(req)
	if err != nil {
		return nil, err
	}

	if err := s.optionStore.DeleteByQuestionID(ctx, id); err != nil {
		return nil, fmt.Errorf("delete options: %w", err)
	}

	question.QuestionText = prepared.QuestionText
	question.QuestionType = prepared.QuestionType
	question.Points = prepared.Points
	question.Explanation = prepared.Explanation
	question.OrderIndex = prepared.OrderIndex

	options := make([]model.Option, 0, len(prepared.Options))
	optionIDs := make([]uuid.UUID, 0, len(prepared.Options))
	for _, o := range prepared.Options {
		option := &model.Option{
			QuestionID:  id,
			OptionText:  o.OptionText,
			IsCorrect:   o.IsCorrect,
			Points:      o.Points,
			OrderIndex:  o.OrderIndex,
			Explanation: o.Explanation,
		}
		if err := s.optionStore.Create(ctx, option); err != nil {
			return nil, fmt.Errorf("create option: %w", err)
		}
		options = append(options, *option)
		optionIDs = append(optionIDs, option.ID)
	}
	question.OptionIDs = optionIDs

	if err := s.questionStore.Update(ctx, question); err != nil {
		return nil, fmt.Errorf("update question: %w", err)
	}

	s.log.Info().Str("question_id", id.String()).Msg("Question updated")
	return &model.QuestionDetail{Question: *question, Options: options}, nil
}

// Delete removes a question, its options, and its reference in the parent
// exam.
func (s *QuestionService) Delete(ctx context.Context, id uuid.UUID) error {
	s.log.Info().Str("question_id", id.String()).Msg("Deleting question")

	question, err := s.questionStore.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.optionStore.DeleteByQuestionID(ctx, id); err != nil {
		return fmt.Errorf("delete options: %w", err)
	}
	if err := s.questionStore.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete question: %w", err)
	}

	// Detach from the parent's reference list.
	exam, err := s.examStore.GetByID(ctx, question.ExamID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}
	remaining := make([]uuid.UUID, 0, len(exam.QuestionIDs))
	for _, qid := range exam.QuestionIDs {
		if qid != id {
			remaining = append(remaining, qid)
		}
	}
	if err := s.examStore.SetQuestionIDs(ctx, exam.ID, remaining); err != nil {
		return fmt.Errorf("patch exam question ids: %w", err)
	}

	s.log.Info().Str("question_id", id.String()).Msg("Question deleted")
	return nil
}

// prepare distributes the question's points over its options and validates
// the type rules. Returns a copy; req is not mutated.
func (s *QuestionService) prepare(req *model.QuestionRequest) (*model.QuestionRequest, error) {
	if req.Points <= 0 {
		return nil, ErrQuestionPointsRequired
	}

	prepared := *req
	prepared.Options = make([]model.OptionRequest, len(req.Options))
	copy(prepared.Options, req.Options)

	values := make([]float64, len(req.Options))
	for i, o := range req.Options {
		values[i] = o.Points
	}
	distributed, err := points.Distribute(prepared.Points, values)
	if err != nil {
		return nil, err
	}
	for i := range prepared.Options {
		prepared.Options[i].Points = distributed[i]
	}

	validator, err := s.registry.ForType(prepared.QuestionType)
	if err != nil {
		return nil, err
	}
	if err := validator.Validate(&prepared); err != nil {
		return nil, err
	}
	return &prepared, nil
}
