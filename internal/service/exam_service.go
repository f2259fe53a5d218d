package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/eximia/exams-backend/internal/model"
	"github.com/eximia/exams-backend/internal/points"
	"github.com/eximia/exams-backend/internal/response"
	"github.com/eximia/exams-backend/internal/rules"
)

// ExamService orchestrates create/update/delete across the exam → question →
// option hierarchy. Points are distributed and per-type rules validated
// before each question is persisted.
//
// The multi-step persistence sequence is not transactional: concurrent
// updates to the same exam may interleave. On a mid-flow failure the service
// deletes whatever it already wrote (best effort) before returning the error.
type ExamService struct {
	examStore     ExamStore
	questionStore QuestionStore
	optionStore   OptionStore
	registry      *rules.Registry
	publisher     EventPublisher
	totalPoints   float64
	passingScore  float64
	log           zerolog.Logger
}

// NewExamService creates a new ExamService. publisher may be nil when the
// messaging boundary is disabled.
func NewExamService(
	examStore ExamStore,
	questionStore QuestionStore,
	optionStore OptionStore,
	registry *rules.Registry,
	publisher EventPublisher,
	totalPoints float64,
	passingScore float64,
	log zerolog.Logger,
) *ExamService {
	return &ExamService{
		examStore:     examStore,
		questionStore: questionStore,
		optionStore:   optionStore,
		registry:      registry,
		publisher:     publisher,
		totalPoints:   totalPoints,
		passingScore:  passingScore,
		log:           log.With().Str("component", "exam_service").Logger(),
	}
}

// Create validates and persists an exam with its full question/option tree.
//
// Flow: distribute the point budget over the questions, persist the exam
// shell, then per question distribute its points over the options, validate
// the type-specific rules, persist question and options, and finally
// back-patch the exam with the generated question IDs.
func (s *ExamService) Create(ctx context.Context, req *model.CreateExamRequest) (*model.ExamDetail, error) {
	s.log.Info().Str("title", req.Title).Msg("Creating exam")

	budget := s.totalPoints
	if req.TotalPoints != nil {
		budget = *req.TotalPoints
	}

	prepared, err := s.prepareQuestions(budget, req.Questions)
	if err != nil {
		s.publishFailed(ctx, req.Title, err)
		return nil, err
	}

	passingScore := s.passingScore
	if req.PassingScore != nil {
		passingScore = *req.PassingScore
	}

	exam := &model.Exam{
		Title:           req.Title,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		PassingScore:    passingScore,
		TotalPoints:     budget,
		Subject:         req.Subject,
		DifficultyLevel: req.DifficultyLevel,
		QuestionIDs:     []uuid.UUID{},
		CreatedBy:       req.CreatedBy,
	}
	if err := s.examStore.Create(ctx, exam); err != nil {
		s.publishFailed(ctx, req.Title, err)
		return nil, fmt.Errorf("create exam: %w", err)
	}

	details, err := s.createQuestions(ctx, exam, prepared)
	if err != nil {
		s.rollback(ctx, exam.ID, details)
		s.publishFailed(ctx, req.Title, err)
		return nil, err
	}

	s.log.Info().Str("exam_id", exam.ID.String()).Int("questions", len(details)).Msg("Exam created")
	s.publishCreated(ctx, exam)

	return &model.ExamDetail{Exam: *exam, Questions: details}, nil
}

// GetByID retrieves an exam with its question tree resolved.
func (s *ExamService) GetByID(ctx context.Context, id uuid.UUID) (*model.ExamDetail, error) {
	exam, err := s.examStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	questions, err := s.questionStore.ListByExamID(ctx, id)
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

	return &model.ExamDetail{Exam: *exam, Questions: details}, nil
}

// Search retrieves exams matching the criteria with pagination.
func (s *ExamService) Search(ctx context.Context, criteria model.ExamCriteria, page, perPage int) ([]model.Exam, *response.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	exams, total, err := s.examStore.Search(ctx, criteria, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}
	if exams == nil {
		exams = []model.Exam{}
	}

	pagination := &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: (total + perPage - 1) / perPage,
	}
	return exams, pagination, nil
}

// Update modifies an exam. A non-empty question list replaces the existing
// question set: current questions and options are cascade-deleted, then the
// new list goes through the same distribute/validate/persist loop as Create.
func (s *ExamService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateExamRequest) (*model.ExamDetail, error) {
	s.log.Info().Str("exam_id", id.String()).Msg("Updating exam")

	exam, err := s.examStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		exam.Title = req.Title
	}
	if req.Description != "" {
		exam.Description = req.Description
	}
	if req.DurationMinutes > 0 {
		exam.DurationMinutes = req.DurationMinutes
	}
	if req.PassingScore != nil {
		exam.PassingScore = *req.PassingScore
	}
	if req.Subject != "" {
		exam.Subject = req.Subject
	}
	if req.DifficultyLevel != "" {
		exam.DifficultyLevel = req.DifficultyLevel
	}
	exam.UpdatedBy = req.UpdatedBy

	var details []model.QuestionDetail

	if len(req.Questions) > 0 {
		prepared, err := s.prepareQuestions(exam.TotalPoints, req.Questions)
		if err != nil {
			return nil, err
		}

		if err := s.deleteChildren(ctx, id); err != nil {
			return nil, err
		}
		exam.QuestionIDs = []uuid.UUID{}

		details, err = s.createQuestions(ctx, exam, prepared)
		if err != nil {
			return nil, err
		}
	}

	if err := s.examStore.Update(ctx, exam); err != nil {
		return nil, fmt.Errorf("update exam: %w", err)
	}

	if details == nil {
		refreshed, err := s.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return refreshed, nil
	}

	s.log.Info().Str("exam_id", id.String()).Msg("Exam updated")
	return &model.ExamDetail{Exam: *exam, Questions: details}, nil
}

// Delete removes an exam and all of its questions and options, children
// first.
func (s *ExamService) Delete(ctx context.Context, id uuid.UUID) error {
	s.log.Info().Str("exam_id", id.String()).Msg("Deleting exam")

	if _, err := s.examStore.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.deleteChildren(ctx, id); err != nil {
		return err
	}
	if err := s.examStore.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete exam: %w", err)
	}

	s.log.Info().Str("exam_id", id.String()).Msg("Exam deleted")
	return nil
}

// prepareQuestions distributes the budget over the question list, then each
// question's points over its options, and validates every question against
// its type's rules. It returns a deep copy with all points finalized; the
// incoming request is not mutated.
func (s *ExamService) prepareQuestions(budget float64, questions []model.QuestionRequest) ([]model.QuestionRequest, error) {
	values := make([]float64, len(questions))
	for i, q := range questions {
		values[i] = q.Points
	}

	distributed, err := points.Distribute(budget, values)
	if err != nil {
		return nil, err
	}

	prepared := make([]model.QuestionRequest, len(questions))
	for i, q := range questions {
		prepared[i] = q
		prepared[i].Points = distributed[i]
		prepared[i].Options = make([]model.OptionRequest, len(q.Options))
		copy(prepared[i].Options, q.Options)

		optValues := make([]float64, len(q.Options))
		for j, o := range q.Options {
			optValues[j] = o.Points
		}
		optDistributed, err := points.Distribute(prepared[i].Points, optValues)
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		for j := range prepared[i].Options {
			prepared[i].Options[j].Points = optDistributed[j]
		}

		validator, err := s.registry.ForType(prepared[i].QuestionType)
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		if err := validator.Validate(&prepared[i]); err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
	}

	return prepared, nil
}

// createQuestions persists the prepared questions and their options and
// back-patches the exam with the generated question IDs. exam.QuestionIDs is
// updated in place.
func (s *ExamService) createQuestions(ctx context.Context, exam *model.Exam, prepared []model.QuestionRequest) ([]model.QuestionDetail, error) {
	details := make([]model.QuestionDetail, 0, len(prepared))
	questionIDs := make([]uuid.UUID, 0, len(prepared))

	for i := range prepared {
		detail, err := persistQuestion(ctx, s.questionStore, s.optionStore, exam.ID, &prepared[i])
		if err != nil {
			return details, fmt.Errorf("question %d: %w", i+1, err)
		}
		details = append(details, *detail)
		questionIDs = append(questionIDs, detail.ID)
	}

	if err := s.examStore.SetQuestionIDs(ctx, exam.ID, questionIDs); err != nil {
		return details, fmt.Errorf("patch exam question ids: %w", err)
	}
	exam.QuestionIDs = questionIDs
	return details, nil
}

// deleteChildren cascade-deletes all questions of an exam, options first.
func (s *ExamService) deleteChildren(ctx context.Context, examID uuid.UUID) error {
	questions, err := s.questionStore.ListByExamID(ctx, examID)
	if err != nil {
		return fmt.Errorf("list questions: %w", err)
	}

	questionIDs := make([]uuid.UUID, 0, len(questions))
	for _, q := range questions {
		questionIDs = append(questionIDs, q.ID)
	}

	if err := s.optionStore.DeleteByQuestionIDs(ctx, questionIDs); err != nil {
		return fmt.Errorf("delete options: %w", err)
	}
	if err := s.questionStore.DeleteByExamID(ctx, examID); err != nil {
		return fmt.Errorf("delete questions: %w", err)
	}
	return nil
}

// rollback deletes the partially created exam tree after a mid-flow failure.
// Best effort: a failed cleanup is logged and leaves an orphaned shell.
func (s *ExamService) rollback(ctx context.Context, examID uuid.UUID, created []model.QuestionDetail) {
	s.log.Warn().Str("exam_id", examID.String()).Int("questions_written", len(created)).
		Msg("Create failed mid-flow, rolling back")

	if err := s.deleteChildren(ctx, examID); err != nil {
		s.log.Error().Err(err).Str("exam_id", examID.String()).Msg("Rollback of children failed")
	}
	if err := s.examStore.Delete(ctx, examID); err != nil {
		s.log.Error().Err(err).Str("exam_id", examID.String()).Msg("Rollback of exam shell failed")
	}
}

func (s *ExamService) publishCreated(ctx context.Context, exam *model.Exam) {
	if s.publisher != nil {
		s.publisher.PublishCreated(ctx, exam)
	}
}

func (s *ExamService) publishFailed(ctx context.Context, title string, cause error) {
	if s.publisher != nil {
		s.publisher.PublishFailed(ctx, title, cause)
	}
}

// persistQuestion writes one prepared question and its options and
// back-patches the question with the generated option IDs. Shared by
// ExamService and QuestionService.
func persistQuestion(ctx context.Context, questionStore QuestionStore, optionStore OptionStore, examID uuid.UUID, req *model.QuestionRequest) (*model.QuestionDetail, error) {
	question := &model.Question{
		ExamID:       examID,
		QuestionText: req.QuestionText,
		QuestionType: req.QuestionType,
		Points:       req.Points,
		Explanation:  req.Explanation,
		OptionIDs:    []uuid.UUID{},
		OrderIndex:   req.OrderIndex,
	}
	if err := questionStore.Create(ctx, question); err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}

	options := make([]model.Option, 0, len(req.Options))
	optionIDs := make([]uuid.UUID, 0, len(req.Options))
	for _, o := range req.Options {
		option := &model.Option{
			QuestionID:  question.ID,
			OptionText:  o.OptionText,
			IsCorrect:   o.IsCorrect,
			Points:      o.Points,
			OrderIndex:  o.OrderIndex,
			Explanation: o.Explanation,
		}
		if err := optionStore.Create(ctx, option); err != nil {
			return nil, fmt.Errorf("create option: %w", err)
		}
		options = append(options, *option)
		optionIDs = append(optionIDs, option.ID)
	}

	if err := questionStore.SetOptionIDs(ctx, question.ID, optionIDs); err != nil {
		return nil, fmt.Errorf("patch question option ids: %w", err)
	}
	question.OptionIDs = optionIDs

	return &model.QuestionDetail{Question: *question, Options: options}, nil
}
