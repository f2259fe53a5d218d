package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/eximia/exams-backend/internal/model"
)

// OptionService handles the standalone option endpoints. Edits here can
// unbalance the parent question's points; the question update endpoint
// re-validates the full set.
type OptionService struct {
	questionStore QuestionStore
	optionStore   OptionStore
	log           zerolog.Logger
}

// NewOptionService creates a new OptionService.
func NewOptionService(questionStore QuestionStore, optionStore OptionStore, log zerolog.Logger) *OptionService {
	return &OptionService{
		questionStore: questionStore,
		optionStore:   optionStore,
		log:           log.With().Str("component", "option_service").Logger(),
	}
}

// GetByID retrieves a single option.
func (s *OptionService) GetByID(ctx context.Context, id uuid.UUID) (*model.Option, error) {
	return s.optionStore.GetByID(ctx, id)
}

// ListByQuestion retrieves all options of a question, ordered by order index.
func (s *OptionService) ListByQuestion(ctx context.Context, questionID uuid.UUID) ([]model.Option, error) {
	if _, err := s.questionStore.GetByID(ctx, questionID); err != nil {
		return nil, err
	}
	options, err := s.optionStore.ListByQuestionID(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if options == nil {
		options = []model.Option{}
	}
	return options, nil
}

// Update rewrites an option's content.
func (s *OptionService) Update(ctx context.Context, id uuid.UUID, req *model.OptionRequest) (*model.Option, error) {
	option, err := s.optionStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	option.OptionText = req.OptionText
	option.IsCorrect = req.IsCorrect
	if req.Points > 0 {
		option.Points = req.Points
	}
	option.OrderIndex = req.OrderIndex
	option.Explanation = req.Explanation

	if err := s.optionStore.Update(ctx, option); err != nil {
		return nil, fmt.Errorf("update option: %w", err)
	}

	s.log.Info().Str("option_id", id.String()).Msg("Option updated")
	return option, nil
}

// Delete removes an option and its reference in the parent question.
func (s *OptionService) Delete(ctx context.Context, id uuid.UUID) error {
	option, err := s.optionStore.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.optionStore.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete option: %w", err)
	}

	question, err := s.questionStore.GetByID(ctx, option.QuestionID)
	if err != nil {
		// Parent already gone; nothing left to detach.
		return nil
	}
	remaining := make([]uuid.UUID, 0, len(question.OptionIDs))
	for _, oid := range question.OptionIDs {
		if oid != id {
			remaining = append(remaining, oid)
		}
	}
	if err := s.questionStore.SetOptionIDs(ctx, question.ID, remaining); err != nil {
		return fmt.Errorf("patch question option ids: %w", err)
	}

	s.log.Info().Str("option_id", id.String()).Msg("Option deleted")
	return nil
}
