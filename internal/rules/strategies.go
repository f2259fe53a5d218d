package rules

import (
	"fmt"

	"github.com/eximia/exams-backend/internal/model"
)

// MultipleChoice requires exactly one correct option.
type MultipleChoice struct{}

func (MultipleChoice) Type() model.QuestionType { return model.QuestionTypeMultipleChoice }

func (MultipleChoice) Validate(q *model.QuestionRequest) error {
	if n := countCorrect(q.Options); n != 1 {
		return fmt.Errorf("%w: multiple choice question must have exactly one correct option, found %d",
			ErrInvalidCorrectCount, n)
	}
	return validatePointsMatch(q)
}

// MultipleSelection requires at least two correct options out of at least
// three total.
type MultipleSelection struct{}

func (MultipleSelection) Type() model.QuestionType { return model.QuestionTypeMultipleSelection }

func (MultipleSelection) Validate(q *model.QuestionRequest) error {
	if n := countCorrect(q.Options); n < 2 {
		return fmt.Errorf("%w: multiple selection question must have at least two correct options, found %d",
			ErrInvalidCorrectCount, n)
	}
	if len(q.Options) < 3 {
		return fmt.Errorf("%w: multiple selection question must have at least three options total, found %d",
			ErrInsufficientOptions, len(q.Options))
	}
	return validatePointsMatch(q)
}

// TrueFalse requires exactly two options with exactly one correct.
type TrueFalse struct{}

func (TrueFalse) Type() model.QuestionType { return model.QuestionTypeTrueFalse }

func (TrueFalse) Validate(q *model.QuestionRequest) error {
	if len(q.Options) != 2 {
		return fmt.Errorf("%w: true or false question must have exactly two options, found %d",
			ErrInvalidOptionCount, len(q.Options))
	}
	if n := countCorrect(q.Options); n != 1 {
		return fmt.Errorf("%w: true or false question must have exactly one correct option, found %d",
			ErrInvalidCorrectCount, n)
	}
	return validatePointsMatch(q)
}

// DragAndDrop requires at least two options, each carrying an order index.
type DragAndDrop struct{}

func (DragAndDrop) Type() model.QuestionType { return model.QuestionTypeDragAndDrop }

func (DragAndDrop) Validate(q *model.QuestionRequest) error {
	if len(q.Options) < 2 {
		return fmt.Errorf("%w: drag and drop question must have at least two options, found %d",
			ErrInsufficientOptions, len(q.Options))
	}
	for i, o := range q.Options {
		if o.OrderIndex == nil {
			return fmt.Errorf("%w: all options in drag and drop question must have an order index, option %d has none",
				ErrMissingOrderIndex, i+1)
		}
	}
	return validatePointsMatch(q)
}
