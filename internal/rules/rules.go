// Package rules enforces the structural invariants of a question's option
// set. One Validator implementation exists per question type; the Registry
// dispatches on the type. Validators are pure: they inspect the in-flight
// request payload and never touch storage.
package rules

import (
	"errors"
	"fmt"

	"github.com/eximia/exams-backend/internal/model"
	"github.com/eximia/exams-backend/internal/points"
)

// Structural failure kinds. As in package points, wrapped messages carry the
// offending counts/values and are surfaced to the client unchanged.
var (
	ErrInvalidCorrectCount  = errors.New("invalid correct option count")
	ErrInvalidOptionCount   = errors.New("invalid option count")
	ErrInsufficientOptions  = errors.New("insufficient options")
	ErrMissingOrderIndex    = errors.New("option missing order index")
	ErrPointsMismatch       = errors.New("option points do not match question points")
	ErrUnsupportedType      = errors.New("unsupported question type")
	ErrDuplicateStrategy    = errors.New("duplicate validation strategy")
)

// Validator checks the type-specific rules of a single question payload.
type Validator interface {
	// Type returns the question type this validator handles.
	Type() model.QuestionType
	// Validate checks q's option set against the type's structural rules and
	// the shared points-sum rule.
	Validate(q *model.QuestionRequest) error
}

// validatePointsMatch is the common final step for every strategy: the option
// points must sum to the question's points within points.Tolerance.
func validatePointsMatch(q *model.QuestionRequest) error {
	sum := 0.0
	for _, o := range q.Options {
		sum += o.Points
	}
	if !points.SumMatches(sum, q.Points) {
		return fmt.Errorf("%w: total points of options (%.2f) must match question points (%.2f)",
			ErrPointsMismatch, sum, q.Points)
	}
	return nil
}

func countCorrect(opts []model.OptionRequest) int {
	n := 0
	for _, o := range opts {
		if o.IsCorrect {
			n++
		}
	}
	return n
}
