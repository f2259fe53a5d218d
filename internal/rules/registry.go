package rules

import (
	"fmt"

	"github.com/eximia/exams-backend/internal/model"
)

// Registry maps a question type to its validator. It is built once at startup
// and read-only afterwards.
type Registry struct {
	strategies map[model.QuestionType]Validator
}

// NewRegistry builds a registry from the given validators. Two validators
// claiming the same type is a wiring error and fails construction.
func NewRegistry(validators ...Validator) (*Registry, error) {
	strategies := make(map[model.QuestionType]Validator, len(validators))
	for _, v := range validators {
		if _, ok := strategies[v.Type()]; ok {
			return nil, fmt.Errorf("%w: %s registered twice", ErrDuplicateStrategy, v.Type())
		}
		strategies[v.Type()] = v
	}
	return &Registry{strategies: strategies}, nil
}

// DefaultRegistry wires the four core question types.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(
		MultipleChoice{},
		MultipleSelection{},
		TrueFalse{},
		DragAndDrop{},
	)
	if err != nil {
		// Unreachable with the fixed strategy set above.
		panic(err)
	}
	return r
}

// ForType returns the validator registered for t.
func (r *Registry) ForType(t model.QuestionType) (Validator, error) {
	v, ok := r.strategies[t]
	if !ok {
		return nil, fmt.Errorf("%w: no validation strategy found for question type %q", ErrUnsupportedType, t)
	}
	return v, nil
}
