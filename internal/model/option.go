package model

import (
	"time"

	"github.com/google/uuid"
)

// Option represents an answer option belonging to exactly one question.
type Option struct {
	ID          uuid.UUID `json:"id"`
	QuestionID  uuid.UUID `json:"question_id"`
	OptionText  string    `json:"option_text"`
	IsCorrect   bool      `json:"is_correct"`
	Points      float64   `json:"points"`
	OrderIndex  *int      `json:"order_index,omitempty"`
	Explanation string    `json:"explanation,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// OptionRequest is the payload for an option inside a question request or on
// the standalone option endpoints. Points <= 0 means "unassigned": the
// distribution engine fills it from the question's points.
type OptionRequest struct {
	OptionText  string  `json:"option_text" binding:"required,min=1,max=500"`
	IsCorrect   bool    `json:"is_correct"`
	Points      float64 `json:"points" binding:"omitempty,min=0"`
	OrderIndex  *int    `json:"order_index" binding:"omitempty,min=1"`
	Explanation string  `json:"explanation" binding:"omitempty,max=500"`
}
