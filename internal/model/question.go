package model

import (
	"time"

	"github.com/google/uuid"
)

// QuestionType is the closed set of supported question variants.
type QuestionType string

const (
	QuestionTypeMultipleChoice    QuestionType = "MULTIPLE_CHOICE"
	QuestionTypeMultipleSelection QuestionType = "MULTIPLE_SELECTION"
	QuestionTypeTrueFalse         QuestionType = "TRUE_FALSE"
	QuestionTypeDragAndDrop       QuestionType = "DRAG_AND_DROP"
)

// Question represents a single exam question. Options live in their own table
// and are referenced by ID, mirroring the exam→question relationship.
type Question struct {
	ID           uuid.UUID    `json:"id"`
	ExamID       uuid.UUID    `json:"exam_id"`
	QuestionText string       `json:"question_text"`
	QuestionType QuestionType `json:"question_type"`
	Points       float64      `json:"points"`
	Explanation  string       `json:"explanation,omitempty"`
	OptionIDs    []uuid.UUID  `json:"option_ids"`
	OrderIndex   *int         `json:"order_index,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// QuestionDetail is a question with its options resolved.
type QuestionDetail struct {
	Question
	Options []Option `json:"options"`
}

// QuestionRequest is the payload for a question inside a create/update exam
// request or on the standalone question endpoints. Points <= 0 means
// "unassigned": the distribution engine fills it from the exam budget.
type QuestionRequest struct {
	QuestionText string          `json:"question_text" binding:"required,min=1,max=2000"`
	QuestionType QuestionType    `json:"question_type" binding:"required,oneof=MULTIPLE_CHOICE MULTIPLE_SELECTION TRUE_FALSE DRAG_AND_DROP"`
	Points       float64         `json:"points" binding:"omitempty,min=0"`
	Explanation  string          `json:"explanation" binding:"omitempty,max=1000"`
	OrderIndex   *int            `json:"order_index" binding:"omitempty,min=1"`
	Options      []OptionRequest `json:"options" binding:"required,min=1,dive"`
}
