package model

import (
	"time"

	"github.com/google/uuid"
)

// Exam represents an exam entity. Questions are stored in their own table and
// referenced here by ID; QuestionIDs is back-patched after the questions are
// persisted.
type Exam struct {
	ID              uuid.UUID   `json:"id"`
	Title           string      `json:"title"`
	Description     string      `json:"description,omitempty"`
	DurationMinutes int         `json:"duration_minutes"`
	PassingScore    float64     `json:"passing_score"`
	TotalPoints     float64     `json:"total_points"`
	Subject         string      `json:"subject,omitempty"`
	DifficultyLevel string      `json:"difficulty_level,omitempty"`
	QuestionIDs     []uuid.UUID `json:"question_ids"`
	CreatedBy       string      `json:"created_by"`
	UpdatedBy       string      `json:"updated_by,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// ExamDetail is an exam with its full question tree resolved, as returned by
// the read endpoints.
type ExamDetail struct {
	Exam
	Questions []QuestionDetail `json:"questions"`
}

// CreateExamRequest is the payload for creating an exam with its full
// question/option tree in one request.
type CreateExamRequest struct {
	Title           string            `json:"title" binding:"required,min=3,max=200"`
	Description     string            `json:"description" binding:"omitempty,max=1000"`
	DurationMinutes int               `json:"duration_minutes" binding:"required,min=1,max=480"`
	PassingScore    *float64          `json:"passing_score" binding:"omitempty,min=0,max=100"`
	TotalPoints     *float64          `json:"total_points" binding:"omitempty,gt=0"`
	Subject         string            `json:"subject" binding:"omitempty,max=100"`
	DifficultyLevel string            `json:"difficulty_level" binding:"omitempty,max=50"`
	CreatedBy       string            `json:"created_by" binding:"omitempty,max=100"`
	Questions       []QuestionRequest `json:"questions" binding:"required,min=1,dive"`
}

// UpdateExamRequest is the payload for updating an exam. A non-empty
// Questions list replaces the existing question set entirely.
type UpdateExamRequest struct {
	Title           string            `json:"title" binding:"omitempty,min=3,max=200"`
	Description     string            `json:"description" binding:"omitempty,max=1000"`
	DurationMinutes int               `json:"duration_minutes" binding:"omitempty,min=1,max=480"`
	PassingScore    *float64          `json:"passing_score" binding:"omitempty,min=0,max=100"`
	Subject         string            `json:"subject" binding:"omitempty,max=100"`
	DifficultyLevel string            `json:"difficulty_level" binding:"omitempty,max=50"`
	UpdatedBy       string            `json:"updated_by" binding:"omitempty,max=100"`
	Questions       []QuestionRequest `json:"questions" binding:"omitempty,dive"`
}

// ExamCriteria holds the optional filters for the exam search endpoint.
// Zero values mean "no filter".
type ExamCriteria struct {
	Title           string
	Description     string
	Subject         string
	DifficultyLevel string
	CreatedBy       string
}
