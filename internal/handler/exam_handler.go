package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/eximia/exams-backend/internal/messaging"
	"github.com/eximia/exams-backend/internal/model"
	"github.com/eximia/exams-backend/internal/response"
	"github.com/eximia/exams-backend/internal/service"
	"github.com/eximia/exams-backend/internal/validator"
)

// ExamHandler handles the exam endpoints.
type ExamHandler struct {
	examService *service.ExamService
	publisher   *messaging.ExamPublisher
}

// NewExamHandler creates a new ExamHandler. publisher may be nil when the
// messaging boundary is disabled; the enqueue endpoint then returns 503.
func NewExamHandler(examService *service.ExamService, publisher *messaging.ExamPublisher) *ExamHandler {
	return &ExamHandler{examService: examService, publisher: publisher}
}

// CreateExam godoc
// POST /api/v1/exams
// Creates an exam with its full question/option tree.
func (h *ExamHandler) CreateExam(c *gin.Context) {
	var req model.CreateExamRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	exam, err := h.examService.Create(c.Request.Context(), &req)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"exam": exam})
}

// EnqueueExam godoc
// POST /api/v1/exams/enqueue
// Queues an exam creation request for asynchronous processing.
func (h *ExamHandler) EnqueueExam(c *gin.Context) {
	if h.publisher == nil {
		response.Fail(c, http.StatusServiceUnavailable, response.ErrInternal)
		return
	}

	var req model.CreateExamRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.publisher.EnqueueCreation(c.Request.Context(), &req); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusAccepted, gin.H{"message": "exam creation request accepted"})
}

// GetExam godoc
// GET /api/v1/exams/:id
// Retrieves an exam with its questions and options.
func (h *ExamHandler) GetExam(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	exam, err := h.examService.GetByID(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"exam": exam})
}

// SearchExams godoc
// GET /api/v1/exams
// Lists exams matching optional filters with pagination.
func (h *ExamHandler) SearchExams(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	criteria := model.ExamCriteria{
		Title:           c.Query("title"),
		Description:     c.Query("description"),
		Subject:         c.Query("subject"),
		DifficultyLevel: c.Query("difficulty_level"),
		CreatedBy:       c.Query("created_by"),
	}

	exams, pagination, err := h.examService.Search(c.Request.Context(), criteria, page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"exams": exams}, pagination)
}

// UpdateExam godoc
// PUT /api/v1/exams/:id
// Updates an exam; a supplied question list replaces the existing one.
func (h *ExamHandler) UpdateExam(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateExamRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	exam, err := h.examService.Update(c.Request.Context(), id, &req)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"exam": exam})
}

// DeleteExam godoc
// DELETE /api/v1/exams/:id
// Deletes an exam and cascades to its questions and options.
func (h *ExamHandler) DeleteExam(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.examService.Delete(c.Request.Context(), id); err != nil {
		failFromError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
