package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/eximia/exams-backend/internal/model"
	"github.com/eximia/exams-backend/internal/response"
	"github.com/eximia/exams-backend/internal/service"
	"github.com/eximia/exams-backend/internal/validator"
)

// OptionHandler handles the standalone option endpoints.
type OptionHandler struct {
	optionService *service.OptionService
}

// NewOptionHandler creates a new OptionHandler.
func NewOptionHandler(optionService *service.OptionService) *OptionHandler {
	return &OptionHandler{optionService: optionService}
}

// ListOptions godoc
// GET /api/v1/questions/:id/options
// Lists all options of a question.
func (h *OptionHandler) ListOptions(c *gin.Context) {
	questionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	options, err := h.optionService.ListByQuestion(c.Request.Context(), questionID)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"options": options})
}

// GetOption godoc
// GET /api/v1/options/:id
// Retrieves a single option.
func (h *OptionHandler) GetOption(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	option, err := h.optionService.GetByID(c.Request.Context(), id)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"option": option})
}

// UpdateOption godoc
// PUT /api/v1/options/:id
// Rewrites an option's content.
func (h *OptionHandler) UpdateOption(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.OptionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	option, err := h.optionService.Update(c.Request.Context(), id, &req)
	if err != nil {
		failFromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"option": option})
}

// DeleteOption godoc
// DELETE /api/v1/options/:id
// Deletes a single option.
func (h *OptionHandler) DeleteOption(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.optionService.Delete(c.Request.Context(), id); err != nil {
		failFromError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
