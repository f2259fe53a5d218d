package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eximia/exams-backend/internal/points"
	"github.com/eximia/exams-backend/internal/repository"
	"github.com/eximia/exams-backend/internal/response"
	"github.com/eximia/exams-backend/internal/rules"
	"github.com/eximia/exams-backend/internal/service"
)

// errCodeFor maps a core error to its HTTP status and API error code. The
// core's messages carry the offending numeric values and are surfaced
// unchanged.
func errCodeFor(err error) (int, response.ErrCode) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, response.ErrNotFound
	case errors.Is(err, points.ErrEmptyItems):
		return http.StatusBadRequest, response.ErrEmptyItemSet
	case errors.Is(err, points.ErrBudgetExceeded):
		return http.StatusBadRequest, response.ErrBudgetExceeded
	case errors.Is(err, points.ErrBudgetMismatch):
		return http.StatusBadRequest, response.ErrBudgetMismatch
	case errors.Is(err, points.ErrDistributionInvariant):
		return http.StatusInternalServerError, response.ErrDistributionViolation
	case errors.Is(err, service.ErrQuestionPointsRequired):
		return http.StatusBadRequest, response.ErrPointsRequired
	case errors.Is(err, rules.ErrPointsMismatch):
		return http.StatusBadRequest, response.ErrPointsMismatch
	case errors.Is(err, rules.ErrInvalidCorrectCount):
		return http.StatusBadRequest, response.ErrInvalidCorrectCount
	case errors.Is(err, rules.ErrInvalidOptionCount):
		return http.StatusBadRequest, response.ErrInvalidOptionCount
	case errors.Is(err, rules.ErrInsufficientOptions):
		return http.StatusBadRequest, response.ErrInsufficientOptions
	case errors.Is(err, rules.ErrMissingOrderIndex):
		return http.StatusBadRequest, response.ErrMissingOrderIndex
	case errors.Is(err, rules.ErrUnsupportedType):
		return http.StatusBadRequest, response.ErrUnsupportedType
	default:
		return http.StatusInternalServerError, response.ErrInternal
	}
}

// failFromError sends the mapped error response. Internal errors keep the
// generic message; everything else surfaces the core's own message.
func failFromError(c *gin.Context, err error) {
	status, code := errCodeFor(err)
	if status == http.StatusInternalServerError {
		response.Fail(c, status, code)
		return
	}
	response.FailWithMessage(c, status, code, err.Error())
}
