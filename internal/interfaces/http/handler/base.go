// Package handler holds the gin handlers of the /api/v1 surface.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sitebuild/backend/internal/domain/shared"
	"github.com/sitebuild/backend/internal/infrastructure/logger"
	"github.com/sitebuild/backend/internal/interfaces/http/dto"
	"github.com/sitebuild/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, middleware.GetRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// HandleError translates err into the envelope. Domain errors keep their code
// and field; transient storage failures get a Retry-After hint. Anything else
// is logged and answered with 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	requestID := middleware.GetRequestID(c)

	var domainErr *shared.DomainError
	if !errors.As(err, &domainErr) {
		logger.GetGinLogger(c).Error("Unhandled error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeInternal, "An unexpected error occurred", requestID))
		return
	}

	status := dto.GetHTTPStatus(domainErr.Code)
	if domainErr.Code == shared.CodeTransientStorage {
		logger.GetGinLogger(c).Warn("Transient storage failure", zap.Error(err))
		c.Header("Retry-After", dto.RetryAfterSeconds)
	}
	c.JSON(status, dto.NewFieldErrorResponse(domainErr.Code, domainErr.Message, domainErr.Field, requestID))
}

// bindJSON binds the body into req, answering 400/413 itself on failure
func (h *BaseHandler) bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.bindingError(c, err)
		return false
	}
	return true
}

// bindQuery binds list parameters, answering 400 itself on failure
func (h *BaseHandler) bindQuery(c *gin.Context) (shared.Filter, bool) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.bindingError(c, err)
		return shared.Filter{}, false
	}
	return req.ToFilter(), true
}

func (h *BaseHandler) bindingError(c *gin.Context, err error) {
	described := middleware.DescribeBindingError(err)
	requestID := middleware.GetRequestID(c)
	switch {
	case described.TooLarge:
		c.JSON(http.StatusRequestEntityTooLarge, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeRequestTooLarge, described.Message, requestID))
	case described.Malformed:
		h.BadRequest(c, described.Message)
	default:
		c.JSON(http.StatusBadRequest, dto.NewFieldErrorResponse(
			dto.ErrCodeValidation, described.Message, described.Field, requestID))
	}
}

// pathID parses a positive integer path parameter, answering 400 itself on failure
func (h *BaseHandler) pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, dto.NewFieldErrorResponse(
			dto.ErrCodeValidation, name+" must be a positive integer", name, middleware.GetRequestID(c)))
		return 0, false
	}
	return id, true
}
