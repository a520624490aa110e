package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "periodic-tables/backend/pkg/errors"
)

// Response envelope shared with the UI: successes carry data, failures carry status + message.
type Response struct {
	Data    interface{} `json:"data,omitempty"`
	Status  int         `json:"status,omitempty"`
	Code    int         `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ── Success ──

// OK 200
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Data: data})
}

// Created 201
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Data: data})
}

// NoContent 204, no body.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// ── Failure ──

// Error generic failure response
func Error(c *gin.Context, httpStatus int, code int, message string) {
	c.JSON(httpStatus, Response{
		Status:  httpStatus,
		Code:    code,
		Message: message,
	})
}

// AppError renders a structured failure as is.
func AppError(c *gin.Context, err *apperrors.AppError) {
	Error(c, err.Status, err.Code, err.Message)
}

// BadRequest 400
func BadRequest(c *gin.Context, code int, message string) {
	Error(c, http.StatusBadRequest, code, message)
}

// Unauthorized 401
func Unauthorized(c *gin.Context, code int, message string) {
	Error(c, http.StatusUnauthorized, code, message)
}

// NotFound 404
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, apperrors.CodeNotFound, message)
}

// TooManyRequests 429
func TooManyRequests(c *gin.Context) {
	Error(c, http.StatusTooManyRequests, apperrors.CodeTooManyRequests, "Too many requests, slow down")
}

// InternalError 500
func InternalError(c *gin.Context) {
	AppError(c, apperrors.Internal())
}
