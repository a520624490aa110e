package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ── Business codes ──
//
// 4xxyy: request rejected by a business rule, 5xxxx: server side failure.
const (
	CodeMalformedBody = 40000

	CodeMissingPayload       = 40001
	CodeMissingRequiredField = 40002
	CodeInvalidField         = 40003

	CodeInvalidDateFormat   = 40010
	CodeInvalidCalendarDate = 40011
	CodeClosedDay           = 40012
	CodePastDate            = 40013

	CodeInvalidTimeFormat    = 40020
	CodeOutsideServingWindow = 40021

	CodeInvalidPartySize = 40030

	CodeInvalidInitialStatus = 40040
	CodeTerminalStatus       = 40041
	CodeUnknownStatus        = 40042
	CodeIllegalTransition    = 40043

	CodeInvalidTableName   = 40050
	CodeInvalidCapacity    = 40051
	CodeTableOccupied      = 40052
	CodeTableNotOccupied   = 40053
	CodeInsufficientSeats  = 40054
	CodeMissingReservation = 40055

	CodeInvalidCredentials = 40100
	CodeUnauthenticated    = 40101

	CodeNotFound = 40400

	CodePayloadTooLarge = 41300

	CodeTooManyRequests = 42900

	CodeInternal = 50000
)

// AppError is a request failure carrying the HTTP status it should be rendered with.
// Returned through normal error values; the HTTP boundary renders it unchanged.
type AppError struct {
	Status  int
	Code    int
	Message string
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%d/%d: %s", e.Status, e.Code, e.Message)
}

// New creates an AppError.
func New(status, code int, message string) *AppError {
	return &AppError{Status: status, Code: code, Message: message}
}

// BadRequest 400 with a business code.
func BadRequest(code int, format string, args ...any) *AppError {
	return New(http.StatusBadRequest, code, fmt.Sprintf(format, args...))
}

// NotFound 404.
func NotFound(format string, args ...any) *AppError {
	return New(http.StatusNotFound, CodeNotFound, fmt.Sprintf(format, args...))
}

// Unauthorized 401.
func Unauthorized(code int, message string) *AppError {
	return New(http.StatusUnauthorized, code, message)
}

// Internal 500. The message never carries the underlying cause.
func Internal() *AppError {
	return New(http.StatusInternalServerError, CodeInternal, "Internal server error")
}

// As extracts an AppError from err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err is an AppError with the given business code.
func HasCode(err error, code int) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == code
}
