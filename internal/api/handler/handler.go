package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"periodic-tables/backend/internal/dto"
	"periodic-tables/backend/internal/service"
	apperrors "periodic-tables/backend/pkg/errors"
	"periodic-tables/backend/pkg/response"
)

// Handler aggregates every handler.
type Handler struct {
	Reservation *ReservationHandler
	Table       *TableHandler
	Export      *ExportHandler
	Auth        *AuthHandler

	logger *zap.Logger
}

// NewHandler creates the Handler aggregate.
func NewHandler(svc *service.Service, logger *zap.Logger) *Handler {
	return &Handler{
		Reservation: NewReservationHandler(svc.Reservation),
		Table:       NewTableHandler(svc.Table),
		Export:      NewExportHandler(svc.Export),
		Auth:        NewAuthHandler(svc.Auth),
		logger:      logger,
	}
}

// Func a handler that reports failure through its return value.
type Func func(c *gin.Context) error

// Wrap adapts fn to gin. An *AppError is rendered unchanged; any other error is logged and
// rendered as a 500 without its cause.
func (h *Handler) Wrap(fn Func) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := fn(c)
		if err == nil {
			return
		}

		if appErr, ok := apperrors.As(err); ok {
			response.AppError(c, appErr)
			return
		}

		_ = c.Error(err)
		h.logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("route", c.FullPath()),
			zap.String("request_id", c.GetString("request_id")),
			zap.Error(err),
		)
		response.InternalError(c)
	}
}

// bindPayload reads the {"data": {...}} envelope. An empty body yields a nil payload so the
// pipelines report it as missing data.
func bindPayload(c *gin.Context) (dto.Payload, error) {
	var env dto.Envelope
	if err := c.ShouldBindJSON(&env); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return nil, nil
		case errors.As(err, &tooLarge):
			return nil, apperrors.New(http.StatusRequestEntityTooLarge, apperrors.CodePayloadTooLarge,
				"request body is too large")
		default:
			return nil, apperrors.BadRequest(apperrors.CodeMalformedBody, "request body must be a JSON object")
		}
	}
	return env.Data, nil
}
