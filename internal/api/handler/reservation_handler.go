package handler

import (
	"github.com/gin-gonic/gin"

	"periodic-tables/backend/internal/dto"
	"periodic-tables/backend/internal/service"
	apperrors "periodic-tables/backend/pkg/errors"
	"periodic-tables/backend/pkg/response"
)

// ReservationHandler reservation endpoints
type ReservationHandler struct {
	reservationSvc service.ReservationService
}

// NewReservationHandler creates a ReservationHandler.
func NewReservationHandler(reservationSvc service.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservationSvc: reservationSvc}
}

// List GET /reservations?date=&mobile_number=
func (h *ReservationHandler) List(c *gin.Context) error {
	var req dto.ReservationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return apperrors.BadRequest(apperrors.CodeMalformedBody, "invalid query parameters")
	}

	list, err := h.reservationSvc.List(c.Request.Context(), &req)
	if err != nil {
		return err
	}
	response.OK(c, list)
	return nil
}

// Get GET /reservations/:reservation_id
func (h *ReservationHandler) Get(c *gin.Context) error {
	res, err := h.reservationSvc.Get(c.Request.Context(), c.Param("reservation_id"))
	if err != nil {
		return err
	}
	response.OK(c, res)
	return nil
}

// Create POST /reservations
func (h *ReservationHandler) Create(c *gin.Context) error {
	data, err := bindPayload(c)
	if err != nil {
		return err
	}

	res, err := h.reservationSvc.Create(c.Request.Context(), data)
	if err != nil {
		return err
	}
	response.Created(c, res)
	return nil
}

// Update PUT /reservations/:reservation_id
func (h *ReservationHandler) Update(c *gin.Context) error {
	data, err := bindPayload(c)
	if err != nil {
		return err
	}

	res, err := h.reservationSvc.Update(c.Request.Context(), c.Param("reservation_id"), data)
	if err != nil {
		return err
	}
	response.OK(c, res)
	return nil
}

// UpdateStatus PUT /reservations/:reservation_id/status
func (h *ReservationHandler) UpdateStatus(c *gin.Context) error {
	data, err := bindPayload(c)
	if err != nil {
		return err
	}

	res, err := h.reservationSvc.UpdateStatus(c.Request.Context(), c.Param("reservation_id"), data)
	if err != nil {
		return err
	}
	response.OK(c, res)
	return nil
}

// Delete DELETE /reservations/:reservation_id
func (h *ReservationHandler) Delete(c *gin.Context) error {
	if err := h.reservationSvc.Delete(c.Request.Context(), c.Param("reservation_id")); err != nil {
		return err
	}
	response.NoContent(c)
	return nil
}
