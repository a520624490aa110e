package handler

import (
	"github.com/gin-gonic/gin"

	"periodic-tables/backend/internal/service"
	"periodic-tables/backend/pkg/response"
)

// TableHandler table and seating endpoints
type TableHandler struct {
	tableSvc service.TableService
}

// NewTableHandler creates a TableHandler.
func NewTableHandler(tableSvc service.TableService) *TableHandler {
	return &TableHandler{tableSvc: tableSvc}
}

// List GET /tables
func (h *TableHandler) List(c *gin.Context) error {
	tables, err := h.tableSvc.List(c.Request.Context())
	if err != nil {
		return err
	}
	response.OK(c, tables)
	return nil
}

// Create POST /tables
func (h *TableHandler) Create(c *gin.Context) error {
	data, err := bindPayload(c)
	if err != nil {
		return err
	}

	table, err := h.tableSvc.Create(c.Request.Context(), data)
	if err != nil {
		return err
	}
	response.Created(c, table)
	return nil
}

// Seat PUT /tables/:table_id/seat
func (h *TableHandler) Seat(c *gin.Context) error {
	data, err := bindPayload(c)
	if err != nil {
		return err
	}

	table, err := h.tableSvc.Seat(c.Request.Context(), c.Param("table_id"), data)
	if err != nil {
		return err
	}
	response.OK(c, table)
	return nil
}

// Finish DELETE /tables/:table_id/seat
func (h *TableHandler) Finish(c *gin.Context) error {
	table, err := h.tableSvc.Finish(c.Request.Context(), c.Param("table_id"))
	if err != nil {
		return err
	}
	response.OK(c, table)
	return nil
}
