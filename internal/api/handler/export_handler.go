package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"periodic-tables/backend/internal/service"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	icsContentType  = "text/calendar; charset=utf-8"
)

// ExportHandler file downloads
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// DailySheet GET /reservations/export?date=YYYY-MM-DD
func (h *ExportHandler) DailySheet(c *gin.Context) error {
	buf, filename, err := h.exportSvc.DailySheet(c.Request.Context(), c.Query("date"))
	if err != nil {
		return err
	}

	attachment(c, filename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
	return nil
}

// Invite GET /reservations/:reservation_id/ics
func (h *ExportHandler) Invite(c *gin.Context) error {
	body, filename, err := h.exportSvc.Invite(c.Request.Context(), c.Param("reservation_id"))
	if err != nil {
		return err
	}

	attachment(c, filename)
	c.Data(http.StatusOK, icsContentType, body)
	return nil
}

func attachment(c *gin.Context, filename string) {
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
}
