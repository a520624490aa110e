package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"periodic-tables/backend/config"
	"periodic-tables/backend/internal/model"
	"periodic-tables/backend/internal/repository"
	apperrors "periodic-tables/backend/pkg/errors"
)

// ExportService downloadable views of reservations.
//
// The daily sheet lists the parties expected that day, as the dashboard does. The invite is a
// single VEVENT covering the seating slot, in the restaurant timezone.
type ExportService interface {
	DailySheet(ctx context.Context, date string) (*bytes.Buffer, string, error)
	Invite(ctx context.Context, id string) ([]byte, string, error)
}

type exportService struct {
	repo       *repository.Repository
	restaurant config.RestaurantConfig
	logger     *zap.Logger
}

// NewExportService creates an ExportService.
func NewExportService(repo *repository.Repository, restaurant config.RestaurantConfig, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, restaurant: restaurant, logger: logger}
}

const sheetName = "Reservations"

var sheetHeader = []string{"Time", "First name", "Last name", "Mobile number", "People", "Status"}

// ═══════════════════════════════════════════════════════════
// DailySheet: the day's reservations as .xlsx
// ═══════════════════════════════════════════════════════════
//
// Row 1 title, row 2 header, one row per reservation ordered by time.

func (s *exportService) DailySheet(ctx context.Context, date string) (*bytes.Buffer, string, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, "", apperrors.BadRequest(apperrors.CodeInvalidDateFormat,
			"date must be submitted in 'YYYY-MM-DD' format.")
	}

	list, err := s.repo.Reservation.ListByDate(ctx, date)
	if err != nil {
		s.logger.Error("list reservations for export failed", zap.String("date", date), zap.Error(err))
		return nil, "", fmt.Errorf("list reservations %s: %w", date, err)
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", fmt.Errorf("new sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 10)
	f.SetColWidth(sheetName, "B", "C", 18)
	f.SetColWidth(sheetName, "D", "D", 18)
	f.SetColWidth(sheetName, "E", "F", 10)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s: reservations for %s", s.restaurant.Name, date))
	f.MergeCell(sheetName, "A1", cell(colName(len(sheetHeader)-1), 1))
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	for i, title := range sheetHeader {
		f.SetCellValue(sheetName, cell(colName(i), 2), title)
	}
	f.SetCellStyle(sheetName, "A2", cell(colName(len(sheetHeader)-1), 2), headerStyle)

	row := 3
	for _, r := range list {
		values := []interface{}{
			string(r.ReservationTime),
			r.FirstName,
			r.LastName,
			r.MobileNumber,
			r.People,
			string(r.Status),
		}
		for i, v := range values {
			f.SetCellValue(sheetName, cell(colName(i), row), v)
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write xlsx failed", zap.Error(err))
		return nil, "", fmt.Errorf("write xlsx: %w", err)
	}

	return buf, fmt.Sprintf("reservations_%s.xlsx", date), nil
}

// ═══════════════════════════════════════════════════════════
// Invite: one reservation as an iCalendar event
// ═══════════════════════════════════════════════════════════

func (s *exportService) Invite(ctx context.Context, id string) ([]byte, string, error) {
	reservationID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, "", notFound(id)
	}
	res, err := s.repo.Reservation.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", notFound(id)
		}
		s.logger.Error("get reservation for invite failed", zap.String("reservation_id", id), zap.Error(err))
		return nil, "", fmt.Errorf("get reservation %s: %w", id, err)
	}

	start, err := s.startsAt(res)
	if err != nil {
		s.logger.Error("reservation has unreadable date or time", zap.String("reservation_id", id), zap.Error(err))
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//Periodic Tables//Reservations//EN")

	event := cal.AddEvent(fmt.Sprintf("reservation-%d@periodic-tables", res.ReservationID))
	event.SetDtStampTime(time.Now().UTC())
	event.SetStartAt(start)
	event.SetEndAt(start.Add(s.restaurant.SeatingDuration))
	event.SetSummary(fmt.Sprintf("Table for %d at %s", res.People, s.restaurant.Name))
	event.SetDescription(fmt.Sprintf("Reservation %d for %s %s (%s)",
		res.ReservationID, res.FirstName, res.LastName, res.MobileNumber))
	event.SetLocation(s.restaurant.Name)
	if res.Status == model.StatusCancelled {
		event.SetStatus(ics.ObjectStatusCancelled)
	} else {
		event.SetStatus(ics.ObjectStatusConfirmed)
	}

	return []byte(cal.Serialize()), fmt.Sprintf("reservation_%d.ics", res.ReservationID), nil
}

// startsAt reads the reservation date and time as wall clock in the restaurant timezone.
func (s *exportService) startsAt(res *model.Reservation) (time.Time, error) {
	loc, err := s.restaurant.Location()
	if err != nil {
		return time.Time{}, fmt.Errorf("restaurant timezone: %w", err)
	}
	return time.ParseInLocation("2006-01-02 15:04:05",
		string(res.ReservationDate)+" "+model.NormalizeTime(string(res.ReservationTime)), loc)
}

// ── helpers ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
