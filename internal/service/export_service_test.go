package service

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"periodic-tables/backend/config"
	"periodic-tables/backend/internal/model"
	"periodic-tables/backend/internal/repository"
	apperrors "periodic-tables/backend/pkg/errors"
)

// ── helpers ──

func setupTestExportService(tz string) (ExportService, *mockReservationRepo) {
	resRepo := newMockReservationRepo()
	repo := &repository.Repository{Reservation: resRepo, Table: newMockTableRepo(resRepo)}
	restaurant := config.RestaurantConfig{
		Name:            "Periodic Tables",
		Timezone:        tz,
		SeatingDuration: 2 * time.Hour,
	}
	return NewExportService(repo, restaurant, zap.NewNop()), resRepo
}

// ── DailySheet ──

func TestExportService_DailySheet(t *testing.T) {
	svc, repo := setupTestExportService("UTC")
	late := seedReservation(repo, model.StatusBooked)
	late.ReservationTime = "20:00:00"
	early := seedReservation(repo, model.StatusSeated)
	early.FirstName = "Beth"
	early.ReservationTime = "11:00:00"
	seedReservation(repo, model.StatusCancelled)

	buf, filename, err := svc.DailySheet(context.Background(), "2025-01-15")
	if err != nil {
		t.Fatalf("DailySheet should succeed: %v", err)
	}
	if filename != "reservations_2025-01-15.xlsx" {
		t.Errorf("unexpected filename %s", filename)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("output is not a workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected title, header and 2 rows, got %d rows", len(rows))
	}
	if !strings.Contains(rows[0][0], "2025-01-15") {
		t.Errorf("title should name the date: %q", rows[0][0])
	}
	if rows[1][0] != "Time" {
		t.Errorf("unexpected header %v", rows[1])
	}
	if rows[2][0] != "11:00:00" || rows[2][1] != "Beth" {
		t.Errorf("rows should be ordered by time, got %v", rows[2])
	}
	if rows[3][5] != "booked" {
		t.Errorf("status column: got %v", rows[3])
	}
}

func TestExportService_DailySheet_BadDate(t *testing.T) {
	svc, _ := setupTestExportService("UTC")

	_, _, err := svc.DailySheet(context.Background(), "tomorrow")
	assertAppError(t, err, http.StatusBadRequest, apperrors.CodeInvalidDateFormat)
}

// ── Invite ──

func TestExportService_Invite(t *testing.T) {
	svc, repo := setupTestExportService("America/New_York")
	seedReservation(repo, model.StatusBooked) // 2025-01-15 18:00 local

	body, filename, err := svc.Invite(context.Background(), "1")
	if err != nil {
		t.Fatalf("Invite should succeed: %v", err)
	}
	if filename != "reservation_1.ics" {
		t.Errorf("unexpected filename %s", filename)
	}

	text := string(body)
	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"UID:reservation-1@periodic-tables",
		"DTSTART:20250115T230000Z",
		"DTEND:20250116T010000Z",
		"SUMMARY:Table for 4 at Periodic Tables",
		"STATUS:CONFIRMED",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("calendar should contain %q\n%s", want, text)
		}
	}
}

func TestExportService_Invite_NotFound(t *testing.T) {
	svc, _ := setupTestExportService("UTC")

	_, _, err := svc.Invite(context.Background(), "12")
	assertAppError(t, err, http.StatusNotFound, apperrors.CodeNotFound)
}
