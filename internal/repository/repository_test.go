package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"periodic-tables/backend/internal/model"
)

// ── test setup: gorm over in-memory SQLite ──

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(&model.Reservation{}, &model.Table{}); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}
	return db
}

func newReservation(first, mobile, date, tm string, status model.ReservationStatus) *model.Reservation {
	return &model.Reservation{
		FirstName:       first,
		LastName:        "Tester",
		MobileNumber:    mobile,
		ReservationDate: model.Date(date),
		ReservationTime: model.TimeOfDay(tm),
		People:          2,
		Status:          status,
	}
}

// ── Reservation ──

func TestReservationRepo_CreateAndGet(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()

	res := newReservation("Ada", "555-0100", "2025-01-15", "12:00", "")
	if err := repo.Reservation.Create(ctx, res); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if res.ReservationID == 0 {
		t.Fatal("expected an assigned id")
	}

	got, err := repo.Reservation.GetByID(ctx, res.ReservationID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != model.StatusBooked {
		t.Errorf("expected default status booked, got %s", got.Status)
	}
	if got.ReservationDate != "2025-01-15" {
		t.Errorf("expected date 2025-01-15, got %s", got.ReservationDate)
	}
	if got.ReservationTime != "12:00:00" {
		t.Errorf("expected normalized time 12:00:00, got %s", got.ReservationTime)
	}

	_, err = repo.Reservation.GetByID(ctx, 9999)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestReservationRepo_ListByDate(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()

	fixtures := []*model.Reservation{
		newReservation("Late", "1", "2025-01-15", "19:00", model.StatusBooked),
		newReservation("Early", "2", "2025-01-15", "11:00", model.StatusSeated),
		newReservation("Done", "3", "2025-01-15", "12:00", model.StatusFinished),
		newReservation("Gone", "4", "2025-01-15", "13:00", model.StatusCancelled),
		newReservation("Other", "5", "2025-01-16", "12:00", model.StatusBooked),
	}
	for _, f := range fixtures {
		if err := repo.Reservation.Create(ctx, f); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	list, err := repo.Reservation.ListByDate(ctx, "2025-01-15")
	if err != nil {
		t.Fatalf("ListByDate: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 active reservations, got %d", len(list))
	}
	if list[0].FirstName != "Early" || list[1].FirstName != "Late" {
		t.Errorf("expected ordering by time, got %s, %s", list[0].FirstName, list[1].FirstName)
	}
}

func TestReservationRepo_ListByMobileNumber(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()

	for _, r := range []*model.Reservation{
		newReservation("Dashed", "555-0100", "2025-01-15", "12:00", model.StatusFinished),
		newReservation("Spaced", "(555) 0100", "2025-01-16", "12:00", model.StatusBooked),
		newReservation("Other", "800-1234", "2025-01-16", "12:00", model.StatusBooked),
	} {
		if err := repo.Reservation.Create(ctx, r); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	list, err := repo.Reservation.ListByMobileNumber(ctx, "5550100")
	if err != nil {
		t.Fatalf("ListByMobileNumber: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 matches across formats and statuses, got %d", len(list))
	}

	list, _ = repo.Reservation.ListByMobileNumber(ctx, "555-01")
	if len(list) != 2 {
		t.Errorf("partial number should match, got %d", len(list))
	}

	for _, wildcard := range []string{"%", "_", "%_%"} {
		list, err = repo.Reservation.ListByMobileNumber(ctx, wildcard)
		if err != nil {
			t.Fatalf("ListByMobileNumber(%q): %v", wildcard, err)
		}
		if len(list) != 0 {
			t.Errorf("%q must match literally, got %d rows", wildcard, len(list))
		}
	}
}

func TestReservationRepo_UpdateStatus(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()

	res := newReservation("Ada", "555", "2025-01-15", "12:00", model.StatusBooked)
	repo.Reservation.Create(ctx, res)

	if err := repo.Reservation.UpdateStatus(ctx, res.ReservationID, model.StatusCancelled); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	got, _ := repo.Reservation.GetByID(ctx, res.ReservationID)
	if got.Status != model.StatusCancelled {
		t.Errorf("expected cancelled, got %s", got.Status)
	}

	err := repo.Reservation.UpdateStatus(ctx, 4242, model.StatusSeated)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound for a missing id, got %v", err)
	}
}

func TestReservationRepo_UpdateAndDelete(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()

	res := newReservation("Ada", "555", "2025-01-15", "12:00", model.StatusBooked)
	repo.Reservation.Create(ctx, res)

	res.FirstName = "Grace"
	res.People = 6
	if err := repo.Reservation.Update(ctx, res); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ := repo.Reservation.GetByID(ctx, res.ReservationID)
	if got.FirstName != "Grace" || got.People != 6 {
		t.Errorf("update not persisted: %+v", got)
	}

	if err := repo.Reservation.Delete(ctx, res.ReservationID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.Reservation.GetByID(ctx, res.ReservationID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected the row gone, got %v", err)
	}
}

// ── Table ──

func TestTableRepo_SeatAndFinish(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()

	res := newReservation("Ada", "555", "2025-01-15", "12:00", model.StatusBooked)
	repo.Reservation.Create(ctx, res)
	table := &model.Table{Name: "Bar #1", Capacity: 4}
	if err := repo.Table.Create(ctx, table); err != nil {
		t.Fatalf("Create table: %v", err)
	}

	if err := repo.Table.Seat(ctx, table.TableID, res.ReservationID); err != nil {
		t.Fatalf("Seat: %v", err)
	}
	gotTable, _ := repo.Table.GetByID(ctx, table.TableID)
	if !gotTable.Occupied() || *gotTable.ReservationID != res.ReservationID {
		t.Fatalf("table should hold reservation %d: %+v", res.ReservationID, gotTable)
	}
	gotRes, _ := repo.Reservation.GetByID(ctx, res.ReservationID)
	if gotRes.Status != model.StatusSeated {
		t.Errorf("expected seated, got %s", gotRes.Status)
	}

	other := newReservation("Bob", "556", "2025-01-15", "12:00", model.StatusBooked)
	repo.Reservation.Create(ctx, other)
	if err := repo.Table.Seat(ctx, table.TableID, other.ReservationID); !errors.Is(err, ErrTableOccupied) {
		t.Errorf("expected ErrTableOccupied, got %v", err)
	}
	gotOther, _ := repo.Reservation.GetByID(ctx, other.ReservationID)
	if gotOther.Status != model.StatusBooked {
		t.Errorf("failed seat must roll back, got %s", gotOther.Status)
	}

	if err := repo.Table.Finish(ctx, table.TableID, res.ReservationID); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	gotTable, _ = repo.Table.GetByID(ctx, table.TableID)
	if gotTable.Occupied() {
		t.Error("table should be free after finish")
	}
	gotRes, _ = repo.Reservation.GetByID(ctx, res.ReservationID)
	if gotRes.Status != model.StatusFinished {
		t.Errorf("expected finished, got %s", gotRes.Status)
	}
}

func TestTableRepo_FinishKeepsCancelled(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()

	res := newReservation("Ada", "555", "2025-01-15", "12:00", model.StatusBooked)
	repo.Reservation.Create(ctx, res)
	table := &model.Table{Name: "#1", Capacity: 4}
	repo.Table.Create(ctx, table)
	if err := repo.Table.Seat(ctx, table.TableID, res.ReservationID); err != nil {
		t.Fatalf("Seat: %v", err)
	}
	if err := repo.Reservation.UpdateStatus(ctx, res.ReservationID, model.StatusCancelled); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	if err := repo.Table.Finish(ctx, table.TableID, res.ReservationID); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	gotTable, _ := repo.Table.GetByID(ctx, table.TableID)
	if gotTable.Occupied() {
		t.Error("table should be free after finish")
	}
	gotRes, _ := repo.Reservation.GetByID(ctx, res.ReservationID)
	if gotRes.Status != model.StatusCancelled {
		t.Errorf("cancelled reservation must not become finished, got %s", gotRes.Status)
	}
}

func TestTableRepo_ListOrderedByName(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	ctx := context.Background()

	for _, name := range []string{"Patio", "Bar #2", "Bar #1"} {
		repo.Table.Create(ctx, &model.Table{Name: name, Capacity: 2})
	}

	tables, err := repo.Table.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(tables) != 3 || tables[0].Name != "Bar #1" || tables[2].Name != "Patio" {
		t.Errorf("unexpected order: %+v", tables)
	}
}
