package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"periodic-tables/backend/internal/dto"
	"periodic-tables/backend/internal/model"
	"periodic-tables/backend/internal/repository"
	"periodic-tables/backend/internal/validation"
	apperrors "periodic-tables/backend/pkg/errors"
	"periodic-tables/backend/pkg/events"
	"periodic-tables/backend/pkg/metrics"
)

// TableService restaurant tables and seating.
type TableService interface {
	List(ctx context.Context) ([]dto.TableResponse, error)
	Create(ctx context.Context, data dto.Payload) (*dto.TableResponse, error)
	// Seat puts a booked party at a free table that fits it.
	Seat(ctx context.Context, tableID string, data dto.Payload) (*dto.TableResponse, error)
	// Finish frees an occupied table and finishes the seated reservation.
	Finish(ctx context.Context, tableID string) (*dto.TableResponse, error)
}

type tableService struct {
	repo      *repository.Repository
	publisher events.Publisher
	logger    *zap.Logger
}

// NewTableService creates a TableService.
func NewTableService(repo *repository.Repository, publisher events.Publisher, logger *zap.Logger) TableService {
	return &tableService{repo: repo, publisher: publisher, logger: logger}
}

// ────────────────────── List / Create ──────────────────────

func (s *tableService) List(ctx context.Context) ([]dto.TableResponse, error) {
	tables, err := s.repo.Table.List(ctx)
	if err != nil {
		s.logger.Error("list tables failed", zap.Error(err))
		return nil, fmt.Errorf("list tables: %w", err)
	}

	result := make([]dto.TableResponse, 0, len(tables))
	for i := range tables {
		result = append(result, *toTableResponse(&tables[i]))
	}
	return result, nil
}

func (s *tableService) Create(ctx context.Context, data dto.Payload) (*dto.TableResponse, error) {
	if err := firstFailure(
		func() error { return validation.HasPayload(data) },
		func() error { return validation.RequireFields(data, validation.FieldTableName, validation.FieldCapacity) },
		func() error { return validation.OnlyTableFields(data) },
		func() error { return validation.TableName(data[validation.FieldTableName]) },
		func() error { return validation.Capacity(data[validation.FieldCapacity]) },
	); err != nil {
		return nil, err
	}

	capacity, _ := validation.Number(data[validation.FieldCapacity])
	table := &model.Table{
		Name:     validation.StringField(data, validation.FieldTableName),
		Capacity: int(capacity),
	}
	if err := s.repo.Table.Create(ctx, table); err != nil {
		s.logger.Error("create table failed", zap.Error(err))
		return nil, fmt.Errorf("create table: %w", err)
	}

	metrics.IncOperation("table_create")
	return toTableResponse(table), nil
}

// ────────────────────── Seat ──────────────────────

func (s *tableService) Seat(ctx context.Context, tableID string, data dto.Payload) (*dto.TableResponse, error) {
	if err := validation.HasPayload(data); err != nil {
		return nil, err
	}
	reservationID, err := validation.ReservationRef(data[validation.FieldReservationID])
	if err != nil {
		return nil, err
	}

	table, err := s.loadTable(ctx, tableID)
	if err != nil {
		return nil, err
	}

	res, err := s.repo.Reservation.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(strconv.FormatInt(reservationID, 10))
		}
		s.logger.Error("get reservation failed", zap.Int64("reservation_id", reservationID), zap.Error(err))
		return nil, fmt.Errorf("get reservation %d: %w", reservationID, err)
	}

	if !validation.CanTransition(res.Status, model.StatusSeated) {
		return nil, apperrors.BadRequest(apperrors.CodeIllegalTransition,
			"reservation %d is %s and cannot be seated", res.ReservationID, res.Status)
	}
	if res.People > table.Capacity {
		return nil, apperrors.BadRequest(apperrors.CodeInsufficientSeats,
			"table %s seats %d, party of %d does not fit", table.Name, table.Capacity, res.People)
	}
	if table.Occupied() {
		return nil, tableOccupied(table)
	}

	if err := s.repo.Table.Seat(ctx, table.TableID, res.ReservationID); err != nil {
		if errors.Is(err, repository.ErrTableOccupied) {
			return nil, tableOccupied(table)
		}
		s.logger.Error("seat reservation failed",
			zap.Int64("table_id", table.TableID),
			zap.Int64("reservation_id", res.ReservationID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("seat reservation %d at table %d: %w", res.ReservationID, table.TableID, err)
	}
	table.ReservationID = &res.ReservationID

	metrics.IncOperation("seat")
	s.publish(ctx, events.Event{
		Type:            events.TypeTableSeated,
		ReservationID:   res.ReservationID,
		TableID:         table.TableID,
		Status:          string(model.StatusSeated),
		PreviousStatus:  string(res.Status),
		ReservationDate: string(res.ReservationDate),
	})

	return toTableResponse(table), nil
}

// ────────────────────── Finish ──────────────────────

func (s *tableService) Finish(ctx context.Context, tableID string) (*dto.TableResponse, error) {
	table, err := s.loadTable(ctx, tableID)
	if err != nil {
		return nil, err
	}
	if !table.Occupied() {
		return nil, apperrors.BadRequest(apperrors.CodeTableNotOccupied, "table %s is not occupied", table.Name)
	}

	reservationID := *table.ReservationID
	res, err := s.repo.Reservation.GetByID(ctx, reservationID)
	if err != nil {
		s.logger.Error("get seated reservation failed", zap.Int64("reservation_id", reservationID), zap.Error(err))
		return nil, fmt.Errorf("get reservation %d: %w", reservationID, err)
	}

	// The store only finishes a seated party; a cancelled one keeps its status.
	status := res.Status
	if validation.CanTransition(res.Status, model.StatusFinished) {
		status = model.StatusFinished
	}

	if err := s.repo.Table.Finish(ctx, table.TableID, reservationID); err != nil {
		s.logger.Error("finish table failed", zap.Int64("table_id", table.TableID), zap.Error(err))
		return nil, fmt.Errorf("finish table %d: %w", table.TableID, err)
	}
	table.ReservationID = nil

	metrics.IncOperation("finish")
	s.publish(ctx, events.Event{
		Type:            events.TypeTableFinished,
		ReservationID:   reservationID,
		TableID:         table.TableID,
		Status:          string(status),
		PreviousStatus:  string(res.Status),
		ReservationDate: string(res.ReservationDate),
	})

	return toTableResponse(table), nil
}

// ── helpers ──

func (s *tableService) loadTable(ctx context.Context, id string) (*model.Table, error) {
	tableID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, tableNotFound(id)
	}

	table, err := s.repo.Table.GetByID(ctx, tableID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, tableNotFound(id)
		}
		s.logger.Error("get table failed", zap.String("table_id", id), zap.Error(err))
		return nil, fmt.Errorf("get table %s: %w", id, err)
	}
	return table, nil
}

func (s *tableService) publish(ctx context.Context, evt events.Event) {
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("publish event failed", zap.String("type", evt.Type), zap.Error(err))
	}
}

// firstFailure runs rules in order and returns the first error.
func firstFailure(rules ...func() error) error {
	for _, rule := range rules {
		if err := rule(); err != nil {
			return err
		}
	}
	return nil
}

func tableNotFound(id string) error {
	return apperrors.NotFound("Sorry no table found with id:%s", id)
}

func tableOccupied(table *model.Table) error {
	return apperrors.BadRequest(apperrors.CodeTableOccupied, "table %s is occupied", table.Name)
}

func toTableResponse(t *model.Table) *dto.TableResponse {
	return &dto.TableResponse{
		TableID:       t.TableID,
		TableName:     t.Name,
		Capacity:      t.Capacity,
		ReservationID: t.ReservationID,
		Occupied:      t.Occupied(),
	}
}
