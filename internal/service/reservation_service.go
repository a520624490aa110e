package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

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

// Pipeline names, used as the metrics label.
const (
	pipelineCreate = "create"
	pipelineUpdate = "update"
	pipelineStatus = "status"
	pipelineDelete = "delete"
)

// ReservationService reservation reads and the validated mutation pipelines.
type ReservationService interface {
	List(ctx context.Context, req *dto.ReservationListRequest) ([]dto.ReservationResponse, error)
	Get(ctx context.Context, id string) (*dto.ReservationResponse, error)
	Create(ctx context.Context, data dto.Payload) (*dto.ReservationResponse, error)
	Update(ctx context.Context, id string, data dto.Payload) (*dto.ReservationResponse, error)
	UpdateStatus(ctx context.Context, id string, data dto.Payload) (*dto.ReservationResponse, error)
	Delete(ctx context.Context, id string) error
}

type reservationService struct {
	repo      *repository.Repository
	publisher events.Publisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewReservationService creates a ReservationService. now is the clock the past-date rule
// compares against.
func NewReservationService(
	repo *repository.Repository,
	publisher events.Publisher,
	logger *zap.Logger,
	now func() time.Time,
) ReservationService {
	return &reservationService{repo: repo, publisher: publisher, logger: logger, now: now}
}

// ── pipeline ──

// reservationRequest state shared by the checks of one pipeline run.
type reservationRequest struct {
	id      string
	data    dto.Payload
	current *model.Reservation
}

// check one pipeline stage: nil lets the next stage run.
type check func(ctx context.Context, req *reservationRequest) error

// run executes checks in order and stops at the first failure.
func (s *reservationService) run(ctx context.Context, pipeline string, req *reservationRequest, checks ...check) error {
	for _, c := range checks {
		if err := c(ctx, req); err != nil {
			if appErr, ok := apperrors.As(err); ok {
				metrics.IncRejection(pipeline, appErr.Code)
			}
			return err
		}
	}
	return nil
}

func hasPayload(_ context.Context, req *reservationRequest) error {
	return validation.HasPayload(req.data)
}

func hasRequiredFields(_ context.Context, req *reservationRequest) error {
	return validation.RequireFields(req.data, validation.RequiredFields...)
}

func hasInitialStatus(_ context.Context, req *reservationRequest) error {
	return validation.InitialStatus(req.data[validation.FieldStatus])
}

func hasOnlyValidFields(_ context.Context, req *reservationRequest) error {
	return validation.OnlyValidFields(req.data)
}

func (s *reservationService) hasValidDate(allowPast bool) check {
	return func(_ context.Context, req *reservationRequest) error {
		return validation.ReservationDate(req.data[validation.FieldReservationDate], s.now(), allowPast)
	}
}

func hasValidTime(_ context.Context, req *reservationRequest) error {
	return validation.ReservationTime(req.data[validation.FieldReservationTime])
}

func hasValidPartySize(_ context.Context, req *reservationRequest) error {
	return validation.PartySize(req.data[validation.FieldPeople])
}

func (s *reservationService) exists(ctx context.Context, req *reservationRequest) error {
	res, err := s.load(ctx, req.id)
	if err != nil {
		return err
	}
	req.current = res
	return nil
}

func isNotTerminal(_ context.Context, req *reservationRequest) error {
	return validation.NotTerminal(req.current.Status)
}

func hasKnownStatus(_ context.Context, req *reservationRequest) error {
	return validation.KnownStatus(req.data[validation.FieldStatus])
}

// hasKnownStatusIfGiven lets the full update omit status.
func hasKnownStatusIfGiven(_ context.Context, req *reservationRequest) error {
	if validation.StringField(req.data, validation.FieldStatus) == "" {
		return nil
	}
	return validation.KnownStatus(req.data[validation.FieldStatus])
}

// ────────────────────── Reads ──────────────────────

func (s *reservationService) List(ctx context.Context, req *dto.ReservationListRequest) ([]dto.ReservationResponse, error) {
	var (
		list []model.Reservation
		err  error
	)
	switch {
	case req.Date != "":
		list, err = s.repo.Reservation.ListByDate(ctx, req.Date)
	case req.MobileNumber != "":
		list, err = s.repo.Reservation.ListByMobileNumber(ctx, req.MobileNumber)
	default:
		list, err = s.repo.Reservation.List(ctx)
	}
	if err != nil {
		s.logger.Error("list reservations failed", zap.Error(err))
		return nil, fmt.Errorf("list reservations: %w", err)
	}

	result := make([]dto.ReservationResponse, 0, len(list))
	for i := range list {
		result = append(result, *toReservationResponse(&list[i]))
	}
	return result, nil
}

func (s *reservationService) Get(ctx context.Context, id string) (*dto.ReservationResponse, error) {
	res, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toReservationResponse(res), nil
}

// ────────────────────── Create ──────────────────────

func (s *reservationService) Create(ctx context.Context, data dto.Payload) (*dto.ReservationResponse, error) {
	req := &reservationRequest{data: data}
	err := s.run(ctx, pipelineCreate, req,
		hasPayload,
		hasRequiredFields,
		hasInitialStatus,
		hasOnlyValidFields,
		s.hasValidDate(false),
		hasValidTime,
		hasValidPartySize,
	)
	if err != nil {
		return nil, err
	}

	res := &model.Reservation{Status: model.StatusBooked}
	applyBookingFields(res, data)

	if err := s.repo.Reservation.Create(ctx, res); err != nil {
		s.logger.Error("create reservation failed", zap.Error(err))
		return nil, fmt.Errorf("create reservation: %w", err)
	}

	metrics.IncOperation(pipelineCreate)
	s.publish(ctx, events.Event{
		Type:            events.TypeReservationCreated,
		ReservationID:   res.ReservationID,
		Status:          string(res.Status),
		ReservationDate: string(res.ReservationDate),
	})

	return toReservationResponse(res), nil
}

// ────────────────────── Update ──────────────────────

// Update replaces the six booking fields and, when given, the status. Neither the past-date rule
// nor the transition guard applies.
func (s *reservationService) Update(ctx context.Context, id string, data dto.Payload) (*dto.ReservationResponse, error) {
	req := &reservationRequest{id: id, data: data}
	err := s.run(ctx, pipelineUpdate, req,
		s.exists,
		hasRequiredFields,
		s.hasValidDate(true),
		hasValidTime,
		hasValidPartySize,
		hasKnownStatusIfGiven,
	)
	if err != nil {
		return nil, err
	}

	res := req.current
	previous := res.Status
	applyBookingFields(res, data)
	if status := validation.StringField(data, validation.FieldStatus); status != "" {
		res.Status = model.ReservationStatus(status)
	}

	if err := s.repo.Reservation.Update(ctx, res); err != nil {
		s.logger.Error("update reservation failed", zap.Int64("reservation_id", res.ReservationID), zap.Error(err))
		return nil, fmt.Errorf("update reservation %d: %w", res.ReservationID, err)
	}

	metrics.IncOperation(pipelineUpdate)
	if res.Status != previous {
		s.publish(ctx, events.Event{
			Type:            events.TypeReservationStatusChanged,
			ReservationID:   res.ReservationID,
			Status:          string(res.Status),
			PreviousStatus:  string(previous),
			ReservationDate: string(res.ReservationDate),
		})
	}
	return toReservationResponse(res), nil
}

// UpdateStatus moves a non-finished reservation to any known status.
func (s *reservationService) UpdateStatus(ctx context.Context, id string, data dto.Payload) (*dto.ReservationResponse, error) {
	req := &reservationRequest{id: id, data: data}
	err := s.run(ctx, pipelineStatus, req,
		s.exists,
		isNotTerminal,
		hasKnownStatus,
	)
	if err != nil {
		return nil, err
	}

	res := req.current
	previous := res.Status
	next := model.ReservationStatus(validation.StringField(data, validation.FieldStatus))

	if err := s.repo.Reservation.UpdateStatus(ctx, res.ReservationID, next); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(id)
		}
		s.logger.Error("update reservation status failed", zap.Int64("reservation_id", res.ReservationID), zap.Error(err))
		return nil, fmt.Errorf("update reservation %d status: %w", res.ReservationID, err)
	}
	res.Status = next

	metrics.IncOperation(pipelineStatus)
	s.publish(ctx, events.Event{
		Type:            events.TypeReservationStatusChanged,
		ReservationID:   res.ReservationID,
		Status:          string(next),
		PreviousStatus:  string(previous),
		ReservationDate: string(res.ReservationDate),
	})

	return toReservationResponse(res), nil
}

// ────────────────────── Delete ──────────────────────

func (s *reservationService) Delete(ctx context.Context, id string) error {
	req := &reservationRequest{id: id}
	if err := s.run(ctx, pipelineDelete, req, s.exists); err != nil {
		return err
	}

	if err := s.repo.Reservation.Delete(ctx, req.current.ReservationID); err != nil {
		s.logger.Error("delete reservation failed", zap.Int64("reservation_id", req.current.ReservationID), zap.Error(err))
		return fmt.Errorf("delete reservation %d: %w", req.current.ReservationID, err)
	}

	metrics.IncOperation(pipelineDelete)
	s.publish(ctx, events.Event{
		Type:            events.TypeReservationDeleted,
		ReservationID:   req.current.ReservationID,
		ReservationDate: string(req.current.ReservationDate),
	})
	return nil
}

// ── helpers ──

// load fetches a reservation by its path id. Ids that are not integers cannot exist.
func (s *reservationService) load(ctx context.Context, id string) (*model.Reservation, error) {
	reservationID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, notFound(id)
	}

	res, err := s.repo.Reservation.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(id)
		}
		s.logger.Error("get reservation failed", zap.String("reservation_id", id), zap.Error(err))
		return nil, fmt.Errorf("get reservation %s: %w", id, err)
	}
	return res, nil
}

func (s *reservationService) publish(ctx context.Context, evt events.Event) {
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("publish event failed",
			zap.String("type", evt.Type),
			zap.Int64("reservation_id", evt.ReservationID),
			zap.Error(err),
		)
	}
}

func notFound(id string) error {
	return apperrors.NotFound("Sorry no reservation found with id:%s", id)
}

// applyBookingFields copies the six validated booking fields from data.
func applyBookingFields(res *model.Reservation, data dto.Payload) {
	res.FirstName = validation.StringField(data, validation.FieldFirstName)
	res.LastName = validation.StringField(data, validation.FieldLastName)
	res.MobileNumber = validation.StringField(data, validation.FieldMobileNumber)
	res.ReservationDate = model.Date(validation.StringField(data, validation.FieldReservationDate))
	res.ReservationTime = model.TimeOfDay(model.NormalizeTime(validation.StringField(data, validation.FieldReservationTime)))
	res.People = validation.Seats(data[validation.FieldPeople])
}

func toReservationResponse(res *model.Reservation) *dto.ReservationResponse {
	return &dto.ReservationResponse{
		ReservationID:   res.ReservationID,
		FirstName:       res.FirstName,
		LastName:        res.LastName,
		MobileNumber:    res.MobileNumber,
		ReservationDate: string(res.ReservationDate),
		ReservationTime: string(res.ReservationTime),
		People:          res.People,
		Status:          string(res.Status),
		CreatedAt:       formatTimestamp(res.CreatedAt),
		UpdatedAt:       formatTimestamp(res.UpdatedAt),
	}
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
