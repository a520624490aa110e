package validation

import (
	"periodic-tables/backend/internal/model"
	apperrors "periodic-tables/backend/pkg/errors"
)

// transitions the intended lifecycle graph. The status endpoint only enforces
// NotTerminal + KnownStatus; seating moves go through CanTransition.
var transitions = map[model.ReservationStatus][]model.ReservationStatus{
	model.StatusBooked: {model.StatusSeated, model.StatusCancelled},
	model.StatusSeated: {model.StatusFinished, model.StatusCancelled},
}

// CanTransition reports whether from → to is an edge of the lifecycle graph.
func CanTransition(from, to model.ReservationStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// InitialStatus fails when a status is submitted on create and is not booked. An absent or
// empty status means booked.
func InitialStatus(value interface{}) error {
	if value == nil {
		return nil
	}
	s, isString := value.(string)
	if isString && (s == "" || model.ReservationStatus(s) == model.StatusBooked) {
		return nil
	}
	return apperrors.BadRequest(apperrors.CodeInvalidInitialStatus,
		`Status:%v is not valid. Reservation must start off as "booked"`, value)
}

// NotTerminal fails when the current status accepts no further change.
func NotTerminal(current model.ReservationStatus) error {
	if current.Terminal() {
		return apperrors.BadRequest(apperrors.CodeTerminalStatus, "%s reservation cannot be updated", current)
	}
	return nil
}

// KnownStatus fails unless value is one of the four statuses.
func KnownStatus(value interface{}) error {
	s, _ := value.(string)
	if value == nil || value == "" {
		return apperrors.BadRequest(apperrors.CodeUnknownStatus, "status is required")
	}
	if !model.ReservationStatus(s).Valid() {
		return apperrors.BadRequest(apperrors.CodeUnknownStatus, "%v is not a valid status", value)
	}
	return nil
}
