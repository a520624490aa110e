package validation

import (
	"regexp"
	"time"

	apperrors "periodic-tables/backend/pkg/errors"
)

// ClosedWeekday the restaurant takes no reservations on this day.
const ClosedWeekday = time.Tuesday

// dateShape checks shape only; calendar validity is checked separately.
var dateShape = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ReservationDate checks format, closed weekday and, unless allowPast, that the date is not in
// the past relative to now. The date is read as UTC midnight.
func ReservationDate(value interface{}, now time.Time, allowPast bool) error {
	s, _ := value.(string)
	if !dateShape.MatchString(s) {
		return apperrors.BadRequest(apperrors.CodeInvalidDateFormat,
			"reservation_date must be submitted in 'YYYY-MM-DD' format.")
	}

	date, err := time.Parse("2006-01-02", s)
	if err != nil {
		return apperrors.BadRequest(apperrors.CodeInvalidCalendarDate,
			"reservation_date %s is not a valid calendar date", s)
	}

	if date.Weekday() == ClosedWeekday {
		return apperrors.BadRequest(apperrors.CodeClosedDay,
			"Sorry we are closed on Tuesdays, please pick a different reservation_date")
	}

	// Updates skip this check even when the date itself changes.
	if allowPast {
		return nil
	}
	if date.Before(now) {
		return apperrors.BadRequest(apperrors.CodePastDate,
			"reservation_date must be made at least a day in the future")
	}
	return nil
}
