package validation

import (
	"regexp"

	"periodic-tables/backend/internal/model"
	apperrors "periodic-tables/backend/pkg/errors"
)

// Serving window, inclusive, as zero-padded HH:MM:SS.
const (
	ServingOpens  = "10:30:00"
	ServingCloses = "21:30:00"
)

// timeShape accepts H:MM, HH:MM and the same with :SS. Hour 24 passes the shape and is then
// rejected by the serving window.
var timeShape = regexp.MustCompile(`^([0-1]?[0-9]|2[0-4]):([0-5][0-9])(:[0-5][0-9])?$`)

// ReservationTime checks format and the serving window.
func ReservationTime(value interface{}) error {
	s, _ := value.(string)
	if !timeShape.MatchString(s) {
		return apperrors.BadRequest(apperrors.CodeInvalidTimeFormat,
			"reservation_time must be submitted in 'HH:MM:SS' or 'HH:MM' format")
	}

	t := model.NormalizeTime(s)
	if t < ServingOpens || t > ServingCloses {
		return apperrors.BadRequest(apperrors.CodeOutsideServingWindow,
			"reservations must be made between 10:30AM and 9:30PM")
	}
	return nil
}
