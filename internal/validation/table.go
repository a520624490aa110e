package validation

import (
	"math"
	"strconv"
	"unicode/utf8"

	apperrors "periodic-tables/backend/pkg/errors"
)

// Table field names accepted on the wire.
const (
	FieldTableName     = "table_name"
	FieldCapacity      = "capacity"
	FieldReservationID = "reservation_id"
)

var tableFields = map[string]struct{}{
	FieldTableName: {},
	FieldCapacity:  {},
}

// OnlyTableFields fails naming every submitted field other than table_name and capacity.
func OnlyTableFields(data map[string]interface{}) error {
	return onlyFields(data, tableFields)
}

// TableName fails unless value is a string of at least two characters.
func TableName(value interface{}) error {
	s, _ := value.(string)
	if utf8.RuneCountInString(s) < 2 {
		return apperrors.BadRequest(apperrors.CodeInvalidTableName, "table_name must be at least 2 characters long")
	}
	return nil
}

// Capacity fails unless value is a whole number of at least one seat.
func Capacity(value interface{}) error {
	n, ok := Number(value)
	if !ok || n < 1 || n > MaxSeats || n != math.Trunc(n) {
		return apperrors.BadRequest(apperrors.CodeInvalidCapacity, "capacity must be a whole number of at least 1")
	}
	return nil
}

// ReservationRef reads the reservation_id a seat request refers to. It must be a positive whole
// number; numeric strings are accepted since the UI submits form values.
func ReservationRef(value interface{}) (int64, error) {
	if s, isString := value.(string); isString {
		if id, err := strconv.ParseInt(s, 10, 64); err == nil && id > 0 {
			return id, nil
		}
	} else if n, ok := Number(value); ok && n >= 1 && n < math.MaxInt64 && n == math.Trunc(n) {
		return int64(n), nil
	}
	return 0, apperrors.BadRequest(apperrors.CodeMissingReservation, "reservation_id is required")
}
