// Package validation holds the business rules a reservation mutation must satisfy. Every rule is
// a pure function returning nil or an *errors.AppError describing the first violation.
package validation

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	apperrors "periodic-tables/backend/pkg/errors"
)

// Reservation field names accepted on the wire.
const (
	FieldFirstName       = "first_name"
	FieldLastName        = "last_name"
	FieldMobileNumber    = "mobile_number"
	FieldReservationDate = "reservation_date"
	FieldReservationTime = "reservation_time"
	FieldPeople          = "people"
	FieldStatus          = "status"
)

// RequiredFields every field a reservation must carry. Status is optional and defaults to booked.
var RequiredFields = []string{
	FieldFirstName,
	FieldLastName,
	FieldMobileNumber,
	FieldReservationDate,
	FieldReservationTime,
	FieldPeople,
}

// allowedFields the whitelist applied on create; read-only after init.
var allowedFields = func() map[string]struct{} {
	m := make(map[string]struct{}, len(RequiredFields)+1)
	for _, f := range RequiredFields {
		m[f] = struct{}{}
	}
	m[FieldStatus] = struct{}{}
	return m
}()

// HasPayload fails when the request carried no data object.
func HasPayload(data map[string]interface{}) error {
	if data == nil {
		return apperrors.BadRequest(apperrors.CodeMissingPayload, "Data is required for a valid request")
	}
	return nil
}

// RequireFields fails naming every field that is absent, null or an empty string.
func RequireFields(data map[string]interface{}, names ...string) error {
	var missing []string
	for _, name := range names {
		v, ok := data[name]
		if !ok || v == nil {
			missing = append(missing, name)
			continue
		}
		if s, isString := v.(string); isString && s == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return apperrors.BadRequest(apperrors.CodeMissingRequiredField,
			"Missing required field(s): %s", strings.Join(missing, ", "))
	}
	return nil
}

// OnlyValidFields fails naming every submitted field outside the whitelist. Names are reported
// sorted so the message is stable.
func OnlyValidFields(data map[string]interface{}) error {
	return onlyFields(data, allowedFields)
}

func onlyFields(data map[string]interface{}, allowed map[string]struct{}) error {
	var invalid []string
	for name := range data {
		if _, ok := allowed[name]; !ok {
			invalid = append(invalid, name)
		}
	}
	if len(invalid) == 0 {
		return nil
	}
	sort.Strings(invalid)
	return apperrors.BadRequest(apperrors.CodeInvalidField, "Invalid field(s): %s", strings.Join(invalid, ", "))
}

// StringField returns data[name] as text. Presence-only fields may arrive as JSON numbers.
func StringField(data map[string]interface{}, name string) string {
	switch v := data[name].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
