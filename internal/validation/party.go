package validation

import (
	"encoding/json"
	"math"

	apperrors "periodic-tables/backend/pkg/errors"
)

// MaxSeats the largest party size or table capacity an INTEGER column holds.
const MaxSeats = math.MaxInt32

// PartySize fails unless value is a number strictly greater than zero and at most MaxSeats.
// Numeric strings fail.
func PartySize(value interface{}) error {
	n, ok := Number(value)
	if !ok || n <= 0 || n > MaxSeats {
		return apperrors.BadRequest(apperrors.CodeInvalidPartySize, "people must be a number greater than 0")
	}
	return nil
}

// Seats converts a validated party size to whole seats, rounding fractions up.
func Seats(value interface{}) int {
	n, _ := Number(value)
	return int(math.Ceil(n))
}

// Number reports value as float64 when it holds a JSON number or a Go numeric type.
func Number(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, !math.IsNaN(v) && !math.IsInf(v, 0)
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
