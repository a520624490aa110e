package dto

// ── Reservation DTOs ──

// Payload is the raw `data` object of a mutation request. It stays untyped so the rules can see
// unknown fields and the JSON type of each value.
type Payload map[string]interface{}

// Envelope wraps every request body: {"data": {...}}.
type Envelope struct {
	Data Payload `json:"data"`
}

// ReservationListRequest list query parameters; date wins over mobile_number.
type ReservationListRequest struct {
	Date         string `form:"date"`
	MobileNumber string `form:"mobile_number"`
}

// ReservationResponse reservation as returned to the UI
type ReservationResponse struct {
	ReservationID   int64  `json:"reservation_id"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	MobileNumber    string `json:"mobile_number"`
	ReservationDate string `json:"reservation_date"`
	ReservationTime string `json:"reservation_time"`
	People          int    `json:"people"`
	Status          string `json:"status"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}
