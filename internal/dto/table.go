package dto

// ── Table DTOs ──

// TableResponse table as returned to the UI; reservation_id is null while free.
type TableResponse struct {
	TableID       int64  `json:"table_id"`
	TableName     string `json:"table_name"`
	Capacity      int    `json:"capacity"`
	ReservationID *int64 `json:"reservation_id"`
	Occupied      bool   `json:"occupied"`
}
