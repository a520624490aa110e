package model

// ReservationStatus lifecycle stage of a reservation.
type ReservationStatus string

const (
	StatusBooked    ReservationStatus = "booked"
	StatusSeated    ReservationStatus = "seated"
	StatusCancelled ReservationStatus = "cancelled"
	StatusFinished  ReservationStatus = "finished"
)

// ReservationStatuses every status a reservation may hold, in lifecycle order.
var ReservationStatuses = []ReservationStatus{StatusBooked, StatusSeated, StatusCancelled, StatusFinished}

// Valid reports whether s is one of the known statuses.
func (s ReservationStatus) Valid() bool {
	for _, known := range ReservationStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Terminal reports whether no further status change is accepted.
func (s ReservationStatus) Terminal() bool {
	return s == StatusFinished
}

// Reservation a booking for a party (reservations)
type Reservation struct {
	ReservationID   int64             `gorm:"primaryKey;autoIncrement"                json:"reservation_id"`
	FirstName       string            `gorm:"type:varchar(100);not null"              json:"first_name"`
	LastName        string            `gorm:"type:varchar(100);not null"              json:"last_name"`
	MobileNumber    string            `gorm:"type:varchar(40);not null;index"         json:"mobile_number"`
	ReservationDate Date              `gorm:"type:date;not null;index"                json:"reservation_date"`
	ReservationTime TimeOfDay         `gorm:"type:time;not null"                      json:"reservation_time"`
	People          int               `gorm:"not null"                                json:"people"`
	Status          ReservationStatus `gorm:"type:varchar(20);not null;default:'booked'" json:"status"`
	BaseModel
}

// TableName maps the model to its table.
func (Reservation) TableName() string { return "reservations" }
