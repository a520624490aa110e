package model

// Table a restaurant table (tables). Occupied while ReservationID is set.
type Table struct {
	TableID       int64  `gorm:"primaryKey;autoIncrement"                     json:"table_id"`
	Name          string `gorm:"column:table_name;type:varchar(100);not null" json:"table_name"`
	Capacity      int    `gorm:"not null"                                     json:"capacity"`
	ReservationID *int64 `gorm:"index"                                        json:"reservation_id"`
	BaseModel

	Reservation *Reservation `gorm:"foreignKey:ReservationID;references:ReservationID;constraint:OnDelete:SET NULL" json:"-"`
}

// TableName maps the model to its table.
func (Table) TableName() string { return "tables" }

// Occupied reports whether a party is seated at the table.
func (t *Table) Occupied() bool { return t.ReservationID != nil }
