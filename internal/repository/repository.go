package repository

import (
	"errors"

	"gorm.io/gorm"
)

// ErrTableOccupied a seat attempt lost the race for the table.
var ErrTableOccupied = errors.New("table is occupied")

// Repository aggregates every repository.
type Repository struct {
	Reservation ReservationRepository
	Table       TableRepository
}

// NewRepository wires every repository to one database handle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Reservation: NewReservationRepo(db),
		Table:       NewTableRepo(db),
	}
}
