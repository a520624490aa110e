// Package seed loads demo tables and reservations into an empty database.
package seed

import (
	"context"
	_ "embed"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"periodic-tables/backend/internal/model"
	"periodic-tables/backend/internal/repository"
)

//go:embed seed.yaml
var defaultSeed []byte

// Data the seed file layout.
type Data struct {
	Tables       []Table       `yaml:"tables"`
	Reservations []Reservation `yaml:"reservations"`
}

// Table one seeded table.
type Table struct {
	Name     string `yaml:"table_name"`
	Capacity int    `yaml:"capacity"`
}

// Reservation one seeded reservation. Status defaults to booked.
type Reservation struct {
	FirstName    string `yaml:"first_name"`
	LastName     string `yaml:"last_name"`
	MobileNumber string `yaml:"mobile_number"`
	Date         string `yaml:"reservation_date"`
	Time         string `yaml:"reservation_time"`
	People       int    `yaml:"people"`
	Status       string `yaml:"status"`
}

// Default the embedded demo data.
func Default() (*Data, error) {
	return Parse(defaultSeed)
}

// Parse decodes and checks a seed document.
func Parse(raw []byte) (*Data, error) {
	var data Data
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	for i, t := range data.Tables {
		if len(t.Name) < 2 || t.Capacity < 1 {
			return nil, fmt.Errorf("seed table %d: name needs 2+ characters and capacity at least 1", i)
		}
	}
	for i, r := range data.Reservations {
		if r.FirstName == "" || r.LastName == "" || r.MobileNumber == "" || r.Date == "" || r.Time == "" {
			return nil, fmt.Errorf("seed reservation %d: missing field", i)
		}
		if r.People < 1 {
			return nil, fmt.Errorf("seed reservation %d: people must be at least 1", i)
		}
		if r.Status != "" && !model.ReservationStatus(r.Status).Valid() {
			return nil, fmt.Errorf("seed reservation %d: unknown status %q", i, r.Status)
		}
	}
	return &data, nil
}

// Apply inserts the data unless the store already holds tables or reservations.
// It reports whether anything was written.
func Apply(ctx context.Context, repo *repository.Repository, data *Data, logger *zap.Logger) (bool, error) {
	tables, err := repo.Table.List(ctx)
	if err != nil {
		return false, fmt.Errorf("list tables: %w", err)
	}
	reservations, err := repo.Reservation.List(ctx)
	if err != nil {
		return false, fmt.Errorf("list reservations: %w", err)
	}
	if len(tables) > 0 || len(reservations) > 0 {
		logger.Info("seed skipped, store is not empty",
			zap.Int("tables", len(tables)),
			zap.Int("reservations", len(reservations)),
		)
		return false, nil
	}

	for _, t := range data.Tables {
		if err := repo.Table.Create(ctx, &model.Table{Name: t.Name, Capacity: t.Capacity}); err != nil {
			return false, fmt.Errorf("seed table %s: %w", t.Name, err)
		}
	}
	for _, r := range data.Reservations {
		res := &model.Reservation{
			FirstName:       r.FirstName,
			LastName:        r.LastName,
			MobileNumber:    r.MobileNumber,
			ReservationDate: model.Date(r.Date),
			ReservationTime: model.TimeOfDay(model.NormalizeTime(r.Time)),
			People:          r.People,
			Status:          model.ReservationStatus(r.Status),
		}
		if err := repo.Reservation.Create(ctx, res); err != nil {
			return false, fmt.Errorf("seed reservation %s %s: %w", r.FirstName, r.LastName, err)
		}
	}

	logger.Info("seed applied",
		zap.Int("tables", len(data.Tables)),
		zap.Int("reservations", len(data.Reservations)),
	)
	return true, nil
}
