package repository

import (
	"context"

	"gorm.io/gorm"

	"periodic-tables/backend/internal/model"
)

// TableRepository restaurant table data access
type TableRepository interface {
	Create(ctx context.Context, t *model.Table) error
	GetByID(ctx context.Context, id int64) (*model.Table, error)
	List(ctx context.Context) ([]model.Table, error)
	// Seat occupies the table and marks the reservation seated in one transaction.
	Seat(ctx context.Context, tableID, reservationID int64) error
	// Finish frees the table and marks the reservation finished in one transaction.
	Finish(ctx context.Context, tableID, reservationID int64) error
}

type tableRepo struct {
	db *gorm.DB
}

// NewTableRepo creates a gorm-backed TableRepository.
func NewTableRepo(db *gorm.DB) TableRepository {
	return &tableRepo{db: db}
}

func (r *tableRepo) Create(ctx context.Context, t *model.Table) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *tableRepo) GetByID(ctx context.Context, id int64) (*model.Table, error) {
	var t model.Table
	err := r.db.WithContext(ctx).
		Where("table_id = ?", id).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *tableRepo) List(ctx context.Context) ([]model.Table, error) {
	var tables []model.Table
	err := r.db.WithContext(ctx).Order("table_name ASC").Find(&tables).Error
	return tables, err
}

func (r *tableRepo) Seat(ctx context.Context, tableID, reservationID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Only a free table can be taken; a concurrent seat loses here.
		result := tx.Model(&model.Table{}).
			Where("table_id = ? AND reservation_id IS NULL", tableID).
			Updates(map[string]interface{}{
				"reservation_id": reservationID,
				"updated_at":     gorm.Expr("CURRENT_TIMESTAMP"),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrTableOccupied
		}

		return setStatus(tx, reservationID, model.StatusSeated)
	})
}

func (r *tableRepo) Finish(ctx context.Context, tableID, reservationID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.Table{}).
			Where("table_id = ?", tableID).
			Updates(map[string]interface{}{
				"reservation_id": nil,
				"updated_at":     gorm.Expr("CURRENT_TIMESTAMP"),
			}).Error
		if err != nil {
			return err
		}

		// A party cancelled while at the table keeps its status.
		return setStatus(tx.Where("status = ?", model.StatusSeated), reservationID, model.StatusFinished)
	})
}

func setStatus(tx *gorm.DB, reservationID int64, status model.ReservationStatus) error {
	return tx.Model(&model.Reservation{}).
		Where("reservation_id = ?", reservationID).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}).Error
}
