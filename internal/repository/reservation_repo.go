package repository

import (
	"context"
	"strings"
	"unicode"

	"gorm.io/gorm"

	"periodic-tables/backend/internal/model"
)

// ReservationRepository reservation data access
type ReservationRepository interface {
	Create(ctx context.Context, r *model.Reservation) error
	GetByID(ctx context.Context, id int64) (*model.Reservation, error)
	List(ctx context.Context) ([]model.Reservation, error)
	ListByDate(ctx context.Context, date string) ([]model.Reservation, error)
	ListByMobileNumber(ctx context.Context, mobileNumber string) ([]model.Reservation, error)
	Update(ctx context.Context, r *model.Reservation) error
	UpdateStatus(ctx context.Context, id int64, status model.ReservationStatus) error
	Delete(ctx context.Context, id int64) error
}

type reservationRepo struct {
	db *gorm.DB
}

// NewReservationRepo creates a gorm-backed ReservationRepository.
func NewReservationRepo(db *gorm.DB) ReservationRepository {
	return &reservationRepo{db: db}
}

func (r *reservationRepo) Create(ctx context.Context, res *model.Reservation) error {
	if res.Status == "" {
		res.Status = model.StatusBooked
	}
	return r.db.WithContext(ctx).Create(res).Error
}

func (r *reservationRepo) GetByID(ctx context.Context, id int64) (*model.Reservation, error) {
	var res model.Reservation
	err := r.db.WithContext(ctx).
		Where("reservation_id = ?", id).
		First(&res).Error
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *reservationRepo) List(ctx context.Context) ([]model.Reservation, error) {
	var list []model.Reservation
	err := r.db.WithContext(ctx).
		Order("reservation_date ASC, reservation_time ASC").
		Find(&list).Error
	return list, err
}

// ListByDate the dashboard view: parties still expected or at a table that day.
func (r *reservationRepo) ListByDate(ctx context.Context, date string) ([]model.Reservation, error) {
	var list []model.Reservation
	err := r.db.WithContext(ctx).
		Where("reservation_date = ?", date).
		Where("status NOT IN ?", []model.ReservationStatus{model.StatusFinished, model.StatusCancelled}).
		Order("reservation_time ASC").
		Find(&list).Error
	return list, err
}

// ListByMobileNumber partial match on the digits of the number, any status.
func (r *reservationRepo) ListByMobileNumber(ctx context.Context, mobileNumber string) ([]model.Reservation, error) {
	var list []model.Reservation
	needle := digitsOnly(mobileNumber)
	if needle == "" {
		needle = likeEscaper.Replace(mobileNumber)
	}

	err := r.db.WithContext(ctx).
		Where(strippedMobileExpr+` LIKE ? ESCAPE '\'`, "%"+needle+"%").
		Order("reservation_date ASC, reservation_time ASC").
		Find(&list).Error
	return list, err
}

func (r *reservationRepo) Update(ctx context.Context, res *model.Reservation) error {
	return r.db.WithContext(ctx).Save(res).Error
}

func (r *reservationRepo) UpdateStatus(ctx context.Context, id int64, status model.ReservationStatus) error {
	result := r.db.WithContext(ctx).
		Model(&model.Reservation{}).
		Where("reservation_id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *reservationRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Where("reservation_id = ?", id).
		Delete(&model.Reservation{}).Error
}

// strippedMobileExpr removes the usual separators; portable across PostgreSQL and SQLite.
const strippedMobileExpr = "REPLACE(REPLACE(REPLACE(REPLACE(REPLACE(mobile_number, '(', ''), ')', ''), '-', ''), ' ', ''), '.', '')"

// likeEscaper makes LIKE wildcards in a search term match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
