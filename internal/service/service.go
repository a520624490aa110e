package service

import (
	"time"

	"go.uber.org/zap"

	"periodic-tables/backend/config"
	"periodic-tables/backend/internal/repository"
	"periodic-tables/backend/pkg/events"
	"periodic-tables/backend/pkg/jwt"
	"periodic-tables/backend/pkg/redis"
)

// Service aggregates every service.
type Service struct {
	Reservation ReservationService
	Table       TableService
	Export      ExportService
	Auth        AuthService
}

// NewService wires the services. rdb may be nil.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	publisher events.Publisher,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	return &Service{
		Reservation: NewReservationService(repo, publisher, logger, time.Now),
		Table:       NewTableService(repo, publisher, logger),
		Export:      NewExportService(repo, cfg.Restaurant, logger),
		Auth:        NewAuthService(&cfg.Auth, jwtMgr, rdb, logger),
	}
}
