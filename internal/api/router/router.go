package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"periodic-tables/backend/config"
	"periodic-tables/backend/internal/api/handler"
	"periodic-tables/backend/internal/api/middleware"
	"periodic-tables/backend/pkg/jwt"
	"periodic-tables/backend/pkg/metrics"
	"periodic-tables/backend/pkg/redis"
)

// Setup builds the gin engine. rdb may be nil.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, db *gorm.DB, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	metrics.Register()

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	// ── probes ──
	r.GET("/health", health(db, rdb))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	staff := middleware.StaffAuth(cfg.Auth.Enabled, jwtMgr, rdb, logger)

	// ── auth ──
	auth := r.Group("/auth")
	{
		auth.POST("/login", h.Wrap(h.Auth.Login))
		auth.POST("/logout", staff, h.Wrap(h.Auth.Logout))
	}

	// ── reservations ──
	reservations := r.Group("/reservations")
	{
		create := []gin.HandlerFunc{staff}
		if cfg.RateLimit.Enabled {
			create = append(create, middleware.RateLimit(rdb, cfg.RateLimit.Limit, cfg.RateLimit.Window, logger))
		}

		reservations.GET("", h.Wrap(h.Reservation.List))
		reservations.POST("", append(create, h.Wrap(h.Reservation.Create))...)
		reservations.GET("/export", h.Wrap(h.Export.DailySheet))
		reservations.GET("/:reservation_id", h.Wrap(h.Reservation.Get))
		reservations.GET("/:reservation_id/ics", h.Wrap(h.Export.Invite))
		reservations.PUT("/:reservation_id", staff, h.Wrap(h.Reservation.Update))
		reservations.PUT("/:reservation_id/status", staff, h.Wrap(h.Reservation.UpdateStatus))
		reservations.DELETE("/:reservation_id", staff, h.Wrap(h.Reservation.Delete))
	}

	// ── tables ──
	tables := r.Group("/tables")
	{
		tables.GET("", h.Wrap(h.Table.List))
		tables.POST("", staff, h.Wrap(h.Table.Create))
		tables.PUT("/:table_id/seat", staff, h.Wrap(h.Table.Seat))
		tables.DELETE("/:table_id/seat", staff, h.Wrap(h.Table.Finish))
	}

	return r
}

// health reports whether the database, and Redis when configured, answer a ping.
func health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		checks := gin.H{}
		healthy := true

		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			checks["database"] = "down"
			healthy = false
		} else {
			checks["database"] = "ok"
		}

		if rdb != nil {
			if err := rdb.Ping(ctx); err != nil {
				checks["redis"] = "down"
				healthy = false
			} else {
				checks["redis"] = "ok"
			}
		}

		status := http.StatusOK
		checks["status"] = "ok"
		if !healthy {
			status = http.StatusServiceUnavailable
			checks["status"] = "degraded"
		}
		c.JSON(status, checks)
	}
}
