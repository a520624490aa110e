package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"periodic-tables/backend/internal/api/handler"
	"periodic-tables/backend/internal/api/router"
	"periodic-tables/backend/internal/repository"
	"periodic-tables/backend/internal/service"
	"periodic-tables/backend/pkg/events"
	"periodic-tables/backend/pkg/jwt"
	"periodic-tables/backend/pkg/redis"
)

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := bootstrap(*configPath)
			if err != nil {
				return err
			}
			defer logger.Sync()

			logger.Info("starting",
				zap.Int("port", cfg.Server.Port),
				zap.String("log_level", cfg.Log.Level),
			)

			db, err := openStore(cfg, logger)
			if err != nil {
				return err
			}
			defer closeStore(db)

			// Redis is optional: without it the limiter stays in process and logout cannot revoke tokens.
			var rdb *redis.Client
			if cfg.Redis.Enabled {
				rdb, err = redis.NewClient(&cfg.Redis, logger)
				if err != nil {
					logger.Warn("redis unavailable, continuing without it", zap.Error(err))
					rdb = nil
				} else {
					defer rdb.Close()
				}
			}

			publisher, err := events.NewPublisher(&cfg.Events, logger)
			if err != nil {
				logger.Warn("event broker unavailable, events disabled", zap.Error(err))
				publisher = events.NopPublisher{}
			}
			defer publisher.Close()

			jwtMgr := jwt.NewManager(&cfg.Auth)

			repo := repository.NewRepository(db)
			svc := service.NewService(cfg, repo, publisher, jwtMgr, rdb, logger)
			h := handler.NewHandler(svc, logger)
			engine := router.Setup(cfg, h, jwtMgr, rdb, db, logger)

			srv := &http.Server{
				Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
				Handler:      engine,
				ReadTimeout:  15 * time.Second,
				WriteTimeout: 15 * time.Second,
				IdleTimeout:  60 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("http server listening", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			select {
			case sig := <-quit:
				logger.Info("shutting down", zap.String("signal", sig.String()))
			case err := <-errCh:
				return fmt.Errorf("http server: %w", err)
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("graceful shutdown failed", zap.Error(err))
			}

			logger.Info("server stopped")
			return nil
		},
	}
}
