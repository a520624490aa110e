package service

import (
	"context"
	"crypto/subtle"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"periodic-tables/backend/config"
	"periodic-tables/backend/internal/dto"
	apperrors "periodic-tables/backend/pkg/errors"
	"periodic-tables/backend/pkg/jwt"
	"periodic-tables/backend/pkg/redis"
)

// AuthService staff login and logout.
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	// Logout revokes the token until it would have expired.
	Logout(ctx context.Context, claims *jwt.Claims) error
}

type authService struct {
	cfg    *config.AuthConfig
	jwtMgr *jwt.Manager
	rdb    *redis.Client // nil when Redis is off; logout is then a no-op
	logger *zap.Logger
}

// NewAuthService creates an AuthService.
func NewAuthService(cfg *config.AuthConfig, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) AuthService {
	return &authService{cfg: cfg, jwtMgr: jwtMgr, rdb: rdb, logger: logger}
}

func invalidCredentials() error {
	return apperrors.Unauthorized(apperrors.CodeInvalidCredentials, "invalid username or password")
}

func (s *authService) Login(_ context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	if subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.cfg.StaffUsername)) != 1 {
		return nil, invalidCredentials()
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.StaffPasswordHash), []byte(req.Password)); err != nil {
		return nil, invalidCredentials()
	}

	accessToken, err := s.jwtMgr.GenerateAccessToken(req.Username)
	if err != nil {
		s.logger.Error("sign access token failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("staff logged in", zap.String("username", req.Username))
	return &dto.TokenResponse{
		AccessToken: accessToken,
		ExpiresIn:   int(s.jwtMgr.TTL().Seconds()),
	}, nil
}

func (s *authService) Logout(ctx context.Context, claims *jwt.Claims) error {
	if s.rdb == nil || claims == nil || claims.ID == "" {
		return nil
	}

	var ttl time.Duration
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if err := s.rdb.BlacklistToken(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("blacklist token failed", zap.String("jti", claims.ID), zap.Error(err))
		return err
	}
	return nil
}
