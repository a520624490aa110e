package handler

import (
	"github.com/gin-gonic/gin"

	"periodic-tables/backend/internal/dto"
	"periodic-tables/backend/internal/service"
	apperrors "periodic-tables/backend/pkg/errors"
	"periodic-tables/backend/pkg/response"
)

// AuthHandler staff login and logout
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) error {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return apperrors.BadRequest(apperrors.CodeMalformedBody, "username and password are required")
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		return err
	}
	response.OK(c, result)
	return nil
}

// Logout POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) error {
	if err := h.authSvc.Logout(c.Request.Context(), staffClaims(c)); err != nil {
		return err
	}
	response.NoContent(c)
	return nil
}
