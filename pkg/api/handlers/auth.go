// Package handlers holds the Echo HTTP handlers for the API.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/jordanlanch/campaignforge/pkg/api/errors"
	"github.com/jordanlanch/campaignforge/pkg/audit"
	"github.com/jordanlanch/campaignforge/pkg/auth"
	"github.com/jordanlanch/campaignforge/pkg/middleware"
	"github.com/jordanlanch/campaignforge/pkg/models"
	"github.com/jordanlanch/campaignforge/pkg/user"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	users       *user.Service
	blacklist   *auth.TokenBlacklist
	auditLogger *audit.Service
	jwtHours    int
	validator   *validator.Validate
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(users *user.Service, blacklist *auth.TokenBlacklist, auditLogger *audit.Service, jwtHours int) *AuthHandler {
	return &AuthHandler{
		users:       users,
		blacklist:   blacklist,
		auditLogger: auditLogger,
		jwtHours:    jwtHours,
		validator:   validator.New(),
	}
}

// Register creates a new account and returns a token.
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return errors.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return errors.ValidationError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	result, err := h.users.Register(ctx, req.Email, req.Name, req.Password)
	if err != nil {
		return errors.Respond(c, err)
	}

	ip, ua := audit.GetRequestContext(c)
	go h.auditLogger.Log(context.Background(), audit.LogEntry{
		UserID:    &result.User.ID,
		Action:    audit.ActionUserRegister,
		IPAddress: ip,
		UserAgent: ua,
	})

	return c.JSON(http.StatusOK, toAuthResponse(result))
}

// Login verifies credentials and returns a token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return errors.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return errors.ValidationError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	result, err := h.users.Login(ctx, req.Email, req.Password)
	if err != nil {
		return errors.Respond(c, err)
	}

	ip, ua := audit.GetRequestContext(c)
	go h.auditLogger.Log(context.Background(), audit.LogEntry{
		UserID:    &result.User.ID,
		Action:    audit.ActionUserLogin,
		IPAddress: ip,
		UserAgent: ua,
	})

	return c.JSON(http.StatusOK, toAuthResponse(result))
}

// Logout revokes the current token for the remainder of its lifetime.
func (h *AuthHandler) Logout(c echo.Context) error {
	token, _ := c.Get(middleware.ContextKeyToken).(string)
	userID, _ := c.Get(middleware.ContextKeyUserID).(uuid.UUID)

	if token != "" && h.blacklist != nil {
		expiration := time.Duration(h.jwtHours) * time.Hour
		if err := h.blacklist.Add(c.Request().Context(), token, expiration); err != nil {
			return errors.Respond(c, err)
		}
	}

	ip, ua := audit.GetRequestContext(c)
	go h.auditLogger.Log(context.Background(), audit.LogEntry{
		UserID:    &userID,
		Action:    audit.ActionUserLogout,
		IPAddress: ip,
		UserAgent: ua,
	})

	return c.JSON(http.StatusOK, map[string]string{"message": "logged out"})
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c echo.Context) error {
	userID, ok := c.Get(middleware.ContextKeyUserID).(uuid.UUID)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized)
	}

	u, err := h.users.Get(c.Request().Context(), userID)
	if err != nil {
		return errors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, toUserResponse(u))
}

// SetBrandVoice updates the account-level brand voice used in generation.
func (h *AuthHandler) SetBrandVoice(c echo.Context) error {
	userID, ok := c.Get(middleware.ContextKeyUserID).(uuid.UUID)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized)
	}

	var req models.BrandVoiceRequest
	if err := c.Bind(&req); err != nil {
		return errors.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return errors.ValidationError(c, err)
	}

	u, err := h.users.SetBrandVoice(c.Request().Context(), userID, req.BrandVoice)
	if err != nil {
		return errors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, toUserResponse(u))
}

func toAuthResponse(result *user.AuthResult) models.AuthResponse {
	return models.AuthResponse{
		Token: result.Token,
		User:  toUserResponse(result.User),
	}
}

func toUserResponse(u *user.User) models.UserResponse {
	return models.UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		BrandVoice: u.BrandVoice,
	}
}
