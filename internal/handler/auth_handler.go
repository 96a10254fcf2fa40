package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"staffdesk/internal/auth"
	apperrors "staffdesk/internal/errors"
	"staffdesk/internal/model"
	"staffdesk/internal/service"
)

// AuthHandler handles session endpoints. Tokens travel only in HTTP-only
// cookies; response bodies never carry them.
type AuthHandler struct {
	authService service.AuthService
	cookies     *auth.CookieManager
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, cookies *auth.CookieManager) *AuthHandler {
	return &AuthHandler{authService: authService, cookies: cookies}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SessionUserResponse is the user projection returned by session endpoints.
type SessionUserResponse struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Email string     `json:"email"`
	Role  model.Role `json:"role,omitempty"`
}

// Register godoc
// @Summary Register a new user and open a session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} SessionUserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, pair, err := h.authService.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	h.cookies.SetSession(c, pair)
	return c.JSON(http.StatusCreated, SessionUserResponse{
		ID:    user.ID.String(),
		Name:  user.Name,
		Email: user.Email,
	})
}

// Login godoc
// @Summary Authenticate and open a session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} SessionUserResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, pair, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	h.cookies.SetSession(c, pair)
	return c.JSON(http.StatusOK, SessionUserResponse{
		ID:    user.ID.String(),
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	})
}

// Logout godoc
// @Summary Close the session
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]bool
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	// Server-side invalidation only happens for a valid refresh token, but
	// cookies are cleared no matter what was presented.
	if cookie, err := c.Cookie(auth.RefreshCookieName); err == nil && cookie.Value != "" {
		_ = h.authService.Logout(c.Request().Context(), cookie.Value)
	}

	h.cookies.ClearSession(c)
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

// Refresh godoc
// @Summary Rotate the session's token pair
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]bool
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/refresh [get]
func (h *AuthHandler) Refresh(c echo.Context) error {
	cookie, err := c.Cookie(auth.RefreshCookieName)
	if err != nil || cookie.Value == "" {
		return apperrors.ErrInvalidRefreshToken
	}

	pair, err := h.authService.Refresh(c.Request().Context(), cookie.Value)
	if err != nil {
		return err
	}

	h.cookies.SetSession(c, pair)
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

// Me godoc
// @Summary Return the authenticated user
// @Tags auth
// @Produce json
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return apperrors.ErrNotAuthenticated
	}
	return c.JSON(http.StatusOK, user)
}
