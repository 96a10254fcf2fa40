package router

import (
	"errors"
	"time"

	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"staffdesk/internal/auth"
	apperrors "staffdesk/internal/errors"
	"staffdesk/internal/handler"
	"staffdesk/internal/model"
	"staffdesk/internal/repository"
)

// Authenticate verifies the access-token cookie and attaches the request's
// user (without its password hash) to the context. A missing cookie, failed
// verification, or unknown subject all surface as 401.
func Authenticate(jwtService *auth.JWTService, users repository.UserRepository) []echo.MiddlewareFunc {
	verify := echojwt.WithConfig(echojwt.Config{
		TokenLookup: "cookie:" + auth.AccessCookieName,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return jwtService.VerifyAccess(token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			var extractionErr *echojwt.TokenExtractionError
			if errors.As(err, &extractionErr) {
				return apperrors.ErrNotAuthenticated
			}
			return apperrors.ErrInvalidToken
		},
	})

	loadUser := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get("user").(*auth.Claims)
			if !ok {
				return apperrors.ErrNotAuthenticated
			}
			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				return apperrors.ErrInvalidToken
			}
			user, err := users.FindByIDProjected(c.Request().Context(), userID)
			if err != nil {
				return apperrors.ErrUserNotFound
			}
			c.Set(handler.CurrentUserKey, user)
			return next(c)
		}
	}

	return []echo.MiddlewareFunc{verify, loadUser}
}

// Authorize gates a route on membership in the closed role set. It assumes
// Authenticate already ran.
func Authorize(allowed ...model.Role) echo.MiddlewareFunc {
	allowedSet := make(map[model.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := handler.CurrentUser(c)
			if !ok {
				return apperrors.ErrNotAuthenticated
			}
			if _, ok := allowedSet[user.Role]; !ok {
				return apperrors.ErrForbidden
			}
			return next(c)
		}
	}
}

// RequestLogger tags each request with an id and logs method, path, status,
// and latency through zerolog.
func RequestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		requestID := uuid.New().String()

		ctx := c.Request().Context()
		logger := log.With().Str("request_id", requestID).Logger()
		c.SetRequest(c.Request().WithContext(logger.WithContext(ctx)))

		err := next(c)

		req := c.Request()
		res := c.Response()
		log.Ctx(c.Request().Context()).Info().
			Str("method", req.Method).
			Str("endpoint", req.URL.Path).
			Int("status", res.Status).
			Int64("latency", time.Since(start).Milliseconds()).
			Msg("Request processed")

		return err
	}
}
