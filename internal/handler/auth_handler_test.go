package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"staffdesk/internal/auth"
	apperrors "staffdesk/internal/errors"
	"staffdesk/internal/handler"
	"staffdesk/internal/model"
	"staffdesk/internal/router"
)

// stubAuthService returns canned results so the handler's cookie behavior
// can be exercised without a database.
type stubAuthService struct {
	user        *model.User
	pair        auth.TokenPair
	err         error
	refreshPair auth.TokenPair
	refreshErr  error
	loggedOut   []string
}

func (s *stubAuthService) Register(ctx context.Context, name, email, password string) (*model.User, auth.TokenPair, error) {
	return s.user, s.pair, s.err
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*model.User, auth.TokenPair, error) {
	return s.user, s.pair, s.err
}

func (s *stubAuthService) Refresh(ctx context.Context, refreshToken string) (auth.TokenPair, error) {
	return s.refreshPair, s.refreshErr
}

func (s *stubAuthService) Logout(ctx context.Context, refreshToken string) error {
	s.loggedOut = append(s.loggedOut, refreshToken)
	return nil
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = router.HTTPErrorHandler
	e.Validator = router.NewCustomValidator()
	return e
}

func sessionCookies(rec *httptest.ResponseRecorder) map[string]*http.Cookie {
	cookies := map[string]*http.Cookie{}
	res := http.Response{Header: rec.Header()}
	for _, c := range res.Cookies() {
		cookies[c.Name] = c
	}
	return cookies
}

func TestAuthHandler_LoginSetsSessionCookies(t *testing.T) {
	svc := &stubAuthService{
		user: &model.User{ID: uuid.New(), Name: "Jane", Email: "jane@x.com", Role: model.RoleHR},
		pair: auth.TokenPair{Access: "access-token", Refresh: "refresh-token"},
	}
	cookies := auth.NewCookieManager(false, 15*time.Minute, 7*24*time.Hour)
	h := handler.NewAuthHandler(svc, cookies)

	e := newTestEcho()
	e.POST("/api/auth/login", h.Login)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"jane@x.com","password":"password123"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"role":"HR"`)

	set := sessionCookies(rec)
	access, ok := set[auth.AccessCookieName]
	if assert.True(t, ok, "access cookie set") {
		assert.Equal(t, "access-token", access.Value)
		assert.True(t, access.HttpOnly)
		assert.False(t, access.Secure, "dev cookies are not Secure")
	}
	refresh, ok := set[auth.RefreshCookieName]
	if assert.True(t, ok, "refresh cookie set") {
		assert.Equal(t, "refresh-token", refresh.Value)
		assert.True(t, refresh.HttpOnly)
	}
}

func TestAuthHandler_LoginFailure(t *testing.T) {
	svc := &stubAuthService{err: apperrors.ErrInvalidCredentials}
	cookies := auth.NewCookieManager(false, 15*time.Minute, 7*24*time.Hour)
	h := handler.NewAuthHandler(svc, cookies)

	e := newTestEcho()
	e.POST("/api/auth/login", h.Login)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"jane@x.com","password":"wrong"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), `"message":"Invalid credentials"`)
	assert.Empty(t, sessionCookies(rec), "no cookies on failed login")
}

func TestAuthHandler_LogoutAlwaysClearsCookies(t *testing.T) {
	svc := &stubAuthService{}
	cookies := auth.NewCookieManager(false, 15*time.Minute, 7*24*time.Hour)
	h := handler.NewAuthHandler(svc, cookies)

	e := newTestEcho()
	e.POST("/api/auth/logout", h.Logout)

	t.Run("without a refresh cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"ok":true`)

		set := sessionCookies(rec)
		for _, name := range []string{auth.AccessCookieName, auth.RefreshCookieName} {
			if c, ok := set[name]; assert.True(t, ok, name) {
				assert.Empty(t, c.Value)
			}
		}
	})

	t.Run("with a refresh cookie it also invalidates server-side", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
		req.AddCookie(&http.Cookie{Name: auth.RefreshCookieName, Value: "some-refresh-token"})
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, svc.loggedOut, "some-refresh-token")
	})
}

func TestAuthHandler_RefreshWithoutCookie(t *testing.T) {
	svc := &stubAuthService{}
	cookies := auth.NewCookieManager(false, 15*time.Minute, 7*24*time.Hour)
	h := handler.NewAuthHandler(svc, cookies)

	e := newTestEcho()
	e.GET("/api/auth/refresh", h.Refresh)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/refresh", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), `"message":"Invalid refresh token"`)
}

func TestAuthHandler_RefreshRotatesCookies(t *testing.T) {
	svc := &stubAuthService{
		refreshPair: auth.TokenPair{Access: "new-access", Refresh: "new-refresh"},
	}
	cookies := auth.NewCookieManager(false, 15*time.Minute, 7*24*time.Hour)
	h := handler.NewAuthHandler(svc, cookies)

	e := newTestEcho()
	e.GET("/api/auth/refresh", h.Refresh)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: auth.RefreshCookieName, Value: "old-refresh"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	set := sessionCookies(rec)
	if c, ok := set[auth.AccessCookieName]; assert.True(t, ok) {
		assert.Equal(t, "new-access", c.Value)
	}
	if c, ok := set[auth.RefreshCookieName]; assert.True(t, ok) {
		assert.Equal(t, "new-refresh", c.Value)
	}
}
