package auth

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const (
	// AccessCookieName is the cookie carrying the access token.
	AccessCookieName = "accessToken"
	// RefreshCookieName is the cookie carrying the refresh token.
	RefreshCookieName = "refreshToken"
)

// CookieManager writes and clears the session cookie pair. Both cookies are
// HTTP-only. Secure and SameSite differ between environments: production uses
// Secure + Lax, development uses SameSite=None so a client on another port
// can send credentials.
type CookieManager struct {
	secure     bool
	sameSite   http.SameSite
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewCookieManager builds a cookie manager for the given environment.
func NewCookieManager(production bool, accessTTL, refreshTTL time.Duration) *CookieManager {
	sameSite := http.SameSiteNoneMode
	if production {
		sameSite = http.SameSiteLaxMode
	}
	return &CookieManager{
		secure:     production,
		sameSite:   sameSite,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// SetSession sets both token cookies on the response.
func (m *CookieManager) SetSession(c echo.Context, pair TokenPair) {
	c.SetCookie(m.cookie(AccessCookieName, pair.Access, m.accessTTL))
	c.SetCookie(m.cookie(RefreshCookieName, pair.Refresh, m.refreshTTL))
}

// ClearSession expires both token cookies regardless of their current state.
func (m *CookieManager) ClearSession(c echo.Context) {
	c.SetCookie(m.cookie(AccessCookieName, "", -time.Hour))
	c.SetCookie(m.cookie(RefreshCookieName, "", -time.Hour))
}

func (m *CookieManager) cookie(name, value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: m.sameSite,
	}
}
