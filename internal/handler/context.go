package handler

import (
	"github.com/labstack/echo/v4"

	"staffdesk/internal/model"
)

// CurrentUserKey is the echo context key under which the authenticate
// middleware stores the request's user. Session state is always request
// scoped; nothing ambient or global holds it.
const CurrentUserKey = "currentUser"

// CurrentUser returns the authenticated user attached to the request, if any.
func CurrentUser(c echo.Context) (*model.User, bool) {
	user, ok := c.Get(CurrentUserKey).(*model.User)
	return user, ok
}
