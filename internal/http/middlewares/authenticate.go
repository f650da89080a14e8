package middleware

import (
	"github.com/labstack/echo/v4"

	errs "task-planner.com/task-planner/internal/errors"
)

// Authenticator resolves a request to an authenticated user identity or
// rejects it. Credential verification lives entirely behind this boundary.
type Authenticator interface {
	Identify(c echo.Context) (string, error)
}

// HeaderAuthenticator trusts an upstream gateway to have verified the
// caller and to forward the identity in a header.
type HeaderAuthenticator struct {
	Header string
}

func (a HeaderAuthenticator) Identify(c echo.Context) (string, error) {
	userID := c.Request().Header.Get(a.Header)
	if userID == "" {
		return "", errs.ErrUnauthenticated
	}
	return userID, nil
}

// Authenticate rejects requests the authenticator cannot resolve and makes
// the identity available to handlers under "userid".
func Authenticate(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, err := auth.Identify(c)
			if err != nil {
				return c.JSON(errs.StatusCode(err), echo.Map{
					"status": "failure",
					"error":  err.Error(),
				})
			}

			c.Set("userid", userID)
			return next(c)
		}
	}
}
