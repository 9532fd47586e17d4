package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/salone-skillshub/skillshub/internal/api/metrics"
	"github.com/salone-skillshub/skillshub/internal/core/domain"
)

// SessionCookie carries the opaque session token.
const SessionCookie = "session_token"

const identityKey = "identity"

// SessionResolver maps a session token to an identity.
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (*domain.Identity, error)
}

// Session resolves the caller's session and injects the identity into the
// context. Requests without a valid session are rejected with 401.
func Session(resolver SessionResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, err := resolve(c, resolver)
			if err != nil {
				return err
			}
			if identity == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			SetIdentity(c, identity)
			return next(c)
		}
	}
}

// OptionalSession injects the identity when a valid session is present and
// lets anonymous requests through.
func OptionalSession(resolver SessionResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, err := resolve(c, resolver)
			if err != nil {
				return err
			}
			if identity != nil {
				SetIdentity(c, identity)
			}
			return next(c)
		}
	}
}

func resolve(c echo.Context, resolver SessionResolver) (*domain.Identity, error) {
	token := SessionToken(c)
	if token == "" {
		metrics.SessionLookupsTotal.WithLabelValues("miss").Inc()
		return nil, nil
	}
	identity, err := resolver.ResolveSession(c.Request().Context(), token)
	switch {
	case err != nil:
		metrics.SessionLookupsTotal.WithLabelValues("error").Inc()
		return nil, err
	case identity == nil:
		metrics.SessionLookupsTotal.WithLabelValues("miss").Inc()
	default:
		metrics.SessionLookupsTotal.WithLabelValues("hit").Inc()
	}
	return identity, nil
}

// SessionToken reads the token from the session cookie, falling back to an
// "Authorization: Bearer" header for non-browser clients.
func SessionToken(c echo.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	parts := strings.SplitN(c.Request().Header.Get(echo.HeaderAuthorization), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// SetIdentity stores the caller identity on the request context.
func SetIdentity(c echo.Context, identity *domain.Identity) {
	c.Set(identityKey, identity)
}

// IdentityFrom returns the identity injected by Session, or nil.
func IdentityFrom(c echo.Context) *domain.Identity {
	identity, _ := c.Get(identityKey).(*domain.Identity)
	return identity
}
