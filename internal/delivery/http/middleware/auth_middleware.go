package middleware

import (
	"strings"

	"healthvault/internal/domain/entity"
	domainerrors "healthvault/internal/domain/errors"
	"healthvault/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CurrentUserKey is the echo context key the resolved user is stored under.
const CurrentUserKey = "currentUser"

// AuthMiddleware provides middleware for bearer token authentication.
type AuthMiddleware struct {
	identity usecase.IdentityUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(identity usecase.IdentityUsecase) *AuthMiddleware {
	return &AuthMiddleware{identity: identity}
}

// Authenticate validates the bearer token and loads the user it names onto
// the request context. Missing header, malformed scheme, bad token and
// deleted account all produce the same unauthorized error.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return errors.Wrap(domainerrors.ErrUnauthorized, "authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return errors.Wrap(domainerrors.ErrUnauthorized, "authorization header is not a bearer token")
		}

		user, err := m.identity.Resolve(c.Request().Context(), tokenString)
		if err != nil {
			return errors.WithStack(err)
		}

		c.Set(CurrentUserKey, user)

		return next(c)
	}
}

// CurrentUser extracts the authenticated user placed on the context by
// Authenticate. It fails when the middleware did not run.
func CurrentUser(c echo.Context) (*entity.User, error) {
	user, ok := c.Get(CurrentUserKey).(*entity.User)
	if !ok || user == nil {
		return nil, errors.Wrap(domainerrors.ErrUnauthorized, "no authenticated user on context")
	}

	return user, nil
}
