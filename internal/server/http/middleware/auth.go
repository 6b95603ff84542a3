package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/restaurant/internal/domain/model"
	pkgAuth "github.com/polkiloo/restaurant/internal/pkg/auth"
	"github.com/polkiloo/restaurant/internal/server/http/dto"
)

const (
	// ClaimsContextKey is a gin context key for the authenticated claims.
	ClaimsContextKey = "claims"
	authCookieName   = "restaurant_token"
)

// Authorizer validates a token against a set of allowed roles.
type Authorizer interface {
	Authorize(token string, roles ...model.Role) (pkgAuth.Claims, error)
}

// RequireRole rejects requests whose token does not carry one of roles.
func RequireRole(gate Authorizer, roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := gate.Authorize(extractToken(c), roles...)
		if err != nil {
			status, message := authFailure(err)
			c.AbortWithStatusJSON(status, dto.Fail(message))
			return
		}

		c.Set(ClaimsContextKey, claims)
		c.Next()
	}
}

func authFailure(err error) (int, string) {
	switch {
	case errors.Is(err, pkgAuth.ErrMissingToken),
		errors.Is(err, pkgAuth.ErrInvalidToken),
		errors.Is(err, pkgAuth.ErrTokenExpired):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, pkgAuth.ErrRoleNotAllowed):
		return http.StatusForbidden, err.Error()
	default:
		return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
	}
}

// CurrentClaims returns the claims stored by RequireRole.
func CurrentClaims(c *gin.Context) (pkgAuth.Claims, bool) {
	val, ok := c.Get(ClaimsContextKey)
	if !ok {
		return pkgAuth.Claims{}, false
	}
	claims, ok := val.(pkgAuth.Claims)
	return claims, ok
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}

	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie
	}
	return ""
}

// SetAuthCookie writes auth token cookie to response.
func SetAuthCookie(c *gin.Context, token string) {
	c.SetCookie(authCookieName, token, 0, "/", "", false, true)
	c.Header("Authorization", "Bearer "+token)
}
