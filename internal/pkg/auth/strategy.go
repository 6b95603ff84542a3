package auth

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/polkiloo/restaurant/internal/domain/model"
)

var (
	ErrMissingToken   = errors.New("session has not been logged in or the token has not been entered")
	ErrInvalidToken   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("session expired")
	ErrRoleNotAllowed = errors.New("unauthorized role")
)

// Claims are the facts a token vouches for.
type Claims struct {
	UserID    uuid.UUID
	Role      model.Role
	ExpiresAt time.Time
}

// HasRole reports whether the claims carry one of roles.
func (c Claims) HasRole(roles ...model.Role) bool {
	for _, role := range roles {
		if c.Role == role {
			return true
		}
	}
	return false
}

type Strategy interface {
	IssueToken(userID uuid.UUID, role model.Role) (string, error)
	ParseToken(token string) (Claims, error)
	Name() string
}

type Options struct {
	TTL time.Duration
	Now func() time.Time
}
