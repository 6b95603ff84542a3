package test

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/polkiloo/restaurant/internal/domain/model"
	pkgAuth "github.com/polkiloo/restaurant/internal/pkg/auth"
)

// HasherStub provides deterministic hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

// Hash returns a predictable hash for the supplied password.
func (h HasherStub) Hash(password string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(password)
	}
	return "hash:" + password, nil
}

// Compare validates password against stored hash.
func (h HasherStub) Compare(hash string, password string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, password)
	}
	if hash != "hash:"+password {
		return errors.New("mismatch")
	}
	return nil
}

// StrategyStub issues "token:<role>:<id>" strings and parses them back.
type StrategyStub struct {
	IssueFn func(uuid.UUID, model.Role) (string, error)
	ParseFn func(string) (pkgAuth.Claims, error)
	NameVal string
}

// IssueToken returns deterministic tokens for tests.
func (s StrategyStub) IssueToken(userID uuid.UUID, role model.Role) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(userID, role)
	}
	return fmt.Sprintf("token:%s:%s", role, userID), nil
}

// ParseToken parses previously issued token strings.
func (s StrategyStub) ParseToken(token string) (pkgAuth.Claims, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	parts := strings.SplitN(token, ":", 3)
	if len(parts) != 3 || parts[0] != "token" {
		return pkgAuth.Claims{}, pkgAuth.ErrInvalidToken
	}
	id, err := uuid.Parse(parts[2])
	if err != nil {
		return pkgAuth.Claims{}, pkgAuth.ErrInvalidToken
	}
	return pkgAuth.Claims{UserID: id, Role: model.Role(parts[1])}, nil
}

// Name returns the strategy identifier used in tests.
func (s StrategyStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

// AuthorizerStub grants the configured role to every non-empty token.
type AuthorizerStub struct {
	Role        model.Role
	UserID      uuid.UUID
	Err         error
	AuthorizeFn func(string, ...model.Role) (pkgAuth.Claims, error)
}

// Authorize mimics the role gate of the auth use case.
func (s AuthorizerStub) Authorize(token string, roles ...model.Role) (pkgAuth.Claims, error) {
	if s.AuthorizeFn != nil {
		return s.AuthorizeFn(token, roles...)
	}
	if token == "" {
		return pkgAuth.Claims{}, pkgAuth.ErrMissingToken
	}
	if s.Err != nil {
		return pkgAuth.Claims{}, s.Err
	}
	claims := pkgAuth.Claims{UserID: s.UserID, Role: s.Role}
	if len(roles) > 0 && !claims.HasRole(roles...) {
		return pkgAuth.Claims{}, pkgAuth.ErrRoleNotAllowed
	}
	return claims, nil
}

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	AuthorizerStub
	SignUpFn func(context.Context, string, string) (*model.User, error)
	SignInFn func(context.Context, string, string) (*model.User, string, error)
}

// SignUp returns a waiter for successful registration scenarios.
func (s AuthFacadeStub) SignUp(ctx context.Context, mail, password string) (*model.User, error) {
	if s.SignUpFn != nil {
		return s.SignUpFn(ctx, mail, password)
	}
	return &model.User{ID: uuid.New(), Mail: mail, Role: model.RoleWaiter}, nil
}

// SignIn returns token for successful authentication scenarios.
func (s AuthFacadeStub) SignIn(ctx context.Context, mail, password string) (*model.User, string, error) {
	if s.SignInFn != nil {
		return s.SignInFn(ctx, mail, password)
	}
	return &model.User{ID: uuid.New(), Mail: mail, Role: model.RoleWaiter}, "token", nil
}

var _ pkgAuth.PasswordHasher = HasherStub{}
var _ pkgAuth.Strategy = StrategyStub{}
