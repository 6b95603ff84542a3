package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/restaurant/internal/domain/errors"
	"github.com/polkiloo/restaurant/internal/domain/model"
	"github.com/polkiloo/restaurant/internal/domain/repository"
	pkgAuth "github.com/polkiloo/restaurant/internal/pkg/auth"
)

// AuthUseCase handles staff accounts, token issuance and role checks.
type AuthUseCase struct {
	users  repository.UserRepository
	hasher pkgAuth.PasswordHasher
	tokens pkgAuth.Strategy
	now    func() time.Time
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher, tokens: strategy, now: time.Now}
}

// SignUp registers a waiter account.
func (u *AuthUseCase) SignUp(ctx context.Context, mail, password string) (*model.User, error) {
	return u.register(ctx, mail, password, model.RoleWaiter)
}

// SignIn checks credentials and returns a signed token.
func (u *AuthUseCase) SignIn(ctx context.Context, mail, password string) (*model.User, string, error) {
	mail = normalizeMail(mail)
	if mail == "" || password == "" {
		return nil, "", domainErrors.ErrMissingField
	}

	usr, err := u.users.GetByMail(ctx, mail)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(usr.ID, usr.Role)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// Authorize validates token and requires one of roles. No roles means any
// signed-in user.
func (u *AuthUseCase) Authorize(token string, roles ...model.Role) (pkgAuth.Claims, error) {
	if token == "" {
		return pkgAuth.Claims{}, pkgAuth.ErrMissingToken
	}

	claims, err := u.tokens.ParseToken(token)
	if err != nil {
		return pkgAuth.Claims{}, err
	}

	if len(roles) > 0 && !claims.HasRole(roles...) {
		return pkgAuth.Claims{}, pkgAuth.ErrRoleNotAllowed
	}

	return claims, nil
}

// EnsureAdmin creates the administrator account unless the mail is taken.
// It reports whether an account was created.
func (u *AuthUseCase) EnsureAdmin(ctx context.Context, mail, password string) (bool, error) {
	if strings.TrimSpace(mail) == "" {
		return false, nil
	}

	_, err := u.register(ctx, mail, password, model.RoleAdministrator)
	if errors.Is(err, domainErrors.ErrAlreadyExists) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (u *AuthUseCase) register(ctx context.Context, mail, password string, role model.Role) (*model.User, error) {
	mail = normalizeMail(mail)
	if mail == "" || password == "" {
		return nil, domainErrors.ErrMissingField
	}
	if !validMail(mail) {
		return nil, domainErrors.ErrInvalidEmail
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	usr := &model.User{
		ID:           uuid.New(),
		Mail:         mail,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    u.now(),
	}
	if err := u.users.Create(ctx, usr); err != nil {
		return nil, err
	}

	return usr, nil
}

func normalizeMail(mail string) string {
	return strings.ToLower(strings.TrimSpace(mail))
}
