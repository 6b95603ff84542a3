package repository

import (
	"context"

	"github.com/polkiloo/restaurant/internal/domain/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByMail(ctx context.Context, mail string) (*model.User, error)
}
