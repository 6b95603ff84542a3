package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/polkiloo/restaurant/internal/domain/model"
)

// MenuRepository persists menu items.
type MenuRepository interface {
	Create(ctx context.Context, item *model.MenuItem) error
	List(ctx context.Context) ([]model.MenuItem, error)
	Update(ctx context.Context, item *model.MenuItem) error
	SetAvailability(ctx context.Context, id uuid.UUID, available bool) (*model.MenuItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CategoryRepository persists menu categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) error
	List(ctx context.Context) ([]model.Category, error)
}
