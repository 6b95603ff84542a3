package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/restaurant/internal/domain/errors"
	"github.com/polkiloo/restaurant/internal/domain/model"
	"github.com/polkiloo/restaurant/internal/domain/repository"
)

// CatalogUseCase manages categories and menu items.
type CatalogUseCase struct {
	menus      repository.MenuRepository
	categories repository.CategoryRepository
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(menus repository.MenuRepository, categories repository.CategoryRepository) *CatalogUseCase {
	return &CatalogUseCase{menus: menus, categories: categories}
}

func (u *CatalogUseCase) ListCategories(ctx context.Context) ([]model.Category, error) {
	return u.categories.List(ctx)
}

// CreateCategory adds a category with a unique name.
func (u *CatalogUseCase) CreateCategory(ctx context.Context, name, description string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domainErrors.ErrMissingField
	}
	category := &model.Category{ID: uuid.New(), Name: name, Description: strings.TrimSpace(description)}
	if err := u.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (u *CatalogUseCase) ListMenus(ctx context.Context) ([]model.MenuItem, error) {
	return u.menus.List(ctx)
}

// CreateMenu adds a menu item. Items are available unless stated otherwise.
func (u *CatalogUseCase) CreateMenu(ctx context.Context, in model.MenuDraft) (*model.MenuItem, error) {
	item, err := menuFromInput(uuid.New(), in)
	if err != nil {
		return nil, err
	}
	if err := u.menus.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateMenu replaces the writable fields of a menu item.
func (u *CatalogUseCase) UpdateMenu(ctx context.Context, id string, in model.MenuDraft) (*model.MenuItem, error) {
	mid, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	item, err := menuFromInput(mid, in)
	if err != nil {
		return nil, err
	}
	if err := u.menus.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// SetMenuAvailability toggles whether a menu item can be ordered.
func (u *CatalogUseCase) SetMenuAvailability(ctx context.Context, id string, available *bool) (*model.MenuItem, error) {
	mid, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	if available == nil {
		return nil, domainErrors.ErrMissingField
	}
	return u.menus.SetAvailability(ctx, mid, *available)
}

func (u *CatalogUseCase) DeleteMenu(ctx context.Context, id string) error {
	mid, err := ParseID(id)
	if err != nil {
		return err
	}
	return u.menus.Delete(ctx, mid)
}

func menuFromInput(id uuid.UUID, in model.MenuDraft) (*model.MenuItem, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domainErrors.ErrMissingField
	}
	if in.Price.IsNegative() {
		return nil, domainErrors.ErrInvalidPrice
	}
	if in.Capacity < 0 {
		return nil, domainErrors.ErrInvalidCapacity
	}
	categoryID, err := ParseID(in.CategoryID)
	if err != nil {
		return nil, err
	}

	available := true
	if in.IsAvailable != nil {
		available = *in.IsAvailable
	}

	return &model.MenuItem{
		ID:          id,
		Name:        name,
		Price:       in.Price,
		CategoryID:  categoryID,
		Capacity:    in.Capacity,
		IsAvailable: available,
		ImageURL:    strings.TrimSpace(in.ImageURL),
	}, nil
}
