package dto

import (
	"github.com/shopspring/decimal"

	"github.com/polkiloo/restaurant/internal/domain/model"
)

// CategoryRequest is the payload of POST /categories.
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func NewCategoryResponse(c model.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID.String(), Name: c.Name, Description: c.Description}
}

// MenuRequest is the payload of POST /menus and PUT /menus/:id.
type MenuRequest struct {
	Name        string           `json:"name"`
	Price       *decimal.Decimal `json:"price"`
	CategoryID  string           `json:"categoryId"`
	Capacity    int              `json:"capacity"`
	IsAvailable *bool            `json:"isAvailable"`
	ImageURL    string           `json:"imageUrl"`
}

// Draft converts the request. A missing price is reported as not ok.
func (r MenuRequest) Draft() (model.MenuDraft, bool) {
	if r.Price == nil {
		return model.MenuDraft{}, false
	}
	return model.MenuDraft{
		Name:        r.Name,
		Price:       *r.Price,
		CategoryID:  r.CategoryID,
		Capacity:    r.Capacity,
		IsAvailable: r.IsAvailable,
		ImageURL:    r.ImageURL,
	}, true
}

// AvailabilityRequest is the payload of PATCH /menus/availability/:id.
type AvailabilityRequest struct {
	IsAvailable *bool `json:"isAvailable"`
}

type MenuResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  string          `json:"categoryId"`
	Capacity    int             `json:"capacity"`
	IsAvailable bool            `json:"isAvailable"`
	ImageURL    string          `json:"imageUrl,omitempty"`
}

func NewMenuResponse(m model.MenuItem) MenuResponse {
	return MenuResponse{
		ID:          m.ID.String(),
		Name:        m.Name,
		Price:       m.Price,
		CategoryID:  m.CategoryID.String(),
		Capacity:    m.Capacity,
		IsAvailable: m.IsAvailable,
		ImageURL:    m.ImageURL,
	}
}
