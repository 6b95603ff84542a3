package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category groups menu items.
type Category struct {
	ID          uuid.UUID
	Name        string
	Description string
}

// MenuItem is a product that can be ordered.
type MenuItem struct {
	ID          uuid.UUID
	Name        string
	Price       decimal.Decimal
	CategoryID  uuid.UUID
	Capacity    int
	IsAvailable bool
	ImageURL    string
}

// MenuDraft carries the writable fields of a menu item as received from a
// client, before validation.
type MenuDraft struct {
	Name        string
	Price       decimal.Decimal
	CategoryID  string
	Capacity    int
	IsAvailable *bool
	ImageURL    string
}
