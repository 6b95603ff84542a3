package model

import (
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/restaurant/internal/domain/errors"
)

// OrderType tells how the customer receives the order.
type OrderType string

const (
	OrderTypeToGo     OrderType = "to_go"
	OrderTypeDelivery OrderType = "delivery"
	OrderTypeDineIn   OrderType = "dine_in"
)

// OrderTypes lists every accepted order type in reporting order.
var OrderTypes = []OrderType{OrderTypeToGo, OrderTypeDelivery, OrderTypeDineIn}

// Valid reports whether t is one of the known order types.
func (t OrderType) Valid() bool {
	switch t {
	case OrderTypeToGo, OrderTypeDelivery, OrderTypeDineIn:
		return true
	}
	return false
}

// OrderState is derived from the active/cancelled flags.
type OrderState string

const (
	OrderStateActive    OrderState = "ACTIVE"
	OrderStateCancelled OrderState = "CANCELLED"
	OrderStateFinished  OrderState = "FINISHED"
)

// LineItem references a menu item ordered in some quantity.
// MenuItem is only populated when the order was loaded with expansion and the
// reference still resolves.
type LineItem struct {
	MenuItemID uuid.UUID
	Quantity   int
	MenuItem   *MenuItem
}

// Order is a customer transaction taken by a waiter.
type Order struct {
	ID          uuid.UUID
	Type        OrderType
	LineItems   []LineItem
	IsActive    bool
	IsCancelled bool
	Date        time.Time
}

// NewOrder returns an active order without line items.
func NewOrder(id uuid.UUID, orderType OrderType, now time.Time) *Order {
	return &Order{
		ID:        id,
		Type:      orderType,
		LineItems: []LineItem{},
		IsActive:  true,
		Date:      now,
	}
}

// State maps the stored flags to a lifecycle state.
func (o *Order) State() OrderState {
	switch {
	case o.IsActive:
		return OrderStateActive
	case o.IsCancelled:
		return OrderStateCancelled
	default:
		return OrderStateFinished
	}
}

// AddLineItem appends an item to an active order.
func (o *Order) AddLineItem(menuItemID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return domainErrors.ErrInvalidQuantity
	}
	if !o.IsActive {
		return domainErrors.ErrNotFound
	}
	o.LineItems = append(o.LineItems, LineItem{MenuItemID: menuItemID, Quantity: quantity})
	return nil
}

// RemoveLineItem drops every line item referencing menuItemID. Removing an
// item the order does not contain is not an error.
func (o *Order) RemoveLineItem(menuItemID uuid.UUID) error {
	if !o.IsActive {
		return domainErrors.ErrNotFound
	}
	kept := make([]LineItem, 0, len(o.LineItems))
	for _, item := range o.LineItems {
		if item.MenuItemID != menuItemID {
			kept = append(kept, item)
		}
	}
	o.LineItems = kept
	return nil
}

// SetLineItemQuantity changes the quantity of the first line item
// referencing menuItemID.
func (o *Order) SetLineItemQuantity(menuItemID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return domainErrors.ErrInvalidQuantity
	}
	if !o.IsActive {
		return domainErrors.ErrNotFound
	}
	for i := range o.LineItems {
		if o.LineItems[i].MenuItemID == menuItemID {
			o.LineItems[i].Quantity = quantity
			return nil
		}
	}
	return domainErrors.ErrLineItemNotFound
}

// Cancel moves an active order to the cancelled terminal state.
func (o *Order) Cancel() error {
	if !o.IsActive {
		return domainErrors.ErrNotFound
	}
	o.IsActive = false
	o.IsCancelled = true
	return nil
}

// Finish moves an active order to the finished terminal state.
func (o *Order) Finish() error {
	if !o.IsActive {
		return domainErrors.ErrNotFound
	}
	o.IsActive = false
	return nil
}

// Clone returns a deep copy of the order.
func (o *Order) Clone() *Order {
	cp := *o
	cp.LineItems = make([]LineItem, len(o.LineItems))
	for i, item := range o.LineItems {
		cp.LineItems[i] = item
		if item.MenuItem != nil {
			menu := *item.MenuItem
			cp.LineItems[i].MenuItem = &menu
		}
	}
	return &cp
}
