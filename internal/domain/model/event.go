package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderEventType names a lifecycle transition.
type OrderEventType string

const (
	OrderEventCreated         OrderEventType = "order.created"
	OrderEventItemAdded       OrderEventType = "order.item_added"
	OrderEventItemRemoved     OrderEventType = "order.item_removed"
	OrderEventQuantityUpdated OrderEventType = "order.item_quantity_updated"
	OrderEventCancelled       OrderEventType = "order.cancelled"
	OrderEventFinished        OrderEventType = "order.finished"
)

// OrderEvent is emitted after a committed order mutation.
type OrderEvent struct {
	Type       OrderEventType
	OrderID    uuid.UUID
	OrderType  OrderType
	MenuItemID uuid.UUID
	Quantity   int
	OccurredAt time.Time
}
