package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/polkiloo/restaurant/internal/domain/model"
)

// OrderFilter narrows FindMany. Zero From/To leave the date unbounded, an
// empty States matches every state.
type OrderFilter struct {
	States []model.OrderState
	From   time.Time
	To     time.Time
	Expand bool
}

// OrderMutation changes an order loaded under lock. Returning an error aborts
// the update.
type OrderMutation func(order *model.Order) error

// OrderRepository persists orders and their line items.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	FindByID(ctx context.Context, id uuid.UUID, expand bool) (*model.Order, error)
	FindMany(ctx context.Context, filter OrderFilter) ([]model.Order, error)
	// UpdateIf applies mutate atomically, only while the stored order is in
	// state. ErrNotFound is returned when the order is missing or the state
	// does not hold.
	UpdateIf(ctx context.Context, id uuid.UUID, state model.OrderState, mutate OrderMutation) (*model.Order, error)
}
