package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/restaurant/internal/domain/errors"
	"github.com/polkiloo/restaurant/internal/domain/model"
	"github.com/polkiloo/restaurant/internal/domain/repository"
)

// EventSink accepts order events after a mutation has been committed.
type EventSink interface {
	Enqueue(event model.OrderEvent) bool
}

// OrderUseCase drives the order lifecycle. Every mutation is delegated to the
// repository as a conditional update guarded by the active state.
type OrderUseCase struct {
	orders      repository.OrderRepository
	idempotency repository.IdempotencyStore
	events      EventSink
	logger      *slog.Logger
	now         func() time.Time
	newID       func() uuid.UUID
}

// NewOrderUseCase constructs OrderUseCase. idempotency and events may be nil.
func NewOrderUseCase(orders repository.OrderRepository, idempotency repository.IdempotencyStore, events EventSink, logger *slog.Logger) *OrderUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &OrderUseCase{
		orders:      orders,
		idempotency: idempotency,
		events:      events,
		logger:      logger,
		now:         time.Now,
		newID:       uuid.New,
	}
}

// Create opens a new active order. A non-empty idempotencyKey that was
// already used yields ErrDuplicateRequest.
func (u *OrderUseCase) Create(ctx context.Context, orderType string, idempotencyKey string) (*model.Order, error) {
	typ, err := ParseOrderType(orderType)
	if err != nil {
		return nil, err
	}

	reserved := false
	if idempotencyKey != "" && u.idempotency != nil {
		ok, err := u.idempotency.Reserve(ctx, idempotencyKey)
		if err != nil {
			return nil, fmt.Errorf("reserve idempotency key: %w", err)
		}
		if !ok {
			return nil, domainErrors.ErrDuplicateRequest
		}
		reserved = true
	}

	order := model.NewOrder(u.newID(), typ, u.now())
	if err := u.orders.Create(ctx, order); err != nil {
		if reserved {
			if releaseErr := u.idempotency.Release(ctx, idempotencyKey); releaseErr != nil {
				u.logger.Warn("release idempotency key", slog.String("key", idempotencyKey), slog.Any("error", releaseErr))
			}
		}
		return nil, err
	}

	u.emit(model.OrderEvent{Type: model.OrderEventCreated, OrderID: order.ID, OrderType: order.Type})
	return order, nil
}

// AddLineItem appends a menu item to an active order.
func (u *OrderUseCase) AddLineItem(ctx context.Context, orderID, menuItemID string, quantity int) (*model.Order, error) {
	oid, mid, err := parseLineItemRef(orderID, menuItemID)
	if err != nil {
		return nil, err
	}
	if err := validQuantity(quantity); err != nil {
		return nil, err
	}

	order, err := u.orders.UpdateIf(ctx, oid, model.OrderStateActive, func(o *model.Order) error {
		return o.AddLineItem(mid, quantity)
	})
	if err != nil {
		return nil, err
	}

	u.emit(model.OrderEvent{Type: model.OrderEventItemAdded, OrderID: order.ID, OrderType: order.Type, MenuItemID: mid, Quantity: quantity})
	return order, nil
}

// RemoveLineItem drops every line item of the menu item from an active order.
func (u *OrderUseCase) RemoveLineItem(ctx context.Context, orderID, menuItemID string) (*model.Order, error) {
	oid, mid, err := parseLineItemRef(orderID, menuItemID)
	if err != nil {
		return nil, err
	}

	order, err := u.orders.UpdateIf(ctx, oid, model.OrderStateActive, func(o *model.Order) error {
		return o.RemoveLineItem(mid)
	})
	if err != nil {
		return nil, err
	}

	u.emit(model.OrderEvent{Type: model.OrderEventItemRemoved, OrderID: order.ID, OrderType: order.Type, MenuItemID: mid})
	return order, nil
}

// UpdateLineItemQuantity changes the quantity of a menu item already in an
// active order.
func (u *OrderUseCase) UpdateLineItemQuantity(ctx context.Context, orderID, menuItemID string, quantity int) (*model.Order, error) {
	oid, mid, err := parseLineItemRef(orderID, menuItemID)
	if err != nil {
		return nil, err
	}
	if err := validQuantity(quantity); err != nil {
		return nil, err
	}

	order, err := u.orders.UpdateIf(ctx, oid, model.OrderStateActive, func(o *model.Order) error {
		return o.SetLineItemQuantity(mid, quantity)
	})
	if err != nil {
		return nil, err
	}

	u.emit(model.OrderEvent{Type: model.OrderEventQuantityUpdated, OrderID: order.ID, OrderType: order.Type, MenuItemID: mid, Quantity: quantity})
	return order, nil
}

// Cancel terminates an active order as cancelled.
func (u *OrderUseCase) Cancel(ctx context.Context, orderID string) (*model.Order, error) {
	return u.terminate(ctx, orderID, model.OrderEventCancelled, (*model.Order).Cancel)
}

// Finish terminates an active order as served.
func (u *OrderUseCase) Finish(ctx context.Context, orderID string) (*model.Order, error) {
	return u.terminate(ctx, orderID, model.OrderEventFinished, (*model.Order).Finish)
}

func (u *OrderUseCase) terminate(ctx context.Context, orderID string, event model.OrderEventType, transition func(*model.Order) error) (*model.Order, error) {
	oid, err := ParseID(orderID)
	if err != nil {
		return nil, err
	}

	order, err := u.orders.UpdateIf(ctx, oid, model.OrderStateActive, func(o *model.Order) error {
		return transition(o)
	})
	if err != nil {
		return nil, err
	}

	u.emit(model.OrderEvent{Type: event, OrderID: order.ID, OrderType: order.Type})
	return order, nil
}

// GetByID returns an active order with its menu items resolved.
func (u *OrderUseCase) GetByID(ctx context.Context, orderID string) (*model.Order, error) {
	oid, err := ParseID(orderID)
	if err != nil {
		return nil, err
	}

	order, err := u.orders.FindByID(ctx, oid, true)
	if err != nil {
		return nil, err
	}
	if !order.IsActive {
		return nil, domainErrors.ErrNotFound
	}
	return order, nil
}

// ListActive returns every order still being served.
func (u *OrderUseCase) ListActive(ctx context.Context) ([]model.Order, error) {
	return u.orders.FindMany(ctx, repository.OrderFilter{States: []model.OrderState{model.OrderStateActive}})
}

// ListFinished returns every order finished without cancellation.
func (u *OrderUseCase) ListFinished(ctx context.Context) ([]model.Order, error) {
	return u.orders.FindMany(ctx, repository.OrderFilter{States: []model.OrderState{model.OrderStateFinished}})
}

func (u *OrderUseCase) emit(event model.OrderEvent) {
	if u.events == nil {
		return
	}
	event.OccurredAt = u.now()
	if !u.events.Enqueue(event) {
		u.logger.Warn("order event dropped", slog.String("type", string(event.Type)), slog.String("order_id", event.OrderID.String()))
	}
}

func parseLineItemRef(orderID, menuItemID string) (uuid.UUID, uuid.UUID, error) {
	oid, err := ParseID(orderID)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	mid, err := ParseID(menuItemID)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return oid, mid, nil
}
