package handlers

import (
	"context"

	"github.com/polkiloo/restaurant/internal/domain/model"
	"github.com/polkiloo/restaurant/internal/server/http/middleware"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	middleware.Authorizer
	SignUp(ctx context.Context, mail, password string) (*model.User, error)
	SignIn(ctx context.Context, mail, password string) (*model.User, string, error)
}

// OrderFacade encapsulates order lifecycle operations exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, orderType, idempotencyKey string) (*model.Order, error)
	AddLineItem(ctx context.Context, orderID, menuItemID string, quantity int) (*model.Order, error)
	RemoveLineItem(ctx context.Context, orderID, menuItemID string) (*model.Order, error)
	UpdateLineItemQuantity(ctx context.Context, orderID, menuItemID string, quantity int) (*model.Order, error)
	CancelOrder(ctx context.Context, orderID string) (*model.Order, error)
	FinishOrder(ctx context.Context, orderID string) (*model.Order, error)
	Order(ctx context.Context, orderID string) (*model.Order, error)
	ActiveOrders(ctx context.Context) ([]model.Order, error)
	FinishedOrders(ctx context.Context) ([]model.Order, error)
}

// SalesFacade provides sales reports.
type SalesFacade interface {
	DailySales(ctx context.Context, date string) (*model.SalesSummary, error)
	MonthlySales(ctx context.Context, month string) (*model.SalesSummary, error)
	SalesOverview(ctx context.Context) (*model.SalesOverview, error)
}

// CatalogFacade manages categories and menu items.
type CatalogFacade interface {
	Categories(ctx context.Context) ([]model.Category, error)
	CreateCategory(ctx context.Context, name, description string) (*model.Category, error)
	Menus(ctx context.Context) ([]model.MenuItem, error)
	CreateMenu(ctx context.Context, draft model.MenuDraft) (*model.MenuItem, error)
	UpdateMenu(ctx context.Context, id string, draft model.MenuDraft) (*model.MenuItem, error)
	SetMenuAvailability(ctx context.Context, id string, available *bool) (*model.MenuItem, error)
	DeleteMenu(ctx context.Context, id string) error
}

// RestaurantFacade aggregates the full set of operations used across handlers.
type RestaurantFacade interface {
	AuthFacade
	OrderFacade
	SalesFacade
	CatalogFacade
}

// HealthChecker reports whether a backing service is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
