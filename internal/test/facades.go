package test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/polkiloo/restaurant/internal/domain/model"
)

// LineItemCall records the arguments of a line item operation.
type LineItemCall struct {
	OrderID    string
	MenuItemID string
	Quantity   int
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	CreateFn     func(context.Context, string, string) (*model.Order, error)
	LineItemFn   func(context.Context, LineItemCall) (*model.Order, error)
	TransitionFn func(context.Context, string) (*model.Order, error)
	OrderFn      func(context.Context, string) (*model.Order, error)
	ListFn       func(context.Context, model.OrderState) ([]model.Order, error)
}

// CreateOrder delegates to provided function or returns a new active order.
func (s OrderFacadeStub) CreateOrder(ctx context.Context, orderType, idempotencyKey string) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, orderType, idempotencyKey)
	}
	return model.NewOrder(uuid.New(), model.OrderType(orderType), time.Unix(0, 0)), nil
}

func (s OrderFacadeStub) AddLineItem(ctx context.Context, orderID, menuItemID string, quantity int) (*model.Order, error) {
	return s.lineItem(ctx, LineItemCall{orderID, menuItemID, quantity})
}

func (s OrderFacadeStub) RemoveLineItem(ctx context.Context, orderID, menuItemID string) (*model.Order, error) {
	return s.lineItem(ctx, LineItemCall{OrderID: orderID, MenuItemID: menuItemID})
}

func (s OrderFacadeStub) UpdateLineItemQuantity(ctx context.Context, orderID, menuItemID string, quantity int) (*model.Order, error) {
	return s.lineItem(ctx, LineItemCall{orderID, menuItemID, quantity})
}

func (s OrderFacadeStub) CancelOrder(ctx context.Context, orderID string) (*model.Order, error) {
	return s.transition(ctx, orderID)
}

func (s OrderFacadeStub) FinishOrder(ctx context.Context, orderID string) (*model.Order, error) {
	return s.transition(ctx, orderID)
}

// Order returns the configured order or an empty active one.
func (s OrderFacadeStub) Order(ctx context.Context, orderID string) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, orderID)
	}
	return model.NewOrder(uuid.New(), model.OrderTypeDineIn, time.Unix(0, 0)), nil
}

func (s OrderFacadeStub) ActiveOrders(ctx context.Context) ([]model.Order, error) {
	return s.list(ctx, model.OrderStateActive)
}

func (s OrderFacadeStub) FinishedOrders(ctx context.Context) ([]model.Order, error) {
	return s.list(ctx, model.OrderStateFinished)
}

func (s OrderFacadeStub) lineItem(ctx context.Context, call LineItemCall) (*model.Order, error) {
	if s.LineItemFn != nil {
		return s.LineItemFn(ctx, call)
	}
	return model.NewOrder(uuid.New(), model.OrderTypeDineIn, time.Unix(0, 0)), nil
}

func (s OrderFacadeStub) transition(ctx context.Context, orderID string) (*model.Order, error) {
	if s.TransitionFn != nil {
		return s.TransitionFn(ctx, orderID)
	}
	return &model.Order{ID: uuid.New(), Type: model.OrderTypeToGo}, nil
}

func (s OrderFacadeStub) list(ctx context.Context, state model.OrderState) ([]model.Order, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, state)
	}
	return []model.Order{}, nil
}

// SalesFacadeStub returns configured summaries.
type SalesFacadeStub struct {
	DailyFn    func(context.Context, string) (*model.SalesSummary, error)
	MonthlyFn  func(context.Context, string) (*model.SalesSummary, error)
	OverviewFn func(context.Context) (*model.SalesOverview, error)
}

func (s SalesFacadeStub) DailySales(ctx context.Context, date string) (*model.SalesSummary, error) {
	if s.DailyFn != nil {
		return s.DailyFn(ctx, date)
	}
	return &model.SalesSummary{}, nil
}

func (s SalesFacadeStub) MonthlySales(ctx context.Context, month string) (*model.SalesSummary, error) {
	if s.MonthlyFn != nil {
		return s.MonthlyFn(ctx, month)
	}
	return &model.SalesSummary{}, nil
}

func (s SalesFacadeStub) SalesOverview(ctx context.Context) (*model.SalesOverview, error) {
	if s.OverviewFn != nil {
		return s.OverviewFn(ctx)
	}
	return &model.SalesOverview{Daily: &model.SalesSummary{}, Monthly: &model.SalesSummary{}}, nil
}

// CatalogFacadeStub simulates category and menu management.
type CatalogFacadeStub struct {
	CategoriesFn     func(context.Context) ([]model.Category, error)
	CreateCategoryFn func(context.Context, string, string) (*model.Category, error)
	MenusFn          func(context.Context) ([]model.MenuItem, error)
	CreateMenuFn     func(context.Context, model.MenuDraft) (*model.MenuItem, error)
	UpdateMenuFn     func(context.Context, string, model.MenuDraft) (*model.MenuItem, error)
	AvailabilityFn   func(context.Context, string, *bool) (*model.MenuItem, error)
	DeleteMenuFn     func(context.Context, string) error
}

func (s CatalogFacadeStub) Categories(ctx context.Context) ([]model.Category, error) {
	if s.CategoriesFn != nil {
		return s.CategoriesFn(ctx)
	}
	return []model.Category{{ID: uuid.New(), Name: "drinks"}}, nil
}

func (s CatalogFacadeStub) CreateCategory(ctx context.Context, name, description string) (*model.Category, error) {
	if s.CreateCategoryFn != nil {
		return s.CreateCategoryFn(ctx, name, description)
	}
	return &model.Category{ID: uuid.New(), Name: name, Description: description}, nil
}

func (s CatalogFacadeStub) Menus(ctx context.Context) ([]model.MenuItem, error) {
	if s.MenusFn != nil {
		return s.MenusFn(ctx)
	}
	return []model.MenuItem{{ID: uuid.New(), Name: "soup", Price: decimal.NewFromInt(5), IsAvailable: true}}, nil
}

func (s CatalogFacadeStub) CreateMenu(ctx context.Context, in model.MenuDraft) (*model.MenuItem, error) {
	if s.CreateMenuFn != nil {
		return s.CreateMenuFn(ctx, in)
	}
	return &model.MenuItem{ID: uuid.New(), Name: in.Name, Price: in.Price, IsAvailable: true}, nil
}

func (s CatalogFacadeStub) UpdateMenu(ctx context.Context, id string, in model.MenuDraft) (*model.MenuItem, error) {
	if s.UpdateMenuFn != nil {
		return s.UpdateMenuFn(ctx, id, in)
	}
	return &model.MenuItem{Name: in.Name, Price: in.Price}, nil
}

func (s CatalogFacadeStub) SetMenuAvailability(ctx context.Context, id string, available *bool) (*model.MenuItem, error) {
	if s.AvailabilityFn != nil {
		return s.AvailabilityFn(ctx, id, available)
	}
	return &model.MenuItem{IsAvailable: available != nil && *available}, nil
}

func (s CatalogFacadeStub) DeleteMenu(ctx context.Context, id string) error {
	if s.DeleteMenuFn != nil {
		return s.DeleteMenuFn(ctx, id)
	}
	return nil
}

// RestaurantFacadeStub aggregates facade dependencies for HTTP layer tests.
type RestaurantFacadeStub struct {
	AuthFacadeStub
	OrderFacadeStub
	SalesFacadeStub
	CatalogFacadeStub
}
