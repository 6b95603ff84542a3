package app

import (
	"context"

	"github.com/polkiloo/restaurant/internal/domain/model"
	pkgAuth "github.com/polkiloo/restaurant/internal/pkg/auth"
	"github.com/polkiloo/restaurant/internal/usecase"
)

type RestaurantFacade struct {
	auth    *usecase.AuthUseCase
	orders  *usecase.OrderUseCase
	sales   *usecase.SalesUseCase
	catalog *usecase.CatalogUseCase
}

func NewRestaurantFacade(auth *usecase.AuthUseCase, orders *usecase.OrderUseCase, sales *usecase.SalesUseCase, catalog *usecase.CatalogUseCase) *RestaurantFacade {
	return &RestaurantFacade{auth: auth, orders: orders, sales: sales, catalog: catalog}
}

func (f *RestaurantFacade) SignUp(ctx context.Context, mail, password string) (*model.User, error) {
	return f.auth.SignUp(ctx, mail, password)
}

func (f *RestaurantFacade) SignIn(ctx context.Context, mail, password string) (*model.User, string, error) {
	return f.auth.SignIn(ctx, mail, password)
}

func (f *RestaurantFacade) Authorize(token string, roles ...model.Role) (pkgAuth.Claims, error) {
	return f.auth.Authorize(token, roles...)
}

// EnsureAdmin seeds the administrator account configured for the deployment.
func (f *RestaurantFacade) EnsureAdmin(ctx context.Context, mail, password string) (bool, error) {
	return f.auth.EnsureAdmin(ctx, mail, password)
}

func (f *RestaurantFacade) CreateOrder(ctx context.Context, orderType, idempotencyKey string) (*model.Order, error) {
	return f.orders.Create(ctx, orderType, idempotencyKey)
}

func (f *RestaurantFacade) AddLineItem(ctx context.Context, orderID, menuItemID string, quantity int) (*model.Order, error) {
	return f.orders.AddLineItem(ctx, orderID, menuItemID, quantity)
}

func (f *RestaurantFacade) RemoveLineItem(ctx context.Context, orderID, menuItemID string) (*model.Order, error) {
	return f.orders.RemoveLineItem(ctx, orderID, menuItemID)
}

func (f *RestaurantFacade) UpdateLineItemQuantity(ctx context.Context, orderID, menuItemID string, quantity int) (*model.Order, error) {
	return f.orders.UpdateLineItemQuantity(ctx, orderID, menuItemID, quantity)
}

func (f *RestaurantFacade) CancelOrder(ctx context.Context, orderID string) (*model.Order, error) {
	return f.orders.Cancel(ctx, orderID)
}

func (f *RestaurantFacade) FinishOrder(ctx context.Context, orderID string) (*model.Order, error) {
	return f.orders.Finish(ctx, orderID)
}

func (f *RestaurantFacade) Order(ctx context.Context, orderID string) (*model.Order, error) {
	return f.orders.GetByID(ctx, orderID)
}

func (f *RestaurantFacade) ActiveOrders(ctx context.Context) ([]model.Order, error) {
	return f.orders.ListActive(ctx)
}

func (f *RestaurantFacade) FinishedOrders(ctx context.Context) ([]model.Order, error) {
	return f.orders.ListFinished(ctx)
}

func (f *RestaurantFacade) DailySales(ctx context.Context, date string) (*model.SalesSummary, error) {
	return f.sales.Daily(ctx, date)
}

func (f *RestaurantFacade) MonthlySales(ctx context.Context, month string) (*model.SalesSummary, error) {
	return f.sales.Monthly(ctx, month)
}

func (f *RestaurantFacade) SalesOverview(ctx context.Context) (*model.SalesOverview, error) {
	return f.sales.Overview(ctx)
}

func (f *RestaurantFacade) Categories(ctx context.Context) ([]model.Category, error) {
	return f.catalog.ListCategories(ctx)
}

func (f *RestaurantFacade) CreateCategory(ctx context.Context, name, description string) (*model.Category, error) {
	return f.catalog.CreateCategory(ctx, name, description)
}

func (f *RestaurantFacade) Menus(ctx context.Context) ([]model.MenuItem, error) {
	return f.catalog.ListMenus(ctx)
}

func (f *RestaurantFacade) CreateMenu(ctx context.Context, draft model.MenuDraft) (*model.MenuItem, error) {
	return f.catalog.CreateMenu(ctx, draft)
}

func (f *RestaurantFacade) UpdateMenu(ctx context.Context, id string, draft model.MenuDraft) (*model.MenuItem, error) {
	return f.catalog.UpdateMenu(ctx, id, draft)
}

func (f *RestaurantFacade) SetMenuAvailability(ctx context.Context, id string, available *bool) (*model.MenuItem, error) {
	return f.catalog.SetMenuAvailability(ctx, id, available)
}

func (f *RestaurantFacade) DeleteMenu(ctx context.Context, id string) error {
	return f.catalog.DeleteMenu(ctx, id)
}
