package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/restaurant/internal/domain/errors"
	"github.com/polkiloo/restaurant/internal/domain/model"
	"github.com/polkiloo/restaurant/internal/server/http/dto"
	testhelpers "github.com/polkiloo/restaurant/internal/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(t *testing.T, method, route, target string, handler gin.HandlerFunc, body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, route, handler)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder, data any) dto.Response {
	t.Helper()
	var raw struct {
		State   bool            `json:"state"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
		t.Fatalf("invalid envelope %q: %v", w.Body.String(), err)
	}
	if data != nil {
		if err := json.Unmarshal(raw.Data, data); err != nil {
			t.Fatalf("invalid data %q: %v", raw.Data, err)
		}
	}
	return dto.Response{State: raw.State, Message: raw.Message}
}

func TestErrorStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domainErrors.ErrMissingField, http.StatusBadRequest},
		{domainErrors.ErrInvalidQuantity, http.StatusBadRequest},
		{domainErrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{domainErrors.ErrNotFound, http.StatusNotFound},
		{domainErrors.ErrLineItemNotFound, http.StatusNotFound},
		{domainErrors.ErrAlreadyExists, http.StatusConflict},
		{domainErrors.ErrDuplicateRequest, http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := errorStatus(tc.err); got != tc.want {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.want, got)
		}
	}
}

func TestAuthHandlerSignUp(t *testing.T) {
	mail := testhelpers.RandomASCIIString(7, 14) + "@restaurant.com"
	password := testhelpers.RandomASCIIString(16, 32)
	body, _ := json.Marshal(dto.AuthRequest{Mail: mail, Password: password})

	handler := NewAuthHandler(testhelpers.AuthFacadeStub{})
	w := performRequest(t, http.MethodPost, "/signup", "/signup", handler.SignUp, body, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	var user dto.UserResponse
	if env := decodeEnvelope(t, w, &user); !env.State || user.Mail != mail || user.Role != "waiter" {
		t.Fatalf("unexpected response: %+v %+v", env, user)
	}

	w = performRequest(t, http.MethodPost, "/signup", "/signup", handler.SignUp, []byte(`{`), nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", w.Code)
	}

	handler = NewAuthHandler(testhelpers.AuthFacadeStub{SignUpFn: func(context.Context, string, string) (*model.User, error) {
		return nil, domainErrors.ErrAlreadyExists
	}})
	w = performRequest(t, http.MethodPost, "/signup", "/signup", handler.SignUp, []byte(`{"mail":"a@b.io","password":"secret"}`), nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}

	handler = NewAuthHandler(testhelpers.AuthFacadeStub{SignUpFn: func(context.Context, string, string) (*model.User, error) {
		return nil, domainErrors.ErrInvalidEmail
	}})
	w = performRequest(t, http.MethodPost, "/signup", "/signup", handler.SignUp, []byte(`{"mail":"nope","password":"secret"}`), nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandlerSignIn(t *testing.T) {
	handler := NewAuthHandler(testhelpers.AuthFacadeStub{})
	w := performRequest(t, http.MethodPost, "/signin", "/signin", handler.SignIn, []byte(`{"mail":"a@b.io","password":"secret"}`), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := w.Header().Get("Authorization"); got != "Bearer token" {
		t.Fatalf("expected auth header, got %q", got)
	}
	var data dto.SignInResponse
	if env := decodeEnvelope(t, w, &data); !env.State || data.Token != "token" {
		t.Fatalf("unexpected response: %+v %+v", env, data)
	}

	handler = NewAuthHandler(testhelpers.AuthFacadeStub{SignInFn: func(context.Context, string, string) (*model.User, string, error) {
		return nil, "", domainErrors.ErrInvalidCredentials
	}})
	w = performRequest(t, http.MethodPost, "/signin", "/signin", handler.SignIn, []byte(`{"mail":"a@b.io","password":"bad"}`), nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	handler = NewAuthHandler(testhelpers.AuthFacadeStub{SignInFn: func(context.Context, string, string) (*model.User, string, error) {
		return nil, "", errors.New("db down")
	}})
	w = performRequest(t, http.MethodPost, "/signin", "/signin", handler.SignIn, []byte(`{"mail":"a@b.io","password":"bad"}`), nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if env := decodeEnvelope(t, w, nil); env.Message != "Internal Server Error" {
		t.Fatalf("expected generic message, got %q", env.Message)
	}

	w = performRequest(t, http.MethodPost, "/signin", "/signin", handler.SignIn, []byte(`[]`), nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestOrderHandlerCreate(t *testing.T) {
	var gotType, gotKey string
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{CreateFn: func(_ context.Context, orderType, key string) (*model.Order, error) {
		gotType, gotKey = orderType, key
		return model.NewOrder(uuid.New(), model.OrderTypeToGo, time.Now()), nil
	}})

	w := performRequest(t, http.MethodPost, "/orders", "/orders", handler.Create, []byte(`{"order_type":"to_go"}`), map[string]string{IdempotencyHeader: "key-1"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	if gotType != "to_go" || gotKey != "key-1" {
		t.Fatalf("unexpected arguments: %q %q", gotType, gotKey)
	}
	var order dto.OrderResponse
	decodeEnvelope(t, w, &order)
	if order.State != "ACTIVE" || !order.IsActive || order.LineItems == nil {
		t.Fatalf("unexpected order: %+v", order)
	}

	handler = NewOrderHandler(testhelpers.OrderFacadeStub{CreateFn: func(context.Context, string, string) (*model.Order, error) {
		return nil, domainErrors.ErrInvalidOrderType
	}})
	w = performRequest(t, http.MethodPost, "/orders", "/orders", handler.Create, []byte(`{"order_type":"takeaway"}`), nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	handler = NewOrderHandler(testhelpers.OrderFacadeStub{CreateFn: func(context.Context, string, string) (*model.Order, error) {
		return nil, domainErrors.ErrDuplicateRequest
	}})
	w = performRequest(t, http.MethodPost, "/orders", "/orders", handler.Create, []byte(`{"order_type":"to_go"}`), nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}

	w = performRequest(t, http.MethodPost, "/orders", "/orders", handler.Create, []byte(`nope`), nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", w.Code)
	}
}

func TestOrderHandlerLineItems(t *testing.T) {
	var calls []testhelpers.LineItemCall
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{LineItemFn: func(_ context.Context, call testhelpers.LineItemCall) (*model.Order, error) {
		calls = append(calls, call)
		return model.NewOrder(uuid.New(), model.OrderTypeDineIn, time.Now()), nil
	}})

	body := []byte(`{"orderId":"o1","menuId":"m1","quantity":3}`)
	if w := performRequest(t, http.MethodPatch, "/orders/add-product", "/orders/add-product", handler.AddProduct, body, nil); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w := performRequest(t, http.MethodPatch, "/orders/update-quantity", "/orders/update-quantity", handler.UpdateQuantity, body, nil); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w := performRequest(t, http.MethodPatch, "/orders/remove-product", "/orders/remove-product", handler.RemoveProduct, []byte(`{"orderId":"o1","menuId":"m1"}`), nil); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if len(calls) != 3 || calls[0] != (testhelpers.LineItemCall{OrderID: "o1", MenuItemID: "m1", Quantity: 3}) {
		t.Fatalf("unexpected calls: %+v", calls)
	}

	for _, raw := range []string{
		`{"orderId":"o1","menuId":"m1","quantity":2.5}`,
		`{"orderId":"o1","menuId":"m1","quantity":0}`,
		`{"orderId":"o1","menuId":"m1","quantity":-1}`,
		`{"orderId":"o1","menuId":"m1"}`,
		`{"orderId":"o1","menuId":"m1","quantity":"2"}`,
	} {
		w := performRequest(t, http.MethodPatch, "/orders/add-product", "/orders/add-product", handler.AddProduct, []byte(raw), nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", raw, w.Code)
		}
	}
	if len(calls) != 3 {
		t.Fatalf("invalid quantities must not reach the facade, got %d calls", len(calls))
	}
}

func TestOrderHandlerNotFoundMessages(t *testing.T) {
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{LineItemFn: func(_ context.Context, call testhelpers.LineItemCall) (*model.Order, error) {
		if call.MenuItemID == "missing" {
			return nil, domainErrors.ErrLineItemNotFound
		}
		return nil, domainErrors.ErrNotFound
	}})

	w := performRequest(t, http.MethodPatch, "/orders/add-product", "/orders/add-product", handler.AddProduct, []byte(`{"orderId":"o1","menuId":"m1","quantity":1}`), nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if env := decodeEnvelope(t, w, nil); env.Message != "order not found or not active" {
		t.Fatalf("unexpected message: %q", env.Message)
	}

	w = performRequest(t, http.MethodPatch, "/orders/update-quantity", "/orders/update-quantity", handler.UpdateQuantity, []byte(`{"orderId":"o1","menuId":"missing","quantity":1}`), nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if env := decodeEnvelope(t, w, nil); env.Message != "line item not found" {
		t.Fatalf("unexpected message: %q", env.Message)
	}
}

func TestOrderHandlerTransitions(t *testing.T) {
	var ids []string
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{TransitionFn: func(_ context.Context, id string) (*model.Order, error) {
		ids = append(ids, id)
		if id == "gone" {
			return nil, domainErrors.ErrNotFound
		}
		if id == "bad" {
			return nil, domainErrors.ErrInvalidIdentifier
		}
		return &model.Order{ID: uuid.New(), Type: model.OrderTypeToGo, IsCancelled: true}, nil
	}})

	w := performRequest(t, http.MethodPatch, "/orders/cancel/:orderId", "/orders/cancel/abc", handler.Cancel, nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var order dto.OrderResponse
	decodeEnvelope(t, w, &order)
	if order.State != "CANCELLED" {
		t.Fatalf("unexpected state: %s", order.State)
	}

	if w := performRequest(t, http.MethodPatch, "/orders/finish/:orderId", "/orders/finish/gone", handler.Finish, nil, nil); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if w := performRequest(t, http.MethodPatch, "/orders/finish/:orderId", "/orders/finish/bad", handler.Finish, nil, nil); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if len(ids) != 3 || ids[0] != "abc" {
		t.Fatalf("unexpected ids: %v", ids)
	}
}

func TestOrderHandlerGetAndLists(t *testing.T) {
	menuID := uuid.New()
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{
		OrderFn: func(_ context.Context, id string) (*model.Order, error) {
			order := model.NewOrder(uuid.New(), model.OrderTypeDineIn, time.Now())
			order.LineItems = []model.LineItem{{
				MenuItemID: menuID,
				Quantity:   2,
				MenuItem:   &model.MenuItem{ID: menuID, Name: "Soup", Price: decimal.RequireFromString("4.50")},
			}}
			return order, nil
		},
		ListFn: func(_ context.Context, state model.OrderState) ([]model.Order, error) {
			if state == model.OrderStateFinished {
				return nil, errors.New("db")
			}
			return []model.Order{*model.NewOrder(uuid.New(), model.OrderTypeToGo, time.Now())}, nil
		},
	})

	w := performRequest(t, http.MethodGet, "/orders/:orderId", "/orders/"+uuid.NewString(), handler.Get, nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var order dto.OrderResponse
	decodeEnvelope(t, w, &order)
	if len(order.LineItems) != 1 || order.LineItems[0].Menu == nil || order.LineItems[0].Menu.Name != "Soup" {
		t.Fatalf("expected expanded line item, got %+v", order.LineItems)
	}

	w = performRequest(t, http.MethodGet, "/orders/active", "/orders/active", handler.Active, nil, nil)
	var orders []dto.OrderResponse
	decodeEnvelope(t, w, &orders)
	if w.Code != http.StatusOK || len(orders) != 1 {
		t.Fatalf("unexpected list: %d %v", w.Code, orders)
	}

	w = performRequest(t, http.MethodGet, "/orders/finished", "/orders/finished", handler.Finished, nil, nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestSalesHandler(t *testing.T) {
	var gotDate, gotMonth string
	handler := NewSalesHandler(testhelpers.SalesFacadeStub{
		DailyFn: func(_ context.Context, date string) (*model.SalesSummary, error) {
			gotDate = date
			if date == "bad" {
				return nil, domainErrors.ErrInvalidPeriod
			}
			return &model.SalesSummary{
				Sales:     model.SalesBucket{Total: decimal.NewFromInt(35), Count: 1},
				DineIn:    model.SalesBucket{Total: decimal.NewFromInt(35), Count: 1},
				Cancelled: 1,
			}, nil
		},
		MonthlyFn: func(_ context.Context, month string) (*model.SalesSummary, error) {
			gotMonth = month
			return &model.SalesSummary{}, nil
		},
	})

	w := performRequest(t, http.MethodGet, "/orders/sales/daily", "/orders/sales/daily?date=2024-03-10", handler.Daily, nil, nil)
	if w.Code != http.StatusOK || gotDate != "2024-03-10" {
		t.Fatalf("unexpected daily response: %d %q", w.Code, gotDate)
	}
	var summary dto.SalesResponse
	decodeEnvelope(t, w, &summary)
	if !summary.Sales.Total.Equal(decimal.NewFromInt(35)) || summary.Sales.Count != 1 || summary.Cancelled.Count != 1 || summary.DineIn.Count != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	if w := performRequest(t, http.MethodGet, "/orders/sales/daily", "/orders/sales/daily?date=bad", handler.Daily, nil, nil); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	w = performRequest(t, http.MethodGet, "/orders/sales/monthly", "/orders/sales/monthly?month=2024-02", handler.Monthly, nil, nil)
	if w.Code != http.StatusOK || gotMonth != "2024-02" {
		t.Fatalf("unexpected monthly response: %d %q", w.Code, gotMonth)
	}

	w = performRequest(t, http.MethodGet, "/orders/sales", "/orders/sales", handler.Overview, nil, nil)
	var overview dto.SalesOverviewResponse
	decodeEnvelope(t, w, &overview)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	handler = NewSalesHandler(testhelpers.SalesFacadeStub{OverviewFn: func(context.Context) (*model.SalesOverview, error) {
		return nil, errors.New("db")
	}})
	if w := performRequest(t, http.MethodGet, "/orders/sales", "/orders/sales", handler.Overview, nil, nil); w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestCatalogHandlerCategories(t *testing.T) {
	handler := NewCatalogHandler(testhelpers.CatalogFacadeStub{})
	w := performRequest(t, http.MethodGet, "/categories", "/categories", handler.Categories, nil, nil)
	var categories []dto.CategoryResponse
	decodeEnvelope(t, w, &categories)
	if w.Code != http.StatusOK || len(categories) != 1 {
		t.Fatalf("unexpected response: %d %v", w.Code, categories)
	}

	w = performRequest(t, http.MethodPost, "/categories", "/categories", handler.CreateCategory, []byte(`{"name":"Drinks","description":"cold"}`), nil)
	var category dto.CategoryResponse
	decodeEnvelope(t, w, &category)
	if w.Code != http.StatusCreated || category.Name != "Drinks" {
		t.Fatalf("unexpected response: %d %+v", w.Code, category)
	}

	handler = NewCatalogHandler(testhelpers.CatalogFacadeStub{CreateCategoryFn: func(context.Context, string, string) (*model.Category, error) {
		return nil, domainErrors.ErrAlreadyExists
	}})
	if w := performRequest(t, http.MethodPost, "/categories", "/categories", handler.CreateCategory, []byte(`{"name":"Drinks"}`), nil); w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
}

func TestCatalogHandlerMenus(t *testing.T) {
	var draft model.MenuDraft
	var updatedID string
	handler := NewCatalogHandler(testhelpers.CatalogFacadeStub{
		CreateMenuFn: func(_ context.Context, in model.MenuDraft) (*model.MenuItem, error) {
			draft = in
			return &model.MenuItem{ID: uuid.New(), Name: in.Name, Price: in.Price, IsAvailable: true}, nil
		},
		UpdateMenuFn: func(_ context.Context, id string, in model.MenuDraft) (*model.MenuItem, error) {
			updatedID = id
			return nil, domainErrors.ErrNotFound
		},
		DeleteMenuFn: func(_ context.Context, id string) error {
			if id == "gone" {
				return domainErrors.ErrNotFound
			}
			return nil
		},
	})

	w := performRequest(t, http.MethodGet, "/menus", "/menus", handler.Menus, nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	body := []byte(`{"name":"Soup","price":"10.50","categoryId":"c1","capacity":2,"isAvailable":false}`)
	w = performRequest(t, http.MethodPost, "/menus", "/menus", handler.CreateMenu, body, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	if !draft.Price.Equal(decimal.RequireFromString("10.5")) || draft.CategoryID != "c1" || draft.IsAvailable == nil || *draft.IsAvailable {
		t.Fatalf("unexpected draft: %+v", draft)
	}

	w = performRequest(t, http.MethodPost, "/menus", "/menus", handler.CreateMenu, []byte(`{"name":"Soup","price":7}`), nil)
	if w.Code != http.StatusCreated || !draft.Price.Equal(decimal.NewFromInt(7)) || draft.IsAvailable != nil {
		t.Fatalf("unexpected result for numeric price: %d %+v", w.Code, draft)
	}

	if w := performRequest(t, http.MethodPost, "/menus", "/menus", handler.CreateMenu, []byte(`{"name":"Soup"}`), nil); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without price, got %d", w.Code)
	}

	if w := performRequest(t, http.MethodPut, "/menus/:id", "/menus/m1", handler.UpdateMenu, body, nil); w.Code != http.StatusNotFound || updatedID != "m1" {
		t.Fatalf("expected 404 for m1, got %d %q", w.Code, updatedID)
	}

	if w := performRequest(t, http.MethodDelete, "/menus/:id", "/menus/m1", handler.DeleteMenu, nil, nil); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w := performRequest(t, http.MethodDelete, "/menus/:id", "/menus/gone", handler.DeleteMenu, nil, nil); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	w = performRequest(t, http.MethodPatch, "/menus/availability/:id", "/menus/availability/m1", handler.SetAvailability, []byte(`{"isAvailable":true}`), nil)
	var menu dto.MenuResponse
	decodeEnvelope(t, w, &menu)
	if w.Code != http.StatusOK || !menu.IsAvailable {
		t.Fatalf("unexpected availability response: %d %+v", w.Code, menu)
	}
}

type healthStub struct{ err error }

func (h healthStub) HealthCheck(context.Context) error { return h.err }

func TestHealthHandler(t *testing.T) {
	w := performRequest(t, http.MethodGet, "/health", "/health", NewHealthHandler(healthStub{}).Check, nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = performRequest(t, http.MethodGet, "/health", "/health", NewHealthHandler(healthStub{err: errors.New("down")}).Check, nil, nil)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}
