package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/restaurant/internal/domain/model"
	"github.com/polkiloo/restaurant/internal/server/http/handlers"
	testhelpers "github.com/polkiloo/restaurant/internal/test"
)

type healthStub struct{ err error }

func (h healthStub) HealthCheck(context.Context) error { return h.err }

func newEngine(role model.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	facade := testhelpers.RestaurantFacadeStub{
		AuthFacadeStub: testhelpers.AuthFacadeStub{AuthorizerStub: testhelpers.AuthorizerStub{Role: role}},
	}
	return Setup(facade, healthStub{}, logger)
}

func serve(engine *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	return resp
}

func TestSetupPublicRoutes(t *testing.T) {
	engine := newEngine(model.RoleWaiter)

	credentials := map[string]string{"mail": "user@example.com", "password": "pass"}
	if resp := serve(engine, http.MethodPost, "/signup", credentials, ""); resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201 for signup, got %d", resp.Code)
	}
	if resp := serve(engine, http.MethodPost, "/signin", credentials, ""); resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for signin, got %d", resp.Code)
	}
	if resp := serve(engine, http.MethodGet, "/health", nil, ""); resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for health, got %d", resp.Code)
	}
}

func TestSetupRoleGates(t *testing.T) {
	lineItem := map[string]any{"orderId": "o", "menuId": "m", "quantity": 1}
	menu := map[string]any{"name": "Soup", "price": "5"}

	cases := []struct {
		method string
		path   string
		body   any
		admin  int
		waiter int
	}{
		{http.MethodGet, "/categories", nil, http.StatusOK, http.StatusOK},
		{http.MethodPost, "/categories", map[string]string{"name": "Drinks"}, http.StatusCreated, http.StatusForbidden},
		{http.MethodGet, "/menus", nil, http.StatusOK, http.StatusOK},
		{http.MethodPost, "/menus", menu, http.StatusCreated, http.StatusForbidden},
		{http.MethodPut, "/menus/m1", menu, http.StatusOK, http.StatusForbidden},
		{http.MethodDelete, "/menus/m1", nil, http.StatusOK, http.StatusForbidden},
		{http.MethodPatch, "/menus/availability/m1", map[string]bool{"isAvailable": true}, http.StatusOK, http.StatusForbidden},
		{http.MethodGet, "/orders/finished", nil, http.StatusOK, http.StatusForbidden},
		{http.MethodGet, "/orders/sales", nil, http.StatusOK, http.StatusForbidden},
		{http.MethodGet, "/orders/sales/daily", nil, http.StatusOK, http.StatusForbidden},
		{http.MethodGet, "/orders/sales/monthly", nil, http.StatusOK, http.StatusForbidden},
		{http.MethodGet, "/orders/active", nil, http.StatusForbidden, http.StatusOK},
		{http.MethodPost, "/orders", map[string]string{"order_type": "to_go"}, http.StatusForbidden, http.StatusCreated},
		{http.MethodPatch, "/orders/add-product", lineItem, http.StatusForbidden, http.StatusOK},
		{http.MethodPatch, "/orders/remove-product", lineItem, http.StatusForbidden, http.StatusOK},
		{http.MethodPatch, "/orders/update-quantity", lineItem, http.StatusForbidden, http.StatusOK},
		{http.MethodPatch, "/orders/cancel/o1", nil, http.StatusForbidden, http.StatusOK},
		{http.MethodPatch, "/orders/finish/o1", nil, http.StatusForbidden, http.StatusOK},
		{http.MethodGet, "/orders/o1", nil, http.StatusForbidden, http.StatusOK},
	}

	adminEngine := newEngine(model.RoleAdministrator)
	waiterEngine := newEngine(model.RoleWaiter)
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			if resp := serve(adminEngine, tc.method, tc.path, tc.body, "token"); resp.Code != tc.admin {
				t.Fatalf("administrator: expected %d, got %d (%s)", tc.admin, resp.Code, resp.Body.String())
			}
			if resp := serve(waiterEngine, tc.method, tc.path, tc.body, "token"); resp.Code != tc.waiter {
				t.Fatalf("waiter: expected %d, got %d (%s)", tc.waiter, resp.Code, resp.Body.String())
			}
			if resp := serve(waiterEngine, tc.method, tc.path, tc.body, ""); resp.Code != http.StatusUnauthorized {
				t.Fatalf("anonymous: expected 401, got %d", resp.Code)
			}
		})
	}
}

func TestSetupHealthUnavailable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	engine := Setup(testhelpers.RestaurantFacadeStub{}, healthStub{err: errors.New("down")}, logger)

	if resp := serve(engine, http.MethodGet, "/health", nil, ""); resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", resp.Code)
	}
}

var _ handlers.RestaurantFacade = (*testhelpers.RestaurantFacadeStub)(nil)
