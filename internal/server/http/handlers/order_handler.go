package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/restaurant/internal/domain/errors"
	"github.com/polkiloo/restaurant/internal/domain/model"
	"github.com/polkiloo/restaurant/internal/server/http/dto"
	"github.com/polkiloo/restaurant/internal/usecase"
)

// IdempotencyHeader lets clients retry order creation safely.
const IdempotencyHeader = "Idempotency-Key"

var errOrderNotFound = fmt.Errorf("order %w or not active", domainErrors.ErrNotFound)

// OrderHandler manages order lifecycle endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, msgMalformedBody)
		return
	}

	order, err := h.facade.CreateOrder(c.Request.Context(), req.OrderType, c.GetHeader(IdempotencyHeader))
	if err != nil {
		respondOrderError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, dto.NewOrderResponse(*order))
}

// AddProduct handles PATCH /orders/add-product.
func (h *OrderHandler) AddProduct(c *gin.Context) {
	req, quantity, ok := bindLineItem(c, true)
	if !ok {
		return
	}
	h.respond(c)(h.facade.AddLineItem(c.Request.Context(), req.OrderID, req.MenuID, quantity))
}

// RemoveProduct handles PATCH /orders/remove-product.
func (h *OrderHandler) RemoveProduct(c *gin.Context) {
	req, _, ok := bindLineItem(c, false)
	if !ok {
		return
	}
	h.respond(c)(h.facade.RemoveLineItem(c.Request.Context(), req.OrderID, req.MenuID))
}

// UpdateQuantity handles PATCH /orders/update-quantity.
func (h *OrderHandler) UpdateQuantity(c *gin.Context) {
	req, quantity, ok := bindLineItem(c, true)
	if !ok {
		return
	}
	h.respond(c)(h.facade.UpdateLineItemQuantity(c.Request.Context(), req.OrderID, req.MenuID, quantity))
}

// Cancel handles PATCH /orders/cancel/:orderId.
func (h *OrderHandler) Cancel(c *gin.Context) {
	h.respond(c)(h.facade.CancelOrder(c.Request.Context(), c.Param("orderId")))
}

// Finish handles PATCH /orders/finish/:orderId.
func (h *OrderHandler) Finish(c *gin.Context) {
	h.respond(c)(h.facade.FinishOrder(c.Request.Context(), c.Param("orderId")))
}

// Get handles GET /orders/:orderId.
func (h *OrderHandler) Get(c *gin.Context) {
	h.respond(c)(h.facade.Order(c.Request.Context(), c.Param("orderId")))
}

// Active handles GET /orders/active.
func (h *OrderHandler) Active(c *gin.Context) {
	h.respondList(c)(h.facade.ActiveOrders(c.Request.Context()))
}

// Finished handles GET /orders/finished.
func (h *OrderHandler) Finished(c *gin.Context) {
	h.respondList(c)(h.facade.FinishedOrders(c.Request.Context()))
}

func (h *OrderHandler) respond(c *gin.Context) func(*model.Order, error) {
	return func(order *model.Order, err error) {
		if err != nil {
			respondOrderError(c, err)
			return
		}
		respondOK(c, http.StatusOK, dto.NewOrderResponse(*order))
	}
}

func (h *OrderHandler) respondList(c *gin.Context) func([]model.Order, error) {
	return func(orders []model.Order, err error) {
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusOK, dto.NewOrderListResponse(orders))
	}
}

// bindLineItem decodes the body and validates the quantity when required.
func bindLineItem(c *gin.Context, withQuantity bool) (dto.LineItemRequest, int, bool) {
	var req dto.LineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, msgMalformedBody)
		return req, 0, false
	}
	if !withQuantity {
		return req, 0, true
	}
	quantity, err := usecase.QuantityFromNumber(req.Quantity)
	if err != nil {
		respondError(c, err)
		return req, 0, false
	}
	return req, quantity, true
}

// respondOrderError names the order in plain not-found replies.
func respondOrderError(c *gin.Context, err error) {
	if errors.Is(err, domainErrors.ErrNotFound) && !errors.Is(err, domainErrors.ErrLineItemNotFound) {
		err = errOrderNotFound
	}
	respondError(c, err)
}
