package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/restaurant/internal/domain/model"
)

// CreateOrderRequest is the payload of POST /orders.
type CreateOrderRequest struct {
	OrderType string `json:"order_type"`
}

// LineItemRequest is shared by the add, remove and update-quantity routes.
// Quantity stays a float so fractional values reach validation.
type LineItemRequest struct {
	OrderID  string   `json:"orderId"`
	MenuID   string   `json:"menuId"`
	Quantity *float64 `json:"quantity"`
}

type LineItemResponse struct {
	MenuID   string        `json:"menuId"`
	Quantity int           `json:"quantity"`
	Menu     *MenuResponse `json:"menu,omitempty"`
}

type OrderResponse struct {
	ID          string             `json:"id"`
	OrderType   string             `json:"orderType"`
	State       string             `json:"state"`
	LineItems   []LineItemResponse `json:"lineItems"`
	IsActive    bool               `json:"isActive"`
	IsCancelled bool               `json:"isCancelled"`
	Date        time.Time          `json:"date"`
}

func NewOrderResponse(o model.Order) OrderResponse {
	items := make([]LineItemResponse, 0, len(o.LineItems))
	for _, li := range o.LineItems {
		item := LineItemResponse{MenuID: li.MenuItemID.String(), Quantity: li.Quantity}
		if li.MenuItem != nil {
			menu := NewMenuResponse(*li.MenuItem)
			item.Menu = &menu
		}
		items = append(items, item)
	}
	return OrderResponse{
		ID:          o.ID.String(),
		OrderType:   string(o.Type),
		State:       string(o.State()),
		LineItems:   items,
		IsActive:    o.IsActive,
		IsCancelled: o.IsCancelled,
		Date:        o.Date,
	}
}

func NewOrderListResponse(orders []model.Order) []OrderResponse {
	result := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		result = append(result, NewOrderResponse(o))
	}
	return result
}

type BucketResponse struct {
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

type CancelledResponse struct {
	Count int `json:"count"`
}

type SalesResponse struct {
	From      time.Time         `json:"from"`
	To        time.Time         `json:"to"`
	Sales     BucketResponse    `json:"sales"`
	ToGo      BucketResponse    `json:"toGo"`
	Delivery  BucketResponse    `json:"delivery"`
	DineIn    BucketResponse    `json:"dineIn"`
	Cancelled CancelledResponse `json:"cancelled"`
}

func NewSalesResponse(s *model.SalesSummary) SalesResponse {
	bucket := func(b model.SalesBucket) BucketResponse {
		return BucketResponse{Total: b.Total, Count: b.Count}
	}
	return SalesResponse{
		From:      s.From,
		To:        s.To,
		Sales:     bucket(s.Sales),
		ToGo:      bucket(s.ToGo),
		Delivery:  bucket(s.Delivery),
		DineIn:    bucket(s.DineIn),
		Cancelled: CancelledResponse{Count: s.Cancelled},
	}
}

type SalesOverviewResponse struct {
	Daily   SalesResponse `json:"daily"`
	Monthly SalesResponse `json:"monthly"`
}
