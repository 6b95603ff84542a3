package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesBucket accumulates revenue and order count.
type SalesBucket struct {
	Total decimal.Decimal
	Count int
}

func (b *SalesBucket) add(total decimal.Decimal) {
	b.Total = b.Total.Add(total)
	b.Count++
}

// SalesSummary is the revenue rollup of a period.
type SalesSummary struct {
	From      time.Time
	To        time.Time
	Sales     SalesBucket
	ToGo      SalesBucket
	Delivery  SalesBucket
	DineIn    SalesBucket
	Cancelled int
}

// Bucket returns the per-type bucket, nil for unknown types.
func (s *SalesSummary) Bucket(t OrderType) *SalesBucket {
	switch t {
	case OrderTypeToGo:
		return &s.ToGo
	case OrderTypeDelivery:
		return &s.Delivery
	case OrderTypeDineIn:
		return &s.DineIn
	}
	return nil
}

// Record accounts a terminal order. Cancelled orders only count; the revenue
// of other orders is the sum of their resolvable line items.
func (s *SalesSummary) Record(order Order) {
	if order.IsCancelled {
		s.Cancelled++
		return
	}

	total := order.Total()
	s.Sales.add(total)
	if bucket := s.Bucket(order.Type); bucket != nil {
		bucket.add(total)
	}
}

// Total sums quantity * price over line items whose menu item was resolved.
func (o Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.LineItems {
		if item.MenuItem == nil {
			continue
		}
		total = total.Add(item.MenuItem.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// SalesPeriod is a closed time interval.
type SalesPeriod struct {
	From time.Time
	To   time.Time
}

const endOfDayNanos = int(999 * time.Millisecond)

// DayPeriod covers the calendar day of t in loc, up to 23:59:59.999 wall clock.
func DayPeriod(t time.Time, loc *time.Location) SalesPeriod {
	t = t.In(loc)
	y, m, d := t.Date()
	return SalesPeriod{
		From: time.Date(y, m, d, 0, 0, 0, 0, loc),
		To:   time.Date(y, m, d, 23, 59, 59, endOfDayNanos, loc),
	}
}

// MonthPeriod covers the calendar month of t in loc.
func MonthPeriod(t time.Time, loc *time.Location) SalesPeriod {
	t = t.In(loc)
	y, m, _ := t.Date()
	// day 0 of the next month is the last day of this one
	return SalesPeriod{
		From: time.Date(y, m, 1, 0, 0, 0, 0, loc),
		To:   time.Date(y, m+1, 0, 23, 59, 59, endOfDayNanos, loc),
	}
}

// SalesOverview bundles the current day and month.
type SalesOverview struct {
	Daily   *SalesSummary
	Monthly *SalesSummary
}
