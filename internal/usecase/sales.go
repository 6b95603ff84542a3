package usecase

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	domainErrors "github.com/polkiloo/restaurant/internal/domain/errors"
	"github.com/polkiloo/restaurant/internal/domain/model"
	"github.com/polkiloo/restaurant/internal/domain/repository"
)

const (
	dayLayout   = "2006-01-02"
	monthLayout = "2006-01"
)

// SalesUseCase rolls terminal orders up into revenue summaries.
type SalesUseCase struct {
	orders repository.OrderRepository
	loc    *time.Location
	now    func() time.Time
}

// NewSalesUseCase constructs SalesUseCase computing windows in loc.
func NewSalesUseCase(orders repository.OrderRepository, loc *time.Location) *SalesUseCase {
	if loc == nil {
		loc = time.Local
	}
	return &SalesUseCase{orders: orders, loc: loc, now: time.Now}
}

// Aggregate summarizes orders that reached a terminal state.
func Aggregate(orders []model.Order, period model.SalesPeriod) *model.SalesSummary {
	summary := &model.SalesSummary{From: period.From, To: period.To}
	for _, order := range orders {
		if order.IsActive {
			continue
		}
		summary.Record(order)
	}
	return summary
}

// Summarize loads cancelled and finished orders dated inside period.
func (u *SalesUseCase) Summarize(ctx context.Context, period model.SalesPeriod) (*model.SalesSummary, error) {
	orders, err := u.orders.FindMany(ctx, repository.OrderFilter{
		States: []model.OrderState{model.OrderStateCancelled, model.OrderStateFinished},
		From:   period.From,
		To:     period.To,
		Expand: true,
	})
	if err != nil {
		return nil, err
	}
	return Aggregate(orders, period), nil
}

// Daily summarizes the day given as YYYY-MM-DD, today when empty.
func (u *SalesUseCase) Daily(ctx context.Context, date string) (*model.SalesSummary, error) {
	day, err := u.parse(date, dayLayout)
	if err != nil {
		return nil, err
	}
	return u.Summarize(ctx, model.DayPeriod(day, u.loc))
}

// Monthly summarizes the month given as YYYY-MM, the current one when empty.
func (u *SalesUseCase) Monthly(ctx context.Context, month string) (*model.SalesSummary, error) {
	start, err := u.parse(month, monthLayout)
	if err != nil {
		return nil, err
	}
	return u.Summarize(ctx, model.MonthPeriod(start, u.loc))
}

// Overview computes today's and this month's summaries concurrently.
func (u *SalesUseCase) Overview(ctx context.Context) (*model.SalesOverview, error) {
	now := u.now()
	overview := &model.SalesOverview{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		summary, err := u.Summarize(gctx, model.DayPeriod(now, u.loc))
		overview.Daily = summary
		return err
	})
	g.Go(func() error {
		summary, err := u.Summarize(gctx, model.MonthPeriod(now, u.loc))
		overview.Monthly = summary
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return overview, nil
}

func (u *SalesUseCase) parse(value, layout string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return u.now(), nil
	}
	t, err := time.ParseInLocation(layout, value, u.loc)
	if err != nil {
		return time.Time{}, domainErrors.ErrInvalidPeriod
	}
	return t, nil
}
