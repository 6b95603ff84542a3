package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/polkiloo/restaurant/internal/domain/model"
	"github.com/polkiloo/restaurant/internal/domain/repository"
)

const orderColumns = `id, order_type, is_active, is_cancelled, date`

const (
	selectItemsQuery = `SELECT order_id, menu_id, quantity FROM order_items
        WHERE order_id = ANY($1::uuid[]) ORDER BY order_id, position`
	selectExpandedItemsQuery = `SELECT oi.order_id, oi.menu_id, oi.quantity,
            m.id, COALESCE(m.name, ''), m.price, m.category_id,
            COALESCE(m.capacity, 0), COALESCE(m.is_available, FALSE), COALESCE(m.image_url, '')
        FROM order_items oi LEFT JOIN menus m ON m.id = oi.menu_id
        WHERE oi.order_id = ANY($1::uuid[]) ORDER BY oi.order_id, oi.position`
)

// stateClause returns the flag predicate matching state.
func stateClause(state model.OrderState) (string, error) {
	switch state {
	case model.OrderStateActive:
		return "is_active = TRUE", nil
	case model.OrderStateCancelled:
		return "is_cancelled = TRUE", nil
	case model.OrderStateFinished:
		return "is_active = FALSE AND is_cancelled = FALSE", nil
	}
	return "", fmt.Errorf("unknown order state %q", state)
}

func scanOrder(row interface{ Scan(...any) error }, o *model.Order) error {
	var orderType string
	if err := row.Scan(&o.ID, &orderType, &o.IsActive, &o.IsCancelled, &o.Date); err != nil {
		return err
	}
	o.Type = model.OrderType(orderType)
	o.LineItems = []model.LineItem{}
	return nil
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const query = `INSERT INTO orders (` + orderColumns + `) VALUES ($1, $2, $3, $4, $5)`
		if _, err := tx.Exec(ctx, query, order.ID, string(order.Type), order.IsActive, order.IsCancelled, order.Date); err != nil {
			return mapError(err)
		}
		return insertItems(ctx, tx, order.ID, order.LineItems)
	})
}

func (r *orderRepository) FindByID(ctx context.Context, id uuid.UUID, expand bool) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	var order model.Order
	if err := scanOrder(r.storage.pool.QueryRow(ctx, query, id), &order); err != nil {
		return nil, mapError(err)
	}

	items, err := loadItems(ctx, r.storage.pool, []uuid.UUID{id}, expand)
	if err != nil {
		return nil, err
	}
	if li, ok := items[id]; ok {
		order.LineItems = li
	}
	return &order, nil
}

func (r *orderRepository) FindMany(ctx context.Context, filter repository.OrderFilter) ([]model.Order, error) {
	var (
		conds []string
		args  []any
	)
	if len(filter.States) > 0 {
		states := make([]string, 0, len(filter.States))
		for _, state := range filter.States {
			clause, err := stateClause(state)
			if err != nil {
				return nil, err
			}
			states = append(states, "("+clause+")")
		}
		conds = append(conds, "("+strings.Join(states, " OR ")+")")
	}
	if !filter.From.IsZero() {
		args = append(args, filter.From)
		conds = append(conds, fmt.Sprintf("date >= $%d", len(args)))
	}
	if !filter.To.IsZero() {
		args = append(args, filter.To)
		conds = append(conds, fmt.Sprintf("date <= $%d", len(args)))
	}

	query := `SELECT ` + orderColumns + ` FROM orders`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY date"

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]model.Order, 0)
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var o model.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, err
		}
		orders = append(orders, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	if len(ids) == 0 {
		return orders, nil
	}
	items, err := loadItems(ctx, r.storage.pool, ids, filter.Expand)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if li, ok := items[orders[i].ID]; ok {
			orders[i].LineItems = li
		}
	}
	return orders, nil
}

// UpdateIf locks the order row, applies mutate and persists the result in a
// single transaction. Concurrent callers on the same order serialize on the
// row lock, so only the first of several terminal transitions succeeds.
func (r *orderRepository) UpdateIf(ctx context.Context, id uuid.UUID, state model.OrderState, mutate repository.OrderMutation) (*model.Order, error) {
	clause, err := stateClause(state)
	if err != nil {
		return nil, err
	}

	var updated *model.Order
	err = r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1 AND ` + clause + ` FOR UPDATE`
		var order model.Order
		if err := scanOrder(tx.QueryRow(ctx, query, id), &order); err != nil {
			return mapError(err)
		}

		items, err := loadItems(ctx, tx, []uuid.UUID{id}, false)
		if err != nil {
			return err
		}
		if li, ok := items[id]; ok {
			order.LineItems = li
		}

		before := order.Clone()
		if err := mutate(&order); err != nil {
			return err
		}

		const update = `UPDATE orders SET is_active=$2, is_cancelled=$3 WHERE id=$1`
		if _, err := tx.Exec(ctx, update, id, order.IsActive, order.IsCancelled); err != nil {
			return err
		}

		if !sameItems(before.LineItems, order.LineItems) {
			const clear = `DELETE FROM order_items WHERE order_id=$1`
			if _, err := tx.Exec(ctx, clear, id); err != nil {
				return err
			}
			if err := insertItems(ctx, tx, id, order.LineItems); err != nil {
				return err
			}
		}

		updated = &order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func insertItems(ctx context.Context, q querier, orderID uuid.UUID, items []model.LineItem) error {
	const query = `INSERT INTO order_items (order_id, position, menu_id, quantity) VALUES ($1, $2, $3, $4)`
	for i, item := range items {
		if _, err := q.Exec(ctx, query, orderID, i, item.MenuItemID, item.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// loadItems returns the line items of the given orders keyed by order id, in
// insertion order. With expand set, references that still resolve carry
// their menu item.
func loadItems(ctx context.Context, q querier, ids []uuid.UUID, expand bool) (map[uuid.UUID][]model.LineItem, error) {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = id.String()
	}

	query := selectItemsQuery
	if expand {
		query = selectExpandedItemsQuery
	}
	rows, err := q.Query(ctx, query, keys)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[uuid.UUID][]model.LineItem, len(ids))
	for rows.Next() {
		var (
			orderID uuid.UUID
			item    model.LineItem
		)
		if !expand {
			if err := rows.Scan(&orderID, &item.MenuItemID, &item.Quantity); err != nil {
				return nil, err
			}
		} else {
			var (
				menuID     uuid.NullUUID
				price      decimal.NullDecimal
				categoryID uuid.NullUUID
				menu       model.MenuItem
			)
			if err := rows.Scan(&orderID, &item.MenuItemID, &item.Quantity,
				&menuID, &menu.Name, &price, &categoryID,
				&menu.Capacity, &menu.IsAvailable, &menu.ImageURL); err != nil {
				return nil, err
			}
			if menuID.Valid {
				menu.ID = menuID.UUID
				menu.Price = price.Decimal
				menu.CategoryID = categoryID.UUID
				item.MenuItem = &menu
			}
		}
		result[orderID] = append(result[orderID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func sameItems(a, b []model.LineItem) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].MenuItemID != b[i].MenuItemID || a[i].Quantity != b[i].Quantity {
			return false
		}
	}
	return true
}
