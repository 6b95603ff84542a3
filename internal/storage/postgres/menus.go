package postgres

import (
	"context"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/restaurant/internal/domain/errors"
	"github.com/polkiloo/restaurant/internal/domain/model"
)

const menuColumns = `id, name, price, category_id, capacity, is_available, image_url`

func scanMenu(row interface{ Scan(...any) error }, m *model.MenuItem) error {
	return row.Scan(&m.ID, &m.Name, &m.Price, &m.CategoryID, &m.Capacity, &m.IsAvailable, &m.ImageURL)
}

func (r *menuRepository) Create(ctx context.Context, item *model.MenuItem) error {
	const query = `INSERT INTO menus (` + menuColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.storage.pool.Exec(ctx, query, item.ID, item.Name, item.Price, item.CategoryID, item.Capacity, item.IsAvailable, item.ImageURL)
	return mapError(err)
}

func (r *menuRepository) List(ctx context.Context) ([]model.MenuItem, error) {
	const query = `SELECT ` + menuColumns + ` FROM menus ORDER BY name`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]model.MenuItem, 0)
	for rows.Next() {
		var m model.MenuItem
		if err := scanMenu(rows, &m); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *menuRepository) Update(ctx context.Context, item *model.MenuItem) error {
	const query = `UPDATE menus SET name=$2, price=$3, category_id=$4, capacity=$5, is_available=$6, image_url=$7 WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, item.ID, item.Name, item.Price, item.CategoryID, item.Capacity, item.IsAvailable, item.ImageURL)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *menuRepository) SetAvailability(ctx context.Context, id uuid.UUID, available bool) (*model.MenuItem, error) {
	const query = `UPDATE menus SET is_available=$2 WHERE id=$1 RETURNING ` + menuColumns
	var m model.MenuItem
	if err := scanMenu(r.storage.pool.QueryRow(ctx, query, id, available), &m); err != nil {
		return nil, mapError(err)
	}
	return &m, nil
}

// Delete removes the menu item. Orders keep their references, which then no
// longer resolve.
func (r *menuRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM menus WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *categoryRepository) Create(ctx context.Context, category *model.Category) error {
	const query = `INSERT INTO categories (id, name, description) VALUES ($1, $2, $3)`
	_, err := r.storage.pool.Exec(ctx, query, category.ID, category.Name, category.Description)
	return mapError(err)
}

func (r *categoryRepository) List(ctx context.Context) ([]model.Category, error) {
	const query = `SELECT id, name, description FROM categories ORDER BY name`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]model.Category, 0)
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
