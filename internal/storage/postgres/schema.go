package postgres

import (
	"context"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
            id UUID PRIMARY KEY,
            mail TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            role TEXT NOT NULL DEFAULT 'waiter',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
	`CREATE TABLE IF NOT EXISTS categories (
            id UUID PRIMARY KEY,
            name TEXT UNIQUE NOT NULL,
            description TEXT NOT NULL DEFAULT ''
        )`,
	`CREATE TABLE IF NOT EXISTS menus (
            id UUID PRIMARY KEY,
            name TEXT UNIQUE NOT NULL,
            price NUMERIC(12,2) NOT NULL CHECK (price >= 0),
            category_id UUID NOT NULL REFERENCES categories(id),
            capacity INTEGER NOT NULL DEFAULT 0,
            is_available BOOLEAN NOT NULL DEFAULT TRUE,
            image_url TEXT NOT NULL DEFAULT ''
        )`,
	`CREATE TABLE IF NOT EXISTS orders (
            id UUID PRIMARY KEY,
            order_type TEXT NOT NULL,
            is_active BOOLEAN NOT NULL DEFAULT TRUE,
            is_cancelled BOOLEAN NOT NULL DEFAULT FALSE,
            date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            CHECK (NOT (is_active AND is_cancelled))
        )`,
	`CREATE TABLE IF NOT EXISTS order_items (
            order_id UUID NOT NULL REFERENCES orders(id),
            position INTEGER NOT NULL,
            menu_id UUID NOT NULL,
            quantity INTEGER NOT NULL CHECK (quantity > 0),
            PRIMARY KEY (order_id, position)
        )`,
	`CREATE INDEX IF NOT EXISTS idx_orders_state_date ON orders(is_active, is_cancelled, date)`,
}

func (s *Storage) initSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}
