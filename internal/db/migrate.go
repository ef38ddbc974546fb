package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id           BIGSERIAL PRIMARY KEY,
		name         TEXT NOT NULL,
		description  TEXT NOT NULL DEFAULT '',
		price        DOUBLE PRECISION NOT NULL CHECK (price >= 0),
		old_price    DOUBLE PRECISION,
		sku          TEXT NOT NULL DEFAULT '',
		tags         TEXT[] NOT NULL DEFAULT '{}',
		team         TEXT NOT NULL DEFAULT '',
		category     TEXT NOT NULL DEFAULT '',
		subcategory  TEXT NOT NULL DEFAULT '',
		weight_grams INT NOT NULL DEFAULT 0,
		image_url    TEXT NOT NULL DEFAULT '',
		gallery      TEXT[] NOT NULL DEFAULT '{}',
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS product_variants (
		id         BIGSERIAL PRIMARY KEY,
		product_id BIGINT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		size       TEXT NOT NULL,
		stock_qty  INT NOT NULL DEFAULT 0 CHECK (stock_qty >= 0)
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id             BIGSERIAL PRIMARY KEY,
		name           TEXT NOT NULL UNIQUE,
		subcategories  TEXT[] NOT NULL DEFAULT '{}',
		ai_context     TEXT NOT NULL DEFAULT '',
		technical_text TEXT NOT NULL DEFAULT '',
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id                BIGSERIAL PRIMARY KEY,
		user_email        TEXT NOT NULL,
		subtotal          DOUBLE PRECISION NOT NULL,
		shipping_cost     DOUBLE PRECISION NOT NULL,
		total             DOUBLE PRECISION NOT NULL,
		shipping_provider TEXT NOT NULL DEFAULT '',
		shipping_address  JSONB NOT NULL DEFAULT '{}',
		customer          JSONB NOT NULL DEFAULT '{}',
		status            TEXT NOT NULL DEFAULT 'pending_payment',
		created_at        TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id           BIGSERIAL PRIMARY KEY,
		order_id     BIGINT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		product_id   BIGINT NOT NULL,
		product_name TEXT NOT NULL,
		size         TEXT NOT NULL DEFAULT '',
		price        DOUBLE PRECISION NOT NULL,
		quantity     INT NOT NULL CHECK (quantity >= 1)
	)`,
	`CREATE TABLE IF NOT EXISTS abandoned_checkouts (
		id            BIGSERIAL PRIMARY KEY,
		email         TEXT NOT NULL,
		cart_snapshot JSONB NOT NULL DEFAULT '[]',
		recovered     BOOLEAN NOT NULL DEFAULT false,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_products_created_at ON products (created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_abandoned_email ON abandoned_checkouts (email, created_at DESC)`,
}

// Migrate applies the schema. Statements are idempotent so this runs on
// every boot.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
