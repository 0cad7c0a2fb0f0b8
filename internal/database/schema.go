package database

import (
	"context"
	"database/sql"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS product_manager (
		id               BIGSERIAL PRIMARY KEY,
		ref_num          TEXT NOT NULL UNIQUE,
		name             TEXT,
		barcode          BIGINT CHECK (barcode >= 0),
		pcs_innerbox     INTEGER CHECK (pcs_innerbox >= 0),
		pcs_ctn          INTEGER CHECK (pcs_ctn >= 0),
		weight           DOUBLE PRECISION CHECK (weight >= 0),
		price_usd        DOUBLE PRECISION CHECK (price_usd >= 0),
		price_rmb        DOUBLE PRECISION CHECK (price_rmb >= 0),
		remarks          TEXT,
		packing          TEXT,
		last_updated     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		deleted          BOOLEAN NOT NULL DEFAULT FALSE,
		locked_by        TEXT,
		locked_timestamp TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS product_images (
		id         BIGSERIAL PRIMARY KEY,
		product_id BIGINT NOT NULL REFERENCES product_manager(id) ON DELETE CASCADE,
		img        TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS customers (
		id            BIGSERIAL PRIMARY KEY,
		customer_name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS product_customers (
		product_id  BIGINT NOT NULL REFERENCES product_manager(id) ON DELETE CASCADE,
		customer_id BIGINT NOT NULL REFERENCES customers(id) ON DELETE CASCADE,
		PRIMARY KEY (product_id, customer_id)
	)`,
	`CREATE TABLE IF NOT EXISTS tags (
		id       BIGSERIAL PRIMARY KEY,
		tag_name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS product_tags (
		product_id BIGINT NOT NULL REFERENCES product_manager(id) ON DELETE CASCADE,
		tag_id     BIGINT NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
		PRIMARY KEY (product_id, tag_id)
	)`,
	`CREATE TABLE IF NOT EXISTS quotes (
		id           BIGSERIAL PRIMARY KEY,
		product_id   BIGINT NOT NULL REFERENCES product_manager(id) ON DELETE CASCADE,
		customer_id  BIGINT NOT NULL REFERENCES customers(id) ON DELETE CASCADE,
		quote        NUMERIC(14,2) CHECK (quote >= 0),
		quote_remark TEXT,
		"timestamp"  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uni_customers_name ON customers (lower(customer_name))`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uni_tags_name ON tags (lower(tag_name))`,
	`CREATE INDEX IF NOT EXISTS idx_product_name ON product_manager (lower(name))`,
	`CREATE INDEX IF NOT EXISTS idx_product_barcode ON product_manager (barcode)`,
	`CREATE INDEX IF NOT EXISTS idx_product_images_product ON product_images (product_id)`,
	`CREATE INDEX IF NOT EXISTS idx_quotes_product ON quotes (product_id)`,
}

// tables in drop order, link tables first.
var tables = []string{
	"product_tags",
	"product_customers",
	"quotes",
	"product_images",
	"tags",
	"customers",
	"product_manager",
}

// EnsureSchema creates every table and index that does not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// Reset drops all tables and recreates them empty.
func Reset(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, t := range tables {
		if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+t+" CASCADE"); err != nil {
			return fmt.Errorf("drop %s: %w", t, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	return EnsureSchema(ctx, db)
}
