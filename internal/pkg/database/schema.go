package database

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// Schema is written in the dialect subset shared by PostgreSQL and SQLite so
// the same DDL backs production and the in-memory test databases.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		account_type TEXT NOT NULL CHECK (account_type IN ('admin', 'consumer', 'business')),
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		phone TEXT,
		address TEXT,
		business_name TEXT,
		is_verified BOOLEAN NOT NULL DEFAULT FALSE,
		verification_status TEXT NOT NULL DEFAULT 'pending' CHECK (verification_status IN ('pending', 'approved', 'rejected')),
		can_sell BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id TEXT PRIMARY KEY,
		business_id TEXT NOT NULL REFERENCES users(id),
		name TEXT NOT NULL,
		description TEXT,
		business_price BIGINT NOT NULL,
		platform_fee_percentage NUMERIC NOT NULL,
		public_price BIGINT NOT NULL,
		category TEXT NOT NULL,
		stock_quantity INTEGER NOT NULL DEFAULT 0 CHECK (stock_quantity >= 0),
		min_order_quantity INTEGER NOT NULL DEFAULT 1 CHECK (min_order_quantity >= 1),
		qr_code TEXT UNIQUE NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS documents (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id),
		document_type TEXT NOT NULL CHECK (document_type IN ('cedula', 'revenue_statement', 'bank_statement', 'tax_return', 'business_registration')),
		file_url TEXT NOT NULL,
		file_name TEXT NOT NULL,
		upload_date TIMESTAMP NOT NULL,
		verification_status TEXT NOT NULL DEFAULT 'pending' CHECK (verification_status IN ('pending', 'approved', 'rejected')),
		admin_notes TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id TEXT PRIMARY KEY,
		customer_id TEXT NOT NULL REFERENCES users(id),
		delivery_address TEXT NOT NULL,
		total_amount BIGINT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'confirmed', 'processing', 'shipped', 'delivered', 'cancelled')),
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id TEXT PRIMARY KEY,
		order_id TEXT NOT NULL REFERENCES orders(id),
		product_id TEXT NOT NULL REFERENCES products(id),
		business_id TEXT NOT NULL REFERENCES users(id),
		product_name TEXT NOT NULL,
		quantity INTEGER NOT NULL,
		unit_business_price BIGINT NOT NULL,
		unit_public_price BIGINT NOT NULL,
		total_business_payout BIGINT NOT NULL,
		total_customer_pays BIGINT NOT NULL,
		total_platform_fee BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS business_payments (
		id TEXT PRIMARY KEY,
		order_id TEXT NOT NULL REFERENCES orders(id),
		business_id TEXT NOT NULL REFERENCES users(id),
		quantity_sold INTEGER NOT NULL,
		unit_business_price BIGINT,
		total_business_payment BIGINT NOT NULL,
		platform_fee_amount BIGINT NOT NULL,
		payment_status TEXT NOT NULL DEFAULT 'processed' CHECK (payment_status IN ('pending', 'processed', 'failed')),
		processed_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS business_receipts (
		id TEXT PRIMARY KEY,
		order_id TEXT NOT NULL REFERENCES orders(id),
		business_id TEXT NOT NULL REFERENCES users(id),
		receipt_number TEXT UNIQUE NOT NULL,
		items TEXT NOT NULL,
		payment_amount BIGINT NOT NULL,
		platform_fee BIGINT NOT NULL,
		generated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS customer_receipts (
		id TEXT PRIMARY KEY,
		order_id TEXT NOT NULL REFERENCES orders(id),
		customer_id TEXT NOT NULL REFERENCES users(id),
		receipt_number TEXT UNIQUE NOT NULL,
		delivery_address TEXT NOT NULL,
		items TEXT NOT NULL,
		total_amount BIGINT NOT NULL,
		generated_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_products_business ON products(business_id)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders(customer_id)`,
	`CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)`,
	`CREATE INDEX IF NOT EXISTS idx_business_payments_business ON business_payments(business_id)`,
	`CREATE INDEX IF NOT EXISTS idx_documents_user ON documents(user_id)`,
}

// ApplySchema creates all tables and indexes if they do not exist yet.
func ApplySchema(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
