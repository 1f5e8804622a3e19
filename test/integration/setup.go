package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container and connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	// Create PostgreSQL container
	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	// Get connection string
	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	// Create connection pool
	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	// Create schema
	createSchema(t, pool)

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// createSchema creates the database schema for testing.
func createSchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	schema := `
		CREATE TABLE IF NOT EXISTS products (
			id VARCHAR(50) PRIMARY KEY,
			sku VARCHAR(100) NOT NULL DEFAULT '',
			name VARCHAR(255) NOT NULL,
			category VARCHAR(100) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			quantity INTEGER NOT NULL DEFAULT 0,
			status VARCHAR(20) NOT NULL DEFAULT 'active',
			uk_price_obj JSONB,
			images JSONB,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			email VARCHAR(255) NOT NULL UNIQUE,
			password VARCHAR(255) NOT NULL,
			first_name VARCHAR(100) NOT NULL DEFAULT '',
			last_name VARCHAR(100) NOT NULL DEFAULT '',
			company VARCHAR(255),
			stripe_customer_id VARCHAR(100),
			auth VARCHAR(20),
			ip_address VARCHAR(45),
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS carts (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT REFERENCES users(id),
			session_id VARCHAR(100),
			cart_items JSONB NOT NULL DEFAULT '[]',
			last_updated TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS coupons (
			id BIGSERIAL PRIMARY KEY,
			code VARCHAR(50) NOT NULL UNIQUE,
			percent_off DOUBLE PRECISION NOT NULL,
			min_subtotal DOUBLE PRECISION NOT NULL DEFAULT 0,
			active BOOLEAN NOT NULL DEFAULT TRUE,
			starts_at TIMESTAMPTZ,
			ends_at TIMESTAMPTZ,
			usage_limit INTEGER,
			times_used INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS orders (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id),
			cart_id BIGINT NOT NULL,
			order_items JSONB NOT NULL DEFAULT '[]',
			subtotal_amount DOUBLE PRECISION NOT NULL,
			discount_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
			shipping_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
			total_amount DOUBLE PRECISION NOT NULL,
			currency VARCHAR(3) NOT NULL,
			coupon_code VARCHAR(50),
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			payment_status VARCHAR(20) NOT NULL DEFAULT 'unpaid',
			payment_method VARCHAR(20) NOT NULL DEFAULT '',
			payment_id VARCHAR(100),
			shipping_address JSONB,
			customer_notes TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS addresses (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id),
			full_name VARCHAR(255) NOT NULL,
			phone_number VARCHAR(50) NOT NULL DEFAULT '',
			address_line1 VARCHAR(255) NOT NULL,
			address_line2 VARCHAR(255) NOT NULL DEFAULT '',
			city VARCHAR(100) NOT NULL,
			region VARCHAR(100) NOT NULL DEFAULT '',
			postal_code VARCHAR(20) NOT NULL,
			country VARCHAR(100) NOT NULL DEFAULT '',
			is_default BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS api_keys (
			id BIGSERIAL PRIMARY KEY,
			access VARCHAR(100) NOT NULL UNIQUE,
			status VARCHAR(20) NOT NULL DEFAULT 'active',
			authorised_urls JSONB NOT NULL DEFAULT '[]'
		);

		CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);
		CREATE INDEX IF NOT EXISTS idx_carts_session_id ON carts(session_id);
		CREATE INDEX IF NOT EXISTS idx_carts_user_id ON carts(user_id);
		CREATE INDEX IF NOT EXISTS idx_orders_user_id ON orders(user_id);
		CREATE INDEX IF NOT EXISTS idx_addresses_user_id ON addresses(user_id);
	`

	_, err := pool.Exec(ctx, schema)
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
}

// SeedProducts inserts test product data into the database.
func SeedProducts(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	products := []struct {
		id       string
		sku      string
		name     string
		category string
		quantity int
		status   string
		price    string
		currency string
	}{
		{"P001", "SKU-001", "Track Jacket", "clothing", 10, "active", "25.00", "GBP"},
		{"P002", "SKU-002", "Running Shorts", "clothing", 5, "active", "12.50", "GBP"},
		{"P003", "SKU-003", "Water Bottle", "accessories", 0, "active", "8.00", "GBP"},
		{"P004", "SKU-004", "Gym Towel", "accessories", 20, "inactive", "6.00", "GBP"},
		{"P005", "SKU-005", "Trail Shoes", "footwear", 3, "active", "79.99", "GBP"},
	}

	for _, p := range products {
		priceObj := fmt.Sprintf(`{"price":{"amount":%q,"currencyCode":%q}}`, p.price, p.currency)
		_, err := pool.Exec(ctx,
			`INSERT INTO products (id, sku, name, category, quantity, status, uk_price_obj, images)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, '[{"url":"assets/images/sample.jpg"}]')`,
			p.id, p.sku, p.name, p.category, p.quantity, p.status, priceObj,
		)
		if err != nil {
			t.Fatalf("failed to seed product %s: %v", p.id, err)
		}
	}
}

// SeedUser inserts a test account and returns its id.
func SeedUser(t *testing.T, pool *pgxpool.Pool, email string) int64 {
	t.Helper()

	var id int64
	err := pool.QueryRow(context.Background(),
		`INSERT INTO users (email, password, first_name, last_name)
		 VALUES ($1, 'not-a-real-hash', 'Test', 'User')
		 RETURNING id`,
		email,
	).Scan(&id)
	if err != nil {
		t.Fatalf("failed to seed user %s: %v", email, err)
	}

	return id
}

// SeedCoupon inserts an active percentage coupon.
func SeedCoupon(t *testing.T, pool *pgxpool.Pool, code string, percentOff, minSubtotal float64) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO coupons (code, percent_off, min_subtotal, active) VALUES ($1, $2, $3, TRUE)`,
		code, percentOff, minSubtotal,
	)
	if err != nil {
		t.Fatalf("failed to seed coupon %s: %v", code, err)
	}
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"addresses", "orders", "carts", "coupons", "api_keys", "users", "products"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
