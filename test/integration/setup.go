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
		CREATE TABLE IF NOT EXISTS customers (
			id BIGSERIAL PRIMARY KEY,
			first_name VARCHAR(100) NOT NULL,
			last_name VARCHAR(100) NOT NULL,
			email VARCHAR(255) NOT NULL UNIQUE,
			phone_number VARCHAR(30) NOT NULL UNIQUE,
			address VARCHAR(255) NOT NULL,
			city VARCHAR(100) NOT NULL DEFAULT '',
			state VARCHAR(100) NOT NULL DEFAULT '',
			zip_code VARCHAR(20) NOT NULL DEFAULT '',
			country VARCHAR(100) NOT NULL DEFAULT '',
			active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS products (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price DECIMAL(10, 2) NOT NULL CHECK (price >= 0.01),
			stock INTEGER NOT NULL CHECK (stock >= 0),
			category VARCHAR(100) NOT NULL DEFAULT '',
			sku VARCHAR(100) NOT NULL DEFAULT '',
			active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS orders (
			id BIGSERIAL PRIMARY KEY,
			customer_id BIGINT NOT NULL REFERENCES customers(id),
			total_amount DECIMAL(12, 2) NOT NULL DEFAULT 0,
			status VARCHAR(20) NOT NULL,
			shipping_address VARCHAR(255) NOT NULL DEFAULT '',
			shipping_city VARCHAR(100) NOT NULL DEFAULT '',
			shipping_state VARCHAR(100) NOT NULL DEFAULT '',
			shipping_zip_code VARCHAR(20) NOT NULL DEFAULT '',
			shipping_country VARCHAR(100) NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE UNIQUE INDEX IF NOT EXISTS uq_orders_active_cart
			ON orders(customer_id) WHERE status = 'CART';

		CREATE TABLE IF NOT EXISTS order_items (
			id BIGSERIAL PRIMARY KEY,
			order_id BIGINT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			product_id BIGINT NOT NULL REFERENCES products(id),
			quantity INTEGER NOT NULL CHECK (quantity > 0),
			unit_price DECIMAL(10, 2) NOT NULL,
			subtotal DECIMAL(12, 2) NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id);

		CREATE TABLE IF NOT EXISTS payments (
			id BIGSERIAL PRIMARY KEY,
			order_id BIGINT NOT NULL UNIQUE REFERENCES orders(id),
			tokenized_card VARCHAR(255) NOT NULL,
			amount DECIMAL(12, 2) NOT NULL,
			status VARCHAR(20) NOT NULL,
			attempt_count INTEGER NOT NULL DEFAULT 0,
			failure_reason VARCHAR(255),
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS card_tokens (
			id BIGSERIAL PRIMARY KEY,
			token VARCHAR(100) NOT NULL UNIQUE,
			last_four_digits VARCHAR(4) NOT NULL,
			card_brand VARCHAR(20) NOT NULL,
			expiration_date VARCHAR(5) NOT NULL,
			cardholder_name VARCHAR(255) NOT NULL,
			active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS audit_logs (
			id UUID PRIMARY KEY,
			event_type VARCHAR(50) NOT NULL,
			entity_type VARCHAR(50) NOT NULL,
			entity_id VARCHAR(100),
			user_id VARCHAR(100),
			description TEXT,
			details TEXT,
			status VARCHAR(20) NOT NULL,
			error_message TEXT,
			source_ip VARCHAR(45),
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_audit_logs_entity_id ON audit_logs(entity_id);
		CREATE INDEX IF NOT EXISTS idx_audit_logs_event_type ON audit_logs(event_type);
		CREATE INDEX IF NOT EXISTS idx_audit_logs_created_at ON audit_logs(created_at);
	`

	_, err := pool.Exec(ctx, schema)
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
}

// SeedCustomer inserts a test customer and returns its ID.
func SeedCustomer(t *testing.T, pool *pgxpool.Pool, email, phone string) int64 {
	t.Helper()

	ctx := context.Background()

	var id int64
	err := pool.QueryRow(ctx, `
		INSERT INTO customers (first_name, last_name, email, phone_number, address, city, state, zip_code, country, active, created_at, updated_at)
		VALUES ('Test', 'Customer', $1, $2, '1 Test Street', 'Testville', 'TS', '00001', 'US', TRUE, NOW(), NOW())
		RETURNING id
	`, email, phone).Scan(&id)
	if err != nil {
		t.Fatalf("failed to seed customer: %v", err)
	}

	return id
}

// SeedProducts inserts test product data and returns the generated IDs.
func SeedProducts(t *testing.T, pool *pgxpool.Pool) []int64 {
	t.Helper()

	ctx := context.Background()

	products := []struct {
		name  string
		price float64
		stock int
		sku   string
	}{
		{"Test Product 1", 10.00, 100, "SKU-001"},
		{"Test Product 2", 20.00, 50, "SKU-002"},
		{"Test Product 3", 30.00, 10, "SKU-003"},
		{"Test Product 4", 40.00, 5, "SKU-004"},
		{"Test Product 5", 50.00, 1, "SKU-005"},
	}

	ids := make([]int64, 0, len(products))
	for _, p := range products {
		var id int64
		err := pool.QueryRow(ctx, `
			INSERT INTO products (name, description, price, stock, category, sku, active, created_at, updated_at)
			VALUES ($1, '', $2, $3, 'Test Category', $4, TRUE, NOW(), NOW())
			RETURNING id
		`, p.name, p.price, p.stock, p.sku).Scan(&id)
		if err != nil {
			t.Fatalf("failed to seed product %s: %v", p.name, err)
		}
		ids = append(ids, id)
	}

	return ids
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"audit_logs", "payments", "order_items", "orders", "card_tokens", "products", "customers"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
