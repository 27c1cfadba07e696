package integration

import (
	"context"
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

// SetupTestDB creates a PostgreSQL test container with the reference
// data schema and seed rows.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

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

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	createSchema(t, pool)
	seedReferenceData(t, pool)

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

// createSchema creates the reference data tables.
func createSchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	schema := `
		CREATE TABLE IF NOT EXISTS countries (
			code VARCHAR(2) PRIMARY KEY,
			name VARCHAR(255) NOT NULL
		);

		CREATE TABLE IF NOT EXISTS states (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			country_code VARCHAR(2) NOT NULL REFERENCES countries(code)
		);

		CREATE INDEX IF NOT EXISTS idx_states_country_code ON states(country_code);
	`

	_, err := pool.Exec(ctx, schema)
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
}

// seedReferenceData inserts the countries and states used by the tests.
func seedReferenceData(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	countries := []struct {
		code string
		name string
	}{
		{"BR", "Brazil"},
		{"CA", "Canada"},
		{"IN", "India"},
		{"US", "United States"},
	}

	for _, c := range countries {
		_, err := pool.Exec(ctx,
			"INSERT INTO countries (code, name) VALUES ($1, $2)",
			c.code, c.name,
		)
		if err != nil {
			t.Fatalf("failed to seed country %s: %v", c.code, err)
		}
	}

	states := []struct {
		name        string
		countryCode string
	}{
		{"Goa", "IN"},
		{"Karnataka", "IN"},
		{"Maharashtra", "IN"},
		{"California", "US"},
		{"New York", "US"},
		{"Texas", "US"},
		{"Ontario", "CA"},
		{"Quebec", "CA"},
	}

	for _, s := range states {
		_, err := pool.Exec(ctx,
			"INSERT INTO states (name, country_code) VALUES ($1, $2)",
			s.name, s.countryCode,
		)
		if err != nil {
			t.Fatalf("failed to seed state %s: %v", s.name, err)
		}
	}
}
