package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaStatements bootstrap the two tables the service owns. Executed at
// startup; idempotent. order_id on activity_logs carries no foreign key so
// log entries survive order deletion.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS orders (
		id            BIGSERIAL PRIMARY KEY,
		first_name    VARCHAR(100) NOT NULL,
		last_name     VARCHAR(100) NOT NULL,
		date_of_birth TIMESTAMPTZ NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS activity_logs (
		id        BIGSERIAL PRIMARY KEY,
		order_id  BIGINT,
		action    VARCHAR(100) NOT NULL,
		endpoint  VARCHAR(200) NOT NULL,
		method    VARCHAR(10) NOT NULL,
		timestamp TIMESTAMPTZ NOT NULL DEFAULT now(),
		details   TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_activity_logs_order_id ON activity_logs (order_id)`,
}

// EnsureSchema creates the orders and activity_logs tables if they do not
// already exist.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
