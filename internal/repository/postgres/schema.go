// internal/repository/postgres/schema.go
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS customers (
	id          BIGSERIAL PRIMARY KEY,
	name        TEXT NOT NULL,
	email       TEXT,
	phone       TEXT,
	address     TEXT,
	notes       TEXT,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS insurances (
	id               BIGSERIAL PRIMARY KEY,
	customer_id      BIGINT NOT NULL REFERENCES customers(id) ON DELETE CASCADE,
	type             TEXT NOT NULL,
	renewal_date     DATE NOT NULL,
	coverage_details TEXT,
	premium_amount   DOUBLE PRECISION,
	notes            TEXT,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS documents (
	id           BIGSERIAL PRIMARY KEY,
	customer_id  BIGINT NOT NULL REFERENCES customers(id) ON DELETE CASCADE,
	insurance_id BIGINT REFERENCES insurances(id) ON DELETE CASCADE,
	filename     TEXT NOT NULL,
	file_path    TEXT NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_insurances_customer_id ON insurances(customer_id);
CREATE INDEX IF NOT EXISTS idx_insurances_renewal_date ON insurances(renewal_date);
CREATE INDEX IF NOT EXISTS idx_documents_customer_id ON documents(customer_id);
`

// EnsureSchema creates the tables and indexes if they do not exist yet.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}
