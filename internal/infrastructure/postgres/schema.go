package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaStatements crea las tablas e índices del motor si no existen.
// La cantidad de stock nunca puede quedar negativa; la constraint es la
// última línea de defensa detrás de la validación del caso de uso.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'worker',
		full_name TEXT NOT NULL DEFAULT '',
		department TEXT NOT NULL DEFAULT '',
		linked_company TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS stock (
		id UUID PRIMARY KEY,
		sku TEXT NOT NULL UNIQUE,
		description TEXT NOT NULL DEFAULT '',
		quantity BIGINT NOT NULL DEFAULT 0 CHECK (quantity >= 0),
		location TEXT NOT NULL DEFAULT 'General',
		status TEXT NOT NULL DEFAULT 'Released',
		supplier TEXT NOT NULL DEFAULT '',
		entry_date TIMESTAMPTZ,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS movements (
		id BIGSERIAL PRIMARY KEY,
		type TEXT NOT NULL CHECK (type IN ('IN', 'OUT')),
		source TEXT NOT NULL DEFAULT 'MANUAL',
		sku TEXT NOT NULL,
		quantity BIGINT NOT NULL CHECK (quantity > 0),
		tenant TEXT NOT NULL DEFAULT '',
		details TEXT NOT NULL DEFAULT '',
		document_ref TEXT NOT NULL DEFAULT '',
		ts TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_stock_supplier ON stock (supplier)`,
	`CREATE INDEX IF NOT EXISTS idx_movements_ts ON movements (ts DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_movements_sku ON movements (sku)`,
	`CREATE INDEX IF NOT EXISTS idx_movements_tenant ON movements (tenant)`,
}

// EnsureSchema aplica el esquema de forma idempotente al arrancar.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
