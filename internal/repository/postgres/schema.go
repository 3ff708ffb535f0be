package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the tables if they do not exist yet.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	ddl := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %[1]s (
			id          TEXT PRIMARY KEY,
			name        VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			path        TEXT NOT NULL DEFAULT '',
			status      TEXT NOT NULL DEFAULT 'ACTIVED',
			team        TEXT NOT NULL DEFAULT '',
			project     TEXT NOT NULL DEFAULT '',
			division    TEXT NOT NULL DEFAULT '',
			template    TEXT NOT NULL DEFAULT '',
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE TABLE IF NOT EXISTS %[2]s (
			id          UUID PRIMARY KEY,
			latest_id   UUID NOT NULL,
			parent_id   UUID REFERENCES %[2]s(id),
			name        VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			created_by  TEXT NOT NULL,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
			version     INTEGER NOT NULL DEFAULT 0,
			status      TEXT NOT NULL DEFAULT 'ACTIVED',
			rule_id     TEXT NOT NULL DEFAULT '',
			content     TEXT NOT NULL DEFAULT ''
		);
		CREATE INDEX IF NOT EXISTS %[2]s_parent_idx ON %[2]s(parent_id);

		CREATE TABLE IF NOT EXISTS %[3]s (
			id            UUID PRIMARY KEY,
			doc_id        UUID NOT NULL REFERENCES %[2]s(id),
			rule_id       TEXT NOT NULL,
			request_json  TEXT NOT NULL,
			response_json TEXT NOT NULL,
			description   TEXT NOT NULL,
			agent_name    TEXT NOT NULL,
			created_by    TEXT NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS %[3]s_created_idx ON %[3]s(created_at DESC);
	`, tables.Rules, tables.Documents, tables.PromptHistory)

	if _, err := pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// DropSchema drops every docstudio table for the prefix.
func DropSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	ddl := fmt.Sprintf(`
		DROP TABLE IF EXISTS %s CASCADE;
		DROP TABLE IF EXISTS %s CASCADE;
		DROP TABLE IF EXISTS %s CASCADE;
	`, tables.PromptHistory, tables.Documents, tables.Rules)

	if _, err := pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("drop schema: %w", err)
	}
	return nil
}
