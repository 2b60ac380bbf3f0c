// Package migrations holds the SQL schema of the shipment store and applies
// it in file-name order. Applied versions are recorded in schema_migrations,
// so Up is safe to run on every start.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed *.sql
var files embed.FS

const createVersionTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
    version    VARCHAR(255) PRIMARY KEY,
    applied_at TIMESTAMPTZ  NOT NULL DEFAULT NOW()
)`

// Versions lists the embedded migrations in the order Up applies them.
func Versions() ([]string, error) {
	names, err := fs.Glob(files, "*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	versions := make([]string, 0, len(names))
	for _, name := range names {
		versions = append(versions, strings.TrimSuffix(name, ".sql"))
	}
	return versions, nil
}

// Up applies every pending migration, each inside its own transaction, and
// returns the versions it applied.
func Up(ctx context.Context, db *sql.DB) ([]string, error) {
	if _, err := db.ExecContext(ctx, createVersionTable); err != nil {
		return nil, fmt.Errorf("create schema_migrations: %w", err)
	}

	versions, err := Versions()
	if err != nil {
		return nil, err
	}

	applied := make([]string, 0)
	for _, version := range versions {
		done, applyErr := apply(ctx, db, version)
		if applyErr != nil {
			return applied, fmt.Errorf("migration %s: %w", version, applyErr)
		}
		if done {
			applied = append(applied, version)
		}
	}

	return applied, nil
}

func apply(ctx context.Context, db *sql.DB, version string) (bool, error) {
	script, err := files.ReadFile(version + ".sql")
	if err != nil {
		return false, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// serializes concurrent migrators
	if _, err = tx.ExecContext(ctx, "LOCK TABLE schema_migrations IN EXCLUSIVE MODE"); err != nil {
		return false, err
	}

	var exists bool
	err = tx.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)", version,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	if _, err = tx.ExecContext(ctx, string(script)); err != nil {
		return false, err
	}
	if _, err = tx.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES ($1)", version); err != nil {
		return false, err
	}

	return true, tx.Commit()
}
