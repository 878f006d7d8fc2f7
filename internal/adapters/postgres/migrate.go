package postgres

import (
	"context"
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const migrationsTable = "schema_migrations"

type Migration struct {
	Name      string
	Content   string
	Checksum  string
	AppliedAt time.Time
}

func computeChecksum(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// Migrations returns the embedded up migrations ordered by name.
func Migrations() ([]Migration, error) {
	entries, err := fs.ReadDir(migrationFiles, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations: %w", err)
	}

	var migrations []Migration
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".up.sql") {
			continue
		}

		content, err := fs.ReadFile(migrationFiles, "migrations/"+name)
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %w", name, err)
		}

		migrations = append(migrations, Migration{
			Name:     name,
			Content:  string(content),
			Checksum: computeChecksum(string(content)),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Name < migrations[j].Name
	})

	return migrations, nil
}

func (db *DB) ensureMigrationsTable(ctx context.Context) error {
	_, err := db.Pool.Exec(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			name TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			checksum TEXT NOT NULL
		)
	`, migrationsTable))
	return err
}

// Applied lists the migrations recorded in the database.
func (db *DB) Applied(ctx context.Context) ([]Migration, error) {
	if err := db.ensureMigrationsTable(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure migrations table: %w", err)
	}

	rows, err := db.Pool.Query(ctx, fmt.Sprintf(`
		SELECT name, applied_at, checksum
		FROM %s
		ORDER BY name
	`, migrationsTable))
	if err != nil {
		return nil, fmt.Errorf("failed to query migrations: %w", err)
	}

	applied, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Migration, error) {
		var m Migration
		err := row.Scan(&m.Name, &m.AppliedAt, &m.Checksum)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan migrations: %w", err)
	}
	return applied, nil
}

// Migrate applies every embedded migration not yet recorded, each in its own
// transaction. It refuses to run when an applied migration has since been
// edited. It returns the names it applied.
func (db *DB) Migrate(ctx context.Context) ([]string, error) {
	all, err := Migrations()
	if err != nil {
		return nil, err
	}

	applied, err := db.Applied(ctx)
	if err != nil {
		return nil, err
	}

	appliedMap := make(map[string]Migration, len(applied))
	for _, m := range applied {
		appliedMap[m.Name] = m
	}

	var names []string
	for _, m := range all {
		if prev, ok := appliedMap[m.Name]; ok {
			if prev.Checksum != m.Checksum {
				return names, fmt.Errorf("migration %s was modified after being applied", m.Name)
			}
			continue
		}

		if err := db.apply(ctx, m); err != nil {
			return names, err
		}
		db.logger.Info("applied migration", "name", m.Name)
		names = append(names, m.Name)
	}

	return names, nil
}

func (db *DB) apply(ctx context.Context, m Migration) error {
	return db.InTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, m.Content); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", m.Name, err)
		}

		_, err := tx.Exec(ctx, fmt.Sprintf(`
			INSERT INTO %s (name, checksum) VALUES ($1, $2)
		`, migrationsTable), m.Name, m.Checksum)
		if err != nil {
			return fmt.Errorf("failed to record migration %s: %w", m.Name, err)
		}
		return nil
	})
}
