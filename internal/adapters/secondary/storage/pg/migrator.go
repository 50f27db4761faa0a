package pg

import (
	"cmp"
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"slices"
	"strconv"
	"strings"

	"github.com/QuilGrafit/astroX/internal/ports/persistence"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// migrationLockID ключ pg_advisory_xact_lock: несколько реплик не накатывают одну миграцию дважды
const migrationLockID = 7_264_001

type migration struct {
	Version int64
	Name    string
	Content string
}

// RunMigrations накатывает встроенные миграции, которых ещё нет в schema_migrations
func RunMigrations(ctx context.Context, db *DB, log *slog.Logger) error {
	migrations, err := loadMigrations(migrationsFS)
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}
	return applyMigrations(ctx, db, migrations, log)
}

func applyMigrations(ctx context.Context, db persistence.Persistence, migrations []migration, log *slog.Logger) error {
	if err := db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    BIGINT PRIMARY KEY,
			name       TEXT NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	var versions []int64
	if err := db.Select(ctx, &versions, "SELECT version FROM schema_migrations"); err != nil {
		return fmt.Errorf("list applied migrations: %w", err)
	}

	applied := 0
	for _, m := range migrations {
		if slices.Contains(versions, m.Version) {
			continue
		}

		ran, err := applyMigration(ctx, db, m)
		if err != nil {
			return fmt.Errorf("migration %04d_%s: %w", m.Version, m.Name, err)
		}
		if ran {
			log.Info("migration applied", "version", m.Version, "name", m.Name)
			applied++
		}
	}

	log.Info("database schema is up to date", "applied", applied, "known", len(migrations))
	return nil
}

// applyMigration false - миграцию успела накатить другая реплика, пока мы ждали блокировку
func applyMigration(ctx context.Context, db persistence.Persistence, m migration) (bool, error) {
	ran := false
	err := db.WithTransaction(ctx, func(ctx context.Context, tx persistence.Transaction) error {
		if err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", migrationLockID); err != nil {
			return fmt.Errorf("acquire migration lock: %w", err)
		}

		var done bool
		if err := tx.Get(ctx, &done, "SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)", m.Version); err != nil {
			return err
		}
		if done {
			return nil
		}

		if err := tx.Exec(ctx, m.Content); err != nil {
			return err
		}
		if err := tx.Exec(ctx, "INSERT INTO schema_migrations (version, name) VALUES ($1, $2)", m.Version, m.Name); err != nil {
			return fmt.Errorf("record version: %w", err)
		}
		ran = true
		return nil
	})
	return ran, err
}

// loadMigrations файлы NNNN_name.sql из каталога migrations по возрастанию версии
func loadMigrations(fsys fs.FS) ([]migration, error) {
	entries, err := fs.ReadDir(fsys, "migrations")
	if err != nil {
		return nil, err
	}

	var migrations []migration
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".sql" {
			continue
		}

		version, name, err := parseMigrationName(entry.Name())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", entry.Name(), err)
		}

		content, err := fs.ReadFile(fsys, path.Join("migrations", entry.Name()))
		if err != nil {
			return nil, err
		}

		migrations = append(migrations, migration{Version: version, Name: name, Content: string(content)})
	}

	slices.SortFunc(migrations, func(a, b migration) int {
		return cmp.Compare(a.Version, b.Version)
	})
	for i := 1; i < len(migrations); i++ {
		if migrations[i].Version == migrations[i-1].Version {
			return nil, fmt.Errorf("duplicate migration version %d", migrations[i].Version)
		}
	}

	return migrations, nil
}

func parseMigrationName(filename string) (int64, string, error) {
	prefix, name, ok := strings.Cut(strings.TrimSuffix(filename, ".sql"), "_")
	if !ok || name == "" {
		return 0, "", fmt.Errorf("expected NNNN_name.sql")
	}

	version, err := strconv.ParseInt(prefix, 10, 64)
	if err != nil || version <= 0 {
		return 0, "", fmt.Errorf("invalid version %q", prefix)
	}
	return version, name, nil
}
